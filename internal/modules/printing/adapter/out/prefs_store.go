package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	printingout "photobooth/internal/modules/printing/port/out"
)

type printerPrefs struct {
	Printer string `json:"printer"`
}

// FilePrefsStore keeps the chosen printer in a small JSON file beside the
// photo data. A missing file simply means the system default printer.
type FilePrefsStore struct {
	path string
}

func NewFilePrefsStore(path string) printingout.PrefsStore {
	return &FilePrefsStore{path: path}
}

func (s *FilePrefsStore) LoadPrinter(_ context.Context) (string, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("read printer prefs: %w", err)
	}
	prefs := printerPrefs{}
	if err := json.Unmarshal(payload, &prefs); err != nil {
		return "", fmt.Errorf("decode printer prefs: %w", err)
	}
	return prefs.Printer, nil
}

func (s *FilePrefsStore) SavePrinter(_ context.Context, name string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}
	payload, err := json.Marshal(printerPrefs{Printer: name})
	if err != nil {
		return fmt.Errorf("marshal printer prefs: %w", err)
	}
	if err := os.WriteFile(s.path, payload, 0o644); err != nil {
		return fmt.Errorf("write printer prefs: %w", err)
	}
	return nil
}
