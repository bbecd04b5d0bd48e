package out

import (
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"

	composeout "photobooth/internal/modules/compose/port/out"
	"photobooth/internal/platform/clock"
)

// FileArtifactStore writes composed pages next to the capture hierarchy with
// an A4_ prefix. The microsecond component keeps recompositions within the
// same second from colliding.
type FileArtifactStore struct {
	clock     clock.Clock
	photosDir string
}

func NewFileArtifactStore(clk clock.Clock, photosDir string) composeout.ArtifactStore {
	return &FileArtifactStore{clock: clk, photosDir: photosDir}
}

func (s *FileArtifactStore) Save(_ context.Context, img image.Image) (string, error) {
	now := s.clock.Now()
	rel := filepath.Join(
		now.Format("2006"), now.Format("01"), now.Format("02"),
		fmt.Sprintf("A4_%s_%06d.jpg", now.Format("150405"), now.Nanosecond()/1000),
	)
	dest := filepath.Join(s.photosDir, rel)
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", fmt.Errorf("create artifact dir: %w", err)
	}

	f, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("create artifact: %w", err)
	}
	defer func() { _ = f.Close() }()
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: 95}); err != nil {
		return "", fmt.Errorf("encode artifact: %w", err)
	}
	return dest, nil
}
