package out

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"photobooth/internal/modules/effect/domain"
	effectout "photobooth/internal/modules/effect/port/out"
)

// DirManifestStore reads one JSON manifest per plugin from the plugins
// directory. Relative binary paths resolve against that directory, so a
// plugin ships as <name>.json next to its binary.
type DirManifestStore struct {
	dir string
}

func NewDirManifestStore(dir string) effectout.ManifestStore {
	return &DirManifestStore{dir: dir}
}

func (s *DirManifestStore) Load(_ context.Context) ([]domain.Manifest, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.Manifest{}, nil
		}
		return nil, fmt.Errorf("read plugins dir: %w", err)
	}
	manifests := make([]domain.Manifest, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		path := filepath.Join(s.dir, entry.Name())
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read plugin manifest %s: %w", entry.Name(), err)
		}
		var manifest domain.Manifest
		decoder := json.NewDecoder(bytes.NewReader(b))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&manifest); err != nil {
			return nil, fmt.Errorf("decode plugin manifest %s: %w", entry.Name(), err)
		}
		if manifest.Binary != "" && !filepath.IsAbs(manifest.Binary) {
			manifest.Binary = filepath.Clean(filepath.Join(s.dir, manifest.Binary))
		}
		manifests = append(manifests, manifest)
	}
	sort.Slice(manifests, func(i, j int) bool { return manifests[i].Name < manifests[j].Name })
	return manifests, nil
}
