package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"photobooth/internal/modules/effect/domain"
	"photobooth/internal/modules/effect/dto"
	effectout "photobooth/internal/modules/effect/port/out"
)

type EffectService struct {
	store effectout.ManifestStore
	host  effectout.Host
}

func NewEffectService(store effectout.ManifestStore, host effectout.Host) *EffectService {
	return &EffectService{store: store, host: host}
}

func (s *EffectService) List(ctx context.Context) ([]dto.PluginInfo, error) {
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PluginInfo, 0, len(manifests))
	for _, m := range manifests {
		out = append(out, dto.PluginInfo{Name: m.Name, Version: m.Version, Enabled: m.Enabled, Binary: m.Binary})
	}
	return out, nil
}

func (s *EffectService) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	results := make([]dto.DoctorResult, 0, len(manifests))
	for _, m := range manifests {
		result := dto.DoctorResult{Name: m.Name}
		if err := m.Validate(); err != nil {
			result.Error = err.Error()
			results = append(results, result)
			continue
		}
		binaryOK := fileExists(m.Binary)
		result.BinaryReachable = binaryOK
		checksumOK := false
		if binaryOK {
			checksumOK = checksumMatches(m.Binary, m.SHA256) == nil
		}
		result.ChecksumValid = checksumOK
		if binaryOK && checksumOK && m.Enabled && s.host != nil {
			if err := s.host.CheckLifecycle(ctx, m); err != nil {
				result.Error = err.Error()
			} else {
				result.LifecycleOK = true
			}
		}
		if !binaryOK {
			result.Error = fmt.Sprintf("binary does not exist: %s", m.Binary)
		}
		if binaryOK && !checksumOK {
			result.Error = "checksum mismatch"
		}
		results = append(results, result)
	}
	return results, nil
}

// ListEffects aggregates the effects of every enabled plugin. A plugin
// that fails to answer drops out of the listing rather than failing the
// whole aggregation.
func (s *EffectService) ListEffects(ctx context.Context) ([]dto.EffectInfo, error) {
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return nil, err
	}
	out := []dto.EffectInfo{}
	for _, m := range manifests {
		if !m.Enabled {
			continue
		}
		if err := checksumMatches(m.Binary, m.SHA256); err != nil {
			continue
		}
		effects, err := s.host.ListEffects(ctx, m)
		if err != nil {
			continue
		}
		for _, effect := range effects {
			if err := effect.Validate(); err != nil {
				continue
			}
			out = append(out, dto.EffectInfo{
				Plugin:      m.Name,
				ID:          effect.ID,
				Title:       effect.Title,
				Description: effect.Description,
			})
		}
	}
	return out, nil
}

func (s *EffectService) Apply(ctx context.Context, effectID string, imageJPEG []byte) ([]byte, error) {
	if effectID == "" {
		return nil, fmt.Errorf("effect id is required")
	}
	if len(imageJPEG) == 0 {
		return nil, fmt.Errorf("image payload is required")
	}
	manifest, err := s.resolveEffect(ctx, effectID)
	if err != nil {
		return nil, err
	}
	return s.host.Apply(ctx, manifest, effectID, imageJPEG)
}

// resolveEffect finds the first enabled, checksum-verified plugin that
// advertises the effect.
func (s *EffectService) resolveEffect(ctx context.Context, effectID string) (domain.Manifest, error) {
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return domain.Manifest{}, err
	}
	for _, m := range manifests {
		if !m.Enabled {
			continue
		}
		if err := checksumMatches(m.Binary, m.SHA256); err != nil {
			return domain.Manifest{}, err
		}
		effects, err := s.host.ListEffects(ctx, m)
		if err != nil {
			return domain.Manifest{}, err
		}
		for _, effect := range effects {
			if effect.ID == effectID {
				return m, nil
			}
		}
	}
	return domain.Manifest{}, fmt.Errorf("%w: %s", domain.ErrEffectNotFound, effectID)
}

func (s *EffectService) loadValidated(ctx context.Context) ([]domain.Manifest, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	seenNames := map[string]struct{}{}
	for _, manifest := range manifests {
		if err := manifest.Validate(); err != nil {
			return nil, err
		}
		if _, ok := seenNames[manifest.Name]; ok {
			return nil, fmt.Errorf("duplicate plugin name: %s", manifest.Name)
		}
		seenNames[manifest.Name] = struct{}{}
	}
	return manifests, nil
}

func checksumMatches(path string, expected string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read plugin binary: %w", err)
	}
	hash := sha256.Sum256(payload)
	actual := hex.EncodeToString(hash[:])
	if actual != expected {
		return fmt.Errorf("%w: %s", domain.ErrChecksumMismatch, filepath.Base(path))
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
