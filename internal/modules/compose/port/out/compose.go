package out

import (
	"context"
	"image"
)

// ArtifactStore persists a composed page and returns its path. Every save
// produces a fresh timestamped file; prior artifacts are never overwritten.
type ArtifactStore interface {
	Save(ctx context.Context, img image.Image) (string, error)
}

// EffectHost applies a named external effect to a JPEG-encoded image.
type EffectHost interface {
	Apply(ctx context.Context, effectID string, jpegData []byte) ([]byte, error)
}
