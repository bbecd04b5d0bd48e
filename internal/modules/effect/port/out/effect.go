package out

import (
	"context"

	"photobooth/internal/modules/effect/domain"
)

type ManifestStore interface {
	Load(ctx context.Context) ([]domain.Manifest, error)
}

type Host interface {
	CheckLifecycle(ctx context.Context, manifest domain.Manifest) error
	GetMetadata(ctx context.Context, manifest domain.Manifest) (domain.Metadata, error)
	ListEffects(ctx context.Context, manifest domain.Manifest) ([]domain.EffectDescriptor, error)
	Apply(ctx context.Context, manifest domain.Manifest, effectID string, imageJPEG []byte) ([]byte, error)
}
