package in

import (
	"context"

	"photobooth/internal/modules/effect/dto"
)

type Usecase interface {
	List(ctx context.Context) ([]dto.PluginInfo, error)
	Doctor(ctx context.Context) ([]dto.DoctorResult, error)
	ListEffects(ctx context.Context) ([]dto.EffectInfo, error)
	Apply(ctx context.Context, effectID string, imageJPEG []byte) ([]byte, error)
}
