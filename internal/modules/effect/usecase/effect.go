package usecase

import (
	"context"

	"photobooth/internal/modules/effect/dto"
	effectin "photobooth/internal/modules/effect/port/in"
	"photobooth/internal/modules/effect/service"
)

type Interactor struct {
	svc *service.EffectService
}

func NewInteractor(svc *service.EffectService) effectin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) List(ctx context.Context) ([]dto.PluginInfo, error) {
	return i.svc.List(ctx)
}

func (i *Interactor) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	return i.svc.Doctor(ctx)
}

func (i *Interactor) ListEffects(ctx context.Context) ([]dto.EffectInfo, error) {
	return i.svc.ListEffects(ctx)
}

func (i *Interactor) Apply(ctx context.Context, effectID string, imageJPEG []byte) ([]byte, error) {
	return i.svc.Apply(ctx, effectID, imageJPEG)
}
