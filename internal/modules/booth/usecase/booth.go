package usecase

import (
	"context"

	"photobooth/internal/modules/booth/dto"
	boothin "photobooth/internal/modules/booth/port/in"
	"photobooth/internal/modules/booth/service"
)

type Interactor struct {
	svc *service.Controller
}

func NewInteractor(svc *service.Controller) boothin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Run(ctx context.Context) error {
	return i.svc.Run(ctx)
}

func (i *Interactor) Dispatch(action string) {
	i.svc.Dispatch(action)
}

func (i *Interactor) Snapshot() dto.Snapshot {
	return i.svc.Snapshot()
}

func (i *Interactor) History(ctx context.Context, limit int) ([]dto.SessionInfo, error) {
	return i.svc.History(ctx, limit)
}

func (i *Interactor) Prints(ctx context.Context, limit int) ([]dto.PrintInfo, error) {
	return i.svc.Prints(ctx, limit)
}
