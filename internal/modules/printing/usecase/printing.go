package usecase

import (
	"context"

	"photobooth/internal/modules/printing/dto"
	printingin "photobooth/internal/modules/printing/port/in"
	"photobooth/internal/modules/printing/service"
)

type Interactor struct {
	svc *service.Dispatcher
}

func NewInteractor(svc *service.Dispatcher) printingin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Submit(ctx context.Context, input dto.SubmitInput) error {
	return i.svc.Submit(ctx, input.ArtifactPath, input.Printer)
}

func (i *Interactor) Printer(ctx context.Context) (string, error) {
	return i.svc.Printer(ctx)
}

func (i *Interactor) SetPrinter(ctx context.Context, name string) error {
	return i.svc.SetPrinter(ctx, name)
}
