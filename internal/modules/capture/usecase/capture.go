package usecase

import (
	"context"

	"photobooth/internal/modules/capture/dto"
	capturein "photobooth/internal/modules/capture/port/in"
	"photobooth/internal/modules/capture/service"
)

type Interactor struct {
	svc *service.Coordinator
}

func NewInteractor(svc *service.Coordinator) capturein.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Still(ctx context.Context, input dto.StillInput) (dto.PhotoOutput, error) {
	path, err := i.svc.Still(ctx, input.Seq)
	if err != nil {
		return dto.PhotoOutput{}, err
	}
	return dto.PhotoOutput{Path: path}, nil
}

func (i *Interactor) Frame(ctx context.Context) ([]byte, bool) {
	return i.svc.Frame(ctx)
}

func (i *Interactor) StreamMJPEG(ctx context.Context, emit func(frame []byte) error) error {
	return i.svc.StreamMJPEG(ctx, emit)
}
