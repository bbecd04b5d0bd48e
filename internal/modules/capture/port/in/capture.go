package in

import (
	"context"

	"photobooth/internal/modules/capture/dto"
)

type Usecase interface {
	Still(ctx context.Context, input dto.StillInput) (dto.PhotoOutput, error)
	Frame(ctx context.Context) ([]byte, bool)
	StreamMJPEG(ctx context.Context, emit func(frame []byte) error) error
}
