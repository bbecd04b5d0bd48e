package in

import (
	"context"

	"photobooth/internal/modules/printing/dto"
)

type Usecase interface {
	Submit(ctx context.Context, input dto.SubmitInput) error
	Printer(ctx context.Context) (string, error)
	SetPrinter(ctx context.Context, name string) error
}
