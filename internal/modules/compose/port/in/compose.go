package in

import (
	"context"

	"photobooth/internal/modules/compose/dto"
)

type Usecase interface {
	Compose(ctx context.Context, input dto.ComposeInput) (dto.ComposeOutput, error)
}
