package in

import (
	"context"

	"photobooth/internal/modules/template/dto"
)

type Usecase interface {
	List(ctx context.Context) ([]dto.TemplateOutput, error)
	Get(ctx context.Context, id string) (dto.TemplateOutput, error)
}
