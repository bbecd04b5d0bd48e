package usecase

import (
	"context"

	"photobooth/internal/modules/template/domain"
	"photobooth/internal/modules/template/dto"
	templatein "photobooth/internal/modules/template/port/in"
	"photobooth/internal/modules/template/service"
	apperrors "photobooth/internal/platform/errors"
)

type Interactor struct {
	svc *service.CatalogService
}

func NewInteractor(svc *service.CatalogService) templatein.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) List(ctx context.Context) ([]dto.TemplateOutput, error) {
	templates := i.svc.Load(ctx)
	out := make([]dto.TemplateOutput, 0, len(templates))
	for _, t := range templates {
		out = append(out, toOutput(t))
	}
	return out, nil
}

func (i *Interactor) Get(ctx context.Context, id string) (dto.TemplateOutput, error) {
	t, ok := i.svc.Get(ctx, id)
	if !ok {
		return dto.TemplateOutput{}, apperrors.ErrTemplateNotFound
	}
	return toOutput(t), nil
}

func toOutput(t domain.Template) dto.TemplateOutput {
	rects := make([]dto.RectOutput, 0, len(t.Rects))
	for _, r := range t.Rects {
		rects = append(rects, dto.RectOutput{
			LeftPct:   r.LeftPct,
			TopPct:    r.TopPct,
			WidthPct:  r.WidthPct,
			HeightPct: r.HeightPct,
		})
	}
	return dto.TemplateOutput{
		ID:            t.ID,
		Name:          t.Name,
		Slots:         t.Slots,
		Rects:         rects,
		Background:    t.Background,
		VintageEffect: t.VintageEffect,
		Effect:        t.Effect,
	}
}
