package usecase

import (
	"context"
	"fmt"

	"photobooth/internal/modules/compose/domain"
	"photobooth/internal/modules/compose/dto"
	composein "photobooth/internal/modules/compose/port/in"
	"photobooth/internal/modules/compose/service"
	templatedomain "photobooth/internal/modules/template/domain"
	templatedto "photobooth/internal/modules/template/dto"
	templatein "photobooth/internal/modules/template/port/in"
	apperrors "photobooth/internal/platform/errors"
)

type Interactor struct {
	svc          *service.Compositor
	templates    templatein.Usecase
	canvasWidth  int
	canvasHeight int
}

func NewInteractor(svc *service.Compositor, templates templatein.Usecase, canvasWidth, canvasHeight int) composein.Usecase {
	return &Interactor{svc: svc, templates: templates, canvasWidth: canvasWidth, canvasHeight: canvasHeight}
}

func (i *Interactor) Compose(ctx context.Context, input dto.ComposeInput) (dto.ComposeOutput, error) {
	tpl, err := i.resolveTemplate(ctx, input.TemplateID)
	if err != nil {
		return dto.ComposeOutput{}, err
	}

	if len(input.PhotoPaths) < tpl.Slots {
		return dto.ComposeOutput{}, fmt.Errorf("%w: %d photos for %d slots", apperrors.ErrSelectionIncomplete, len(input.PhotoPaths), tpl.Slots)
	}

	filter := domain.FilterKind(input.Filter)
	if input.Filter == "" {
		filter = domain.FilterNone
	}
	if err := filter.Validate(); err != nil {
		return dto.ComposeOutput{}, fmt.Errorf("%w: %s", apperrors.ErrInvalidInput, err)
	}
	policy := domain.Policy(input.Policy)
	if input.Policy == "" {
		policy = domain.PolicyFillCrop
	}
	if err := policy.Validate(); err != nil {
		return dto.ComposeOutput{}, fmt.Errorf("%w: %s", apperrors.ErrInvalidInput, err)
	}

	rects := make([]templatedomain.Rect, 0, len(tpl.Rects))
	for _, r := range tpl.Rects {
		rects = append(rects, templatedomain.Rect{
			LeftPct:   r.LeftPct,
			TopPct:    r.TopPct,
			WidthPct:  r.WidthPct,
			HeightPct: r.HeightPct,
		})
	}

	path, err := i.svc.Compose(ctx, domain.Spec{
		PhotoPaths: input.PhotoPaths,
		Filter:     filter,
		Noise:      domain.NoiseMedium,
		Policy:     policy,
		Layout: domain.Layout{
			CanvasWidth:    i.canvasWidth,
			CanvasHeight:   i.canvasHeight,
			Rects:          rects,
			BackgroundPath: tpl.Background,
			ForceNewspaper: tpl.VintageEffect,
			Effect:         tpl.Effect,
		},
	})
	if err != nil {
		return dto.ComposeOutput{}, err
	}
	return dto.ComposeOutput{Path: path}, nil
}

// resolveTemplate looks up the requested template; an empty id selects the
// first catalog entry.
func (i *Interactor) resolveTemplate(ctx context.Context, id string) (templatedto.TemplateOutput, error) {
	if id != "" {
		tpl, err := i.templates.Get(ctx, id)
		if err != nil {
			return templatedto.TemplateOutput{}, fmt.Errorf("resolve template %s: %w", id, err)
		}
		return tpl, nil
	}
	templates, err := i.templates.List(ctx)
	if err != nil || len(templates) == 0 {
		return templatedto.TemplateOutput{}, fmt.Errorf("no templates available")
	}
	return templates[0], nil
}
