package service

import (
	"context"
	"log/slog"

	"photobooth/internal/modules/template/domain"
	templateout "photobooth/internal/modules/template/port/out"
)

// CatalogService loads the template catalog once and serves it immutably for
// the process lifetime. Load failures never abort the kiosk: an unreadable or
// empty catalog degrades to the built-in single-slot template.
type CatalogService struct {
	store  templateout.CatalogStore
	logger *slog.Logger

	templates []domain.Template
}

func NewCatalogService(store templateout.CatalogStore, logger *slog.Logger) *CatalogService {
	return &CatalogService{store: store, logger: logger}
}

// Load resolves the catalog. Invalid entries are skipped individually so one
// bad template does not take down the rest of the file.
func (s *CatalogService) Load(ctx context.Context) []domain.Template {
	if s.templates != nil {
		return s.templates
	}

	loaded, err := s.store.Load(ctx)
	if err != nil {
		s.logger.Warn("template catalog unavailable, using built-in default", "error", err)
		s.templates = []domain.Template{domain.Default()}
		return s.templates
	}

	valid := make([]domain.Template, 0, len(loaded))
	for _, t := range loaded {
		if err := t.Validate(); err != nil {
			s.logger.Warn("skipping invalid template", "error", err)
			continue
		}
		valid = append(valid, t)
	}
	if len(valid) == 0 {
		s.logger.Warn("template catalog empty after validation, using built-in default")
		valid = []domain.Template{domain.Default()}
	}
	s.templates = valid
	return s.templates
}

func (s *CatalogService) Get(ctx context.Context, id string) (domain.Template, bool) {
	for _, t := range s.Load(ctx) {
		if t.ID == id {
			return t, true
		}
	}
	return domain.Template{}, false
}

// At returns the template at index modulo the catalog size, so callers can
// cycle circularly without bounds bookkeeping.
func (s *CatalogService) At(ctx context.Context, index int) domain.Template {
	templates := s.Load(ctx)
	n := len(templates)
	i := ((index % n) + n) % n
	return templates[i]
}

func (s *CatalogService) Count(ctx context.Context) int {
	return len(s.Load(ctx))
}
