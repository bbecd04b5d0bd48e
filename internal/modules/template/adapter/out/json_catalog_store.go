package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"photobooth/internal/modules/template/domain"
	templateout "photobooth/internal/modules/template/port/out"
)

// catalogEntry mirrors one element of the catalog file, a JSON array of
// template objects. Field names follow the wire format of the template
// authoring tools.
type catalogEntry struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Slots         int         `json:"slots"`
	Rects         []rectEntry `json:"rects"`
	Background    string      `json:"background"`
	VintageEffect bool        `json:"vintage_effect"`
	Effect        string      `json:"effect"`
}

type rectEntry struct {
	LeftPct   float64 `json:"leftPct"`
	TopPct    float64 `json:"topPct"`
	WidthPct  float64 `json:"widthPct"`
	HeightPct float64 `json:"heightPct"`
}

type JSONCatalogStore struct {
	path string
}

func NewJSONCatalogStore(path string) templateout.CatalogStore {
	return &JSONCatalogStore{path: path}
}

func (s *JSONCatalogStore) Load(_ context.Context) ([]domain.Template, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read template catalog: %w", err)
	}
	var entries []catalogEntry
	if err := json.Unmarshal(payload, &entries); err != nil {
		return nil, fmt.Errorf("decode template catalog: %w", err)
	}

	templates := make([]domain.Template, 0, len(entries))
	for _, e := range entries {
		templates = append(templates, toDomain(e))
	}
	return templates, nil
}

func toDomain(e catalogEntry) domain.Template {
	t := domain.Template{
		ID:            e.ID,
		Name:          e.Name,
		Slots:         e.Slots,
		Background:    e.Background,
		VintageEffect: e.VintageEffect,
		Effect:        e.Effect,
	}
	if len(e.Rects) == 0 {
		// Entries may declare slots only and rely on a stock layout.
		t.Rects = domain.RectsForSlots(e.Slots)
		return t
	}
	t.Rects = make([]domain.Rect, 0, len(e.Rects))
	for _, r := range e.Rects {
		t.Rects = append(t.Rects, domain.Rect{
			LeftPct:   r.LeftPct,
			TopPct:    r.TopPct,
			WidthPct:  r.WidthPct,
			HeightPct: r.HeightPct,
		})
	}
	return t
}
