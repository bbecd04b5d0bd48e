package domain

import "fmt"

const (
	MinSlots = 1
	MaxSlots = 4
)

// Rect positions one photo slot on the print canvas. Values are percentages
// of the canvas, origin top-left, y-down. Out-of-bounds rects are accepted
// here and clipped at composition time.
type Rect struct {
	LeftPct   float64
	TopPct    float64
	WidthPct  float64
	HeightPct float64
}

func (r Rect) Validate() error {
	if r.WidthPct <= 0 || r.HeightPct <= 0 {
		return fmt.Errorf("rect width and height must be positive, got %.2fx%.2f", r.WidthPct, r.HeightPct)
	}
	if r.LeftPct < 0 || r.LeftPct > 100 || r.TopPct < 0 || r.TopPct > 100 {
		return fmt.Errorf("rect origin must lie within the canvas, got (%.2f, %.2f)", r.LeftPct, r.TopPct)
	}
	return nil
}

// Template is a named print layout. Immutable after load; the catalog hands
// out copies and the controller keeps a read-only reference to the active one.
type Template struct {
	ID            string
	Name          string
	Slots         int
	Rects         []Rect
	Background    string
	VintageEffect bool
	Effect        string
}

func (t Template) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("template id is required")
	}
	if t.Slots < MinSlots || t.Slots > MaxSlots {
		return fmt.Errorf("template %s: slots must be %d..%d, got %d", t.ID, MinSlots, MaxSlots, t.Slots)
	}
	if len(t.Rects) != t.Slots {
		return fmt.Errorf("template %s: %d rects for %d slots", t.ID, len(t.Rects), t.Slots)
	}
	for i, r := range t.Rects {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("template %s rect %d: %w", t.ID, i, err)
		}
	}
	return nil
}

// Default is the built-in fallback used when the catalog file is missing,
// corrupt, or yields no valid templates.
func Default() Template {
	return Template{
		ID:    "single_full",
		Name:  "Single Full",
		Slots: 1,
		Rects: FullCanvasRects(),
	}
}
