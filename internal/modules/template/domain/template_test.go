package domain_test

import (
	"strings"
	"testing"

	"photobooth/internal/modules/template/domain"
)

func TestTemplateValidate(t *testing.T) {
	t.Parallel()

	valid := domain.Template{
		ID:    "strip",
		Name:  "Photo Strip",
		Slots: 2,
		Rects: domain.TwoSlotRects(),
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid template rejected: %v", err)
	}

	cases := []struct {
		name    string
		mutate  func(*domain.Template)
		wantMsg string
	}{
		{
			name:    "missing id",
			mutate:  func(tpl *domain.Template) { tpl.ID = "" },
			wantMsg: "id is required",
		},
		{
			name:    "zero slots",
			mutate:  func(tpl *domain.Template) { tpl.Slots = 0 },
			wantMsg: "slots must be",
		},
		{
			name:    "too many slots",
			mutate:  func(tpl *domain.Template) { tpl.Slots = 5 },
			wantMsg: "slots must be",
		},
		{
			name:    "rect count mismatch",
			mutate:  func(tpl *domain.Template) { tpl.Rects = tpl.Rects[:1] },
			wantMsg: "rects for",
		},
		{
			name: "degenerate rect",
			mutate: func(tpl *domain.Template) {
				tpl.Rects = []domain.Rect{tpl.Rects[0], {LeftPct: 10, TopPct: 10}}
			},
			wantMsg: "must be positive",
		},
		{
			name: "origin off canvas",
			mutate: func(tpl *domain.Template) {
				tpl.Rects = []domain.Rect{tpl.Rects[0], {LeftPct: 120, TopPct: 10, WidthPct: 10, HeightPct: 10}}
			},
			wantMsg: "within the canvas",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			tpl := valid
			tpl.Rects = append([]domain.Rect(nil), valid.Rects...)
			tc.mutate(&tpl)
			err := tpl.Validate()
			if err == nil {
				t.Fatalf("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.wantMsg) {
				t.Fatalf("error %q does not mention %q", err, tc.wantMsg)
			}
		})
	}
}

func TestRectAcceptsOverhang(t *testing.T) {
	t.Parallel()
	// Rects may extend past the right or bottom edge; the compositor clips.
	r := domain.Rect{LeftPct: 80, TopPct: 90, WidthPct: 40, HeightPct: 30}
	if err := r.Validate(); err != nil {
		t.Fatalf("overhanging rect rejected: %v", err)
	}
}

func TestDefaultIsValid(t *testing.T) {
	t.Parallel()
	tpl := domain.Default()
	if err := tpl.Validate(); err != nil {
		t.Fatalf("fallback template invalid: %v", err)
	}
	if tpl.Slots != 1 {
		t.Fatalf("fallback template should be single-slot, got %d", tpl.Slots)
	}
}
