package domain_test

import (
	"image"
	"testing"

	"photobooth/internal/modules/compose/domain"
	templatedomain "photobooth/internal/modules/template/domain"
)

func TestPixelRectConvertsPercentages(t *testing.T) {
	t.Parallel()
	r := templatedomain.Rect{LeftPct: 10, TopPct: 20, WidthPct: 50, HeightPct: 25}
	got := domain.PixelRect(r, 1000, 800)
	want := image.Rect(100, 160, 600, 360)
	if got != want {
		t.Fatalf("PixelRect = %v, want %v", got, want)
	}
}

func TestPixelRectClipsOverhang(t *testing.T) {
	t.Parallel()
	r := templatedomain.Rect{LeftPct: 80, TopPct: 90, WidthPct: 40, HeightPct: 30}
	got := domain.PixelRect(r, 1000, 1000)
	want := image.Rect(800, 900, 1000, 1000)
	if got != want {
		t.Fatalf("overhanging rect not clipped to canvas: %v", got)
	}
}

func TestPixelRectFullCanvas(t *testing.T) {
	t.Parallel()
	r := templatedomain.Rect{LeftPct: 0, TopPct: 0, WidthPct: 100, HeightPct: 100}
	got := domain.PixelRect(r, 640, 480)
	if got != image.Rect(0, 0, 640, 480) {
		t.Fatalf("full-canvas rect = %v", got)
	}
}

func TestPolicyValidate(t *testing.T) {
	t.Parallel()
	if err := domain.PolicyFillCrop.Validate(); err != nil {
		t.Fatalf("fill_crop rejected: %v", err)
	}
	if err := domain.PolicyFitInside.Validate(); err != nil {
		t.Fatalf("fit_inside rejected: %v", err)
	}
	if err := domain.Policy("stretch").Validate(); err == nil {
		t.Fatalf("unknown policy accepted")
	}
}

func TestFilterAtWrapsBothDirections(t *testing.T) {
	t.Parallel()
	filters := domain.Filters()
	n := len(filters)
	if domain.FilterAt(0) != domain.FilterNone {
		t.Fatalf("index 0 should be the identity filter")
	}
	if domain.FilterAt(n) != filters[0] {
		t.Fatalf("index %d should wrap to the first filter", n)
	}
	if domain.FilterAt(-1) != filters[n-1] {
		t.Fatalf("index -1 should wrap to the last filter")
	}
	if domain.FilterAt(2*n+1) != filters[1] {
		t.Fatalf("large indexes should reduce modulo the cycle")
	}
}

func TestFilterValidate(t *testing.T) {
	t.Parallel()
	for _, f := range domain.Filters() {
		if err := f.Validate(); err != nil {
			t.Fatalf("built-in filter %s rejected: %v", f, err)
		}
	}
	if err := domain.FilterKind("solarize").Validate(); err == nil {
		t.Fatalf("unknown filter accepted")
	}
}

func TestNoiseSigmaGrades(t *testing.T) {
	t.Parallel()
	if s := domain.NoiseLight.Sigma(); s != 15 {
		t.Fatalf("light sigma = %v", s)
	}
	if s := domain.NoiseMedium.Sigma(); s != 25 {
		t.Fatalf("medium sigma = %v", s)
	}
	if s := domain.NoiseHeavy.Sigma(); s != 35 {
		t.Fatalf("heavy sigma = %v", s)
	}
	if s := domain.NoiseIntensity("").Sigma(); s != 25 {
		t.Fatalf("unset intensity should grade medium, got %v", s)
	}
}
