package domain

import "fmt"

// FilterKind names one of the built-in per-photo filters. Filters apply to
// placed photos only, never to the background, so template art stays crisp.
type FilterKind string

const (
	FilterNone       FilterKind = "none"
	FilterBlackWhite FilterKind = "black_white"
	FilterSepia      FilterKind = "sepia"
	FilterNewspaper  FilterKind = "newspaper"
)

// Filters returns the cycling order shown to the customer in review.
func Filters() []FilterKind {
	return []FilterKind{FilterNone, FilterBlackWhite, FilterSepia, FilterNewspaper}
}

func (f FilterKind) Validate() error {
	switch f {
	case FilterNone, FilterBlackWhite, FilterSepia, FilterNewspaper:
		return nil
	default:
		return fmt.Errorf("unknown filter %q", string(f))
	}
}

// FilterAt maps a cycling index onto a filter, wrapping in both directions.
func FilterAt(index int) FilterKind {
	filters := Filters()
	n := len(filters)
	return filters[((index%n)+n)%n]
}

// NoiseIntensity grades the newspaper filter's grain.
type NoiseIntensity string

const (
	NoiseLight  NoiseIntensity = "light"
	NoiseMedium NoiseIntensity = "medium"
	NoiseHeavy  NoiseIntensity = "heavy"
)

// Sigma is the standard deviation of the zero-mean Gaussian luminance noise
// added by the newspaper filter.
func (n NoiseIntensity) Sigma() float64 {
	switch n {
	case NoiseLight:
		return 15
	case NoiseHeavy:
		return 35
	default:
		return 25
	}
}
