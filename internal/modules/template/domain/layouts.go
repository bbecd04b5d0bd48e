package domain

// Stock rect generators for the common booth layouts. The catalog uses them
// to fill in templates that declare slots but no rects, and the CLI exposes
// them for authoring new catalog entries.

func FullCanvasRects() []Rect {
	return []Rect{{LeftPct: 0, TopPct: 0, WidthPct: 100, HeightPct: 100}}
}

func SingleSlotRects() []Rect {
	return []Rect{{LeftPct: 1.6, TopPct: 25.35, WidthPct: 97.0, HeightPct: 38.5}}
}

// TwoSlotRects stacks two landscape slots vertically with a small gap.
func TwoSlotRects() []Rect {
	const (
		left   = 6.0
		top    = 10.0
		width  = 88.0
		height = 40.0
		gap    = 2.0
	)
	return []Rect{
		{LeftPct: left, TopPct: top, WidthPct: width, HeightPct: height},
		{LeftPct: left, TopPct: top + height + gap, WidthPct: width, HeightPct: height},
	}
}

// FourSlotRects arranges four slots in a 2x2 grid.
func FourSlotRects() []Rect {
	const (
		left   = 6.0
		top    = 12.0
		width  = 41.0
		height = 32.0
		hGap   = 6.0
		vGap   = 10.0
	)
	right := left + width + hGap
	bottom := top + height + vGap
	return []Rect{
		{LeftPct: left, TopPct: top, WidthPct: width, HeightPct: height},
		{LeftPct: right, TopPct: top, WidthPct: width, HeightPct: height},
		{LeftPct: left, TopPct: bottom, WidthPct: width, HeightPct: height},
		{LeftPct: right, TopPct: bottom, WidthPct: width, HeightPct: height},
	}
}

// RectsForSlots picks a stock layout for the given slot count. Returns nil
// when no stock layout exists (three-slot templates must declare rects).
func RectsForSlots(slots int) []Rect {
	switch slots {
	case 1:
		return SingleSlotRects()
	case 2:
		return TwoSlotRects()
	case 4:
		return FourSlotRects()
	default:
		return nil
	}
}
