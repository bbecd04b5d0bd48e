package domain

import (
	"fmt"
	"path/filepath"
	"time"
)

// Resolution of a still capture request.
type Resolution struct {
	Width  int
	Height int
}

var (
	StillResolution   = Resolution{Width: 1920, Height: 1080}
	PreviewResolution = Resolution{Width: 1280, Height: 720}
)

// CapturePath derives the relative storage path for the n-th capture of a
// session. Photos land in a date/time hierarchy so a day's sessions group
// naturally on disk and nothing is ever overwritten.
func CapturePath(now time.Time, seq int) string {
	return filepath.Join(
		now.Format("2006"), now.Format("01"), now.Format("02"),
		fmt.Sprintf("%s_%d.jpg", now.Format("150405"), seq),
	)
}
