package clock

import "time"

// Clock abstracts wall time so countdown, inactivity and quick-review
// deadlines stay deterministic in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock returns local wall time. Capture and artifact file names are
// derived from it, and the kiosk names files in the operator's timezone.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
