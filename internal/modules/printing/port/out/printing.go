package out

import (
	"context"

	"photobooth/internal/modules/printing/domain"
)

// Spooler hands a job to the print system. Submit blocks until the spooler
// accepts or rejects the job; the session controller runs it off its control
// loop.
type Spooler interface {
	Submit(ctx context.Context, job domain.Job) error
}

// PrefsStore persists the operator's printer choice across restarts.
type PrefsStore interface {
	LoadPrinter(ctx context.Context) (string, error)
	SavePrinter(ctx context.Context, name string) error
}
