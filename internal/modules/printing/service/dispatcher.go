package service

import (
	"context"
	"log/slog"

	"photobooth/internal/modules/printing/domain"
	printingout "photobooth/internal/modules/printing/port/out"
)

// Dispatcher resolves the configured printer and hands artifacts to the
// spooler. It is synchronous by design; the session controller wraps
// submissions in a worker so the control loop never blocks on the printer.
type Dispatcher struct {
	spooler printingout.Spooler
	prefs   printingout.PrefsStore
	options []string
	logger  *slog.Logger
}

func NewDispatcher(spooler printingout.Spooler, prefs printingout.PrefsStore, options []string, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{spooler: spooler, prefs: prefs, options: options, logger: logger}
}

// Submit prints the artifact. An explicit printer overrides the persisted
// preference; failure to read the preference falls back to the default queue.
func (d *Dispatcher) Submit(ctx context.Context, artifactPath, printer string) error {
	if printer == "" {
		stored, err := d.prefs.LoadPrinter(ctx)
		if err != nil {
			d.logger.Warn("printer preference unreadable, using default queue", "error", err)
		} else {
			printer = stored
		}
	}
	job := domain.Job{ArtifactPath: artifactPath, Printer: printer, Options: d.options}
	d.logger.Info("submitting print job", "artifact", artifactPath, "printer", printer)
	return d.spooler.Submit(ctx, job)
}

func (d *Dispatcher) Printer(ctx context.Context) (string, error) {
	return d.prefs.LoadPrinter(ctx)
}

func (d *Dispatcher) SetPrinter(ctx context.Context, name string) error {
	return d.prefs.SavePrinter(ctx, name)
}
