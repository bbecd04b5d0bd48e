package out

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"photobooth/internal/modules/printing/domain"
	printingout "photobooth/internal/modules/printing/port/out"
)

// LPSpooler submits jobs through the CUPS lp command.
type LPSpooler struct{}

func NewLPSpooler() printingout.Spooler {
	return &LPSpooler{}
}

func (s *LPSpooler) Submit(ctx context.Context, job domain.Job) error {
	if err := job.Validate(); err != nil {
		return err
	}
	args := []string{}
	if job.Printer != "" {
		args = append(args, "-d", job.Printer)
	}
	for _, opt := range job.Options {
		args = append(args, "-o", opt)
	}
	args = append(args, job.ArtifactPath)

	cmd := exec.CommandContext(ctx, "lp", args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return fmt.Errorf("lp: %s", msg)
	}
	return nil
}
