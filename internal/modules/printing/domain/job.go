package domain

import "fmt"

// Job is one print submission: a composed artifact plus spooler options.
// An empty Printer means the system default queue.
type Job struct {
	ArtifactPath string
	Printer      string
	Options      []string
}

func (j Job) Validate() error {
	if j.ArtifactPath == "" {
		return fmt.Errorf("artifact path is required")
	}
	return nil
}
