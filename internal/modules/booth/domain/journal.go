package domain

import "time"

type SessionOutcome string

const (
	OutcomePrinted   SessionOutcome = "printed"
	OutcomeCancelled SessionOutcome = "cancelled"
	OutcomeTimeout   SessionOutcome = "timeout"
)

// SessionRecord is the journal row written when a customer session
// ends, however it ends.
type SessionRecord struct {
	ID         string
	TemplateID string
	Slots      int
	Taken      int
	Selected   int
	Filter     string
	Artifact   string
	Outcome    SessionOutcome
	StartedAt  time.Time
	EndedAt    time.Time
}

// PrintRecord is one settled print submission.
type PrintRecord struct {
	ID          string
	SessionID   string
	Artifact    string
	Printer     string
	OK          bool
	Message     string
	SubmittedAt time.Time
}
