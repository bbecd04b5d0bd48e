package dto

import "time"

// Snapshot is a copy of the live session state safe to read from the
// UI goroutine.
type Snapshot struct {
	State        string
	TemplateID   string
	TemplateName string
	Slots        int
	ToTake       int
	Taken        int
	Captures     []string
	Selected     []int
	Cursor       int
	Filter       string
	Composed     string
	Countdown    int
	PrintError   string
}

type SessionInfo struct {
	ID         string
	TemplateID string
	Slots      int
	Taken      int
	Selected   int
	Filter     string
	Artifact   string
	Outcome    string
	StartedAt  time.Time
	EndedAt    time.Time
}

type PrintInfo struct {
	ID          string
	SessionID   string
	Artifact    string
	Printer     string
	OK          bool
	Message     string
	SubmittedAt time.Time
}
