package domain

import (
	"time"

	composedomain "photobooth/internal/modules/compose/domain"
	templatedomain "photobooth/internal/modules/template/domain"
)

type State string

const (
	StateAttract     State = "attract"
	StateTemplate    State = "template"
	StateCountdown   State = "countdown"
	StateCapturing   State = "capturing"
	StateQuickReview State = "quick_review"
	StateSelection   State = "selection"
	StateReview      State = "review"
	StatePrinting    State = "printing"
)

// Action is the five-symbol input vocabulary. Keyboard, GPIO buttons and
// the remote service all normalize to these before reaching the session.
type Action string

const (
	ActionNext    Action = "next"
	ActionPrev    Action = "prev"
	ActionShutter Action = "shutter"
	ActionEnter   Action = "enter"
	ActionCancel  Action = "cancel"
)

// Effect is what the session asks its controller to do after a
// transition. The session itself never touches hardware or disk.
type Effect int

const (
	EffectNone Effect = iota
	EffectCycleTemplateNext
	EffectCycleTemplatePrev
	EffectCaptureNow
	EffectCompose
	EffectPrint
)

// ExtraTakes is the margin of photos captured beyond the template's
// slot count, so the customer can discard bad takes.
const ExtraTakes = 2

// Session is the per-customer state machine. All mutation happens on
// the controller goroutine; Generation guards against results of
// background work landing on a session that has since been reset.
type Session struct {
	State       State
	Generation  uint64
	Template    templatedomain.Template
	TemplateIdx int
	ToTake      int
	Taken       int
	Captures    []string
	Selected    []int
	Cursor      int
	FilterIdx   int
	Composed    string
	Countdown   int
	LastInput   time.Time
	PrintError  string

	countdownStart int
}

func NewSession(template templatedomain.Template, templateIdx int, countdownStart int) *Session {
	s := &Session{countdownStart: countdownStart}
	s.Reset(template, templateIdx)
	s.Generation = 0
	return s
}

// Reset returns the session to attract mode and clears everything the
// customer accumulated. Capture files stay on disk.
func (s *Session) Reset(template templatedomain.Template, templateIdx int) {
	s.State = StateAttract
	s.Generation++
	s.SetTemplate(template, templateIdx)
	s.Captures = nil
	s.Selected = nil
	s.Cursor = 0
	s.FilterIdx = 0
	s.Composed = ""
	s.Countdown = 0
	s.PrintError = ""
}

// SetTemplate switches the active template and restarts the capture
// budget for it.
func (s *Session) SetTemplate(template templatedomain.Template, templateIdx int) {
	s.Template = template
	s.TemplateIdx = templateIdx
	s.ToTake = template.Slots + ExtraTakes
	s.Taken = 0
}

// HandleAction advances the state machine for one input event and
// reports the side effect the controller must run. Unknown or ignored
// inputs return EffectNone.
func (s *Session) HandleAction(action Action, now time.Time) Effect {
	s.LastInput = now

	switch s.State {
	case StateAttract:
		if action == ActionShutter || action == ActionEnter {
			s.beginSession()
		}
	case StateTemplate:
		switch action {
		case ActionNext:
			return EffectCycleTemplateNext
		case ActionPrev:
			return EffectCycleTemplatePrev
		case ActionShutter, ActionEnter:
			s.beginCountdown()
		case ActionCancel:
			s.Reset(s.Template, s.TemplateIdx)
		}
	case StateCountdown:
		switch action {
		case ActionShutter, ActionEnter:
			s.Countdown = 0
			s.State = StateCapturing
			return EffectCaptureNow
		case ActionCancel:
			s.Reset(s.Template, s.TemplateIdx)
		}
	case StateCapturing, StateQuickReview, StatePrinting:
		// Hardware is busy or the display is mid-dwell; input is dropped.
	case StateSelection:
		switch action {
		case ActionNext:
			s.moveCursor(1)
		case ActionPrev:
			s.moveCursor(-1)
		case ActionShutter:
			s.ToggleSelection()
		case ActionEnter:
			if len(s.Selected) == s.Template.Slots {
				s.State = StateReview
				return EffectCompose
			}
		case ActionCancel:
			s.Reset(s.Template, s.TemplateIdx)
		}
	case StateReview:
		switch action {
		case ActionNext:
			s.cycleFilter(1)
			s.PrintError = ""
			return EffectCompose
		case ActionPrev:
			s.cycleFilter(-1)
			s.PrintError = ""
			return EffectCompose
		case ActionShutter, ActionEnter:
			if s.Composed != "" {
				s.PrintError = ""
				s.State = StatePrinting
				return EffectPrint
			}
		case ActionCancel:
			s.Reset(s.Template, s.TemplateIdx)
		}
	}
	return EffectNone
}

// TickCountdown consumes one second of countdown. Reaching zero moves
// the session to capturing and demands exactly one capture.
func (s *Session) TickCountdown() Effect {
	if s.State != StateCountdown {
		return EffectNone
	}
	s.Countdown--
	if s.Countdown > 0 {
		return EffectNone
	}
	s.Countdown = 0
	s.State = StateCapturing
	return EffectCaptureNow
}

// RecordCapture registers a finished still and shows it briefly.
func (s *Session) RecordCapture(path string) {
	if s.State != StateCapturing {
		return
	}
	s.Captures = append(s.Captures, path)
	s.Taken++
	s.State = StateQuickReview
}

// SkipFailedCapture spends the shot without keeping anything, so a
// broken camera cannot trap the session in an endless countdown.
func (s *Session) SkipFailedCapture() {
	if s.State != StateCapturing {
		return
	}
	s.Taken++
	s.State = StateQuickReview
}

// FinishQuickReview advances past the post-shot dwell.
func (s *Session) FinishQuickReview() {
	if s.State != StateQuickReview {
		return
	}
	if s.Taken >= s.ToTake {
		s.State = StateSelection
		s.Cursor = 0
		s.Selected = nil
		return
	}
	s.beginCountdown()
}

// ToggleSelection flips the capture under the cursor in or out of the
// selected set. Selecting beyond the template's slot count is a no-op.
func (s *Session) ToggleSelection() {
	if len(s.Captures) == 0 {
		return
	}
	for i, idx := range s.Selected {
		if idx == s.Cursor {
			s.Selected = append(s.Selected[:i], s.Selected[i+1:]...)
			return
		}
	}
	if len(s.Selected) < s.Template.Slots {
		s.Selected = append(s.Selected, s.Cursor)
	}
}

// IsSelected reports whether the capture at index is in the selection.
func (s *Session) IsSelected(index int) bool {
	for _, idx := range s.Selected {
		if idx == index {
			return true
		}
	}
	return false
}

// SelectedPaths returns the chosen captures in selection order.
func (s *Session) SelectedPaths() []string {
	paths := make([]string, 0, len(s.Selected))
	for _, idx := range s.Selected {
		if idx >= 0 && idx < len(s.Captures) {
			paths = append(paths, s.Captures[idx])
		}
	}
	return paths
}

// Filter resolves the current filter index to its kind.
func (s *Session) Filter() composedomain.FilterKind {
	return composedomain.FilterAt(s.FilterIdx)
}

// SetComposed records a freshly composed artifact. Older artifacts are
// superseded, never deleted.
func (s *Session) SetComposed(path string) {
	s.Composed = path
}

// CompletePrint settles the one in-flight print job. Failure returns
// to review with the artifact intact so the customer can retry.
func (s *Session) CompletePrint(ok bool, message string) {
	if s.State != StatePrinting {
		return
	}
	if ok {
		return
	}
	s.PrintError = message
	s.State = StateReview
}

// InactivityExpired reports whether the watchdog should reset the
// session. Only the idle attract screen is exempt: a stale session is
// reclaimed from every other state, a wedged print included. The
// generation counter keeps a late print result from touching the
// session that replaces it.
func (s *Session) InactivityExpired(now time.Time, timeout time.Duration) bool {
	if s.State == StateAttract {
		return false
	}
	return now.Sub(s.LastInput) > timeout
}

func (s *Session) beginSession() {
	s.State = StateTemplate
	s.Captures = nil
	s.Selected = nil
	s.Cursor = 0
	s.FilterIdx = 0
	s.Composed = ""
	s.PrintError = ""
	s.SetTemplate(s.Template, s.TemplateIdx)
}

func (s *Session) beginCountdown() {
	s.State = StateCountdown
	s.Countdown = s.countdownStart
}

func (s *Session) moveCursor(delta int) {
	if len(s.Captures) == 0 {
		return
	}
	s.Cursor += delta
	if s.Cursor < 0 {
		s.Cursor = 0
	}
	if s.Cursor > len(s.Captures)-1 {
		s.Cursor = len(s.Captures) - 1
	}
}

func (s *Session) cycleFilter(delta int) {
	n := len(composedomain.Filters())
	s.FilterIdx = ((s.FilterIdx+delta)%n + n) % n
}
