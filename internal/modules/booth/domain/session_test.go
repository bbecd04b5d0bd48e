package domain_test

import (
	"testing"
	"time"

	"photobooth/internal/modules/booth/domain"
	templatedomain "photobooth/internal/modules/template/domain"
)

func twoSlotTemplate() templatedomain.Template {
	return templatedomain.Template{
		ID:    "two_strip",
		Name:  "Two Strip",
		Slots: 2,
		Rects: templatedomain.TwoSlotRects(),
	}
}

func singleSlotTemplate() templatedomain.Template {
	return templatedomain.Default()
}

func startAt() time.Time {
	return time.Date(2026, 8, 1, 14, 0, 0, 0, time.UTC)
}

// runToSelection drives a fresh session through template choice and all
// captures until the selection screen.
func runToSelection(t *testing.T, s *domain.Session, now time.Time) {
	t.Helper()
	s.HandleAction(domain.ActionShutter, now)
	if s.State != domain.StateTemplate {
		t.Fatalf("expected template state, got %s", s.State)
	}
	s.HandleAction(domain.ActionEnter, now)
	for s.State != domain.StateSelection {
		switch s.State {
		case domain.StateCountdown:
			s.TickCountdown()
		case domain.StateCapturing:
			s.RecordCapture("photo.jpg")
		case domain.StateQuickReview:
			s.FinishQuickReview()
		default:
			t.Fatalf("unexpected state %s on the way to selection", s.State)
		}
	}
}

func TestToTakeIsSlotsPlusTwo(t *testing.T) {
	t.Parallel()
	for slots := 1; slots <= 4; slots++ {
		rects := templatedomain.RectsForSlots(slots)
		if rects == nil {
			rects = templatedomain.FullCanvasRects()
		}
		tpl := templatedomain.Template{ID: "t", Name: "t", Slots: slots, Rects: rects}
		s := domain.NewSession(tpl, 0, 10)
		if s.ToTake != slots+domain.ExtraTakes {
			t.Fatalf("slots=%d: expected toTake %d, got %d", slots, slots+2, s.ToTake)
		}
	}
}

func TestCountdownNaturalExpiryCapturesOnce(t *testing.T) {
	t.Parallel()
	s := domain.NewSession(twoSlotTemplate(), 0, 10)
	now := startAt()
	s.HandleAction(domain.ActionEnter, now)
	s.HandleAction(domain.ActionEnter, now)
	if s.State != domain.StateCountdown || s.Countdown != 10 {
		t.Fatalf("expected countdown at 10, got %s %d", s.State, s.Countdown)
	}

	captures := 0
	for i := 0; i < 10; i++ {
		if s.TickCountdown() == domain.EffectCaptureNow {
			captures++
		}
	}
	if captures != 1 {
		t.Fatalf("expected exactly one capture effect, got %d", captures)
	}
	if s.State != domain.StateCapturing {
		t.Fatalf("expected capturing, got %s", s.State)
	}
	// Further ticks must not fire again.
	if s.TickCountdown() != domain.EffectNone {
		t.Fatalf("tick after expiry must be inert")
	}
}

func TestCountdownSkipAheadCapturesOnce(t *testing.T) {
	t.Parallel()
	s := domain.NewSession(twoSlotTemplate(), 0, 10)
	now := startAt()
	s.HandleAction(domain.ActionEnter, now)
	s.HandleAction(domain.ActionEnter, now)
	s.TickCountdown()
	s.TickCountdown()

	if s.HandleAction(domain.ActionShutter, now) != domain.EffectCaptureNow {
		t.Fatalf("shutter during countdown must capture immediately")
	}
	if s.State != domain.StateCapturing {
		t.Fatalf("expected capturing, got %s", s.State)
	}
	if s.TickCountdown() != domain.EffectNone {
		t.Fatalf("stale tick after skip-ahead must not capture again")
	}
}

func TestCountdownIgnoresTemplateCycling(t *testing.T) {
	t.Parallel()
	s := domain.NewSession(twoSlotTemplate(), 0, 10)
	now := startAt()
	s.HandleAction(domain.ActionEnter, now)
	s.HandleAction(domain.ActionEnter, now)

	if s.HandleAction(domain.ActionNext, now) != domain.EffectNone {
		t.Fatalf("next during countdown must be ignored")
	}
	if s.State != domain.StateCountdown {
		t.Fatalf("expected countdown, got %s", s.State)
	}
}

func TestSelectionCapacityBounded(t *testing.T) {
	t.Parallel()
	s := domain.NewSession(singleSlotTemplate(), 0, 10)
	now := startAt()
	runToSelection(t, s, now)
	if len(s.Captures) != 3 {
		t.Fatalf("slots=1 expects 3 captures, got %d", len(s.Captures))
	}

	s.HandleAction(domain.ActionShutter, now)
	s.HandleAction(domain.ActionNext, now)
	s.HandleAction(domain.ActionShutter, now)
	if len(s.Selected) != 1 {
		t.Fatalf("selecting past capacity must be a no-op, got %d selected", len(s.Selected))
	}
	if s.Selected[0] != 0 {
		t.Fatalf("expected first capture to stay selected")
	}

	// Deselecting still works at capacity.
	s.HandleAction(domain.ActionPrev, now)
	s.HandleAction(domain.ActionShutter, now)
	if len(s.Selected) != 0 {
		t.Fatalf("expected deselection to succeed")
	}
}

func TestSelectionCursorClampsAtEdges(t *testing.T) {
	t.Parallel()
	s := domain.NewSession(singleSlotTemplate(), 0, 10)
	now := startAt()
	runToSelection(t, s, now)

	s.HandleAction(domain.ActionPrev, now)
	if s.Cursor != 0 {
		t.Fatalf("cursor must clamp at 0, got %d", s.Cursor)
	}
	for i := 0; i < 10; i++ {
		s.HandleAction(domain.ActionNext, now)
	}
	if s.Cursor != len(s.Captures)-1 {
		t.Fatalf("cursor must clamp at last capture, got %d", s.Cursor)
	}
}

func TestEnterComposesOnlyWhenSelectionFull(t *testing.T) {
	t.Parallel()
	s := domain.NewSession(twoSlotTemplate(), 0, 10)
	now := startAt()
	runToSelection(t, s, now)

	if s.HandleAction(domain.ActionEnter, now) != domain.EffectNone {
		t.Fatalf("enter with empty selection must be inert")
	}
	s.HandleAction(domain.ActionShutter, now)
	s.HandleAction(domain.ActionNext, now)
	s.HandleAction(domain.ActionShutter, now)
	if s.HandleAction(domain.ActionEnter, now) != domain.EffectCompose {
		t.Fatalf("enter with full selection must compose")
	}
	if s.State != domain.StateReview {
		t.Fatalf("expected review, got %s", s.State)
	}
}

func TestSingleSlotScenario(t *testing.T) {
	t.Parallel()
	s := domain.NewSession(singleSlotTemplate(), 0, 10)
	now := startAt()
	if s.ToTake != 3 {
		t.Fatalf("slots=1 expects toTake=3, got %d", s.ToTake)
	}
	runToSelection(t, s, now)

	s.HandleAction(domain.ActionNext, now)
	s.HandleAction(domain.ActionShutter, now)
	if got := s.SelectedPaths(); len(got) != 1 {
		t.Fatalf("expected one selected path, got %d", len(got))
	}
	if s.HandleAction(domain.ActionEnter, now) != domain.EffectCompose {
		t.Fatalf("expected compose effect")
	}
}

func TestFilterCyclingWraps(t *testing.T) {
	t.Parallel()
	s := domain.NewSession(singleSlotTemplate(), 0, 10)
	now := startAt()
	runToSelection(t, s, now)
	s.HandleAction(domain.ActionShutter, now)
	s.HandleAction(domain.ActionEnter, now)

	start := s.Filter()
	for i := 0; i < 4; i++ {
		if s.HandleAction(domain.ActionNext, now) != domain.EffectCompose {
			t.Fatalf("filter change must recompose")
		}
	}
	if s.Filter() != start {
		t.Fatalf("four next presses must wrap back to %s, got %s", start, s.Filter())
	}

	s.HandleAction(domain.ActionPrev, now)
	if s.Filter() == start {
		t.Fatalf("prev must move off the starting filter")
	}
}

func TestCancelResetsFromEveryCancelableState(t *testing.T) {
	t.Parallel()
	now := startAt()

	build := map[string]func() *domain.Session{
		"template": func() *domain.Session {
			s := domain.NewSession(twoSlotTemplate(), 0, 10)
			s.HandleAction(domain.ActionEnter, now)
			return s
		},
		"countdown": func() *domain.Session {
			s := domain.NewSession(twoSlotTemplate(), 0, 10)
			s.HandleAction(domain.ActionEnter, now)
			s.HandleAction(domain.ActionEnter, now)
			return s
		},
		"selection": func() *domain.Session {
			s := domain.NewSession(twoSlotTemplate(), 0, 10)
			runToSelection(t, s, now)
			return s
		},
		"review": func() *domain.Session {
			s := domain.NewSession(twoSlotTemplate(), 0, 10)
			runToSelection(t, s, now)
			s.HandleAction(domain.ActionShutter, now)
			s.HandleAction(domain.ActionNext, now)
			s.HandleAction(domain.ActionShutter, now)
			s.HandleAction(domain.ActionEnter, now)
			return s
		},
	}

	for name, setup := range build {
		s := setup()
		s.HandleAction(domain.ActionCancel, now)
		if s.State != domain.StateAttract {
			t.Fatalf("%s: cancel must reach attract, got %s", name, s.State)
		}
		if len(s.Captures) != 0 || len(s.Selected) != 0 {
			t.Fatalf("%s: cancel must clear captures and selection", name)
		}
		if s.Composed != "" {
			t.Fatalf("%s: cancel must drop the composed artifact reference", name)
		}
	}
}

func TestInactivityWatchdog(t *testing.T) {
	t.Parallel()
	s := domain.NewSession(twoSlotTemplate(), 0, 10)
	now := startAt()
	s.HandleAction(domain.ActionEnter, now)

	if s.InactivityExpired(now.Add(89*time.Second), 90*time.Second) {
		t.Fatalf("watchdog must not fire before the timeout")
	}
	if !s.InactivityExpired(now.Add(91*time.Second), 90*time.Second) {
		t.Fatalf("watchdog must fire after the timeout")
	}

	s.Reset(s.Template, s.TemplateIdx)
	if s.InactivityExpired(now.Add(time.Hour), 90*time.Second) {
		t.Fatalf("attract mode never times out")
	}
}

func TestInactivityWatchdogCoversStalledPrint(t *testing.T) {
	t.Parallel()
	s := domain.NewSession(singleSlotTemplate(), 0, 10)
	now := startAt()
	runToSelection(t, s, now)
	s.HandleAction(domain.ActionShutter, now)
	s.HandleAction(domain.ActionEnter, now)
	s.SetComposed("A4_140001.jpg")
	s.HandleAction(domain.ActionEnter, now)
	if s.State != domain.StatePrinting {
		t.Fatalf("expected printing, got %s", s.State)
	}

	// A spooler that never answers must not wedge the kiosk: printing
	// ignores input, so the watchdog is the only way back to attract.
	if !s.InactivityExpired(now.Add(10*time.Minute), 90*time.Second) {
		t.Fatalf("watchdog must fire in printing once input goes stale")
	}
}

func TestPrintFailureReturnsToReviewWithArtifact(t *testing.T) {
	t.Parallel()
	s := domain.NewSession(singleSlotTemplate(), 0, 10)
	now := startAt()
	runToSelection(t, s, now)
	s.HandleAction(domain.ActionShutter, now)
	s.HandleAction(domain.ActionEnter, now)
	s.SetComposed("A4_140001.jpg")

	if s.HandleAction(domain.ActionEnter, now) != domain.EffectPrint {
		t.Fatalf("enter in review with an artifact must print")
	}
	if s.State != domain.StatePrinting {
		t.Fatalf("expected printing, got %s", s.State)
	}
	// Input during printing is dropped.
	if s.HandleAction(domain.ActionCancel, now) != domain.EffectNone || s.State != domain.StatePrinting {
		t.Fatalf("printing must ignore input")
	}

	s.CompletePrint(false, "lp: queue unavailable")
	if s.State != domain.StateReview {
		t.Fatalf("failed print must return to review, got %s", s.State)
	}
	if s.Composed != "A4_140001.jpg" {
		t.Fatalf("failed print must keep the artifact")
	}
	if s.PrintError == "" {
		t.Fatalf("failed print must surface the error")
	}

	// Retry succeeds; session stays in printing for the confirmation dwell.
	s.HandleAction(domain.ActionEnter, now)
	s.CompletePrint(true, "")
	if s.State != domain.StatePrinting {
		t.Fatalf("successful print holds the confirmation screen")
	}
}

func TestReviewIgnoresPrintWithoutArtifact(t *testing.T) {
	t.Parallel()
	s := domain.NewSession(singleSlotTemplate(), 0, 10)
	now := startAt()
	runToSelection(t, s, now)
	s.HandleAction(domain.ActionShutter, now)
	s.HandleAction(domain.ActionEnter, now)

	if s.HandleAction(domain.ActionShutter, now) != domain.EffectNone {
		t.Fatalf("print without a composed artifact must be inert")
	}
	if s.State != domain.StateReview {
		t.Fatalf("expected review, got %s", s.State)
	}
}

func TestSkipFailedCaptureStillAdvances(t *testing.T) {
	t.Parallel()
	s := domain.NewSession(singleSlotTemplate(), 0, 10)
	now := startAt()
	s.HandleAction(domain.ActionEnter, now)
	s.HandleAction(domain.ActionEnter, now)

	for s.State != domain.StateSelection {
		switch s.State {
		case domain.StateCountdown:
			s.TickCountdown()
		case domain.StateCapturing:
			s.SkipFailedCapture()
		case domain.StateQuickReview:
			s.FinishQuickReview()
		}
	}
	if len(s.Captures) != 0 {
		t.Fatalf("skipped captures must not append photos")
	}
	if s.Taken != s.ToTake {
		t.Fatalf("skipped captures must still spend the take budget")
	}
}

func TestResetBumpsGeneration(t *testing.T) {
	t.Parallel()
	s := domain.NewSession(twoSlotTemplate(), 0, 10)
	gen := s.Generation
	s.Reset(s.Template, s.TemplateIdx)
	if s.Generation != gen+1 {
		t.Fatalf("reset must bump the generation, got %d -> %d", gen, s.Generation)
	}
}

func TestTemplateChangeResetsTakeBudget(t *testing.T) {
	t.Parallel()
	s := domain.NewSession(twoSlotTemplate(), 0, 10)
	now := startAt()
	s.HandleAction(domain.ActionEnter, now)

	if s.HandleAction(domain.ActionNext, now) != domain.EffectCycleTemplateNext {
		t.Fatalf("next in template state must request a cycle")
	}
	s.Taken = 2
	s.SetTemplate(singleSlotTemplate(), 1)
	if s.Taken != 0 {
		t.Fatalf("template change must reset the taken count")
	}
	if s.ToTake != 3 {
		t.Fatalf("template change must recompute toTake, got %d", s.ToTake)
	}
}
