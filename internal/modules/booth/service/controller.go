package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"photobooth/internal/modules/booth/domain"
	"photobooth/internal/modules/booth/dto"
	boothout "photobooth/internal/modules/booth/port/out"
	capturedto "photobooth/internal/modules/capture/dto"
	capturein "photobooth/internal/modules/capture/port/in"
	composedto "photobooth/internal/modules/compose/dto"
	composein "photobooth/internal/modules/compose/port/in"
	printingdto "photobooth/internal/modules/printing/dto"
	printingin "photobooth/internal/modules/printing/port/in"
	templatedomain "photobooth/internal/modules/template/domain"
	templatedto "photobooth/internal/modules/template/dto"
	templatein "photobooth/internal/modules/template/port/in"
	"photobooth/internal/platform/clock"
	"photobooth/internal/platform/id"
)

// Settings are the kiosk timing knobs, all sourced from configuration.
type Settings struct {
	CountdownSeconds  int
	InactivitySeconds int
	QuickReviewSecs   float64
	PostPrintDelaySec float64
}

type eventKind int

const (
	eventAction eventKind = iota
	eventPrintDone
)

type event struct {
	kind       eventKind
	action     domain.Action
	generation uint64
	sessionID  string
	artifact   string
	ok         bool
	message    string
}

// Controller owns the one live CaptureSession and serializes every
// mutation through its Run goroutine. Input arrives through an event
// queue; capture and compose run inline on that goroutine; printing is
// the one background task, its result posted back as an event.
type Controller struct {
	clock    clock.Clock
	ids      id.Generator
	catalog  templatein.Usecase
	capture  capturein.Usecase
	compose  composein.Usecase
	printing printingin.Usecase
	journal  boothout.Journal
	logger   *slog.Logger
	settings Settings

	events chan event

	mu              sync.Mutex
	sess            *domain.Session
	templates       []templatedomain.Template
	sessionID       string
	sessionStart    time.Time
	quickReviewDone time.Time
	attractReturn   time.Time
}

func NewController(
	clk clock.Clock,
	ids id.Generator,
	catalog templatein.Usecase,
	capture capturein.Usecase,
	compose composein.Usecase,
	printing printingin.Usecase,
	journal boothout.Journal,
	settings Settings,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		clock:    clk,
		ids:      ids,
		catalog:  catalog,
		capture:  capture,
		compose:  compose,
		printing: printing,
		journal:  journal,
		logger:   logger,
		settings: settings,
		events:   make(chan event, 32),
		sess:     domain.NewSession(templatedomain.Default(), 0, settings.CountdownSeconds),
	}
}

// Run drives the session until ctx is cancelled. A 1 Hz tick serves the
// countdown and the inactivity watchdog; a faster tick settles the
// short quick-review and post-print dwells.
func (c *Controller) Run(ctx context.Context) error {
	c.loadTemplates(ctx)

	second := time.NewTicker(time.Second)
	defer second.Stop()
	fast := time.NewTicker(200 * time.Millisecond)
	defer fast.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-second.C:
			c.handleSecondTick(ctx)
		case <-fast.C:
			c.handleFastTick(ctx)
		case ev := <-c.events:
			c.handleEvent(ctx, ev)
		}
	}
}

// Dispatch queues one input action. A full queue drops the input; a
// kiosk customer mashing buttons must never block a hardware callback.
func (c *Controller) Dispatch(action string) {
	a := domain.Action(action)
	switch a {
	case domain.ActionNext, domain.ActionPrev, domain.ActionShutter, domain.ActionEnter, domain.ActionCancel:
	default:
		c.logger.Debug("unknown input action dropped", "action", action)
		return
	}
	select {
	case c.events <- event{kind: eventAction, action: a}:
	default:
		c.logger.Warn("input queue full, action dropped", "action", action)
	}
}

// Snapshot copies the session state for rendering.
func (c *Controller) Snapshot() dto.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	captures := make([]string, len(c.sess.Captures))
	copy(captures, c.sess.Captures)
	selected := make([]int, len(c.sess.Selected))
	copy(selected, c.sess.Selected)
	return dto.Snapshot{
		State:        string(c.sess.State),
		TemplateID:   c.sess.Template.ID,
		TemplateName: c.sess.Template.Name,
		Slots:        c.sess.Template.Slots,
		ToTake:       c.sess.ToTake,
		Taken:        c.sess.Taken,
		Captures:     captures,
		Selected:     selected,
		Cursor:       c.sess.Cursor,
		Filter:       string(c.sess.Filter()),
		Composed:     c.sess.Composed,
		Countdown:    c.sess.Countdown,
		PrintError:   c.sess.PrintError,
	}
}

func (c *Controller) History(ctx context.Context, limit int) ([]dto.SessionInfo, error) {
	records, err := c.journal.RecentSessions(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SessionInfo, 0, len(records))
	for _, r := range records {
		out = append(out, dto.SessionInfo{
			ID:         r.ID,
			TemplateID: r.TemplateID,
			Slots:      r.Slots,
			Taken:      r.Taken,
			Selected:   r.Selected,
			Filter:     r.Filter,
			Artifact:   r.Artifact,
			Outcome:    string(r.Outcome),
			StartedAt:  r.StartedAt,
			EndedAt:    r.EndedAt,
		})
	}
	return out, nil
}

func (c *Controller) Prints(ctx context.Context, limit int) ([]dto.PrintInfo, error) {
	records, err := c.journal.RecentPrints(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PrintInfo, 0, len(records))
	for _, r := range records {
		out = append(out, dto.PrintInfo{
			ID:          r.ID,
			SessionID:   r.SessionID,
			Artifact:    r.Artifact,
			Printer:     r.Printer,
			OK:          r.OK,
			Message:     r.Message,
			SubmittedAt: r.SubmittedAt,
		})
	}
	return out, nil
}

// loadTemplates resolves the catalog once per process. The catalog
// itself falls back to the built-in default, so an empty result here
// only happens on a hard store error, which also falls back.
func (c *Controller) loadTemplates(ctx context.Context) {
	listed, err := c.catalog.List(ctx)
	if err != nil || len(listed) == 0 {
		c.logger.Warn("template catalog unavailable, using default", "error", err)
		listed = nil
	}
	templates := make([]templatedomain.Template, 0, len(listed))
	for _, t := range listed {
		templates = append(templates, toDomainTemplate(t))
	}
	if len(templates) == 0 {
		templates = []templatedomain.Template{templatedomain.Default()}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.templates = templates
	c.sess.SetTemplate(c.templates[0], 0)
}

func (c *Controller) handleEvent(ctx context.Context, ev event) {
	switch ev.kind {
	case eventAction:
		c.handleAction(ctx, ev.action)
	case eventPrintDone:
		c.handlePrintDone(ctx, ev)
	}
}

func (c *Controller) handleAction(ctx context.Context, action domain.Action) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	prevState := c.sess.State
	pending := c.sessionRecord(now, domain.OutcomeCancelled)

	effect := c.sess.HandleAction(action, now)

	if prevState == domain.StateAttract && c.sess.State == domain.StateTemplate {
		c.sessionID = c.ids.New()
		c.sessionStart = now
		c.logger.Info("session started", "session", c.sessionID, "template", c.sess.Template.ID)
	}
	if prevState != domain.StateAttract && c.sess.State == domain.StateAttract {
		c.clearDeadlines()
		c.endSession(ctx, pending)
	}

	switch effect {
	case domain.EffectCycleTemplateNext:
		c.cycleTemplate(1)
	case domain.EffectCycleTemplatePrev:
		c.cycleTemplate(-1)
	case domain.EffectCaptureNow:
		c.captureStill(ctx)
	case domain.EffectCompose:
		c.composePage(ctx)
	case domain.EffectPrint:
		c.submitPrint(ctx)
	}
}

func (c *Controller) handleSecondTick(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sess.TickCountdown() == domain.EffectCaptureNow {
		c.captureStill(ctx)
		return
	}

	now := c.clock.Now()
	timeout := time.Duration(c.settings.InactivitySeconds) * time.Second
	if c.sess.InactivityExpired(now, timeout) {
		record := c.sessionRecord(now, domain.OutcomeTimeout)
		c.logger.Info("inactivity watchdog reset", "session", c.sessionID, "state", string(c.sess.State))
		c.sess.Reset(c.sess.Template, c.sess.TemplateIdx)
		c.clearDeadlines()
		c.endSession(ctx, record)
	}
}

func (c *Controller) handleFastTick(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	if !c.quickReviewDone.IsZero() && !now.Before(c.quickReviewDone) {
		c.quickReviewDone = time.Time{}
		c.sess.FinishQuickReview()
	}
	if !c.attractReturn.IsZero() && !now.Before(c.attractReturn) && c.sess.State == domain.StatePrinting {
		c.attractReturn = time.Time{}
		record := c.sessionRecord(now, domain.OutcomePrinted)
		c.sess.Reset(c.sess.Template, c.sess.TemplateIdx)
		c.endSession(ctx, record)
	}
}

func (c *Controller) handlePrintDone(ctx context.Context, ev event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	printRecord := domain.PrintRecord{
		ID:          c.ids.New(),
		SessionID:   ev.sessionID,
		Artifact:    ev.artifact,
		OK:          ev.ok,
		Message:     ev.message,
		SubmittedAt: now,
	}

	// A result arriving after the session reset is journaled for the
	// operator (the printer may well have consumed paper) but never
	// touches the session that replaced it.
	if ev.generation != c.sess.Generation {
		c.logger.Info("stale print result ignored", "session", ev.sessionID, "ok", ev.ok)
		printRecord.Message = staleMessage(ev.message)
		if err := c.journal.RecordPrint(ctx, printRecord); err != nil {
			c.logger.Warn("print journal write failed", "error", err)
		}
		return
	}

	if err := c.journal.RecordPrint(ctx, printRecord); err != nil {
		c.logger.Warn("print journal write failed", "error", err)
	}

	c.sess.CompletePrint(ev.ok, ev.message)
	if ev.ok {
		c.logger.Info("print succeeded", "session", c.sessionID, "artifact", printRecord.Artifact)
		c.attractReturn = now.Add(time.Duration(c.settings.PostPrintDelaySec * float64(time.Second)))
		return
	}
	c.logger.Warn("print failed", "session", c.sessionID, "error", ev.message)
}

func (c *Controller) cycleTemplate(delta int) {
	n := len(c.templates)
	if n == 0 {
		return
	}
	idx := ((c.sess.TemplateIdx+delta)%n + n) % n
	c.sess.SetTemplate(c.templates[idx], idx)
}

func (c *Controller) captureStill(ctx context.Context) {
	seq := c.sess.Taken + 1
	out, err := c.capture.Still(ctx, capturedto.StillInput{Seq: seq})
	if err != nil {
		c.logger.Warn("capture unrecoverable, skipping shot", "seq", seq, "error", err)
		c.sess.SkipFailedCapture()
	} else {
		c.sess.RecordCapture(out.Path)
	}
	dwell := time.Duration(c.settings.QuickReviewSecs * float64(time.Second))
	c.quickReviewDone = c.clock.Now().Add(dwell)
}

func (c *Controller) composePage(ctx context.Context) {
	out, err := c.compose.Compose(ctx, composedto.ComposeInput{
		PhotoPaths: c.sess.SelectedPaths(),
		Filter:     string(c.sess.Filter()),
		TemplateID: c.sess.Template.ID,
	})
	if err != nil {
		c.logger.Error("compose failed", "session", c.sessionID, "error", err)
		return
	}
	c.sess.SetComposed(out.Path)
}

// submitPrint runs the one blocking external call off the control
// goroutine. The session generation travels with the job so a result
// that arrives after a reset is discarded.
func (c *Controller) submitPrint(ctx context.Context) {
	artifact := c.sess.Composed
	generation := c.sess.Generation
	sessionID := c.sessionID
	c.logger.Info("print submitted", "session", sessionID, "artifact", artifact)
	go func() {
		err := c.printing.Submit(context.WithoutCancel(ctx), printingdto.SubmitInput{ArtifactPath: artifact})
		ev := event{kind: eventPrintDone, generation: generation, sessionID: sessionID, artifact: artifact, ok: err == nil}
		if err != nil {
			ev.message = err.Error()
		}
		c.events <- ev
	}()
}

// sessionRecord captures the journal row before a reset wipes the
// fields it needs.
func (c *Controller) sessionRecord(now time.Time, outcome domain.SessionOutcome) domain.SessionRecord {
	return domain.SessionRecord{
		ID:         c.sessionID,
		TemplateID: c.sess.Template.ID,
		Slots:      c.sess.Template.Slots,
		Taken:      c.sess.Taken,
		Selected:   len(c.sess.Selected),
		Filter:     string(c.sess.Filter()),
		Artifact:   c.sess.Composed,
		Outcome:    outcome,
		StartedAt:  c.sessionStart,
		EndedAt:    now,
	}
}

func (c *Controller) endSession(ctx context.Context, record domain.SessionRecord) {
	if record.ID == "" {
		return
	}
	if err := c.journal.RecordSession(ctx, record); err != nil {
		c.logger.Warn("session journal write failed", "error", err)
	}
	c.logger.Info("session ended", "session", record.ID, "outcome", string(record.Outcome))
	c.sessionID = ""
}

func staleMessage(message string) string {
	if message == "" {
		return "completed after session reset"
	}
	return "completed after session reset: " + message
}

func (c *Controller) clearDeadlines() {
	c.quickReviewDone = time.Time{}
	c.attractReturn = time.Time{}
}

func toDomainTemplate(t templatedto.TemplateOutput) templatedomain.Template {
	rects := make([]templatedomain.Rect, 0, len(t.Rects))
	for _, r := range t.Rects {
		rects = append(rects, templatedomain.Rect{
			LeftPct:   r.LeftPct,
			TopPct:    r.TopPct,
			WidthPct:  r.WidthPct,
			HeightPct: r.HeightPct,
		})
	}
	return templatedomain.Template{
		ID:            t.ID,
		Name:          t.Name,
		Slots:         t.Slots,
		Rects:         rects,
		Background:    t.Background,
		VintageEffect: t.VintageEffect,
		Effect:        t.Effect,
	}
}
