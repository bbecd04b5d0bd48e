package app

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	boothdto "photobooth/internal/modules/booth/dto"
	"photobooth/internal/ui/theme"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// The HUD needs only the input funnel and a read-only view of session state.

type boothPort interface {
	Dispatch(action string)
	Snapshot() boothdto.Snapshot
}

// ─── messages ────────────────────────────────────────────────────────────────

type refreshMsg struct {
	snapshot boothdto.Snapshot
}

const refreshInterval = 200 * time.Millisecond

// ─── key bindings ─────────────────────────────────────────────────────────────
// The keyboard stands in for the kiosk buttons during development; every key
// resolves to one of the five session actions before reaching the controller.

type keyMap struct {
	Next    key.Binding
	Prev    key.Binding
	Shutter key.Binding
	Enter   key.Binding
	Cancel  key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Next:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "next")),
		Prev:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "prev")),
		Shutter: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "shutter/select")),
		Enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Shutter, k.Enter, k.Cancel, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Shutter},
		{k.Enter, k.Cancel},
		{k.Help, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the kiosk HUD. It never mutates session state itself: keys
// become dispatched actions and the periodic refresh pulls a fresh
// snapshot to render.
type Model struct {
	booth    boothPort
	keys     keyMap
	help     help.Model
	showHelp bool
	snap     boothdto.Snapshot
	width    int
	height   int
}

func NewModel(booth boothPort) Model {
	return Model{
		booth: booth,
		keys:  defaultKeys(),
		help:  help.New(),
		snap:  booth.Snapshot(),
	}
}

func (m Model) Init() tea.Cmd {
	return m.refreshCmd()
}

func (m Model) refreshCmd() tea.Cmd {
	return tea.Tick(refreshInterval, func(time.Time) tea.Msg {
		return refreshMsg{snapshot: m.booth.Snapshot()}
	})
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = m.width

	case refreshMsg:
		m.snap = msg.snapshot
		return m, m.refreshCmd()

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = true
		case key.Matches(msg, m.keys.Next):
			m.booth.Dispatch("next")
		case key.Matches(msg, m.keys.Prev):
			m.booth.Dispatch("prev")
		case key.Matches(msg, m.keys.Shutter):
			m.booth.Dispatch("shutter")
		case key.Matches(msg, m.keys.Enter):
			m.booth.Dispatch("enter")
		case key.Matches(msg, m.keys.Cancel):
			m.booth.Dispatch("cancel")
		}
	}
	return m, nil
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	header := m.renderHeader()
	statusBar := m.renderStatusBar()
	contentH := m.height - lipgloss.Height(header) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	if m.showHelp {
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	} else {
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.renderStage())
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}

func (m Model) renderStage() string {
	switch m.snap.State {
	case "attract":
		return theme.Pane.Render(
			theme.Title.Render("photobooth") + "\n\n" +
				theme.Hot.Render("press the button to start"))
	case "template":
		return m.renderTemplatePicker()
	case "countdown":
		return theme.Countdown.Render(fmt.Sprintf("%d", m.snap.Countdown))
	case "capturing":
		return theme.Hot.Render("✷ smile ✷")
	case "quick_review":
		return theme.Pane.Render(
			theme.Title.Render(fmt.Sprintf("shot %d of %d", m.snap.Taken, m.snap.ToTake)) + "\n" +
				theme.Muted.Render(lastCapture(m.snap.Captures)))
	case "selection":
		return m.renderSelection()
	case "review":
		return m.renderReview()
	case "printing":
		return theme.PaneActive.Render(
			theme.Good.Render("printing…") + "\n" +
				theme.Muted.Render(filepath.Base(m.snap.Composed)))
	}
	return ""
}

func (m Model) renderTemplatePicker() string {
	body := theme.Title.Render("choose a layout") + "\n\n" +
		theme.Hot.Render("◀ "+m.snap.TemplateName+" ▶") + "\n" +
		theme.Muted.Render(fmt.Sprintf("%d photo slots · %d shots", m.snap.Slots, m.snap.ToTake))
	return theme.PaneActive.Render(body)
}

func (m Model) renderSelection() string {
	var b strings.Builder
	b.WriteString(theme.Title.Render(fmt.Sprintf("pick %d favorites (%d/%d)",
		m.snap.Slots, len(m.snap.Selected), m.snap.Slots)))
	b.WriteString("\n\n")

	picked := make(map[int]bool, len(m.snap.Selected))
	for _, idx := range m.snap.Selected {
		picked[idx] = true
	}
	cells := make([]string, 0, len(m.snap.Captures))
	for i := range m.snap.Captures {
		label := fmt.Sprintf(" %d ", i+1)
		switch {
		case i == m.snap.Cursor && picked[i]:
			label = theme.SlotCursor.Render("[✓" + label + "]")
		case i == m.snap.Cursor:
			label = theme.SlotCursor.Render("[" + label + "]")
		case picked[i]:
			label = theme.SlotPicked.Render(" ✓" + label + " ")
		default:
			label = theme.Muted.Render("  " + label + " ")
		}
		cells = append(cells, label)
	}
	b.WriteString(strings.Join(cells, " "))
	b.WriteString("\n\n")
	b.WriteString(theme.Muted.Render("space: pick · enter: continue"))
	return theme.PaneActive.Render(b.String())
}

func (m Model) renderReview() string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("your page"))
	b.WriteString("\n\n")
	b.WriteString(theme.Hot.Render("filter: ◀ " + m.snap.Filter + " ▶"))
	b.WriteString("\n")
	if m.snap.Composed != "" {
		b.WriteString(theme.Muted.Render(filepath.Base(m.snap.Composed)))
		b.WriteString("\n")
	}
	if m.snap.PrintError != "" {
		b.WriteString(theme.Bad.Render("print failed: " + m.snap.PrintError))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(theme.Muted.Render("enter: print · esc: start over"))
	return theme.PaneActive.Render(b.String())
}

func (m Model) renderHeader() string {
	left := theme.Title.Render("photobooth")
	right := theme.Muted.Render(m.snap.TemplateName)
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := theme.Muted.Render(m.snap.State)
	if m.snap.State == "countdown" || m.snap.State == "quick_review" {
		left += theme.Hot.Render(fmt.Sprintf("  %d/%d", m.snap.Taken, m.snap.ToTake))
	}
	right := theme.Muted.Render("?:help  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

func lastCapture(captures []string) string {
	if len(captures) == 0 {
		return ""
	}
	return filepath.Base(captures[len(captures)-1])
}
