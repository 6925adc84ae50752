package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"streakling/internal/engine"
	"streakling/internal/timemachine"
	"streakling/internal/ui"
)

type boardModel struct {
	ctx context.Context
	svc *engine.Service

	width  int
	height int

	overview *engine.Overview
	selected int

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	overview *engine.Overview
	err      error
}

type toggledMsg struct {
	res *engine.ToggleResult
	err error
}

type advancedMsg struct {
	res *engine.AdvanceResult
	err error
}

type machineMsg struct {
	activated bool
	err       error
}

func newBoardModel(ctx context.Context, svc *engine.Service) boardModel {
	return boardModel{
		ctx:     ctx,
		svc:     svc,
		loading: true,
		lastLog: "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ov, err := m.svc.GetOverview(m.ctx)
		return loadedMsg{overview: ov, err: err}
	}
}

func (m boardModel) toggleCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.ToggleHabit(m.ctx, id)
		return toggledMsg{res: res, err: err}
	}
}

func (m boardModel) advanceCmd(days int) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.AdvanceDays(m.ctx, days)
		return advancedMsg{res: res, err: err}
	}
}

func (m boardModel) activateCmd() tea.Cmd {
	return func() tea.Msg {
		_, err := m.svc.ActivateTimeMachine(m.ctx)
		return machineMsg{activated: true, err: err}
	}
}

func (m boardModel) deactivateCmd() tea.Cmd {
	return func() tea.Msg {
		err := m.svc.DeactivateTimeMachine(m.ctx)
		return machineMsg{activated: false, err: err}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.overview = msg.overview
		if m.selected >= len(m.overview.Habits) {
			m.selected = len(m.overview.Habits) - 1
		}
		if m.selected < 0 {
			m.selected = 0
		}
		m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		return m, nil
	case toggledMsg:
		if msg.err != nil {
			m.lastLog = "Toggle failed: " + msg.err.Error()
			return m, nil
		}
		m.lastLog = toggleSummary(msg.res)
		return m, m.loadCmd()
	case advancedMsg:
		if msg.err != nil {
			if errors.Is(msg.err, timemachine.ErrInactive) {
				m.lastLog = "Time machine is off. Press t to activate."
			} else {
				m.lastLog = "Advance failed: " + msg.err.Error()
			}
			return m, nil
		}
		m.lastLog = fmt.Sprintf("Advanced %d day(s) to %s.", msg.res.Days, msg.res.To.Format(timemachine.DateFormat))
		return m, m.loadCmd()
	case machineMsg:
		if msg.err != nil {
			if errors.Is(msg.err, timemachine.ErrInactive) {
				m.lastLog = "Time machine is already off."
			} else {
				m.lastLog = "Time machine error: " + msg.err.Error()
			}
			return m, nil
		}
		if msg.activated {
			m.lastLog = "Time machine on. Progress reset; day 1 begins."
		} else {
			m.lastLog = "Time machine off. Back to real time."
		}
		return m, m.loadCmd()
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, m.loadCmd()
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.overview != nil && m.selected < len(m.overview.Habits)-1 {
				m.selected++
			}
			return m, nil
		case "c", " ", "enter":
			h := m.selectedHabit()
			if h == nil {
				m.lastLog = "No habit selected."
				return m, nil
			}
			m.lastLog = fmt.Sprintf("Toggling %s…", h.Name)
			return m, m.toggleCmd(h.ID)
		case "n":
			return m, m.advanceCmd(1)
		case "w":
			return m, m.advanceCmd(7)
		case "t":
			if m.overview != nil && m.overview.TimeMachineActive {
				return m, m.deactivateCmd()
			}
			return m, m.activateCmd()
		}
	}
	return m, nil
}

func (m boardModel) selectedHabit() *engine.HabitView {
	if m.overview == nil || m.selected < 0 || m.selected >= len(m.overview.Habits) {
		return nil
	}
	return &m.overview.Habits[m.selected]
}

func toggleSummary(res *engine.ToggleResult) string {
	switch {
	case res.Revived:
		return fmt.Sprintf("%s %s is back from the grave!", ui.IconHeart, res.State.Name)
	case res.Died:
		return fmt.Sprintf("%s %s has passed away…", ui.IconGrave, res.State.Name)
	case res.BecameEternal:
		return fmt.Sprintf("%s %s is now eternal!", ui.IconSparkle, res.State.Name)
	case res.Completed:
		return fmt.Sprintf("%s %s: streak %d.", ui.IconCheck, res.HabitName, res.State.CurrentStreak)
	default:
		return fmt.Sprintf("%s %s unmarked.", ui.IconCircle, res.HabitName)
	}
}

func (m boardModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}

	header := m.renderHeader()
	sidebar := m.renderSidebar()
	main := m.renderMain()
	footer := m.renderFooter()

	// Simple 2-column layout.
	leftW := 26
	if m.width > 0 {
		maxLeft := m.width / 2
		if maxLeft < leftW {
			leftW = maxLeft
		}
		if leftW < 18 {
			leftW = 18
		}
	}

	linesLeft := strings.Split(sidebar, "\n")
	linesRight := strings.Split(main, "\n")
	max := len(linesLeft)
	if len(linesRight) > max {
		max = len(linesRight)
	}

	var body strings.Builder
	for i := 0; i < max; i++ {
		l := ""
		r := ""
		if i < len(linesLeft) {
			l = linesLeft[i]
		}
		if i < len(linesRight) {
			r = linesRight[i]
		}
		body.WriteString(padRight(l, leftW))
		body.WriteString("  ")
		body.WriteString(r)
		body.WriteString("\n")
	}

	return header + "\n" + body.String() + footer
}

func (m boardModel) renderHeader() string {
	if m.overview == nil {
		return "Streakling — loading…"
	}
	date := m.overview.Date.Format("Mon, Jan 2 2006")
	if m.overview.TimeMachineActive {
		return fmt.Sprintf("Streakling | %s %s (day %d of simulation)", ui.IconClock, date, m.overview.DayNumber)
	}
	return fmt.Sprintf("Streakling | %s", date)
}

func (m boardModel) renderSidebar() string {
	lines := []string{"Today"}
	if m.overview != nil {
		done := 0
		for _, h := range m.overview.Habits {
			if h.Completed {
				done++
			}
		}
		lines = append(lines, fmt.Sprintf("- %d/%d completed", done, len(m.overview.Habits)))
		if m.overview.TimeMachineActive {
			lines = append(lines, "- time machine ON")
		}
	}
	lines = append(lines, "")
	lines = append(lines, "Keys")
	lines = append(lines, "- ↑/↓ or j/k: move")
	lines = append(lines, "- c/space: toggle done")
	lines = append(lines, "- n: next day")
	lines = append(lines, "- w: skip a week")
	lines = append(lines, "- t: time machine on/off")
	lines = append(lines, "- r: refresh")
	lines = append(lines, "- q: quit")
	return strings.Join(lines, "\n")
}

func (m boardModel) renderMain() string {
	if m.loading {
		return "Loading…"
	}
	if m.overview == nil || len(m.overview.Habits) == 0 {
		return "Habits\n\n(none yet — add one with `streak add`)"
	}

	var out []string
	out = append(out, "Habits")
	for i, h := range m.overview.Habits {
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		out = append(out, fmt.Sprintf("%s%s %s %s — streak %d (%s)",
			cursor,
			ui.CompletionIcon(h.Completed),
			h.State.Emoji(),
			h.Name,
			h.State.CurrentStreak,
			h.DisplayStage.DisplayName,
		))
	}

	if h := m.selectedHabit(); h != nil {
		out = append(out, "")
		out = append(out, "Creature")
		out = append(out, fmt.Sprintf("- %s the %s %s", h.State.Name, h.State.AnimalType.DisplayName(), h.State.AnimalType.Emoji()))
		out = append(out, fmt.Sprintf("- mood: %s %s", h.State.Mood, h.State.Mood.Emoji()))
		out = append(out, fmt.Sprintf("- stage: %s", h.DisplayStage.DisplayName))
		out = append(out, fmt.Sprintf("- longest streak: %d", h.State.LongestStreak))
		if h.CompletedOn != nil {
			out = append(out, fmt.Sprintf("- last done: %s", humanize.Time(*h.CompletedOn)))
		}
		if h.State.IsDead {
			out = append(out, fmt.Sprintf("- died %d day(s) ago", h.State.DaysSinceDeath(m.overview.Date)))
		}
		if h.State.Eternal() {
			out = append(out, "- "+ui.BadgeEternal)
		}
		out = append(out, "")
		out = append(out, `"`+h.Message+`"`)
	}
	return strings.Join(out, "\n")
}

func (m boardModel) renderFooter() string {
	return "\n" + m.lastLog
}

func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}
