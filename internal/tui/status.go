package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/sadopc/punchwatch/internal/metrics"
	"github.com/sadopc/punchwatch/internal/store"
)

// statusModel shows the bundle the last poll persisted. It never computes
// metrics itself; stale data is shown as stale.
type statusModel struct {
	store  *store.Store
	width  int
	height int

	display store.DisplayState
	halfDay bool
}

func newStatusModel(s *store.Store) statusModel {
	return statusModel{store: s}
}

func (m *statusModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m statusModel) refresh() tea.Cmd {
	return func() tea.Msg {
		halfDay := m.store.GetStateDefault(store.HalfDayKey(time.Now()), "false") == "true"
		return statusDataMsg{display: m.store.LoadDisplay(), halfDay: halfDay}
	}
}

func (m statusModel) update(msg tea.Msg) (statusModel, tea.Cmd) {
	if msg, ok := msg.(statusDataMsg); ok {
		m.display = msg.display
		m.halfDay = msg.halfDay
	}
	return m, nil
}

func (m statusModel) view() string {
	w := m.width - 4
	ds := m.display

	if !ds.HasData {
		content := lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Today"),
			"",
			mutedStyle.Render("No data yet. Set your API token in Settings (3), then press r."),
		)
		return panelStyle.Width(w).Render(content)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderWorkedPanel(w),
		m.renderLeavePanel(w),
		m.renderFooterLine(w),
	)
}

func (m statusModel) renderWorkedPanel(w int) string {
	ds := m.display
	snap := ds.Metrics

	worked := formatClock(snap.TotalWorkedMinutes)
	var readout, indicator string
	if ds.IsClockedIn {
		readout = workedActiveStyle.Width(w - 6).Render(worked)
		indicator = successStyle.Render("●  CLOCKED IN")
	} else {
		readout = workedStyle.Width(w - 6).Render(worked)
		indicator = mutedStyle.Render("■  CLOCKED OUT")
	}

	dot := lipgloss.NewStyle().Foreground(statusColors[snap.StatusColor]).Render("●")
	var progress string
	switch {
	case snap.IsOvertime:
		progress = fmt.Sprintf("%s %s overtime", dot, metrics.FormatMinutes(snap.OvertimeMinutes))
	case snap.IsCompleted:
		progress = fmt.Sprintf("%s target reached", dot)
	case snap.IsCloseToCompletion:
		progress = fmt.Sprintf("%s %s remaining — almost there", dot, metrics.FormatMinutes(snap.RemainingMinutes))
	default:
		progress = fmt.Sprintf("%s %s remaining", dot, metrics.FormatMinutes(snap.RemainingMinutes))
	}

	target := metrics.TargetMinutes(m.halfDay)
	targetLine := mutedStyle.Render(fmt.Sprintf("target %s", metrics.FormatMinutes(target)))
	if m.halfDay {
		targetLine = mutedStyle.Render(fmt.Sprintf("target %s (half day)", metrics.FormatMinutes(target)))
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		readout,
		indicator,
		progress,
		targetLine,
	)
	if ds.IsClockedIn {
		return activePanelStyle.Width(w).Render(content)
	}
	return panelStyle.Width(w).Render(content)
}

func (m statusModel) renderLeavePanel(w int) string {
	info := m.display.LeaveInfo

	var rows []string
	rows = append(rows, titleStyle.Render("Leave times"))
	rows = append(rows, fmt.Sprintf("  %-18s %s", "Normal", highlightStyle.Render(info.NormalLeaveTime)))
	rows = append(rows, fmt.Sprintf("  %-18s %s", "Early", highlightStyle.Render(info.EarlyLeaveTime)))
	rows = append(rows, fmt.Sprintf("  %-18s %s", "Target crossed", highlightStyle.Render(info.EstimatedCompletion)))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (m statusModel) renderFooterLine(w int) string {
	updated := "never"
	if !m.display.LastUpdated.IsZero() {
		updated = humanize.Time(m.display.LastUpdated)
	}
	return mutedStyle.Render(fmt.Sprintf("  Updated %s  ·  r: check now", updated))
}
