package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/punchwatch/internal/metrics"
	"github.com/sadopc/punchwatch/internal/store"
)

// historyModel charts the per-day worked totals, one ISO week at a time.
type historyModel struct {
	store  *store.Store
	width  int
	height int

	offset int // weeks back from the current week (0 = current)
	totals []store.DayTotal

	chart barchart.Model
}

func newHistoryModel(s *store.Store) historyModel {
	return historyModel{
		store: s,
		chart: barchart.New(60, 12),
	}
}

func (m *historyModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m historyModel) weekStart() time.Time {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekday := today.Weekday()
	if weekday == time.Sunday {
		weekday = 7
	}
	monday := today.AddDate(0, 0, -int(weekday-time.Monday))
	return monday.AddDate(0, 0, -7*m.offset)
}

func (m historyModel) refresh() tea.Cmd {
	return func() tea.Msg {
		from := m.weekStart()
		totals, _ := m.store.ListDayTotals(from, from.AddDate(0, 0, 7))
		return historyDataMsg{totals: totals}
	}
}

func (m historyModel) update(msg tea.Msg) (historyModel, tea.Cmd) {
	switch msg := msg.(type) {
	case historyDataMsg:
		m.totals = msg.totals
		m.buildChart()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			m.offset++
			return m, m.refresh()
		case key.Matches(msg, keys.Right):
			if m.offset > 0 {
				m.offset--
			}
			return m, m.refresh()
		}
	}
	return m, nil
}

func (m *historyModel) buildChart() {
	chartWidth := m.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 12
	if m.height > 30 {
		chartHeight = 16
	}

	m.chart = barchart.New(chartWidth, chartHeight)

	byDate := make(map[string]store.DayTotal, len(m.totals))
	for _, dt := range m.totals {
		byDate[dt.Date] = dt
	}

	from := m.weekStart()
	var bars []barchart.BarData
	for d := from; d.Before(from.AddDate(0, 0, 7)); d = d.AddDate(0, 0, 1) {
		label := d.Format("Mon 02")

		value := barchart.BarValue{Style: lipgloss.NewStyle().Foreground(colorSubtle)}
		if dt, ok := byDate[d.Format("2006-01-02")]; ok {
			value.Value = float64(dt.WorkedMinutes) / 60.0
			value.Style = lipgloss.NewStyle().Foreground(colorPrimary)
			if dt.HalfDay {
				value.Style = lipgloss.NewStyle().Foreground(colorHighlight)
			}
		}

		bars = append(bars, barchart.BarData{
			Label:  label,
			Values: []barchart.BarValue{value},
		})
	}

	m.chart.PushAll(bars)
	m.chart.Draw()
}

func (m historyModel) view() string {
	w := m.width - 4

	from := m.weekStart()
	to := from.AddDate(0, 0, 6)
	dateLabel := mutedStyle.Render(fmt.Sprintf("%s — %s", from.Format("Jan 02"), to.Format("Jan 02, 2006")))

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("History"), "  ", dateLabel,
	)

	chartView := m.chart.View()
	tableView := m.renderWeekTable(w)
	nav := mutedStyle.Render("  ←/→: navigate weeks")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", chartView, "", tableView, "", nav,
		),
	)
}

func (m historyModel) renderWeekTable(w int) string {
	if len(m.totals) == 0 {
		return mutedStyle.Render("  No data for this week")
	}

	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-12s %10s %10s", "Date", "Worked", "Day")))
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(w-6, 36))))

	sum := 0
	for _, dt := range m.totals {
		kind := "full"
		if dt.HalfDay {
			kind = "half"
		}
		rows = append(rows, fmt.Sprintf("  %-12s %10s %10s", dt.Date, metrics.FormatMinutes(dt.WorkedMinutes), kind))
		sum += dt.WorkedMinutes
	}
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(w-6, 36))))
	rows = append(rows, fmt.Sprintf("  %-12s %10s", "Total", highlightStyle.Render(metrics.FormatMinutes(sum))))

	return strings.Join(rows, "\n")
}
