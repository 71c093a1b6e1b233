// Package tui renders the persisted poll state in the terminal. The UI is a
// thin consumer: all metrics come from the store, written by the poller.
package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/punchwatch/internal/export"
	"github.com/sadopc/punchwatch/internal/store"
)

// refreshEvery controls how often the status view re-reads the store.
const refreshEvery = 5 * time.Second

// App is the root Bubble Tea model.
type App struct {
	store   *store.Store
	checker Checker
	width   int
	height  int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	statusView statusModel
	history    historyModel
	settings   settingsModel

	help   help.Model
	status string
}

func NewApp(s *store.Store, checker Checker) App {
	h := help.New()
	h.ShowAll = false

	return App{
		store:      s,
		checker:    checker,
		activeView: viewStatus,
		statusView: newStatusModel(s),
		history:    newHistoryModel(s),
		settings:   newSettingsModel(s),
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.statusView.refresh(),
		tickCmd(),
	)
}

func tickCmd() tea.Cmd {
	return tea.Tick(refreshEvery, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.statusView.setSize(a.width, contentHeight)
		a.history.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tickMsg:
		return a, tea.Batch(a.statusView.refresh(), tickCmd())

	case statusMsg:
		a.status = msg.text
		return a, nil

	case settingsSavedMsg:
		if msg.tokenChanged {
			// Fresh token: kick the poller immediately.
			a.checker.ForceCheck()
			a.status = "Settings saved, checking…"
		} else {
			a.status = "Settings saved"
		}
		return a, a.statusView.refresh()

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		return a, nil

	case tea.KeyMsg:
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}
		if a.settings.formActive {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Refresh):
			a.checker.ForceCheck()
			a.status = "Checking…"
			return a, a.statusView.refresh()
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewStatus
			return a, a.statusView.refresh()
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewHistory
			return a, a.history.refresh()
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewSettings
			return a, nil
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % 3
			switch a.activeView {
			case viewStatus:
				return a, a.statusView.refresh()
			case viewHistory:
				return a, a.history.refresh()
			}
			return a, nil
		}
	}

	return a.updateActiveView(msg)
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	// Data messages go to their owner regardless of the active view.
	switch msg.(type) {
	case statusDataMsg:
		a.statusView, cmd = a.statusView.update(msg)
		return a, cmd
	case historyDataMsg:
		a.history, cmd = a.history.update(msg)
		return a, cmd
	}

	switch a.activeView {
	case viewStatus:
		a.statusView, cmd = a.statusView.update(msg)
	case viewHistory:
		a.history, cmd = a.history.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

var exportFormats = []string{"JSON", "CSV"}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(exportFormats)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		format := exportFormats[a.exportCursor]
		a.exportPicking = false
		return a, a.exportCmd(format)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) exportCmd(format string) tea.Cmd {
	return func() tea.Msg {
		to := time.Now().AddDate(0, 0, 1)
		from := to.AddDate(0, 0, -91)
		totals, err := a.store.ListDayTotals(from, to)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export failed: %v", err), isError: true}
		}

		home, _ := os.UserHomeDir()
		stamp := time.Now().Format("2006-01-02")
		var path string
		if format == "CSV" {
			path = filepath.Join(home, fmt.Sprintf("punchwatch-%s.csv", stamp))
			err = export.ToCSV(totals, path)
		} else {
			path = filepath.Join(home, fmt.Sprintf("punchwatch-%s.json", stamp))
			err = export.ToJSON(totals, path)
		}
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export failed: %v", err), isError: true}
		}
		return exportDoneMsg{path: path}
	}
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading…"
	}

	header := a.renderHeader()

	var content string
	switch a.activeView {
	case viewStatus:
		content = a.statusView.view()
	case viewHistory:
		content = a.history.view()
	case viewSettings:
		content = a.settings.view()
	}

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	footer := a.renderFooter()
	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(label))
		}
	}
	return headerStyle.Render(lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...))
}

func (a App) renderFooter() string {
	if a.status != "" {
		return footerStyle.Render(statusBarStyle.Render(a.status) + "  " + a.help.View(keys))
	}
	return footerStyle.Render(a.help.View(keys))
}

func (a App) renderExportPicker() string {
	w := a.width - 4
	var rows []string
	rows = append(rows, titleStyle.Render("Export history (last 90 days)"))
	for i, f := range exportFormats {
		cursor := "  "
		if i == a.exportCursor {
			cursor = "> "
		}
		rows = append(rows, cursor+f)
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
