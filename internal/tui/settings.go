package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/punchwatch/internal/store"
)

type settingsModel struct {
	store  *store.Store
	width  int
	height int

	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	token   *string
	apiURL  *string
	halfDay *bool

	// Snapshot of the token before editing, to detect a refresh.
	prevToken string
}

func newSettingsModel(s *store.Store) settingsModel {
	token, apiURL := "", ""
	halfDay := false
	return settingsModel{
		store:   s,
		token:   &token,
		apiURL:  &apiURL,
		halfDay: &halfDay,
	}
}

func (m *settingsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(msg, keys.Enter) {
			return m.showForm()
		}
	}
	return m, nil
}

func (m settingsModel) showForm() (settingsModel, tea.Cmd) {
	*m.token = m.store.GetStateDefault(store.KeyAccessToken, "")
	*m.apiURL = m.store.GetStateDefault(store.KeyAPIURL, "")
	*m.halfDay = m.store.GetStateDefault(store.HalfDayKey(time.Now()), "false") == "true"
	m.prevToken = *m.token

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("API token").
				Description("Bearer token for the attendance API").
				EchoMode(huh.EchoModePassword).
				Value(m.token),
			huh.NewInput().Title("API URL").
				Description("Leave empty to keep the built-in endpoint").
				Value(m.apiURL),
			huh.NewConfirm().Title("Half day today?").
				Affirmative("Yes").Negative("No").
				Value(m.halfDay),
		).Title("Punchwatch"),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		m.saveSettings()
		tokenChanged := *m.token != m.prevToken && *m.token != ""
		return m, func() tea.Msg { return settingsSavedMsg{tokenChanged: tokenChanged} }
	}

	return m, cmd
}

func (m settingsModel) saveSettings() {
	m.store.SetState(store.KeyAccessToken, *m.token)
	m.store.SetState(store.KeyAPIURL, *m.apiURL)
	halfDay := "false"
	if *m.halfDay {
		halfDay = "true"
	}
	m.store.SetState(store.HalfDayKey(time.Now()), halfDay)
}

func (m settingsModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := titleStyle.Render("Settings")
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View()),
		)
	}

	token := m.store.GetStateDefault(store.KeyAccessToken, "")
	apiURL := m.store.GetStateDefault(store.KeyAPIURL, "")
	halfDay := m.store.GetStateDefault(store.HalfDayKey(time.Now()), "false")

	var rows []string
	rows = append(rows, titleStyle.Render("Settings"))
	rows = append(rows, "")
	rows = append(rows, settingRow("API token", maskToken(token)))
	rows = append(rows, settingRow("API URL", valueOr(apiURL, "(default)")))
	rows = append(rows, settingRow("Half day today", halfDay))
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("Press enter to edit. Saving a new token triggers a check."))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func settingRow(label, value string) string {
	return fmt.Sprintf("  %s %s",
		lipgloss.NewStyle().Width(20).Render(label),
		highlightStyle.Render(value),
	)
}

func maskToken(token string) string {
	if token == "" {
		return "(not set)"
	}
	if len(token) <= 8 {
		return strings.Repeat("*", len(token))
	}
	return token[:4] + strings.Repeat("*", 8) + token[len(token)-4:]
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
