package tui

import (
	"fmt"
	"time"

	"github.com/sadopc/punchwatch/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewStatus viewState = iota
	viewHistory
	viewSettings
)

var viewNames = []string{"Status", "History", "Settings"}

// Checker triggers an immediate background poll. Satisfied by *poller.Poller.
type Checker interface {
	ForceCheck()
}

// --- Messages ---

type statusDataMsg struct {
	display store.DisplayState
	halfDay bool
}

type historyDataMsg struct {
	totals []store.DayTotal
}

type settingsSavedMsg struct {
	tokenChanged bool
}

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

// formatClock renders minutes as a zero-padded "06:45" duration.
func formatClock(m int) string {
	if m < 0 {
		m = 0
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
