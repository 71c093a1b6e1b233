package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/punchwatch/internal/metrics"
	"github.com/sadopc/punchwatch/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

type fakeChecker struct {
	calls int
}

func (f *fakeChecker) ForceCheck() { f.calls++ }

func newTestApp(t *testing.T) (App, *store.Store, *fakeChecker) {
	t.Helper()
	s := newTestStore(t)
	checker := &fakeChecker{}
	app := NewApp(s, checker)

	m, _ := app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m.(App), s, checker
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// ============================================================
// Helpers
// ============================================================

func TestFormatClock(t *testing.T) {
	if got := formatClock(495); got != "08:15" {
		t.Fatalf("formatClock(495) = %q", got)
	}
	if got := formatClock(0); got != "00:00" {
		t.Fatalf("formatClock(0) = %q", got)
	}
}

func TestMaskToken(t *testing.T) {
	if got := maskToken(""); got != "(not set)" {
		t.Fatalf("empty token = %q", got)
	}
	if got := maskToken("short"); got != "*****" {
		t.Fatalf("short token = %q", got)
	}
	masked := maskToken("abcd1234efgh5678")
	if !strings.HasPrefix(masked, "abcd") || !strings.HasSuffix(masked, "5678") {
		t.Fatalf("long token = %q", masked)
	}
	if strings.Contains(masked, "1234efgh") {
		t.Fatal("middle of token leaked")
	}
}

// ============================================================
// Status view
// ============================================================

func TestStatusViewNoData(t *testing.T) {
	s := newTestStore(t)
	m := newStatusModel(s)
	m.setSize(100, 30)

	view := m.view()
	if !strings.Contains(view, "No data yet") {
		t.Fatalf("expected the empty hint, got:\n%s", view)
	}
}

func TestStatusViewShowsPersistedState(t *testing.T) {
	s := newTestStore(t)
	snap := metrics.Snapshot{
		TotalWorkedMinutes: 405,
		IsClockedIn:        true,
		RemainingMinutes:   90,
		StatusColor:        metrics.StatusYellow,
		NormalLeaveTime:    metrics.ClockTime{Hour: 17, Minute: 15},
		EarlyLeaveTime:     metrics.ClockTime{Hour: 16, Minute: 0},
	}
	s.SaveDisplay(snap, time.Now())

	m := newStatusModel(s)
	m.setSize(100, 30)

	msg := m.refresh()()
	m, _ = m.update(msg)

	view := m.view()
	if !strings.Contains(view, "06:45") {
		t.Fatalf("worked readout missing, got:\n%s", view)
	}
	if !strings.Contains(view, "CLOCKED IN") {
		t.Fatal("clocked-in indicator missing")
	}
	if !strings.Contains(view, "1h30m remaining") {
		t.Fatal("remaining line missing")
	}
	if !strings.Contains(view, "5:15pm") {
		t.Fatal("normal leave time missing")
	}
}

func TestStatusViewOvertime(t *testing.T) {
	s := newTestStore(t)
	snap := metrics.Snapshot{
		TotalWorkedMinutes: 540,
		IsCompleted:        true,
		IsOvertime:         true,
		OvertimeMinutes:    45,
		StatusColor:        metrics.StatusRed,
	}
	s.SaveDisplay(snap, time.Now())

	m := newStatusModel(s)
	m.setSize(100, 30)
	msg := m.refresh()()
	m, _ = m.update(msg)

	if !strings.Contains(m.view(), "45m overtime") {
		t.Fatal("overtime line missing")
	}
}

// ============================================================
// History view
// ============================================================

func TestHistoryWeekStartIsMonday(t *testing.T) {
	s := newTestStore(t)
	m := newHistoryModel(s)

	start := m.weekStart()
	if start.Weekday() != time.Monday {
		t.Fatalf("week starts on %v", start.Weekday())
	}

	m.offset = 1
	prev := m.weekStart()
	if !prev.AddDate(0, 0, 7).Equal(start) {
		t.Fatalf("offset week = %v, want one week before %v", prev, start)
	}
}

func TestHistoryViewRendersTotals(t *testing.T) {
	s := newTestStore(t)
	today := time.Now().Format("2006-01-02")
	s.UpsertDayTotal(store.DayTotal{Date: today, WorkedMinutes: 495})

	m := newHistoryModel(s)
	m.setSize(100, 30)
	msg := m.refresh()()
	m, _ = m.update(msg)

	view := m.view()
	if !strings.Contains(view, "8h15m") {
		t.Fatalf("worked total missing, got:\n%s", view)
	}
}

// ============================================================
// App
// ============================================================

func TestAppSwitchesViews(t *testing.T) {
	app, _, _ := newTestApp(t)

	m, _ := app.Update(keyMsg("2"))
	app = m.(App)
	if app.activeView != viewHistory {
		t.Fatalf("active view = %v, want history", app.activeView)
	}

	m, _ = app.Update(keyMsg("3"))
	app = m.(App)
	if app.activeView != viewSettings {
		t.Fatalf("active view = %v, want settings", app.activeView)
	}
}

func TestAppRefreshTriggersCheck(t *testing.T) {
	app, _, checker := newTestApp(t)

	m, _ := app.Update(keyMsg("r"))
	app = m.(App)

	if checker.calls != 1 {
		t.Fatalf("ForceCheck called %d times, want 1", checker.calls)
	}
	if app.status == "" {
		t.Fatal("expected a status line after refresh")
	}
}

func TestAppTokenSaveTriggersCheck(t *testing.T) {
	app, _, checker := newTestApp(t)

	m, _ := app.Update(settingsSavedMsg{tokenChanged: true})
	app = m.(App)
	if checker.calls != 1 {
		t.Fatal("token change did not trigger a check")
	}

	m, _ = app.Update(settingsSavedMsg{tokenChanged: false})
	if checker.calls != 1 {
		t.Fatal("unchanged token must not trigger a check")
	}
	_ = m
}

func TestAppHeaderShowsTabs(t *testing.T) {
	app, _, _ := newTestApp(t)
	view := app.View()
	for _, name := range viewNames {
		if !strings.Contains(view, name) {
			t.Fatalf("header missing %q", name)
		}
	}
}
