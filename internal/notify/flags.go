package notify

import (
	"fmt"
	"time"
)

// FlagStore is the persisted "already announced" state. Implementations must
// read from durable storage, not a process cache: the poll loop re-checks
// flags every cycle so a restart never re-announces.
type FlagStore interface {
	// Get reports whether the flag is set. Missing or unreadable keys
	// read as unset.
	Get(key string) bool
	// Set marks the flag. Once set for its scope it is never cleared;
	// a new day/week produces a new key that starts unset.
	Set(key string) error
}

// dayKey formats the calendar-day scope component.
func dayKey(now time.Time) string {
	return now.Format("2006-01-02")
}

// weekKey formats the ISO-week scope component, e.g. "2026-W36".
func weekKey(now time.Time) string {
	year, week := now.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// Flag keys. Day-scoped flags embed the date; the overtime and break flags
// additionally embed the minute boundary they announced, so each boundary is
// its own set-once scope. Week-scoped flags embed the ISO week.
func completedKey(now time.Time) string   { return "notified_completed_" + dayKey(now) }
func almostKey(now time.Time) string      { return "notified_almost_" + dayKey(now) }
func longSessionKey(now time.Time) string { return "notified_longsession_" + dayKey(now) }
func leaveSoonKey(now time.Time) string   { return "notified_leavesoon_" + dayKey(now) }
func midweekKey(now time.Time) string     { return "notified_midweek_" + weekKey(now) }
func weekSummaryKey(now time.Time) string { return "notified_weeksummary_" + weekKey(now) }

func overtimeKey(now time.Time, boundary int) string {
	return fmt.Sprintf("notified_overtime_%s_%d", dayKey(now), boundary)
}

func breakKey(now time.Time, workedMinutes int) string {
	return fmt.Sprintf("notified_break_%s_%d", dayKey(now), workedMinutes)
}
