package metrics

import (
	"encoding/json"
	"fmt"
	"time"
)

// ClockTime is a wall-clock time of day. It is carried structurally through
// the pipeline and only rendered to a string at the display boundary.
type ClockTime struct {
	Hour   int
	Minute int
}

// Midnight is the zero wall-clock value.
var Midnight = ClockTime{}

// ClockTimeOf extracts the wall-clock component of t.
func ClockTimeOf(t time.Time) ClockTime {
	return ClockTime{Hour: t.Hour(), Minute: t.Minute()}
}

// Format24 renders as 24-hour "15:04".
func (c ClockTime) Format24() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Format12 renders as 12-hour "3:04pm"; hour 0 is displayed as 12.
func (c ClockTime) Format12() string {
	suffix := "am"
	h := c.Hour
	if h >= 12 {
		suffix = "pm"
	}
	h = h % 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d:%02d%s", h, c.Minute, suffix)
}

// FormatMinutes renders a whole-minute duration as "45m", "1h" or "6h45m".
// Negative values render as "0m".
func FormatMinutes(m int) string {
	if m < 0 {
		m = 0
	}
	h, rest := m/60, m%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", rest)
	case rest == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh%02dm", h, rest)
	}
}

// OnDay anchors the wall-clock time to the calendar day of ref.
func (c ClockTime) OnDay(ref time.Time) time.Time {
	return time.Date(ref.Year(), ref.Month(), ref.Day(), c.Hour, c.Minute, 0, 0, ref.Location())
}

// MinutesUntil returns the whole minutes from now until the wall-clock time
// on now's calendar day. Negative if the time already passed today.
func (c ClockTime) MinutesUntil(now time.Time) int {
	return int(c.OnDay(now).Sub(now).Minutes())
}

func (c ClockTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Format24())
}

func (c *ClockTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return fmt.Errorf("parse clock time %q: %w", s, err)
	}
	c.Hour, c.Minute = h, m
	return nil
}
