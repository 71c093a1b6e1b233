package store

import (
	"fmt"
	"time"
)

func (s *Store) UpsertDayTotal(dt DayTotal) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`INSERT INTO day_totals (date, worked_minutes, half_day, clocked_in, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(date) DO UPDATE SET
		   worked_minutes = excluded.worked_minutes,
		   half_day       = excluded.half_day,
		   clocked_in     = excluded.clocked_in,
		   updated_at     = excluded.updated_at`,
		dt.Date, dt.WorkedMinutes, boolToInt(dt.HalfDay), boolToInt(dt.ClockedIn), now,
	)
	if err != nil {
		return fmt.Errorf("upsert day total %s: %w", dt.Date, err)
	}
	return nil
}

// ListDayTotals returns rows with from <= date < to, ascending.
func (s *Store) ListDayTotals(from, to time.Time) ([]DayTotal, error) {
	rows, err := s.db.Query(
		`SELECT date, worked_minutes, half_day, clocked_in, updated_at
		 FROM day_totals
		 WHERE date >= ? AND date < ?
		 ORDER BY date`,
		from.Format("2006-01-02"), to.Format("2006-01-02"),
	)
	if err != nil {
		return nil, fmt.Errorf("list day totals: %w", err)
	}
	defer rows.Close()

	var totals []DayTotal
	for rows.Next() {
		var dt DayTotal
		var halfDay, clockedIn int
		var updatedAt string
		if err := rows.Scan(&dt.Date, &dt.WorkedMinutes, &halfDay, &clockedIn, &updatedAt); err != nil {
			return nil, err
		}
		dt.HalfDay = halfDay != 0
		dt.ClockedIn = clockedIn != 0
		dt.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		totals = append(totals, dt)
	}
	return totals, rows.Err()
}

// WeekTotals returns the rows for the ISO week containing day, Monday first.
func (s *Store) WeekTotals(day time.Time) ([]DayTotal, error) {
	monday := startOfWeek(day)
	return s.ListDayTotals(monday, monday.AddDate(0, 0, 7))
}

func startOfWeek(day time.Time) time.Time {
	d := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	weekday := d.Weekday()
	if weekday == time.Sunday {
		weekday = 7
	}
	return d.AddDate(0, 0, -int(weekday-time.Monday))
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
