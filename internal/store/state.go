package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Well-known state keys. The state table is the flat string-keyed map the
// rest of the system persists into: credential, per-day half-day toggle,
// notification flags and the display bundle the UI consumes.
const (
	KeyAccessToken = "access_token"
	KeyAPIURL      = "api_url"

	KeyCurrentMetrics     = "current_metrics"
	KeyCurrentTotalWorked = "current_total_worked_minutes"
	KeyCurrentClockedIn   = "current_is_clocked_in"
	KeyCurrentLeaveInfo   = "current_leave_time_info"
	KeyLastUpdated        = "last_updated"
)

// HalfDayKey returns the per-day half-day toggle key, e.g. "halfDay_2026-09-01".
func HalfDayKey(day time.Time) string {
	return "halfDay_" + day.Format("2006-01-02")
}

// GetState returns the value for key. A missing key is not an error; the
// second return reports presence.
func (s *Store) GetState(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM state WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get state %q: %w", key, err)
	}
	return value, true, nil
}

// GetStateDefault reads key and falls back to def when the key is missing or
// the read fails. Storage failures degrade to the default by design.
func (s *Store) GetStateDefault(key, def string) string {
	v, ok, err := s.GetState(key)
	if err != nil || !ok {
		return def
	}
	return v
}

func (s *Store) SetState(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO state (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("set state %q: %w", key, err)
	}
	return nil
}

func (s *Store) DeleteState(key string) error {
	_, err := s.db.Exec(`DELETE FROM state WHERE key = ?`, key)
	return err
}

// SetJSON marshals v and stores it under key.
func (s *Store) SetJSON(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal state %q: %w", key, err)
	}
	return s.SetState(key, string(data))
}

// GetJSON unmarshals the value under key into v. Returns false without error
// when the key is absent.
func (s *Store) GetJSON(key string, v any) (bool, error) {
	raw, ok, err := s.GetState(key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, fmt.Errorf("unmarshal state %q: %w", key, err)
	}
	return true, nil
}

// GetFlag reports whether a notification flag is set. Missing keys and read
// failures both read as unset.
func (s *Store) GetFlag(key string) bool {
	return s.GetStateDefault(key, "") == "1"
}

// SetFlag marks a notification flag.
func (s *Store) SetFlag(key string) error {
	return s.SetState(key, "1")
}
