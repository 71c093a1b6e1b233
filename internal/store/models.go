package store

import (
	"time"

	"github.com/sadopc/punchwatch/internal/metrics"
)

// DayTotal is one day's worked-minutes history row, upserted on every poll.
// It feeds the weekly-progress rules, the history chart and export.
type DayTotal struct {
	Date          string // "2006-01-02"
	WorkedMinutes int
	HalfDay       bool
	ClockedIn     bool
	UpdatedAt     time.Time
}

// LeaveTimeInfo is the rendered leave-time bundle the UI displays. Strings
// are produced at this boundary only; internally leave times stay structured.
type LeaveTimeInfo struct {
	NormalLeaveTime     string `json:"normalLeaveTime"`
	EarlyLeaveTime      string `json:"earlyLeaveTime"`
	EstimatedCompletion string `json:"estimatedCompletion"`
}

// DisplayState is the persisted bundle the UI consumes. The UI never
// re-derives metrics; it reads whatever the last poll wrote here.
type DisplayState struct {
	Metrics            metrics.Snapshot
	TotalWorkedMinutes int
	IsClockedIn        bool
	LeaveInfo          LeaveTimeInfo
	LastUpdated        time.Time
	HasData            bool
}
