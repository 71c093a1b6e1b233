// Package metrics derives work-time metrics from a day's raw punch events.
// Everything here is pure: same punches, same flags, same now — same snapshot.
package metrics

import "time"

// Day targets in minutes.
const (
	fullDayTarget  = 495 // 8h15
	halfDayTarget  = 270 // 4h30
	fullDayBand    = 510 // green up to 8h30, red beyond
	halfDayBand    = 285
	fullEarlyLeave = 420 // 7h00
	halfEarlyLeave = 210 // 3h30
)

// closeToCompletionWindow is the "almost there" threshold in minutes.
const closeToCompletionWindow = 30

// StatusColor summarizes where today's total sits relative to the target.
type StatusColor string

const (
	StatusYellow StatusColor = "yellow" // under target
	StatusGreen  StatusColor = "green"  // target reached, within the band
	StatusRed    StatusColor = "red"    // over the band (or no data at all)
)

// Snapshot is the full set of derived metrics for one poll. It is recomputed
// fresh from the day's punches every time, never updated incrementally.
// The struct is comparable so the poll loop can diff consecutive snapshots.
type Snapshot struct {
	TotalWorkedMinutes      int         `json:"totalWorkedMinutes"`
	IsClockedIn             bool        `json:"isClockedIn"`
	RemainingMinutes        int         `json:"remainingMinutes"`
	IsCompleted             bool        `json:"isCompleted"`
	IsCloseToCompletion     bool        `json:"isCloseToCompletion"`
	StatusColor             StatusColor `json:"statusColor"`
	IsOvertime              bool        `json:"isOvertime"`
	OvertimeMinutes         int         `json:"overtimeMinutes"`
	EstimatedCompletionTime ClockTime   `json:"estimatedCompletionTime"`
	NormalLeaveTime         ClockTime   `json:"normalLeaveTime"`
	EarlyLeaveTime          ClockTime   `json:"earlyLeaveTime"`
}

// TargetMinutes is the single source of truth for the day's target.
func TargetMinutes(halfDay bool) int {
	if halfDay {
		return halfDayTarget
	}
	return fullDayTarget
}

func bandMinutes(halfDay bool) int {
	if halfDay {
		return halfDayBand
	}
	return fullDayBand
}

func earlyLeaveMinutes(halfDay bool) int {
	if halfDay {
		return halfEarlyLeave
	}
	return fullEarlyLeave
}

// Compute turns the day's punches into a metrics snapshot. An empty punch
// list yields the zero-state snapshot regardless of now: nothing worked, not
// clocked in, red status, every projected time pinned to midnight.
func Compute(punches []Punch, halfDay bool, now time.Time) Snapshot {
	target := TargetMinutes(halfDay)

	if len(punches) == 0 {
		return Snapshot{
			RemainingMinutes:        target,
			StatusColor:             StatusRed,
			EstimatedCompletionTime: Midnight,
			NormalLeaveTime:         Midnight,
			EarlyLeaveTime:          Midnight,
		}
	}

	intervals := PairIntervals(punches)

	worked := 0
	clockedIn := false
	for _, iv := range intervals {
		if iv.Open() {
			clockedIn = true
			worked += int(now.Sub(iv.Start).Minutes())
		} else {
			worked += int(iv.End.Sub(iv.Start).Minutes())
		}
	}
	if worked < 0 {
		worked = 0
	}

	remaining := target - worked
	if remaining < 0 {
		remaining = 0
	}
	overtime := worked - target
	if overtime < 0 {
		overtime = 0
	}

	var color StatusColor
	switch {
	case worked < target:
		color = StatusYellow
	case worked <= bandMinutes(halfDay):
		color = StatusGreen
	default:
		color = StatusRed
	}

	// When you did (or will) cross the target, as a clock time.
	var estimated time.Time
	if overtime > 0 {
		estimated = now.Add(-time.Duration(overtime) * time.Minute)
	} else {
		estimated = now.Add(time.Duration(remaining) * time.Minute)
	}

	return Snapshot{
		TotalWorkedMinutes:      worked,
		IsClockedIn:             clockedIn,
		RemainingMinutes:        remaining,
		IsCompleted:             remaining == 0,
		IsCloseToCompletion:     remaining > 0 && remaining <= closeToCompletionWindow,
		StatusColor:             color,
		IsOvertime:              overtime > 0,
		OvertimeMinutes:         overtime,
		EstimatedCompletionTime: ClockTimeOf(estimated),
		NormalLeaveTime:         projectLeave(now, target, worked),
		EarlyLeaveTime:          projectLeave(now, earlyLeaveMinutes(halfDay), worked),
	}
}

// projectLeave is "now plus whatever is still missing toward the secondary
// target", clamped at now once the target is already met.
func projectLeave(now time.Time, targetMinutes, worked int) ClockTime {
	missing := targetMinutes - worked
	if missing < 0 {
		missing = 0
	}
	return ClockTimeOf(now.Add(time.Duration(missing) * time.Minute))
}
