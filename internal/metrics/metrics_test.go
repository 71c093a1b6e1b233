package metrics

import (
	"testing"
	"time"
)

// at anchors all tests to a fixed calendar day.
func at(hour, minute int) time.Time {
	return time.Date(2026, 9, 1, hour, minute, 0, 0, time.Local)
}

func punchIn(hour, minute int) Punch  { return Punch{Time: at(hour, minute), Kind: ClockIn} }
func punchOut(hour, minute int) Punch { return Punch{Time: at(hour, minute), Kind: ClockOut} }

// splitDay is the reference punch sequence: 09:00-13:00 closed, 13:30 open.
func splitDay() []Punch {
	return []Punch{punchIn(9, 0), punchOut(13, 0), punchIn(13, 30)}
}

// ============================================================
// Interval pairing
// ============================================================

func TestPairIntervalsClosedAndOpen(t *testing.T) {
	ivs := PairIntervals(splitDay())
	if len(ivs) != 2 {
		t.Fatalf("expected 2 intervals, got %d", len(ivs))
	}
	if ivs[0].Open() {
		t.Fatal("first interval should be closed")
	}
	if !ivs[1].Open() {
		t.Fatal("second interval should be open")
	}
	if got := ivs[0].End.Sub(ivs[0].Start); got != 4*time.Hour {
		t.Fatalf("closed interval duration = %v", got)
	}
}

func TestPairIntervalsDropsUnmatchedClockOut(t *testing.T) {
	ivs := PairIntervals([]Punch{punchOut(8, 0), punchIn(9, 0), punchOut(12, 0)})
	if len(ivs) != 1 {
		t.Fatalf("expected 1 interval, got %d", len(ivs))
	}
	if ivs[0].Start != at(9, 0) {
		t.Fatalf("unexpected start %v", ivs[0].Start)
	}
}

func TestPairIntervalsSinglePendingClockIn(t *testing.T) {
	// A second clock-in while one is pending does not open another interval.
	ivs := PairIntervals([]Punch{punchIn(9, 0), punchIn(9, 30), punchOut(10, 0)})
	if len(ivs) != 1 {
		t.Fatalf("expected 1 interval, got %d", len(ivs))
	}
	if ivs[0].Start != at(9, 0) {
		t.Fatalf("expected the first clock-in to win, got start %v", ivs[0].Start)
	}
}

func TestPairIntervalsEmpty(t *testing.T) {
	if ivs := PairIntervals(nil); ivs != nil {
		t.Fatalf("expected no intervals, got %v", ivs)
	}
}

// ============================================================
// Compute: reference scenarios
// ============================================================

func TestComputeFullDayExactTarget(t *testing.T) {
	// 240 closed + 255 open = 495 = full-day target.
	snap := Compute(splitDay(), false, at(17, 45))

	if snap.TotalWorkedMinutes != 495 {
		t.Fatalf("worked = %d, want 495", snap.TotalWorkedMinutes)
	}
	if !snap.IsClockedIn {
		t.Fatal("expected clocked in")
	}
	if !snap.IsCompleted || snap.RemainingMinutes != 0 {
		t.Fatalf("expected completed with 0 remaining, got %+v", snap)
	}
	if snap.IsOvertime || snap.OvertimeMinutes != 0 {
		t.Fatalf("expected no overtime at exact target, got %+v", snap)
	}
	if snap.StatusColor != StatusGreen {
		t.Fatalf("status = %s, want green", snap.StatusColor)
	}
	// Remaining 0, not overtime: estimated completion is now.
	if snap.EstimatedCompletionTime != (ClockTime{17, 45}) {
		t.Fatalf("estimated completion = %v", snap.EstimatedCompletionTime)
	}
}

func TestComputeFifteenOver(t *testing.T) {
	snap := Compute(splitDay(), false, at(18, 0))

	if snap.TotalWorkedMinutes != 510 {
		t.Fatalf("worked = %d, want 510", snap.TotalWorkedMinutes)
	}
	if !snap.IsOvertime || snap.OvertimeMinutes != 15 {
		t.Fatalf("expected 15m overtime, got %+v", snap)
	}
	// 510 is still inside the full-day band.
	if snap.StatusColor != StatusGreen {
		t.Fatalf("status = %s, want green", snap.StatusColor)
	}
	// Crossed the target 15 minutes ago.
	if snap.EstimatedCompletionTime != (ClockTime{17, 45}) {
		t.Fatalf("estimated completion = %v", snap.EstimatedCompletionTime)
	}
}

func TestComputeThirtyOver(t *testing.T) {
	snap := Compute(splitDay(), false, at(18, 15))

	if snap.TotalWorkedMinutes != 525 {
		t.Fatalf("worked = %d, want 525", snap.TotalWorkedMinutes)
	}
	if snap.OvertimeMinutes != 30 {
		t.Fatalf("overtime = %d, want 30", snap.OvertimeMinutes)
	}
	if snap.StatusColor != StatusRed {
		t.Fatalf("status = %s, want red past the band", snap.StatusColor)
	}
}

func TestComputeUnderTarget(t *testing.T) {
	punches := []Punch{punchIn(9, 0), punchOut(12, 0)}
	snap := Compute(punches, false, at(15, 0))

	if snap.TotalWorkedMinutes != 180 {
		t.Fatalf("worked = %d, want 180", snap.TotalWorkedMinutes)
	}
	if snap.IsClockedIn {
		t.Fatal("expected clocked out")
	}
	if snap.RemainingMinutes != 315 {
		t.Fatalf("remaining = %d, want 315", snap.RemainingMinutes)
	}
	if snap.StatusColor != StatusYellow {
		t.Fatalf("status = %s, want yellow", snap.StatusColor)
	}
	if snap.IsCloseToCompletion {
		t.Fatal("315 remaining is not close to completion")
	}
}

func TestComputeCloseToCompletion(t *testing.T) {
	punches := []Punch{punchIn(9, 0)}
	// 470 worked, 25 remaining.
	snap := Compute(punches, false, at(16, 50))

	if snap.RemainingMinutes != 25 {
		t.Fatalf("remaining = %d, want 25", snap.RemainingMinutes)
	}
	if !snap.IsCloseToCompletion {
		t.Fatal("expected close-to-completion inside the 30m window")
	}
	if snap.IsCompleted {
		t.Fatal("not completed yet")
	}
}

func TestComputeHalfDayTargets(t *testing.T) {
	punches := []Punch{punchIn(9, 0)}

	// 270 = half-day target exactly.
	snap := Compute(punches, true, at(13, 30))
	if !snap.IsCompleted {
		t.Fatalf("half-day 270 should be completed, got %+v", snap)
	}
	if snap.StatusColor != StatusGreen {
		t.Fatalf("status = %s, want green", snap.StatusColor)
	}

	// 300 > half-day band of 285.
	snap = Compute(punches, true, at(14, 0))
	if snap.StatusColor != StatusRed {
		t.Fatalf("status = %s, want red above half-day band", snap.StatusColor)
	}
	if snap.OvertimeMinutes != 30 {
		t.Fatalf("overtime = %d, want 30", snap.OvertimeMinutes)
	}
}

func TestComputeLeaveTimes(t *testing.T) {
	punches := []Punch{punchIn(9, 0)}
	// 180 worked at noon; 315 to normal target, 240 to early target.
	snap := Compute(punches, false, at(12, 0))

	if snap.NormalLeaveTime != (ClockTime{17, 15}) {
		t.Fatalf("normal leave = %v, want 17:15", snap.NormalLeaveTime)
	}
	if snap.EarlyLeaveTime != (ClockTime{16, 0}) {
		t.Fatalf("early leave = %v, want 16:00", snap.EarlyLeaveTime)
	}
}

func TestComputeLeaveTimesClampAtNow(t *testing.T) {
	// 540 worked: both secondary targets already met, leave times are now.
	punches := []Punch{punchIn(9, 0)}
	snap := Compute(punches, false, at(18, 0))

	if snap.NormalLeaveTime != (ClockTime{18, 0}) {
		t.Fatalf("normal leave = %v, want 18:00", snap.NormalLeaveTime)
	}
	if snap.EarlyLeaveTime != (ClockTime{18, 0}) {
		t.Fatalf("early leave = %v, want 18:00", snap.EarlyLeaveTime)
	}
}

func TestComputeEmptyIsZeroStateRegardlessOfNow(t *testing.T) {
	a := Compute(nil, false, at(9, 0))
	b := Compute(nil, false, at(23, 59))
	if a != b {
		t.Fatalf("zero-state snapshots differ: %+v vs %+v", a, b)
	}

	if a.TotalWorkedMinutes != 0 || a.IsClockedIn {
		t.Fatalf("unexpected zero state %+v", a)
	}
	if a.StatusColor != StatusRed {
		t.Fatalf("zero-state status = %s, want red", a.StatusColor)
	}
	if a.EstimatedCompletionTime != Midnight {
		t.Fatalf("zero-state estimated completion = %v, want midnight", a.EstimatedCompletionTime)
	}
	if a.RemainingMinutes != 495 {
		t.Fatalf("zero-state remaining = %d, want full target", a.RemainingMinutes)
	}
}

func TestComputeIdempotent(t *testing.T) {
	now := at(17, 45)
	a := Compute(splitDay(), false, now)
	b := Compute(splitDay(), false, now)
	if a != b {
		t.Fatalf("snapshots differ for identical input: %+v vs %+v", a, b)
	}
}

func TestComputeFloorsPartialMinutes(t *testing.T) {
	punches := []Punch{{Time: at(9, 0), Kind: ClockIn}}
	now := at(9, 30).Add(45 * time.Second)
	snap := Compute(punches, false, now)
	if snap.TotalWorkedMinutes != 30 {
		t.Fatalf("worked = %d, want floored 30", snap.TotalWorkedMinutes)
	}
}

func TestTargetMinutes(t *testing.T) {
	if got := TargetMinutes(false); got != 495 {
		t.Fatalf("full-day target = %d", got)
	}
	if got := TargetMinutes(true); got != 270 {
		t.Fatalf("half-day target = %d", got)
	}
}
