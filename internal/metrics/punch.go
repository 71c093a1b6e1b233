package metrics

import "time"

// PunchKind distinguishes the two physical punch directions.
type PunchKind int

const (
	ClockIn PunchKind = iota
	ClockOut
)

// Punch is a single raw punch event as received from the attendance source.
// Ordering is the order received, assumed chronological.
type Punch struct {
	Time time.Time
	Kind PunchKind
}

// Interval is a clock-in paired with its clock-out. A nil End means the
// interval is still open, i.e. currently clocked in.
type Interval struct {
	Start time.Time
	End   *time.Time
}

// Open reports whether the interval has no matching clock-out yet.
func (iv Interval) Open() bool { return iv.End == nil }

// PairIntervals pairs punches into work intervals with a single forward
// scan. A clock-in opens a pending interval; a clock-out closes it. A
// clock-out with no pending clock-in is malformed data and is dropped.
// At most one interval remains open at the end of the scan.
func PairIntervals(punches []Punch) []Interval {
	var intervals []Interval
	var pending *time.Time

	for _, p := range punches {
		switch p.Kind {
		case ClockIn:
			if pending == nil {
				t := p.Time
				pending = &t
			}
		case ClockOut:
			if pending != nil {
				end := p.Time
				intervals = append(intervals, Interval{Start: *pending, End: &end})
				pending = nil
			}
		}
	}

	if pending != nil {
		intervals = append(intervals, Interval{Start: *pending})
	}
	return intervals
}
