// Package notify decides which work-time notifications fire on each poll and
// makes sure each one fires at most once per its day or week scope.
package notify

import (
	"fmt"
	"log"
	"time"

	"github.com/sadopc/punchwatch/internal/metrics"
)

// Thresholds the rules test against, in minutes.
const (
	almostThereWindow = 30
	longSessionAfter  = 540 // 9 hours on the clock in one day
	breakEvery        = 120
	leaveSoonWindow   = 30
	overtimeFirstMark = 30
	overtimeStep      = 60
)

// WeeklyContext carries what the two week-scoped rules need.
type WeeklyContext struct {
	// WorkedDays and AverageMinutes summarize the current week so far.
	WorkedDays     int
	AverageMinutes int
	// HasData reports whether working-day counts could be computed.
	HasData bool
	// TokenValid reports whether a usable credential produced this poll.
	TokenValid bool
}

// Input is the per-poll context the coordinator evaluates against.
type Input struct {
	Now time.Time
	// PrevNow is when prev was evaluated; zero when prev is nil.
	PrevNow time.Time
	HalfDay bool
	Weekly  WeeklyContext
}

// Coordinator compares consecutive metrics snapshots and fires the
// notification rules whose conditions are newly satisfiable. Flags are read
// through the FlagStore on every evaluation; the coordinator keeps no flag
// state of its own.
type Coordinator struct {
	flags FlagStore
	sink  Notifier
}

func NewCoordinator(flags FlagStore, sink Notifier) *Coordinator {
	return &Coordinator{flags: flags, sink: sink}
}

// Evaluate runs the eight rules in index order against curr and returns the
// events that fired. Each fired rule's flag is persisted immediately after a
// successful delivery, so a crash mid-batch leaves only a prefix of flags
// set and the rest are simply re-evaluated next poll. A failed delivery
// leaves the flag unset.
func (c *Coordinator) Evaluate(prev *metrics.Snapshot, curr metrics.Snapshot, in Input) []Event {
	// No-op guard: an identical snapshot within the same calendar day
	// means nothing to announce. Clock-driven conditions move
	// TotalWorkedMinutes while clocked in, so they cannot turn newly true
	// behind an equal snapshot. The weekday rules can: an unchanged
	// zero-state snapshot still rolls into a Wednesday or Friday, so a
	// day boundary always re-evaluates.
	if prev != nil && *prev == curr && sameDay(in.PrevNow, in.Now) {
		return nil
	}

	target := metrics.TargetMinutes(in.HalfDay)
	worked := curr.TotalWorkedMinutes

	var fired []Event
	fire := func(key string, ev Event) {
		if err := c.sink.Notify(ev); err != nil {
			log.Printf("notify: deliver %s: %v", ev.Rule, err)
			return
		}
		if err := c.flags.Set(key); err != nil {
			log.Printf("notify: persist flag %s: %v", key, err)
		}
		fired = append(fired, ev)
	}

	// 1. Daily target reached.
	if worked >= target {
		if key := completedKey(in.Now); !c.flags.Get(key) {
			fire(key, newEvent(RuleCompleted,
				"Target completed",
				fmt.Sprintf("You've hit today's target of %s. Total so far: %s.",
					metrics.FormatMinutes(target), metrics.FormatMinutes(worked)),
				true))
		}
	}

	// 2. Close to completion.
	if !curr.IsCompleted && curr.IsClockedIn {
		if left := target - worked; left > 0 && left <= almostThereWindow {
			if key := almostKey(in.Now); !c.flags.Get(key) {
				fire(key, newEvent(RuleAlmostThere,
					"Almost there",
					fmt.Sprintf("Only %s left to today's target.", metrics.FormatMinutes(left)),
					false))
			}
		}
	}

	// 3. Overtime marks: 30 minutes over, then every full hour.
	if worked > target {
		ot := curr.OvertimeMinutes
		if ot == overtimeFirstMark || ot%overtimeStep == 0 {
			if key := overtimeKey(in.Now, ot); !c.flags.Get(key) {
				fire(key, newEvent(RuleOvertime,
					"Overtime",
					fmt.Sprintf("You're %s past today's target. Time to go home.", metrics.FormatMinutes(ot)),
					true))
			}
		}
	}

	// 4. Nine hours on the clock in a single day.
	if curr.IsClockedIn && worked >= longSessionAfter {
		if key := longSessionKey(in.Now); !c.flags.Get(key) {
			fire(key, newEvent(RuleLongSession,
				"Long day",
				fmt.Sprintf("%s on the clock today. Seriously, wrap it up.", metrics.FormatMinutes(worked)),
				true))
		}
	}

	// 5. Break reminder every two worked hours.
	if curr.IsClockedIn && worked > 0 && worked%breakEvery == 0 {
		if key := breakKey(in.Now, worked); !c.flags.Get(key) {
			fire(key, newEvent(RuleBreakReminder,
				"Break time",
				fmt.Sprintf("%s worked so far. Stretch your legs for a bit.", metrics.FormatMinutes(worked)),
				false))
		}
	}

	// 6. Normal leave time approaching.
	if curr.IsClockedIn {
		if until := curr.NormalLeaveTime.MinutesUntil(in.Now); until > 0 && until <= leaveSoonWindow {
			if key := leaveSoonKey(in.Now); !c.flags.Get(key) {
				fire(key, newEvent(RuleLeaveSoon,
					"Leave time approaching",
					fmt.Sprintf("Normal leave time %s is %s away.",
						curr.NormalLeaveTime.Format12(), metrics.FormatMinutes(until)),
					false))
			}
		}
	}

	// 7. Wednesday mid-week progress.
	if in.Now.Weekday() == time.Wednesday && in.Weekly.TokenValid && in.Weekly.HasData {
		if key := midweekKey(in.Now); !c.flags.Get(key) {
			fire(key, newEvent(RuleMidweekProgress,
				"Mid-week progress",
				fmt.Sprintf("%d working day(s) so far this week, averaging %s a day.",
					in.Weekly.WorkedDays, metrics.FormatMinutes(in.Weekly.AverageMinutes)),
				false))
		}
	}

	// 8. Friday week summary.
	if in.Now.Weekday() == time.Friday && in.Weekly.TokenValid {
		if key := weekSummaryKey(in.Now); !c.flags.Get(key) {
			body := "It's Friday. Check your week before you head out."
			if in.Weekly.HasData {
				body = fmt.Sprintf("Friday wrap-up: %d working day(s) this week, averaging %s a day.",
					in.Weekly.WorkedDays, metrics.FormatMinutes(in.Weekly.AverageMinutes))
			}
			fire(key, newEvent(RuleWeekSummary, "Week summary", body, false))
		}
	}

	return fired
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
