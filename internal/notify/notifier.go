package notify

import (
	"github.com/gen2brain/beeep"
	"github.com/google/uuid"
)

// Rule identifies which of the eight notification rules produced an event.
type Rule int

const (
	RuleCompleted Rule = iota + 1
	RuleAlmostThere
	RuleOvertime
	RuleLongSession
	RuleBreakReminder
	RuleLeaveSoon
	RuleMidweekProgress
	RuleWeekSummary
)

func (r Rule) String() string {
	switch r {
	case RuleCompleted:
		return "completed"
	case RuleAlmostThere:
		return "almost-there"
	case RuleOvertime:
		return "overtime"
	case RuleLongSession:
		return "long-session"
	case RuleBreakReminder:
		return "break-reminder"
	case RuleLeaveSoon:
		return "leave-soon"
	case RuleMidweekProgress:
		return "midweek-progress"
	case RuleWeekSummary:
		return "week-summary"
	}
	return "unknown"
}

// Event is one fired notification.
type Event struct {
	ID                 string
	Rule               Rule
	Title              string
	Body               string
	RequireInteraction bool
}

func newEvent(rule Rule, title, body string, requireInteraction bool) Event {
	return Event{
		ID:                 uuid.NewString(),
		Rule:               rule,
		Title:              title,
		Body:               body,
		RequireInteraction: requireInteraction,
	}
}

// Notifier delivers an event to the user. Delivery is fire-and-forget from
// the caller's point of view: a failure is logged and the rule retried on
// the next poll, never duplicated once its flag is set.
type Notifier interface {
	Notify(ev Event) error
}

// Desktop shows events as native desktop notifications.
type Desktop struct {
	AppName string
}

func NewDesktop(appName string) *Desktop {
	beeep.AppName = appName
	return &Desktop{AppName: appName}
}

func (d *Desktop) Notify(ev Event) error {
	if ev.RequireInteraction {
		return beeep.Alert(ev.Title, ev.Body, "")
	}
	return beeep.Notify(ev.Title, ev.Body, "")
}
