// Package poller runs the periodic check pipeline: read credential, fetch
// the day's punches, compute metrics, evaluate notification rules, persist
// the display bundle. Every failure degrades to "try again next poll".
package poller

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/sadopc/punchwatch/internal/attendance"
	"github.com/sadopc/punchwatch/internal/metrics"
	"github.com/sadopc/punchwatch/internal/notify"
	"github.com/sadopc/punchwatch/internal/store"
)

const (
	defaultInterval     = time.Minute
	defaultInitialDelay = 10 * time.Second
)

// Fetcher retrieves today's punches. Satisfied by *attendance.Client.
type Fetcher interface {
	FetchToday(ctx context.Context, token string) ([]metrics.Punch, error)
}

var _ Fetcher = (*attendance.Client)(nil)

// flagStore adapts the sqlite state table to the coordinator's FlagStore.
// Flags are read through here on every poll, never from a process cache.
type flagStore struct {
	s *store.Store
}

func (f flagStore) Get(key string) bool  { return f.s.GetFlag(key) }
func (f flagStore) Set(key string) error { return f.s.SetFlag(key) }

type Poller struct {
	store *store.Store
	fetch Fetcher
	coord *notify.Coordinator

	interval     time.Duration
	initialDelay time.Duration
	now          func() time.Time

	// mu serializes polls; an on-demand trigger can land mid-tick.
	// prev is the previous snapshot threaded between polls under mu,
	// prevAt the time it was evaluated.
	mu     sync.Mutex
	prev   *metrics.Snapshot
	prevAt time.Time
	force  chan struct{}
}

func New(st *store.Store, fetch Fetcher, sink notify.Notifier) *Poller {
	return &Poller{
		store:        st,
		fetch:        fetch,
		coord:        notify.NewCoordinator(flagStore{st}, sink),
		interval:     defaultInterval,
		initialDelay: defaultInitialDelay,
		now:          time.Now,
		force:        make(chan struct{}, 1),
	}
}

// Run polls on a fixed interval until ctx is cancelled. The first poll fires
// after a short initial delay; ForceCheck triggers one on demand.
func (p *Poller) Run(ctx context.Context) {
	initial := time.NewTimer(p.initialDelay)
	defer initial.Stop()
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-initial.C:
			p.Poll(ctx)
		case <-ticker.C:
			p.Poll(ctx)
		case <-p.force:
			p.Poll(ctx)
		}
	}
}

// ForceCheck requests an immediate poll. Fire-and-forget: if a check is
// already queued the signal is dropped.
func (p *Poller) ForceCheck() {
	select {
	case p.force <- struct{}{}:
	default:
	}
}

// Poll runs one pipeline pass. Safe for concurrent callers.
func (p *Poller) Poll(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()

	token := p.store.GetStateDefault(store.KeyAccessToken, "")
	if token == "" {
		log.Printf("poll: no access token, skipping")
		return
	}

	punches, err := p.fetch.FetchToday(ctx, token)
	if err != nil {
		log.Printf("poll: fetch: %v", err)
		return
	}

	halfDay := p.store.GetStateDefault(store.HalfDayKey(now), "false") == "true"
	snap := metrics.Compute(punches, halfDay, now)

	// Record today's total before building the weekly context so the
	// mid-week and Friday summaries include the current day.
	if err := p.store.UpsertDayTotal(store.DayTotal{
		Date:          now.Format("2006-01-02"),
		WorkedMinutes: snap.TotalWorkedMinutes,
		HalfDay:       halfDay,
		ClockedIn:     snap.IsClockedIn,
	}); err != nil {
		log.Printf("poll: day total: %v", err)
	}

	p.coord.Evaluate(p.prev, snap, notify.Input{
		Now:     now,
		PrevNow: p.prevAt,
		HalfDay: halfDay,
		Weekly:  p.weeklyContext(now),
	})

	p.store.SaveDisplay(snap, now)
	p.prev = &snap
	p.prevAt = now
}

func (p *Poller) weeklyContext(now time.Time) notify.WeeklyContext {
	wc := notify.WeeklyContext{TokenValid: true}

	totals, err := p.store.WeekTotals(now)
	if err != nil {
		log.Printf("poll: week totals: %v", err)
		return wc
	}

	sum := 0
	for _, dt := range totals {
		if dt.WorkedMinutes > 0 {
			wc.WorkedDays++
			sum += dt.WorkedMinutes
		}
	}
	if wc.WorkedDays > 0 {
		wc.AverageMinutes = sum / wc.WorkedDays
		wc.HasData = true
	}
	return wc
}
