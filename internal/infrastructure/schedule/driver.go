package schedule

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"ProductRadar/internal/domain"
	"ProductRadar/internal/ports"
)

// Driver evaluates recurring triggers on a single goroutine and runs due
// jobs synchronously on that same timeline, so one trigger can never overlap
// itself.
type Driver struct {
	loc    *time.Location
	logger *slog.Logger

	mu      sync.Mutex
	entries []*entry
	stop    chan struct{}
	done    chan struct{}
}

type entry struct {
	id      string
	name    string
	rule    domain.Recurrence
	job     func(context.Context, time.Time)
	nextRun time.Time
}

var _ ports.TriggerDriver = (*Driver)(nil)

// NewDriver builds an empty driver resolving rules in the given location.
func NewDriver(loc *time.Location, logger *slog.Logger) *Driver {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Driver{loc: loc, logger: logger}
}

// Add registers a trigger. Entries added after Start are picked up on the
// next timer wake-up.
func (d *Driver) Add(id, name string, rule domain.Recurrence, job func(context.Context, time.Time)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.entries = append(d.entries, &entry{
		id:      id,
		name:    name,
		rule:    rule,
		job:     job,
		nextRun: rule.Next(time.Now().In(d.loc)),
	})
}

// Start launches the trigger timeline; calling it twice is a no-op.
func (d *Driver) Start(ctx context.Context) error {
	d.mu.Lock()
	if d.stop != nil {
		d.mu.Unlock()
		return nil
	}
	d.stop = make(chan struct{})
	d.done = make(chan struct{})
	stop := d.stop
	done := d.done
	d.mu.Unlock()

	go d.run(ctx, stop, done)
	return nil
}

// Stop halts trigger evaluation and waits for an in-flight job to finish
// its current step; calling it when stopped is a no-op.
func (d *Driver) Stop(ctx context.Context) error {
	d.mu.Lock()
	if d.stop == nil {
		d.mu.Unlock()
		return nil
	}
	close(d.stop)
	d.stop = nil
	done := d.done
	d.done = nil
	d.mu.Unlock()

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}

// Jobs reports registered triggers and their computed next fire times.
func (d *Driver) Jobs() []ports.TriggerInfo {
	d.mu.Lock()
	defer d.mu.Unlock()

	infos := make([]ports.TriggerInfo, 0, len(d.entries))
	for _, e := range d.entries {
		infos = append(infos, ports.TriggerInfo{ID: e.id, Name: e.name, NextRun: e.nextRun})
	}
	return infos
}

func (d *Driver) run(ctx context.Context, stop, done chan struct{}) {
	defer close(done)

	for {
		next, wait := d.soonest()
		if next == nil {
			// Nothing registered; poll for late additions.
			wait = time.Minute
		}

		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
		case <-stop:
			timer.Stop()
			return
		case <-ctx.Done():
			timer.Stop()
			return
		}

		if next == nil {
			continue
		}

		now := time.Now().In(d.loc)
		if now.Before(next.nextRun) {
			continue
		}

		d.logger.Info("trigger fired", "trigger", next.id, "scheduled", next.nextRun)
		next.job(ctx, next.nextRun)

		d.mu.Lock()
		next.nextRun = next.rule.Next(time.Now().In(d.loc))
		d.mu.Unlock()
	}
}

// soonest returns the entry with the earliest next fire time and how long
// until it is due.
func (d *Driver) soonest() (*entry, time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var best *entry
	for _, e := range d.entries {
		if e.nextRun.IsZero() {
			continue
		}
		if best == nil || e.nextRun.Before(best.nextRun) {
			best = e
		}
	}
	if best == nil {
		return nil, 0
	}

	wait := time.Until(best.nextRun)
	if wait < 0 {
		wait = 0
	}
	return best, wait
}
