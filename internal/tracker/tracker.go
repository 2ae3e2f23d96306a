// Package tracker implements the live-location task: while enabled it
// re-acquires the current position on a fixed schedule and broadcasts
// it over SSE. At most one task is active at a time.
package tracker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/rollnconnect/rollconnect/internal/geo"
	"github.com/rollnconnect/rollconnect/internal/models"
	"github.com/rollnconnect/rollconnect/internal/sse"
)

// DefaultInterval matches the browser build's 30-second polling loop.
const DefaultInterval = 30 * time.Second

// Status describes the tracker for the API.
type Status struct {
	Active   bool             `json:"active"`
	Last     *models.Position `json:"last,omitempty"`
	LastTick time.Time        `json:"last_tick,omitzero"`
}

// Tracker owns the periodic location task.
type Tracker struct {
	locator  geo.Locator
	broker   *sse.Broker
	logger   *slog.Logger
	interval time.Duration

	mu       sync.Mutex
	cr       *cron.Cron
	last     *models.Position
	lastTick time.Time
}

// New creates a tracker. A zero interval falls back to DefaultInterval.
func New(locator geo.Locator, broker *sse.Broker, logger *slog.Logger, interval time.Duration) *Tracker {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Tracker{
		locator:  locator,
		broker:   broker,
		logger:   logger,
		interval: interval,
	}
}

// Start enables live tracking. Starting an already-active tracker is a
// no-op, so a double toggle never produces two concurrent tasks. An
// immediate tick runs before the first scheduled one so that views get
// a position right away.
func (t *Tracker) Start() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cr != nil {
		return nil
	}

	// SkipIfStillRunning keeps ticks from overlapping when the
	// provider is slow.
	cr := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := cr.AddFunc("@every "+t.interval.String(), t.tick); err != nil {
		return err
	}
	cr.Start()
	t.cr = cr

	t.logger.Info("tracker: started", slog.Duration("interval", t.interval))
	go t.tick()
	return nil
}

// Stop disables live tracking, cancelling the periodic task. Stopping
// an inactive tracker is a no-op.
func (t *Tracker) Stop() {
	t.mu.Lock()
	cr := t.cr
	t.cr = nil
	t.mu.Unlock()

	if cr == nil {
		return
	}
	// Wait for an in-flight tick to finish; done outside the lock
	// because ticks take it to record the position.
	<-cr.Stop().Done()
	t.logger.Info("tracker: stopped")
}

// Active reports whether the periodic task is running.
func (t *Tracker) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cr != nil
}

// Status returns the current tracker state and last known position.
func (t *Tracker) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Status{Active: t.cr != nil, Last: t.last, LastTick: t.lastTick}
}

func (t *Tracker) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pos, err := t.locator.Current(ctx)
	if err != nil {
		// Best effort: no retry, just wait for the next tick.
		t.logger.Debug("tracker: no position", slog.String("error", err.Error()))
		return
	}

	t.mu.Lock()
	t.last = &pos
	t.lastTick = time.Now()
	t.mu.Unlock()

	if t.broker != nil {
		t.broker.Publish(sse.Event{Type: "tracker.position", Data: pos})
	}
}
