// Package reaper runs the periodic cleanup of expired short links.
// It shares nothing with the request path except the store handle:
// redirection reports expired links without deleting them, and the
// reaper deletes them without anyone waiting on it.
package reaper

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const (
	DefaultInterval    = time.Hour
	DefaultTickTimeout = 30 * time.Second
)

// Store is the slice of the record store the reaper needs.
type Store interface {
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// Reaper periodically hard-deletes records whose TTL has elapsed.
type Reaper struct {
	store       Store
	logger      *slog.Logger
	interval    time.Duration
	tickTimeout time.Duration
	now         func() time.Time

	mu      sync.Mutex
	ticking bool

	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// Config holds configuration for the reaper.
type Config struct {
	Interval    time.Duration // how often to sweep (default: 1h)
	TickTimeout time.Duration // per-sweep deadline (default: 30s)
	Now         func() time.Time
}

// New creates a new Reaper. The store handle is the only shared state
// with the rest of the process.
func New(store Store, logger *slog.Logger, config *Config) *Reaper {
	if config == nil {
		config = &Config{}
	}

	interval := config.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	tickTimeout := config.TickTimeout
	if tickTimeout <= 0 {
		tickTimeout = DefaultTickTimeout
	}

	now := config.Now
	if now == nil {
		now = time.Now
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Reaper{
		store:       store,
		logger:      logger.With("component", "reaper"),
		interval:    interval,
		tickTimeout: tickTimeout,
		now:         now,
		stop:        make(chan struct{}),
		done:        make(chan struct{}),
	}
}

// Start launches the reaper goroutine. It returns immediately; use
// Stop to shut the reaper down.
func (r *Reaper) Start() {
	go r.run()
}

// Stop signals the reaper to stop and waits for the current sweep, if
// any, to finish. Safe to call more than once.
func (r *Reaper) Stop() {
	r.stopOnce.Do(func() { close(r.stop) })
	<-r.done
}

func (r *Reaper) run() {
	defer close(r.done)

	r.logger.Info("reaper started", "interval", r.interval.String())

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stop:
			r.logger.Info("reaper stopped")
			return
		case <-ticker.C:
			r.tick()
		}
	}
}

// tick runs one sweep. A failed sweep is logged and retried on the
// next scheduled tick; it never propagates anywhere. If the previous
// sweep is somehow still running, the tick is skipped with a warning
// rather than stacking deletes.
func (r *Reaper) tick() {
	r.mu.Lock()
	if r.ticking {
		r.mu.Unlock()
		r.logger.Warn("previous sweep still running, skipping tick")
		return
	}
	r.ticking = true
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.ticking = false
		r.mu.Unlock()
	}()

	r.Sweep(context.Background())
}

// Sweep deletes every record whose expiry is strictly in the past.
// Exposed so tests and operational tooling can trigger a sweep
// without waiting for the ticker. Idempotent: a second call with no
// new expirations deletes zero rows.
func (r *Reaper) Sweep(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, r.tickTimeout)
	defer cancel()

	start := r.now()
	deleted, err := r.store.DeleteExpired(ctx, start)
	if err != nil {
		r.logger.Error("sweep failed, will retry on next tick",
			"error", err.Error(),
		)
		return
	}

	if deleted > 0 {
		r.logger.Info("swept expired links",
			"deleted", deleted,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	} else {
		r.logger.Debug("sweep found nothing to delete")
	}
}
