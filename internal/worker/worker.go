package worker

import (
	"context"
	"time"

	"bakery-storefront/internal/util"

	"go.uber.org/zap"
)

// Sweepable drops entries idle for longer than maxIdle and reports how
// many were removed.
type Sweepable interface {
	Sweep(maxIdle time.Duration) int
}

// SessionSweeper evicts idle visitor sessions on a fixed interval
type SessionSweeper struct {
	target   Sweepable
	interval time.Duration
	maxIdle  time.Duration
	logger   *zap.Logger
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewSessionSweeper creates a new session sweeper
func NewSessionSweeper(target Sweepable, interval, maxIdle time.Duration) *SessionSweeper {
	return &SessionSweeper{
		target:   target,
		interval: interval,
		maxIdle:  maxIdle,
		logger:   util.GetLogger(),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start runs the sweeper in the background
func (w *SessionSweeper) Start(ctx context.Context) {
	w.logger.Info("Starting session sweeper",
		zap.Duration("interval", w.interval),
		zap.Duration("max_idle", w.maxIdle))
	go w.run(ctx)
}

func (w *SessionSweeper) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.target.Sweep(w.maxIdle)
		case <-w.stopCh:
			w.logger.Info("Session sweeper stopped")
			return
		case <-ctx.Done():
			w.logger.Info("Session sweeper cancelled")
			return
		}
	}
}

// Stop stops the sweeper and waits for it to exit
func (w *SessionSweeper) Stop() {
	close(w.stopCh)
	<-w.doneCh
}
