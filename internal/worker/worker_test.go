package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type countingTarget struct {
	calls   atomic.Int32
	maxIdle atomic.Int64
}

func (c *countingTarget) Sweep(maxIdle time.Duration) int {
	c.calls.Add(1)
	c.maxIdle.Store(int64(maxIdle))
	return 0
}

func TestSweeperRunsOnInterval(t *testing.T) {
	target := &countingTarget{}
	w := NewSessionSweeper(target, 5*time.Millisecond, time.Hour)
	w.Start(context.Background())

	assert.Eventually(t, func() bool { return target.calls.Load() >= 2 }, time.Second, time.Millisecond)
	w.Stop()
	assert.Equal(t, int64(time.Hour), target.maxIdle.Load())

	after := target.calls.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, after, target.calls.Load())
}

func TestSweeperStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	w := NewSessionSweeper(&countingTarget{}, time.Hour, time.Hour)
	w.Start(ctx)
	cancel()

	select {
	case <-w.doneCh:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}
