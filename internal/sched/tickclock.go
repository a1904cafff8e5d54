// internal/sched/tickclock.go

package sched

import (
	"context"
	"sync/atomic"
	"time"
)

// TickClock emits wall-clock ticks and counts them atomically. It turns the
// discrete-time scheduler into a real-time one: each emitted tick is meant
// to drive exactly one Scheduler.Tick.
type TickClock struct {
	Ch    chan struct{}
	count atomic.Int64
	stop  chan struct{}
}

// NewTickClock creates a clock but does not start it.
func NewTickClock(buffer int) *TickClock {
	return &TickClock{
		Ch:   make(chan struct{}, buffer),
		stop: make(chan struct{}),
	}
}

// Start begins emitting ticks at the given interval.
func (c *TickClock) Start(interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				c.count.Add(1)
				c.Ch <- struct{}{}
			case <-c.stop:
				close(c.Ch)
				return
			}
		}
	}()
}

// Stop signals the clock to stop emitting ticks. Call at most once.
func (c *TickClock) Stop() {
	close(c.stop)
}

// Count returns the current tick count atomically.
func (c *TickClock) Count() int64 {
	return c.count.Load()
}

// Pump calls step once per emitted tick until ctx is cancelled, the clock
// stops, or maxTicks ticks have been delivered (maxTicks <= 0 means
// unbounded). A step error aborts the pump; the step decides what to
// swallow (task faults, typically).
func (c *TickClock) Pump(ctx context.Context, maxTicks int64, step func(context.Context) error) error {
	var delivered int64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-c.Ch:
			if !ok {
				return nil
			}
			if err := step(ctx); err != nil {
				return err
			}
			delivered++
			if maxTicks > 0 && delivered >= maxTicks {
				return nil
			}
		}
	}
}
