// Package job provides reusable task bodies for demos and tests.
package job

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"ticksched/internal/sched"
)

// SleepWork returns a body that sleeps for the given duration per dispatch,
// honoring cancellation.
func SleepWork(ms int64) sched.Work {
	d := time.Duration(ms) * time.Millisecond
	return sched.WorkFunc(func(ctx context.Context) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(d):
			return nil
		}
	})
}

// SpinWork returns a body that burns a bounded number of iterations per
// dispatch. Deterministic, no wall-clock dependence.
func SpinWork(iterations int) sched.Work {
	return sched.WorkFunc(func(ctx context.Context) error {
		var acc uint64
		for i := 0; i < iterations; i++ {
			acc += uint64(i)
		}
		_ = acc
		return nil
	})
}

// FailAfter returns a body that succeeds for n dispatches and then faults on
// every later one. Exercises the scheduler's TaskFault path.
func FailAfter(n int64) sched.Work {
	var runs atomic.Int64
	return sched.WorkFunc(func(ctx context.Context) error {
		if runs.Add(1) > n {
			return fmt.Errorf("failing after %d successful runs", n)
		}
		return nil
	})
}

// NopWork returns a body that does nothing.
func NopWork() sched.Work {
	return sched.WorkFunc(func(ctx context.Context) error { return nil })
}
