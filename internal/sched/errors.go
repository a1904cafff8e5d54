package sched

import (
	"errors"
	"fmt"
)

var (
	// ErrTaskLimit is returned when the task table or ready queue is at capacity.
	ErrTaskLimit = errors.New("task limit exceeded")

	// ErrInvalidState is returned when an operation is not permitted in the
	// task's or scheduler's current state.
	ErrInvalidState = errors.New("invalid state")

	// ErrNotFound is returned for handles that do not name a live task.
	ErrNotFound = errors.New("task not found")
)

// TaskFault wraps an error returned by a task's work body. The scheduler
// keeps running other tasks; the fault is surfaced to the Tick caller.
type TaskFault struct {
	ID   TaskID
	Name string
	Err  error
}

func (f *TaskFault) Error() string {
	return fmt.Sprintf("task %d (%s) faulted: %v", f.ID, f.Name, f.Err)
}

func (f *TaskFault) Unwrap() error { return f.Err }
