package sched

import "context"

// TaskID uniquely identifies a task in the scheduler. It packs a slot index
// in the low 32 bits and a generation counter in the high 32 bits, so a
// handle kept across slot reuse is detected as stale instead of silently
// naming a different task.
type TaskID uint64

// NoTask is the zero handle; generations start at 1 so no live task ever
// has it.
const NoTask TaskID = 0

func makeTaskID(index, gen uint32) TaskID {
	return TaskID(uint64(gen)<<32 | uint64(index))
}

func (id TaskID) split() (index, gen uint32) {
	return uint32(id), uint32(id >> 32)
}

// TaskState is the scheduling state of a task.
type TaskState int

const (
	StateReady TaskState = iota
	StateRunning
	StateBlocked
	StateSuspended
)

func (s TaskState) String() string {
	switch s {
	case StateReady:
		return "Ready"
	case StateRunning:
		return "Running"
	case StateBlocked:
		return "Blocked"
	case StateSuspended:
		return "Suspended"
	default:
		return "Unknown"
	}
}

// Work is a task body. The scheduler invokes Run exactly once per dispatch
// and interprets a non-nil error as a task fault.
//
// Run must not call back into the Scheduler that dispatched it; voluntary
// blocking is requested by the driver via BlockCurrent between dispatches.
type Work interface {
	Run(ctx context.Context) error
}

// WorkFunc adapts a plain function to the Work interface.
type WorkFunc func(ctx context.Context) error

func (f WorkFunc) Run(ctx context.Context) error { return f(ctx) }

// Task is one task control block. Owned exclusively by the TaskTable;
// everything outside the sched package sees only TaskID handles and
// TaskInfo snapshots.
type Task struct {
	ID       TaskID
	Name     string
	Priority uint32 // higher value = higher scheduling precedence
	Deadline uint32 // tie-break among equal priorities, earlier wins
	Period   uint32 // bookkeeping only, not enforced by the core

	State        TaskState
	BlockedSince uint64 // tick at which the task blocked
	Timeout      uint64 // ticks until a Blocked task becomes Ready again
	RunCount     uint64 // incremented once per dispatch

	work Work
}

// TaskInfo is the read-only snapshot returned by QueryState.
type TaskInfo struct {
	ID           TaskID
	Name         string
	Priority     uint32
	Deadline     uint32
	Period       uint32
	State        TaskState
	BlockedSince uint64
	Timeout      uint64
	RunCount     uint64
}

func (t *Task) info() TaskInfo {
	return TaskInfo{
		ID:           t.ID,
		Name:         t.Name,
		Priority:     t.Priority,
		Deadline:     t.Deadline,
		Period:       t.Period,
		State:        t.State,
		BlockedSince: t.BlockedSince,
		Timeout:      t.Timeout,
		RunCount:     t.RunCount,
	}
}
