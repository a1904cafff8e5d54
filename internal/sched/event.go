package sched

import (
	"time"
)

// StatusKind represents the type of scheduler event
type StatusKind int

const (
	StatusIdle StatusKind = iota
	StatusEnqueue
	StatusDispatch
	StatusPreempt
	StatusBlock
	StatusUnblock
	StatusSuspend
	StatusResume
	StatusFault
)

// StatusEvent is emitted on every scheduling decision or task transition.
type StatusEvent struct {
	Time   time.Time
	Tick   uint64
	Kind   StatusKind
	TaskID TaskID
	Name   string
}

func (sk StatusKind) String() string {
	switch sk {
	case StatusIdle:
		return "Idle"
	case StatusEnqueue:
		return "Enqueued"
	case StatusDispatch:
		return "Dispatch"
	case StatusPreempt:
		return "Preempt"
	case StatusBlock:
		return "Block"
	case StatusUnblock:
		return "Unblock"
	case StatusSuspend:
		return "Suspend"
	case StatusResume:
		return "Resume"
	case StatusFault:
		return "Fault"
	default:
		return "Unknown"
	}
}
