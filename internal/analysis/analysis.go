// Package analysis provides static schedulability checks for periodic task
// sets: total utilization, the Liu-Layland RMS bound, EDF feasibility, and
// the hyperperiod. It is a pure layer over a task-set snapshot and never
// touches scheduler runtime state.
package analysis

import (
	"fmt"
	"math"
)

// Task is one periodic task in the analyzed set. A zero Deadline means the
// deadline is implicit, equal to the period.
type Task struct {
	Name     string
	Period   int
	ExecTime int
	Deadline int
}

// Verdict is the outcome of a schedulability test.
type Verdict int

const (
	// Schedulable means the utilization test passed.
	Schedulable Verdict = iota
	// Unknown means the sufficient test failed but the set may still be
	// schedulable (exact response-time analysis would be needed).
	Unknown
	// NotSchedulable means the set provably cannot meet all deadlines.
	NotSchedulable
)

func (v Verdict) String() string {
	switch v {
	case Schedulable:
		return "schedulable"
	case Unknown:
		return "unknown"
	case NotSchedulable:
		return "not schedulable"
	default:
		return "invalid"
	}
}

// Report summarizes the analysis of one task set.
type Report struct {
	Utilization float64 // U = sum(C_i / T_i)
	RMSBound    float64 // n * (2^(1/n) - 1)
	RMS         Verdict
	EDF         Verdict
	Hyperperiod int64 // LCM of all periods
}

// Analyze runs the utilization-based tests over the task set.
//
// RMS: U <= n(2^(1/n)-1) is sufficient but not necessary, so a failed test
// yields Unknown rather than NotSchedulable. EDF: U <= 1 is both, so the
// verdict is always definitive.
func Analyze(tasks []Task) (Report, error) {
	if len(tasks) == 0 {
		return Report{}, fmt.Errorf("empty task set")
	}

	var u float64
	hyper := int64(1)
	for _, t := range tasks {
		if t.Period <= 0 {
			return Report{}, fmt.Errorf("task %q: period must be positive, got %d", t.Name, t.Period)
		}
		if t.ExecTime < 0 {
			return Report{}, fmt.Errorf("task %q: execution time must be non-negative, got %d", t.Name, t.ExecTime)
		}
		if t.Deadline < 0 {
			return Report{}, fmt.Errorf("task %q: deadline must be non-negative, got %d", t.Name, t.Deadline)
		}
		u += float64(t.ExecTime) / float64(t.Period)
		hyper = lcm(hyper, int64(t.Period))
	}

	n := float64(len(tasks))
	bound := n * (math.Pow(2, 1/n) - 1)

	r := Report{
		Utilization: u,
		RMSBound:    bound,
		Hyperperiod: hyper,
	}
	if u <= bound {
		r.RMS = Schedulable
	} else {
		r.RMS = Unknown
	}
	if u <= 1.0 {
		r.EDF = Schedulable
	} else {
		r.EDF = NotSchedulable
	}
	return r, nil
}

// EffectiveDeadline resolves a task's implicit deadline.
func (t Task) EffectiveDeadline() int {
	if t.Deadline == 0 {
		return t.Period
	}
	return t.Deadline
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func lcm(a, b int64) int64 {
	return a / gcd(a, b) * b
}
