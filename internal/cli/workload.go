package cli

import (
	"fmt"
	"os"

	yaml "github.com/goccy/go-yaml"
)

// Workload mirrors a workload YAML file: the static task set plus how many
// ticks to simulate.
type Workload struct {
	Ticks int            `yaml:"ticks"`
	Tasks []WorkloadTask `yaml:"tasks"`
}

// WorkloadTask describes one task to create before the run starts.
type WorkloadTask struct {
	Name     string `yaml:"name"`
	Priority uint32 `yaml:"priority"`
	Deadline uint32 `yaml:"deadline"`
	Period   uint32 `yaml:"period"`
	ExecTime int    `yaml:"exec_time"` // ticks per period, for analysis

	// Behavior selects the task body: "spin" (default), "sleep", "block",
	// or "fail".
	Behavior     string `yaml:"behavior"`
	ExecMS       int64  `yaml:"exec_ms"`       // sleep duration for "sleep"
	BlockTimeout uint64 `yaml:"block_timeout"` // ticks, for "block"
	FailAfter    int64  `yaml:"fail_after"`    // successful runs before "fail" faults
}

// LoadWorkload reads and validates a workload file.
func LoadWorkload(path string) (Workload, error) {
	var w Workload

	data, err := os.ReadFile(path)
	if err != nil {
		return w, fmt.Errorf("read workload: %w", err)
	}
	if err := yaml.Unmarshal(data, &w); err != nil {
		return w, fmt.Errorf("parse workload: %w", err)
	}

	if len(w.Tasks) == 0 {
		return w, fmt.Errorf("workload %s defines no tasks", path)
	}
	for i, t := range w.Tasks {
		if t.Name == "" {
			return w, fmt.Errorf("task #%d has no name", i)
		}
		if t.Period == 0 {
			return w, fmt.Errorf("task %q: period must be positive", t.Name)
		}
	}
	if w.Ticks <= 0 {
		w.Ticks = 500
	}
	return w, nil
}
