package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func writeWorkload(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "workload.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write workload: %v", err)
	}
	return path
}

func TestLoadWorkload(t *testing.T) {
	path := writeWorkload(t, `
ticks: 200
tasks:
  - name: control
    priority: 3
    deadline: 2000
    period: 2000
    exec_time: 3
    behavior: block
    block_timeout: 100
  - name: logger
    priority: 1
    period: 1000
`)
	w, err := LoadWorkload(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if w.Ticks != 200 {
		t.Errorf("ticks = %d, want 200", w.Ticks)
	}
	if len(w.Tasks) != 2 {
		t.Fatalf("tasks = %d, want 2", len(w.Tasks))
	}
	if w.Tasks[0].Behavior != "block" || w.Tasks[0].BlockTimeout != 100 {
		t.Errorf("task 0 parsed as %+v", w.Tasks[0])
	}
	if w.Tasks[1].Priority != 1 || w.Tasks[1].Period != 1000 {
		t.Errorf("task 1 parsed as %+v", w.Tasks[1])
	}
}

func TestLoadWorkloadDefaultsTicks(t *testing.T) {
	path := writeWorkload(t, "tasks:\n  - name: a\n    period: 10\n")
	w, err := LoadWorkload(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if w.Ticks != 500 {
		t.Errorf("ticks = %d, want default 500", w.Ticks)
	}
}

func TestLoadWorkloadValidation(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"no tasks", "ticks: 10\n"},
		{"missing name", "tasks:\n  - period: 10\n"},
		{"zero period", "tasks:\n  - name: a\n    period: 0\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := LoadWorkload(writeWorkload(t, tc.content)); err == nil {
				t.Fatal("invalid workload accepted")
			}
		})
	}

	if _, err := LoadWorkload("/nonexistent/workload.yml"); err == nil {
		t.Fatal("missing file accepted")
	}
}
