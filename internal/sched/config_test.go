package sched

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg := Load("")
	if cfg.MaxTasks != 32 || cfg.TickMS != 5 || cfg.EventBuffer != 256 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "text" {
		t.Fatalf("unexpected logging defaults: %+v", cfg)
	}

	cfg = Load("/nonexistent/config.yml")
	if cfg.MaxTasks != 32 {
		t.Fatalf("missing file should fall back to defaults, got %+v", cfg)
	}
}

func TestLoadOverridesAndClamps(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	content := "max_tasks: 8\ntick_ms: -3\nlog_level: debug\ntrace_csv: /tmp/trace.csv\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg := Load(path)
	if cfg.MaxTasks != 8 {
		t.Errorf("max_tasks = %d, want 8", cfg.MaxTasks)
	}
	if cfg.TickMS != 5 {
		t.Errorf("negative tick_ms not clamped to default, got %d", cfg.TickMS)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("log_level = %q, want debug", cfg.LogLevel)
	}
	if cfg.TraceCSV != "/tmp/trace.csv" {
		t.Errorf("trace_csv = %q", cfg.TraceCSV)
	}
}
