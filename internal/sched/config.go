package sched

import (
	"os"

	yaml "github.com/goccy/go-yaml"
)

// Config mirrors config.yml
type Config struct {
	MaxTasks    int    `yaml:"max_tasks"`    // 32 (by default)
	TickMS      int    `yaml:"tick_ms"`      // 5 (by default)
	EventBuffer int    `yaml:"event_buffer"` // 256 (by default)
	LogLevel    string `yaml:"log_level"`    // "info" (by default)
	LogFormat   string `yaml:"log_format"`   // "text" (by default)
	TraceCSV    string `yaml:"trace_csv"`    // empty = no CSV trace
}

// If the config file is not found, we use default values
func defaultConfig() Config {
	return Config{
		MaxTasks:    32,
		TickMS:      5,
		EventBuffer: 256,
		LogLevel:    "info",
		LogFormat:   "text",
	}
}

// Load reads YAML and overrides defaults; empty path = defaults only
func Load(path string) Config {
	cfg := defaultConfig()

	if path == "" {
		return cfg
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}

	_ = yaml.Unmarshal(data, &cfg)

	// sanity clamps
	if cfg.MaxTasks <= 0 {
		cfg.MaxTasks = 32
	}
	if cfg.TickMS <= 0 {
		cfg.TickMS = 5
	}
	if cfg.EventBuffer <= 0 {
		cfg.EventBuffer = 256
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}

	return cfg
}
