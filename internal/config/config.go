// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...Option) initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"runtime"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// JournalSize bounds the in-memory change journal.
	JournalSize int `koanf:"journal_size"`

	// WorkerCount sets the number of journal workers.
	WorkerCount int `koanf:"worker_count"`

	// MaxListLimit caps GET /todo?first_n.
	MaxListLimit int `koanf:"max_list_limit"`

	// DefaultListLimit applies when first_n is absent.
	DefaultListLimit int `koanf:"default_list_limit"`

	// SeedDemoData loads the demo todos into the store at startup.
	SeedDemoData bool `koanf:"seed_demo_data"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		Addr:             ":8000",
		JournalSize:      1024,
		WorkerCount:      runtime.NumCPU(),
		MaxListLimit:     100,
		DefaultListLimit: 3,
		SeedDemoData:     false,
	}
}
