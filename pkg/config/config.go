// Package config loads portal configuration from UNIMATE_* environment
// variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the tunable settings for wiring a portal.
type Config struct {
	// StorePath is the SQLite file backing the persistent store.
	StorePath string `env:"UNIMATE_STORE_PATH" envDefault:"unimate.db"`
	// AnalysisDelay simulates the latency of the notes analysis pipeline.
	AnalysisDelay time.Duration `env:"UNIMATE_ANALYSIS_DELAY" envDefault:"2s"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"UNIMATE_LOG_LEVEL" envDefault:"info"`
}

// Load parses configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
