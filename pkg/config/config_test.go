package config

import (
	"testing"
	"time"
)

func TestLoadShouldApplyDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.StorePath != "unimate.db" {
		t.Errorf("Expected default store path, got %q", cfg.StorePath)
	}
	if cfg.AnalysisDelay != 2*time.Second {
		t.Errorf("Expected default analysis delay, got %v", cfg.AnalysisDelay)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("Expected default log level, got %q", cfg.LogLevel)
	}
}

func TestLoadShouldHonorEnvironment(t *testing.T) {
	t.Setenv("UNIMATE_STORE_PATH", "/tmp/portal.db")
	t.Setenv("UNIMATE_ANALYSIS_DELAY", "150ms")
	t.Setenv("UNIMATE_LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.StorePath != "/tmp/portal.db" {
		t.Errorf("Unexpected store path: %q", cfg.StorePath)
	}
	if cfg.AnalysisDelay != 150*time.Millisecond {
		t.Errorf("Unexpected analysis delay: %v", cfg.AnalysisDelay)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Unexpected log level: %q", cfg.LogLevel)
	}
}

func TestLoadShouldRejectInvalidDuration(t *testing.T) {
	t.Setenv("UNIMATE_ANALYSIS_DELAY", "soon")

	if _, err := Load(); err == nil {
		t.Error("Expected an error for an unparseable duration")
	}
}
