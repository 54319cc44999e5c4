package config

import (
	"errors"
	"testing"
)

func TestLoadLogDefaults(t *testing.T) {
	cfg, err := LoadLog()
	if err != nil {
		t.Fatalf("LoadLog() error = %v", err)
	}
	if cfg.Level != "info" {
		t.Fatalf("Level = %q, want info", cfg.Level)
	}
	if cfg.MaxMB != 10 {
		t.Fatalf("MaxMB = %d, want 10", cfg.MaxMB)
	}
	if cfg.Service != "holdem-server" {
		t.Fatalf("Service = %q, want holdem-server", cfg.Service)
	}
}

func TestLoadLogParse(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_PRETTY", "true")
	t.Setenv("LOG_SAMPLE_EVERY", "5")
	t.Setenv("LOG_SERVICE", "dumb-bot")

	cfg, err := LoadLog()
	if err != nil {
		t.Fatalf("LoadLog() error = %v", err)
	}
	if cfg.Level != "debug" || !cfg.Pretty || cfg.SampleEvery != 5 || cfg.Service != "dumb-bot" {
		t.Fatalf("unexpected log config: %+v", cfg)
	}
}

func TestLoadLogRejectsUncappedFile(t *testing.T) {
	t.Setenv("LOG_FILE", "holdem.log")
	t.Setenv("LOG_MAX_MB", "0")

	if _, err := LoadLog(); !errors.Is(err, ErrInvalid) {
		t.Fatalf("LoadLog() error = %v, want ErrInvalid", err)
	}
}
