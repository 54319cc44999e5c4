package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// LogConfig drives the global zerolog logger of both binaries. Service tags
// every line so server and bot logs can share one file.
type LogConfig struct {
	Level       string `env:"LOG_LEVEL" envDefault:"info"`
	Pretty      bool   `env:"LOG_PRETTY" envDefault:"false"`
	SampleEvery int    `env:"LOG_SAMPLE_EVERY" envDefault:"0"`
	Service     string `env:"LOG_SERVICE" envDefault:"holdem-server"`
	File        string `env:"LOG_FILE"`
	MaxMB       int    `env:"LOG_MAX_MB" envDefault:"10"`
}

func LoadLog() (LogConfig, error) {
	var cfg LogConfig
	if err := env.Parse(&cfg); err != nil {
		return LogConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return LogConfig{}, err
	}
	return cfg, nil
}

func (c LogConfig) Validate() error {
	switch {
	case c.SampleEvery < 0:
		return fmt.Errorf("%w: LOG_SAMPLE_EVERY must not be negative", ErrInvalid)
	case c.File != "" && c.MaxMB <= 0:
		return fmt.Errorf("%w: LOG_MAX_MB must be positive with LOG_FILE set", ErrInvalid)
	}
	return nil
}
