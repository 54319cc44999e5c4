package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type ServerConfig struct {
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`
	// Empty disables the hand journal.
	PostgresDSN string `env:"POSTGRES_DSN"`
	AdminAPIKey string `env:"ADMIN_API_KEY"`

	SmallBlind    int64 `env:"SMALL_BLIND" envDefault:"100"`
	StartingStack int64 `env:"STARTING_STACK" envDefault:"1000"`
	MaxSeats      int   `env:"MAX_SEATS" envDefault:"8"`

	TableIdleTimeout time.Duration `env:"TABLE_IDLE_TIMEOUT" envDefault:"30s"`
	JanitorInterval  time.Duration `env:"JANITOR_INTERVAL" envDefault:"1s"`
	ActionTimeout    time.Duration `env:"ACTION_TIMEOUT" envDefault:"0s"`

	RNGSeed         int64 `env:"RNG_SEED" envDefault:"0"`
	MCPEnabled      bool  `env:"MCP_ENABLED" envDefault:"true"`
	LedgerQueueSize int   `env:"LEDGER_QUEUE_SIZE" envDefault:"256"`
}

func LoadServer() (ServerConfig, error) {
	var cfg ServerConfig
	if err := env.Parse(&cfg); err != nil {
		return ServerConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return ServerConfig{}, err
	}
	return cfg, nil
}
