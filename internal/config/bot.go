package config

import "github.com/caarlos0/env/v11"

type BotConfig struct {
	WSURL string `env:"WS_URL" envDefault:"ws://localhost:8080/ws"`
	Name  string `env:"BOT_NAME" envDefault:"bot"`
	// Empty creates a new table.
	TableID string `env:"TABLE_ID"`
}

func LoadBot() (BotConfig, error) {
	var cfg BotConfig
	err := env.Parse(&cfg)
	return cfg, err
}
