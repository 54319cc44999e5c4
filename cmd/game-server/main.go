package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"holdem-server/internal/config"
	"holdem-server/internal/logging"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.LoadApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if err := logging.Init(cfg.Log); err != nil {
		fmt.Fprintf(os.Stderr, "init logging: %v\n", err)
		os.Exit(1)
	}
	defer logging.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg.Server); err != nil {
		log.Error().Err(err).Msg("server_stopped")
		os.Exit(1)
	}
	log.Info().Msg("server_stopped")
}
