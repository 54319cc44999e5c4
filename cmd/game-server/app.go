package main

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"time"

	"github.com/coder/quartz"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"holdem-server/internal/app/public"
	"holdem-server/internal/config"
	"holdem-server/internal/ledger"
	"holdem-server/internal/lobby"
	"holdem-server/internal/mcpserver"
	"holdem-server/internal/router"
	"holdem-server/internal/store"
	httptransport "holdem-server/internal/transport/http"
	"holdem-server/internal/ws"
)

const shutdownTimeout = 5 * time.Second

type app struct {
	cfg      config.ServerConfig
	registry *lobby.Registry
	ledger   *ledger.Ledger
	handler  *chi.Mux
}

// newApp wires the process. st may be nil, in which case settled hands are
// only logged.
func newApp(cfg config.ServerConfig, st *store.Store, clock quartz.Clock) *app {
	var journal ledger.Journal
	var hands public.HandJournal
	var db httptransport.Pinger
	if st != nil {
		journal, hands, db = st, st, st
	}
	led := ledger.New(journal, cfg.LedgerQueueSize)

	seed := cfg.RNGSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	hub := router.NewHub()
	reg := lobby.New(lobby.Options{
		SmallBlind:    cfg.SmallBlind,
		StartingStack: cfg.StartingStack,
		MaxSeats:      cfg.MaxSeats,
		ActionTimeout: cfg.ActionTimeout,
		IdleTimeout:   cfg.TableIdleTimeout,
		// Table ids are reused, so journaled hands need globally unique ids.
		NewHandID:     func() string { return store.NewPrefixedID("h") },
		Clock:         clock,
		Rand:          rand.New(rand.NewSource(seed)),
		Notifier:      hub,
		Recorder:      led,
	})
	rt := router.New(reg, hub)
	publicSvc := public.NewService(reg, hands)

	deps := httptransport.Deps{
		Public:      publicSvc,
		WS:          ws.NewServer(rt).HandleWS,
		DB:          db,
		AdminAPIKey: cfg.AdminAPIKey,
	}
	if cfg.MCPEnabled {
		deps.MCP = mcpserver.New(publicSvc).Handler()
	}
	return &app{
		cfg:      cfg,
		registry: reg,
		ledger:   led,
		handler:  httptransport.NewRouter(deps),
	}
}

func openStore(ctx context.Context, dsn string) (*store.Store, error) {
	st, err := store.New(dsn)
	if err != nil {
		return nil, err
	}
	if err := st.Ping(ctx); err != nil {
		st.Close()
		return nil, err
	}
	if err := st.EnsureSchema(ctx); err != nil {
		st.Close()
		return nil, err
	}
	return st, nil
}

func run(ctx context.Context, cfg config.ServerConfig) error {
	var st *store.Store
	if cfg.PostgresDSN != "" {
		var err error
		if st, err = openStore(ctx, cfg.PostgresDSN); err != nil {
			return err
		}
		defer st.Close()
		log.Info().Msg("hand_journal_enabled")
	} else {
		log.Warn().Msg("hand_journal_disabled")
	}

	a := newApp(cfg, st, quartz.NewReal())
	httptransport.LogRoutes(a.handler)
	return a.serve(ctx)
}

func (a *app) serve(ctx context.Context) error {
	server := &http.Server{
		Addr:              a.cfg.HTTPAddr,
		Handler:           a.handler,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// The ledger outlives the tables so the last settled hands still reach it.
	ledgerCtx, stopLedger := context.WithCancel(context.Background())
	defer stopLedger()
	ledgerDone := make(chan error, 1)
	go func() { ledgerDone <- a.ledger.Run(ledgerCtx) }()

	g, gctx := errgroup.WithContext(ctx)
	janitor := a.registry.StartJanitor(gctx, a.cfg.JanitorInterval)
	g.Go(func() error {
		log.Info().Str("addr", a.cfg.HTTPAddr).Msg("http_listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := server.Shutdown(shutdownCtx)
		a.registry.CloseAll(shutdownCtx, "server_shutdown")
		return err
	})
	g.Go(func() error {
		err := janitor.Wait()
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	err := g.Wait()
	stopLedger()
	<-ledgerDone
	return err
}
