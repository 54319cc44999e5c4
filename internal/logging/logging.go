package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"holdem-server/internal/config"
)

var (
	mu     sync.Mutex
	out    io.Writer = os.Stdout
	closer io.Closer
)

// Init installs the global zerolog logger. With a log file configured every
// line is also written to a size-capped file next to stdout.
func Init(cfg config.LogConfig) error {
	level := zerolog.InfoLevel
	if v := strings.TrimSpace(cfg.Level); v != "" {
		if parsed, err := zerolog.ParseLevel(strings.ToLower(v)); err == nil {
			level = parsed
		}
	}

	var stdout io.Writer = os.Stdout
	if cfg.Pretty {
		stdout = zerolog.ConsoleWriter{Out: os.Stdout}
	}
	w := stdout
	var c io.Closer
	if cfg.File != "" {
		f, err := newSizeLimitedWriter(cfg.File, cfg.MaxMB)
		if err != nil {
			return err
		}
		w = zerolog.MultiLevelWriter(stdout, f)
		c = f
	}

	zerolog.SetGlobalLevel(level)
	ctx := zerolog.New(w).With().Timestamp()
	if cfg.Service != "" {
		ctx = ctx.Str("service", cfg.Service)
	}
	logger := ctx.Logger()
	if cfg.SampleEvery > 1 {
		logger = logger.Sample(&zerolog.BasicSampler{N: uint32(cfg.SampleEvery)})
	}
	log.Logger = logger

	mu.Lock()
	if closer != nil {
		_ = closer.Close()
	}
	out, closer = w, c
	mu.Unlock()
	return nil
}

// Writer is the sink the global logger writes to. Request logs share it.
func Writer() io.Writer {
	mu.Lock()
	defer mu.Unlock()
	return out
}

func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if closer == nil {
		return nil
	}
	err := closer.Close()
	closer = nil
	return err
}
