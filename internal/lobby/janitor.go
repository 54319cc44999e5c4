package lobby

import (
	"context"
	"time"

	"github.com/coder/quartz"
	"github.com/rs/zerolog/log"
)

// Sweep closes every table that has had no seated player for the idle
// timeout and returns how many it closed.
func (r *Registry) Sweep(ctx context.Context) int {
	n := 0
	for _, t := range r.List() {
		closed, err := t.CloseIfIdle(ctx, r.opts.IdleTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return n
			}
			log.Warn().Err(err).Str("table_id", t.ID()).Msg("idle_check_failed")
			continue
		}
		if closed {
			n++
			log.Info().Str("table_id", t.ID()).Dur("idle", r.opts.IdleTimeout).Msg("table_idle_closed")
		}
	}
	return n
}

// StartJanitor sweeps idle tables every interval until ctx is done.
func (r *Registry) StartJanitor(ctx context.Context, interval time.Duration) quartz.Waiter {
	if interval <= 0 {
		interval = time.Second
	}
	return r.clock.TickerFunc(ctx, interval, func() error {
		r.Sweep(ctx)
		return nil
	}, "lobby", "janitor")
}
