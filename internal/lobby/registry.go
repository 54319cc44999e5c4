package lobby

import (
	"context"
	"math/rand"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/coder/quartz"
	"github.com/rs/zerolog/log"

	"holdem-server/internal/table"
)

const (
	VariantHoldem = "holdem"

	minTableID    = 10000
	maxTableID    = 99999
	maxIDAttempts = 64
)

type Options struct {
	SmallBlind    int64
	StartingStack int64
	MaxSeats      int
	ActionTimeout time.Duration
	IdleTimeout   time.Duration
	NewHandID     func() string

	Clock    quartz.Clock
	Rand     *rand.Rand
	Notifier table.Notifier
	Recorder table.Recorder
}

// Registry maps table ids to live tables. The mutex covers the maps only;
// table methods are never called while it is held.
type Registry struct {
	opts  Options
	clock quartz.Clock

	mu     sync.Mutex
	rng    *rand.Rand
	tables map[string]*table.Table
	// ids of closed tables, so a repeated close is a no-op
	closed map[string]struct{}
}

func New(opts Options) *Registry {
	if opts.Clock == nil {
		opts.Clock = quartz.NewReal()
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.IdleTimeout <= 0 {
		opts.IdleTimeout = 30 * time.Second
	}
	return &Registry{
		opts:   opts,
		clock:  opts.Clock,
		rng:    opts.Rand,
		tables: map[string]*table.Table{},
		closed: map[string]struct{}{},
	}
}

// Create starts a table under id.
func (r *Registry) Create(id string) (*table.Table, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tables[id]; ok {
		return nil, ErrAlreadyExists
	}
	return r.createLocked(id)
}

// NewTable starts a table of the given variant under a random free id.
func (r *Registry) NewTable(variant string) (*table.Table, error) {
	switch strings.ToLower(strings.TrimSpace(variant)) {
	case "", VariantHoldem:
	default:
		return nil, ErrUnknownVariant
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := 0; i < maxIDAttempts; i++ {
		id := strconv.Itoa(minTableID + r.rng.Intn(maxTableID-minTableID+1))
		if _, taken := r.tables[id]; taken {
			continue
		}
		return r.createLocked(id)
	}
	return nil, ErrNoFreeID
}

func (r *Registry) createLocked(id string) (*table.Table, error) {
	t, err := table.New(table.Config{
		ID:            id,
		SmallBlind:    r.opts.SmallBlind,
		StartingStack: r.opts.StartingStack,
		MaxSeats:      r.opts.MaxSeats,
		ActionTimeout: r.opts.ActionTimeout,
		NewHandID:     r.opts.NewHandID,
		Clock:         r.clock,
		Rand:          rand.New(rand.NewSource(r.rng.Int63())),
		Notifier:      r.opts.Notifier,
		Recorder:      r.opts.Recorder,
		OnClose:       r.dropClosed,
	})
	if err != nil {
		return nil, err
	}
	r.tables[id] = t
	delete(r.closed, id)
	tablesLive.Add(1)
	tablesCreated.Add(1)
	log.Info().Str("table_id", id).Int64("small_blind", r.opts.SmallBlind).Msg("table_created")
	return t, nil
}

func (r *Registry) Get(id string) (*table.Table, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tables[id]
	if !ok {
		return nil, ErrNotFound
	}
	return t, nil
}

// Close shuts a table down. Closing an id that was already closed is a
// no-op; an id that never existed is ErrNotFound.
func (r *Registry) Close(ctx context.Context, id, reason string) error {
	r.mu.Lock()
	t, ok := r.tables[id]
	_, tomb := r.closed[id]
	r.mu.Unlock()
	if !ok {
		if tomb {
			return nil
		}
		return ErrNotFound
	}
	return t.Close(ctx, reason)
}

// dropClosed runs on the goroutine of a table that just closed.
func (r *Registry) dropClosed(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tables[id]; !ok {
		return
	}
	delete(r.tables, id)
	r.closed[id] = struct{}{}
	tablesLive.Add(-1)
	tablesClosed.Add(1)
}

// List returns the live tables ordered by id.
func (r *Registry) List() []*table.Table {
	r.mu.Lock()
	out := make([]*table.Table, 0, len(r.tables))
	for _, t := range r.tables {
		out = append(out, t)
	}
	r.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tables)
}

// CloseAll closes every live table, e.g. on shutdown.
func (r *Registry) CloseAll(ctx context.Context, reason string) {
	for _, t := range r.List() {
		if err := t.Close(ctx, reason); err != nil {
			log.Warn().Err(err).Str("table_id", t.ID()).Msg("table_close_failed")
		}
	}
}
