package table

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/coder/quartz"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"holdem-server/internal/game"
)

const DefaultMaxSeats = 8

type Config struct {
	ID            string
	SmallBlind    int64
	StartingStack int64
	MaxSeats      int
	// ActionTimeout folds a player that does not act in time. Zero waits forever.
	ActionTimeout time.Duration
	// NewHandID names hands; nil uses "<table id>-<hand no>".
	NewHandID     func() string

	Clock    quartz.Clock
	Rand     *rand.Rand
	Notifier Notifier
	Recorder Recorder
	// OnClose runs on the table goroutine after the table has closed, for
	// whatever reason.
	OnClose func(id string)
}

// Table owns the seats and the hand engine of one game. Every mutation runs
// on the table's own goroutine; the exported methods submit commands to it
// and wait for the result.
type Table struct {
	id        string
	cfg       Config
	clock     quartz.Clock
	log       zerolog.Logger
	notifier  Notifier
	recorder  Recorder
	createdAt time.Time

	cmds chan command
	done chan struct{}

	// owned by the table goroutine
	engine     *game.Engine
	seats      map[int]*game.Player
	bySeat     map[string]int
	emptySince time.Time
	closed     bool
	closeErr   error
	turn       *quartz.Timer
	turnSeq    int
}

type command struct {
	fn    func() error
	reply chan error
}

func New(cfg Config) (*Table, error) {
	if cfg.ID == "" || cfg.SmallBlind <= 0 || cfg.StartingStack <= 0 {
		return nil, ErrBadTable
	}
	if cfg.MaxSeats <= 0 {
		cfg.MaxSeats = DefaultMaxSeats
	}
	if cfg.Clock == nil {
		cfg.Clock = quartz.NewReal()
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if cfg.Notifier == nil {
		cfg.Notifier = nopNotifier{}
	}
	if cfg.Recorder == nil {
		cfg.Recorder = nopRecorder{}
	}
	now := cfg.Clock.Now()
	t := &Table{
		id:         cfg.ID,
		cfg:        cfg,
		clock:      cfg.Clock,
		log:        log.With().Str("table_id", cfg.ID).Logger(),
		notifier:   cfg.Notifier,
		recorder:   cfg.Recorder,
		createdAt:  now,
		cmds:       make(chan command),
		done:       make(chan struct{}),
		engine:     game.NewEngine(cfg.ID, cfg.SmallBlind, cfg.Rand),
		seats:      map[int]*game.Player{},
		bySeat:     map[string]int{},
		emptySince: now,
	}
	t.engine.NewHandID = cfg.NewHandID
	go t.run()
	return t, nil
}

func (t *Table) ID() string {
	return t.id
}

// Done is closed once the table goroutine has exited.
func (t *Table) Done() <-chan struct{} {
	return t.done
}

// Err reports why the table closed itself. It is nil while the table runs
// and after an ordinary close.
func (t *Table) Err() error {
	select {
	case <-t.done:
		return t.closeErr
	default:
		return nil
	}
}

func (t *Table) run() {
	defer close(t.done)
	for cmd := range t.cmds {
		cmd.reply <- t.exec(cmd.fn)
		if t.closed {
			return
		}
	}
}

// exec runs one command. A panic closes this table and nothing else.
func (t *Table) exec(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic: %v", game.ErrInvariant, r)
			t.fail(err)
		}
	}()
	return fn()
}

func (t *Table) do(ctx context.Context, fn func() error) error {
	reply := make(chan error, 1)
	select {
	case t.cmds <- command{fn: fn, reply: reply}:
	case <-t.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
	// The goroutine writes the reply before it can exit, so a received
	// command always gets an answer.
	return <-reply
}

// Join seats identity in the lowest free seat. Joining twice returns the
// seat already held.
func (t *Table) Join(ctx context.Context, identity, name string) (int, error) {
	seat := -1
	err := t.do(ctx, func() error {
		if s, ok := t.bySeat[identity]; ok {
			seat = s
			return nil
		}
		s, ok := t.freeSeat()
		if !ok {
			return ErrTableFull
		}
		p := &game.Player{ID: identity, Name: name, Seat: s, Balance: t.cfg.StartingStack}
		t.seats[s] = p
		t.bySeat[identity] = s
		t.emptySince = time.Time{}
		seat = s
		t.log.Info().Str("identity", identity).Int("seat", s).Msg("player_joined")
		t.notifier.Notify(t.id, identity, Joined{TableID: t.id, Seat: s})
		return t.maybeStartHand()
	})
	return seat, err
}

func (t *Table) freeSeat() (int, bool) {
	for s := 0; s < t.cfg.MaxSeats; s++ {
		if _, taken := t.seats[s]; !taken {
			return s, true
		}
	}
	return 0, false
}

// Leave vacates the seat of identity, folding its hand if one is running.
// The chips it already committed stay in the pot.
func (t *Table) Leave(ctx context.Context, identity string) error {
	return t.do(ctx, func() error {
		p, err := t.seated(identity)
		if err != nil {
			return err
		}
		if err := t.engine.ForceFold(p.Seat); err != nil {
			return t.fail(err)
		}
		delete(t.seats, p.Seat)
		delete(t.bySeat, identity)
		if len(t.seats) == 0 {
			t.emptySince = t.clock.Now()
		}
		t.log.Info().Str("identity", identity).Int("seat", p.Seat).Int64("balance", p.Balance).Msg("player_left")
		t.broadcast(PlayerLeft{Seat: p.Seat, Identity: identity})
		return t.afterEngine()
	})
}

// SitOut keeps the seat but leaves identity out of the following hands. A
// hand in progress is played to its end.
func (t *Table) SitOut(ctx context.Context, identity string) error {
	return t.do(ctx, func() error {
		p, err := t.seated(identity)
		if err != nil {
			return err
		}
		p.SittingOut = true
		t.broadcast(SatOut{Seat: p.Seat})
		return nil
	})
}

func (t *Table) SitIn(ctx context.Context, identity string) error {
	return t.do(ctx, func() error {
		p, err := t.seated(identity)
		if err != nil {
			return err
		}
		if p.Balance <= 0 {
			return ErrNoChips
		}
		p.SittingOut = false
		return t.maybeStartHand()
	})
}

// Act applies a player action. Rejections leave the hand untouched and are
// returned to the caller only.
func (t *Table) Act(ctx context.Context, identity string, a game.Action) error {
	return t.do(ctx, func() error {
		p, err := t.seated(identity)
		if err != nil {
			return err
		}
		if err := t.engine.ApplyAction(p.Seat, a); err != nil {
			if game.IsProtocolError(err) {
				actionsRejected.Add(1)
				t.log.Debug().Str("identity", identity).Int("seat", p.Seat).Str("reason", game.Code(err)).Msg("action_rejected")
				return err
			}
			return t.fail(err)
		}
		return t.afterEngine()
	})
}

// Chat relays text from a seated identity to everyone at the table.
func (t *Table) Chat(ctx context.Context, identity, text string) error {
	return t.do(ctx, func() error {
		p, err := t.seated(identity)
		if err != nil {
			return err
		}
		from := p.Name
		if from == "" {
			from = identity
		}
		t.broadcast(ChatRelayed{TableID: t.id, From: from, Text: text})
		return nil
	})
}

// Rename changes the name shown for a seated identity in later chat relays.
func (t *Table) Rename(ctx context.Context, identity, name string) error {
	return t.do(ctx, func() error {
		p, err := t.seated(identity)
		if err != nil {
			return err
		}
		p.Name = name
		return nil
	})
}

// Close tells every seated identity the table is gone and stops the table
// goroutine. Closing a closed table is a no-op.
func (t *Table) Close(ctx context.Context, reason string) error {
	err := t.do(ctx, func() error {
		t.shutdown(reason)
		return nil
	})
	if errors.Is(err, ErrClosed) {
		return nil
	}
	return err
}

// CloseIfIdle closes the table when nobody has been seated for at least
// idle. The check and the close run as one command, so a Join can never
// slip in between them.
func (t *Table) CloseIfIdle(ctx context.Context, idle time.Duration) (bool, error) {
	closed := false
	err := t.do(ctx, func() error {
		if len(t.seats) > 0 || t.emptySince.IsZero() {
			return nil
		}
		if t.clock.Since(t.emptySince) < idle {
			return nil
		}
		t.shutdown("idle")
		closed = true
		return nil
	})
	if errors.Is(err, ErrClosed) {
		return false, nil
	}
	return closed, err
}

func (t *Table) seated(identity string) (*game.Player, error) {
	s, ok := t.bySeat[identity]
	if !ok {
		return nil, ErrNotSeated
	}
	return t.seats[s], nil
}

func (t *Table) seatedPlayers() []*game.Player {
	out := make([]*game.Player, 0, len(t.seats))
	for _, p := range t.seats {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seat < out[j].Seat })
	return out
}

// broadcast sends ev to every seated identity.
func (t *Table) broadcast(ev game.Event) {
	for _, p := range t.seatedPlayers() {
		t.notifier.Notify(t.id, p.ID, ev)
	}
}

func (t *Table) shutdown(reason string) {
	if t.closed {
		return
	}
	t.stopTurnTimer()
	t.broadcast(Closed{TableID: t.id, Reason: reason})
	t.closed = true
	t.log.Info().Str("reason", reason).Int("seated", len(t.seats)).Msg("table_closed")
	if t.cfg.OnClose != nil {
		t.cfg.OnClose(t.id)
	}
}

// fail closes the table after an internal invariant broke and returns err
// so the caller sees it.
func (t *Table) fail(err error) error {
	tableFaults.Add(1)
	t.log.Error().Err(err).Int("hand_no", t.engine.HandNo).Msg("table_fault")
	t.closeErr = err
	t.shutdown("internal_error")
	return err
}
