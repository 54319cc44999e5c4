package ledger

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"holdem-server/internal/game"
	"holdem-server/internal/store"
)

const (
	TypeBlindDebit = "blind_debit"
	TypeBetDebit   = "bet_debit"
	TypePotCredit  = "pot_credit"

	defaultQueueSize = 256
	writeTimeout     = 5 * time.Second
)

// Journal persists settled hands.
type Journal interface {
	RecordHand(ctx context.Context, rec store.HandRecord) error
}

// Ledger turns hand summaries into chip movement entries and hands them to
// the journal on a worker goroutine. Record never blocks a table.
type Ledger struct {
	journal Journal
	queue   chan game.HandSummary
}

func New(j Journal, queueSize int) *Ledger {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	return &Ledger{journal: j, queue: make(chan game.HandSummary, queueSize)}
}

// Record queues a summary. When the queue is full the summary is dropped
// and counted.
func (l *Ledger) Record(s game.HandSummary) {
	select {
	case l.queue <- s:
		handsQueued.Add(1)
	default:
		dropped.Add(1)
		log.Warn().Str("table_id", s.TableID).Str("hand_id", s.HandID).Msg("ledger_queue_full")
	}
}

// Run writes queued hands until ctx is done, then flushes what is left.
func (l *Ledger) Run(ctx context.Context) error {
	for {
		select {
		case s := <-l.queue:
			l.write(ctx, s)
		case <-ctx.Done():
			l.drain()
			return nil
		}
	}
}

func (l *Ledger) drain() {
	for {
		select {
		case s := <-l.queue:
			l.write(context.Background(), s)
		default:
			return
		}
	}
}

func (l *Ledger) write(ctx context.Context, s game.HandSummary) {
	rec := BuildRecord(s)
	if err := Check(rec); err != nil {
		log.Error().Err(err).Str("hand_id", s.HandID).Msg("ledger_unbalanced")
	}
	if l.journal == nil {
		log.Debug().Str("hand_id", s.HandID).Int("entries", len(rec.Entries)).Msg("ledger_hand")
		return
	}
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	if err := l.journal.RecordHand(ctx, rec); err != nil {
		writeErrors.Add(1)
		log.Error().Err(err).Str("hand_id", s.HandID).Msg("ledger_write_failed")
		return
	}
	handsWritten.Add(1)
}

// BuildRecord converts a summary into journal rows: one debit per blind or
// bet contribution and one credit per payout.
func BuildRecord(s game.HandSummary) store.HandRecord {
	boards := make([]string, 0, len(s.Board))
	for _, c := range s.Board {
		boards = append(boards, c.String())
	}
	rec := store.HandRecord{
		Hand: store.Hand{
			ID:      s.HandID,
			TableID: s.TableID,
			HandNo:  s.HandNo,
			Button:  s.Button,
			Board:   strings.Join(boards, " "),
		},
	}
	for _, c := range s.Contributions {
		typ := TypeBetDebit
		if c.Kind == game.ContributionBlind {
			typ = TypeBlindDebit
		}
		rec.Entries = append(rec.Entries, store.LedgerEntry{
			ID:       store.NewID(),
			HandID:   s.HandID,
			TableID:  s.TableID,
			Identity: c.Identity,
			Seat:     c.Seat,
			Type:     typ,
			Amount:   c.Amount,
		})
	}
	for _, p := range s.Payouts {
		if p.Amount == 0 {
			continue
		}
		rec.Entries = append(rec.Entries, store.LedgerEntry{
			ID:       store.NewID(),
			HandID:   s.HandID,
			TableID:  s.TableID,
			Identity: p.Identity,
			Seat:     p.Seat,
			Type:     TypePotCredit,
			Amount:   p.Amount,
		})
	}
	return rec
}
