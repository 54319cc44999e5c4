package ledger

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"holdem-server/internal/game"
	"holdem-server/internal/store"
	"holdem-server/internal/testutil"
)

type chanJournal struct {
	got chan store.HandRecord
}

func (j *chanJournal) RecordHand(_ context.Context, rec store.HandRecord) error {
	j.got <- rec
	return nil
}

// playHand runs one heads-up hand where the first actor folds.
func playHand(t *testing.T) game.HandSummary {
	t.Helper()
	e := game.NewEngine("12345", 100, rand.New(rand.NewSource(1)))
	players := []*game.Player{
		{ID: "c_a", Seat: 0, Balance: 1000},
		{ID: "c_b", Seat: 1, Balance: 1000},
	}
	if err := e.StartHand(players); err != nil {
		t.Fatalf("start hand: %v", err)
	}
	if err := e.ApplyAction(e.CurrentActor, game.Action{Type: game.ActionFold}); err != nil {
		t.Fatalf("fold: %v", err)
	}
	for _, ev := range e.Drain() {
		if h, ok := ev.(game.HandEnded); ok {
			return h.Summary
		}
	}
	t.Fatalf("hand did not end")
	return game.HandSummary{}
}

func TestBuildRecordBalances(t *testing.T) {
	s := playHand(t)
	rec := BuildRecord(s)
	if rec.Hand.ID != s.HandID || rec.Hand.TableID != "12345" {
		t.Fatalf("unexpected hand row %+v", rec.Hand)
	}
	var blinds, credits int
	for _, e := range rec.Entries {
		switch e.Type {
		case TypeBlindDebit:
			blinds++
		case TypePotCredit:
			credits++
			if e.Amount != 300 {
				t.Fatalf("expected the winner to collect 300, got %d", e.Amount)
			}
		}
	}
	if blinds != 2 || credits != 1 {
		t.Fatalf("expected 2 blind debits and 1 credit, got %d/%d", blinds, credits)
	}
	if err := Check(rec); err != nil {
		t.Fatalf("check: %v", err)
	}
}

func TestCheckDetectsMismatch(t *testing.T) {
	rec := store.HandRecord{Entries: []store.LedgerEntry{
		{Type: TypeBlindDebit, Amount: 100},
		{Type: TypePotCredit, Amount: 90},
	}}
	if err := Check(rec); !errors.Is(err, ErrUnbalanced) {
		t.Fatalf("expected unbalanced, got %v", err)
	}
}

func TestWorkerWritesQueuedHands(t *testing.T) {
	j := &chanJournal{got: make(chan store.HandRecord, 1)}
	l := New(j, 4)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()

	s := playHand(t)
	l.Record(s)
	select {
	case rec := <-j.got:
		if rec.Hand.ID != s.HandID {
			t.Fatalf("expected hand %s, got %s", s.HandID, rec.Hand.ID)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("hand was not written")
	}
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("run: %v", err)
	}
}

func TestRecordDropsWhenQueueFull(t *testing.T) {
	l := New(nil, 1)
	before := dropped.Value()
	s := playHand(t)
	l.Record(s)
	l.Record(s)
	if got := dropped.Value() - before; got != 1 {
		t.Fatalf("expected one dropped hand, got %d", got)
	}
}

func TestLedgerWritesToPostgres(t *testing.T) {
	st, cleanup := testutil.OpenTestStore(t)
	defer cleanup()

	l := New(st, 4)
	ctx, cancel := context.WithCancel(context.Background())
	s := playHand(t)
	l.Record(s)
	cancel()
	if err := l.Run(ctx); err != nil {
		t.Fatalf("run: %v", err)
	}
	entries, err := st.ListLedgerEntries(context.Background(), s.HandID)
	if err != nil {
		t.Fatalf("list entries: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 ledger entries, got %d", len(entries))
	}
}
