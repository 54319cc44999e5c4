package store

import (
	"errors"
	"strings"
	"testing"
)

func TestRecordHandAndListLedger(t *testing.T) {
	st, ctx, cleanup := openStore(t)
	defer cleanup()

	rec := HandRecord{
		Hand: Hand{ID: NewID(), TableID: "12345", HandNo: 1, Button: 0, Board: "As Kd 7c 2h 2s"},
		Entries: []LedgerEntry{
			{ID: NewID(), Identity: "c_a", Seat: 0, Type: "blind_debit", Amount: 100},
			{ID: NewID(), Identity: "c_b", Seat: 1, Type: "blind_debit", Amount: 200},
			{ID: NewID(), Identity: "c_b", Seat: 1, Type: "pot_credit", Amount: 300},
		},
	}
	if err := st.RecordHand(ctx, rec); err != nil {
		t.Fatalf("record hand: %v", err)
	}
	h, err := st.GetHand(ctx, rec.Hand.ID)
	if err != nil {
		t.Fatalf("get hand: %v", err)
	}
	if h.TableID != "12345" || h.Board != rec.Hand.Board {
		t.Fatalf("unexpected hand %+v", h)
	}
	entries, err := st.ListLedgerEntries(ctx, rec.Hand.ID)
	if err != nil {
		t.Fatalf("list ledger entries: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	for _, e := range entries {
		if e.TableID != "12345" || e.HandID != rec.Hand.ID {
			t.Fatalf("entry not linked to hand: %+v", e)
		}
	}
}

func TestRecordHandIsAtomic(t *testing.T) {
	st, ctx, cleanup := openStore(t)
	defer cleanup()

	rec := HandRecord{
		Hand: Hand{ID: NewID(), TableID: "12345", HandNo: 2},
		Entries: []LedgerEntry{
			{ID: NewID(), Identity: "c_a", Seat: 0, Type: "blind_debit", Amount: 100},
			{ID: NewID(), Identity: "c_a", Seat: 0, Type: "bet_debit", Amount: 0},
		},
	}
	if err := st.RecordHand(ctx, rec); err == nil {
		t.Fatalf("expected zero amount entry to fail")
	}
	if _, err := st.GetHand(ctx, rec.Hand.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected hand rolled back, got %v", err)
	}
}

func TestNewPrefixedID(t *testing.T) {
	a, b := NewPrefixedID("c"), NewPrefixedID("c")
	if !strings.HasPrefix(a, "c_") || a == b {
		t.Fatalf("unexpected ids %q %q", a, b)
	}
	if len(a) != 2+26 {
		t.Fatalf("expected a ULID after the prefix, got %q", a)
	}
}
