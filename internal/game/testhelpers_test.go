package game

import (
	"errors"
	"math/rand"
	"testing"
)

func seatPlayers(balances ...int64) []*Player {
	out := make([]*Player, 0, len(balances))
	for i, b := range balances {
		out = append(out, &Player{ID: "p" + string(rune('a'+i)), Seat: i, Balance: b})
	}
	return out
}

func startHand(t *testing.T, seed int64, smallBlind int64, balances ...int64) *Engine {
	t.Helper()
	e := NewEngine("t1", smallBlind, rand.New(rand.NewSource(seed)))
	if err := e.StartHand(seatPlayers(balances...)); err != nil {
		t.Fatalf("start hand: %v", err)
	}
	return e
}

func act(t *testing.T, e *Engine, seat int, typ ActionType, amount int64) {
	t.Helper()
	if err := e.ApplyAction(seat, Action{Type: typ, Amount: amount}); err != nil {
		t.Fatalf("seat %d %s %d: %v", seat, typ, amount, err)
	}
	assertPartition(t, e)
}

func assertRejected(t *testing.T, err error, want error) {
	t.Helper()
	var pe *ProtocolError
	if !errors.As(err, &pe) {
		t.Fatalf("expected protocol error, got %v", err)
	}
	if !errors.Is(err, want) {
		t.Fatalf("expected %v, got %v", want, err)
	}
}

// assertPartition checks that the deck, the board and the hole cards hold
// every card exactly once.
func assertPartition(t *testing.T, e *Engine) {
	t.Helper()
	seen := map[Card]bool{}
	dealt := append([]Card(nil), e.Community...)
	for _, p := range e.Players {
		dealt = append(dealt, p.Hole...)
	}
	for _, c := range dealt {
		if seen[c] {
			t.Fatalf("card %s dealt twice", c)
		}
		seen[c] = true
		if e.Deck().Contains(c) {
			t.Fatalf("dealt card %s still in deck", c)
		}
	}
	if e.Deck().Len()+len(dealt) != deckSize {
		t.Fatalf("deck %d + dealt %d != %d", e.Deck().Len(), len(dealt), deckSize)
	}
}

// restack replaces the dealt cards with the given holes and board. Seats not
// listed get fresh random holes.
func restack(t *testing.T, e *Engine, holes map[int]string, board string) {
	t.Helper()
	d := e.Deck()
	if err := d.Return(e.Community...); err != nil {
		t.Fatalf("return board: %v", err)
	}
	for _, p := range e.Players {
		if err := d.Return(p.Hole...); err != nil {
			t.Fatalf("return hole: %v", err)
		}
		p.Hole = nil
	}
	for seat, h := range holes {
		cards := MustParseCards(h)
		if err := d.Remove(cards...); err != nil {
			t.Fatalf("stack hole: %v", err)
		}
		e.player(seat).Hole = cards
	}
	e.Community = MustParseCards(board)
	if err := d.Remove(e.Community...); err != nil {
		t.Fatalf("stack board: %v", err)
	}
	for _, p := range e.Players {
		if p.Hole == nil {
			h, err := d.DrawN(2)
			if err != nil {
				t.Fatalf("draw: %v", err)
			}
			p.Hole = h
		}
	}
	assertPartition(t, e)
}

func totalBalance(e *Engine) int64 {
	var sum int64
	for _, p := range e.Players {
		sum += p.Balance
	}
	return sum
}

func lastPotResult(events []Event) (PotResult, bool) {
	for i := len(events) - 1; i >= 0; i-- {
		if r, ok := events[i].(PotResult); ok {
			return r, true
		}
	}
	return PotResult{}, false
}

// flopEngine builds a hand on the flop with no bets yet, blinds 50/100, the
// button on the last seat and seat 0 to act.
func flopEngine(t *testing.T, balances ...int64) *Engine {
	t.Helper()
	e := NewEngine("t1", 50, rand.New(rand.NewSource(9)))
	e.Players = seatPlayers(balances...)
	e.Phase = Flop
	e.HandNo = 1
	e.Button = len(balances) - 1
	e.Pots = []*Pot{NewPot(0)}
	e.FirstAction = true
	e.CurrentActor = 0
	var err error
	if e.Community, err = e.Deck().DrawN(3); err != nil {
		t.Fatalf("draw board: %v", err)
	}
	for _, p := range e.Players {
		if p.Hole, err = e.Deck().DrawN(2); err != nil {
			t.Fatalf("draw hole: %v", err)
		}
	}
	return e
}
