package table

import (
	"context"
	"time"

	"holdem-server/internal/game"
)

type SeatView struct {
	Seat       int
	Identity   string
	Name       string
	Balance    int64
	CurrentBet int64
	InHand     bool
	Folded     bool
	AllIn      bool
	SittingOut bool
}

// Snapshot is a read-only copy of the public table state. Hole cards are
// never included.
type Snapshot struct {
	ID           string
	Phase        string
	HandID       string
	HandNo       int
	Button       int
	CurrentActor int
	SmallBlind   int64
	BigBlind     int64
	MaxSeats     int
	Board        []string
	Pot          int64
	Seats        []SeatView
	CreatedAt    time.Time
}

func (t *Table) Snapshot(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	err := t.do(ctx, func() error {
		snap = t.snapshot()
		return nil
	})
	return snap, err
}

func (t *Table) snapshot() Snapshot {
	e := t.engine
	snap := Snapshot{
		ID:           t.id,
		Phase:        e.Phase.String(),
		HandID:       e.HandID,
		HandNo:       e.HandNo,
		Button:       e.Button,
		CurrentActor: e.CurrentActor,
		SmallBlind:   e.SmallBlind,
		BigBlind:     e.BigBlind,
		MaxSeats:     t.cfg.MaxSeats,
		CreatedAt:    t.createdAt,
		Board:        []string{},
		Seats:        []SeatView{},
	}
	for _, c := range e.Community {
		snap.Board = append(snap.Board, c.String())
	}
	for _, pot := range e.Pots {
		snap.Pot += pot.Amount
	}
	inHand := map[*game.Player]bool{}
	if e.InHand() {
		for _, p := range e.Players {
			inHand[p] = true
			snap.Pot += p.CurrentBet
		}
	}
	for _, p := range t.seatedPlayers() {
		snap.Seats = append(snap.Seats, SeatView{
			Seat:       p.Seat,
			Identity:   p.ID,
			Name:       p.Name,
			Balance:    p.Balance,
			CurrentBet: p.CurrentBet,
			InHand:     inHand[p] && !p.Folded,
			Folded:     p.Folded,
			AllIn:      p.AllIn,
			SittingOut: p.SittingOut,
		})
	}
	return snap
}
