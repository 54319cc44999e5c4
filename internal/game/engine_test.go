package game

import (
	"errors"
	"math/rand"
	"testing"
)

func TestSplitPotOddChipGoesClockwiseFromButton(t *testing.T) {
	e := startHand(t, 3, 5, 1000, 1000, 1000)
	button, sb, bb := e.Button, e.SmallSeat, e.BigSeat
	act(t, e, button, ActionCall, 0)
	act(t, e, sb, ActionFold, 0)
	act(t, e, bb, ActionCheck, 0)
	for e.Phase != River {
		act(t, e, e.CurrentActor, ActionCheck, 0)
	}
	restack(t, e, map[int]string{bb: "2c 3d", button: "2d 3c"}, "As Ks Qs Js Ts")
	e.Drain()
	for e.InHand() {
		act(t, e, e.CurrentActor, ActionCheck, 0)
	}

	if got := e.player(bb).Balance; got != 1003 {
		t.Fatalf("expected big blind to take the odd chip (1003), got %d", got)
	}
	if got := e.player(button).Balance; got != 1002 {
		t.Fatalf("expected button 1002, got %d", got)
	}
	if got := e.player(sb).Balance; got != 995 {
		t.Fatalf("expected small blind 995, got %d", got)
	}
	r, ok := lastPotResult(e.Drain())
	if !ok || len(r.Payouts) != 2 || r.Payouts[0].Seat != bb {
		t.Fatalf("unexpected payouts %+v", r.Payouts)
	}
}

func TestShowdownPaysSidePotSeparately(t *testing.T) {
	e := flopEngine(t, 1000, 300, 1000)
	act(t, e, 0, ActionBet, 500)
	act(t, e, 1, ActionCall, 0)
	act(t, e, 2, ActionCall, 0)
	for e.Phase != River {
		act(t, e, e.CurrentActor, ActionCheck, 0)
	}
	// Seat 1 holds the nuts, seat 0 beats seat 2 for the side pot.
	restack(t, e, map[int]string{1: "Ah Ad", 0: "Kh Kd", 2: "Qh Qd"}, "Ac Kc 7s 4h 2d")
	for e.InHand() {
		act(t, e, e.CurrentActor, ActionCheck, 0)
	}
	if got := e.player(1).Balance; got != 900 {
		t.Fatalf("expected all-in seat to win the main pot (900), got %d", got)
	}
	if got := e.player(0).Balance; got != 500+400 {
		t.Fatalf("expected seat 0 to win the side pot, got %d", got)
	}
	if got := e.player(2).Balance; got != 500 {
		t.Fatalf("expected seat 2 to lose 500, got %d", got)
	}
}

func TestBustedPlayerSitsOut(t *testing.T) {
	e := flopEngine(t, 1000, 300)
	act(t, e, 0, ActionBet, 300)
	act(t, e, 1, ActionCall, 0)
	// Board runs out automatically once nobody can act.
	if e.InHand() {
		t.Fatalf("expected the hand to run out, phase %s", e.Phase)
	}
	loser := e.player(0)
	if e.player(1).Balance == 0 {
		loser = e.player(1)
	}
	if loser.Balance == 0 && !loser.SittingOut {
		t.Fatalf("expected busted player to sit out")
	}
	if totalBalance(e) != 1300 {
		t.Fatalf("chips not conserved: %d", totalBalance(e))
	}
	if e.Deck().Len() != deckSize {
		t.Fatalf("expected the deck back to %d cards, got %d", deckSize, e.Deck().Len())
	}
}

func TestForceFoldOutOfTurn(t *testing.T) {
	e := startHand(t, 12, 100, 1000, 1000, 1000)
	actor := e.CurrentActor
	var other int
	for _, p := range e.Players {
		if p.Seat != actor {
			other = p.Seat
			break
		}
	}
	if err := e.ForceFold(other); err != nil {
		t.Fatalf("force fold: %v", err)
	}
	if !e.player(other).Folded {
		t.Fatalf("expected seat %d folded", other)
	}
	if e.CurrentActor != actor {
		t.Fatalf("out of turn fold should not move the turn, got %d", e.CurrentActor)
	}
	if err := e.ForceFold(actor); err != nil {
		t.Fatalf("force fold actor: %v", err)
	}
	if e.InHand() {
		t.Fatalf("expected the hand to end with one player left")
	}
	if totalBalance(e) != 3000 {
		t.Fatalf("chips not conserved: %d", totalBalance(e))
	}
}

func TestPotWithNoContenderIsRefunded(t *testing.T) {
	e := flopEngine(t, 300, 100, 300)
	for _, p := range e.Players {
		p.Balance = 0
	}
	e.player(0).TotalBet, e.player(1).TotalBet, e.player(2).TotalBet = 300, 100, 300
	e.player(0).Folded, e.player(2).Folded = true, true
	e.player(1).AllIn = true
	mainPot := NewPot(0)
	for seat := range 3 {
		mainPot.Add(seat, 100)
	}
	mainPot.Eligible[1] = true
	side := NewPot(1)
	side.Add(0, 200)
	side.Add(2, 200)
	e.Pots = []*Pot{mainPot, side}

	if err := e.finishUncontested(); err != nil {
		t.Fatalf("finish: %v", err)
	}
	want := []int64{200, 300, 200}
	for seat, w := range want {
		if got := e.player(seat).Balance; got != w {
			t.Fatalf("seat %d: expected %d, got %d", seat, w, got)
		}
	}
	r, ok := lastPotResult(e.Drain())
	if !ok || r.Totals()[1] != 300 {
		t.Fatalf("expected seat 1 to collect only the main pot, got %+v", r)
	}
}

func TestButtonAdvancesEachHand(t *testing.T) {
	e := NewEngine("t1", 100, rand.New(rand.NewSource(21)))
	players := seatPlayers(1000, 1000, 1000)
	if err := e.StartHand(players); err != nil {
		t.Fatalf("start: %v", err)
	}
	first := e.Button
	for e.InHand() {
		act(t, e, e.CurrentActor, ActionFold, 0)
	}
	if err := e.StartHand(players); err != nil {
		t.Fatalf("start second: %v", err)
	}
	if want := (first + 1) % 3; e.Button != want {
		t.Fatalf("expected button %d, got %d", want, e.Button)
	}
	if e.HandNo != 2 || e.HandID != "t1-2" {
		t.Fatalf("unexpected hand id %q no %d", e.HandID, e.HandNo)
	}
}

func TestStartHandNeedsTwoPlayers(t *testing.T) {
	e := NewEngine("t1", 100, rand.New(rand.NewSource(1)))
	players := seatPlayers(1000, 1000)
	players[1].SittingOut = true
	if err := e.StartHand(players); !errors.Is(err, ErrNotEnoughPlayers) {
		t.Fatalf("expected not enough players, got %v", err)
	}
	if e.InHand() {
		t.Fatalf("no hand should be running")
	}
}

func TestHandEndedSummaryBalances(t *testing.T) {
	e := startHand(t, 5, 100, 1000, 1000)
	act(t, e, e.CurrentActor, ActionCall, 0)
	act(t, e, e.CurrentActor, ActionCheck, 0)
	for e.InHand() {
		act(t, e, e.CurrentActor, ActionCheck, 0)
	}
	var summary *HandSummary
	for _, ev := range e.Drain() {
		if h, ok := ev.(HandEnded); ok {
			summary = &h.Summary
		}
	}
	if summary == nil {
		t.Fatalf("expected hand ended event")
	}
	var in, out int64
	for _, c := range summary.Contributions {
		in += c.Amount
	}
	for _, p := range summary.Payouts {
		out += p.Amount
	}
	if in != 400 || out != in {
		t.Fatalf("contributions %d payouts %d", in, out)
	}
	if len(summary.Board) != 5 {
		t.Fatalf("expected full board in summary, got %d cards", len(summary.Board))
	}
}

// Random legal play must conserve chips and keep the card partition intact.
func TestRandomPlayConservesChips(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	e := NewEngine("t1", 10, rand.New(rand.NewSource(43)))
	players := seatPlayers(500, 800, 300, 1200)
	const total = 2800
	for hand := 0; hand < 200; hand++ {
		if err := e.StartHand(players); err != nil {
			if errors.Is(err, ErrNotEnoughPlayers) {
				break
			}
			t.Fatalf("start hand %d: %v", hand, err)
		}
		for steps := 0; e.InHand(); steps++ {
			if steps > 200 {
				t.Fatalf("hand %d did not finish", hand)
			}
			seat := e.CurrentActor
			legal := e.LegalActions(seat)
			if len(legal) == 0 {
				t.Fatalf("no legal actions for actor %d in %s", seat, e.Phase)
			}
			a := Action{Type: legal[rng.Intn(len(legal))], Amount: int64(rng.Intn(200) + 1)}
			if err := e.ApplyAction(seat, a); err != nil {
				if errors.Is(err, ErrAmountTooSmall) {
					continue
				}
				t.Fatalf("hand %d seat %d %+v: %v", hand, seat, a, err)
			}
			assertPartition(t, e)
			var committed int64
			for _, p := range e.Players {
				committed += p.Balance + p.CurrentBet
			}
			for _, pot := range e.Pots {
				committed += pot.Amount
			}
			var outside int64
			for _, p := range players {
				if !containsPlayer(e.Players, p) {
					outside += p.Balance
				}
			}
			if committed+outside != total {
				t.Fatalf("hand %d: chips %d != %d", hand, committed+outside, total)
			}
		}
		if e.Deck().Len() != deckSize {
			t.Fatalf("deck not restored after hand %d", hand)
		}
	}
}

func containsPlayer(ps []*Player, p *Player) bool {
	for _, q := range ps {
		if q == p {
			return true
		}
	}
	return false
}
