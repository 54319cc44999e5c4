package table

import (
	"context"
	"errors"

	"holdem-server/internal/game"
)

// afterEngine publishes what the engine produced and deals the next hand
// when the last one is over.
func (t *Table) afterEngine() error {
	t.flush()
	return t.maybeStartHand()
}

func (t *Table) maybeStartHand() error {
	for !t.closed && !t.engine.InHand() {
		err := t.engine.StartHand(t.seatedPlayers())
		if errors.Is(err, game.ErrNotEnoughPlayers) {
			return nil
		}
		if err != nil {
			t.flush()
			return t.fail(err)
		}
		t.log.Info().
			Str("hand_id", t.engine.HandID).
			Int("hand_no", t.engine.HandNo).
			Int("button", t.engine.Button).
			Int("players", len(t.engine.Players)).
			Msg("hand_start")
		t.flush()
	}
	return nil
}

func (t *Table) flush() {
	for _, ev := range t.engine.Drain() {
		switch e := ev.(type) {
		case game.HoleCardsDealt:
			t.notifier.Notify(t.id, e.Identity, e)
		case game.ActionRequired:
			t.broadcast(e)
			t.armTurnTimer(e.Seat)
		case game.HandEnded:
			t.stopTurnTimer()
			handsPlayed.Add(1)
			t.recorder.Record(e.Summary)
			t.log.Info().
				Str("hand_id", e.Summary.HandID).
				Int("payouts", len(e.Summary.Payouts)).
				Msg("hand_end")
			t.broadcast(e)
			t.reportBusted()
		default:
			t.broadcast(ev)
		}
	}
}

// reportBusted tells the table about players the engine sat out because
// they ran out of chips.
func (t *Table) reportBusted() {
	for _, p := range t.seatedPlayers() {
		if p.Balance == 0 && p.SittingOut {
			t.broadcast(SatOut{Seat: p.Seat})
		}
	}
}

func (t *Table) armTurnTimer(seat int) {
	t.stopTurnTimer()
	t.turnSeq++
	if t.cfg.ActionTimeout <= 0 {
		return
	}
	seq := t.turnSeq
	t.turn = t.clock.AfterFunc(t.cfg.ActionTimeout, func() { t.onTurnTimeout(seq, seat) }, "table", "turn")
}

func (t *Table) stopTurnTimer() {
	if t.turn != nil {
		t.turn.Stop()
		t.turn = nil
	}
}

func (t *Table) onTurnTimeout(seq, seat int) {
	_ = t.do(context.Background(), func() error {
		if seq != t.turnSeq || !t.engine.InHand() || t.engine.CurrentActor != seat {
			return nil
		}
		actionTimeouts.Add(1)
		t.log.Info().Int("seat", seat).Str("hand_id", t.engine.HandID).Msg("action_timeout")
		if err := t.engine.ForceFold(seat); err != nil {
			return t.fail(err)
		}
		return t.afterEngine()
	})
}
