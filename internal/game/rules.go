package game

// LegalActions lists what the player in seat may do at the current decision
// point. Nothing is legal for a seat whose turn it is not.
func (e *Engine) LegalActions(seat int) []ActionType {
	p := e.player(seat)
	if p == nil || !e.InHand() || e.CurrentActor != seat || !p.canAct() {
		return nil
	}
	out := make([]ActionType, 0, 5)
	if p.CurrentBet == e.LastBet && (!e.FirstAction || len(e.Community) > 0) {
		out = append(out, ActionCheck)
	}
	if e.LastBet == 0 {
		out = append(out, ActionBet)
	}
	if e.LastBet > p.CurrentBet {
		out = append(out, ActionCall)
	}
	if e.LastBet > 0 && p.Balance > e.LastBet-p.CurrentBet {
		out = append(out, ActionRaise)
	}
	out = append(out, ActionFold)
	return out
}

func (e *Engine) ToCall(seat int) int64 {
	p := e.player(seat)
	if p == nil || e.LastBet <= p.CurrentBet {
		return 0
	}
	return min64(e.LastBet-p.CurrentBet, p.Balance)
}

// MinRaise is the smallest raise increment for the current decision point.
func (e *Engine) MinRaise() int64 {
	if e.openingFloor() {
		return max64(2*e.BigBlind-e.LastBet, e.BigBlind)
	}
	return e.BigBlind
}

// openingFloor is true until the first bet or raise of a hand has been
// made preflop. During that window undersized wagers are lifted to the
// floor instead of being rejected.
func (e *Engine) openingFloor() bool {
	return e.Phase == PreFlop && e.RaiseCount == 0
}

func isLegal(legal []ActionType, a ActionType) bool {
	for _, l := range legal {
		if l == a {
			return true
		}
	}
	return false
}

// ValidateAction checks an action and returns the number of chips it moves
// from the player's balance into the current round.
func (e *Engine) ValidateAction(seat int, a Action) (int64, error) {
	if !e.InHand() {
		return 0, rejectf(seat, ErrNoHandRunning)
	}
	p := e.player(seat)
	if p == nil || p.Folded {
		return 0, rejectf(seat, ErrSeatNotInHand)
	}
	if seat != e.CurrentActor {
		return 0, rejectf(seat, ErrNotYourTurn)
	}
	if !isLegal(e.LegalActions(seat), a.Type) {
		return 0, rejectf(seat, ErrInvalidAction)
	}
	switch a.Type {
	case ActionFold, ActionCheck:
		return 0, nil
	case ActionCall:
		return min64(e.LastBet-p.CurrentBet, p.Balance), nil
	case ActionBet:
		if a.Amount <= 0 {
			return 0, rejectf(seat, ErrInvalidAction)
		}
		if a.Amount >= p.Balance {
			return p.Balance, nil
		}
		if p.CurrentBet+a.Amount < e.BigBlind {
			if !e.openingFloor() {
				return 0, rejectf(seat, ErrAmountTooSmall)
			}
			return min64(e.BigBlind-p.CurrentBet, p.Balance), nil
		}
		return a.Amount, nil
	case ActionRaise:
		if a.Amount <= 0 {
			return 0, rejectf(seat, ErrInvalidAction)
		}
		call := e.LastBet - p.CurrentBet
		// Short of a full raise: the only raise left is all-in.
		if p.Balance < call+e.BigBlind {
			return p.Balance, nil
		}
		if a.Amount >= p.Balance-call {
			return p.Balance, nil
		}
		target := e.LastBet + a.Amount
		if a.Amount < e.BigBlind {
			if !e.openingFloor() {
				return 0, rejectf(seat, ErrAmountTooSmall)
			}
			target = e.LastBet + e.BigBlind
		}
		if e.openingFloor() && target < 2*e.BigBlind {
			target = 2 * e.BigBlind
		}
		return min64(target-p.CurrentBet, p.Balance), nil
	}
	return 0, rejectf(seat, ErrInvalidAction)
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
