package game

import (
	"errors"
	"math/rand"
	"sort"
	"strconv"
)

var ErrNotEnoughPlayers = errors.New("not_enough_players")

// Engine runs one hand at a time for a table: blinds, dealing, the betting
// rounds, board reveals and settlement. It is not safe for concurrent use;
// the owning table serialises every call.
type Engine struct {
	TableID    string
	SmallBlind int64
	BigBlind   int64

	Phase        Phase
	HandNo       int
	HandID       string
	Button       int
	SmallSeat    int
	BigSeat      int
	Players      []*Player
	Community    []Card
	Pots         []*Pot
	LastBet      int64
	RaiseCount   int
	CurrentActor int
	FirstAction  bool

	acted   map[int]bool
	deck    *Deck
	rng     *rand.Rand
	events  []Event
	summary HandSummary

	// NewHandID names each hand; defaults to a counter based id.
	NewHandID func() string
}

func NewEngine(tableID string, smallBlind int64, rng *rand.Rand) *Engine {
	return &Engine{
		TableID:      tableID,
		SmallBlind:   smallBlind,
		BigBlind:     2 * smallBlind,
		Phase:        WaitingForPlayers,
		Button:       -1,
		CurrentActor: -1,
		acted:        map[int]bool{},
		deck:         NewDeck(rng),
		rng:          rng,
	}
}

func (e *Engine) InHand() bool {
	return e.Phase != WaitingForPlayers
}

func (e *Engine) Deck() *Deck {
	return e.deck
}

// Drain returns the events produced since the last call.
func (e *Engine) Drain() []Event {
	out := e.events
	e.events = nil
	return out
}

func (e *Engine) emit(ev Event) {
	e.events = append(e.events, ev)
}

func (e *Engine) player(seat int) *Player {
	for _, p := range e.Players {
		if p.Seat == seat {
			return p
		}
	}
	return nil
}

// nextSeat walks clockwise from seat (exclusive) through the hand's players
// and returns the first one matching ok, or -1.
func (e *Engine) nextSeat(from int, ok func(*Player) bool) int {
	n := len(e.Players)
	start := 0
	for i, p := range e.Players {
		if p.Seat > from {
			start = i
			break
		}
	}
	for k := 0; k < n; k++ {
		p := e.Players[(start+k)%n]
		if ok(p) {
			return p.Seat
		}
	}
	return -1
}

// StartHand begins a hand with every seated player that is not sitting out
// and still has chips.
func (e *Engine) StartHand(seated []*Player) error {
	if e.InHand() {
		return invariantf("hand %d still running", e.HandNo)
	}
	active := make([]*Player, 0, len(seated))
	for _, p := range seated {
		if !p.SittingOut && p.Balance > 0 {
			active = append(active, p)
		}
	}
	if len(active) < 2 {
		return ErrNotEnoughPlayers
	}
	sort.Slice(active, func(i, j int) bool { return active[i].Seat < active[j].Seat })
	if e.deck.Len() != deckSize {
		return invariantf("deck holds %d cards at hand start", e.deck.Len())
	}

	e.Players = active
	for _, p := range e.Players {
		p.resetForHand()
	}
	e.HandNo++
	e.HandID = e.nextHandID()
	e.Phase = PreFlop
	e.Community = nil
	e.Pots = []*Pot{NewPot(0)}
	e.LastBet = 0
	e.RaiseCount = 0
	e.acted = map[int]bool{}
	e.FirstAction = true

	if e.Button < 0 {
		e.Button = e.Players[e.rng.Intn(len(e.Players))].Seat
	} else {
		e.Button = e.nextSeat(e.Button, func(*Player) bool { return true })
	}
	e.SmallSeat = e.nextSeat(e.Button, func(*Player) bool { return true })
	e.BigSeat = e.nextSeat(e.SmallSeat, func(*Player) bool { return true })

	e.summary = HandSummary{TableID: e.TableID, HandID: e.HandID, HandNo: e.HandNo, Button: e.Button}
	seats := make([]int, 0, len(e.Players))
	for _, p := range e.Players {
		seats = append(seats, p.Seat)
	}
	e.emit(HandStarted{HandID: e.HandID, HandNo: e.HandNo, Button: e.Button, Seats: seats})

	sb := e.postBlind(e.player(e.SmallSeat), e.SmallBlind)
	bb := e.postBlind(e.player(e.BigSeat), e.BigBlind)
	e.LastBet = e.BigBlind
	e.emit(BlindsPosted{SmallSeat: e.SmallSeat, SmallAmount: sb, BigSeat: e.BigSeat, BigAmount: bb})

	for _, p := range e.Players {
		hole, err := e.deck.DrawN(2)
		if err != nil {
			return err
		}
		p.Hole = hole
		e.emit(HoleCardsDealt{Seat: p.Seat, Identity: p.ID, Cards: append([]Card(nil), hole...)})
	}

	e.CurrentActor = e.BigSeat
	return e.advance()
}

func (e *Engine) nextHandID() string {
	if e.NewHandID != nil {
		return e.NewHandID()
	}
	return e.TableID + "-" + strconv.Itoa(e.HandNo)
}

func (e *Engine) postBlind(p *Player, blind int64) int64 {
	amt := min64(blind, p.Balance)
	e.commit(p, amt, ContributionBlind)
	return amt
}

// commit moves chips from balance into the current round.
func (e *Engine) commit(p *Player, amount int64, kind ContributionKind) {
	if amount <= 0 {
		return
	}
	p.Balance -= amount
	p.CurrentBet += amount
	p.TotalBet += amount
	if p.Balance == 0 {
		p.AllIn = true
	}
	e.summary.Contributions = append(e.summary.Contributions, Contribution{Seat: p.Seat, Identity: p.ID, Kind: kind, Amount: amount})
}

// ApplyAction validates and applies the action of the player in seat. A
// rejected action leaves the hand untouched.
func (e *Engine) ApplyAction(seat int, a Action) error {
	amount, err := e.ValidateAction(seat, a)
	if err != nil {
		return err
	}
	p := e.player(seat)
	e.acted[seat] = true
	e.FirstAction = false
	p.LastAction = a.Type

	switch a.Type {
	case ActionFold:
		e.fold(p)
	case ActionCheck:
	default:
		e.commit(p, amount, ContributionBet)
		if p.CurrentBet > e.LastBet {
			e.LastBet = p.CurrentBet
			if a.Type == ActionBet || a.Type == ActionRaise {
				e.RaiseCount++
			}
		}
	}
	e.emit(ActionApplied{Seat: seat, Type: a.Type, Amount: amount, Balance: p.Balance, AllIn: p.AllIn})
	return e.advance()
}

// ForceFold folds a seat regardless of turn order, e.g. when its player
// leaves the table or times out.
func (e *Engine) ForceFold(seat int) error {
	if !e.InHand() {
		return nil
	}
	p := e.player(seat)
	if p == nil || p.Folded {
		return nil
	}
	if seat == e.CurrentActor {
		return e.ApplyAction(seat, Action{Type: ActionFold})
	}
	e.fold(p)
	p.LastAction = ActionFold
	e.emit(ActionApplied{Seat: seat, Type: ActionFold, Balance: p.Balance, AllIn: p.AllIn})
	if e.remaining() <= 1 || e.roundComplete() {
		return e.advance()
	}
	return nil
}

func (e *Engine) fold(p *Player) {
	p.Folded = true
	for _, pot := range e.Pots {
		pot.Remove(p.Seat)
	}
}

func (e *Engine) remaining() int {
	n := 0
	for _, p := range e.Players {
		if !p.Folded {
			n++
		}
	}
	return n
}

func (e *Engine) needsAction(p *Player) bool {
	return p.canAct() && (!e.acted[p.Seat] || p.CurrentBet < e.LastBet)
}

func (e *Engine) roundComplete() bool {
	var open []*Player
	for _, p := range e.Players {
		if p.canAct() {
			open = append(open, p)
		}
	}
	if len(open) == 0 {
		return true
	}
	// A lone actor who already covers every other bet has nobody to act against.
	if len(open) == 1 && open[0].CurrentBet >= e.maxBetExcept(open[0].Seat) {
		return true
	}
	for _, p := range open {
		if !e.acted[p.Seat] || p.CurrentBet != e.LastBet {
			return false
		}
	}
	return true
}

func (e *Engine) maxBetExcept(seat int) int64 {
	var m int64
	for _, p := range e.Players {
		if p.Seat != seat && !p.Folded && p.CurrentBet > m {
			m = p.CurrentBet
		}
	}
	return m
}

// advance moves the hand forward until it needs a player decision or ends.
func (e *Engine) advance() error {
	for {
		if e.remaining() <= 1 {
			return e.finishUncontested()
		}
		if !e.roundComplete() {
			next := e.nextSeat(e.CurrentActor, e.needsAction)
			if next < 0 {
				return invariantf("no seat to act in %s", e.Phase)
			}
			e.CurrentActor = next
			e.emit(ActionRequired{Seat: next, Legal: e.LegalActions(next), ToCall: e.ToCall(next), MinRaise: e.MinRaise()})
			return nil
		}
		if err := e.sweep(); err != nil {
			return err
		}
		if e.Phase == River {
			return e.showdown()
		}
		if err := e.nextStreet(); err != nil {
			return err
		}
	}
}

func (e *Engine) nextStreet() error {
	n := 1
	switch len(e.Community) {
	case 0:
		n = 3
	case 3, 4:
		n = 1
	default:
		return invariantf("%d community cards before a reveal", len(e.Community))
	}
	cards, err := e.deck.DrawN(n)
	if err != nil {
		return err
	}
	e.Community = append(e.Community, cards...)
	e.Phase++
	e.LastBet = 0
	e.acted = map[int]bool{}
	e.FirstAction = true
	e.CurrentActor = e.Button
	e.emit(BoardRevealed{Phase: e.Phase, Cards: append([]Card(nil), e.Community...)})
	return nil
}

// sweep moves every current bet into the active pot, then cuts that pot at
// each all-in contribution that falls short of the largest one.
func (e *Engine) sweep() error {
	active := e.Pots[len(e.Pots)-1]
	for _, p := range e.Players {
		if p.CurrentBet > 0 {
			active.Add(p.Seat, p.CurrentBet)
			if !p.Folded {
				active.Eligible[p.Seat] = true
			}
			p.CurrentBet = 0
		}
	}
	for {
		active = e.Pots[len(e.Pots)-1]
		top := active.MaxContribution()
		var limit int64
		for _, p := range e.Players {
			if !p.AllIn || p.Folded {
				continue
			}
			c := active.Contrib[p.Seat]
			if c > 0 && c < top && (limit == 0 || c < limit) {
				limit = c
			}
		}
		if limit == 0 {
			break
		}
		capped, overflow := active.CappedSplit(limit, len(e.Pots))
		e.Pots[len(e.Pots)-1] = capped
		e.Pots = append(e.Pots, overflow)
	}
	return e.checkChips()
}

// checkChips verifies that the pots plus outstanding bets equal every
// chip committed this hand.
func (e *Engine) checkChips() error {
	var committed, held int64
	for _, p := range e.Players {
		committed += p.TotalBet
		held += p.CurrentBet
	}
	for _, pot := range e.Pots {
		held += pot.Amount
	}
	if committed != held {
		return invariantf("pots hold %d chips, players committed %d", held, committed)
	}
	return nil
}

func (e *Engine) finishUncontested() error {
	if err := e.sweep(); err != nil {
		return err
	}
	var winner *Player
	for _, p := range e.Players {
		if !p.Folded {
			winner = p
		}
	}
	if winner == nil {
		return invariantf("hand %d ended with no player left", e.HandNo)
	}
	var payouts []Payout
	for _, pot := range e.Pots {
		if pot.Amount == 0 {
			continue
		}
		if len(pot.EligibleSeats()) == 0 {
			payouts = append(payouts, e.refund(pot)...)
			continue
		}
		winner.Balance += pot.Amount
		payouts = append(payouts, Payout{Seat: winner.Seat, Identity: winner.ID, PotID: pot.ID, Amount: pot.Amount})
	}
	e.emit(PotResult{Payouts: payouts})
	return e.endHand(payouts)
}

// refund returns an uncontested pot to the seats that paid into it.
func (e *Engine) refund(pot *Pot) []Payout {
	seats := make([]int, 0, len(pot.Contrib))
	for seat := range pot.Contrib {
		seats = append(seats, seat)
	}
	sort.Ints(seats)
	var payouts []Payout
	for _, seat := range seats {
		p := e.player(seat)
		amt := pot.Contrib[seat]
		if p == nil || amt <= 0 {
			continue
		}
		p.Balance += amt
		payouts = append(payouts, Payout{Seat: seat, Identity: p.ID, PotID: pot.ID, Amount: amt})
	}
	return payouts
}

func (e *Engine) showdown() error {
	e.Phase = Showdown
	e.CurrentActor = -1
	ranks := map[int]HandRank{}
	shown := make([]ShownHand, 0, len(e.Players))
	for _, p := range e.Players {
		if p.Folded {
			continue
		}
		cards := append(append(make([]Card, 0, 7), p.Hole...), e.Community...)
		r := Evaluate7(cards)
		ranks[p.Seat] = r
		shown = append(shown, ShownHand{Seat: p.Seat, Cards: append([]Card(nil), p.Hole...), Category: r.Category})
	}
	e.emit(ShowdownRevealed{Hands: shown})

	var payouts []Payout
	for _, pot := range e.Pots {
		if pot.Amount == 0 {
			continue
		}
		contenders := pot.EligibleSeats()
		if len(contenders) == 0 {
			payouts = append(payouts, e.refund(pot)...)
			continue
		}
		winners := bestSeats(contenders, ranks)
		e.orderFromButton(winners)
		shares := pot.Split(len(winners))
		for i, seat := range winners {
			p := e.player(seat)
			p.Balance += shares[i]
			payouts = append(payouts, Payout{Seat: seat, Identity: p.ID, PotID: pot.ID, Amount: shares[i]})
		}
	}
	e.emit(PotResult{Payouts: payouts})
	return e.endHand(payouts)
}

func bestSeats(seats []int, ranks map[int]HandRank) []int {
	var best []int
	var top HandRank
	for _, s := range seats {
		r, ok := ranks[s]
		if !ok {
			continue
		}
		switch {
		case len(best) == 0:
			best, top = []int{s}, r
		case r.Compare(top) > 0:
			best, top = []int{s}, r
		case r.Compare(top) == 0:
			best = append(best, s)
		}
	}
	return best
}

// orderFromButton sorts seats clockwise starting with the seat after the button.
func (e *Engine) orderFromButton(seats []int) {
	dist := func(s int) int {
		d := s - e.Button
		if d <= 0 {
			d += 1 << 10
		}
		return d
	}
	sort.Slice(seats, func(i, j int) bool { return dist(seats[i]) < dist(seats[j]) })
}

func (e *Engine) endHand(payouts []Payout) error {
	e.summary.Board = append([]Card(nil), e.Community...)
	e.summary.Payouts = payouts
	if err := e.deck.Return(e.Community...); err != nil {
		return err
	}
	for _, p := range e.Players {
		if err := e.deck.Return(p.Hole...); err != nil {
			return err
		}
		p.resetForHand()
		if p.Balance == 0 {
			p.SittingOut = true
		}
	}
	if e.deck.Len() != deckSize {
		return invariantf("deck holds %d cards after hand %d", e.deck.Len(), e.HandNo)
	}
	e.Community = nil
	e.Pots = nil
	e.LastBet = 0
	e.CurrentActor = -1
	e.Phase = WaitingForPlayers
	e.emit(HandEnded{Summary: e.summary})
	e.summary = HandSummary{}
	return nil
}
