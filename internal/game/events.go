package game

// Event is an outbound notification produced while a hand runs. The table
// decides who receives it: HoleCardsDealt goes to one identity, everything
// else to every seated identity.
type Event interface {
	EventType() string
}

type HandStarted struct {
	HandID string
	HandNo int
	Button int
	Seats  []int
}

type BlindsPosted struct {
	SmallSeat   int
	SmallAmount int64
	BigSeat     int
	BigAmount   int64
}

type HoleCardsDealt struct {
	Seat     int
	Identity string
	Cards    []Card
}

type BoardRevealed struct {
	Phase Phase
	Cards []Card
}

type ActionRequired struct {
	Seat     int
	Legal    []ActionType
	ToCall   int64
	MinRaise int64
}

type ActionApplied struct {
	Seat    int
	Type    ActionType
	Amount  int64
	Balance int64
	AllIn   bool
}

type ShownHand struct {
	Seat     int
	Cards    []Card
	Category Category
}

type ShowdownRevealed struct {
	Hands []ShownHand
}

type PotResult struct {
	Payouts []Payout
}

// Totals sums the payouts per seat.
func (r PotResult) Totals() map[int]int64 {
	out := map[int]int64{}
	for _, p := range r.Payouts {
		out[p.Seat] += p.Amount
	}
	return out
}

type HandEnded struct {
	Summary HandSummary
}

func (HandStarted) EventType() string      { return "hand_started" }
func (BlindsPosted) EventType() string     { return "blinds_posted" }
func (HoleCardsDealt) EventType() string   { return "hole_cards_dealt" }
func (BoardRevealed) EventType() string    { return "board_revealed" }
func (ActionRequired) EventType() string   { return "action_required" }
func (ActionApplied) EventType() string    { return "action_applied" }
func (ShowdownRevealed) EventType() string { return "showdown" }
func (PotResult) EventType() string        { return "pot_result" }
func (HandEnded) EventType() string        { return "hand_ended" }
