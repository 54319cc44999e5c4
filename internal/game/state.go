package game

import "strings"

type ActionType string

const (
	ActionFold  ActionType = "fold"
	ActionCheck ActionType = "check"
	ActionCall  ActionType = "call"
	ActionBet   ActionType = "bet"
	ActionRaise ActionType = "raise"
)

func ParseActionType(s string) (ActionType, bool) {
	switch a := ActionType(strings.ToLower(strings.TrimSpace(s))); a {
	case ActionFold, ActionCheck, ActionCall, ActionBet, ActionRaise:
		return a, true
	}
	return "", false
}

// Action is a player intent. For bet Amount is the number of chips wagered;
// for raise it is the increment over the current bet. Other kinds ignore it.
type Action struct {
	Type   ActionType
	Amount int64
}

type Phase int

const (
	WaitingForPlayers Phase = iota
	PreFlop
	Flop
	Turn
	River
	Showdown
)

func (p Phase) String() string {
	switch p {
	case WaitingForPlayers:
		return "waiting_for_players"
	case PreFlop:
		return "preflop"
	case Flop:
		return "flop"
	case Turn:
		return "turn"
	case River:
		return "river"
	case Showdown:
		return "showdown"
	default:
		return "unknown"
	}
}

// Player is a seated participant. Only the owning table's goroutine mutates it.
type Player struct {
	ID         string
	Name       string
	Seat       int
	Balance    int64
	CurrentBet int64
	TotalBet   int64
	Hole       []Card
	Folded     bool
	AllIn      bool
	SittingOut bool
	LastAction ActionType
}

func (p *Player) canAct() bool {
	return !p.Folded && !p.AllIn
}

func (p *Player) resetForHand() {
	p.CurrentBet = 0
	p.TotalBet = 0
	p.Hole = nil
	p.Folded = false
	p.AllIn = false
	p.LastAction = ""
}

// HandSummary is the chip record of one settled hand.
type HandSummary struct {
	TableID       string
	HandID        string
	HandNo        int
	Button        int
	Board         []Card
	Contributions []Contribution
	Payouts       []Payout
}

type ContributionKind string

const (
	ContributionBlind ContributionKind = "blind"
	ContributionBet   ContributionKind = "bet"
)

type Contribution struct {
	Seat     int
	Identity string
	Kind     ContributionKind
	Amount   int64
}

type Payout struct {
	Seat     int
	Identity string
	PotID    int
	Amount   int64
}
