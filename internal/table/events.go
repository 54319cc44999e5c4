package table

import "holdem-server/internal/game"

// Joined is sent to an identity once it holds a seat.
type Joined struct {
	TableID string
	Seat    int
}

// Closed is sent to every seated identity when the table goes away.
type Closed struct {
	TableID string
	Reason  string
}

type PlayerLeft struct {
	Seat     int
	Identity string
}

type ChatRelayed struct {
	TableID string
	From    string
	Text    string
}

type SatOut struct {
	Seat int
}

func (Joined) EventType() string      { return "table_joined" }
func (Closed) EventType() string      { return "table_closed" }
func (PlayerLeft) EventType() string  { return "player_left" }
func (ChatRelayed) EventType() string { return "chat_relayed" }
func (SatOut) EventType() string      { return "sat_out" }

// Notifier delivers outbound events. It is called from the table goroutine
// and must not block.
type Notifier interface {
	Notify(tableID, identity string, ev game.Event)
}

// Recorder receives the chip record of every settled hand. Like Notifier it
// must not block.
type Recorder interface {
	Record(summary game.HandSummary)
}

type nopNotifier struct{}

func (nopNotifier) Notify(string, string, game.Event) {}

type nopRecorder struct{}

func (nopRecorder) Record(game.HandSummary) {}
