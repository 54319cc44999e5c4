package store

import "time"

type Hand struct {
	ID        string
	TableID   string
	HandNo    int
	Button    int
	Board     string
	CreatedAt time.Time
}

type LedgerEntry struct {
	ID        string
	HandID    string
	TableID   string
	Identity  string
	Seat      int
	Type      string
	Amount    int64
	CreatedAt time.Time
}

// HandRecord is one settled hand with its chip movements.
type HandRecord struct {
	Hand    Hand
	Entries []LedgerEntry
}
