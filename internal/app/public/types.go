package public

import "time"

type TablesResponse struct {
	Items  []TableItem `json:"items"`
	Total  int         `json:"total"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
}

type TableItem struct {
	TableID    string    `json:"table_id"`
	Status     string    `json:"status"`
	Phase      string    `json:"phase"`
	HandNo     int       `json:"hand_no"`
	Players    int       `json:"players"`
	MaxSeats   int       `json:"max_seats"`
	SmallBlind int64     `json:"small_blind"`
	BigBlind   int64     `json:"big_blind"`
	CreatedAt  time.Time `json:"created_at"`
}

type TableDetail struct {
	TableItem
	HandID       string     `json:"hand_id"`
	Button       int        `json:"button"`
	CurrentActor int        `json:"current_actor"`
	Board        []string   `json:"board"`
	Pot          int64      `json:"pot"`
	Seats        []SeatItem `json:"seats"`
}

type SeatItem struct {
	Seat       int    `json:"seat"`
	Identity   string `json:"identity"`
	Name       string `json:"name"`
	Balance    int64  `json:"balance"`
	CurrentBet int64  `json:"current_bet"`
	InHand     bool   `json:"in_hand"`
	Folded     bool   `json:"folded"`
	AllIn      bool   `json:"all_in"`
	SittingOut bool   `json:"sitting_out"`
}

type CloseResponse struct {
	TableID string `json:"table_id"`
	Closed  bool   `json:"closed"`
}

type HandLedgerResponse struct {
	HandID    string        `json:"hand_id"`
	TableID   string        `json:"table_id"`
	HandNo    int           `json:"hand_no"`
	Button    int           `json:"button"`
	Board     string        `json:"board"`
	CreatedAt time.Time     `json:"created_at"`
	Entries   []LedgerEntry `json:"entries"`
}

type LedgerEntry struct {
	ID       string `json:"id"`
	Identity string `json:"identity"`
	Seat     int    `json:"seat"`
	Type     string `json:"type"`
	Amount   int64  `json:"amount"`
}
