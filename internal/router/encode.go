package router

import (
	"sort"
	"strconv"
	"strings"

	"holdem-server/internal/game"
	"holdem-server/internal/table"
)

// EncodeEvent renders an outbound event as protocol lines. Events with no
// wire form yield nothing.
func EncodeEvent(ev game.Event) []string {
	switch e := ev.(type) {
	case table.Joined:
		return []string{
			Line{AttnMain, "game_id", e.TableID}.String(),
			Line{AttnGame, "seat", strconv.Itoa(e.Seat)}.String(),
		}
	case table.Closed:
		return []string{Line{AttnGame, "closed", e.TableID}.String()}
	case table.PlayerLeft:
		return []string{Line{AttnGame, "left", strconv.Itoa(e.Seat)}.String()}
	case table.SatOut:
		return []string{Line{AttnGame, "sitout", strconv.Itoa(e.Seat)}.String()}
	case table.ChatRelayed:
		return []string{Line{AttnChat, "msg", e.From + ": " + e.Text}.String()}
	case game.HandStarted:
		return []string{Line{AttnGame, "hand", strconv.Itoa(e.HandNo) + ":" + strconv.Itoa(e.Button)}.String()}
	case game.BlindsPosted:
		return []string{Line{AttnGame, "blinds", joinColon(
			strconv.Itoa(e.SmallSeat), i64(e.SmallAmount),
			strconv.Itoa(e.BigSeat), i64(e.BigAmount),
		)}.String()}
	case game.HoleCardsDealt:
		return []string{Line{AttnGame, "hole", game.FormatCards(e.Cards)}.String()}
	case game.BoardRevealed:
		return []string{Line{AttnGame, "board", game.FormatCards(e.Cards)}.String()}
	case game.ActionRequired:
		legal := make([]string, 0, len(e.Legal))
		for _, a := range e.Legal {
			legal = append(legal, string(a))
		}
		return []string{Line{AttnGame, "turn", joinColon(
			strconv.Itoa(e.Seat), strings.Join(legal, ","), i64(e.ToCall), i64(e.MinRaise),
		)}.String()}
	case game.ActionApplied:
		return []string{Line{AttnGame, "action", joinColon(
			strconv.Itoa(e.Seat), string(e.Type), i64(e.Amount), i64(e.Balance),
		)}.String()}
	case game.ShowdownRevealed:
		parts := make([]string, 0, len(e.Hands))
		for _, h := range e.Hands {
			parts = append(parts, strconv.Itoa(h.Seat)+"="+game.FormatCards(h.Cards)+"/"+h.Category.String())
		}
		return []string{Line{AttnGame, "show", strings.Join(parts, ",")}.String()}
	case game.PotResult:
		totals := e.Totals()
		seats := make([]int, 0, len(totals))
		for s := range totals {
			seats = append(seats, s)
		}
		sort.Ints(seats)
		parts := make([]string, 0, len(seats))
		for _, s := range seats {
			parts = append(parts, strconv.Itoa(s)+"="+i64(totals[s]))
		}
		return []string{Line{AttnGame, "pot", strings.Join(parts, ",")}.String()}
	case game.HandEnded:
		return []string{Line{AttnGame, "end", e.Summary.HandID}.String()}
	}
	return nil
}

func errorLine(code string) string {
	return AttnError + ":" + code
}

func joinColon(parts ...string) string {
	return strings.Join(parts, ":")
}

func i64(v int64) string {
	return strconv.FormatInt(v, 10)
}
