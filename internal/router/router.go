package router

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"holdem-server/internal/game"
	"holdem-server/internal/lobby"
	"holdem-server/internal/table"
)

type Lobby interface {
	NewTable(variant string) (*table.Table, error)
	Get(id string) (*table.Table, error)
}

// Router demultiplexes inbound lines of a connection to the lobby and its
// tables. Replies and rejections go back through the hub.
type Router struct {
	lobby Lobby
	hub   *Hub
}

func New(l Lobby, hub *Hub) *Router {
	return &Router{lobby: l, hub: hub}
}

func (r *Router) Hub() *Hub {
	return r.hub
}

func (r *Router) Attach(connID string, out Outbox) {
	r.hub.Register(connID, out)
}

// Detach drops a connection. A seated connection leaves its table.
func (r *Router) Detach(ctx context.Context, connID string) {
	tableID := r.hub.Unregister(connID)
	if tableID == "" {
		return
	}
	t, err := r.lobby.Get(tableID)
	if err != nil {
		return
	}
	if err := t.Leave(ctx, connID); err != nil && !errors.Is(err, table.ErrNotSeated) && !errors.Is(err, table.ErrClosed) {
		log.Warn().Err(err).Str("conn_id", connID).Str("table_id", tableID).Msg("disconnect_leave_failed")
	}
}

// Handle processes one inbound line. Errors are answered with error:<code>
// to the sender only.
func (r *Router) Handle(ctx context.Context, connID, raw string) {
	err := r.dispatch(ctx, connID, raw)
	if err == nil {
		return
	}
	code := ErrorCode(err)
	if code == "unknown_error" || code == game.ErrInvariant.Error() {
		log.Error().Err(err).Str("conn_id", connID).Msg("dispatch_failed")
	}
	r.hub.Send(connID, errorLine(code))
}

func (r *Router) dispatch(ctx context.Context, connID, raw string) error {
	l, err := ParseLine(raw)
	if err != nil {
		return err
	}
	switch l.Attn {
	case AttnMain:
		if l.Cmd != "user" {
			return ErrUnknownCommand
		}
		name := strings.TrimSpace(l.Data)
		if name == "" || strings.ContainsAny(name, ":\n") {
			return ErrNoName
		}
		r.hub.SetName(connID, name)
		return r.rename(ctx, connID, name)
	case AttnGame:
		return r.game(ctx, connID, l)
	}
	return ErrUnknownCommand
}

func (r *Router) game(ctx context.Context, connID string, l Line) error {
	if l.Cmd == "new" {
		t, err := r.lobby.NewTable(l.Data)
		if err != nil {
			return err
		}
		return r.join(ctx, connID, t)
	}
	id, rest, _ := strings.Cut(l.Data, ":")
	t, err := r.lobby.Get(id)
	if err != nil {
		return err
	}
	switch l.Cmd {
	case "join":
		return r.join(ctx, connID, t)
	case "leave":
		if err := t.Leave(ctx, connID); err != nil {
			return err
		}
		r.hub.clearTable(connID, id)
		return nil
	case "sitout":
		return t.SitOut(ctx, connID)
	case "sitin":
		return t.SitIn(ctx, connID)
	case "msg":
		return t.Chat(ctx, connID, rest)
	case "act":
		a, err := parseAction(rest)
		if err != nil {
			return err
		}
		return t.Act(ctx, connID, a)
	}
	return ErrUnknownCommand
}

// rename carries a new name to the table the connection is seated at.
func (r *Router) rename(ctx context.Context, connID, name string) error {
	id := r.hub.TableOf(connID)
	if id == "" {
		return nil
	}
	t, err := r.lobby.Get(id)
	if err != nil {
		return nil
	}
	if err := t.Rename(ctx, connID, name); err != nil && !errors.Is(err, table.ErrNotSeated) && !errors.Is(err, table.ErrClosed) {
		return err
	}
	return nil
}

// join seats the connection at t, leaving any other table first.
func (r *Router) join(ctx context.Context, connID string, t *table.Table) error {
	if prev := r.hub.TableOf(connID); prev != "" && prev != t.ID() {
		if old, err := r.lobby.Get(prev); err == nil {
			if err := old.Leave(ctx, connID); err != nil && !errors.Is(err, table.ErrNotSeated) && !errors.Is(err, table.ErrClosed) {
				return err
			}
		}
		r.hub.clearTable(connID, prev)
	}
	_, err := t.Join(ctx, connID, r.hub.Name(connID))
	return err
}

// parseAction reads kind[:amount].
func parseAction(s string) (game.Action, error) {
	kind, amount, hasAmount := strings.Cut(s, ":")
	typ, ok := game.ParseActionType(kind)
	if !ok {
		return game.Action{}, game.ErrInvalidAction
	}
	a := game.Action{Type: typ}
	if typ == game.ActionBet || typ == game.ActionRaise {
		if !hasAmount {
			return game.Action{}, ErrBadAmount
		}
		n, err := strconv.ParseInt(strings.TrimSpace(amount), 10, 64)
		if err != nil || n <= 0 {
			return game.Action{}, ErrBadAmount
		}
		a.Amount = n
	}
	return a, nil
}

var codes = []error{
	table.ErrTableFull,
	table.ErrNotSeated,
	table.ErrNoChips,
	table.ErrClosed,
	lobby.ErrNotFound,
	lobby.ErrAlreadyExists,
	lobby.ErrUnknownVariant,
	lobby.ErrNoFreeID,
	ErrMalformed,
	ErrUnknownCommand,
	ErrBadAmount,
	ErrNoName,
}

// ErrorCode maps an error to its wire code.
func ErrorCode(err error) string {
	if game.IsProtocolError(err) || errors.Is(err, game.ErrInvariant) || errors.Is(err, game.ErrInvalidAction) {
		return game.Code(err)
	}
	for _, c := range codes {
		if errors.Is(err, c) {
			return c.Error()
		}
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return "timeout"
	}
	return "unknown_error"
}
