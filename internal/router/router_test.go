package router

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"testing"

	"holdem-server/internal/lobby"
)

type outbox struct {
	mu    sync.Mutex
	lines []string
}

func (o *outbox) Send(line string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.lines = append(o.lines, line)
	return true
}

func (o *outbox) find(prefix string) (string, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, l := range o.lines {
		if strings.HasPrefix(l, prefix) {
			return l, true
		}
	}
	return "", false
}

func (o *outbox) reset() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.lines = nil
}

func newTestRouter(t *testing.T) (*Router, *lobby.Registry) {
	t.Helper()
	hub := NewHub()
	reg := lobby.New(lobby.Options{
		SmallBlind:    100,
		StartingStack: 1000,
		MaxSeats:      2,
		Rand:          rand.New(rand.NewSource(5)),
		Notifier:      hub,
	})
	t.Cleanup(func() { reg.CloseAll(context.Background(), "test_done") })
	return New(reg, hub), reg
}

func attach(r *Router, id string) *outbox {
	o := &outbox{}
	r.Attach(id, o)
	return o
}

func TestCreateJoinAndPlay(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRouter(t)
	a := attach(r, "conn-a")
	b := attach(r, "conn-b")

	r.Handle(ctx, "conn-a", "main:user:alice")
	r.Handle(ctx, "conn-a", "game:new:holdem")
	line, ok := a.find("main:game_id:")
	if !ok {
		t.Fatalf("expected game id reply, got %q", a.lines)
	}
	id := strings.TrimPrefix(line, "main:game_id:")
	if _, ok := a.find("game:seat:0"); !ok {
		t.Fatalf("expected creator in seat 0")
	}

	r.Handle(ctx, "conn-b", "game:join:"+id)
	for name, o := range map[string]*outbox{"a": a, "b": b} {
		if _, ok := o.find("game:hand:1:"); !ok {
			t.Fatalf("%s did not see the hand start: %q", name, o.lines)
		}
		if _, ok := o.find("game:hole:"); !ok {
			t.Fatalf("%s did not get hole cards", name)
		}
		if _, ok := o.find("game:turn:"); !ok {
			t.Fatalf("%s did not see whose turn it is", name)
		}
	}

	r.Handle(ctx, "conn-a", "game:msg:"+id+":good luck: have fun")
	if _, ok := b.find("chat:msg:alice: good luck: have fun"); !ok {
		t.Fatalf("chat not relayed: %q", b.lines)
	}
}

func TestRenameReachesSeatedTable(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRouter(t)
	a := attach(r, "conn-a")
	b := attach(r, "conn-b")

	r.Handle(ctx, "conn-a", "main:user:alice")
	r.Handle(ctx, "conn-a", "game:new:holdem")
	line, ok := a.find("main:game_id:")
	if !ok {
		t.Fatalf("expected game id reply, got %q", a.lines)
	}
	id := strings.TrimPrefix(line, "main:game_id:")
	r.Handle(ctx, "conn-b", "game:join:"+id)

	r.Handle(ctx, "conn-a", "main:user:alicia")
	if _, ok := a.find("error:"); ok {
		t.Fatalf("rename while seated failed: %q", a.lines)
	}
	r.Handle(ctx, "conn-a", "game:msg:"+id+":hi")
	if _, ok := b.find("chat:msg:alicia: hi"); !ok {
		t.Fatalf("chat did not carry the new name: %q", b.lines)
	}
}

func TestErrorsGoToSenderOnly(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRouter(t)
	a := attach(r, "conn-a")
	b := attach(r, "conn-b")

	r.Handle(ctx, "conn-a", "garbage")
	if _, ok := a.find("error:malformed_line"); !ok {
		t.Fatalf("expected malformed line error, got %q", a.lines)
	}
	r.Handle(ctx, "conn-a", "game:join:424242")
	if _, ok := a.find("error:table_not_found"); !ok {
		t.Fatalf("expected not found error, got %q", a.lines)
	}
	r.Handle(ctx, "conn-a", "game:new:omaha")
	if _, ok := a.find("error:unknown_variant"); !ok {
		t.Fatalf("expected unknown variant, got %q", a.lines)
	}
	r.Handle(ctx, "conn-a", "main:user:")
	if _, ok := a.find("error:invalid_name"); !ok {
		t.Fatalf("expected invalid name, got %q", a.lines)
	}
	if len(b.lines) != 0 {
		t.Fatalf("errors leaked to another connection: %q", b.lines)
	}
}

func TestActionRejectionCodes(t *testing.T) {
	ctx := context.Background()
	r, reg := newTestRouter(t)
	a := attach(r, "conn-a")
	b := attach(r, "conn-b")
	r.Handle(ctx, "conn-a", "game:new:holdem")
	id := reg.List()[0].ID()
	r.Handle(ctx, "conn-b", "game:join:"+id)

	snap, err := reg.List()[0].Snapshot(ctx)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	idle, idleBox := "conn-a", a
	for _, sv := range snap.Seats {
		if sv.Seat == snap.CurrentActor && sv.Identity == "conn-a" {
			idle, idleBox = "conn-b", b
		}
	}
	idleBox.reset()
	r.Handle(ctx, idle, "game:act:"+id+":fold")
	if _, ok := idleBox.find("error:not_your_turn"); !ok {
		t.Fatalf("expected not your turn, got %q", idleBox.lines)
	}
	r.Handle(ctx, idle, "game:act:"+id+":raise")
	if _, ok := idleBox.find("error:invalid_amount"); !ok {
		t.Fatalf("expected invalid amount, got %q", idleBox.lines)
	}
	r.Handle(ctx, idle, "game:act:"+id+":shove")
	if _, ok := idleBox.find("error:invalid_action"); !ok {
		t.Fatalf("expected invalid action, got %q", idleBox.lines)
	}
}

func TestTableFullRejected(t *testing.T) {
	ctx := context.Background()
	r, reg := newTestRouter(t)
	attach(r, "a")
	attach(r, "b")
	c := attach(r, "c")
	r.Handle(ctx, "a", "game:new:holdem")
	id := reg.List()[0].ID()
	r.Handle(ctx, "b", "game:join:"+id)
	r.Handle(ctx, "c", "game:join:"+id)
	if _, ok := c.find("error:table_full"); !ok {
		t.Fatalf("expected table full, got %q", c.lines)
	}
}

func TestSwitchingTablesLeavesPrevious(t *testing.T) {
	ctx := context.Background()
	r, reg := newTestRouter(t)
	attach(r, "a")
	b := attach(r, "b")
	r.Handle(ctx, "a", "game:new:holdem")
	first := reg.List()[0].ID()
	r.Handle(ctx, "b", "game:join:"+first)
	b.reset()

	r.Handle(ctx, "a", "game:new:holdem")
	if _, ok := b.find("game:left:"); !ok {
		t.Fatalf("expected b to see a leave, got %q", b.lines)
	}
	if got := r.Hub().TableOf("a"); got == first || got == "" {
		t.Fatalf("expected a seated at the new table, got %q", got)
	}
}

func TestDetachLeavesTable(t *testing.T) {
	ctx := context.Background()
	r, reg := newTestRouter(t)
	attach(r, "a")
	b := attach(r, "b")
	r.Handle(ctx, "a", "game:new:holdem")
	tbl := reg.List()[0]
	r.Handle(ctx, "b", "game:join:"+tbl.ID())
	b.reset()

	r.Detach(ctx, "a")
	if _, ok := b.find("game:left:0"); !ok {
		t.Fatalf("expected disconnect to leave the table, got %q", b.lines)
	}
	snap, _ := tbl.Snapshot(ctx)
	if len(snap.Seats) != 1 {
		t.Fatalf("expected one seated player, got %d", len(snap.Seats))
	}
	if r.Hub().Len() != 1 {
		t.Fatalf("expected one live connection, got %d", r.Hub().Len())
	}
}

func TestClosedTableNotifiesSeated(t *testing.T) {
	ctx := context.Background()
	r, reg := newTestRouter(t)
	a := attach(r, "a")
	r.Handle(ctx, "a", "game:new:holdem")
	id := reg.List()[0].ID()
	if err := reg.Close(ctx, id, "admin"); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, ok := a.find("game:closed:" + id); !ok {
		t.Fatalf("expected closed notice, got %q", a.lines)
	}
	if r.Hub().TableOf("a") != "" {
		t.Fatalf("closed table should clear the seat")
	}
}
