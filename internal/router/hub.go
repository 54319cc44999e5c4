package router

import (
	"sync"

	"holdem-server/internal/game"
	"holdem-server/internal/table"
)

// Outbox is the write side of one connection. Send must not block; it
// reports false when the line could not be queued.
type Outbox interface {
	Send(line string) bool
}

type conn struct {
	out     Outbox
	name    string
	tableID string
}

// Hub tracks live connections and turns table events into lines for them.
// It is the table.Notifier of the process.
type Hub struct {
	mu    sync.RWMutex
	conns map[string]*conn
}

func NewHub() *Hub {
	return &Hub{conns: map[string]*conn{}}
}

func (h *Hub) Register(id string, out Outbox) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[id] = &conn{out: out}
}

// Unregister forgets a connection and returns the table it was seated at.
func (h *Hub) Unregister(id string) string {
	h.mu.Lock()
	defer h.mu.Unlock()
	c, ok := h.conns[id]
	if !ok {
		return ""
	}
	delete(h.conns, id)
	return c.tableID
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

func (h *Hub) Send(id, line string) bool {
	h.mu.RLock()
	c, ok := h.conns[id]
	h.mu.RUnlock()
	if !ok {
		return false
	}
	return c.out.Send(line)
}

func (h *Hub) SetName(id, name string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c, ok := h.conns[id]; ok {
		c.name = name
	}
}

// Name returns the display name of a connection, falling back to its id.
func (h *Hub) Name(id string) string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if c, ok := h.conns[id]; ok && c.name != "" {
		return c.name
	}
	return id
}

func (h *Hub) TableOf(id string) string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if c, ok := h.conns[id]; ok {
		return c.tableID
	}
	return ""
}

func (h *Hub) setTable(id, tableID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c, ok := h.conns[id]; ok {
		c.tableID = tableID
	}
}

// clearTable forgets the seat of id, but only at tableID.
func (h *Hub) clearTable(id, tableID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c, ok := h.conns[id]; ok && c.tableID == tableID {
		c.tableID = ""
	}
}

func (h *Hub) Notify(tableID, identity string, ev game.Event) {
	switch e := ev.(type) {
	case table.Joined:
		h.setTable(identity, e.TableID)
	case table.Closed:
		h.clearTable(identity, tableID)
	}
	for _, line := range EncodeEvent(ev) {
		if !h.Send(identity, line) {
			return
		}
	}
}
