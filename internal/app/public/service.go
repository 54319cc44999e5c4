package public

import (
	"context"
	"errors"
	"strings"

	"holdem-server/internal/lobby"
	"holdem-server/internal/store"
	"holdem-server/internal/table"
)

const (
	DefaultPageLimit = 50
	MaxPageLimit     = 500
)

// HandJournal is the read side of the hand store.
type HandJournal interface {
	GetHand(ctx context.Context, id string) (*store.Hand, error)
	ListLedgerEntries(ctx context.Context, handID string) ([]store.LedgerEntry, error)
}

// Service serves read-mostly table views to the HTTP and MCP surfaces.
type Service struct {
	registry *lobby.Registry
	journal  HandJournal
}

// NewService builds the service. journal may be nil when no database is
// configured.
func NewService(reg *lobby.Registry, journal HandJournal) *Service {
	return &Service{registry: reg, journal: journal}
}

func (s *Service) LiveTables() int {
	return s.registry.Len()
}

func (s *Service) Tables(ctx context.Context, limit, offset int) (*TablesResponse, error) {
	limit, offset = ClampPagination(limit, offset)
	items := make([]TableItem, 0, limit)
	total := 0
	for _, t := range s.registry.List() {
		snap, err := t.Snapshot(ctx)
		if errors.Is(err, table.ErrClosed) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if total >= offset && len(items) < limit {
			items = append(items, tableItem(snap))
		}
		total++
	}
	return &TablesResponse{Items: items, Total: total, Limit: limit, Offset: offset}, nil
}

func (s *Service) Table(ctx context.Context, tableID string) (*TableDetail, error) {
	tableID = strings.TrimSpace(tableID)
	if tableID == "" {
		return nil, ErrInvalidRequest
	}
	t, err := s.registry.Get(tableID)
	if err != nil {
		return nil, ErrTableNotFound
	}
	snap, err := t.Snapshot(ctx)
	if errors.Is(err, table.ErrClosed) {
		return nil, ErrTableNotFound
	}
	if err != nil {
		return nil, err
	}
	return tableDetail(snap), nil
}

// CreateTable starts an empty table. An empty tableID picks a random one.
func (s *Service) CreateTable(ctx context.Context, tableID, variant string) (*TableDetail, error) {
	var (
		t   *table.Table
		err error
	)
	if tableID = strings.TrimSpace(tableID); tableID == "" {
		t, err = s.registry.NewTable(variant)
	} else {
		t, err = s.registry.Create(tableID)
	}
	if err != nil {
		return nil, err
	}
	snap, err := t.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return tableDetail(snap), nil
}

func (s *Service) CloseTable(ctx context.Context, tableID string) (*CloseResponse, error) {
	tableID = strings.TrimSpace(tableID)
	if tableID == "" {
		return nil, ErrInvalidRequest
	}
	if err := s.registry.Close(ctx, tableID, "closed_by_admin"); err != nil {
		if errors.Is(err, lobby.ErrNotFound) {
			return nil, ErrTableNotFound
		}
		return nil, err
	}
	return &CloseResponse{TableID: tableID, Closed: true}, nil
}

func (s *Service) HandLedger(ctx context.Context, handID string) (*HandLedgerResponse, error) {
	if s.journal == nil {
		return nil, ErrJournalDisabled
	}
	handID = strings.TrimSpace(handID)
	if handID == "" {
		return nil, ErrInvalidRequest
	}
	h, err := s.journal.GetHand(ctx, handID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrHandNotFound
	}
	if err != nil {
		return nil, err
	}
	entries, err := s.journal.ListLedgerEntries(ctx, handID)
	if err != nil {
		return nil, err
	}
	out := &HandLedgerResponse{
		HandID:    h.ID,
		TableID:   h.TableID,
		HandNo:    h.HandNo,
		Button:    h.Button,
		Board:     h.Board,
		CreatedAt: h.CreatedAt,
		Entries:   make([]LedgerEntry, 0, len(entries)),
	}
	for _, e := range entries {
		out.Entries = append(out.Entries, LedgerEntry{
			ID:       e.ID,
			Identity: e.Identity,
			Seat:     e.Seat,
			Type:     e.Type,
			Amount:   e.Amount,
		})
	}
	return out, nil
}

func ClampPagination(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func tableItem(snap table.Snapshot) TableItem {
	status := "playing"
	if snap.Phase == "waiting_for_players" {
		status = "waiting"
	}
	return TableItem{
		TableID:    snap.ID,
		Status:     status,
		Phase:      snap.Phase,
		HandNo:     snap.HandNo,
		Players:    len(snap.Seats),
		MaxSeats:   snap.MaxSeats,
		SmallBlind: snap.SmallBlind,
		BigBlind:   snap.BigBlind,
		CreatedAt:  snap.CreatedAt,
	}
}

func tableDetail(snap table.Snapshot) *TableDetail {
	seats := make([]SeatItem, 0, len(snap.Seats))
	for _, sv := range snap.Seats {
		seats = append(seats, SeatItem{
			Seat:       sv.Seat,
			Identity:   sv.Identity,
			Name:       sv.Name,
			Balance:    sv.Balance,
			CurrentBet: sv.CurrentBet,
			InHand:     sv.InHand,
			Folded:     sv.Folded,
			AllIn:      sv.AllIn,
			SittingOut: sv.SittingOut,
		})
	}
	return &TableDetail{
		TableItem:    tableItem(snap),
		HandID:       snap.HandID,
		Button:       snap.Button,
		CurrentActor: snap.CurrentActor,
		Board:        snap.Board,
		Pot:          snap.Pot,
		Seats:        seats,
	}
}
