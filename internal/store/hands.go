package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

// RecordHand writes a hand and its ledger entries in one transaction.
func (s *Store) RecordHand(ctx context.Context, rec HandRecord) error {
	return pgx.BeginFunc(ctx, s.Pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`INSERT INTO hands (id, table_id, hand_no, button, board) VALUES ($1, $2, $3, $4, $5)`,
			rec.Hand.ID, rec.Hand.TableID, rec.Hand.HandNo, rec.Hand.Button, rec.Hand.Board,
		); err != nil {
			return err
		}
		batch := &pgx.Batch{}
		for _, e := range rec.Entries {
			batch.Queue(
				`INSERT INTO ledger_entries (id, hand_id, table_id, identity, seat, type, amount) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				e.ID, rec.Hand.ID, rec.Hand.TableID, e.Identity, e.Seat, e.Type, e.Amount,
			)
		}
		if batch.Len() == 0 {
			return nil
		}
		return tx.SendBatch(ctx, batch).Close()
	})
}

func (s *Store) GetHand(ctx context.Context, id string) (*Hand, error) {
	var h Hand
	err := s.Pool.QueryRow(ctx,
		`SELECT id, table_id, hand_no, button, board, created_at FROM hands WHERE id = $1`, id,
	).Scan(&h.ID, &h.TableID, &h.HandNo, &h.Button, &h.Board, &h.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (s *Store) ListLedgerEntries(ctx context.Context, handID string) ([]LedgerEntry, error) {
	rows, err := s.Pool.Query(ctx,
		`SELECT id, hand_id, table_id, identity, seat, type, amount, created_at
		   FROM ledger_entries WHERE hand_id = $1 ORDER BY id`, handID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []LedgerEntry{}
	for rows.Next() {
		var e LedgerEntry
		if err := rows.Scan(&e.ID, &e.HandID, &e.TableID, &e.Identity, &e.Seat, &e.Type, &e.Amount, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
