package store

import "context"

const schemaSQL = `
CREATE TABLE IF NOT EXISTS hands (
	id         TEXT PRIMARY KEY,
	table_id   TEXT NOT NULL,
	hand_no    INTEGER NOT NULL,
	button     INTEGER NOT NULL,
	board      TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS hands_table_id_idx ON hands (table_id, hand_no);

CREATE TABLE IF NOT EXISTS ledger_entries (
	id         TEXT PRIMARY KEY,
	hand_id    TEXT NOT NULL REFERENCES hands (id) ON DELETE CASCADE,
	table_id   TEXT NOT NULL,
	identity   TEXT NOT NULL,
	seat       INTEGER NOT NULL,
	type       TEXT NOT NULL,
	amount     BIGINT NOT NULL CHECK (amount > 0),
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS ledger_entries_hand_id_idx ON ledger_entries (hand_id);
`

// EnsureSchema creates the journal tables when they are missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.Pool.Exec(ctx, schemaSQL)
	return err
}
