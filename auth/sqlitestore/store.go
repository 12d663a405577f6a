// Package sqlitestore persists the session slot in a local sqlite database so
// a restarted client can restore its session.
package sqlitestore

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/findash/findash/auth"
)

var _ auth.Store = (*Store)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS session_slot (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	payload BLOB NOT NULL,
	updated_at TEXT NOT NULL
);`

// Store is a sqlite-backed single-slot session store.
type Store struct {
	db *sql.DB
}

// Open creates or opens the database at path and ensures the schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "[sqlitestore.Open] sql.Open")
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "[sqlitestore.Open] creating schema")
	}
	return &Store{db: db}, nil
}

// Load returns the stored payload, or (nil, nil) when the slot is empty.
func (s *Store) Load(ctx context.Context) ([]byte, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM session_slot WHERE id = 1`).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "[Store.Load] query")
	}
	return payload, nil
}

// Save writes the payload into the slot, replacing any previous value.
func (s *Store) Save(ctx context.Context, payload []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO session_slot (id, payload, updated_at) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		payload, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return errors.Wrap(err, "[Store.Save] upsert")
	}
	return nil
}

// Clear empties the slot. Clearing an empty slot is not an error.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM session_slot WHERE id = 1`); err != nil {
		return errors.Wrap(err, "[Store.Clear] delete")
	}
	return nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
