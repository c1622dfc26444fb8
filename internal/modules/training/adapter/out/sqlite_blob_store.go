package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	trainingout "skidlogg/internal/modules/training/port/out"
	"skidlogg/internal/platform/clock"
)

// SQLiteBlobStore keeps the collection as one keyed row, the same shape the
// browser version kept in local storage.
type SQLiteBlobStore struct {
	db    *sql.DB
	key   string
	clock clock.Clock
}

func NewSQLiteBlobStore(ctx context.Context, db *sql.DB, key string, clock clock.Clock) (trainingout.BlobStore, error) {
	store := &SQLiteBlobStore{db: db, key: key, clock: clock}
	if err := store.ensureSchema(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *SQLiteBlobStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS blobs (
  key TEXT PRIMARY KEY,
  value BLOB NOT NULL,
  updated_at TEXT NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create blobs table: %w", err)
	}
	return nil
}

func (s *SQLiteBlobStore) Location() string { return "sqlite:blobs/" + s.key }

func (s *SQLiteBlobStore) Read(ctx context.Context) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM blobs WHERE key = ?`, s.key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("read blob %s: %w", s.key, err)
	}
	return value, nil
}

func (s *SQLiteBlobStore) Write(ctx context.Context, data []byte) error {
	const stmt = `
INSERT INTO blobs (key, value, updated_at)
VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET
  value=excluded.value,
  updated_at=excluded.updated_at;
`
	if _, err := s.db.ExecContext(ctx, stmt, s.key, data, s.clock.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("write blob %s: %w", s.key, err)
	}
	return nil
}
