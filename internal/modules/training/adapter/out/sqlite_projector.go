package out

import (
	"context"
	"database/sql"
	"fmt"

	"skidlogg/internal/modules/training/domain"
	trainingout "skidlogg/internal/modules/training/port/out"
)

// SQLiteSessionProjector mirrors the collection into a queryable table. The
// blob stays the source of truth.
type SQLiteSessionProjector struct {
	db *sql.DB
}

func NewSQLiteSessionProjector(ctx context.Context, db *sql.DB) (trainingout.SessionIndexProjector, error) {
	projector := &SQLiteSessionProjector{db: db}
	if err := projector.ensureSchema(ctx); err != nil {
		return nil, err
	}
	return projector, nil
}

func (s *SQLiteSessionProjector) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS sessions (
  id TEXT PRIMARY KEY,
  style TEXT NOT NULL,
  date TEXT NOT NULL,
  season TEXT NOT NULL,
  distance_km REAL NOT NULL,
  duration_seconds INTEGER NOT NULL,
  climb_meters REAL NOT NULL,
  tracks_climb INTEGER NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create sessions table: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS sessions_season ON sessions (season, date)`); err != nil {
		return fmt.Errorf("create sessions index: %w", err)
	}
	return nil
}

func (s *SQLiteSessionProjector) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions`); err != nil {
		return fmt.Errorf("reset sessions: %w", err)
	}
	return nil
}

func (s *SQLiteSessionProjector) UpsertSession(ctx context.Context, session domain.Session) error {
	const stmt = `
INSERT INTO sessions (id, style, date, season, distance_km, duration_seconds, climb_meters, tracks_climb)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  style=excluded.style,
  date=excluded.date,
  season=excluded.season,
  distance_km=excluded.distance_km,
  duration_seconds=excluded.duration_seconds,
  climb_meters=excluded.climb_meters,
  tracks_climb=excluded.tracks_climb;
`
	tracks := 0
	if session.Style.TracksClimb() {
		tracks = 1
	}
	_, err := s.db.ExecContext(ctx, stmt,
		session.ID,
		string(session.Style),
		session.DateString(),
		string(session.Season),
		session.DistanceKM,
		session.DurationSeconds,
		session.ClimbMeters,
		tracks,
	)
	if err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	return nil
}
