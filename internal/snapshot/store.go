package snapshot

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"marquee/internal/logging"
	"marquee/internal/schedule"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS snapshots (
    slot       TEXT PRIMARY KEY,
    payload    TEXT NOT NULL,
    written_at TEXT NOT NULL
);`

// Store persists timestamped schedule snapshots in SQLite, one row per slot.
// Validity is purely elapsed time since the last successful write; stale rows
// are never deleted, only ignored and overwritten by the next refresh.
type Store struct {
	db     *sql.DB
	path   string
	ttl    time.Duration
	logger *slog.Logger
	now    func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the freshness clock.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// Open initializes or connects to the snapshot database at path.
func Open(path string, ttl time.Duration, logger *slog.Logger, opts ...Option) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure snapshot directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create snapshot schema: %w", err)
	}

	store := &Store{
		db:     db,
		path:   path,
		ttl:    ttl,
		logger: logging.NewComponentLogger(logger, "snapshot"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// TTL returns the freshness window.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Fresh reports whether the slot holds a snapshot younger than the TTL.
func (s *Store) Fresh(ctx context.Context, slot string) bool {
	writtenAt, ok := s.writtenAt(ctx, slot)
	if !ok {
		return false
	}
	return s.now().Sub(writtenAt) < s.ttl
}

// Age returns the elapsed time since the slot was last written.
func (s *Store) Age(ctx context.Context, slot string) (time.Duration, bool) {
	writtenAt, ok := s.writtenAt(ctx, slot)
	if !ok {
		return 0, false
	}
	return s.now().Sub(writtenAt), true
}

// Read returns the slot's movie list when it is present and fresh. A stale,
// missing, or unreadable snapshot reports absent; storage trouble is logged,
// never raised, since callers fall back to recomputing.
func (s *Store) Read(ctx context.Context, slot string) ([]schedule.Movie, bool) {
	var payload, writtenAtRaw string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload, written_at FROM snapshots WHERE slot = ?`, slot,
	).Scan(&payload, &writtenAtRaw)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn("snapshot read failed", logging.String("slot", slot), logging.Error(err))
		}
		return nil, false
	}

	writtenAt, err := time.Parse(time.RFC3339Nano, writtenAtRaw)
	if err != nil {
		s.logger.Warn("snapshot timestamp unreadable", logging.String("slot", slot), logging.Error(err))
		return nil, false
	}
	if s.now().Sub(writtenAt) >= s.ttl {
		return nil, false
	}

	var movies []schedule.Movie
	if err := json.Unmarshal([]byte(payload), &movies); err != nil {
		s.logger.Warn("snapshot payload unreadable", logging.String("slot", slot), logging.Error(err))
		return nil, false
	}
	return movies, true
}

// Write replaces the slot's snapshot wholesale and restarts its TTL window.
// Concurrent writers for the same slot race harmlessly: writes are idempotent
// for identical upstream state and last write wins.
func (s *Store) Write(ctx context.Context, slot string, movies []schedule.Movie) error {
	payload, err := json.Marshal(movies)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	writtenAt := s.now().UTC().Format(time.RFC3339Nano)

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO snapshots (slot, payload, written_at) VALUES (?, ?, ?)
         ON CONFLICT(slot) DO UPDATE SET payload = excluded.payload, written_at = excluded.written_at`,
		slot, string(payload), writtenAt)
	if err != nil {
		return fmt.Errorf("persist snapshot: %w", err)
	}

	s.logger.Debug("snapshot written",
		logging.String("slot", slot), logging.Int("movies", len(movies)))
	return nil
}

func (s *Store) writtenAt(ctx context.Context, slot string) (time.Time, bool) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT written_at FROM snapshots WHERE slot = ?`, slot,
	).Scan(&raw)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn("snapshot freshness check failed", logging.String("slot", slot), logging.Error(err))
		}
		return time.Time{}, false
	}
	writtenAt, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, false
	}
	return writtenAt, true
}
