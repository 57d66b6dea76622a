// Package storage provides SQLite-based persistence for session replays.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

var (
	// ErrReplayNotFound is returned when no replay matches an ID or prefix.
	ErrReplayNotFound = errors.New("storage: replay not found")
	// ErrAmbiguousID is returned when an ID prefix matches several replays.
	ErrAmbiguousID = errors.New("storage: replay id prefix is ambiguous")
)

// Store manages the SQLite database connection for replay persistence.
type Store struct {
	db  *sqlx.DB
	now func() time.Time
}

// ReplaySummary is a replay without its recorded input.
type ReplaySummary struct {
	ID          string `db:"id"`
	GameID      string `db:"game_id"`
	Seed        int64  `db:"seed"`
	Ticks       int64  `db:"ticks"`
	Length      int    `db:"length"`
	EndReason   string `db:"end_reason"`
	CreatedUnix int64  `db:"created_at"`
}

// CreatedAt returns the time the replay was saved.
func (r ReplaySummary) CreatedAt() time.Time {
	return time.UnixMilli(r.CreatedUnix)
}

// Replay is everything needed to re-run a session: the variant, the seed,
// the effective configuration and the non-empty input frames.
type Replay struct {
	ReplaySummary
	ConfigYAML string
	Frames     []Frame
}

type replayRow struct {
	ReplaySummary
	ConfigYAML string `db:"config_yaml"`
	Frames     []byte `db:"frames"`
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db, now: time.Now}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS replays (
			id TEXT PRIMARY KEY,
			game_id TEXT NOT NULL,
			seed INTEGER NOT NULL,
			config_yaml TEXT NOT NULL,
			frames BLOB NOT NULL,
			ticks INTEGER NOT NULL DEFAULT 0,
			length INTEGER NOT NULL DEFAULT 0,
			end_reason TEXT NOT NULL DEFAULT '',
			created_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_replays_created ON replays(created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveReplay stores a replay and returns its ID. A new UUID is assigned
// when r.ID is empty.
func (s *Store) SaveReplay(r Replay) (string, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedUnix == 0 {
		r.CreatedUnix = s.now().UnixMilli()
	}

	frames, err := EncodeFrames(r.Frames)
	if err != nil {
		return "", err
	}

	row := replayRow{ReplaySummary: r.ReplaySummary, ConfigYAML: r.ConfigYAML, Frames: frames}
	_, err = s.db.NamedExec(
		`INSERT INTO replays
		 (id, game_id, seed, config_yaml, frames, ticks, length, end_reason, created_at)
		 VALUES (:id, :game_id, :seed, :config_yaml, :frames, :ticks, :length, :end_reason, :created_at)`,
		row,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save replay: %w", err)
	}

	return r.ID, nil
}

// Replay loads a replay by full ID or unique ID prefix. The prefix is
// matched literally.
func (s *Store) Replay(idOrPrefix string) (*Replay, error) {
	if idOrPrefix == "" {
		return nil, ErrReplayNotFound
	}

	var rows []replayRow
	err := s.db.Select(&rows,
		`SELECT id, game_id, seed, config_yaml, frames, ticks, length, end_reason, created_at
		 FROM replays
		 WHERE substr(id, 1, length(?)) = ?
		 ORDER BY id = ? DESC
		 LIMIT 2`,
		idOrPrefix, idOrPrefix, idOrPrefix,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replay: %w", err)
	}

	switch {
	case len(rows) == 0:
		return nil, ErrReplayNotFound
	case len(rows) > 1 && rows[0].ID != idOrPrefix:
		return nil, fmt.Errorf("%w: %q", ErrAmbiguousID, idOrPrefix)
	}

	frames, err := DecodeFrames(rows[0].Frames)
	if err != nil {
		return nil, err
	}

	return &Replay{
		ReplaySummary: rows[0].ReplaySummary,
		ConfigYAML:    rows[0].ConfigYAML,
		Frames:        frames,
	}, nil
}

// ListReplays returns the most recent replays, newest first.
func (s *Store) ListReplays(limit int) ([]ReplaySummary, error) {
	if limit <= 0 {
		limit = 20
	}

	var out []ReplaySummary
	err := s.db.Select(&out,
		`SELECT id, game_id, seed, ticks, length, end_reason, created_at
		 FROM replays
		 ORDER BY created_at DESC, id
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replays: %w", err)
	}

	return out, nil
}

// DeleteReplay removes a replay by full ID.
func (s *Store) DeleteReplay(id string) error {
	res, err := s.db.Exec("DELETE FROM replays WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete replay: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot get affected rows: %w", err)
	}
	if n == 0 {
		return ErrReplayNotFound
	}
	return nil
}

// CountReplays returns the number of stored replays.
func (s *Store) CountReplays() (int, error) {
	var n int
	if err := s.db.Get(&n, "SELECT COUNT(*) FROM replays"); err != nil {
		return 0, fmt.Errorf("storage: cannot count replays: %w", err)
	}
	return n, nil
}
