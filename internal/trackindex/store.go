package trackindex

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Composition is one recorded inspection.
type Composition struct {
	ID          int64
	Path        string
	Title       string
	Namespace   string
	InspectedAt time.Time
	Tracks      []Track
}

// Track is one virtual track row belonging to a recorded composition.
type Track struct {
	TrackID         string
	Kind            string
	Fingerprint     string
	DurationSeconds float64
	ResourceCount   int
}

// Match pairs a fingerprint hit with the composition that carries it.
type Match struct {
	CompositionID int64
	Path          string
	Title         string
	TrackID       string
	Kind          string
	InspectedAt   time.Time
}

// Store manages fingerprint persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the index database and applies migrations.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create index directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
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

func (s *Store) applyMigrations(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS compositions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			path TEXT NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			namespace TEXT NOT NULL DEFAULT '',
			inspected_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS virtual_tracks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			composition_id INTEGER NOT NULL REFERENCES compositions(id) ON DELETE CASCADE,
			track_id TEXT NOT NULL,
			kind TEXT NOT NULL,
			fingerprint TEXT NOT NULL,
			duration_seconds REAL NOT NULL,
			resource_count INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_virtual_tracks_fingerprint
			ON virtual_tracks(fingerprint)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply migration: %w", err)
		}
	}
	return nil
}

// Record stores one inspection result and returns the composition row id.
func (s *Store) Record(ctx context.Context, comp Composition) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin record: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	inspectedAt := comp.InspectedAt
	if inspectedAt.IsZero() {
		inspectedAt = time.Now().UTC()
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO compositions (path, title, namespace, inspected_at) VALUES (?, ?, ?, ?)`,
		comp.Path, comp.Title, comp.Namespace, inspectedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("insert composition: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("composition id: %w", err)
	}

	for _, track := range comp.Tracks {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO virtual_tracks
				(composition_id, track_id, kind, fingerprint, duration_seconds, resource_count)
			VALUES (?, ?, ?, ?, ?, ?)`,
			id, track.TrackID, track.Kind, track.Fingerprint,
			track.DurationSeconds, track.ResourceCount,
		); err != nil {
			return 0, fmt.Errorf("insert track: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit record: %w", err)
	}
	return id, nil
}

// FindByFingerprint returns every recorded composition carrying a track with
// the given fingerprint, most recent first.
func (s *Store) FindByFingerprint(ctx context.Context, fingerprint string) ([]Match, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT c.id, c.path, c.title, t.track_id, t.kind, c.inspected_at
		FROM virtual_tracks t
		JOIN compositions c ON c.id = t.composition_id
		WHERE t.fingerprint = ?
		ORDER BY c.inspected_at DESC, c.id DESC`,
		fingerprint,
	)
	if err != nil {
		return nil, fmt.Errorf("query fingerprint: %w", err)
	}
	defer rows.Close()

	var matches []Match
	for rows.Next() {
		var m Match
		var inspectedAt string
		if err := rows.Scan(&m.CompositionID, &m.Path, &m.Title, &m.TrackID, &m.Kind, &inspectedAt); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		if ts, parseErr := time.Parse(time.RFC3339Nano, inspectedAt); parseErr == nil {
			m.InspectedAt = ts
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

// Compositions lists recorded compositions, most recent first, without their
// track rows.
func (s *Store) Compositions(ctx context.Context) ([]Composition, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, path, title, namespace, inspected_at
		FROM compositions ORDER BY inspected_at DESC, id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("query compositions: %w", err)
	}
	defer rows.Close()

	var comps []Composition
	for rows.Next() {
		var c Composition
		var inspectedAt string
		if err := rows.Scan(&c.ID, &c.Path, &c.Title, &c.Namespace, &inspectedAt); err != nil {
			return nil, fmt.Errorf("scan composition: %w", err)
		}
		if ts, parseErr := time.Parse(time.RFC3339Nano, inspectedAt); parseErr == nil {
			c.InspectedAt = ts
		}
		comps = append(comps, c)
	}
	return comps, rows.Err()
}
