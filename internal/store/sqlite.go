package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteDB implements DB on top of modernc.org/sqlite.
type SQLiteDB struct {
	db *sql.DB
}

var _ DB = (*SQLiteDB)(nil)

// NewSQLiteDB opens (creating if needed) the database at path and applies
// migrations. Use ":memory:" for a throwaway cache.
func NewSQLiteDB(path string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if path == ":memory:" {
		// every pooled connection would get its own empty database
		db.SetMaxOpenConns(1)
	} else if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	s := &SQLiteDB{db: db}
	if err := s.Migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database connection.
func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

// Migrate creates the schema. It is safe to run repeatedly.
func (s *SQLiteDB) Migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS difficulty (
			id TEXT PRIMARY KEY,
			beatmap_hash TEXT NOT NULL,
			ruleset TEXT NOT NULL,
			mods TEXT NOT NULL,
			upstream TEXT NOT NULL,
			star_rating REAL NOT NULL,
			max_combo INTEGER NOT NULL,
			attributes TEXT NOT NULL,
			created_at DATETIME NOT NULL
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_difficulty_key ON difficulty(beatmap_hash, ruleset, mods, upstream)`,
	}
	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// Get returns the entry stored under key, or ErrNotFound.
func (s *SQLiteDB) Get(ctx context.Context, key Key) (*Entry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, star_rating, max_combo, attributes, created_at
		FROM difficulty
		WHERE beatmap_hash = ? AND ruleset = ? AND mods = ? AND upstream = ?`,
		key.BeatmapHash, key.Ruleset, key.Mods, key.Upstream)

	e := &Entry{Key: key}
	var attrs string
	if err := row.Scan(&e.ID, &e.StarRating, &e.MaxCombo, &attrs, &e.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read entry: %w", err)
	}
	e.Attributes = []byte(attrs)
	return e, nil
}

// Put stores entry, replacing any entry with the same key. A missing ID is
// filled with a fresh UUID and a zero CreatedAt with the current time.
func (s *SQLiteDB) Put(ctx context.Context, entry *Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	attrs := string(entry.Attributes)
	if attrs == "" {
		attrs = "{}"
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO difficulty (id, beatmap_hash, ruleset, mods, upstream, star_rating, max_combo, attributes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(beatmap_hash, ruleset, mods, upstream) DO UPDATE SET
			id = excluded.id,
			star_rating = excluded.star_rating,
			max_combo = excluded.max_combo,
			attributes = excluded.attributes,
			created_at = excluded.created_at`,
		entry.ID, entry.Key.BeatmapHash, entry.Key.Ruleset, entry.Key.Mods, entry.Key.Upstream,
		entry.StarRating, entry.MaxCombo, attrs, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save entry: %w", err)
	}
	return nil
}

// Delete removes the entry stored under key. Deleting a missing key is not
// an error.
func (s *SQLiteDB) Delete(ctx context.Context, key Key) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM difficulty WHERE beatmap_hash = ? AND ruleset = ? AND mods = ? AND upstream = ?`,
		key.BeatmapHash, key.Ruleset, key.Mods, key.Upstream)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	return nil
}

// Count returns the number of cached entries.
func (s *SQLiteDB) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM difficulty`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count entries: %w", err)
	}
	return n, nil
}
