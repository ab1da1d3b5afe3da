// Package store caches difficulty results in a local SQLite database so that
// repeated CLI runs over the same beatmap and mods skip the native call.
package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"
)

// ErrNotFound is returned by Get when no entry matches the key.
var ErrNotFound = errors.New("store: entry not found")

// Key identifies one cached calculation.
type Key struct {
	// BeatmapHash is the hex SHA-256 of the beatmap file contents.
	BeatmapHash string
	// Ruleset is the ruleset short name, e.g. "osu" or "fruits".
	Ruleset string
	// Mods is the canonical mods string, e.g. "HDDT(speed_change=1.3)".
	Mods string
	// Upstream identifies the native library build that produced the
	// result, so an upgrade never serves stale star ratings.
	Upstream string
}

// Entry is a cached difficulty result. Attributes holds the ruleset
// specific attribute struct encoded as JSON.
type Entry struct {
	ID         string
	Key        Key
	StarRating float64
	MaxCombo   int32
	Attributes json.RawMessage
	CreatedAt  time.Time
}

// DB is the cache interface the CLI depends on.
type DB interface {
	Get(ctx context.Context, key Key) (*Entry, error)
	Put(ctx context.Context, entry *Entry) error
	Delete(ctx context.Context, key Key) error
	Count(ctx context.Context) (int, error)
	Close() error
}

// HashBeatmap returns the BeatmapHash for the given file contents.
func HashBeatmap(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
