package store

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *SQLiteDB {
	t.Helper()
	db, err := NewSQLiteDB(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestPutGet(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	key := Key{BeatmapHash: HashBeatmap([]byte("osu file format v14")), Ruleset: "osu", Mods: "HDDT"}

	_, err := db.Get(ctx, key)
	require.ErrorIs(t, err, ErrNotFound)

	entry := &Entry{
		Key:        key,
		StarRating: 6.25,
		MaxCombo:   719,
		Attributes: json.RawMessage(`{"StarRating":6.25,"MaxCombo":719}`),
	}
	require.NoError(t, db.Put(ctx, entry))
	_, err = uuid.Parse(entry.ID)
	require.NoError(t, err, "Put should assign a UUID")
	assert.False(t, entry.CreatedAt.IsZero())

	got, err := db.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, entry.ID, got.ID)
	assert.Equal(t, 6.25, got.StarRating)
	assert.Equal(t, int32(719), got.MaxCombo)
	assert.JSONEq(t, string(entry.Attributes), string(got.Attributes))

	// The key is the full tuple.
	_, err = db.Get(ctx, Key{BeatmapHash: key.BeatmapHash, Ruleset: "osu", Mods: "NM"})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpstreamSeparatesEntries(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	old := Key{BeatmapHash: "abc", Ruleset: "osu", Mods: "DT", Upstream: "1111111"}
	cur := old
	cur.Upstream = "2222222"

	require.NoError(t, db.Put(ctx, &Entry{Key: old, StarRating: 5}))
	_, err := db.Get(ctx, cur)
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, db.Put(ctx, &Entry{Key: cur, StarRating: 6}))
	n, err := db.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got, err := db.Get(ctx, old)
	require.NoError(t, err)
	assert.Equal(t, 5.0, got.StarRating)
	got, err = db.Get(ctx, cur)
	require.NoError(t, err)
	assert.Equal(t, 6.0, got.StarRating)
}

func TestPutReplaces(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	key := Key{BeatmapHash: "abc", Ruleset: "mania", Mods: "NM"}

	require.NoError(t, db.Put(ctx, &Entry{Key: key, StarRating: 1}))
	require.NoError(t, db.Put(ctx, &Entry{Key: key, StarRating: 2}))

	n, err := db.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := db.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, 2.0, got.StarRating)
	assert.Equal(t, "{}", string(got.Attributes))
}

func TestDelete(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	key := Key{BeatmapHash: "abc", Ruleset: "taiko", Mods: "HR"}

	require.NoError(t, db.Put(ctx, &Entry{Key: key, StarRating: 3}))
	require.NoError(t, db.Delete(ctx, key))
	require.NoError(t, db.Delete(ctx, key))
	_, err := db.Get(ctx, key)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMigrateIsRepeatable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	db, err := NewSQLiteDB(path)
	require.NoError(t, err)
	require.NoError(t, db.Put(context.Background(), &Entry{Key: Key{BeatmapHash: "h", Ruleset: "osu", Mods: "NM"}}))
	require.NoError(t, db.Close())

	db, err = NewSQLiteDB(path)
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, db.Migrate())
	n, err := db.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestMemoryDB(t *testing.T) {
	db, err := NewSQLiteDB(":memory:")
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, db.Put(context.Background(), &Entry{Key: Key{BeatmapHash: "h", Ruleset: "osu", Mods: "NM"}}))
	n, err := db.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
