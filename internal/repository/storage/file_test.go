package storage

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ninedttt/gamemaker-bot/internal/entity"
)

func newFileStore(t *testing.T) (*FileStore, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "games.json")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewFileStore(logger, path), path
}

func sampleSnapshot() *entity.Snapshot {
	snapshot := entity.NewSnapshot()
	snapshot.Watermark = "1000"

	session := entity.NewGameSession()
	session.Board[0] = entity.PlayerMark
	session.Board[4] = entity.BotMark
	session.LastMessageID = "999"
	snapshot.Sessions["conv-1"] = session

	return snapshot
}

func TestFileStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store, _ := newFileStore(t)

	// Given: a snapshot with one in-flight game
	snapshot := sampleSnapshot()

	// When: saving and loading again
	require.NoError(t, store.Save(ctx, snapshot))
	loaded := store.Load(ctx)

	// Then: sessions and watermark survive identically
	assert.Equal(t, snapshot.Watermark, loaded.Watermark)
	require.Contains(t, loaded.Sessions, "conv-1")
	assert.Equal(t, snapshot.Sessions["conv-1"].Board, loaded.Sessions["conv-1"].Board)
	assert.Equal(t, "999", loaded.Sessions["conv-1"].LastMessageID)
}

func TestFileStore_Load(t *testing.T) {
	t.Run("Missing file yields the zero snapshot", func(t *testing.T) {
		store, _ := newFileStore(t)

		loaded := store.Load(context.Background())

		assert.Empty(t, loaded.Watermark)
		assert.Empty(t, loaded.Sessions)
		assert.NotNil(t, loaded.Sessions)
	})

	t.Run("Corrupt file yields the zero snapshot", func(t *testing.T) {
		// Given: garbage on disk where the snapshot should be
		store, path := newFileStore(t)
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

		// When: loading
		loaded := store.Load(context.Background())

		// Then: corruption is swallowed, not propagated
		assert.Empty(t, loaded.Watermark)
		assert.Empty(t, loaded.Sessions)
	})
}

func TestFileStore_SaveLeavesNoTempFiles(t *testing.T) {
	ctx := context.Background()
	store, path := newFileStore(t)

	// When: saving twice
	require.NoError(t, store.Save(ctx, sampleSnapshot()))
	require.NoError(t, store.Save(ctx, sampleSnapshot()))

	// Then: only the canonical file remains in the directory
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, filepath.Base(path), entries[0].Name())
}
