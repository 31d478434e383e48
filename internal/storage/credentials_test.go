package storage_test

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/agenda-app/client/internal/auth"
	"github.com/agenda-app/client/internal/storage"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

var _ auth.CredentialStore = (*storage.CredentialStore)(nil)

func openDB(t *testing.T, path string) *storage.DB {
	t.Helper()
	ctx := context.Background()
	db, err := storage.Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, storage.Migrate(ctx, db, logs.GetLoggerFromLevel(slog.LevelDebug)))
	return db
}

func TestCredentialStore(t *testing.T) {
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	t.Run("should survive reopening the database", func(t *testing.T) {
		req := require.New(t)
		path := filepath.Join(t.TempDir(), "agenda.db")

		// Given
		db := openDB(t, path)
		req.NoError(storage.NewCredentialStore(db, log).SetToken("tok"))
		req.NoError(db.Close())

		// When
		db = openDB(t, path)
		defer db.Close()
		token, ok := storage.NewCredentialStore(db, log).Token()

		// Then
		req.True(ok)
		req.Equal("tok", token)
	})

	t.Run("should replace and clear the token", func(t *testing.T) {
		req := require.New(t)
		db := openDB(t, ":memory:")
		defer db.Close()
		store := storage.NewCredentialStore(db, log)

		_, ok := store.Token()
		req.False(ok)

		req.NoError(store.SetToken("first"))
		req.NoError(store.SetToken("second"))
		token, ok := store.Token()
		req.True(ok)
		req.Equal("second", token)

		req.NoError(store.ClearToken())
		req.NoError(store.ClearToken())
		_, ok = store.Token()
		req.False(ok)
	})
}

func TestMigrate_Idempotent(t *testing.T) {
	req := require.New(t)
	db := openDB(t, ":memory:")
	defer db.Close()

	req.NoError(storage.Migrate(context.Background(), db, logs.GetLoggerFromLevel(slog.LevelDebug)))

	var n int
	req.NoError(db.QueryRow("SELECT COUNT(*) FROM _migrations").Scan(&n))
	req.Equal(1, n)
}

func TestLocalStorage_NotFound(t *testing.T) {
	req := require.New(t)
	db := openDB(t, ":memory:")
	defer db.Close()

	_, err := storage.NewLocalStorage(db).Get(context.Background(), "missing")

	req.ErrorIs(err, storage.ErrNotFound)
}
