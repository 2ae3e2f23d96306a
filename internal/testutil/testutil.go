// Package testutil provides shared test helpers for setting up data
// directories, databases and services.
package testutil

import (
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/rollnconnect/rollconnect/internal/community"
	"github.com/rollnconnect/rollconnect/internal/index"
	"github.com/rollnconnect/rollconnect/internal/storage"
)

// Logger returns a discard logger for tests.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestDB creates a temporary SQLite database that is automatically cleaned up.
func TestDB(t *testing.T) *index.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "rollconnect-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := index.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestStore creates a temporary data directory with a storage.Provider.
func TestStore(t *testing.T) (string, storage.Provider) {
	t.Helper()
	dataDir := t.TempDir()
	store, err := storage.NewFS(dataDir)
	if err != nil {
		t.Fatal(err)
	}
	return dataDir, store
}

// TestService creates a community service over a fresh store, without
// a search index or broker attached.
func TestService(t *testing.T) *community.Service {
	t.Helper()
	_, store := TestStore(t)
	svc, err := community.NewService(store, nil, nil, Logger())
	if err != nil {
		t.Fatal(err)
	}
	return svc
}
