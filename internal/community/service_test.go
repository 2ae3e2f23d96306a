package community

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/rollnconnect/rollconnect/internal/storage"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(t *testing.T) (*Service, storage.Provider) {
	t.Helper()
	store, err := storage.NewFS(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	svc, err := NewService(store, nil, nil, testLogger())
	if err != nil {
		t.Fatal(err)
	}
	return svc, store
}

func TestFirstRunSeedsData(t *testing.T) {
	svc, store := newTestService(t)

	events := svc.ListEvents()
	if len(events) != 2 {
		t.Fatalf("expected 2 seed events, got %d", len(events))
	}
	if events[0].Title != "Night Skate at City Rink" {
		t.Errorf("unexpected first seed event: %q", events[0].Title)
	}
	spots := svc.ListSpots(nil)
	if len(spots) != 3 {
		t.Fatalf("expected 3 seed spots, got %d", len(spots))
	}

	// Seeding persists immediately, so a restart must not re-seed.
	for _, key := range []string{storage.KeyEvents, storage.KeySpots} {
		if !store.Exists(key) {
			t.Errorf("collection %q not persisted after seeding", key)
		}
	}
}

func TestExistingDataNotReseeded(t *testing.T) {
	store, err := storage.NewFS(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Write(storage.KeyEvents, []byte(`[]`)); err != nil {
		t.Fatal(err)
	}
	svc, err := NewService(store, nil, nil, testLogger())
	if err != nil {
		t.Fatal(err)
	}
	if got := svc.ListEvents(); len(got) != 0 {
		t.Fatalf("expected empty events to survive restart, got %d", len(got))
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	svc, store := newTestService(t)

	event, err := svc.CreateEvent(CreateEventInput{
		Title: "Night Skate",
		Date:  "2026-02-20",
		Time:  "19:00",
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.SaveSpot("spot-1"); err != nil {
		t.Fatal(err)
	}

	// A fresh service over the same store must see everything.
	reloaded, err := NewService(store, nil, nil, testLogger())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := reloaded.FindEvent(event.ID); err != nil {
		t.Errorf("created event lost across restart: %v", err)
	}
	if got := reloaded.SavedSpotIDs(); len(got) != 1 || got[0] != "spot-1" {
		t.Errorf("saved spots lost across restart: %v", got)
	}
	if got := reloaded.JoinedEventIDs(); len(got) != 1 || got[0] != event.ID {
		t.Errorf("joined events lost across restart: %v", got)
	}
	items := reloaded.CalendarDay("2026-02-20")
	if len(items) != 1 || items[0].RefID != event.ID {
		t.Fatalf("calendar item lost across restart: %v", items)
	}
}

func TestCorruptCollectionFallsBackToEmpty(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, storage.KeyEvents+".json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	svc, err := NewService(store, nil, nil, testLogger())
	if err != nil {
		t.Fatal(err)
	}
	if got := svc.ListEvents(); len(got) != 0 {
		t.Fatalf("corrupt events collection should load as empty, got %d", len(got))
	}
	// An events file on disk, even corrupt, means this is not a first
	// run: nothing gets seeded.
	if got := svc.ListSpots(nil); len(got) != 0 {
		t.Fatalf("expected no spots without seeding, got %d", len(got))
	}
}

func TestReloadPicksUpExternalWrites(t *testing.T) {
	svc, store := newTestService(t)

	extra := append(seedEvents(), seedEvents()[0])
	extra[2].ID = "event-x"
	extra[2].Title = "External Edit"
	data, err := json.Marshal(extra)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Write(storage.KeyEvents, data); err != nil {
		t.Fatal(err)
	}

	svc.Reload()
	if _, err := svc.FindEvent("event-x"); err != nil {
		t.Errorf("reload did not pick up external write: %v", err)
	}
}

func TestSearchWithoutIndexReturnsEmpty(t *testing.T) {
	svc, _ := newTestService(t)
	results, err := svc.Search("rink", 10)
	if err != nil {
		t.Fatal(err)
	}
	if results == nil || len(results) != 0 {
		t.Fatalf("expected empty non-nil results, got %v", results)
	}
}
