package index

import (
	"log/slog"
	"os"
	"testing"

	"github.com/rollnconnect/rollconnect/internal/models"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	f, err := os.CreateTemp("", "rollconnect-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	f.Close()
	t.Cleanup(func() { os.Remove(f.Name()) })

	db, err := Open(f.Name())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSchemaCreation(t *testing.T) {
	db := testDB(t)
	var count int
	if err := db.conn.QueryRow(`SELECT count(*) FROM spots`).Scan(&count); err != nil {
		t.Fatalf("spots table missing: %v", err)
	}
	if err := db.conn.QueryRow(`SELECT count(*) FROM events`).Scan(&count); err != nil {
		t.Fatalf("events table missing: %v", err)
	}
}

func TestUpsertSpotIdempotent(t *testing.T) {
	db := testDB(t)
	spot := models.Spot{
		ID:          "spot-1",
		Name:        "City Rink",
		Category:    models.CategorySkatingRink,
		City:        "Amsterdam",
		Description: "Outdoor rink with smooth concrete.",
		Position:    &models.Position{Lat: 52.3702, Lng: 4.8952},
	}
	if err := db.UpsertSpot(spot); err != nil {
		t.Fatalf("UpsertSpot: %v", err)
	}
	spot.Description = "Resurfaced this spring."
	if err := db.UpsertSpot(spot); err != nil {
		t.Fatalf("UpsertSpot again: %v", err)
	}

	ids, err := db.SpotIDs()
	if err != nil {
		t.Fatalf("SpotIDs: %v", err)
	}
	if len(ids) != 1 {
		t.Errorf("len(ids) = %d, want 1", len(ids))
	}

	var desc string
	if err := db.conn.QueryRow(`SELECT description FROM spots WHERE id = ?`, "spot-1").Scan(&desc); err != nil {
		t.Fatal(err)
	}
	if desc != "Resurfaced this spring." {
		t.Errorf("description = %q", desc)
	}
}

func TestUpsertEventAndSearch(t *testing.T) {
	db := testDB(t)
	err := db.UpsertEvent(models.Event{
		ID:       "event-1",
		Title:    "Night Skate at City Rink",
		Date:     "2026-02-20",
		Time:     "19:00",
		Location: "City Rink, Amsterdam",
	})
	if err != nil {
		t.Fatalf("UpsertEvent: %v", err)
	}

	results, err := db.Search("Night", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("len(results) = %d, want 1", len(results))
	}
	if results[0].Kind != "event" || results[0].ID != "event-1" {
		t.Errorf("result = %+v", results[0])
	}
}

func TestSearchAcrossKinds(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertSpot(models.Spot{ID: "spot-2", Name: "Canal Trail", Category: models.CategoryPavedTrail, City: "Amsterdam"})
	_ = db.UpsertEvent(models.Event{ID: "event-2", Title: "Canal Trail Session", Date: "2026-02-22"})

	results, err := db.Search("Canal", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}
}

func TestSearchNoMatch(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertSpot(models.Spot{ID: "spot-1", Name: "City Rink", Category: models.CategorySkatingRink})

	results, err := db.Search("nonexistent", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("len(results) = %d, want 0", len(results))
	}
}

func TestSyncPopulatesIndex(t *testing.T) {
	db := testDB(t)
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	spots := []models.Spot{
		{ID: "spot-1", Name: "City Rink", Category: models.CategorySkatingRink},
		{ID: "spot-2", Name: "Canal Trail", Category: models.CategoryPavedTrail},
	}
	events := []models.Event{
		{ID: "event-1", Title: "Night Skate", Date: "2026-02-20"},
	}
	if err := Sync(db, spots, events, logger); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	spotIDs, _ := db.SpotIDs()
	eventIDs, _ := db.EventIDs()
	if len(spotIDs) != 2 || len(eventIDs) != 1 {
		t.Errorf("spotIDs = %d, eventIDs = %d", len(spotIDs), len(eventIDs))
	}
}
