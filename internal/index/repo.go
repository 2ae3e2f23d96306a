package index

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/rollnconnect/rollconnect/internal/models"
)

// SearchResult represents one discovery hit across spots and events.
type SearchResult struct {
	Kind    string `json:"kind"` // "spot" or "event"
	ID      string `json:"id"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

// UpsertSpot inserts or replaces a spot row and its FTS entry.
func (db *DB) UpsertSpot(s models.Spot) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	var lat, lng sql.NullFloat64
	if s.Position != nil {
		lat = sql.NullFloat64{Float64: s.Position.Lat, Valid: true}
		lng = sql.NullFloat64{Float64: s.Position.Lng, Valid: true}
	}

	_, err = tx.Exec(`
		INSERT INTO spots (id, name, category, city, description, lat, lng)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name        = excluded.name,
			category    = excluded.category,
			city        = excluded.city,
			description = excluded.description,
			lat         = excluded.lat,
			lng         = excluded.lng
	`, s.ID, s.Name, string(s.Category), s.City, s.Description, lat, lng)
	if err != nil {
		return fmt.Errorf("index: upsert spot: %w", err)
	}

	body := strings.TrimSpace(s.City + " " + s.Description + " " + s.Category.Label())
	if err := ftsUpsert(tx, "spot", s.ID, s.Name, body); err != nil {
		return err
	}

	return tx.Commit()
}

// UpsertEvent inserts or replaces an event row and its FTS entry.
func (db *DB) UpsertEvent(e models.Event) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.Exec(`
		INSERT INTO events (id, title, date, time, location, description)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title       = excluded.title,
			date        = excluded.date,
			time        = excluded.time,
			location    = excluded.location,
			description = excluded.description
	`, e.ID, e.Title, e.Date, e.Time, e.Location, e.Description)
	if err != nil {
		return fmt.Errorf("index: upsert event: %w", err)
	}

	body := strings.TrimSpace(e.Location + " " + e.Description + " " + e.Date)
	if err := ftsUpsert(tx, "event", e.ID, e.Title, body); err != nil {
		return err
	}

	return tx.Commit()
}

// SpotIDs returns every indexed spot id.
func (db *DB) SpotIDs() (map[string]struct{}, error) {
	return db.allIDs("spots")
}

// EventIDs returns every indexed event id.
func (db *DB) EventIDs() (map[string]struct{}, error) {
	return db.allIDs("events")
}

func (db *DB) allIDs(table string) (map[string]struct{}, error) {
	rows, err := db.conn.Query(`SELECT id FROM ` + table)
	if err != nil {
		return nil, fmt.Errorf("index: ids from %s: %w", table, err)
	}
	defer rows.Close()
	out := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out[id] = struct{}{}
	}
	return out, rows.Err()
}
