//go:build !sqlite_fts5

package index

import (
	"database/sql"
	"fmt"
)

func initFTS(_ *sql.DB) error {
	// FTS5 not available; search uses LIKE over the base tables.
	return nil
}

func ftsUpsert(_ *sql.Tx, _, _, _, _ string) error {
	// Everything searchable already lives in the base tables.
	return nil
}

// Search performs a LIKE-based search (fallback when FTS5 is not compiled in).
func (db *DB) Search(query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 20
	}
	like := "%" + query + "%"
	rows, err := db.conn.Query(`
		SELECT 'spot', id, name, substr(city || ' ' || description, 1, 200)
		FROM spots
		WHERE name LIKE ? OR city LIKE ? OR description LIKE ? OR category LIKE ?
		UNION ALL
		SELECT 'event', id, title, substr(location || ' ' || description, 1, 200)
		FROM events
		WHERE title LIKE ? OR location LIKE ? OR description LIKE ?
		LIMIT ?
	`, like, like, like, like, like, like, like, limit)
	if err != nil {
		return nil, fmt.Errorf("index: search: %w", err)
	}
	defer rows.Close()

	var out []SearchResult
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(&r.Kind, &r.ID, &r.Title, &r.Snippet); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
