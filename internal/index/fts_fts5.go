//go:build sqlite_fts5

package index

import (
	"database/sql"
	"fmt"
)

func initFTS(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE VIRTUAL TABLE IF NOT EXISTS discover_fts USING fts5(
			kind UNINDEXED,
			ref UNINDEXED,
			title,
			body,
			tokenize = 'unicode61 remove_diacritics 2'
		);
	`)
	return err
}

func ftsUpsert(tx *sql.Tx, kind, ref, title, body string) error {
	_, _ = tx.Exec(`DELETE FROM discover_fts WHERE kind = ? AND ref = ?`, kind, ref)
	_, err := tx.Exec(`INSERT INTO discover_fts (kind, ref, title, body) VALUES (?, ?, ?, ?)`,
		kind, ref, title, body)
	if err != nil {
		return fmt.Errorf("index: upsert fts: %w", err)
	}
	return nil
}

// Search performs an FTS5 full-text search across spots and events.
func (db *DB) Search(query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.conn.Query(`
		SELECT kind,
		       ref,
		       title,
		       snippet(discover_fts, 3, '<b>', '</b>', '...', 64)
		FROM discover_fts
		WHERE discover_fts MATCH ?
		ORDER BY rank
		LIMIT ?
	`, query, limit)
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
