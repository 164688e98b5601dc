//go:build sqlite_fts5

package searchindex

import (
	"database/sql"
	"fmt"

	"github.com/dhcraft/m3gim/internal/archive"
)

func initFTS(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE VIRTUAL TABLE IF NOT EXISTS records_fts USING fts5(
			id UNINDEXED,
			signature,
			title,
			scope,
			tokenize = 'unicode61 remove_diacritics 2'
		);
	`)
	return err
}

func ftsClear(tx *sql.Tx) error {
	if _, err := tx.Exec(`DELETE FROM records_fts`); err != nil {
		return fmt.Errorf("searchindex: clear fts: %w", err)
	}
	return nil
}

func ftsInsert(tx *sql.Tx, r *archive.Record) error {
	_, err := tx.Exec(`INSERT INTO records_fts (id, signature, title, scope) VALUES (?, ?, ?, ?)`,
		r.ID, r.Signature, r.Title, r.ScopeAndContent)
	if err != nil {
		return fmt.Errorf("searchindex: insert fts: %w", err)
	}
	return nil
}

// Search performs an FTS5 full-text search and returns matching records
// with snippets.
func (db *DB) Search(query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.conn.Query(`
		SELECT id,
		       signature,
		       title,
		       snippet(records_fts, 3, '<b>', '</b>', '...', 64)
		FROM records_fts
		WHERE records_fts MATCH ?
		ORDER BY rank
		LIMIT ?
	`, query, limit)
	if err != nil {
		return nil, fmt.Errorf("searchindex: search: %w", err)
	}
	defer rows.Close()

	var out []SearchResult
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(&r.ID, &r.Signature, &r.Title, &r.Snippet); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
