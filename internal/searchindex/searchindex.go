// Package searchindex provides the SQLite-backed full-text mirror of the
// record population, with optional FTS5 search.
//
// The mirror follows the Store's lifecycle: it is rebuilt wholesale from a
// snapshot inside one transaction and never patched row by row. Readers can
// keep searching while a rebuild runs; they see the old population until
// the rebuild commits.
package searchindex

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/dhcraft/m3gim/internal/archive"
	"github.com/dhcraft/m3gim/internal/dateparse"
)

const coreSchemaSQL = `
CREATE TABLE IF NOT EXISTS records (
	id            TEXT PRIMARY KEY,
	signature     TEXT NOT NULL DEFAULT '',
	title         TEXT NOT NULL DEFAULT '',
	scope         TEXT NOT NULL DEFAULT '',
	doc_type      TEXT NOT NULL DEFAULT '',
	access_status TEXT NOT NULL DEFAULT '',
	date          TEXT NOT NULL DEFAULT '',
	year          INTEGER,
	konvolut      TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_records_signature ON records(signature);
CREATE INDEX IF NOT EXISTS idx_records_doc_type  ON records(doc_type);
CREATE INDEX IF NOT EXISTS idx_records_year      ON records(year);
`

// SearchResult represents one search hit.
type SearchResult struct {
	ID        string
	Signature string
	Title     string
	Snippet   string
}

// DB wraps a sql.DB with record-mirror operations.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite database and applies the schema.
func Open(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("searchindex: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("searchindex: ping: %w", err)
	}
	if _, err := conn.Exec(coreSchemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("searchindex: apply core schema: %w", err)
	}
	if err := initFTS(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("searchindex: apply fts schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Rebuild replaces the whole mirror with the snapshot's record population,
// Folios excluded, in a single transaction.
func (db *DB) Rebuild(store *archive.Store) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("searchindex: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	if _, err := tx.Exec(`DELETE FROM records`); err != nil {
		return fmt.Errorf("searchindex: clear records: %w", err)
	}
	if err := ftsClear(tx); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO records (id, signature, title, scope, doc_type, access_status, date, year, konvolut)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("searchindex: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range store.AllRecords {
		var year any
		if y, ok := dateparse.Year(r.Date); ok {
			year = y
		}
		_, err := stmt.Exec(r.ID, r.Signature, r.Title, r.ScopeAndContent,
			r.DocType, r.AccessStatus, r.Date, year, store.KonvolutOf(r.ID))
		if err != nil {
			return fmt.Errorf("searchindex: insert record %s: %w", r.ID, err)
		}
		if err := ftsInsert(tx, r); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Count returns the number of mirrored records.
func (db *DB) Count() (int, error) {
	var n int
	if err := db.conn.QueryRow(`SELECT COUNT(*) FROM records`).Scan(&n); err != nil {
		return 0, fmt.Errorf("searchindex: count: %w", err)
	}
	return n, nil
}
