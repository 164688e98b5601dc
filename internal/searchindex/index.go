package searchindex

import "github.com/dhcraft/m3gim/internal/archive"

// RecordIndex defines the interface for the search mirror. Consumers should
// depend on this interface rather than the concrete *DB type to facilitate
// testing with mocks.
type RecordIndex interface {
	Rebuild(store *archive.Store) error
	Search(query string, limit int) ([]SearchResult, error)
	Count() (int, error)
	Close() error
}

// Verify *DB satisfies RecordIndex at compile time.
var _ RecordIndex = (*DB)(nil)
