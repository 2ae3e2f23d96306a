package index

import "github.com/rollnconnect/rollconnect/internal/models"

// Discovery defines the interface for the search index. Consumers
// should depend on this interface rather than the concrete *DB type
// to facilitate testing with mocks.
type Discovery interface {
	UpsertSpot(s models.Spot) error
	UpsertEvent(e models.Event) error
	Search(query string, limit int) ([]SearchResult, error)
	SpotIDs() (map[string]struct{}, error)
	EventIDs() (map[string]struct{}, error)
	Close() error
}

// Verify *DB satisfies Discovery at compile time.
var _ Discovery = (*DB)(nil)
