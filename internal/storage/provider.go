// Package storage defines the file-system collection store abstraction.
//
// Every collection is one JSON document persisted wholesale on each
// mutation, mirroring the browser build's localStorage keys.
package storage

// Collection keys.
const (
	KeyEvents       = "events"
	KeySpots        = "spots"
	KeyCalendar     = "calendar"
	KeyJoinedEvents = "joined_events"
	KeySavedSpots   = "saved_spots"
	KeyProfile      = "profile"
)

// Keys lists every collection key in a stable order.
func Keys() []string {
	return []string{KeyEvents, KeySpots, KeyCalendar, KeyJoinedEvents, KeySavedSpots, KeyProfile}
}

// Provider is the interface for collection persistence.
type Provider interface {
	// Read returns the raw JSON of the collection, or os.ErrNotExist
	// when it has never been written.
	Read(key string) ([]byte, error)
	// Write atomically replaces the collection's JSON document.
	Write(key string, data []byte) error
	// Exists reports whether the collection has been written.
	Exists(key string) bool
}
