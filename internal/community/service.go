// Package community implements the Roll'n'Connect registries: events,
// spots, the calendar index and the profile aggregator. A single
// Service owns the whole in-memory snapshot; every operation is a
// read-modify-write against it followed by a full persist, the Go
// rendition of the browser build's one-callback-at-a-time model.
package community

import (
	"encoding/json"
	"log/slog"
	"os"
	"sync"

	"github.com/rollnconnect/rollconnect/internal/calendar"
	"github.com/rollnconnect/rollconnect/internal/index"
	"github.com/rollnconnect/rollconnect/internal/metrics"
	"github.com/rollnconnect/rollconnect/internal/models"
	"github.com/rollnconnect/rollconnect/internal/sse"
	"github.com/rollnconnect/rollconnect/internal/storage"
)

// Service coordinates the persistent store, the search index and the
// SSE broker around one mutable snapshot.
type Service struct {
	store  storage.Provider
	db     index.Discovery
	broker *sse.Broker
	logger *slog.Logger

	mu          sync.Mutex
	events      []models.Event
	spots       []models.Spot
	cal         *calendar.Index
	profile     models.Profile
	joined      []string // joined event ids, insertion-ordered set
	saved       []string // saved spot ids, insertion-ordered set
	lastEventMs int64
}

// NewService creates a service and loads the snapshot from the store.
// Missing collections fall back to defaults (with seed data on first
// run); malformed ones are logged and reset to empty, never fatal.
// db and broker may be nil.
func NewService(store storage.Provider, db index.Discovery, broker *sse.Broker, logger *slog.Logger) (*Service, error) {
	s := &Service{
		store:  store,
		db:     db,
		broker: broker,
		logger: logger,
		cal:    calendar.New(),
	}
	s.load()

	if db != nil {
		if err := index.Sync(db, s.spots, s.events, logger); err != nil {
			logger.Warn("initial index sync failed", slog.String("error", err.Error()))
		}
	}
	metrics.CalendarItems.Set(float64(s.cal.Len()))
	return s, nil
}

// load reads every collection, seeding defaults on first run.
func (s *Service) load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	firstRun := !s.store.Exists(storage.KeyEvents) && !s.store.Exists(storage.KeySpots)

	readJSON(s, storage.KeyEvents, &s.events)
	readJSON(s, storage.KeySpots, &s.spots)
	readJSON(s, storage.KeyJoinedEvents, &s.joined)
	readJSON(s, storage.KeySavedSpots, &s.saved)

	var calMap map[string][]models.CalendarItem
	readJSON(s, storage.KeyCalendar, &calMap)
	s.cal = calendar.FromMap(calMap)

	s.profile = defaultProfile()
	var stored models.Profile
	if readJSON(s, storage.KeyProfile, &stored) {
		s.profile = stored
	}

	if firstRun {
		s.events = seedEvents()
		s.spots = seedSpots()
		s.persistLocked()
		s.logger.Info("seeded initial data",
			slog.Int("events", len(s.events)),
			slog.Int("spots", len(s.spots)))
	}

	// Saved/joined id sets are authoritative in their own collections;
	// the profile document only mirrors them for display.
	s.profile.JoinedEvents = append([]string(nil), s.joined...)
	s.profile.SavedSpots = append([]string(nil), s.saved...)
}

// Reload re-reads the snapshot from disk. Called by the store watcher
// when collection documents change underneath us.
func (s *Service) Reload() {
	s.load()
	s.mu.Lock()
	metrics.CalendarItems.Set(float64(s.cal.Len()))
	s.mu.Unlock()
}

// readJSON unmarshals one collection into target, reporting whether a
// valid document was found. Corrupt documents are logged and skipped:
// the app always renders some state, even if empty.
func readJSON(s *Service, key string, target any) bool {
	data, err := s.store.Read(key)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("storage read failed", slog.String("key", key), slog.String("error", err.Error()))
		}
		return false
	}
	if err := json.Unmarshal(data, target); err != nil {
		s.logger.Warn("corrupt collection, using empty default",
			slog.String("key", key), slog.String("error", err.Error()))
		return false
	}
	return true
}

// persistLocked serializes the full snapshot to the store. Callers
// must hold s.mu. Write failures are logged, never fatal.
func (s *Service) persistLocked() {
	write := func(key string, v any) {
		data, err := json.Marshal(v)
		if err != nil {
			s.logger.Error("marshal failed", slog.String("key", key), slog.String("error", err.Error()))
			return
		}
		if err := s.store.Write(key, data); err != nil {
			s.logger.Error("persist failed", slog.String("key", key), slog.String("error", err.Error()))
		}
	}

	write(storage.KeyEvents, s.events)
	write(storage.KeySpots, s.spots)
	write(storage.KeyCalendar, s.cal.Map())
	write(storage.KeyJoinedEvents, s.joined)
	write(storage.KeySavedSpots, s.saved)
	write(storage.KeyProfile, s.profile)

	metrics.CalendarItems.Set(float64(s.cal.Len()))
}

// publish forwards a change notification when a broker is attached.
func (s *Service) publish(eventType, refID, date string) {
	if s.broker != nil {
		s.broker.PublishChange(eventType, refID, date)
	}
}

// Search delegates free-text discovery to the index.
func (s *Service) Search(query string, limit int) ([]index.SearchResult, error) {
	if s.db == nil {
		return []index.SearchResult{}, nil
	}
	return s.db.Search(query, limit)
}

// contains reports membership in an id set slice.
func contains(set []string, id string) bool {
	for _, v := range set {
		if v == id {
			return true
		}
	}
	return false
}
