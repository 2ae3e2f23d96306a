package community

import (
	"fmt"
	"log/slog"
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/rollnconnect/rollconnect/internal/apperr"
	"github.com/rollnconnect/rollconnect/internal/metrics"
	"github.com/rollnconnect/rollconnect/internal/models"
)

var hhmmRe = regexp.MustCompile(`^\d{2}:\d{2}$`)

// CreateEventInput is the structured request for creating an event,
// validated before the registry is touched.
type CreateEventInput struct {
	Title       string `json:"title"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

// Validate enforces the create contract: title and date are required,
// a time (when given) must be HH:MM.
func (r CreateEventInput) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required),
		validation.Field(&r.Date, validation.Required, validation.Date("2006-01-02")),
		validation.Field(&r.Time, validation.Match(hhmmRe).Error("must be HH:MM")),
	)
}

// ListEvents returns all events in insertion order.
func (s *Service) ListEvents() []models.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Event(nil), s.events...)
}

// FindEvent returns the event with the given id.
func (s *Service) FindEvent(id string) (models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.events {
		if e.ID == id {
			return e, nil
		}
	}
	return models.Event{}, apperr.ErrNotFound
}

// CreateEvent appends a new event, places it on the calendar and marks
// the creator as joined. The id is a monotonic timestamp-derived
// string: rapid calls within one millisecond still produce increasing
// ids.
func (s *Service) CreateEvent(in CreateEventInput) (models.Event, error) {
	if err := in.Validate(); err != nil {
		return models.Event{}, fmt.Errorf("%w: %s", apperr.ErrInvalid, err)
	}

	s.mu.Lock()
	event := models.Event{
		ID:          s.nextEventIDLocked(),
		Title:       in.Title,
		Date:        in.Date,
		Time:        in.Time,
		Location:    in.Location,
		Description: in.Description,
	}
	s.events = append(s.events, event)
	s.cal.Add(event.Date, calendarItemForEvent(event))

	// Creator auto-joins; the joined set dedups, the calendar does not.
	if !contains(s.joined, event.ID) {
		s.joined = append(s.joined, event.ID)
		s.profile.JoinedEvents = append([]string(nil), s.joined...)
	}
	s.persistLocked()
	s.mu.Unlock()

	if s.db != nil {
		if err := s.db.UpsertEvent(event); err != nil {
			s.logger.Warn("event index failed", slog.String("id", event.ID), slog.String("error", err.Error()))
		}
	}
	metrics.EventsCreated.Inc()
	s.publish("event.created", event.ID, event.Date)
	return event, nil
}

// JoinEvent records the id in the joined set (idempotently) and
// appends a calendar item for the event's date on every call:
// set-dedup for joins, append-only for the calendar.
func (s *Service) JoinEvent(id string) (models.Event, error) {
	s.mu.Lock()
	var event *models.Event
	for i := range s.events {
		if s.events[i].ID == id {
			event = &s.events[i]
			break
		}
	}
	if event == nil {
		s.mu.Unlock()
		return models.Event{}, apperr.ErrNotFound
	}

	s.cal.Add(event.Date, calendarItemForEvent(*event))
	if !contains(s.joined, id) {
		s.joined = append(s.joined, id)
		s.profile.JoinedEvents = append([]string(nil), s.joined...)
	}
	s.persistLocked()
	e := *event
	s.mu.Unlock()

	metrics.EventsJoined.Inc()
	s.publish("event.joined", id, e.Date)
	return e, nil
}

// JoinedEventIDs returns the joined-event id set in insertion order.
func (s *Service) JoinedEventIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.joined...)
}

func calendarItemForEvent(e models.Event) models.CalendarItem {
	return models.CalendarItem{
		Kind:     models.ItemKindEvent,
		RefID:    e.ID,
		Title:    e.Title,
		Time:     e.Time,
		Location: e.Location,
	}
}

// nextEventIDLocked generates a monotonic timestamp-derived event id.
// Callers must hold s.mu.
func (s *Service) nextEventIDLocked() string {
	ms := time.Now().UnixMilli()
	if ms <= s.lastEventMs {
		ms = s.lastEventMs + 1
	}
	s.lastEventMs = ms
	return fmt.Sprintf("event-%d", ms)
}
