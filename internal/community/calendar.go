package community

import (
	"time"

	"github.com/rollnconnect/rollconnect/internal/calendar"
	"github.com/rollnconnect/rollconnect/internal/ics"
	"github.com/rollnconnect/rollconnect/internal/models"
)

// CalendarDay returns the items filed under a YYYY-MM-DD key. The
// result is never nil.
func (s *Service) CalendarDay(date string) []models.CalendarItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cal.Items(date)
}

// CalendarMap returns a copy of the whole date-keyed index.
func (s *Service) CalendarMap() map[string][]models.CalendarItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cal.Map()
}

// CalendarMonth returns one marker per day of the given month.
func (s *Service) CalendarMonth(year int, month time.Month) []calendar.DayMarker {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cal.Month(year, month)
}

// CalendarFeed renders the whole index as an iCalendar document.
func (s *Service) CalendarFeed(name string, now time.Time) (string, error) {
	s.mu.Lock()
	idx := calendar.FromMap(s.cal.Map())
	s.mu.Unlock()
	return ics.Feed(idx, name, now)
}
