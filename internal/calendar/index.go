// Package calendar implements the date-keyed session index that backs
// the mini calendar, the full calendar page and the profile counters.
package calendar

import (
	"time"

	"github.com/rollnconnect/rollconnect/internal/models"
)

// DateFormat is the bucket key layout (ISO day).
const DateFormat = "2006-01-02"

// Index maps a date string to the ordered list of items on that day.
// Buckets are append-only and insertion order is preserved. Keys are
// not validated: a malformed date simply never matches a rendered day
// cell. The zero value is not usable; call New.
type Index struct {
	days map[string][]models.CalendarItem
}

// New returns an empty index.
func New() *Index {
	return &Index{days: make(map[string][]models.CalendarItem)}
}

// FromMap builds an index from a persisted date→items map. A nil map
// yields an empty index. The map is copied.
func FromMap(m map[string][]models.CalendarItem) *Index {
	idx := New()
	for date, items := range m {
		idx.days[date] = append([]models.CalendarItem(nil), items...)
	}
	return idx
}

// Add appends item to the bucket for date, creating the bucket if
// absent. Adding the same logical item twice produces two entries.
func (idx *Index) Add(date string, item models.CalendarItem) {
	idx.days[date] = append(idx.days[date], item)
}

// Items returns the bucket for date in insertion order, or an empty
// slice (never nil) when the day has no items.
func (idx *Index) Items(date string) []models.CalendarItem {
	items := idx.days[date]
	if items == nil {
		return []models.CalendarItem{}
	}
	return append([]models.CalendarItem(nil), items...)
}

// Has reports whether date has at least one item.
func (idx *Index) Has(date string) bool {
	return len(idx.days[date]) > 0
}

// Len returns the total number of items across all buckets.
func (idx *Index) Len() int {
	n := 0
	for _, items := range idx.days {
		n += len(items)
	}
	return n
}

// Map returns a copy of the underlying date→items map for persistence.
func (idx *Index) Map() map[string][]models.CalendarItem {
	out := make(map[string][]models.CalendarItem, len(idx.days))
	for date, items := range idx.days {
		out[date] = append([]models.CalendarItem(nil), items...)
	}
	return out
}

// DayMarker describes one day cell of a month view.
type DayMarker struct {
	Date     string `json:"date"`
	HasItems bool   `json:"has_items"`
}

// Month returns a marker for every day of the given month, in order.
// This is the shared backing for the mini and full calendar views.
func (idx *Index) Month(year int, month time.Month) []DayMarker {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	markers := make([]DayMarker, 0, last.Day())
	for d := 1; d <= last.Day(); d++ {
		date := time.Date(year, month, d, 0, 0, 0, 0, time.UTC).Format(DateFormat)
		markers = append(markers, DayMarker{Date: date, HasItems: idx.Has(date)})
	}
	return markers
}
