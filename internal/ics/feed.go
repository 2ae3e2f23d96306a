// Package ics renders the calendar index as an iCalendar feed so the
// user can subscribe from any external calendar app.
package ics

import (
	"fmt"
	"sort"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/rollnconnect/rollconnect/internal/calendar"
)

// ProdID identifies the feed generator.
const ProdID = "-//rollnconnect//rollconnect//EN"

// Feed serializes every calendar item as a VEVENT. Items with a
// parseable HH:MM time become one-hour events; the rest are all-day.
// Output is deterministic: days ascending, items in bucket order.
func Feed(idx *calendar.Index, name string, now time.Time) (string, error) {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(ProdID)
	cal.SetXWRCalName(name)

	days := idx.Map()
	dates := make([]string, 0, len(days))
	for date := range days {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	for _, date := range dates {
		day, err := time.Parse(calendar.DateFormat, date)
		if err != nil {
			// Malformed bucket keys never render, same as the day views.
			continue
		}
		for i, item := range days[date] {
			uid := fmt.Sprintf("%s-%d-%s@rollnconnect", date, i, item.RefID)
			ev := cal.AddEvent(uid)
			ev.SetDtStampTime(now.UTC())
			ev.SetSummary(item.Title)
			if item.Location != "" {
				ev.SetLocation(item.Location)
			}
			if item.Note != "" {
				ev.SetDescription(item.Note)
			}

			if start, ok := atTime(day, item.Time); ok {
				ev.SetStartAt(start)
				ev.SetEndAt(start.Add(time.Hour))
			} else {
				ev.SetAllDayStartAt(day)
				ev.SetAllDayEndAt(day.AddDate(0, 0, 1))
			}
		}
	}

	return cal.Serialize(), nil
}

// atTime combines a day with an "HH:MM" string, reporting false when
// the time is empty or malformed.
func atTime(day time.Time, hhmm string) (time.Time, bool) {
	if hhmm == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC), true
}
