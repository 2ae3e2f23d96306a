package calendar

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"github.com/rollnconnect/rollconnect/internal/models"
)

func TestItemsEmptyDay(t *testing.T) {
	idx := New()
	items := idx.Items("2026-02-20")
	if items == nil {
		t.Fatal("Items returned nil, want empty slice")
	}
	if len(items) != 0 {
		t.Fatalf("len = %d, want 0", len(items))
	}
}

func TestAddPreservesOrder(t *testing.T) {
	idx := New()
	for _, title := range []string{"first", "second", "third"} {
		idx.Add("2026-02-20", models.CalendarItem{Kind: models.ItemKindEvent, RefID: title, Title: title})
	}

	items := idx.Items("2026-02-20")
	if len(items) != 3 {
		t.Fatalf("len = %d, want 3", len(items))
	}
	for i, want := range []string{"first", "second", "third"} {
		if items[i].Title != want {
			t.Errorf("items[%d].Title = %q, want %q", i, items[i].Title, want)
		}
	}
}

func TestAddNoDedup(t *testing.T) {
	idx := New()
	item := models.CalendarItem{Kind: models.ItemKindEvent, RefID: "event-1", Title: "Night Skate"}
	idx.Add("2026-02-20", item)
	idx.Add("2026-02-20", item)

	if got := len(idx.Items("2026-02-20")); got != 2 {
		t.Errorf("len = %d, want 2 (buckets are append-only, no dedup)", got)
	}
}

func TestMalformedKeyAccepted(t *testing.T) {
	idx := New()
	idx.Add("not-a-date", models.CalendarItem{Kind: models.ItemKindSpotSession, RefID: "x"})
	if !idx.Has("not-a-date") {
		t.Error("malformed keys must still be stored")
	}
	// A malformed key never shows up in a month view.
	for _, m := range idx.Month(2026, time.February) {
		if m.Date == "not-a-date" {
			t.Error("month view matched a malformed key")
		}
	}
}

func TestMonthMarkers(t *testing.T) {
	idx := New()
	idx.Add("2026-02-20", models.CalendarItem{Kind: models.ItemKindEvent, RefID: "event-1"})

	markers := idx.Month(2026, time.February)
	if len(markers) != 28 {
		t.Fatalf("February 2026 has %d markers, want 28", len(markers))
	}
	for _, m := range markers {
		want := m.Date == "2026-02-20"
		if m.HasItems != want {
			t.Errorf("marker %s HasItems = %v, want %v", m.Date, m.HasItems, want)
		}
	}
}

func TestMapRoundTrip(t *testing.T) {
	idx := New()
	idx.Add("2026-02-20", models.CalendarItem{Kind: models.ItemKindEvent, RefID: "event-1", Title: "Night Skate", Time: "19:00"})
	idx.Add("2026-03-01", models.CalendarItem{Kind: models.ItemKindSpotSession, RefID: "spot-1-2026-03-01-18:00", Note: "laps"})

	data, err := json.Marshal(idx.Map())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string][]models.CalendarItem
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	restored := FromMap(m)
	if !reflect.DeepEqual(restored.Map(), idx.Map()) {
		t.Errorf("round trip mismatch:\n got %#v\nwant %#v", restored.Map(), idx.Map())
	}
	if restored.Len() != 2 {
		t.Errorf("Len = %d, want 2", restored.Len())
	}
}

func TestMutationIsolation(t *testing.T) {
	idx := New()
	idx.Add("2026-02-20", models.CalendarItem{RefID: "a"})

	items := idx.Items("2026-02-20")
	items[0].RefID = "mutated"

	if idx.Items("2026-02-20")[0].RefID != "a" {
		t.Error("Items must return a copy, not the internal bucket")
	}
}
