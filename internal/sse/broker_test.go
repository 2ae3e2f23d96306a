package sse

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestSubscribeUnsubscribe(t *testing.T) {
	b := NewBroker(100 * time.Millisecond)
	defer b.Close()
	if b.ClientCount() != 0 {
		t.Fatalf("expected 0 clients")
	}
	ch := b.Subscribe()
	if b.ClientCount() != 1 {
		t.Fatalf("expected 1 client")
	}
	b.Unsubscribe(ch)
	if b.ClientCount() != 0 {
		t.Fatalf("expected 0 clients after unsub")
	}
}

func TestPublishDelivery(t *testing.T) {
	b := NewBroker(100 * time.Millisecond)
	defer b.Close()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	b.Publish(Event{Type: "tracker.position", Data: map[string]float64{"lat": 52.3676}})

	select {
	case msg := <-ch:
		s := string(msg)
		if !strings.Contains(s, "event: tracker.position") {
			t.Errorf("missing event type in %q", s)
		}
		if !strings.Contains(s, `"lat":52.3676`) {
			t.Errorf("missing data in %q", s)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for message")
	}
}

func TestPublishChange_CalendarThrottle(t *testing.T) {
	b := NewBroker(time.Hour) // high throttle: only the first change emits calendar.updated
	defer b.Close()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	b.PublishChange("event.joined", "event-1", "2026-02-20")
	b.PublishChange("session.logged", "spot-1-2026-03-01-18:00", "2026-03-01")

	var calendarUpdates, changes int
	deadline := time.After(time.Second)
	for changes < 2 {
		select {
		case msg := <-ch:
			s := string(msg)
			if strings.Contains(s, "event: calendar.updated") {
				calendarUpdates++
			} else {
				changes++
			}
		case <-deadline:
			t.Fatalf("timeout: changes=%d calendarUpdates=%d", changes, calendarUpdates)
		}
	}
	if calendarUpdates != 1 {
		t.Errorf("calendar.updated count = %d, want 1 (throttled)", calendarUpdates)
	}
}

func TestPublishChangeCarriesDate(t *testing.T) {
	b := NewBroker(100 * time.Millisecond)
	defer b.Close()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	b.PublishChange("event.joined", "event-1", "2026-02-20")

	select {
	case msg := <-ch:
		s := string(msg)
		if !strings.Contains(s, `"date":"2026-02-20"`) || !strings.Contains(s, `"id":"event-1"`) {
			t.Errorf("payload missing fields: %q", s)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout")
	}
}

func TestServeHTTPStreams(t *testing.T) {
	b := NewBroker(100 * time.Millisecond)
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/api/stream", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		b.ServeHTTP(rec, req)
		close(done)
	}()

	// Wait for the handler to register its subscription.
	deadline := time.Now().Add(time.Second)
	for b.ClientCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("handler never subscribed")
		}
		time.Sleep(5 * time.Millisecond)
	}

	b.Publish(Event{Type: "spot.saved", Data: map[string]string{"id": "spot-1"}})
	time.Sleep(50 * time.Millisecond)
	cancel()
	<-done

	body := rec.Body.String()
	if !strings.Contains(body, "event: spot.saved") {
		t.Errorf("stream body missing event: %q", body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	b := NewBroker(100 * time.Millisecond)
	b.Close()
	b.Close()
	if b.ClientCount() != 0 {
		t.Error("closed broker must report 0 clients")
	}
}
