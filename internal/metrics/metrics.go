// Package metrics exposes Prometheus counters for the registries.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	EventsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "rollconnect_events_created_total", Help: "Total events created"},
	)
	EventsJoined = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "rollconnect_events_joined_total", Help: "Total join operations (including repeats)"},
	)
	SessionsLogged = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "rollconnect_sessions_logged_total", Help: "Total spot sessions logged"},
	)
	SpotsSaved = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "rollconnect_spots_saved_total", Help: "Total spot save operations"},
	)
	PostLikes = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "rollconnect_post_likes_total", Help: "Total accepted post likes"},
	)
	PostComments = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "rollconnect_post_comments_total", Help: "Total post comments"},
	)
	CalendarItems = prometheus.NewGauge(
		prometheus.GaugeOpts{Name: "rollconnect_calendar_items", Help: "Items currently in the calendar index"},
	)
)

// Register registers all collectors with the default registry.
func Register() {
	prometheus.MustRegister(
		EventsCreated, EventsJoined, SessionsLogged, SpotsSaved,
		PostLikes, PostComments, CalendarItems,
	)
}
