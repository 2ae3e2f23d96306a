package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"

	"github.com/rollnconnect/rollconnect/internal/community"
	"github.com/rollnconnect/rollconnect/internal/geo"
	"github.com/rollnconnect/rollconnect/internal/tracker"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /stream inside the auth group.
// corsOrigins lists the browser origins allowed to call the API.
func NewRouter(svc *community.Service, locator geo.Locator, trk *tracker.Tracker,
	authEnabled bool, token string, sseHandler http.Handler, corsOrigins []string) chi.Router {
	h := NewHandler(svc, locator, trk)

	r := chi.NewRouter()
	r.Use(cors.New(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler)
	r.Use(AuthMiddleware(authEnabled, token))

	// Events.
	r.Get("/events", h.ListEvents)
	r.Post("/events", h.CreateEvent)
	r.Get("/events/{id}", h.GetEvent)
	r.Post("/events/{id}/join", h.JoinEvent)

	// Spots. The static /pins route must not be shadowed by {id}.
	r.Get("/spots", h.ListSpots)
	r.Get("/spots/pins", h.Pins)
	r.Get("/spots/{id}", h.GetSpot)
	r.Post("/spots/{id}/save", h.SaveSpot)
	r.Post("/spots/{id}/sessions", h.LogSession)

	// Search.
	r.Get("/search", h.Search)

	// Calendar.
	r.Get("/calendar", h.Calendar)
	r.Get("/calendar/days", h.CalendarDays)
	r.Get("/calendar/feed.ics", h.CalendarFeed)
	r.Get("/calendar/{date}", h.CalendarDay)

	// Profile and posts.
	r.Get("/profile", h.GetProfile)
	r.Put("/profile", h.UpdateProfile)
	r.Post("/posts", h.CreatePost)
	r.Post("/posts/{id}/like", h.LikePost)
	r.Post("/posts/{id}/comments", h.CommentPost)

	// Location and live tracking.
	r.Get("/location", h.Location)
	r.Get("/tracker", h.TrackerStatus)
	r.Post("/tracker/start", h.TrackerStart)
	r.Post("/tracker/stop", h.TrackerStop)

	// SSE endpoint (protected by the same auth middleware).
	if sseHandler != nil {
		r.Get("/stream", sseHandler.ServeHTTP)
	}

	return r
}
