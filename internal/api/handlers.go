package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rollnconnect/rollconnect/internal/apperr"
	"github.com/rollnconnect/rollconnect/internal/community"
	"github.com/rollnconnect/rollconnect/internal/geo"
	"github.com/rollnconnect/rollconnect/internal/models"
	"github.com/rollnconnect/rollconnect/internal/tracker"
)

// Handler holds API route handlers. locator and trk may be nil, which
// disables the location and tracking endpoints.
type Handler struct {
	svc     *community.Service
	locator geo.Locator
	trk     *tracker.Tracker
}

// NewHandler creates a new Handler.
func NewHandler(svc *community.Service, locator geo.Locator, trk *tracker.Tracker) *Handler {
	return &Handler{svc: svc, locator: locator, trk: trk}
}

// ListEvents handles GET /api/events.
//
//	@Summary		List all events
//	@Tags			events
//	@Produce		json
//	@Success		200	{object}	EventListResponse
//	@Security		BearerAuth
//	@Router			/events [get]
func (h *Handler) ListEvents(w http.ResponseWriter, _ *http.Request) {
	events := h.svc.ListEvents()
	writeJSON(w, http.StatusOK, EventListResponse{Events: events, Total: len(events)})
}

// GetEvent handles GET /api/events/{id}.
//
//	@Summary		Get a single event by id
//	@Tags			events
//	@Produce		json
//	@Param			id	path		string	true	"Event id"
//	@Success		200	{object}	models.Event
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/events/{id} [get]
func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := h.svc.FindEvent(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	writeJSON(w, http.StatusOK, event)
}

// CreateEvent handles POST /api/events.
//
//	@Summary		Create a new event
//	@Tags			events
//	@Accept			json
//	@Produce		json
//	@Param			body	body		CreateEventRequest	true	"Event to create"
//	@Success		201		{object}	models.Event
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/events [post]
func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	event, err := h.svc.CreateEvent(req)
	if err != nil {
		if errors.Is(err, apperr.ErrInvalid) {
			writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		} else {
			slog.Error("create event failed", slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusCreated, event)
}

// JoinEvent handles POST /api/events/{id}/join.
//
//	@Summary		Join an event
//	@Tags			events
//	@Produce		json
//	@Param			id	path		string	true	"Event id"
//	@Success		200	{object}	models.Event
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/events/{id}/join [post]
func (h *Handler) JoinEvent(w http.ResponseWriter, r *http.Request) {
	event, err := h.svc.JoinEvent(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	writeJSON(w, http.StatusOK, event)
}

// ListSpots handles GET /api/spots.
//
//	@Summary		List spots, optionally filtered by category
//	@Tags			spots
//	@Produce		json
//	@Param			category	query		string	false	"Comma-separated category filter"
//	@Success		200			{object}	SpotListResponse
//	@Security		BearerAuth
//	@Router			/spots [get]
func (h *Handler) ListSpots(w http.ResponseWriter, r *http.Request) {
	filter := models.ParseCategorySet(r.URL.Query().Get("category"))
	spots := h.svc.ListSpots(filter)
	writeJSON(w, http.StatusOK, SpotListResponse{Spots: spots, Total: len(spots)})
}

// GetSpot handles GET /api/spots/{id}.
//
//	@Summary		Get a single spot by id
//	@Tags			spots
//	@Produce		json
//	@Param			id	path		string	true	"Spot id"
//	@Success		200	{object}	models.Spot
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/spots/{id} [get]
func (h *Handler) GetSpot(w http.ResponseWriter, r *http.Request) {
	spot, err := h.svc.FindSpot(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	writeJSON(w, http.StatusOK, spot)
}

// Pins handles GET /api/spots/pins.
//
//	@Summary		Map pin feed: every spot with a coordinate
//	@Tags			spots
//	@Produce		json
//	@Param			category	query		string	false	"Comma-separated category filter"
//	@Success		200			{object}	PinListResponse
//	@Security		BearerAuth
//	@Router			/spots/pins [get]
func (h *Handler) Pins(w http.ResponseWriter, r *http.Request) {
	filter := models.ParseCategorySet(r.URL.Query().Get("category"))
	writeJSON(w, http.StatusOK, PinListResponse{Pins: h.svc.Pins(filter)})
}

// SaveSpot handles POST /api/spots/{id}/save.
//
//	@Summary		Add a spot id to the saved set
//	@Tags			spots
//	@Produce		json
//	@Param			id	path	string	true	"Spot id"
//	@Success		204	"Saved"
//	@Failure		400	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/spots/{id}/save [post]
func (h *Handler) SaveSpot(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.SaveSpot(chi.URLParam(r, "id")); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// LogSession handles POST /api/spots/{id}/sessions.
//
//	@Summary		Log a skate session at a spot
//	@Tags			spots
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"Spot id"
//	@Param			body	body		LogSessionRequest	true	"Session details"
//	@Success		201		{object}	models.CalendarItem
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/spots/{id}/sessions [post]
func (h *Handler) LogSession(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req LogSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	item, err := h.svc.LogSession(community.LogSessionInput{
		SpotID: chi.URLParam(r, "id"),
		Date:   req.Date,
		Time:   req.Time,
		Note:   req.Note,
	})
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrNotFound):
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		case errors.Is(err, apperr.ErrInvalid):
			writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		default:
			slog.Error("log session failed", slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// Search handles GET /api/search.
//
//	@Summary		Full-text search across spots and events
//	@Tags			search
//	@Produce		json
//	@Param			q		query		string	true	"Search query"
//	@Param			limit	query		int		false	"Max results"
//	@Success		200		{object}	SearchResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'q' is required"))
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	results, err := h.svc.Search(q, limit)
	if err != nil {
		slog.Error("search failed", slog.String("query", q), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, SearchResponse{Results: results})
}

// Calendar handles GET /api/calendar.
//
//	@Summary		Get the whole date-keyed calendar index
//	@Tags			calendar
//	@Produce		json
//	@Success		200	{object}	map[string][]models.CalendarItem
//	@Security		BearerAuth
//	@Router			/calendar [get]
func (h *Handler) Calendar(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.CalendarMap())
}

// CalendarDay handles GET /api/calendar/{date}.
//
//	@Summary		Get the items filed under one date
//	@Tags			calendar
//	@Produce		json
//	@Param			date	path		string	true	"Date (YYYY-MM-DD)"
//	@Success		200		{object}	DayResponse
//	@Security		BearerAuth
//	@Router			/calendar/{date} [get]
func (h *Handler) CalendarDay(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	writeJSON(w, http.StatusOK, DayResponse{Date: date, Items: h.svc.CalendarDay(date)})
}

// CalendarDays handles GET /api/calendar/days.
//
//	@Summary		Per-day has-items markers for one month
//	@Tags			calendar
//	@Produce		json
//	@Param			year	query		int	true	"Year"
//	@Param			month	query		int	true	"Month (1-12)"
//	@Success		200		{object}	map[string]any
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/calendar/days [get]
func (h *Handler) CalendarDays(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'year' is required"))
		return
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'month' must be 1-12"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"days": h.svc.CalendarMonth(year, time.Month(month)),
	})
}

// CalendarFeed handles GET /api/calendar/feed.ics.
//
//	@Summary		iCalendar export of the whole calendar
//	@Tags			calendar
//	@Produce		text/calendar
//	@Success		200	{string}	string
//	@Security		BearerAuth
//	@Router			/calendar/feed.ics [get]
func (h *Handler) CalendarFeed(w http.ResponseWriter, _ *http.Request) {
	feed, err := h.svc.CalendarFeed("Roll'n'Connect", time.Now())
	if err != nil {
		slog.Error("calendar feed failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(feed))
}
