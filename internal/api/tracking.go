package api

import (
	"log/slog"
	"net/http"
)

// Location handles GET /api/location.
//
//	@Summary		Best-effort current position
//	@Tags			location
//	@Produce		json
//	@Success		200	{object}	models.Position
//	@Failure		503	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/location [get]
func (h *Handler) Location(w http.ResponseWriter, r *http.Request) {
	if h.locator == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorBody("location not configured"))
		return
	}
	pos, err := h.locator.Current(r.Context())
	if err != nil {
		slog.Warn("location lookup failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusServiceUnavailable, errorBody("location unavailable"))
		return
	}
	writeJSON(w, http.StatusOK, pos)
}

// TrackerStatus handles GET /api/tracker.
//
//	@Summary		Live tracking status and last known position
//	@Tags			tracker
//	@Produce		json
//	@Success		200	{object}	tracker.Status
//	@Security		BearerAuth
//	@Router			/tracker [get]
func (h *Handler) TrackerStatus(w http.ResponseWriter, _ *http.Request) {
	if h.trk == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorBody("tracking not configured"))
		return
	}
	writeJSON(w, http.StatusOK, h.trk.Status())
}

// TrackerStart handles POST /api/tracker/start.
//
//	@Summary		Start periodic live tracking (idempotent)
//	@Tags			tracker
//	@Produce		json
//	@Success		200	{object}	tracker.Status
//	@Security		BearerAuth
//	@Router			/tracker/start [post]
func (h *Handler) TrackerStart(w http.ResponseWriter, _ *http.Request) {
	if h.trk == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorBody("tracking not configured"))
		return
	}
	h.trk.Start()
	writeJSON(w, http.StatusOK, h.trk.Status())
}

// TrackerStop handles POST /api/tracker/stop.
//
//	@Summary		Stop live tracking
//	@Tags			tracker
//	@Produce		json
//	@Success		200	{object}	tracker.Status
//	@Security		BearerAuth
//	@Router			/tracker/stop [post]
func (h *Handler) TrackerStop(w http.ResponseWriter, _ *http.Request) {
	if h.trk == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorBody("tracking not configured"))
		return
	}
	h.trk.Stop()
	writeJSON(w, http.StatusOK, h.trk.Status())
}
