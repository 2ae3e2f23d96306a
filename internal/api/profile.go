package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rollnconnect/rollconnect/internal/apperr"
)

// GetProfile handles GET /api/profile.
//
//	@Summary		Get the profile with derived counters
//	@Tags			profile
//	@Produce		json
//	@Success		200	{object}	ProfileResponse
//	@Security		BearerAuth
//	@Router			/profile [get]
func (h *Handler) GetProfile(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, ProfileResponse{
		Profile: h.svc.Profile(),
		Counts:  h.svc.Counts(),
	})
}

// UpdateProfile handles PUT /api/profile.
//
//	@Summary		Edit the profile; omitted fields are kept
//	@Tags			profile
//	@Accept			json
//	@Produce		json
//	@Param			body	body		UpdateProfileRequest	true	"Fields to change"
//	@Success		200		{object}	models.Profile
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/profile [put]
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	profile, err := h.svc.UpdateProfile(req)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// CreatePost handles POST /api/posts.
//
//	@Summary		Create a post
//	@Tags			posts
//	@Accept			json
//	@Produce		json
//	@Param			body	body		CreatePostRequest	true	"Post to create"
//	@Success		201		{object}	models.Post
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/posts [post]
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	post, err := h.svc.CreatePost(req)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	writeJSON(w, http.StatusCreated, post)
}

// LikePost handles POST /api/posts/{id}/like.
//
//	@Summary		Like a post (caps at one like)
//	@Tags			posts
//	@Produce		json
//	@Param			id	path		string	true	"Post id"
//	@Success		200	{object}	models.Post
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/posts/{id}/like [post]
func (h *Handler) LikePost(w http.ResponseWriter, r *http.Request) {
	post, err := h.svc.LikePost(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// CommentPost handles POST /api/posts/{id}/comments.
//
//	@Summary		Comment on a post
//	@Tags			posts
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string			true	"Post id"
//	@Param			body	body		CommentRequest	true	"Comment text"
//	@Success		201		{object}	models.Post
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/posts/{id}/comments [post]
func (h *Handler) CommentPost(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	post, err := h.svc.CommentPost(chi.URLParam(r, "id"), req.Text)
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrNotFound):
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		case errors.Is(err, apperr.ErrInvalid):
			writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		default:
			slog.Error("comment failed", slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusCreated, post)
}
