package api

import (
	"github.com/rollnconnect/rollconnect/internal/community"
	"github.com/rollnconnect/rollconnect/internal/index"
	"github.com/rollnconnect/rollconnect/internal/models"
)

// CreateEventRequest is the request body for creating an event
// (aliased from the domain layer, which validates it).
type CreateEventRequest = community.CreateEventInput

// LogSessionRequest is the request body for logging a spot session.
// The spot id comes from the URL, not the body.
type LogSessionRequest struct {
	Date string `json:"date" example:"2026-03-01" validate:"required"`
	Time string `json:"time" example:"18:00" validate:"required"`
	Note string `json:"note" example:"evening laps"`
}

// UpdateProfileRequest is the request body for editing the profile.
type UpdateProfileRequest = community.UpdateProfileInput

// CreatePostRequest is the request body for creating a post.
type CreatePostRequest = community.CreatePostInput

// CommentRequest is the request body for commenting on a post.
type CommentRequest struct {
	Text string `json:"text" example:"clean line!" validate:"required"`
}

// EventListResponse wraps event listings.
type EventListResponse struct {
	Events []models.Event `json:"events" validate:"required"`
	Total  int            `json:"total" example:"2" validate:"required"`
}

// SpotListResponse wraps spot listings.
type SpotListResponse struct {
	Spots []models.Spot `json:"spots" validate:"required"`
	Total int           `json:"total" example:"3" validate:"required"`
}

// PinListResponse wraps the map pin feed.
type PinListResponse struct {
	Pins []models.Pin `json:"pins" validate:"required"`
}

// SearchResponse wraps search results.
type SearchResponse struct {
	Results []index.SearchResult `json:"results" validate:"required"`
}

// ProfileResponse is the profile plus its derived counters.
type ProfileResponse struct {
	Profile models.Profile `json:"profile" validate:"required"`
	Counts  models.Counts  `json:"counts" validate:"required"`
}

// DayResponse is one calendar day bucket. Items is never null.
type DayResponse struct {
	Date  string                `json:"date" example:"2026-02-20" validate:"required"`
	Items []models.CalendarItem `json:"items" validate:"required"`
}
