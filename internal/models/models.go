// Package models defines the domain types for Roll'n'Connect.
package models

import "strings"

// Category classifies a spot for map filtering.
type Category string

// Spot categories.
const (
	CategoryWater       Category = "water"
	CategoryMedical     Category = "medical"
	CategoryFood        Category = "food"
	CategoryPavedTrail  Category = "paved_trail"
	CategoryParkingDeck Category = "parking_deck"
	CategoryParkingLot  Category = "parking_lot"
	CategorySkatingRink Category = "skating_rink"
)

var categoryLabels = map[Category]string{
	CategoryWater:       "Water",
	CategoryMedical:     "Medical Supplies",
	CategoryFood:        "Food",
	CategoryPavedTrail:  "Paved Trails",
	CategoryParkingDeck: "Parking Decks",
	CategoryParkingLot:  "Parking Lots",
	CategorySkatingRink: "Skating Rinks",
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Label returns the display label for c, falling back to the raw value.
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

// Categories returns all known categories in a stable order.
func Categories() []Category {
	return []Category{
		CategoryWater, CategoryMedical, CategoryFood, CategoryPavedTrail,
		CategoryParkingDeck, CategoryParkingLot, CategorySkatingRink,
	}
}

// CategorySet is a set of categories used as an OR-combined spot filter.
// The empty set matches everything.
type CategorySet map[Category]struct{}

// ParseCategorySet builds a CategorySet from a comma-separated list.
// Unknown names are ignored; an empty input yields the empty set.
func ParseCategorySet(s string) CategorySet {
	set := CategorySet{}
	for _, part := range strings.Split(s, ",") {
		c := Category(strings.TrimSpace(part))
		if c.Valid() {
			set[c] = struct{}{}
		}
	}
	return set
}

// Empty reports whether the set matches everything.
func (s CategorySet) Empty() bool { return len(s) == 0 }

// Contains reports whether c is in the set.
func (s CategorySet) Contains(c Category) bool {
	_, ok := s[c]
	return ok
}

// Position is a WGS84 coordinate.
type Position struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Event is a community event that users can join.
type Event struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Date        string `json:"date"` // ISO day, e.g. "2026-02-20"
	Time        string `json:"time"` // "HH:MM", may be empty
	Location    string `json:"location"`
	Description string `json:"description"`
}

// Spot is a static point of interest shown on the map.
type Spot struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    Category  `json:"category"`
	City        string    `json:"city"`
	Description string    `json:"description"`
	Position    *Position `json:"position,omitempty"`
}

// Pin is the marker payload handed to the map collaborator.
type Pin struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category Category `json:"category"`
	Lat      float64  `json:"lat"`
	Lng      float64  `json:"lng"`
}

// Item kinds placed into calendar date buckets.
const (
	ItemKindEvent       = "event"
	ItemKindSpotSession = "spot-session"
)

// CalendarItem is a reference record in a date bucket: either an event
// join or a logged spot session.
type CalendarItem struct {
	Kind     string `json:"kind"`
	RefID    string `json:"ref_id"`
	Title    string `json:"title"`
	Time     string `json:"time,omitempty"`
	Location string `json:"location,omitempty"`
	Note     string `json:"note,omitempty"`
}

// Comment is a single comment on a post.
type Comment struct {
	Author string `json:"author"`
	Text   string `json:"text"`
}

// Post is a short video piece on the profile. Likes are capped at one
// per piece.
type Post struct {
	ID       string    `json:"id"`
	VideoURL string    `json:"video_url"`
	Caption  string    `json:"caption"`
	Likes    int       `json:"likes"`
	Comments []Comment `json:"comments"`
}

// Profile is the local user's profile. Username always carries the "@"
// prefix. SavedSpots and JoinedEvents hold raw ids with no referential
// check against the registries.
type Profile struct {
	Username     string   `json:"username"`
	Bio          string   `json:"bio"`
	AvatarURL    string   `json:"avatar_url"`
	ClipURL      string   `json:"clip_url"`
	Posts        []Post   `json:"posts"`
	SavedSpots   []string `json:"saved_spots"`
	JoinedEvents []string `json:"joined_events"`
}

// Counts are the three profile display counters.
type Counts struct {
	Posts        int `json:"posts"`
	JoinedEvents int `json:"joined_events"`
	SavedSpots   int `json:"saved_spots"`
}
