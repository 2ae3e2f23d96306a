package community

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/rollnconnect/rollconnect/internal/apperr"
	"github.com/rollnconnect/rollconnect/internal/metrics"
	"github.com/rollnconnect/rollconnect/internal/models"
)

// LogSessionInput is the structured request for logging a spot session.
type LogSessionInput struct {
	SpotID string `json:"spot_id"`
	Date   string `json:"date"`
	Time   string `json:"time"`
	Note   string `json:"note"`
}

// Validate enforces the session contract.
func (r LogSessionInput) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.SpotID, validation.Required),
		validation.Field(&r.Date, validation.Required),
		validation.Field(&r.Time, validation.Required, validation.Match(hhmmRe).Error("must be HH:MM")),
	)
}

// ListSpots returns all spots when the filter set is empty, otherwise
// the spots whose category is in the set (OR-combined).
func (s *Service) ListSpots(filter models.CategorySet) []models.Spot {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Spot, 0, len(s.spots))
	for _, spot := range s.spots {
		if filter.Empty() || filter.Contains(spot.Category) {
			out = append(out, spot)
		}
	}
	return out
}

// FindSpot returns the spot with the given id.
func (s *Service) FindSpot(id string) (models.Spot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findSpotLocked(id)
}

func (s *Service) findSpotLocked(id string) (models.Spot, error) {
	for _, spot := range s.spots {
		if spot.ID == id {
			return spot, nil
		}
	}
	return models.Spot{}, apperr.ErrNotFound
}

// Pins returns the marker payload for the map collaborator: every spot
// with a coordinate, optionally restricted by category filter.
func (s *Service) Pins(filter models.CategorySet) []models.Pin {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Pin, 0, len(s.spots))
	for _, spot := range s.spots {
		if spot.Position == nil {
			continue
		}
		if !filter.Empty() && !filter.Contains(spot.Category) {
			continue
		}
		out = append(out, models.Pin{
			ID:       spot.ID,
			Name:     spot.Name,
			Category: spot.Category,
			Lat:      spot.Position.Lat,
			Lng:      spot.Position.Lng,
		})
	}
	return out
}

// SaveSpot appends the id to the saved-spots set. Re-saving is a
// no-op. The id is stored raw, with no referential check against the
// registry — saved ids may outlive the spots they point to.
func (s *Service) SaveSpot(id string) error {
	if id == "" {
		return fmt.Errorf("%w: spot id is required", apperr.ErrInvalid)
	}

	s.mu.Lock()
	if contains(s.saved, id) {
		s.mu.Unlock()
		return nil
	}
	s.saved = append(s.saved, id)
	s.profile.SavedSpots = append([]string(nil), s.saved...)
	s.persistLocked()
	s.mu.Unlock()

	metrics.SpotsSaved.Inc()
	s.publish("spot.saved", id, "")
	return nil
}

// SavedSpotIDs returns the saved-spot id set in insertion order.
func (s *Service) SavedSpotIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.saved...)
}

// LogSession records a visit to a spot as a calendar item with the
// composite id "<spotID>-<date>-<time>". No dedup beyond the composite
// id coincidentally colliding in display.
func (s *Service) LogSession(in LogSessionInput) (models.CalendarItem, error) {
	if err := in.Validate(); err != nil {
		return models.CalendarItem{}, fmt.Errorf("%w: %s", apperr.ErrInvalid, err)
	}

	s.mu.Lock()
	spot, err := s.findSpotLocked(in.SpotID)
	if err != nil {
		s.mu.Unlock()
		return models.CalendarItem{}, err
	}

	item := models.CalendarItem{
		Kind:  models.ItemKindSpotSession,
		RefID: fmt.Sprintf("%s-%s-%s", in.SpotID, in.Date, in.Time),
		Title: spot.Name,
		Time:  in.Time,
		Note:  in.Note,
	}
	s.cal.Add(in.Date, item)
	s.persistLocked()
	s.mu.Unlock()

	metrics.SessionsLogged.Inc()
	s.publish("session.logged", item.RefID, in.Date)
	return item, nil
}
