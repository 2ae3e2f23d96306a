package community

import "github.com/rollnconnect/rollconnect/internal/models"

// seedEvents returns the starter events installed on first run.
func seedEvents() []models.Event {
	return []models.Event{
		{
			ID:          "event-1",
			Title:       "Night Skate at City Rink",
			Date:        "2026-02-20",
			Time:        "19:00",
			Location:    "City Rink, Amsterdam",
			Description: "Group night skate, all levels welcome.",
		},
		{
			ID:          "event-2",
			Title:       "Canal Trail Session",
			Date:        "2026-02-22",
			Time:        "14:00",
			Location:    "Canal Trail, Amsterdam",
			Description: "Chill cruise along the canal trail.",
		},
	}
}

// seedSpots returns the starter spots installed on first run.
func seedSpots() []models.Spot {
	return []models.Spot{
		{
			ID:          "spot-1",
			Name:        "City Rink",
			Category:    models.CategorySkatingRink,
			City:        "Amsterdam",
			Description: "Outdoor rink with smooth concrete.",
			Position:    &models.Position{Lat: 52.3702, Lng: 4.8952},
		},
		{
			ID:          "spot-2",
			Name:        "Canal Trail",
			Category:    models.CategoryPavedTrail,
			City:        "Amsterdam",
			Description: "Long, smooth trail along the canal.",
			Position:    &models.Position{Lat: 52.3676, Lng: 4.9041},
		},
		{
			ID:          "spot-3",
			Name:        "Deck Garage",
			Category:    models.CategoryParkingDeck,
			City:        "Amsterdam",
			Description: "Covered deck, dry in any weather.",
			Position:    &models.Position{Lat: 52.3720, Lng: 4.9000},
		},
	}
}

// defaultProfile is the profile created on first load.
func defaultProfile() models.Profile {
	return models.Profile{
		Username:     "@username",
		Bio:          "Bio goes here…",
		AvatarURL:    "assets/images/default-avatar.png",
		Posts:        []models.Post{},
		SavedSpots:   []string{},
		JoinedEvents: []string{},
	}
}
