package index

import (
	"log/slog"

	"github.com/rollnconnect/rollconnect/internal/models"
)

// Sync brings the index up to date with the in-memory registries.
// Upserts are idempotent; spots and events are never deleted, so no
// stale-entry pass is needed.
func Sync(db Discovery, spots []models.Spot, events []models.Event, logger *slog.Logger) error {
	for _, s := range spots {
		if err := db.UpsertSpot(s); err != nil {
			logger.Warn("sync: spot index failed", slog.String("id", s.ID), slog.String("error", err.Error()))
		}
	}
	for _, e := range events {
		if err := db.UpsertEvent(e); err != nil {
			logger.Warn("sync: event index failed", slog.String("id", e.ID), slog.String("error", err.Error()))
		}
	}
	logger.Debug("sync: completed",
		slog.Int("spots", len(spots)),
		slog.Int("events", len(events)))
	return nil
}
