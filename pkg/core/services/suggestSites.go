package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/calaazul/diveops/pkg/core/advisor"
	"github.com/calaazul/diveops/pkg/core/model"
	"github.com/calaazul/diveops/pkg/db"
)

// SuggestSitesStore defines the database operations needed for site
// suggestions
type SuggestSitesStore interface {
	GetBookingsSince(ctx context.Context, since string) ([]db.Booking, error)
}

// SuggestSites returns up to the configured number of candidate sites for
// one unit, honouring the group's difficulty cap and the recency
// exclusion window. Suggestions are advisory; the unit's planned site may
// be set to any site.
func SuggestSites(ctx context.Context, database SuggestSitesStore, logger *zap.Logger, session *PlanningSession, unitID string) ([]model.DiveSite, error) {
	if _, ok := session.Store.Unit(unitID); !ok {
		return nil, fmt.Errorf("unknown unit %q", unitID)
	}

	diverIDs := session.Store.DiversOn(unitID)
	divers := make([]model.Diver, 0, len(diverIDs))
	for _, id := range diverIDs {
		if d, ok := session.Diver(id); ok {
			divers = append(divers, d)
		}
	}

	recent := map[string]bool{}
	if len(divers) > 0 {
		cutoff := advisor.Cutoff(time.Now(), session.recencyDays)
		bookingRecords, err := database.GetBookingsSince(ctx, cutoff)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch recent bookings: %w", err)
		}
		bookings := make([]model.Booking, 0, len(bookingRecords))
		for _, b := range bookingRecords {
			bookings = append(bookings, bookingFromRecord(b))
		}
		recent = advisor.RecentSiteIDs(bookings, diverIDs, cutoff)
	}

	suggestions := advisor.Suggest(session.Sites, divers, recent, session.suggestLimit)
	logger.Debug("Site suggestions computed",
		zap.String("unit_id", unitID),
		zap.Int("divers", len(divers)),
		zap.Int("candidates", len(suggestions)))
	return suggestions, nil
}
