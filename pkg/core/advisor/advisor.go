// Package advisor recommends candidate dive sites for a unit. Suggestions
// are advisory only; any site may still be selected manually.
package advisor

import (
	"time"

	"github.com/calaazul/diveops/pkg/core/model"
)

// RecencyWindowDays is the default lookback for repeat-site exclusion
const RecencyWindowDays = 3

// SuggestionLimit is the default number of candidates returned
const SuggestionLimit = 5

// DifficultyCap returns the maximum site difficulty for a group of divers.
// A single beginner caps the whole unit to beginner-rated sites; any other
// mix, including intermediate-only groups, is uncapped. The bias toward
// safety is deliberate.
func DifficultyCap(divers []model.Diver) model.SkillLevel {
	for _, d := range divers {
		if d.SkillLevel == model.SkillBeginner {
			return model.SkillBeginner
		}
	}
	return model.SkillAdvanced
}

// RecentSiteIDs returns the ids of sites any of the given divers visited,
// via a past booking's linked site, on or after the cutoff date.
func RecentSiteIDs(bookings []model.Booking, diverIDs []string, since string) map[string]bool {
	ids := make(map[string]bool, len(diverIDs))
	for _, id := range diverIDs {
		ids[id] = true
	}
	recent := make(map[string]bool)
	for _, b := range bookings {
		if b.DiveSiteID == "" || b.BookingDate < since {
			continue
		}
		if ids[b.CustomerID] {
			recent[b.DiveSiteID] = true
		}
	}
	return recent
}

// Cutoff formats the recency window's earliest qualifying date
func Cutoff(now time.Time, windowDays int) string {
	if windowDays <= 0 {
		windowDays = RecencyWindowDays
	}
	return now.AddDate(0, 0, -windowDays).Format("2006-01-02")
}

// Suggest returns up to limit candidate sites for a unit, in
// location-inventory order, honouring the group's difficulty cap and the
// recency exclusion. A unit with no divers yet gets the first sites
// unfiltered. The same inputs always yield the same ordered list.
func Suggest(sites []model.DiveSite, divers []model.Diver, recent map[string]bool, limit int) []model.DiveSite {
	if limit <= 0 {
		limit = SuggestionLimit
	}
	if len(divers) == 0 {
		if len(sites) > limit {
			return sites[:limit]
		}
		return sites
	}

	maxDifficulty := DifficultyCap(divers)
	out := make([]model.DiveSite, 0, limit)
	for _, site := range sites {
		if maxDifficulty == model.SkillBeginner && site.Difficulty != model.SkillBeginner {
			continue
		}
		if recent[site.ID] {
			continue
		}
		out = append(out, site)
		if len(out) == limit {
			break
		}
	}
	return out
}
