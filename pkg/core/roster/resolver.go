// Package roster resolves which divers are in play for a session slot and
// whether the slot is boat-based or shore-based.
package roster

import (
	"strings"

	"github.com/calaazul/diveops/pkg/core/model"
)

// Roster is the set of divers with a qualifying booking for a slot
type Roster struct {
	Divers []model.Diver

	// RequiresBoats classifies the slot. Night sessions are always shore;
	// otherwise any boat-requiring booking makes the slot boat-based.
	RequiresBoats bool
}

// Resolve returns the divers with a confirmed-or-paid booking matching the
// given date, session and location, plus the slot's boat classification.
//
// Absent date or location inputs resolve to an empty roster, not an error.
// With no matching bookings, the slot is boat-based exactly when the
// location has boats (the conservative default).
func Resolve(date string, session model.SessionTag, locationID string, bookings []model.Booking, divers []model.Diver, locationHasBoats bool) Roster {
	matched := make([]model.Booking, 0)
	if date != "" && locationID != "" {
		for _, b := range bookings {
			if b.BookingDate != date || b.LocationID != locationID {
				continue
			}
			if !b.CountsTowardRoster() {
				continue
			}
			if b.Activity == nil || !b.Activity.MatchesSession(session) {
				continue
			}
			matched = append(matched, b)
		}
	}

	customerIDs := make(map[string]bool, len(matched))
	for _, b := range matched {
		customerIDs[b.CustomerID] = true
	}

	// Preserve the diver inventory's ordering
	roster := make([]model.Diver, 0, len(customerIDs))
	for _, d := range divers {
		if customerIDs[d.ID] {
			roster = append(roster, d)
		}
	}

	return Roster{
		Divers:        roster,
		RequiresBoats: requiresBoats(session, matched, locationHasBoats),
	}
}

func requiresBoats(session model.SessionTag, matched []model.Booking, locationHasBoats bool) bool {
	// Night dives are always from the shore
	if session == model.SessionNight {
		return false
	}
	if len(matched) == 0 {
		return locationHasBoats
	}
	for _, b := range matched {
		if b.Activity.RequiresBoat() {
			return true
		}
	}
	return false
}

// Filter narrows a roster by a case-insensitive name or email substring.
// An empty query returns the input unchanged.
func Filter(divers []model.Diver, query string) []model.Diver {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return divers
	}
	filtered := make([]model.Diver, 0, len(divers))
	for _, d := range divers {
		if strings.Contains(strings.ToLower(d.FullName()), q) ||
			strings.Contains(strings.ToLower(d.Email), q) {
			filtered = append(filtered, d)
		}
	}
	return filtered
}
