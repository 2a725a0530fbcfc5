package model

// BookingStatus values that make a booking count toward the roster
const (
	BookingConfirmed = "confirmed"
	PaymentPaid      = "paid"
)

// ActivityType classifies what a booking is for
type ActivityType string

const (
	ActivityBoatDive     ActivityType = "boat_dive"
	ActivityShoreDive    ActivityType = "shore_dive"
	ActivitySnorkeling   ActivityType = "snorkeling"
	ActivityPoolTraining ActivityType = "pool_training"
)

// RequiresBoat reports whether this activity type needs a boat.
// Only the explicitly shore-only types do not; anything unrecognised
// (including an unrecorded type) is assumed to need one.
func (t ActivityType) RequiresBoat() bool {
	switch t {
	case ActivityShoreDive, ActivitySnorkeling, ActivityPoolTraining:
		return false
	default:
		return true
	}
}

// Activity is the tagged union of the two shapes a booking's activity
// takes: a per-day dive session map, or a single session-agnostic activity.
type Activity interface {
	// MatchesSession reports whether the activity covers the given session
	MatchesSession(tag SessionTag) bool

	// RequiresBoat reports whether the activity needs a boat
	RequiresBoat() bool
}

// DivingSessions is a diving booking's per-day session map
type DivingSessions struct {
	Morning   bool
	Midday    bool
	Afternoon bool
	Night     bool
}

func (d DivingSessions) MatchesSession(tag SessionTag) bool {
	switch tag {
	case SessionMorning:
		return d.Morning
	case SessionMidday:
		return d.Midday
	case SessionAfternoon:
		return d.Afternoon
	case SessionNight:
		return d.Night
	default:
		return false
	}
}

// RequiresBoat is the conservative default for dive bookings
func (d DivingSessions) RequiresBoat() bool { return true }

// SingleActivity is a non-diving booking; it matches any session
type SingleActivity struct {
	Type ActivityType
}

func (a SingleActivity) MatchesSession(SessionTag) bool { return true }

func (a SingleActivity) RequiresBoat() bool { return a.Type.RequiresBoat() }

// Booking is an activity booking read from the external booking collaborator
type Booking struct {
	ID            string
	CustomerID    string
	LocationID    string
	BookingDate   string // "2006-01-02"
	Status        string
	PaymentStatus string
	DiveSiteID    string // site linked to a past dive, used for recency
	Activity      Activity
}

// CountsTowardRoster reports whether the booking's status qualifies it
// for planning (confirmed, or already paid)
func (b Booking) CountsTowardRoster() bool {
	return b.Status == BookingConfirmed || b.PaymentStatus == PaymentPaid
}
