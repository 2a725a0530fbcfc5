package db

import "time"

// Booking is a booking record read from the booking collaborator
type Booking struct {
	ID            string
	CustomerID    string
	LocationID    string
	BookingDate   string // "2006-01-02"
	Status        string
	PaymentStatus string

	// ActivityType is set for single-activity bookings; empty means the
	// booking is a diving booking described by the session flags below.
	ActivityType string

	SessionMorning   bool
	SessionMidday    bool
	SessionAfternoon bool
	SessionNight     bool

	// DiveSiteID links the booking to the site actually dived, if recorded
	DiveSiteID string
}

// Customer is a customer record read from the customer collaborator
type Customer struct {
	ID             string
	FirstName      string
	LastName       string
	Email          string
	SkillLevel     string
	Gender         string
	Nationality    string
	Certifications []string
	OwnEquipment   bool
	TankSize       string
	BCDSize        string
	FinsSize       string
	BootsSize      string
	WetsuitSize    string
}

// Boat is a boat inventory record
type Boat struct {
	ID         string
	Name       string
	Capacity   int
	LocationID string
	Active     bool
}

// Staff is a staff inventory record
type Staff struct {
	ID     string
	Name   string
	Role   string
	Active bool
}

// DiveSite is a dive-site inventory record
type DiveSite struct {
	ID              string
	Name            string
	LocationID      string
	DifficultyLevel string
}

// DiveOperationPlan is the persisted unit of work: one plan per unit per
// session per date. Plans are created at commit time and mutated only by
// the post-operation review; they are never deleted by this module.
type DiveOperationPlan struct {
	ID         string
	LocationID string
	Date       string // "2006-01-02"
	Session    string

	// BoatID is empty for the shore group
	BoatID string

	DiverIDs   []string
	CaptainID  string
	GuideIDs   []string
	TraineeIDs []string

	PlannedSiteID string

	// ActualSiteID is only meaningful once Completed; until then it
	// defaults to the planned site.
	ActualSiteID string

	Confirmed bool
	Completed bool

	EntryTime string
	ExitTime  string
	Notes     string

	CreatedAt time.Time
}

// IsShore reports whether the plan belongs to the shore group
func (p *DiveOperationPlan) IsShore() bool {
	return p.BoatID == ""
}
