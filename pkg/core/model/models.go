package model

import "strings"

// SkillLevel is a diver's centre-assessed ability rating
type SkillLevel string

const (
	SkillBeginner     SkillLevel = "beginner"
	SkillIntermediate SkillLevel = "intermediate"
	SkillAdvanced     SkillLevel = "advanced"
)

// ParseSkillLevel normalises a stored skill level string.
// Unknown or empty values resolve to beginner, the safest assumption.
func ParseSkillLevel(s string) SkillLevel {
	switch SkillLevel(strings.ToLower(s)) {
	case SkillBeginner, SkillIntermediate, SkillAdvanced:
		return SkillLevel(strings.ToLower(s))
	default:
		return SkillBeginner
	}
}

// SessionTag identifies the time-of-day slot being planned
type SessionTag string

const (
	SessionMorning   SessionTag = "morning"
	SessionMidday    SessionTag = "midday"
	SessionAfternoon SessionTag = "afternoon"
	SessionNight     SessionTag = "night"
)

func (s SessionTag) IsValid() bool {
	return s == SessionMorning || s == SessionMidday || s == SessionAfternoon || s == SessionNight
}

// RequiresGuide reports whether a session needs at least one guide.
// Morning and afternoon dives are guided; midday and night are not.
func (s SessionTag) RequiresGuide() bool {
	return s == SessionMorning || s == SessionAfternoon
}

// EquipmentPreferences holds a diver's equipment mode and rental sizes
type EquipmentPreferences struct {
	OwnEquipment bool
	TankSize     string
	BCDSize      string
	FinsSize     string
	BootsSize    string
	WetsuitSize  string
}

// Diver is a customer on the roster for a session. Owned by the external
// customer collaborator; read-only here.
type Diver struct {
	ID             string
	FirstName      string
	LastName       string
	Email          string
	SkillLevel     SkillLevel
	Gender         string
	Nationality    string
	Certifications []string
	Equipment      EquipmentPreferences
}

func (d Diver) FullName() string {
	return strings.TrimSpace(d.FirstName + " " + d.LastName)
}

// EquipmentSummary renders the roster detail line shown next to a diver,
// e.g. "beginner · Tank: 12L · Own equipment"
func (d Diver) EquipmentSummary() string {
	tank := d.Equipment.TankSize
	if tank == "" {
		tank = "12L"
	}
	var equip string
	if d.Equipment.OwnEquipment {
		equip = "Own equipment"
	} else {
		equip = "Rental (BCD " + orDash(d.Equipment.BCDSize) +
			", Fins " + orDash(d.Equipment.FinsSize) +
			", Boots " + orDash(d.Equipment.BootsSize) +
			", Wetsuit " + orDash(d.Equipment.WetsuitSize) + ")"
	}
	return string(d.SkillLevel) + " · Tank: " + tank + " · " + equip
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// StaffRole is a staff member's operational role
type StaffRole string

const (
	RoleBoatPilot  StaffRole = "boat_pilot"
	RoleInstructor StaffRole = "instructor"
	RoleDivemaster StaffRole = "divemaster"
	RoleAssistant  StaffRole = "assistant"
	RoleIntern     StaffRole = "intern"
)

// CanCaptain reports whether this role may be assigned as a unit's captain
func (r StaffRole) CanCaptain() bool {
	return r == RoleBoatPilot
}

// CanGuide reports whether this role may be assigned as a guide
func (r StaffRole) CanGuide() bool {
	return r == RoleInstructor || r == RoleDivemaster || r == RoleAssistant
}

// CanTrainee reports whether this role may be attached as a trainee
func (r StaffRole) CanTrainee() bool {
	return r == RoleIntern
}

// Staff is a staff member from the staff inventory
type Staff struct {
	ID     string
	Name   string
	Role   StaffRole
	Active bool
}

// Boat is a transport unit from the boat inventory
type Boat struct {
	ID         string
	Name       string
	Capacity   int
	LocationID string
	Active     bool
}

// DiveSite is a site from the dive-site inventory
type DiveSite struct {
	ID         string
	Name       string
	LocationID string
	Difficulty SkillLevel
}

// ShoreAccessible reports whether a dive at this site needs no boat.
// A site is shore-accessible when its name matches the designated shore
// site, or when the session is the night session (always shore-based).
func (s DiveSite) ShoreAccessible(shoreSiteName string, session SessionTag) bool {
	if session == SessionNight {
		return true
	}
	if shoreSiteName == "" {
		return false
	}
	return strings.Contains(strings.ToLower(s.Name), strings.ToLower(shoreSiteName))
}

// ShoreUnitID identifies the singleton shore group unit
const ShoreUnitID = "shore"

// Unit is the thing divers and staff are assigned to: a boat, or the
// single shore group when no boat is required.
type Unit struct {
	ID       string
	Name     string
	Capacity int // ignored when Shore
	Shore    bool
}

// ShoreUnit returns the singleton shore group. It has no seat limit and
// never takes a captain.
func ShoreUnit() Unit {
	return Unit{ID: ShoreUnitID, Name: "Shore Dive", Shore: true}
}

// UnitFromBoat wraps a boat as an assignable unit
func UnitFromBoat(b Boat) Unit {
	return Unit{ID: b.ID, Name: b.Name, Capacity: b.Capacity}
}
