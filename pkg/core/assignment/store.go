// Package assignment owns the in-memory working set of an editing session:
// which divers and staff sit on which unit. All mutation goes through the
// Store so the exclusivity invariants hold by construction.
package assignment

import (
	"fmt"
	"slices"

	"github.com/calaazul/diveops/pkg/core/model"
)

// StaffSet is the staff assigned to a single unit
type StaffSet struct {
	CaptainID  string
	GuideIDs   []string
	TraineeIDs []string
}

// Count returns the number of staff on the unit, captain included
func (s StaffSet) Count() int {
	count := len(s.GuideIDs) + len(s.TraineeIDs)
	if s.CaptainID != "" {
		count++
	}
	return count
}

// Contains reports whether the staff member holds any role on the unit
func (s StaffSet) Contains(staffID string) bool {
	return s.CaptainID == staffID ||
		slices.Contains(s.GuideIDs, staffID) ||
		slices.Contains(s.TraineeIDs, staffID)
}

func (s StaffSet) clone() StaffSet {
	return StaffSet{
		CaptainID:  s.CaptainID,
		GuideIDs:   slices.Clone(s.GuideIDs),
		TraineeIDs: slices.Clone(s.TraineeIDs),
	}
}

// Store holds diver->unit and staff->unit assignments for the session being
// edited. A diver or staff member appears on at most one unit; assigning to
// a new unit moves them, never duplicates them.
type Store struct {
	units        []model.Unit
	unitByID     map[string]model.Unit
	diversByUnit map[string][]string
	unitByDiver  map[string]string
	staffByUnit  map[string]*StaffSet
}

// New creates a Store over the given units, in inventory order
func New(units []model.Unit) *Store {
	s := &Store{
		units:        slices.Clone(units),
		unitByID:     make(map[string]model.Unit, len(units)),
		diversByUnit: make(map[string][]string),
		unitByDiver:  make(map[string]string),
		staffByUnit:  make(map[string]*StaffSet),
	}
	for _, u := range units {
		s.unitByID[u.ID] = u
		s.staffByUnit[u.ID] = &StaffSet{}
	}
	return s
}

// Units returns the units in inventory order
func (s *Store) Units() []model.Unit {
	return slices.Clone(s.units)
}

// Unit looks up a unit by id
func (s *Store) Unit(unitID string) (model.Unit, bool) {
	u, ok := s.unitByID[unitID]
	return u, ok
}

// AssignDiver places a diver on a unit, removing them from any unit they
// previously occupied. An empty unitID unassigns the diver.
func (s *Store) AssignDiver(diverID, unitID string) error {
	if unitID == "" {
		s.UnassignDiver(diverID)
		return nil
	}
	if _, ok := s.unitByID[unitID]; !ok {
		return fmt.Errorf("unknown unit %q", unitID)
	}
	s.UnassignDiver(diverID)
	s.diversByUnit[unitID] = append(s.diversByUnit[unitID], diverID)
	s.unitByDiver[diverID] = unitID
	return nil
}

// UnassignDiver removes a diver from whichever unit holds them
func (s *Store) UnassignDiver(diverID string) {
	unitID, ok := s.unitByDiver[diverID]
	if !ok {
		return
	}
	delete(s.unitByDiver, diverID)
	s.diversByUnit[unitID] = slices.DeleteFunc(s.diversByUnit[unitID], func(id string) bool {
		return id == diverID
	})
}

// DiverUnit returns the unit a diver is assigned to, if any
func (s *Store) DiverUnit(diverID string) (string, bool) {
	unitID, ok := s.unitByDiver[diverID]
	return unitID, ok
}

// DiversOn returns the ordered diver ids assigned to a unit
func (s *Store) DiversOn(unitID string) []string {
	return slices.Clone(s.diversByUnit[unitID])
}

// AssignedDiverCount returns how many divers sit on a unit
func (s *Store) AssignedDiverCount(unitID string) int {
	return len(s.diversByUnit[unitID])
}

// SetCaptain assigns a captain to a unit, clearing any role the staff
// member held elsewhere. An empty staffID clears the captain.
// The shore group never takes a captain.
func (s *Store) SetCaptain(unitID, staffID string) error {
	unit, ok := s.unitByID[unitID]
	if !ok {
		return fmt.Errorf("unknown unit %q", unitID)
	}
	if unit.Shore && staffID != "" {
		return fmt.Errorf("shore group takes no captain")
	}
	if staffID != "" {
		s.removeStaff(staffID)
	}
	s.staffByUnit[unitID].CaptainID = staffID
	return nil
}

// SetGuides replaces a unit's guide set. Each newly added guide is first
// removed from any role they held on another unit.
func (s *Store) SetGuides(unitID string, staffIDs []string) error {
	if _, ok := s.unitByID[unitID]; !ok {
		return fmt.Errorf("unknown unit %q", unitID)
	}
	for _, id := range staffIDs {
		s.removeStaff(id)
	}
	s.staffByUnit[unitID].GuideIDs = slices.Clone(staffIDs)
	return nil
}

// SetTrainees replaces a unit's trainee set, with the same move semantics
// as SetGuides.
func (s *Store) SetTrainees(unitID string, staffIDs []string) error {
	if _, ok := s.unitByID[unitID]; !ok {
		return fmt.Errorf("unknown unit %q", unitID)
	}
	for _, id := range staffIDs {
		s.removeStaff(id)
	}
	s.staffByUnit[unitID].TraineeIDs = slices.Clone(staffIDs)
	return nil
}

func (s *Store) removeStaff(staffID string) {
	for _, set := range s.staffByUnit {
		if set.CaptainID == staffID {
			set.CaptainID = ""
		}
		set.GuideIDs = slices.DeleteFunc(set.GuideIDs, func(id string) bool { return id == staffID })
		set.TraineeIDs = slices.DeleteFunc(set.TraineeIDs, func(id string) bool { return id == staffID })
	}
}

// Staff returns a copy of the staff assigned to a unit
func (s *Store) Staff(unitID string) StaffSet {
	set, ok := s.staffByUnit[unitID]
	if !ok {
		return StaffSet{}
	}
	return set.clone()
}

// StaffUnit returns the unit a staff member is assigned to, if any
func (s *Store) StaffUnit(staffID string) (string, bool) {
	for _, u := range s.units {
		if s.staffByUnit[u.ID].Contains(staffID) {
			return u.ID, true
		}
	}
	return "", false
}

// Headroom returns the remaining diver capacity of a unit: seat capacity
// minus assigned staff minus assigned divers. The second return is false
// for the shore group, which has no modelled capacity limit.
func (s *Store) Headroom(unitID string) (int, bool) {
	unit, ok := s.unitByID[unitID]
	if !ok || unit.Shore {
		return 0, false
	}
	return unit.Capacity - s.staffByUnit[unitID].Count() - len(s.diversByUnit[unitID]), true
}

// SkillCounts tallies the skill levels of a unit's assigned divers.
// Divers missing from the lookup are counted as beginners.
func (s *Store) SkillCounts(unitID string, diversByID map[string]model.Diver) map[model.SkillLevel]int {
	counts := make(map[model.SkillLevel]int)
	for _, id := range s.diversByUnit[unitID] {
		skill := model.SkillBeginner
		if d, ok := diversByID[id]; ok {
			skill = d.SkillLevel
		}
		counts[skill]++
	}
	return counts
}

// HasAssignments reports whether the unit holds any diver or staff
func (s *Store) HasAssignments(unitID string) bool {
	if len(s.diversByUnit[unitID]) > 0 {
		return true
	}
	set, ok := s.staffByUnit[unitID]
	return ok && set.Count() > 0
}

// Clear drops every diver and staff assignment in the working set.
// Persisted plans are untouched; only the in-memory edit is discarded.
func (s *Store) Clear() {
	s.diversByUnit = make(map[string][]string)
	s.unitByDiver = make(map[string]string)
	for id := range s.staffByUnit {
		s.staffByUnit[id] = &StaffSet{}
	}
}
