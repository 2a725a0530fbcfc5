// Package planner computes how many transport units a session needs and
// which units to surface for assignment.
package planner

import (
	"github.com/calaazul/diveops/pkg/core/assignment"
	"github.com/calaazul/diveops/pkg/core/model"
)

// DefaultStaffBaseline is the assumed staff count per boat (captain plus
// one guide) used to estimate headroom before any staff is assigned.
const DefaultStaffBaseline = 2

// Planner tracks the unit inventory for a slot and the needed/show-all view
// toggle.
type Planner struct {
	units         []model.Unit
	staffBaseline int
	showAll       bool
}

// New builds a Planner for a slot. Boat-based slots surface the location's
// active boats in inventory order; shore-based slots surface the single
// shore group.
func New(boats []model.Boat, requiresBoats bool, staffBaseline int) *Planner {
	if staffBaseline <= 0 {
		staffBaseline = DefaultStaffBaseline
	}
	p := &Planner{staffBaseline: staffBaseline}
	if !requiresBoats {
		p.units = []model.Unit{model.ShoreUnit()}
		return p
	}
	for _, b := range boats {
		if b.Active {
			p.units = append(p.units, model.UnitFromBoat(b))
		}
	}
	return p
}

// Units returns every unit at the location, in inventory order
func (p *Planner) Units() []model.Unit {
	return p.units
}

// MinimumUnits estimates how many units the roster needs: the roster size
// divided by the average per-unit diver headroom, rounded up. Before any
// staff is assigned the estimate uses the first boat's capacity minus the
// staff baseline. The estimate is not capped at the available inventory;
// a shortfall is the caller's to surface.
func (p *Planner) MinimumUnits(rosterSize int, store *assignment.Store) int {
	if rosterSize == 0 || len(p.units) == 0 {
		return 0
	}
	if p.units[0].Shore {
		return 1
	}

	staffAssigned := false
	totalHeadroom := 0
	for _, u := range p.units {
		count := store.Staff(u.ID).Count()
		if count > 0 {
			staffAssigned = true
		}
		totalHeadroom += u.Capacity - count
	}

	var avg int
	if staffAssigned {
		// Truncating the average under-counts per-unit headroom, so the
		// estimate errs toward surfacing one unit too many rather than too few
		avg = totalHeadroom / len(p.units)
	} else {
		avg = p.units[0].Capacity - p.staffBaseline
	}
	if avg < 1 {
		avg = 1
	}
	return (rosterSize + avg - 1) / avg
}

// ShowAll reports whether the planner is in the show-all view
func (p *Planner) ShowAll() bool {
	return p.showAll
}

// SetShowAll toggles between the needed view and the show-all view
func (p *Planner) SetShowAll(showAll bool) {
	p.showAll = showAll
}

// VisibleUnits returns the units the caller should present. The needed
// view contains every unit holding an assignment plus just enough empty
// units, in inventory order, to reach the minimum estimate. A unit that
// holds an assignment is never hidden.
func (p *Planner) VisibleUnits(rosterSize int, store *assignment.Store) []model.Unit {
	if p.showAll {
		return p.units
	}

	needed := p.MinimumUnits(rosterSize, store)
	if needed > len(p.units) {
		needed = len(p.units)
	}

	visible := make([]model.Unit, 0, len(p.units))
	for _, u := range p.units {
		if store.HasAssignments(u.ID) || len(visible) < needed {
			visible = append(visible, u)
		}
	}
	return visible
}

// EnsureVisible switches to the show-all view if the given unit is not in
// the current view, so an assignment never lands on a hidden unit.
func (p *Planner) EnsureVisible(unitID string, rosterSize int, store *assignment.Store) {
	for _, u := range p.VisibleUnits(rosterSize, store) {
		if u.ID == unitID {
			return
		}
	}
	p.showAll = true
}
