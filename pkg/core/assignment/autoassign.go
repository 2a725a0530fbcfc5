package assignment

import "github.com/calaazul/diveops/pkg/core/model"

// UnitState is a snapshot of a unit's remaining capacity and the skill mix
// of divers already on it, used by the placement strategies.
type UnitState struct {
	Unit      model.Unit
	Headroom  int // remaining diver spots; meaningless when Unlimited
	Unlimited bool
	Skills    map[model.SkillLevel]int
}

func (u *UnitState) fits(n int) bool {
	return u.Unlimited || u.Headroom >= n
}

// homogeneousFor reports whether the unit is empty or holds only divers of
// the given skill level.
func (u *UnitState) homogeneousFor(skill model.SkillLevel) bool {
	for s, n := range u.Skills {
		if n > 0 && s != skill {
			return false
		}
	}
	return true
}

func (u *UnitState) place(d model.Diver) {
	if !u.Unlimited {
		u.Headroom--
	}
	u.Skills[d.SkillLevel]++
}

// Placement maps unit ids to the divers a strategy wants to put there
type Placement map[string][]model.Diver

// Strategy is a pure placement function: given the still-unassigned divers
// and the current unit states, it proposes a (possibly partial) placement.
// Strategies never mutate their inputs; the caller applies the result.
type Strategy func(unassigned []model.Diver, units []*UnitState) Placement

// singleUnitFit places the entire unassigned group onto the first unit
// whose headroom fits it, preferring one homogeneous group over spreading.
func singleUnitFit(unassigned []model.Diver, units []*UnitState) Placement {
	for _, u := range units {
		if u.fits(len(unassigned)) {
			return Placement{u.Unit.ID: unassigned}
		}
	}
	return nil
}

// skillHomogeneous places divers one by one, beginners first, onto units
// that are empty or already hold only divers of the same skill level.
func skillHomogeneous(unassigned []model.Diver, units []*UnitState) Placement {
	states := cloneStates(units)
	placement := make(Placement)
	for _, skill := range []model.SkillLevel{model.SkillBeginner, model.SkillIntermediate, model.SkillAdvanced} {
		for _, d := range unassigned {
			if d.SkillLevel != skill {
				continue
			}
			for _, u := range states {
				if u.fits(1) && u.homogeneousFor(skill) {
					u.place(d)
					placement[u.Unit.ID] = append(placement[u.Unit.ID], d)
					break
				}
			}
		}
	}
	return placement
}

// anyAvailable places each diver onto the first unit with headroom,
// in unit list order.
func anyAvailable(unassigned []model.Diver, units []*UnitState) Placement {
	states := cloneStates(units)
	placement := make(Placement)
	for _, d := range unassigned {
		for _, u := range states {
			if u.fits(1) {
				u.place(d)
				placement[u.Unit.ID] = append(placement[u.Unit.ID], d)
				break
			}
		}
	}
	return placement
}

// Result reports what an auto-assignment pass achieved
type Result struct {
	Placed int

	// Unplaced divers had no headroom anywhere and are left for manual
	// placement. This is a remainder, not a failure.
	Unplaced []model.Diver
}

// AutoAssign bulk-assigns the roster's unassigned divers, merging with the
// existing manual assignments and never overwriting them. The strategies
// run in order: whole-group single-unit fit, then skill-homogeneous
// placement, then any unit with headroom. Repeated calls with the same
// inputs are idempotent.
func AutoAssign(store *Store, roster []model.Diver) Result {
	unassigned := make([]model.Diver, 0, len(roster))
	for _, d := range roster {
		if _, ok := store.DiverUnit(d.ID); !ok {
			unassigned = append(unassigned, d)
		}
	}
	if len(unassigned) == 0 {
		return Result{}
	}

	states := snapshot(store, roster)

	result := Result{}
	for _, strategy := range []Strategy{singleUnitFit, skillHomogeneous, anyAvailable} {
		placement := strategy(unassigned, states)
		if len(placement) == 0 {
			continue
		}
		placed := make(map[string]bool)
		for unitID, divers := range placement {
			for _, d := range divers {
				// Apply to the live store and the snapshot in lockstep
				if err := store.AssignDiver(d.ID, unitID); err != nil {
					continue
				}
				for _, u := range states {
					if u.Unit.ID == unitID {
						u.place(d)
						break
					}
				}
				placed[d.ID] = true
				result.Placed++
			}
		}
		remaining := unassigned[:0:0]
		for _, d := range unassigned {
			if !placed[d.ID] {
				remaining = append(remaining, d)
			}
		}
		unassigned = remaining
		if len(unassigned) == 0 {
			break
		}
	}

	result.Unplaced = unassigned
	return result
}

func snapshot(store *Store, roster []model.Diver) []*UnitState {
	byID := make(map[string]model.Diver, len(roster))
	for _, d := range roster {
		byID[d.ID] = d
	}
	units := store.Units()
	states := make([]*UnitState, 0, len(units))
	for _, u := range units {
		headroom, limited := store.Headroom(u.ID)
		states = append(states, &UnitState{
			Unit:      u,
			Headroom:  headroom,
			Unlimited: !limited,
			Skills:    store.SkillCounts(u.ID, byID),
		})
	}
	return states
}

func cloneStates(units []*UnitState) []*UnitState {
	out := make([]*UnitState, len(units))
	for i, u := range units {
		skills := make(map[model.SkillLevel]int, len(u.Skills))
		for k, v := range u.Skills {
			skills[k] = v
		}
		out[i] = &UnitState{Unit: u.Unit, Headroom: u.Headroom, Unlimited: u.Unlimited, Skills: skills}
	}
	return out
}
