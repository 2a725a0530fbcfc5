// Package validate computes the blocking issues that must be resolved
// before a session's plans may be committed.
package validate

import (
	"fmt"

	"github.com/calaazul/diveops/pkg/core/assignment"
	"github.com/calaazul/diveops/pkg/core/model"
)

// UnitIssues is the blocking issues found for one unit
type UnitIssues struct {
	UnitID   string
	UnitName string
	Issues   []string
}

// Input is everything the validator reads. It only reads; the assignment
// store is never mutated here.
type Input struct {
	Session model.SessionTag

	// ShoreSiteName designates the shore-accessible site (matched by name)
	ShoreSiteName string

	Store *assignment.Store

	// PlannedSites maps unit id to the planned site id ("" = none chosen)
	PlannedSites map[string]string

	// Sites indexes the location's site inventory by id
	Sites map[string]model.DiveSite
}

// Check returns the blocking issues grouped by unit. Units with zero
// assigned divers are exempt from every check; they are simply not
// committed. An empty result means the plan may be committed.
func Check(in Input) []UnitIssues {
	var all []UnitIssues
	staffSeen := make(map[string]string) // staff id -> unit name first seen on

	for _, unit := range in.Store.Units() {
		diverCount := in.Store.AssignedDiverCount(unit.ID)
		if diverCount == 0 {
			continue
		}

		var issues []string
		staff := in.Store.Staff(unit.ID)
		siteID := in.PlannedSites[unit.ID]

		if requiresCaptain(unit, siteID, in) && staff.CaptainID == "" {
			issues = append(issues, "captain required for boat dives")
		}
		if in.Session.RequiresGuide() && len(staff.GuideIDs) == 0 {
			issues = append(issues, "at least one guide required for morning/afternoon dives")
		}
		if headroom, limited := in.Store.Headroom(unit.ID); limited && headroom < 0 {
			issues = append(issues, fmt.Sprintf("over capacity: %d too many divers", -headroom))
		}
		if siteID == "" {
			issues = append(issues, "no dive site planned")
		}

		// The store's move semantics make a double booking structurally
		// impossible; re-check anyway in case the store was rebuilt from
		// divergent inputs.
		for _, staffID := range staffMembers(staff) {
			if prev, ok := staffSeen[staffID]; ok {
				issues = append(issues, fmt.Sprintf("staff %s already assigned to %s", staffID, prev))
			} else {
				staffSeen[staffID] = unit.Name
			}
		}

		if len(issues) > 0 {
			all = append(all, UnitIssues{UnitID: unit.ID, UnitName: unit.Name, Issues: issues})
		}
	}
	return all
}

// requiresCaptain: every boat dive needs a captain unless the planned site
// is shore-accessible for this session. The shore group never needs one.
func requiresCaptain(unit model.Unit, siteID string, in Input) bool {
	if unit.Shore {
		return false
	}
	if in.Session == model.SessionNight {
		return false
	}
	if site, ok := in.Sites[siteID]; ok {
		return !site.ShoreAccessible(in.ShoreSiteName, in.Session)
	}
	return true
}

func staffMembers(s assignment.StaffSet) []string {
	members := make([]string, 0, s.Count())
	if s.CaptainID != "" {
		members = append(members, s.CaptainID)
	}
	members = append(members, s.GuideIDs...)
	members = append(members, s.TraineeIDs...)
	return members
}

// Flatten renders every issue as a "<unit>: <issue>" line, preserving
// order, so callers can surface the full list at once.
func Flatten(all []UnitIssues) []string {
	var lines []string
	for _, ui := range all {
		for _, issue := range ui.Issues {
			lines = append(lines, fmt.Sprintf("%s: %s", ui.UnitName, issue))
		}
	}
	return lines
}
