package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calaazul/diveops/pkg/core/assignment"
	"github.com/calaazul/diveops/pkg/core/model"
)

func testBoats() []model.Boat {
	return []model.Boat{
		{ID: "boat-1", Name: "Calypso", Capacity: 10, Active: true},
		{ID: "boat-2", Name: "Nautilus", Capacity: 10, Active: true},
		{ID: "boat-3", Name: "Manta", Capacity: 6, Active: false},
	}
}

func TestNew_BoatSlotSurfacesActiveBoats(t *testing.T) {
	p := New(testBoats(), true, 0)
	units := p.Units()
	require.Len(t, units, 2, "Inactive boats are not planning units")
	assert.Equal(t, "boat-1", units[0].ID)
	assert.Equal(t, "boat-2", units[1].ID)
}

func TestNew_ShoreSlotSurfacesShoreGroup(t *testing.T) {
	p := New(testBoats(), false, 0)
	units := p.Units()
	require.Len(t, units, 1)
	assert.True(t, units[0].Shore)
}

func TestMinimumUnits_BaselineEstimate(t *testing.T) {
	p := New(testBoats(), true, 2)
	store := assignment.New(p.Units())

	// 9 divers over (10 - 2) headroom per boat rounds up to 2
	assert.Equal(t, 2, p.MinimumUnits(9, store))
	assert.Equal(t, 1, p.MinimumUnits(8, store))
	assert.Equal(t, 0, p.MinimumUnits(0, store))
}

func TestMinimumUnits_RefinesOnceStaffAssigned(t *testing.T) {
	p := New(testBoats(), true, 2)
	store := assignment.New(p.Units())
	require.NoError(t, store.SetCaptain("boat-1", "pete"))

	// Real headroom: (10-1) + (10-0) = 19 over 2 units -> avg 9
	assert.Equal(t, 1, p.MinimumUnits(9, store))
	assert.Equal(t, 2, p.MinimumUnits(10, store))
}

func TestMinimumUnits_NotCappedAtInventory(t *testing.T) {
	p := New(testBoats(), true, 2)
	store := assignment.New(p.Units())

	// 40 divers need 5 boats; only 2 exist. The shortfall is surfaced, not
	// hidden.
	assert.Equal(t, 5, p.MinimumUnits(40, store))
}

func TestMinimumUnits_ShoreAlwaysOne(t *testing.T) {
	p := New(nil, false, 2)
	store := assignment.New(p.Units())
	assert.Equal(t, 1, p.MinimumUnits(50, store))
}

func TestVisibleUnits_NeededViewShowsEstimate(t *testing.T) {
	p := New(testBoats(), true, 2)
	store := assignment.New(p.Units())

	visible := p.VisibleUnits(8, store)
	require.Len(t, visible, 1)
	assert.Equal(t, "boat-1", visible[0].ID)

	visible = p.VisibleUnits(9, store)
	assert.Len(t, visible, 2)
}

func TestVisibleUnits_AssignedUnitNeverHidden(t *testing.T) {
	p := New(testBoats(), true, 2)
	store := assignment.New(p.Units())
	require.NoError(t, store.AssignDiver("alice", "boat-2"))

	visible := p.VisibleUnits(1, store)
	ids := make([]string, 0, len(visible))
	for _, u := range visible {
		ids = append(ids, u.ID)
	}
	assert.Contains(t, ids, "boat-2", "A unit holding an assignment stays visible")
}

func TestVisibleUnits_ShowAllOverrides(t *testing.T) {
	p := New(testBoats(), true, 2)
	store := assignment.New(p.Units())

	p.SetShowAll(true)
	assert.Len(t, p.VisibleUnits(1, store), 2)
}

func TestEnsureVisible_FlipsToShowAll(t *testing.T) {
	p := New(testBoats(), true, 2)
	store := assignment.New(p.Units())

	// boat-2 is hidden in the needed view for a small roster
	p.EnsureVisible("boat-2", 1, store)
	assert.True(t, p.ShowAll())
}

func TestEnsureVisible_NoopWhenAlreadyVisible(t *testing.T) {
	p := New(testBoats(), true, 2)
	store := assignment.New(p.Units())

	p.EnsureVisible("boat-1", 1, store)
	assert.False(t, p.ShowAll())
}
