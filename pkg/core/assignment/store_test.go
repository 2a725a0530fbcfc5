package assignment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calaazul/diveops/pkg/core/model"
)

func twoBoatUnits() []model.Unit {
	return []model.Unit{
		{ID: "boat-1", Name: "Calypso", Capacity: 10},
		{ID: "boat-2", Name: "Nautilus", Capacity: 6},
	}
}

func TestStore_AssignDiverMovesBetweenUnits(t *testing.T) {
	store := New(twoBoatUnits())

	require.NoError(t, store.AssignDiver("alice", "boat-1"))
	require.NoError(t, store.AssignDiver("alice", "boat-2"))

	unitID, ok := store.DiverUnit("alice")
	require.True(t, ok)
	assert.Equal(t, "boat-2", unitID)
	assert.Empty(t, store.DiversOn("boat-1"), "Moving a diver removes them from the old unit")
	assert.Equal(t, []string{"alice"}, store.DiversOn("boat-2"))
}

func TestStore_AssignDiverEmptyUnitUnassigns(t *testing.T) {
	store := New(twoBoatUnits())
	require.NoError(t, store.AssignDiver("alice", "boat-1"))

	require.NoError(t, store.AssignDiver("alice", ""))
	_, ok := store.DiverUnit("alice")
	assert.False(t, ok)
	assert.Empty(t, store.DiversOn("boat-1"))
}

func TestStore_AssignDiverUnknownUnit(t *testing.T) {
	store := New(twoBoatUnits())
	assert.Error(t, store.AssignDiver("alice", "boat-99"))
}

func TestStore_SetCaptainMovesStaff(t *testing.T) {
	store := New(twoBoatUnits())

	require.NoError(t, store.SetCaptain("boat-1", "pete"))
	require.NoError(t, store.SetCaptain("boat-2", "pete"))

	assert.Empty(t, store.Staff("boat-1").CaptainID, "Captain moved, not duplicated")
	assert.Equal(t, "pete", store.Staff("boat-2").CaptainID)
}

func TestStore_SetCaptainShoreRejected(t *testing.T) {
	store := New([]model.Unit{model.ShoreUnit()})
	assert.Error(t, store.SetCaptain(model.ShoreUnitID, "pete"))
	assert.NoError(t, store.SetCaptain(model.ShoreUnitID, ""), "Clearing is always allowed")
}

func TestStore_GuideMovedOutOfCaptainRole(t *testing.T) {
	store := New(twoBoatUnits())
	require.NoError(t, store.SetCaptain("boat-1", "pete"))

	// Assigning pete as a guide elsewhere clears the captain slot
	require.NoError(t, store.SetGuides("boat-2", []string{"pete"}))

	assert.Empty(t, store.Staff("boat-1").CaptainID)
	assert.Equal(t, []string{"pete"}, store.Staff("boat-2").GuideIDs)

	unitID, ok := store.StaffUnit("pete")
	require.True(t, ok)
	assert.Equal(t, "boat-2", unitID)
}

func TestStore_SetGuidesReplacesSet(t *testing.T) {
	store := New(twoBoatUnits())
	require.NoError(t, store.SetGuides("boat-1", []string{"maria", "jon"}))
	require.NoError(t, store.SetGuides("boat-1", []string{"maria"}))

	assert.Equal(t, []string{"maria"}, store.Staff("boat-1").GuideIDs)
	_, ok := store.StaffUnit("jon")
	assert.False(t, ok, "Dropped guides are fully unassigned")
}

func TestStore_Headroom(t *testing.T) {
	store := New(twoBoatUnits())
	require.NoError(t, store.SetCaptain("boat-1", "pete"))
	require.NoError(t, store.SetGuides("boat-1", []string{"maria"}))
	require.NoError(t, store.AssignDiver("alice", "boat-1"))

	headroom, limited := store.Headroom("boat-1")
	require.True(t, limited)
	assert.Equal(t, 7, headroom, "Capacity 10 minus 2 staff minus 1 diver")
}

func TestStore_HeadroomShoreUnlimited(t *testing.T) {
	store := New([]model.Unit{model.ShoreUnit()})
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, store.AssignDiver(id, model.ShoreUnitID))
	}
	_, limited := store.Headroom(model.ShoreUnitID)
	assert.False(t, limited)
}

func TestStore_SkillCountsMissingDiverCountsAsBeginner(t *testing.T) {
	store := New(twoBoatUnits())
	require.NoError(t, store.AssignDiver("alice", "boat-1"))
	require.NoError(t, store.AssignDiver("ghost", "boat-1"))

	counts := store.SkillCounts("boat-1", map[string]model.Diver{
		"alice": {ID: "alice", SkillLevel: model.SkillAdvanced},
	})
	assert.Equal(t, 1, counts[model.SkillAdvanced])
	assert.Equal(t, 1, counts[model.SkillBeginner])
}

func TestStore_Clear(t *testing.T) {
	store := New(twoBoatUnits())
	require.NoError(t, store.AssignDiver("alice", "boat-1"))
	require.NoError(t, store.SetCaptain("boat-2", "pete"))

	store.Clear()

	assert.False(t, store.HasAssignments("boat-1"))
	assert.False(t, store.HasAssignments("boat-2"))
	_, ok := store.DiverUnit("alice")
	assert.False(t, ok)
}
