package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calaazul/diveops/pkg/db"
)

func TestComplete_RequiresConfirmation(t *testing.T) {
	plan := &db.DiveOperationPlan{ID: "p-1"}
	assert.ErrorIs(t, Complete(plan), ErrNotConfirmed)
	assert.False(t, plan.Completed)
}

func TestComplete_CopiesPlannedSiteWhenActualUnset(t *testing.T) {
	plan := &db.DiveOperationPlan{ID: "p-1", PlannedSiteID: "s-1"}
	Confirm(plan)
	require.NoError(t, Complete(plan))

	assert.True(t, plan.Completed)
	assert.Equal(t, "s-1", plan.ActualSiteID)
}

func TestComplete_PreservesRecordedActualSite(t *testing.T) {
	plan := &db.DiveOperationPlan{ID: "p-1", PlannedSiteID: "s-1", ActualSiteID: "s-2"}
	Confirm(plan)
	require.NoError(t, Complete(plan))

	assert.Equal(t, "s-2", plan.ActualSiteID, "A recorded actual site is never overwritten")
}

func TestConfirm_Idempotent(t *testing.T) {
	plan := &db.DiveOperationPlan{ID: "p-1"}
	Confirm(plan)
	Confirm(plan)
	assert.True(t, plan.Confirmed)
	assert.False(t, plan.Completed, "Confirming alone records a reviewed but unfinished dive")
}

func TestConfirmAndComplete(t *testing.T) {
	plan := &db.DiveOperationPlan{ID: "p-1", PlannedSiteID: "s-1"}
	ConfirmAndComplete(plan)
	assert.True(t, plan.Confirmed)
	assert.True(t, plan.Completed)
	assert.Equal(t, "s-1", plan.ActualSiteID)
}

func TestAttachReport_RequiresConfirmation(t *testing.T) {
	plan := &db.DiveOperationPlan{ID: "p-1"}
	assert.ErrorIs(t, AttachReport(plan, "09:00", "09:45", "calm sea"), ErrNotConfirmed)
}

func TestAttachReport_OnlyOverwritesSetFields(t *testing.T) {
	plan := &db.DiveOperationPlan{ID: "p-1", Confirmed: true, EntryTime: "09:00", Notes: "briefed"}
	require.NoError(t, AttachReport(plan, "", "09:45", ""))

	assert.Equal(t, "09:00", plan.EntryTime)
	assert.Equal(t, "09:45", plan.ExitTime)
	assert.Equal(t, "briefed", plan.Notes)
}

func TestSiteDiscrepancy(t *testing.T) {
	plan := &db.DiveOperationPlan{ID: "p-1", PlannedSiteID: "s-1", Confirmed: true}
	SetActualSite(plan, "s-2")
	assert.False(t, SiteDiscrepancy(plan), "No discrepancy before completion")

	require.NoError(t, Complete(plan))
	assert.True(t, SiteDiscrepancy(plan))
}
