package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/calaazul/diveops/pkg/core/lifecycle"
	"github.com/calaazul/diveops/pkg/db"
)

// mockReviewStore implements ReviewStore for testing
type mockReviewStore struct {
	plans     map[string]*db.DiveOperationPlan
	updateErr error
	updated   []*db.DiveOperationPlan
}

func (m *mockReviewStore) GetDivePlan(ctx context.Context, id string) (*db.DiveOperationPlan, error) {
	plan, ok := m.plans[id]
	if !ok {
		return nil, errors.New("dive plan not found")
	}
	copied := *plan
	return &copied, nil
}

func (m *mockReviewStore) UpdateDivePlan(ctx context.Context, plan *db.DiveOperationPlan) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.updated = append(m.updated, plan)
	m.plans[plan.ID] = plan
	return nil
}

func committedPlanStore() *mockReviewStore {
	return &mockReviewStore{
		plans: map[string]*db.DiveOperationPlan{
			"p-1": {
				ID: "p-1", LocationID: "loc-1", Date: "2025-06-10", Session: "morning",
				BoatID: "boat-1", DiverIDs: []string{"alice"},
				CaptainID: "pete", GuideIDs: []string{"maria"},
				PlannedSiteID: "s-1",
			},
		},
	}
}

func TestConfirmPlan(t *testing.T) {
	store := committedPlanStore()

	outcome, err := ConfirmPlan(context.Background(), store, zap.NewNop(), "p-1", nil)
	require.NoError(t, err)

	assert.True(t, outcome.Plan.Confirmed)
	assert.False(t, outcome.Plan.Completed, "Confirming alone leaves the dive unfinished")
	assert.False(t, outcome.SiteChanged)
	require.Len(t, store.updated, 1)
}

func TestConfirmPlan_AttachesReport(t *testing.T) {
	store := committedPlanStore()
	report := &PostDiveReport{EntryTime: "09:15", ExitTime: "10:02", Notes: "mild current"}

	outcome, err := ConfirmPlan(context.Background(), store, zap.NewNop(), "p-1", report)
	require.NoError(t, err)

	assert.Equal(t, "09:15", outcome.Plan.EntryTime)
	assert.Equal(t, "10:02", outcome.Plan.ExitTime)
	assert.Equal(t, "mild current", outcome.Plan.Notes)
}

func TestCompletePlan_RequiresConfirmation(t *testing.T) {
	store := committedPlanStore()

	_, err := CompletePlan(context.Background(), store, zap.NewNop(), "p-1", nil)
	assert.ErrorIs(t, err, lifecycle.ErrNotConfirmed)
	assert.Empty(t, store.updated, "A refused transition writes nothing back")
}

func TestCompletePlan_CopiesPlannedSite(t *testing.T) {
	store := committedPlanStore()
	store.plans["p-1"].Confirmed = true

	outcome, err := CompletePlan(context.Background(), store, zap.NewNop(), "p-1", nil)
	require.NoError(t, err)

	assert.True(t, outcome.Plan.Completed)
	assert.Equal(t, "s-1", outcome.Plan.ActualSiteID)
	assert.False(t, outcome.SiteChanged)
}

func TestCompletePlan_ActualSiteDiscrepancyFlagged(t *testing.T) {
	store := committedPlanStore()
	store.plans["p-1"].Confirmed = true

	outcome, err := CompletePlan(context.Background(), store, zap.NewNop(), "p-1",
		&PostDiveReport{ActualSiteID: "s-2"})
	require.NoError(t, err)

	assert.Equal(t, "s-2", outcome.Plan.ActualSiteID)
	assert.True(t, outcome.SiteChanged, "Diverging from the planned site is flagged, not rejected")
}

func TestConfirmAndCompletePlan(t *testing.T) {
	store := committedPlanStore()

	outcome, err := ConfirmAndCompletePlan(context.Background(), store, zap.NewNop(), "p-1",
		&PostDiveReport{EntryTime: "09:15"})
	require.NoError(t, err)

	assert.True(t, outcome.Plan.Confirmed)
	assert.True(t, outcome.Plan.Completed)
	assert.Equal(t, "s-1", outcome.Plan.ActualSiteID)
	assert.Equal(t, "09:15", outcome.Plan.EntryTime)
}

func TestReview_UnknownPlan(t *testing.T) {
	store := &mockReviewStore{plans: map[string]*db.DiveOperationPlan{}}

	_, err := ConfirmPlan(context.Background(), store, zap.NewNop(), "p-404", nil)
	assert.Error(t, err)
}
