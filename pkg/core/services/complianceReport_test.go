package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/calaazul/diveops/pkg/db"
)

func reportStore() *mockInventoryStore {
	store := testStore()
	store.plans = []db.DiveOperationPlan{
		{
			ID: "p-1", LocationID: "loc-1", Date: "2025-06-10", Session: "morning",
			BoatID: "boat-1", DiverIDs: []string{"alice", "bob"},
			CaptainID: "pete", GuideIDs: []string{"maria"},
			PlannedSiteID: "s-1", ActualSiteID: "s-1",
			Confirmed: true, Completed: true,
			EntryTime: "09:15", ExitTime: "10:02",
		},
		{
			ID: "p-2", LocationID: "loc-1", Date: "2025-06-10", Session: "afternoon",
			BoatID: "boat-1", DiverIDs: []string{"alice"},
			PlannedSiteID: "s-2",
			Confirmed:     true, // reviewed but never completed
		},
	}
	return store
}

func TestBuildComplianceReport_CompletedPlansOnly(t *testing.T) {
	records, err := BuildComplianceReport(context.Background(), reportStore(), zap.NewNop(), "loc-1", "2025-06-10")
	require.NoError(t, err)

	require.Len(t, records, 1)
	rec := records[0]
	assert.Equal(t, "Calypso", rec.UnitName)
	assert.Equal(t, "North Reef", rec.SiteName)
	assert.Equal(t, 2, rec.TotalDivers)
	assert.Equal(t, "Pete Vargas", rec.CaptainName)
	assert.Equal(t, []string{"Maria Ortiz"}, rec.Guides)
}

func TestBuildComplianceReport_EmptyDay(t *testing.T) {
	records, err := BuildComplianceReport(context.Background(), testStore(), zap.NewNop(), "loc-1", "2025-06-10")
	require.NoError(t, err)
	assert.Empty(t, records, "A day with no completed plans is an empty report, not an error")
}

func TestExportComplianceCSV(t *testing.T) {
	var buf bytes.Buffer
	err := ExportComplianceCSV(context.Background(), reportStore(), zap.NewNop(), "loc-1", "2025-06-10", &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Date,Session,Boat/Dive Type,Dive Site")
	assert.Contains(t, out, "2025-06-10,morning,Calypso,North Reef,09:15,10:02")
}

func TestExportComplianceDocument(t *testing.T) {
	var buf bytes.Buffer
	err := ExportComplianceDocument(context.Background(), reportStore(), zap.NewNop(), "loc-1", "2025-06-10", &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "DIVE OPERATION COMPLIANCE REPORT")
	assert.Contains(t, out, "Unit: Calypso")
	assert.Contains(t, out, "Real Decreto 550/2020")
}
