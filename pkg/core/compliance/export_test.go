package compliance

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calaazul/diveops/pkg/db"
)

func TestWriteCSV_HeaderAndRows(t *testing.T) {
	records := Aggregate([]db.DiveOperationPlan{completedPlan()}, testLookup())

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, records))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, []string{
		"Date", "Session", "Boat/Dive Type", "Dive Site", "Entry Time",
		"Exit Time", "Total Divers", "Male Divers", "Female Divers",
		"Unspecified Gender", "Total Guides", "Captain", "Notes",
	}, rows[0])
	assert.Equal(t, []string{
		"2025-06-10", "morning", "Calypso", "The Arch", "09:15", "10:02",
		"3", "1", "1", "1", "1", "Pete Vargas", "mild current",
	}, rows[1])
}

func TestWriteCSV_EscapesFreeText(t *testing.T) {
	plan := completedPlan()
	plan.Notes = `strong current, aborted at "the wall"`

	records := Aggregate([]db.DiveOperationPlan{plan}, testLookup())

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, records))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, plan.Notes, rows[1][12], "Commas and quotes survive the round trip")
}

func TestWriteCSV_NoRecords(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 1, "An empty day still gets the header row")
}

func TestWriteDocument(t *testing.T) {
	records := Aggregate([]db.DiveOperationPlan{completedPlan()}, testLookup())
	generatedAt := time.Date(2025, 6, 11, 8, 30, 0, 0, time.UTC)

	var buf bytes.Buffer
	require.NoError(t, WriteDocument(&buf, records, generatedAt))
	doc := buf.String()

	assert.Contains(t, doc, "Generated: 2025-06-11 08:30:00")
	assert.Contains(t, doc, "Date: 2025-06-10    Session: morning    Unit: Calypso")
	assert.Contains(t, doc, "Dive Site: The Arch")
	assert.Contains(t, doc, "Divers: 3 (male 1, female 1, unspecified 1)")
	assert.Contains(t, doc, "Captain: Pete Vargas")
	assert.Contains(t, doc, "Maria Ortiz;")
	assert.Contains(t, doc, "Alice Moreno | female | Rescue Diver | ES")
	assert.Contains(t, doc, "Real Decreto 550/2020")
}

func TestWriteDocument_DashesForMissingFields(t *testing.T) {
	plan := completedPlan()
	plan.BoatID = ""
	plan.CaptainID = ""
	plan.EntryTime = ""
	plan.ExitTime = ""

	records := Aggregate([]db.DiveOperationPlan{plan}, testLookup())

	var buf bytes.Buffer
	require.NoError(t, WriteDocument(&buf, records, time.Now()))
	doc := buf.String()

	assert.Contains(t, doc, "Entry: -    Exit: -")
	assert.Contains(t, doc, "Captain: -")
	assert.True(t, strings.Contains(doc, "Unit: Shore Dive"))
}
