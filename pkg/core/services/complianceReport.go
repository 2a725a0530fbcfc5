package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/calaazul/diveops/pkg/core/compliance"
	"github.com/calaazul/diveops/pkg/core/model"
	"github.com/calaazul/diveops/pkg/db"
)

// ComplianceStore defines the database operations needed to build a
// compliance report
type ComplianceStore interface {
	GetDivePlansByDate(ctx context.Context, locationID, date string) ([]db.DiveOperationPlan, error)
	GetCustomers(ctx context.Context) ([]db.Customer, error)
	GetBoats(ctx context.Context, locationID string) ([]db.Boat, error)
	GetStaff(ctx context.Context) ([]db.Staff, error)
	GetDiveSites(ctx context.Context, locationID string) ([]db.DiveSite, error)
}

// BuildComplianceReport aggregates the completed plans for a date into
// regulatory records. A date with no completed plans yields an empty
// report, not an error.
func BuildComplianceReport(ctx context.Context, database ComplianceStore, logger *zap.Logger, locationID, date string) ([]compliance.Record, error) {
	plans, err := database.GetDivePlansByDate(ctx, locationID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch plans: %w", err)
	}

	lookup, err := buildLookup(ctx, database, locationID)
	if err != nil {
		return nil, err
	}

	records := compliance.Aggregate(plans, lookup)
	logger.Info("Compliance report built",
		zap.String("date", date),
		zap.Int("plans", len(plans)),
		zap.Int("completed", len(records)))
	return records, nil
}

// ExportComplianceCSV writes the tabular export for a date
func ExportComplianceCSV(ctx context.Context, database ComplianceStore, logger *zap.Logger, locationID, date string, w io.Writer) error {
	records, err := BuildComplianceReport(ctx, database, logger, locationID, date)
	if err != nil {
		return err
	}
	return compliance.WriteCSV(w, records)
}

// ExportComplianceDocument writes the printable report for a date
func ExportComplianceDocument(ctx context.Context, database ComplianceStore, logger *zap.Logger, locationID, date string, w io.Writer) error {
	records, err := BuildComplianceReport(ctx, database, logger, locationID, date)
	if err != nil {
		return err
	}
	return compliance.WriteDocument(w, records, time.Now())
}

func buildLookup(ctx context.Context, database ComplianceStore, locationID string) (compliance.Lookup, error) {
	lookup := compliance.Lookup{
		Boats:  make(map[string]model.Boat),
		Sites:  make(map[string]model.DiveSite),
		Staff:  make(map[string]model.Staff),
		Divers: make(map[string]model.Diver),
	}

	boats, err := database.GetBoats(ctx, locationID)
	if err != nil {
		return lookup, fmt.Errorf("failed to fetch boats: %w", err)
	}
	for _, b := range boats {
		lookup.Boats[b.ID] = boatFromRecord(b)
	}

	sites, err := database.GetDiveSites(ctx, locationID)
	if err != nil {
		return lookup, fmt.Errorf("failed to fetch dive sites: %w", err)
	}
	for _, s := range sites {
		lookup.Sites[s.ID] = siteFromRecord(s)
	}

	staff, err := database.GetStaff(ctx)
	if err != nil {
		return lookup, fmt.Errorf("failed to fetch staff: %w", err)
	}
	for _, s := range staff {
		lookup.Staff[s.ID] = staffFromRecord(s)
	}

	customers, err := database.GetCustomers(ctx)
	if err != nil {
		return lookup, fmt.Errorf("failed to fetch customers: %w", err)
	}
	for _, c := range customers {
		lookup.Divers[c.ID] = diverFromCustomer(c)
	}

	return lookup, nil
}
