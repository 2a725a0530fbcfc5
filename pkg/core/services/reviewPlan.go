package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/calaazul/diveops/pkg/core/lifecycle"
	"github.com/calaazul/diveops/pkg/db"
)

// ReviewStore defines the database operations needed for post-operation
// review
type ReviewStore interface {
	GetDivePlan(ctx context.Context, id string) (*db.DiveOperationPlan, error)
	UpdateDivePlan(ctx context.Context, plan *db.DiveOperationPlan) error
}

// PostDiveReport carries the optional report fields attached during
// review. None are required for a transition to succeed.
type PostDiveReport struct {
	ActualSiteID string
	EntryTime    string
	ExitTime     string
	Notes        string
}

// ReviewOutcome is the updated plan plus the informational site
// discrepancy flag
type ReviewOutcome struct {
	Plan *db.DiveOperationPlan

	// SiteChanged flags a completed plan whose actual site differs from
	// the planned one. Informational, for review — not an error.
	SiteChanged bool
}

// ConfirmPlan marks a committed plan as reviewed and attaches any report
// fields. The dive may still be unfinished; completion is separate.
func ConfirmPlan(ctx context.Context, database ReviewStore, logger *zap.Logger, planID string, report *PostDiveReport) (*ReviewOutcome, error) {
	return review(ctx, database, logger, planID, report)
}

// CompletePlan marks a confirmed plan as done. If the actual site was
// never set, it is copied from the planned site at this point.
func CompletePlan(ctx context.Context, database ReviewStore, logger *zap.Logger, planID string, report *PostDiveReport) (*ReviewOutcome, error) {
	outcome, err := reviewComplete(ctx, database, logger, planID, report, false)
	return outcome, err
}

// ConfirmAndCompletePlan performs both transitions in one action
func ConfirmAndCompletePlan(ctx context.Context, database ReviewStore, logger *zap.Logger, planID string, report *PostDiveReport) (*ReviewOutcome, error) {
	return reviewComplete(ctx, database, logger, planID, report, true)
}

func review(ctx context.Context, database ReviewStore, logger *zap.Logger, planID string, report *PostDiveReport) (*ReviewOutcome, error) {
	plan, err := database.GetDivePlan(ctx, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch plan: %w", err)
	}

	lifecycle.Confirm(plan)
	if err := applyReport(plan, report); err != nil {
		return nil, err
	}

	if err := database.UpdateDivePlan(ctx, plan); err != nil {
		return nil, fmt.Errorf("failed to update plan: %w", err)
	}

	logger.Info("Plan confirmed", zap.String("plan_id", plan.ID))
	return &ReviewOutcome{Plan: plan, SiteChanged: lifecycle.SiteDiscrepancy(plan)}, nil
}

func reviewComplete(ctx context.Context, database ReviewStore, logger *zap.Logger, planID string, report *PostDiveReport, confirmFirst bool) (*ReviewOutcome, error) {
	plan, err := database.GetDivePlan(ctx, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch plan: %w", err)
	}

	if confirmFirst {
		lifecycle.Confirm(plan)
	}
	if err := applyReport(plan, report); err != nil {
		return nil, err
	}
	if err := lifecycle.Complete(plan); err != nil {
		return nil, err
	}

	if err := database.UpdateDivePlan(ctx, plan); err != nil {
		return nil, fmt.Errorf("failed to update plan: %w", err)
	}

	outcome := &ReviewOutcome{Plan: plan, SiteChanged: lifecycle.SiteDiscrepancy(plan)}
	logger.Info("Plan completed",
		zap.String("plan_id", plan.ID),
		zap.Bool("site_changed", outcome.SiteChanged))
	return outcome, nil
}

func applyReport(plan *db.DiveOperationPlan, report *PostDiveReport) error {
	if report == nil {
		return nil
	}
	if report.ActualSiteID != "" {
		lifecycle.SetActualSite(plan, report.ActualSiteID)
	}
	return lifecycle.AttachReport(plan, report.EntryTime, report.ExitTime, report.Notes)
}
