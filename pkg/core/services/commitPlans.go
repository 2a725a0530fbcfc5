package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/calaazul/diveops/pkg/core/validate"
	"github.com/calaazul/diveops/pkg/db"
)

// ValidationError is returned when commit is refused. It carries every
// blocking issue, grouped by unit — never just the first one.
type ValidationError struct {
	Issues []validate.UnitIssues
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("plan validation failed: %s", strings.Join(validate.Flatten(e.Issues), "; "))
}

// CommitStore defines the database operations needed to commit plans.
// UpsertDivePlan may rewrite plan.ID to the id of the slot's existing row,
// so the committed plan always identifies the persisted record.
type CommitStore interface {
	UpsertDivePlan(ctx context.Context, plan *db.DiveOperationPlan) error
}

// CommitResult reports the per-unit outcome of a commit. Persistence is
// per-unit: one unit's failure never rolls back another's success.
type CommitResult struct {
	// Committed holds the persisted plans, one per unit with divers
	Committed []*db.DiveOperationPlan

	// Failures maps unit id to the persistence error for that unit
	Failures map[string]error
}

// CommitPlans validates the working set and, if it passes, persists one
// dive-operation plan per unit with at least one diver. Validation
// failure refuses the whole commit; after validation passes, each unit's
// persistence is independent and partial failure is reported per unit.
// Units with zero divers are never persisted.
func CommitPlans(ctx context.Context, database CommitStore, logger *zap.Logger, session *PlanningSession) (*CommitResult, error) {
	if issues := session.Validate(); len(issues) > 0 {
		logger.Warn("Commit refused by validation",
			zap.Strings("issues", validate.Flatten(issues)))
		return nil, &ValidationError{Issues: issues}
	}

	result := &CommitResult{Failures: make(map[string]error)}
	for _, unit := range session.Store.Units() {
		diverIDs := session.Store.DiversOn(unit.ID)
		if len(diverIDs) == 0 {
			continue
		}
		staff := session.Store.Staff(unit.ID)

		boatID := unit.ID
		if unit.Shore {
			boatID = ""
		}
		plan := &db.DiveOperationPlan{
			ID:            uuid.New().String(),
			LocationID:    session.LocationID,
			Date:          session.Date,
			Session:       string(session.Session),
			BoatID:        boatID,
			DiverIDs:      diverIDs,
			CaptainID:     staff.CaptainID,
			GuideIDs:      staff.GuideIDs,
			TraineeIDs:    staff.TraineeIDs,
			PlannedSiteID: session.PlannedSites[unit.ID],
			CreatedAt:     time.Now(),
		}

		if err := database.UpsertDivePlan(ctx, plan); err != nil {
			logger.Error("Failed to persist plan for unit",
				zap.String("unit_id", unit.ID),
				zap.Error(err))
			result.Failures[unit.ID] = fmt.Errorf("failed to persist plan for %s: %w", unit.Name, err)
			continue
		}

		logger.Info("Plan committed",
			zap.String("unit_id", unit.ID),
			zap.Int("divers", len(diverIDs)),
			zap.String("planned_site", plan.PlannedSiteID))
		result.Committed = append(result.Committed, plan)
	}

	return result, nil
}
