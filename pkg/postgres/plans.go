package postgres

import (
	"context"
	"fmt"

	"github.com/calaazul/diveops/pkg/db"
)

var _ db.Database = (*DB)(nil)

// UpsertDivePlan inserts a dive-operation plan, replacing any existing plan
// for the same (location, date, session, boat) slot. Re-committing a slot
// overwrites the previous working set rather than duplicating it; the
// existing row keeps its id, which is written back into the plan so the
// returned handle stays valid for review.
func (d *DB) UpsertDivePlan(ctx context.Context, plan *db.DiveOperationPlan) error {
	err := d.pool.QueryRow(ctx, `
		INSERT INTO dive_operation_plan (
			id, location_id, date, session, boat_id,
			diver_ids, captain_id, guide_ids, trainee_ids,
			planned_site_id, actual_site_id,
			confirmed, completed, entry_time, exit_time, notes, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (location_id, date, session, boat_id) DO UPDATE SET
			diver_ids = EXCLUDED.diver_ids,
			captain_id = EXCLUDED.captain_id,
			guide_ids = EXCLUDED.guide_ids,
			trainee_ids = EXCLUDED.trainee_ids,
			planned_site_id = EXCLUDED.planned_site_id
		RETURNING id
	`, plan.ID, plan.LocationID, plan.Date, plan.Session, plan.BoatID,
		plan.DiverIDs, nullable(plan.CaptainID), plan.GuideIDs, plan.TraineeIDs,
		nullable(plan.PlannedSiteID), nullable(plan.ActualSiteID),
		plan.Confirmed, plan.Completed,
		nullable(plan.EntryTime), nullable(plan.ExitTime), nullable(plan.Notes),
		plan.CreatedAt).Scan(&plan.ID)
	if err != nil {
		return fmt.Errorf("failed to upsert dive plan: %w", err)
	}
	return nil
}

// GetDivePlansByDate retrieves every plan for a location and date, across all
// sessions and units
func (d *DB) GetDivePlansByDate(ctx context.Context, locationID, date string) ([]db.DiveOperationPlan, error) {
	rows, err := d.pool.Query(ctx, planSelect+`
		WHERE location_id = $1 AND date = $2
		ORDER BY session, boat_id
	`, locationID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query dive plans: %w", err)
	}
	defer rows.Close()

	var plans []db.DiveOperationPlan
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, *plan)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating dive plans: %w", err)
	}

	return plans, nil
}

// GetDivePlan retrieves a single plan by id
func (d *DB) GetDivePlan(ctx context.Context, id string) (*db.DiveOperationPlan, error) {
	rows, err := d.pool.Query(ctx, planSelect+` WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query dive plan: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("error reading dive plan: %w", err)
		}
		return nil, fmt.Errorf("dive plan %s not found", id)
	}
	return scanPlan(rows)
}

// UpdateDivePlan writes back the review fields of an existing plan. The slot
// identity columns never change after commit.
func (d *DB) UpdateDivePlan(ctx context.Context, plan *db.DiveOperationPlan) error {
	tag, err := d.pool.Exec(ctx, `
		UPDATE dive_operation_plan SET
			actual_site_id = $2,
			confirmed = $3,
			completed = $4,
			entry_time = $5,
			exit_time = $6,
			notes = $7
		WHERE id = $1
	`, plan.ID, nullable(plan.ActualSiteID), plan.Confirmed, plan.Completed,
		nullable(plan.EntryTime), nullable(plan.ExitTime), nullable(plan.Notes))
	if err != nil {
		return fmt.Errorf("failed to update dive plan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("dive plan %s not found", plan.ID)
	}
	return nil
}

const planSelect = `
	SELECT id, location_id, date, session, boat_id,
		diver_ids, captain_id, guide_ids, trainee_ids,
		planned_site_id, actual_site_id,
		confirmed, completed, entry_time, exit_time, notes, created_at
	FROM dive_operation_plan
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlan(row rowScanner) (*db.DiveOperationPlan, error) {
	var p db.DiveOperationPlan
	var captainID, plannedSiteID, actualSiteID, entryTime, exitTime, notes *string
	if err := row.Scan(&p.ID, &p.LocationID, &p.Date, &p.Session, &p.BoatID,
		&p.DiverIDs, &captainID, &p.GuideIDs, &p.TraineeIDs,
		&plannedSiteID, &actualSiteID,
		&p.Confirmed, &p.Completed, &entryTime, &exitTime, &notes,
		&p.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to scan dive plan: %w", err)
	}
	if captainID != nil {
		p.CaptainID = *captainID
	}
	if plannedSiteID != nil {
		p.PlannedSiteID = *plannedSiteID
	}
	if actualSiteID != nil {
		p.ActualSiteID = *actualSiteID
	}
	if entryTime != nil {
		p.EntryTime = *entryTime
	}
	if exitTime != nil {
		p.ExitTime = *exitTime
	}
	if notes != nil {
		p.Notes = *notes
	}
	return &p, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
