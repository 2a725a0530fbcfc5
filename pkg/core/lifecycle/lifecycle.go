// Package lifecycle advances a committed dive-operation plan through
// confirmation and completion during post-operation review.
package lifecycle

import (
	"errors"

	"github.com/calaazul/diveops/pkg/db"
)

// ErrNotConfirmed is returned when completing or reporting on a plan that
// has not been confirmed yet
var ErrNotConfirmed = errors.New("plan must be confirmed first")

// Confirm marks a committed plan as reviewed. Confirming without
// completing is valid: it records "plan reviewed, dive not yet finished".
// Confirm is idempotent.
func Confirm(plan *db.DiveOperationPlan) {
	plan.Confirmed = true
}

// Complete marks a confirmed plan as done. On the first transition into
// completed, an unset actual site is copied from the planned site; the
// copy is taken once, not aliased, so later edits to the planned site do
// not rewrite history.
func Complete(plan *db.DiveOperationPlan) error {
	if !plan.Confirmed {
		return ErrNotConfirmed
	}
	complete(plan)
	return nil
}

// ConfirmAndComplete performs both transitions in one action
func ConfirmAndComplete(plan *db.DiveOperationPlan) {
	Confirm(plan)
	complete(plan)
}

func complete(plan *db.DiveOperationPlan) {
	if plan.ActualSiteID == "" {
		plan.ActualSiteID = plan.PlannedSiteID
	}
	plan.Completed = true
}

// AttachReport records entry/exit times and notes. None of the fields are
// required for any transition; they may be attached at or after
// confirmation.
func AttachReport(plan *db.DiveOperationPlan, entryTime, exitTime, notes string) error {
	if !plan.Confirmed {
		return ErrNotConfirmed
	}
	if entryTime != "" {
		plan.EntryTime = entryTime
	}
	if exitTime != "" {
		plan.ExitTime = exitTime
	}
	if notes != "" {
		plan.Notes = notes
	}
	return nil
}

// SetActualSite records the site actually dived, when it differed from
// the plan
func SetActualSite(plan *db.DiveOperationPlan, siteID string) {
	plan.ActualSiteID = siteID
}

// SiteDiscrepancy reports whether a completed plan's actual site differs
// from the planned one. A discrepancy is informational, never an error.
func SiteDiscrepancy(plan *db.DiveOperationPlan) bool {
	return plan.Completed && plan.ActualSiteID != plan.PlannedSiteID
}
