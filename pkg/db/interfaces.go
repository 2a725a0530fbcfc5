package db

import "context"

// InventoryStore reads collaborator-owned data: bookings, customers,
// boats, staff and dive sites. All of it is read-only to this module.
type InventoryStore interface {
	// GetBookingsForDate returns the bookings for a location on a date
	GetBookingsForDate(ctx context.Context, locationID, date string) ([]Booking, error)

	// GetBookingsSince returns all bookings dated on or after the cutoff,
	// used for the repeat-site recency exclusion
	GetBookingsSince(ctx context.Context, since string) ([]Booking, error)

	GetCustomers(ctx context.Context) ([]Customer, error)
	GetBoats(ctx context.Context, locationID string) ([]Boat, error)
	GetStaff(ctx context.Context) ([]Staff, error)
	GetDiveSites(ctx context.Context, locationID string) ([]DiveSite, error)
}

// PlanStore persists dive-operation plans, one record per unit per session
// per date, upserted by (location, date, session, boat).
type PlanStore interface {
	UpsertDivePlan(ctx context.Context, plan *DiveOperationPlan) error
	GetDivePlansByDate(ctx context.Context, locationID, date string) ([]DiveOperationPlan, error)
	GetDivePlan(ctx context.Context, id string) (*DiveOperationPlan, error)

	// UpdateDivePlan writes the lifecycle and post-operation report fields
	UpdateDivePlan(ctx context.Context, plan *DiveOperationPlan) error
}

// Database is the full set of operations the planning engine needs.
// postgres.DB implements this interface.
type Database interface {
	InventoryStore
	PlanStore
}
