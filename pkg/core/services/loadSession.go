package services

import (
	"context"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/calaazul/diveops/internal/config"
	"github.com/calaazul/diveops/pkg/core/assignment"
	"github.com/calaazul/diveops/pkg/core/model"
	"github.com/calaazul/diveops/pkg/core/planner"
	"github.com/calaazul/diveops/pkg/core/roster"
	"github.com/calaazul/diveops/pkg/core/validate"
	"github.com/calaazul/diveops/pkg/db"
)

// LoadSessionStore defines the database operations needed to open an
// editing session
type LoadSessionStore interface {
	GetBookingsForDate(ctx context.Context, locationID, date string) ([]db.Booking, error)
	GetCustomers(ctx context.Context) ([]db.Customer, error)
	GetBoats(ctx context.Context, locationID string) ([]db.Boat, error)
	GetStaff(ctx context.Context) ([]db.Staff, error)
	GetDiveSites(ctx context.Context, locationID string) ([]db.DiveSite, error)
}

// PlanningSession is the in-memory working set for one planner editing one
// (date, session, location) slot. It is owned by a single planner at a
// time: two sessions editing the same slot do not merge, and the later
// commit wins per unit. Nothing is persisted until CommitPlans.
type PlanningSession struct {
	Date       string
	Session    model.SessionTag
	LocationID string

	Roster  roster.Roster
	Planner *planner.Planner
	Store   *assignment.Store

	// Sites is the location's site inventory, in inventory order
	Sites []model.DiveSite

	// PlannedSites maps unit id to the pending site choice. Overwriting a
	// pending choice before commit replaces it; no record exists yet.
	PlannedSites map[string]string

	staff         []model.Staff
	staffByID     map[string]model.Staff
	diversByID    map[string]model.Diver
	sitesByID     map[string]model.DiveSite
	shoreSiteName string
	recencyDays   int
	suggestLimit  int
}

// LoadPlanningSession fetches the slot's roster and inventories and builds
// the working set. Loading a midday session at a location without boats is
// an error: midday only exists where boats do.
func LoadPlanningSession(ctx context.Context, database LoadSessionStore, cfg *config.Config, logger *zap.Logger, locationID, date string, session model.SessionTag) (*PlanningSession, error) {
	if !session.IsValid() {
		return nil, fmt.Errorf("invalid session tag %q", session)
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}

	logger.Debug("Loading planning session",
		zap.String("location_id", locationID),
		zap.String("date", date),
		zap.String("session", string(session)))

	if err := checkSessionOpen(cfg, date, session); err != nil {
		return nil, err
	}

	boatRecords, err := database.GetBoats(ctx, locationID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch boats: %w", err)
	}
	boats := make([]model.Boat, 0, len(boatRecords))
	for _, b := range boatRecords {
		boats = append(boats, boatFromRecord(b))
	}
	hasBoats := false
	for _, b := range boats {
		if b.Active {
			hasBoats = true
			break
		}
	}
	if session == model.SessionMidday && !hasBoats {
		return nil, fmt.Errorf("midday session is not offered at a location without boats")
	}

	bookingRecords, err := database.GetBookingsForDate(ctx, locationID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings: %w", err)
	}
	bookings := make([]model.Booking, 0, len(bookingRecords))
	for _, b := range bookingRecords {
		bookings = append(bookings, bookingFromRecord(b))
	}

	customerRecords, err := database.GetCustomers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch customers: %w", err)
	}
	divers := make([]model.Diver, 0, len(customerRecords))
	for _, c := range customerRecords {
		divers = append(divers, diverFromCustomer(c))
	}

	staffRecords, err := database.GetStaff(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch staff: %w", err)
	}
	staff := make([]model.Staff, 0, len(staffRecords))
	for _, s := range staffRecords {
		staff = append(staff, staffFromRecord(s))
	}

	siteRecords, err := database.GetDiveSites(ctx, locationID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dive sites: %w", err)
	}
	sites := make([]model.DiveSite, 0, len(siteRecords))
	for _, s := range siteRecords {
		sites = append(sites, siteFromRecord(s))
	}

	resolved := roster.Resolve(date, session, locationID, bookings, divers, hasBoats)
	p := planner.New(boats, resolved.RequiresBoats, cfg.StaffBaseline)
	store := assignment.New(p.Units())

	logger.Info("Planning session loaded",
		zap.Int("roster_size", len(resolved.Divers)),
		zap.Bool("requires_boats", resolved.RequiresBoats),
		zap.Int("units", len(p.Units())))

	ps := &PlanningSession{
		Date:          date,
		Session:       session,
		LocationID:    locationID,
		Roster:        resolved,
		Planner:       p,
		Store:         store,
		Sites:         sites,
		PlannedSites:  make(map[string]string),
		staff:         staff,
		staffByID:     make(map[string]model.Staff, len(staff)),
		diversByID:    make(map[string]model.Diver, len(divers)),
		sitesByID:     make(map[string]model.DiveSite, len(sites)),
		shoreSiteName: cfg.ShoreSiteName,
		recencyDays:   cfg.RecencyWindowDays,
		suggestLimit:  cfg.SuggestionLimit,
	}
	for _, s := range staff {
		ps.staffByID[s.ID] = s
	}
	for _, d := range divers {
		ps.diversByID[d.ID] = d
	}
	for _, s := range sites {
		ps.sitesByID[s.ID] = s
	}
	return ps, nil
}

func checkSessionOpen(cfg *config.Config, date string, session model.SessionTag) error {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", date, err)
	}
	open, err := cfg.SessionsOnDate(day)
	if err != nil {
		return fmt.Errorf("failed to evaluate session schedule: %w", err)
	}
	if !slices.Contains(open, string(session)) {
		return fmt.Errorf("session %q is not scheduled on %s", session, date)
	}
	return nil
}

// AssignDiver assigns a diver to a unit (or unassigns with an empty unit
// id) and makes sure the target unit stays visible in the planner view.
func (ps *PlanningSession) AssignDiver(diverID, unitID string) error {
	if err := ps.Store.AssignDiver(diverID, unitID); err != nil {
		return err
	}
	if unitID != "" {
		ps.Planner.EnsureVisible(unitID, len(ps.Roster.Divers), ps.Store)
	}
	return nil
}

// SetCaptain assigns a captain, enforcing role eligibility and the active
// flag on top of the store's exclusivity rules
func (ps *PlanningSession) SetCaptain(unitID, staffID string) error {
	if staffID != "" {
		s, ok := ps.staffByID[staffID]
		if !ok || !s.Active {
			return fmt.Errorf("unknown or inactive staff %q", staffID)
		}
		if !s.Role.CanCaptain() {
			return fmt.Errorf("staff %s (%s) is not captain-eligible", s.Name, s.Role)
		}
	}
	return ps.Store.SetCaptain(unitID, staffID)
}

// SetGuides replaces a unit's guide set, enforcing guide eligibility
func (ps *PlanningSession) SetGuides(unitID string, staffIDs []string) error {
	for _, id := range staffIDs {
		s, ok := ps.staffByID[id]
		if !ok || !s.Active {
			return fmt.Errorf("unknown or inactive staff %q", id)
		}
		if !s.Role.CanGuide() {
			return fmt.Errorf("staff %s (%s) is not guide-eligible", s.Name, s.Role)
		}
	}
	return ps.Store.SetGuides(unitID, staffIDs)
}

// SetTrainees replaces a unit's trainee set, enforcing trainee eligibility
func (ps *PlanningSession) SetTrainees(unitID string, staffIDs []string) error {
	for _, id := range staffIDs {
		s, ok := ps.staffByID[id]
		if !ok || !s.Active {
			return fmt.Errorf("unknown or inactive staff %q", id)
		}
		if !s.Role.CanTrainee() {
			return fmt.Errorf("staff %s (%s) is not trainee-eligible", s.Name, s.Role)
		}
	}
	return ps.Store.SetTrainees(unitID, staffIDs)
}

// SetPlannedSite records the pending site choice for a unit. Any site may
// be chosen; the advisor's suggestions are not enforced.
func (ps *PlanningSession) SetPlannedSite(unitID, siteID string) error {
	if _, ok := ps.Store.Unit(unitID); !ok {
		return fmt.Errorf("unknown unit %q", unitID)
	}
	if siteID != "" {
		if _, ok := ps.sitesByID[siteID]; !ok {
			return fmt.Errorf("unknown dive site %q", siteID)
		}
	}
	ps.PlannedSites[unitID] = siteID
	return nil
}

// AutoAssign bulk-places the unassigned roster, merging with manual
// assignments. The remainder count is informational, not a failure.
func (ps *PlanningSession) AutoAssign(logger *zap.Logger) assignment.Result {
	result := assignment.AutoAssign(ps.Store, ps.Roster.Divers)
	logger.Info("Auto-assignment finished",
		zap.Int("placed", result.Placed),
		zap.Int("unplaced", len(result.Unplaced)))
	return result
}

// Validate computes the blocking issues for the current working set
func (ps *PlanningSession) Validate() []validate.UnitIssues {
	return validate.Check(validate.Input{
		Session:       ps.Session,
		ShoreSiteName: ps.shoreSiteName,
		Store:         ps.Store,
		PlannedSites:  ps.PlannedSites,
		Sites:         ps.sitesByID,
	})
}

// CaptainCandidates lists active captain-eligible staff
func (ps *PlanningSession) CaptainCandidates() []model.Staff {
	return ps.staffWithEligibility(model.StaffRole.CanCaptain)
}

// GuideCandidates lists active guide-eligible staff
func (ps *PlanningSession) GuideCandidates() []model.Staff {
	return ps.staffWithEligibility(model.StaffRole.CanGuide)
}

// TraineeCandidates lists active trainee-eligible staff
func (ps *PlanningSession) TraineeCandidates() []model.Staff {
	return ps.staffWithEligibility(model.StaffRole.CanTrainee)
}

func (ps *PlanningSession) staffWithEligibility(eligible func(model.StaffRole) bool) []model.Staff {
	var out []model.Staff
	for _, s := range ps.staff {
		if s.Active && eligible(s.Role) {
			out = append(out, s)
		}
	}
	return out
}

// Diver looks up a roster diver by id
func (ps *PlanningSession) Diver(id string) (model.Diver, bool) {
	d, ok := ps.diversByID[id]
	return d, ok
}

// SkillCounts tallies the skill mix of a unit's assigned divers
func (ps *PlanningSession) SkillCounts(unitID string) map[model.SkillLevel]int {
	return ps.Store.SkillCounts(unitID, ps.diversByID)
}
