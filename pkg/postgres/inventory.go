package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/calaazul/diveops/pkg/db"
)

// The inventory tables (booking, customer, boat, staff, dive_site) are owned
// and written by the booking and inventory systems; this module only reads
// them.

// GetBookingsForDate retrieves the bookings for a location on a single date
func (d *DB) GetBookingsForDate(ctx context.Context, locationID, date string) ([]db.Booking, error) {
	rows, err := d.pool.Query(ctx, bookingSelect+`
		WHERE location_id = $1 AND booking_date = $2
	`, locationID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()
	return collectBookings(rows)
}

// GetBookingsSince retrieves every booking dated on or after the given date,
// across locations. Used to build the recent-site exclusion window.
func (d *DB) GetBookingsSince(ctx context.Context, since string) ([]db.Booking, error) {
	rows, err := d.pool.Query(ctx, bookingSelect+`
		WHERE booking_date >= $1
	`, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()
	return collectBookings(rows)
}

const bookingSelect = `
	SELECT id, customer_id, location_id, booking_date, status, payment_status,
		activity_type,
		session_morning, session_midday, session_afternoon, session_night,
		dive_site_id
	FROM booking
`

func collectBookings(rows pgx.Rows) ([]db.Booking, error) {
	var bookings []db.Booking
	for rows.Next() {
		var b db.Booking
		var activityType, diveSiteID *string
		if err := rows.Scan(&b.ID, &b.CustomerID, &b.LocationID, &b.BookingDate,
			&b.Status, &b.PaymentStatus, &activityType,
			&b.SessionMorning, &b.SessionMidday, &b.SessionAfternoon, &b.SessionNight,
			&diveSiteID); err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		if activityType != nil {
			b.ActivityType = *activityType
		}
		if diveSiteID != nil {
			b.DiveSiteID = *diveSiteID
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bookings: %w", err)
	}

	return bookings, nil
}

// GetCustomers retrieves all customer records
func (d *DB) GetCustomers(ctx context.Context) ([]db.Customer, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, first_name, last_name, email, skill_level, gender, nationality,
			certifications, own_equipment,
			tank_size, bcd_size, fins_size, boots_size, wetsuit_size
		FROM customer
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	var customers []db.Customer
	for rows.Next() {
		var c db.Customer
		var gender, nationality, tank, bcd, fins, boots, wetsuit *string
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email,
			&c.SkillLevel, &gender, &nationality,
			&c.Certifications, &c.OwnEquipment,
			&tank, &bcd, &fins, &boots, &wetsuit); err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		if gender != nil {
			c.Gender = *gender
		}
		if nationality != nil {
			c.Nationality = *nationality
		}
		if tank != nil {
			c.TankSize = *tank
		}
		if bcd != nil {
			c.BCDSize = *bcd
		}
		if fins != nil {
			c.FinsSize = *fins
		}
		if boots != nil {
			c.BootsSize = *boots
		}
		if wetsuit != nil {
			c.WetsuitSize = *wetsuit
		}
		customers = append(customers, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating customers: %w", err)
	}

	return customers, nil
}

// GetBoats retrieves the boat inventory for a location, in inventory order
func (d *DB) GetBoats(ctx context.Context, locationID string) ([]db.Boat, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, name, capacity, location_id, active
		FROM boat
		WHERE location_id = $1
		ORDER BY name
	`, locationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query boats: %w", err)
	}
	defer rows.Close()

	var boats []db.Boat
	for rows.Next() {
		var b db.Boat
		if err := rows.Scan(&b.ID, &b.Name, &b.Capacity, &b.LocationID, &b.Active); err != nil {
			return nil, fmt.Errorf("failed to scan boat: %w", err)
		}
		boats = append(boats, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating boats: %w", err)
	}

	return boats, nil
}

// GetStaff retrieves all staff records
func (d *DB) GetStaff(ctx context.Context) ([]db.Staff, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, name, role, active
		FROM staff
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query staff: %w", err)
	}
	defer rows.Close()

	var staff []db.Staff
	for rows.Next() {
		var s db.Staff
		if err := rows.Scan(&s.ID, &s.Name, &s.Role, &s.Active); err != nil {
			return nil, fmt.Errorf("failed to scan staff: %w", err)
		}
		staff = append(staff, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating staff: %w", err)
	}

	return staff, nil
}

// GetDiveSites retrieves the dive-site inventory for a location, in inventory
// order
func (d *DB) GetDiveSites(ctx context.Context, locationID string) ([]db.DiveSite, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, name, location_id, difficulty_level
		FROM dive_site
		WHERE location_id = $1
		ORDER BY name
	`, locationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query dive sites: %w", err)
	}
	defer rows.Close()

	var sites []db.DiveSite
	for rows.Next() {
		var s db.DiveSite
		var difficulty *string
		if err := rows.Scan(&s.ID, &s.Name, &s.LocationID, &difficulty); err != nil {
			return nil, fmt.Errorf("failed to scan dive site: %w", err)
		}
		if difficulty != nil {
			s.DifficultyLevel = *difficulty
		}
		sites = append(sites, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating dive sites: %w", err)
	}

	return sites, nil
}
