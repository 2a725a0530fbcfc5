package services

import (
	"github.com/calaazul/diveops/pkg/core/model"
	"github.com/calaazul/diveops/pkg/db"
)

func diverFromCustomer(c db.Customer) model.Diver {
	return model.Diver{
		ID:             c.ID,
		FirstName:      c.FirstName,
		LastName:       c.LastName,
		Email:          c.Email,
		SkillLevel:     model.ParseSkillLevel(c.SkillLevel),
		Gender:         c.Gender,
		Nationality:    c.Nationality,
		Certifications: c.Certifications,
		Equipment: model.EquipmentPreferences{
			OwnEquipment: c.OwnEquipment,
			TankSize:     c.TankSize,
			BCDSize:      c.BCDSize,
			FinsSize:     c.FinsSize,
			BootsSize:    c.BootsSize,
			WetsuitSize:  c.WetsuitSize,
		},
	}
}

func bookingFromRecord(b db.Booking) model.Booking {
	booking := model.Booking{
		ID:            b.ID,
		CustomerID:    b.CustomerID,
		LocationID:    b.LocationID,
		BookingDate:   b.BookingDate,
		Status:        b.Status,
		PaymentStatus: b.PaymentStatus,
		DiveSiteID:    b.DiveSiteID,
	}
	if b.ActivityType != "" {
		booking.Activity = model.SingleActivity{Type: model.ActivityType(b.ActivityType)}
	} else {
		booking.Activity = model.DivingSessions{
			Morning:   b.SessionMorning,
			Midday:    b.SessionMidday,
			Afternoon: b.SessionAfternoon,
			Night:     b.SessionNight,
		}
	}
	return booking
}

func boatFromRecord(b db.Boat) model.Boat {
	return model.Boat{ID: b.ID, Name: b.Name, Capacity: b.Capacity, LocationID: b.LocationID, Active: b.Active}
}

func staffFromRecord(s db.Staff) model.Staff {
	return model.Staff{ID: s.ID, Name: s.Name, Role: model.StaffRole(s.Role), Active: s.Active}
}

func siteFromRecord(s db.DiveSite) model.DiveSite {
	return model.DiveSite{
		ID:         s.ID,
		Name:       s.Name,
		LocationID: s.LocationID,
		Difficulty: model.ParseSkillLevel(s.DifficultyLevel),
	}
}
