// Package compliance derives the regulatory report from completed
// dive-operation plans and renders it in the two required formats.
package compliance

import (
	"strings"

	"github.com/calaazul/diveops/pkg/core/model"
	"github.com/calaazul/diveops/pkg/db"
)

// DiverRow is one roster line in the printable report
type DiverRow struct {
	Name                 string
	Gender               string
	HighestCertification string
	Nationality          string
}

// Record is the aggregate derived from one completed plan
type Record struct {
	Date     string
	Session  string
	UnitName string // "Shore Dive" for the shore group
	SiteName string

	EntryTime string
	ExitTime  string

	TotalDivers       int
	MaleDivers        int
	FemaleDivers      int
	UnspecifiedGender int

	GuideCount  int
	CaptainName string
	Notes       string

	// Roster and Guides feed the printable document only
	Roster []DiverRow
	Guides []string
}

// Lookup indexes the inventories a report needs to resolve names
type Lookup struct {
	Boats  map[string]model.Boat
	Sites  map[string]model.DiveSite
	Staff  map[string]model.Staff
	Divers map[string]model.Diver
}

// Aggregate builds one record per completed plan. Plans that are merely
// planned, committed or confirmed are excluded: the report is a record of
// what happened, not what was intended.
func Aggregate(plans []db.DiveOperationPlan, lookup Lookup) []Record {
	records := make([]Record, 0, len(plans))
	for i := range plans {
		plan := &plans[i]
		if !plan.Completed {
			continue
		}
		records = append(records, buildRecord(plan, lookup))
	}
	return records
}

func buildRecord(plan *db.DiveOperationPlan, lookup Lookup) Record {
	rec := Record{
		Date:      plan.Date,
		Session:   plan.Session,
		UnitName:  "Shore Dive",
		EntryTime: plan.EntryTime,
		ExitTime:  plan.ExitTime,
		Notes:     plan.Notes,
	}

	if !plan.IsShore() {
		if boat, ok := lookup.Boats[plan.BoatID]; ok {
			rec.UnitName = boat.Name
		} else {
			rec.UnitName = plan.BoatID
		}
	}
	if site, ok := lookup.Sites[plan.ActualSiteID]; ok {
		rec.SiteName = site.Name
	}

	rec.TotalDivers = len(plan.DiverIDs)
	for _, id := range plan.DiverIDs {
		diver, ok := lookup.Divers[id]
		switch {
		case ok && strings.EqualFold(diver.Gender, "male"):
			rec.MaleDivers++
		case ok && strings.EqualFold(diver.Gender, "female"):
			rec.FemaleDivers++
		default:
			rec.UnspecifiedGender++
		}
		row := DiverRow{Name: id}
		if ok {
			row.Name = diver.FullName()
			row.Gender = genderBucket(diver.Gender)
			row.HighestCertification = HighestCertification(diver.Certifications)
			row.Nationality = diver.Nationality
		}
		rec.Roster = append(rec.Roster, row)
	}

	rec.GuideCount = len(plan.GuideIDs)
	for _, id := range plan.GuideIDs {
		if s, ok := lookup.Staff[id]; ok {
			rec.Guides = append(rec.Guides, s.Name)
		} else {
			rec.Guides = append(rec.Guides, id)
		}
	}
	if plan.CaptainID != "" {
		if s, ok := lookup.Staff[plan.CaptainID]; ok {
			rec.CaptainName = s.Name
		} else {
			rec.CaptainName = plan.CaptainID
		}
	}
	return rec
}

func genderBucket(gender string) string {
	switch strings.ToLower(gender) {
	case "male":
		return "male"
	case "female":
		return "female"
	default:
		return "unspecified"
	}
}

// certificationRank orders recognised certifications; anything unlisted
// ranks below all of them.
var certificationRank = map[string]int{
	"open water":          1,
	"advanced open water": 2,
	"rescue diver":        3,
	"divemaster":          4,
	"instructor":          5,
}

// HighestCertification picks the highest-ranked certification a diver
// holds. Unrecognised certifications never outrank recognised ones; with
// no recognised entries the first listed certification is returned.
func HighestCertification(certs []string) string {
	best := ""
	bestRank := 0
	for _, c := range certs {
		if rank, ok := certificationRank[strings.ToLower(c)]; ok && rank > bestRank {
			best = c
			bestRank = rank
		}
	}
	if best == "" && len(certs) > 0 {
		return certs[0]
	}
	return best
}
