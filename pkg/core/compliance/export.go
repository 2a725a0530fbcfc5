package compliance

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"text/template"
	"time"
)

// csvHeader is the fixed tabular export header required by the regulator
var csvHeader = []string{
	"Date", "Session", "Boat/Dive Type", "Dive Site", "Entry Time",
	"Exit Time", "Total Divers", "Male Divers", "Female Divers",
	"Unspecified Gender", "Total Guides", "Captain", "Notes",
}

// WriteCSV renders the tabular export: a header row plus one data row per
// completed plan. encoding/csv escapes embedded separators and quotes in
// the free-text fields.
func WriteCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, r := range records {
		row := []string{
			r.Date, r.Session, r.UnitName, r.SiteName, r.EntryTime,
			r.ExitTime,
			strconv.Itoa(r.TotalDivers),
			strconv.Itoa(r.MaleDivers),
			strconv.Itoa(r.FemaleDivers),
			strconv.Itoa(r.UnspecifiedGender),
			strconv.Itoa(r.GuideCount),
			r.CaptainName, r.Notes,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// regulatoryFooter is the static citation appended to every document export
const regulatoryFooter = "Registro de actividades subacuáticas conforme al " +
	"Real Decreto 550/2020 sobre actividades de buceo recreativo. " +
	"This record must be retained and made available to the maritime " +
	"authority on request."

const documentTemplate = `DIVE OPERATION COMPLIANCE REPORT
Generated: {{.GeneratedAt}}
{{range .Records}}
--------------------------------------------------------------------------
Date: {{.Date}}    Session: {{.Session}}    Unit: {{.UnitName}}
Dive Site: {{.SiteName}}
Entry: {{orDash .EntryTime}}    Exit: {{orDash .ExitTime}}
Divers: {{.TotalDivers}} (male {{.MaleDivers}}, female {{.FemaleDivers}}, unspecified {{.UnspecifiedGender}})
Captain: {{orDash .CaptainName}}
Guides ({{.GuideCount}}):{{range .Guides}} {{.}};{{end}}
{{- if .Notes}}
Notes: {{.Notes}}
{{- end}}

Roster:
{{- range .Roster}}
  {{.Name}} | {{orDash .Gender}} | {{orDash .HighestCertification}} | {{orDash .Nationality}}
{{- end}}
{{end}}
--------------------------------------------------------------------------
{{.Footer}}
`

var docTmpl = template.Must(template.New("compliance").Funcs(template.FuncMap{
	"orDash": func(s string) string {
		if s == "" {
			return "-"
		}
		return s
	},
}).Parse(documentTemplate))

// WriteDocument renders the printable report: one section per completed
// plan with the full diver roster and guide list, a generation timestamp
// and the regulatory citation footer.
func WriteDocument(w io.Writer, records []Record, generatedAt time.Time) error {
	data := struct {
		GeneratedAt string
		Records     []Record
		Footer      string
	}{
		GeneratedAt: generatedAt.Format("2006-01-02 15:04:05"),
		Records:     records,
		Footer:      regulatoryFooter,
	}
	if err := docTmpl.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render document: %w", err)
	}
	return nil
}
