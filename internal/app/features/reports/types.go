package reports

import (
	"github.com/dalemusser/tankerhub/internal/app/system/formutil"
	"github.com/dalemusser/tankerhub/internal/app/system/reportgen"
)

const reportTitle = "TankerHub Operations Report"

var sectionLabels = map[string]string{
	reportgen.SectionBookings:   "Bookings and revenue",
	reportgen.SectionDrivers:    "Drivers",
	reportgen.SectionTankers:    "Tanker fleet",
	reportgen.SectionCustomers:  "Customers",
	reportgen.SectionSensors:    "Tank sensors",
	reportgen.SectionComplaints: "Complaints",
}

// sectionOption is one checkbox on the report form.
type sectionOption struct {
	Key     string
	Label   string
	Checked bool
}

// formData is the view model for the report form.
type formData struct {
	formutil.Base

	Sections []sectionOption
	From     string
	To       string
	Format   string
	Formats  []string
}

// reportInput defines validation rules for a report request.
type reportInput struct {
	Sections []string `validate:"min=1,dive,oneof=bookings drivers tankers customers sensors complaints" label:"Sections"`
	Format   string   `validate:"required,oneof=pdf xlsx csv" label:"Format"`
}

// options builds the checkbox list; every section is ticked when none is
// chosen yet.
func options(chosen []string) []sectionOption {
	set := make(map[string]bool, len(chosen))
	for _, k := range chosen {
		set[k] = true
	}
	out := make([]sectionOption, 0, len(reportgen.SectionKeys))
	for _, k := range reportgen.SectionKeys {
		out = append(out, sectionOption{Key: k, Label: sectionLabels[k], Checked: len(chosen) == 0 || set[k]})
	}
	return out
}

// ordered returns the chosen sections in report order, dropping
// duplicates and unknown keys.
func ordered(chosen []string) []string {
	set := make(map[string]bool, len(chosen))
	for _, k := range chosen {
		set[k] = true
	}
	var out []string
	for _, k := range reportgen.SectionKeys {
		if set[k] {
			out = append(out, k)
		}
	}
	return out
}
