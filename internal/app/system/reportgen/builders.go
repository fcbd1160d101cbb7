package reportgen

import (
	"sort"
	"strings"
	"time"

	"github.com/dalemusser/tankerhub/internal/domain/models"
)

// Section keys accepted by the report form.
const (
	SectionBookings   = "bookings"
	SectionDrivers    = "drivers"
	SectionTankers    = "tankers"
	SectionCustomers  = "customers"
	SectionSensors    = "sensors"
	SectionComplaints = "complaints"
)

// SectionKeys lists every section in report order.
var SectionKeys = []string{
	SectionBookings,
	SectionDrivers,
	SectionTankers,
	SectionCustomers,
	SectionSensors,
	SectionComplaints,
}

// ValidSection reports whether key names a section.
func ValidSection(key string) bool {
	for _, k := range SectionKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Builder turns entity lists into report sections. From and To bound the
// dated sections by calendar day; zero values leave that side open.
type Builder struct {
	Fmt       Formatter
	From      time.Time
	To        time.Time
	Threshold float64
}

// Report wraps sections into a document.
func (b Builder) Report(title, company string, generated time.Time, sections ...Section) Report {
	return Report{
		Title:     title,
		Company:   company,
		Generated: generated,
		From:      b.From,
		To:        b.To,
		Sections:  sections,
	}
}

// inPeriod reports whether t falls on a calendar day of the period. Days
// are counted in the location From and To were parsed in.
func (b Builder) inPeriod(t time.Time) bool {
	if b.From.IsZero() && b.To.IsZero() {
		return true
	}
	if t.IsZero() {
		return false
	}
	if !b.From.IsZero() {
		start := time.Date(b.From.Year(), b.From.Month(), b.From.Day(), 0, 0, 0, 0, b.From.Location())
		if t.Before(start) {
			return false
		}
	}
	if !b.To.IsZero() {
		end := time.Date(b.To.Year(), b.To.Month(), b.To.Day(), 0, 0, 0, 0, b.To.Location()).AddDate(0, 0, 1)
		if !t.Before(end) {
			return false
		}
	}
	return true
}

func title(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	if s == "" {
		return "-"
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func bookingDate(bk models.Booking) time.Time {
	if !bk.ScheduledAt.IsZero() {
		return bk.ScheduledAt
	}
	return bk.CreatedAt
}

// Bookings summarises bookings scheduled in the period: counts by status,
// delivered volume and delivered revenue.
func (b Builder) Bookings(all []models.Booking) Section {
	var rows []models.Booking
	for _, bk := range all {
		if b.inPeriod(bookingDate(bk)) {
			rows = append(rows, bk)
		}
	}
	sort.SliceStable(rows, func(i, j int) bool { return bookingDate(rows[i]).After(bookingDate(rows[j])) })

	byStatus := map[string]int{}
	var liters, deliveredLiters int
	var price, revenue float64
	for _, bk := range rows {
		byStatus[bk.Status]++
		liters += bk.Liters
		price += bk.Price
		if bk.Status == models.BookingDelivered {
			deliveredLiters += bk.Liters
			revenue += bk.Price
		}
	}

	sec := Section{
		Title:   "Bookings",
		Summary: []KV{{"Total bookings", b.Fmt.Int(len(rows))}},
		Table: Table{Columns: []Column{
			{Header: "Date", Width: 1.1},
			{Header: "Customer", Width: 1.4},
			{Header: "Address", Width: 2},
			{Header: "Liters", Width: 0.8, Align: AlignRight},
			{Header: "Price", Width: 1.1, Align: AlignRight},
			{Header: "Status", Width: 0.9},
			{Header: "Driver", Width: 1.1},
		}},
	}
	for _, st := range models.BookingStatuses {
		sec.Summary = append(sec.Summary, KV{title(st), b.Fmt.Int(byStatus[st])})
	}
	sec.Summary = append(sec.Summary,
		KV{"Liters delivered", b.Fmt.Int(deliveredLiters)},
		KV{"Delivered revenue", b.Fmt.Money(revenue)},
	)

	for _, bk := range rows {
		sec.Table.Rows = append(sec.Table.Rows, []string{
			Date(bookingDate(bk)),
			orDash(bk.CustomerName),
			orDash(bk.Address),
			b.Fmt.Int(bk.Liters),
			b.Fmt.Money(bk.Price),
			title(bk.Status),
			orDash(bk.DriverName),
		})
	}
	if len(rows) > 0 {
		sec.Table.Totals = []string{"Total", "", "", b.Fmt.Int(liters), b.Fmt.Money(price), "", ""}
	}
	return sec
}

// Drivers lists every driver with availability counts.
func (b Builder) Drivers(all []models.Driver) Section {
	rows := append([]models.Driver(nil), all...)
	sort.SliceStable(rows, func(i, j int) bool { return strings.ToLower(rows[i].Name) < strings.ToLower(rows[j].Name) })

	var available, inactive int
	for _, d := range rows {
		if d.Available {
			available++
		}
		if d.Status == models.StatusInactive {
			inactive++
		}
	}

	sec := Section{
		Title: "Drivers",
		Summary: []KV{
			{"Total drivers", b.Fmt.Int(len(rows))},
			{"Available", b.Fmt.Int(available)},
			{"Unavailable", b.Fmt.Int(len(rows) - available)},
			{"Inactive", b.Fmt.Int(inactive)},
		},
		Table: Table{Columns: []Column{
			{Header: "Name", Width: 1.6},
			{Header: "Phone", Width: 1.2},
			{Header: "License", Width: 1.2},
			{Header: "Availability", Width: 1},
			{Header: "Status", Width: 0.8},
		}},
	}
	for _, d := range rows {
		sec.Table.Rows = append(sec.Table.Rows, []string{
			orDash(d.Name), orDash(d.Phone), orDash(d.LicenseNumber), title(d.Availability()), title(orDash(d.Status)),
		})
	}
	return sec
}

// Tankers lists the fleet with counts by status and total capacity.
func (b Builder) Tankers(all []models.Tanker) Section {
	rows := append([]models.Tanker(nil), all...)
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].PlateNumber < rows[j].PlateNumber })

	byStatus := map[string]int{}
	var capacity, activeCapacity int
	for _, t := range rows {
		byStatus[t.Status]++
		capacity += t.CapacityLiters
		if t.IsActive() {
			activeCapacity += t.CapacityLiters
		}
	}

	sec := Section{
		Title:   "Tankers",
		Summary: []KV{{"Total tankers", b.Fmt.Int(len(rows))}},
		Table: Table{Columns: []Column{
			{Header: "Plate", Width: 1.2},
			{Header: "Model", Width: 1.6},
			{Header: "Capacity (L)", Width: 1, Align: AlignRight},
			{Header: "Status", Width: 1},
		}},
	}
	for _, st := range models.TankerStatuses {
		sec.Summary = append(sec.Summary, KV{title(st), b.Fmt.Int(byStatus[st])})
	}
	sec.Summary = append(sec.Summary,
		KV{"Fleet capacity (L)", b.Fmt.Int(capacity)},
		KV{"Active capacity (L)", b.Fmt.Int(activeCapacity)},
	)
	for _, t := range rows {
		sec.Table.Rows = append(sec.Table.Rows, []string{
			orDash(t.PlateNumber), orDash(t.Model), b.Fmt.Int(t.CapacityLiters), title(t.Status),
		})
	}
	if len(rows) > 0 {
		sec.Table.Totals = []string{"Total", "", b.Fmt.Int(capacity), ""}
	}
	return sec
}

// Customers lists customers with status counts and sign-ups in the period.
func (b Builder) Customers(all []models.Customer) Section {
	rows := append([]models.Customer(nil), all...)
	sort.SliceStable(rows, func(i, j int) bool { return strings.ToLower(rows[i].Name) < strings.ToLower(rows[j].Name) })

	var blocked, joined int
	for _, c := range rows {
		if c.Status == models.StatusBlocked {
			blocked++
		}
		if (!b.From.IsZero() || !b.To.IsZero()) && b.inPeriod(c.CreatedAt) {
			joined++
		}
	}

	sec := Section{
		Title: "Customers",
		Summary: []KV{
			{"Total customers", b.Fmt.Int(len(rows))},
			{"Active", b.Fmt.Int(len(rows) - blocked)},
			{"Blocked", b.Fmt.Int(blocked)},
		},
		Table: Table{Columns: []Column{
			{Header: "Name", Width: 1.4},
			{Header: "Email", Width: 1.8},
			{Header: "Phone", Width: 1.1},
			{Header: "City", Width: 0.9},
			{Header: "Status", Width: 0.7},
			{Header: "Joined", Width: 1},
		}},
	}
	if !b.From.IsZero() || !b.To.IsZero() {
		sec.Summary = append(sec.Summary, KV{"Joined in period", b.Fmt.Int(joined)})
	}
	for _, c := range rows {
		sec.Table.Rows = append(sec.Table.Rows, []string{
			orDash(c.Name), orDash(c.Email), orDash(c.Phone), orDash(c.City), title(orDash(c.Status)), Date(c.CreatedAt),
		})
	}
	return sec
}

// Sensors summarises sensor health and lists tanks at or below the
// low-level threshold, lowest first.
func (b Builder) Sensors(all []models.Sensor) Section {
	var online, offline int
	var low []models.Sensor
	for _, s := range all {
		switch models.Key(s.Status) {
		case models.SensorOnline:
			online++
		case models.SensorOffline:
			offline++
		}
		if s.IsLow(b.Threshold) {
			low = append(low, s)
		}
	}
	sort.SliceStable(low, func(i, j int) bool { return low[i].LevelPercent < low[j].LevelPercent })

	sec := Section{
		Title: "Sensors",
		Summary: []KV{
			{"Total sensors", b.Fmt.Int(len(all))},
			{"Online", b.Fmt.Int(online)},
			{"Offline", b.Fmt.Int(offline)},
			{"Low level threshold", b.Fmt.Percent(b.Threshold)},
			{"Low level tanks", b.Fmt.Int(len(low))},
		},
		Table: Table{Columns: []Column{
			{Header: "Sensor", Width: 1.4},
			{Header: "Device", Width: 1},
			{Header: "Customer", Width: 1.3},
			{Header: "Location", Width: 1.5},
			{Header: "Level", Width: 0.7, Align: AlignRight},
			{Header: "Liters", Width: 0.8, Align: AlignRight},
			{Header: "Last reading", Width: 1.3},
		}},
	}
	for _, s := range low {
		sec.Table.Rows = append(sec.Table.Rows, []string{
			orDash(s.Name), orDash(s.DeviceID), orDash(s.CustomerName), orDash(s.Location),
			b.Fmt.Percent(s.LevelPercent), b.Fmt.Int(s.Liters()), DateTime(s.LastReadingAt),
		})
	}
	return sec
}

// Complaints summarises complaints raised in the period by status.
func (b Builder) Complaints(all []models.Complaint) Section {
	var rows []models.Complaint
	for _, c := range all {
		if b.inPeriod(c.CreatedAt) {
			rows = append(rows, c)
		}
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].CreatedAt.After(rows[j].CreatedAt) })

	byStatus := map[string]int{}
	for _, c := range rows {
		byStatus[c.Status]++
	}

	sec := Section{
		Title:   "Complaints",
		Summary: []KV{{"Total complaints", b.Fmt.Int(len(rows))}},
		Table: Table{Columns: []Column{
			{Header: "Date", Width: 1},
			{Header: "Customer", Width: 1.3},
			{Header: "Subject", Width: 2.6},
			{Header: "Status", Width: 1},
		}},
	}
	for _, st := range models.ComplaintStatuses {
		sec.Summary = append(sec.Summary, KV{title(st), b.Fmt.Int(byStatus[st])})
	}
	for _, c := range rows {
		sec.Table.Rows = append(sec.Table.Rows, []string{
			Date(c.CreatedAt), orDash(c.CustomerName), orDash(c.Subject), title(c.Status),
		})
	}
	return sec
}
