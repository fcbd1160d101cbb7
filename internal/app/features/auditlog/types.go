// internal/app/features/auditlog/types.go
package auditlog

import (
	"net/url"
	"strconv"
	"time"

	"github.com/dalemusser/tankerhub/internal/app/store/audit"
	"github.com/dalemusser/tankerhub/internal/app/system/paging"
	"github.com/dalemusser/tankerhub/internal/app/system/viewdata"
)

const pageSize = 50

// listData is the view model for the audit log list page.
type listData struct {
	viewdata.BaseVM

	Items []audit.Event

	// Filters
	Category   string
	EventType  string
	ActorEmail string
	StartDate  string
	EndDate    string

	Categories []categoryOption
	EventTypes []string

	Window    paging.Window
	PrevQuery string
	NextQuery string
}

type categoryOption struct {
	Value string
	Label string
}

func allCategories() []categoryOption {
	return []categoryOption{
		{Value: audit.CategoryAuth, Label: "Authentication"},
		{Value: audit.CategoryAdmin, Label: "Administration"},
	}
}

var authEvents = []string{
	audit.EventLoginSuccess,
	audit.EventLoginFailed,
	audit.EventLoginFailedDisabled,
	audit.EventLoginFailedUnreachable,
	audit.EventLogout,
	audit.EventSessionRejected,
}

var adminEvents = []string{
	audit.EventEntityCreated,
	audit.EventEntityUpdated,
	audit.EventEntityDeleted,
	audit.EventEntityStatusChanged,
	audit.EventBookingAssigned,
	audit.EventDriverAvailability,
	audit.EventNotificationSent,
	audit.EventReportGenerated,
	audit.EventAuditExported,
}

// eventTypesForCategory returns the event types of category, or all of
// them when category is empty or unknown.
func eventTypesForCategory(category string) []string {
	switch category {
	case audit.CategoryAuth:
		return authEvents
	case audit.CategoryAdmin:
		return adminEvents
	}
	out := make([]string, 0, len(authEvents)+len(adminEvents))
	out = append(out, authEvents...)
	return append(out, adminEvents...)
}

func validCategory(c string) bool {
	return c == audit.CategoryAuth || c == audit.CategoryAdmin
}

func validEventType(category, e string) bool {
	for _, v := range eventTypesForCategory(category) {
		if v == e {
			return true
		}
	}
	return false
}

// parseDay reads a yyyy-mm-dd date as local midnight, the zone the
// dashboard shows times in; ok is false for blank or malformed input.
func parseDay(s string) (time.Time, bool) {
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	return t, err == nil
}

// pageQuery rebuilds the filter query string for page.
func (d listData) pageQuery(page int) string {
	v := url.Values{}
	set := func(k, s string) {
		if s != "" {
			v.Set(k, s)
		}
	}
	set("category", d.Category)
	set("event_type", d.EventType)
	set("actor", d.ActorEmail)
	set("start_date", d.StartDate)
	set("end_date", d.EndDate)
	if page > 1 {
		v.Set("page", strconv.Itoa(page))
	}
	return v.Encode()
}
