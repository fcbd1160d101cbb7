// internal/app/features/activity/types.go
package activity

import (
	"fmt"
	"strings"
	"time"

	activitystore "github.com/dalemusser/tankerhub/internal/app/store/activity"
	"github.com/dalemusser/tankerhub/internal/app/system/listing"
	"github.com/dalemusser/tankerhub/internal/app/system/viewdata"
)

const (
	tableID = "activity-table-wrap"

	// Presence of an open session.
	StatusOnline = "online"
	StatusIdle   = "idle"

	historyLimit = 50
)

var presenceStatuses = []string{StatusOnline, StatusIdle}

// sessionRow is one session with its display fields worked out.
type sessionRow struct {
	activitystore.Session
	Status   string // online, idle or closed
	Page     string
	Duration string
}

type onlineData struct {
	viewdata.BaseVM
	listing.View[sessionRow]
	Window string
}

type historyData struct {
	viewdata.BaseVM
	AdminID  string
	Email    string
	Name     string
	Sessions []sessionRow
	Total    string
}

var onlineSpec = listing.Spec[sessionRow]{
	Text: func(s sessionRow) []string {
		return []string{s.Name, s.Email, s.Role, s.Page, s.IP}
	},
	Status: func(s sessionRow) string { return s.Status },
	Sorts: map[string]func(a, b sessionRow) int{
		"name":   listing.ByString(func(s sessionRow) string { return s.Name }),
		"email":  listing.ByString(func(s sessionRow) string { return s.Email }),
		"login":  listing.ByTime(func(s sessionRow) time.Time { return s.LoginAt }),
		"active": listing.ByTime(func(s sessionRow) time.Time { return s.LastActiveAt }),
	},
	DefaultSort: "active",
	DefaultDesc: true,
}

// row classifies s at now. Open sessions quiet for longer than idleAfter
// are idle; the duration of an open session runs to now.
func row(s activitystore.Session, now time.Time, idleAfter time.Duration) sessionRow {
	out := sessionRow{Session: s, Page: pageName(s.CurrentPage)}
	switch {
	case !s.Open():
		out.Status = "closed"
		out.Duration = formatDuration(s.DurationSecs)
	case now.Sub(s.LastActiveAt) > idleAfter:
		out.Status = StatusIdle
		out.Duration = formatDuration(int64(now.Sub(s.LoginAt).Seconds()))
	default:
		out.Status = StatusOnline
		out.Duration = formatDuration(int64(now.Sub(s.LoginAt).Seconds()))
	}
	return out
}

// formatDuration formats seconds as a human-readable duration.
func formatDuration(secs int64) string {
	if secs < 0 {
		secs = 0
	}
	if secs < 60 {
		return fmt.Sprintf("%d sec", secs)
	}
	mins := secs / 60
	if mins < 60 {
		return fmt.Sprintf("%d min", mins)
	}
	hours := mins / 60
	remainingMins := mins % 60
	if remainingMins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, remainingMins)
}

var pageNames = map[string]string{
	"/":              "Dashboard",
	"/dashboard":     "Dashboard",
	"/customers":     "Customers",
	"/drivers":       "Drivers",
	"/tankers":       "Tankers",
	"/bookings":      "Bookings",
	"/sensors":       "Sensors",
	"/notifications": "Notifications",
	"/complaints":    "Complaints",
	"/audit-logs":    "Audit Logs",
	"/audit":         "Dashboard Audit Log",
	"/admins":        "Admins",
	"/reports":       "Reports",
	"/activity":      "Activity",
}

// pageName maps a request path to the section it belongs to, so
// /bookings/b1/edit reads as "Bookings".
func pageName(path string) string {
	if path == "" {
		return "-"
	}
	if name, ok := pageNames[path]; ok {
		return name
	}
	trimmed := strings.TrimPrefix(path, "/")
	if i := strings.Index(trimmed, "/"); i > 0 {
		if name, ok := pageNames["/"+trimmed[:i]]; ok {
			return name
		}
	}
	return path
}

func stamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02 15:04:05")
}
