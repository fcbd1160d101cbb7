package navigation

import "strings"

// Item is one entry of the sidebar.
type Item struct {
	Label  string
	Href   string
	Active bool
}

var adminMenu = []Item{
	{Label: "Dashboard", Href: "/dashboard"},
	{Label: "Customers", Href: "/customers"},
	{Label: "Bookings", Href: "/bookings"},
	{Label: "Drivers", Href: "/drivers"},
	{Label: "Tankers", Href: "/tankers"},
	{Label: "Sensors", Href: "/sensors"},
	{Label: "Complaints", Href: "/complaints"},
	{Label: "Notifications", Href: "/notifications"},
	{Label: "Reports", Href: "/reports"},
	{Label: "Audit Logs", Href: "/audit-logs"},
}

var superMenu = []Item{
	{Label: "Activity", Href: "/activity"},
	{Label: "Dashboard Audit", Href: "/audit"},
	{Label: "Admins", Href: "/admins"},
}

// Menu returns the sidebar for the signed-in role with the entry owning
// currentPath marked active.
func Menu(currentPath string, superAdmin bool) []Item {
	items := make([]Item, 0, len(adminMenu)+len(superMenu))
	items = append(items, adminMenu...)
	if superAdmin {
		items = append(items, superMenu...)
	}
	for i := range items {
		h := items[i].Href
		items[i].Active = currentPath == h || strings.HasPrefix(currentPath, h+"/")
	}
	return items
}
