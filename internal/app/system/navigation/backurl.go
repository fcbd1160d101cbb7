// Package navigation provides helpers for safe URL navigation and redirects.
package navigation

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/urlutil"
)

// BackURLOptions configures the behavior of SafeBackURL.
type BackURLOptions struct {
	// AllowedPrefix is the required URL prefix (e.g., "/bookings", "/drivers").
	// If empty, any safe URL is allowed.
	AllowedPrefix string

	// ExcludedSubpaths are subpath patterns to reject (e.g., "/edit", "/delete", "/new").
	// These prevent redirect loops back to action pages.
	ExcludedSubpaths []string

	// Fallback is the default URL if no valid return URL is found.
	Fallback string

	// PreserveQueryParam is an optional query parameter to preserve in the fallback URL.
	// For example, "customer" would check for a customer parameter and append it to the fallback.
	PreserveQueryParam string
}

// SafeBackURL extracts and validates a return URL from the request.
//
// It checks both the query parameter and form value for "return", validates
// the URL is safe (not an open redirect), optionally validates the prefix,
// and excludes specified subpaths to prevent redirect loops.
//
// Example usage:
//
//	url := navigation.SafeBackURL(r, navigation.BookingsBackURL)
func SafeBackURL(r *http.Request, opts BackURLOptions) string {
	// Try query parameter first, then form value
	ret := urlutil.SafeReturn(query.Get(r, "return"), "", "")
	if ret == "" {
		ret = urlutil.SafeReturn(strings.TrimSpace(r.FormValue("return")), "", "")
	}

	// Validate against allowed prefix if specified
	if ret != "" {
		valid := true

		if opts.AllowedPrefix != "" && !strings.HasPrefix(ret, opts.AllowedPrefix) {
			valid = false
		}

		// Check excluded subpaths
		for _, excluded := range opts.ExcludedSubpaths {
			if strings.Contains(ret, excluded) {
				valid = false
				break
			}
		}

		if valid {
			return ret
		}
	}

	// Build fallback URL, optionally preserving a query parameter
	fallback := opts.Fallback
	if opts.PreserveQueryParam != "" {
		param := query.Get(r, opts.PreserveQueryParam)
		if param == "" {
			param = strings.TrimSpace(r.FormValue(opts.PreserveQueryParam))
		}
		if param == "" {
			// Forms post the id as e.g. "customerID"
			param = strings.TrimSpace(r.FormValue(opts.PreserveQueryParam + "ID"))
		}
		if param != "" && param != "all" {
			sep := "?"
			if strings.Contains(fallback, "?") {
				sep = "&"
			}
			fallback += sep + opts.PreserveQueryParam + "=" + url.QueryEscape(param)
		}
	}

	return fallback
}

// Common back URL configurations for reuse across packages.
var (
	CustomersBackURL = BackURLOptions{
		AllowedPrefix:    "/customers",
		ExcludedSubpaths: []string{"/edit", "/delete", "/status"},
		Fallback:         "/customers",
	}

	DriversBackURL = BackURLOptions{
		AllowedPrefix:    "/drivers",
		ExcludedSubpaths: []string{"/edit", "/delete", "/new", "/availability"},
		Fallback:         "/drivers",
	}

	TankersBackURL = BackURLOptions{
		AllowedPrefix:    "/tankers",
		ExcludedSubpaths: []string{"/edit", "/delete", "/new"},
		Fallback:         "/tankers",
	}

	// BookingsBackURL keeps the customer filter when returning to the list.
	BookingsBackURL = BackURLOptions{
		AllowedPrefix:      "/bookings",
		ExcludedSubpaths:   []string{"/edit", "/delete", "/new", "/status", "/assign"},
		Fallback:           "/bookings",
		PreserveQueryParam: "customer",
	}

	SensorsBackURL = BackURLOptions{
		AllowedPrefix:    "/sensors",
		ExcludedSubpaths: []string{"/edit", "/delete", "/new"},
		Fallback:         "/sensors",
	}

	NotificationsBackURL = BackURLOptions{
		AllowedPrefix:    "/notifications",
		ExcludedSubpaths: []string{"/delete", "/new"},
		Fallback:         "/notifications",
	}

	ComplaintsBackURL = BackURLOptions{
		AllowedPrefix:    "/complaints",
		ExcludedSubpaths: []string{"/delete", "/status"},
		Fallback:         "/complaints",
	}

	AdminsBackURL = BackURLOptions{
		AllowedPrefix:    "/admins",
		ExcludedSubpaths: []string{"/edit", "/delete", "/new", "/status"},
		Fallback:         "/admins",
	}
)
