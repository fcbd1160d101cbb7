// internal/app/system/normalize/normalize.go
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Email trims and lowercases an email address.
func Email(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// Name trims a display name and preserves case.
func Name(s string) string { return strings.TrimSpace(s) }

// Status trims and lowercases a status value.
func Status(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// Role trims and lowercases a role value.
func Role(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// QueryParam trims a free-text query parameter and preserves case.
func QueryParam(s string) string { return strings.TrimSpace(s) }

// Filter trims a select-box filter value; "all" means no filter and
// becomes "".
func Filter(s string) string {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "all") {
		return ""
	}
	return s
}

// Phone trims a phone number and drops spaces and dashes.
func Phone(s string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' {
			return -1
		}
		return r
	}, strings.TrimSpace(s))
}

// Fold lowercases s and strips combining marks so "Café" matches "cafe".
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}
