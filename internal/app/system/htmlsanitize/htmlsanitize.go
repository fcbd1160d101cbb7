// Package htmlsanitize cleans user-supplied text (notification messages,
// complaint descriptions and responses) before it is rendered.
package htmlsanitize

import (
	"html"
	"html/template"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	once   sync.Once
	rich   *bluemonday.Policy
	strict *bluemonday.Policy
)

func policies() (*bluemonday.Policy, *bluemonday.Policy) {
	once.Do(func() {
		rich = bluemonday.UGCPolicy()
		rich.AllowElements("u", "s", "sub", "sup", "mark")
		rich.AllowAttrs("class").OnElements("table", "tr", "td", "th", "p", "span")
		rich.AllowAttrs("colspan", "rowspan").OnElements("td", "th")
		rich.RequireNoFollowOnLinks(true)
		rich.AddTargetBlankToFullyQualifiedLinks(true)

		strict = bluemonday.StrictPolicy()
	})
	return rich, strict
}

// Sanitize keeps safe formatting markup and removes scripts, event
// handlers and javascript: URLs.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	p, _ := policies()
	return p.Sanitize(s)
}

// HTML returns Sanitize(s) as template.HTML for direct rendering.
// Plain text line breaks become <br>.
func HTML(s string) template.HTML {
	clean := Sanitize(s)
	if !strings.ContainsAny(clean, "<>") {
		clean = strings.ReplaceAll(clean, "\n", "<br>")
	}
	return template.HTML(clean)
}

// PlainText strips all markup and decodes entities. Used for exports
// (CSV, PDF, XLSX) where markup has no meaning.
func PlainText(s string) string {
	if s == "" {
		return ""
	}
	_, p := policies()
	return strings.TrimSpace(html.UnescapeString(p.Sanitize(s)))
}

// Excerpt returns the first n runes of the plain text of s, with an
// ellipsis when truncated.
func Excerpt(s string, n int) string {
	t := strings.Join(strings.Fields(PlainText(s)), " ")
	r := []rune(t)
	if n <= 0 || len(r) <= n {
		return t
	}
	return strings.TrimSpace(string(r[:n])) + "…"
}
