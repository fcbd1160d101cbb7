// internal/app/system/paging/paging.go
package paging

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
)

// DefaultPerPage is the number of rows shown when the request does not
// pick a page size.
const DefaultPerPage = 10

// PerPageOptions are the page sizes offered by the per-page selector.
var PerPageOptions = []int{10, 25, 50, 100}

// linkRadius is how many page numbers are shown either side of the
// current page before an ellipsis.
const linkRadius = 2

// ParsePage extracts the 1-based "page" query parameter.
// Returns 1 if not present or invalid.
func ParsePage(r *http.Request) int {
	n, err := strconv.Atoi(query.Get(r, "page"))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// ParsePerPage extracts the "per" query parameter. Only values from
// PerPageOptions are accepted; anything else yields DefaultPerPage.
func ParsePerPage(r *http.Request) int {
	return NormalizePerPage(atoi(query.Get(r, "per")))
}

// NormalizePerPage maps n onto an offered page size.
func NormalizePerPage(n int) int {
	for _, v := range PerPageOptions {
		if v == n {
			return n
		}
	}
	return DefaultPerPage
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// Window describes one page of an in-memory result set.
type Window struct {
	Page       int // current page, clamped to [1, TotalPages]
	PerPage    int
	Total      int // rows across all pages
	TotalPages int // always at least 1
}

// Compute clamps page into range for total rows at perPage rows per page.
func Compute(total, page, perPage int) Window {
	perPage = NormalizePerPage(perPage)
	if total < 0 {
		total = 0
	}
	pages := (total + perPage - 1) / perPage
	if pages < 1 {
		pages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}
	return Window{Page: page, PerPage: perPage, Total: total, TotalPages: pages}
}

// Bounds returns the slice indices [lo, hi) of the current page.
func (w Window) Bounds() (lo, hi int) {
	lo = (w.Page - 1) * w.PerPage
	if lo > w.Total {
		lo = w.Total
	}
	hi = lo + w.PerPage
	if hi > w.Total {
		hi = w.Total
	}
	return lo, hi
}

func (w Window) HasPrev() bool { return w.Page > 1 }
func (w Window) HasNext() bool { return w.Page < w.TotalPages }
func (w Window) PrevPage() int { return max(1, w.Page-1) }
func (w Window) NextPage() int { return min(w.TotalPages, w.Page+1) }

// Range holds the 1-based display range for "Showing 11–20 of 57".
type Range struct {
	Start int // 0 if no results
	End   int // 0 if no results
}

// Range computes the display range of the current page.
func (w Window) Range() Range {
	lo, hi := w.Bounds()
	if hi == lo {
		return Range{}
	}
	return Range{Start: lo + 1, End: hi}
}

// Link is one entry in a pagination bar. Gap entries render as an
// ellipsis and carry no page.
type Link struct {
	Page    int
	Current bool
	Gap     bool
}

// Links returns the first and last page, the pages within linkRadius of
// the current page, and a gap wherever numbers are skipped.
func (w Window) Links() []Link {
	var out []Link
	last := 0
	for p := 1; p <= w.TotalPages; p++ {
		near := p >= w.Page-linkRadius && p <= w.Page+linkRadius
		if p != 1 && p != w.TotalPages && !near {
			continue
		}
		if last != 0 && p > last+1 {
			out = append(out, Link{Gap: true})
		}
		out = append(out, Link{Page: p, Current: p == w.Page})
		last = p
	}
	return out
}

// Slice returns the rows of the current page.
func Slice[T any](rows []T, w Window) []T {
	lo, hi := w.Bounds()
	if lo >= len(rows) {
		return []T{}
	}
	if hi > len(rows) {
		hi = len(rows)
	}
	return rows[lo:hi]
}
