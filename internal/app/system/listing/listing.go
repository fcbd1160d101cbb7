// Package listing filters, searches, sorts and paginates backend
// collections in memory. The REST API returns whole collections, so
// every list page runs its rows through Apply.
package listing

import (
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/dalemusser/tankerhub/internal/app/system/normalize"
	"github.com/dalemusser/tankerhub/internal/app/system/paging"
	"github.com/dalemusser/waffle/pantry/query"
)

// StatusAll is the status tab that matches every row.
const StatusAll = "all"

const dateLayout = "2006-01-02"

// Query holds the list controls taken from the request.
type Query struct {
	Search  string
	Status  string
	From    time.Time // zero when unset
	To      time.Time // zero when unset
	Sort    string
	Desc    bool
	Page    int
	PerPage int

	// Extra carries feature-specific filters (customer=...) through
	// paging, sorting and tab links.
	Extra url.Values
}

// Parse reads q, status, from, to, sort, dir, page and per. Malformed
// dates are ignored.
func Parse(r *http.Request) Query {
	q := Query{
		Search:  query.Search(r, "q"),
		Status:  strings.ToLower(strings.TrimSpace(query.Get(r, "status"))),
		Sort:    query.Get(r, "sort"),
		Desc:    strings.EqualFold(query.Get(r, "dir"), "desc"),
		Page:    paging.ParsePage(r),
		PerPage: paging.ParsePerPage(r),
	}
	if t, err := time.ParseInLocation(dateLayout, query.Get(r, "from"), time.Local); err == nil {
		q.From = t
	}
	if t, err := time.ParseInLocation(dateLayout, query.Get(r, "to"), time.Local); err == nil {
		q.To = t
	}
	if q.Status == StatusAll {
		q.Status = ""
	}
	return q
}

// FromValue and ToValue format the date range for <input type="date">.
func (q Query) FromValue() string { return formatDate(q.From) }
func (q Query) ToValue() string   { return formatDate(q.To) }

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

// Values encodes q back into URL parameters, omitting defaults.
func (q Query) Values() url.Values {
	v := url.Values{}
	for k, vals := range q.Extra {
		for _, val := range vals {
			if val != "" {
				v.Add(k, val)
			}
		}
	}
	set := func(k, val string) {
		if val != "" {
			v.Set(k, val)
		}
	}
	set("q", q.Search)
	set("status", q.Status)
	set("from", q.FromValue())
	set("to", q.ToValue())
	set("sort", q.Sort)
	if q.Desc {
		v.Set("dir", "desc")
	}
	if q.PerPage != 0 && q.PerPage != paging.DefaultPerPage {
		v.Set("per", strconv.Itoa(q.PerPage))
	}
	if q.Page > 1 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	return v
}

// Spec describes how a row type is searched, filtered and sorted.
// Any nil func disables that control.
type Spec[T any] struct {
	Text        func(T) []string
	Status      func(T) string
	Date        func(T) time.Time
	Sorts       map[string]func(a, b T) int
	DefaultSort string
	DefaultDesc bool
}

// Page is one rendered page of a list.
type Page[T any] struct {
	Rows   []T
	Query  Query // normalised: Sort, Desc and Page reflect what was applied
	Window paging.Window
	Counts map[string]int // rows per status among search matches, plus "all"
}

// Apply runs items through search, status, date range, sort and paging.
// items is not modified.
func Apply[T any](items []T, q Query, spec Spec[T]) Page[T] {
	rows, counts, q := filter(items, q, spec)

	w := paging.Compute(len(rows), q.Page, q.PerPage)
	q.Page = w.Page
	q.PerPage = w.PerPage
	return Page[T]{
		Rows:   paging.Slice(rows, w),
		Query:  q,
		Window: w,
		Counts: counts,
	}
}

// All is Apply without paging: every matching row in sort order. Used
// by exports.
func All[T any](items []T, q Query, spec Spec[T]) []T {
	rows, _, _ := filter(items, q, spec)
	return rows
}

func filter[T any](items []T, q Query, spec Spec[T]) ([]T, map[string]int, Query) {
	terms := strings.Fields(normalize.Fold(q.Search))

	searched := make([]T, 0, len(items))
	for _, it := range items {
		if matchesTerms(spec, it, terms) {
			searched = append(searched, it)
		}
	}

	counts := map[string]int{StatusAll: len(searched)}
	if spec.Status != nil {
		for _, it := range searched {
			counts[strings.ToLower(spec.Status(it))]++
		}
	}

	from, to := dayBounds(q.From, q.To)
	rows := make([]T, 0, len(searched))
	for _, it := range searched {
		if q.Status != "" && spec.Status != nil && !strings.EqualFold(spec.Status(it), q.Status) {
			continue
		}
		if spec.Date != nil && !inRange(spec.Date(it), from, to) {
			continue
		}
		rows = append(rows, it)
	}

	if _, ok := spec.Sorts[q.Sort]; !ok {
		q.Sort = spec.DefaultSort
		q.Desc = spec.DefaultDesc
	}
	if cmp, ok := spec.Sorts[q.Sort]; ok {
		if q.Desc {
			slices.SortStableFunc(rows, func(a, b T) int { return cmp(b, a) })
		} else {
			slices.SortStableFunc(rows, cmp)
		}
	}
	return rows, counts, q
}

func matchesTerms[T any](spec Spec[T], it T, terms []string) bool {
	if len(terms) == 0 {
		return true
	}
	if spec.Text == nil {
		return false
	}
	hay := normalize.Fold(strings.Join(spec.Text(it), " "))
	for _, t := range terms {
		if !strings.Contains(hay, t) {
			return false
		}
	}
	return true
}

// dayBounds widens [from, to] to whole calendar days: [from 00:00, to+1 00:00).
// Days are counted in the location each bound carries.
func dayBounds(from, to time.Time) (time.Time, time.Time) {
	if !from.IsZero() {
		from = time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	}
	if !to.IsZero() {
		to = time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, to.Location()).AddDate(0, 0, 1)
	}
	return from, to
}

// inRange reports whether t falls inside the bounds from dayBounds. A zero
// t only matches when no range is set.
func inRange(t, from, to time.Time) bool {
	if from.IsZero() && to.IsZero() {
		return true
	}
	if t.IsZero() {
		return false
	}
	if !from.IsZero() && t.Before(from) {
		return false
	}
	if !to.IsZero() && !t.Before(to) {
		return false
	}
	return true
}

// QueryString returns the encoded query for page n, keeping every filter.
func (p Page[T]) QueryString(n int) string {
	q := p.Query
	q.Page = n
	return q.Values().Encode()
}

// SortQuery returns the query that sorts by key, flipping direction when
// key is already the active sort. Paging restarts at page one.
func (p Page[T]) SortQuery(key string) string {
	q := p.Query
	q.Page = 1
	if q.Sort == key {
		q.Desc = !q.Desc
	} else {
		q.Sort = key
		q.Desc = false
	}
	return q.Values().Encode()
}

// StatusQuery returns the query selecting status tab s.
func (p Page[T]) StatusQuery(s string) string {
	q := p.Query
	q.Page = 1
	q.Status = s
	if s == StatusAll {
		q.Status = ""
	}
	return q.Values().Encode()
}

// Range is the 1-based display range of the page.
func (p Page[T]) Range() paging.Range { return p.Window.Range() }

// Links is the pagination bar.
func (p Page[T]) Links() []paging.Link { return p.Window.Links() }

// Empty reports whether the filtered set has no rows.
func (p Page[T]) Empty() bool { return p.Window.Total == 0 }

// Compare helpers for Spec.Sorts.

// ByString compares case-insensitively on the field returned by f.
func ByString[T any](f func(T) string) func(a, b T) int {
	return func(a, b T) int { return strings.Compare(normalize.Fold(f(a)), normalize.Fold(f(b))) }
}

// ByTime compares on the time returned by f.
func ByTime[T any](f func(T) time.Time) func(a, b T) int {
	return func(a, b T) int { return f(a).Compare(f(b)) }
}

// ByNumber compares on the number returned by f.
func ByNumber[T any, N int | float64](f func(T) N) func(a, b T) int {
	return func(a, b T) int {
		x, y := f(a), f(b)
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	}
}

// Tab is one status tab with its badge count.
type Tab struct {
	Value  string
	Label  string
	Count  int
	Active bool
	Query  string
}

// Tabs builds the status tabs for values, led by an "All" tab. Labels
// replace underscores with spaces and capitalise the first letter.
func (p Page[T]) Tabs(values ...string) []Tab {
	tabs := make([]Tab, 0, len(values)+1)
	tabs = append(tabs, Tab{
		Value:  StatusAll,
		Label:  "All",
		Count:  p.Counts[StatusAll],
		Active: p.Query.Status == "",
		Query:  p.StatusQuery(StatusAll),
	})
	for _, v := range values {
		tabs = append(tabs, Tab{
			Value:  v,
			Label:  Label(v),
			Count:  p.Counts[strings.ToLower(v)],
			Active: strings.EqualFold(p.Query.Status, v),
			Query:  p.StatusQuery(v),
		})
	}
	return tabs
}

// Label turns a status value such as "in_progress" into "In progress".
func Label(v string) string {
	v = strings.ReplaceAll(v, "_", " ")
	if v == "" {
		return v
	}
	return strings.ToUpper(v[:1]) + v[1:]
}

// View bundles a page with what the shared toolbar, tabs and pager
// partials need. Feature list view models embed it.
type View[T any] struct {
	Page           Page[T]
	BasePath       string
	TableID        string
	ShowDates      bool
	PerPageOptions []int
	Tabs           []Tab
}

// NewView wraps p for rendering under basePath, refreshing tableID on
// HTMX navigation. statuses become the tab strip; none means no tabs.
func NewView[T any](p Page[T], basePath, tableID string, statuses ...string) View[T] {
	v := View[T]{
		Page:           p,
		BasePath:       basePath,
		TableID:        tableID,
		PerPageOptions: paging.PerPageOptions,
	}
	if len(statuses) > 0 {
		v.Tabs = p.Tabs(statuses...)
	}
	return v
}
