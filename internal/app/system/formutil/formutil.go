// Package formutil provides helpers for form re-rendering with validation errors.
//
// When a form submission fails validation, the form should be re-rendered with:
// - The user's previously entered values (echoed back)
// - An error message explaining what went wrong
// - All the context data needed for the form (dropdowns, etc.)
//
// Example usage:
//
//	type tankerFormData struct {
//		formutil.Base
//		PlateNumber string
//		Statuses    []string
//	}
//
//	data := tankerFormData{PlateNumber: plate}
//	formutil.SetBase(&data.Base, w, r, "Add Tanker", "/tankers")
//	data.SetError("Plate number is required.")
//	templates.Render(w, r, "tanker_form", data)
package formutil

import (
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dalemusser/tankerhub/internal/app/system/viewdata"
)

// Base contains common fields for form pages that can be embedded in form data structs.
type Base struct {
	viewdata.BaseVM
	Error template.HTML
}

// SetBase populates the common Base fields from the request.
func SetBase(b *Base, w http.ResponseWriter, r *http.Request, title, backDefault string) {
	b.BaseVM = viewdata.NewBaseVM(w, r, title, backDefault)
}

// SetError sets the error message on a Base struct. msg is escaped.
func (b *Base) SetError(msg string) {
	b.Error = template.HTML(template.HTMLEscapeString(msg))
}

// Trimmed returns the trimmed form value for key.
func Trimmed(r *http.Request, key string) string {
	return strings.TrimSpace(r.FormValue(key))
}

// Int parses a whole-number field; blank or malformed input yields 0.
// Thousands separators are accepted ("12,000").
func Int(r *http.Request, key string) int {
	n, _ := strconv.Atoi(strings.ReplaceAll(Trimmed(r, key), ",", ""))
	return n
}

// Float parses a decimal field; blank or malformed input yields 0.
func Float(r *http.Request, key string) float64 {
	f, _ := strconv.ParseFloat(strings.ReplaceAll(Trimmed(r, key), ",", ""), 64)
	return f
}

// Bool reports whether a checkbox was ticked.
func Bool(r *http.Request, key string) bool {
	switch strings.ToLower(Trimmed(r, key)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

// DateTime parses an <input type="datetime-local"> or <input type="date">
// value in loc. Blank or malformed input yields the zero time.
func DateTime(r *http.Request, key string, loc *time.Location) time.Time {
	v := Trimmed(r, key)
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range []string{"2006-01-02T15:04", "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, v, loc); err == nil {
			return t
		}
	}
	return time.Time{}
}
