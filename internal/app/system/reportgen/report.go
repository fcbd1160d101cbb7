// Package reportgen assembles multi-section reports and renders them as
// PDF, XLSX or CSV.
package reportgen

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"
)

// Align is a cell alignment, in fpdf's notation.
type Align string

const (
	AlignLeft   Align = "L"
	AlignCenter Align = "C"
	AlignRight  Align = "R"
)

// Output formats.
const (
	FormatPDF  = "pdf"
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"
)

// Formats lists the selectable output formats.
var Formats = []string{FormatPDF, FormatXLSX, FormatCSV}

// Column describes one table column. Width is relative to the other
// columns of the table.
type Column struct {
	Header string
	Width  float64
	Align  Align
}

// Table is a header row, data rows and an optional totals row.
type Table struct {
	Columns []Column
	Rows    [][]string
	Totals  []string
}

// Empty reports whether the table has no data rows.
func (t Table) Empty() bool { return len(t.Rows) == 0 }

// KV is one summary line.
type KV struct {
	Key   string
	Value string
}

// Section is a titled block: summary lines followed by a table.
type Section struct {
	Title   string
	Summary []KV
	Table   Table
}

// Report is the document handed to a renderer.
type Report struct {
	Title     string
	Company   string
	Generated time.Time
	From      time.Time
	To        time.Time
	Sections  []Section
}

const dateLayout = "02 Jan 2006"

// Period describes the reporting window.
func (r Report) Period() string {
	switch {
	case r.From.IsZero() && r.To.IsZero():
		return "All time"
	case r.From.IsZero():
		return "Up to " + r.To.Format(dateLayout)
	case r.To.IsZero():
		return "From " + r.From.Format(dateLayout)
	}
	return r.From.Format(dateLayout) + " to " + r.To.Format(dateLayout)
}

// ValidFormat reports whether f names a renderer.
func ValidFormat(f string) bool {
	switch f {
	case FormatPDF, FormatXLSX, FormatCSV:
		return true
	}
	return false
}

// ContentType returns the MIME type for format.
func ContentType(format string) string {
	switch format {
	case FormatPDF:
		return "application/pdf"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatCSV:
		return "text/csv; charset=utf-8"
	}
	return "application/octet-stream"
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Filename builds a download name such as tankerhub-report-2026-03-01.pdf.
func Filename(r Report, format string) string {
	base := strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(r.Title), "-"), "-")
	if base == "" {
		base = "report"
	}
	return fmt.Sprintf("%s-%s.%s", base, r.Generated.Format("2006-01-02"), format)
}

// Render writes r in the given format.
func Render(w io.Writer, r Report, format string) error {
	switch format {
	case FormatPDF:
		return WritePDF(w, r)
	case FormatXLSX:
		return WriteXLSX(w, r)
	case FormatCSV:
		return WriteCSV(w, r)
	}
	return fmt.Errorf("reportgen: unknown format %q", format)
}

// weights normalises relative column widths; zero widths count as 1.
func weights(cols []Column) []float64 {
	out := make([]float64, len(cols))
	var sum float64
	for i, c := range cols {
		w := c.Width
		if w <= 0 {
			w = 1
		}
		out[i] = w
		sum += w
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}
