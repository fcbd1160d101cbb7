// internal/app/system/csvutil/csvutil.go
package csvutil

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// bom makes Excel open the file as UTF-8.
var bom = []byte{0xEF, 0xBB, 0xBF}

// SetAttachment sets the headers of a CSV download named filename.
func SetAttachment(w http.ResponseWriter, filename string) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, url.PathEscape(filename)))
}

// Write writes a BOM, header and rows to out. Every cell passes through
// Sanitize.
func Write(out io.Writer, header []string, rows [][]string) error {
	if _, err := out.Write(bom); err != nil {
		return fmt.Errorf("csv bom: %w", err)
	}
	cw := csv.NewWriter(out)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("csv header: %w", err)
	}
	for i, row := range rows {
		clean := make([]string, len(row))
		for j, cell := range row {
			clean[j] = Sanitize(cell)
		}
		if err := cw.Write(clean); err != nil {
			return fmt.Errorf("csv row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Sanitize prevents CSV formula injection.
func Sanitize(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@':
		return "'" + s
	}
	return s
}
