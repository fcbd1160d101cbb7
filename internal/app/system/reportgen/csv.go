package reportgen

import (
	"encoding/csv"
	"io"
)

// WriteCSV renders r as CSV: a title block, then per section a title
// row, its summary, the header row and data rows. Sections are
// separated by blank lines.
func WriteCSV(w io.Writer, r Report) error {
	cw := csv.NewWriter(w)
	write := func(rec ...string) {
		_ = cw.Write(rec)
	}

	write(r.Title)
	if r.Company != "" {
		write(r.Company)
	}
	write("Period", r.Period())
	write("Generated", DateTime(r.Generated))

	for _, s := range r.Sections {
		write()
		write(s.Title)
		for _, kv := range s.Summary {
			write(kv.Key, kv.Value)
		}
		if len(s.Table.Columns) == 0 {
			continue
		}
		if len(s.Summary) > 0 {
			write()
		}
		headers := make([]string, len(s.Table.Columns))
		for i, c := range s.Table.Columns {
			headers[i] = c.Header
		}
		write(headers...)
		for _, row := range s.Table.Rows {
			write(row...)
		}
		if len(s.Table.Totals) > 0 {
			write(s.Table.Totals...)
		}
	}

	cw.Flush()
	return cw.Error()
}
