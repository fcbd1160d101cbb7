package reportgen

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	maxSheetName  = 31
	xlsxUnitWidth = 60.0 // characters spread across a table's columns
)

var sheetNameReplacer = strings.NewReplacer(
	"[", "(", "]", ")", ":", "-", "*", "", "?", "", "/", "-", `\`, "-",
)

// sheetName makes s a valid, unique worksheet name.
func sheetName(s string, used map[string]bool) string {
	name := strings.TrimSpace(sheetNameReplacer.Replace(s))
	if name == "" {
		name = "Sheet"
	}
	if len([]rune(name)) > maxSheetName {
		name = string([]rune(name)[:maxSheetName])
	}
	base := name
	for i := 2; used[strings.ToLower(name)]; i++ {
		suffix := fmt.Sprintf(" (%d)", i)
		r := []rune(base)
		if len(r)+len(suffix) > maxSheetName {
			r = r[:maxSheetName-len(suffix)]
		}
		name = string(r) + suffix
	}
	used[strings.ToLower(name)] = true
	return name
}

// WriteXLSX renders r as a workbook with one sheet per section. A report
// without sections gets a single cover sheet.
func WriteXLSX(w io.Writer, r Report) error {
	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	header, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"E6EEF6"}},
		Border: []excelize.Border{{Type: "bottom", Color: "999999", Style: 1}},
	})
	if err != nil {
		return err
	}
	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return err
	}

	used := map[string]bool{}
	sections := r.Sections
	if len(sections) == 0 {
		sections = []Section{{Title: r.Title}}
	}

	const defaultSheet = "Sheet1"
	for i, s := range sections {
		name := sheetName(s.Title, used)
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, name); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return err
		}
		if err := writeSheet(f, name, r, s, sheetStyles{bold: bold, header: header, title: titleStyle}); err != nil {
			return fmt.Errorf("sheet %q: %w", name, err)
		}
	}
	f.SetActiveSheet(0)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("render xlsx: %w", err)
	}
	return nil
}

type sheetStyles struct {
	bold, header, title int
}

func writeSheet(f *excelize.File, sheet string, r Report, s Section, st sheetStyles) error {
	row := 1
	put := func(values ...any) error {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
		row++
		return nil
	}
	styleRow := func(r, cols, style int) error {
		if cols < 1 {
			cols = 1
		}
		from, _ := excelize.CoordinatesToCellName(1, r)
		to, _ := excelize.CoordinatesToCellName(cols, r)
		return f.SetCellStyle(sheet, from, to, style)
	}

	if err := put(s.Title); err != nil {
		return err
	}
	if err := styleRow(row-1, 1, st.title); err != nil {
		return err
	}
	if err := put(r.Title, r.Company); err != nil {
		return err
	}
	if err := put("Period", r.Period()); err != nil {
		return err
	}
	if err := put("Generated", DateTime(r.Generated)); err != nil {
		return err
	}
	row++

	for _, kv := range s.Summary {
		if err := put(kv.Key, kv.Value); err != nil {
			return err
		}
		if err := styleRow(row-1, 1, st.bold); err != nil {
			return err
		}
	}
	if len(s.Summary) > 0 {
		row++
	}

	cols := len(s.Table.Columns)
	if cols == 0 {
		return f.SetColWidth(sheet, "A", "B", 24)
	}

	headers := make([]any, cols)
	for i, c := range s.Table.Columns {
		headers[i] = c.Header
	}
	if err := put(headers...); err != nil {
		return err
	}
	if err := styleRow(row-1, cols, st.header); err != nil {
		return err
	}
	for _, cells := range s.Table.Rows {
		if err := put(toAny(cells)...); err != nil {
			return err
		}
	}
	if len(s.Table.Totals) > 0 {
		if err := put(toAny(s.Table.Totals)...); err != nil {
			return err
		}
		if err := styleRow(row-1, cols, st.bold); err != nil {
			return err
		}
	}

	for i, w := range weights(s.Table.Columns) {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		width := w * xlsxUnitWidth
		if width < 10 {
			width = 10
		}
		if i == 0 && width < 22 {
			width = 22 // summary keys live in column A
		}
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return err
		}
	}
	return nil
}

func toAny(cells []string) []any {
	out := make([]any, len(cells))
	for i, c := range cells {
		out[i] = c
	}
	return out
}
