package reportgen

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

const (
	pdfMargin     = 15.0
	pdfFooterRoom = 12.0
	pdfLineH      = 4.5
	pdfCellPad    = 1.2
	pdfFont       = "Helvetica"
)

// pdfWriter keeps the manual Y cursor used for table layout.
type pdfWriter struct {
	pdf     *fpdf.Fpdf
	tr      func(string) string
	y       float64
	bottom  float64
	width   float64
	headers int // table header rows drawn, for tests
}

// WritePDF renders r as an A4 portrait PDF.
func WritePDF(w io.Writer, r Report) error {
	pw := renderPDF(r, true)
	if err := pw.pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

func renderPDF(r Report, compress bool) *pdfWriter {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(compress)
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfMargin)
	pdf.AliasNbPages("{nb}")
	pdf.SetTitle(r.Title, true)
	pdf.SetCreator(r.Company, true)

	pageW, pageH := pdf.GetPageSize()
	pw := &pdfWriter{
		pdf:    pdf,
		tr:     pdf.UnicodeTranslatorFromDescriptor(""),
		bottom: pageH - pdfMargin - pdfFooterRoom,
		width:  pageW - 2*pdfMargin,
	}

	pdf.SetFooterFunc(func() {
		pdf.SetY(-pdfMargin)
		pdf.SetFont(pdfFont, "I", 8)
		pdf.SetTextColor(110, 110, 110)
		pdf.CellFormat(0, 6, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	})

	pw.newPage()
	pw.titleBlock(r)
	for _, s := range r.Sections {
		pw.section(s)
	}
	return pw
}

func (pw *pdfWriter) newPage() {
	pw.pdf.AddPage()
	pw.y = pdfMargin
}

// ensure starts a new page when h does not fit below the cursor.
func (pw *pdfWriter) ensure(h float64) bool {
	if pw.y+h <= pw.bottom {
		return false
	}
	pw.newPage()
	return true
}

func (pw *pdfWriter) text(h float64, s, style string, size float64, align string) {
	pw.pdf.SetFont(pdfFont, style, size)
	pw.pdf.SetXY(pdfMargin, pw.y)
	pw.pdf.CellFormat(pw.width, h, pw.tr(s), "", 0, align, false, 0, "")
	pw.y += h
}

func (pw *pdfWriter) titleBlock(r Report) {
	pw.text(9, r.Title, "B", 18, "L")
	if r.Company != "" {
		pw.text(6, r.Company, "", 11, "L")
	}
	pw.text(5, "Period: "+r.Period(), "", 9, "L")
	pw.text(5, "Generated: "+DateTime(r.Generated), "", 9, "L")

	pw.pdf.SetDrawColor(180, 180, 180)
	pw.pdf.Line(pdfMargin, pw.y+2, pdfMargin+pw.width, pw.y+2)
	pw.y += 6
}

func (pw *pdfWriter) section(s Section) {
	// keep the heading with at least its summary's first lines
	pw.ensure(8 + 3*pdfLineH)
	pw.text(8, s.Title, "B", 13, "L")

	pw.pdf.SetFont(pdfFont, "", 9)
	for _, kv := range s.Summary {
		pw.ensure(pdfLineH + 0.5)
		pw.pdf.SetFont(pdfFont, "", 9)
		pw.pdf.SetXY(pdfMargin, pw.y)
		pw.pdf.CellFormat(pw.width*0.4, pdfLineH+0.5, pw.tr(kv.Key), "", 0, "L", false, 0, "")
		pw.pdf.SetFont(pdfFont, "B", 9)
		pw.pdf.CellFormat(pw.width*0.6, pdfLineH+0.5, pw.tr(kv.Value), "", 0, "L", false, 0, "")
		pw.y += pdfLineH + 0.5
	}
	pw.y += 3

	if len(s.Table.Columns) > 0 {
		pw.table(s.Table)
	}
	pw.y += 6
}

func (pw *pdfWriter) widths(t Table) []float64 {
	ws := weights(t.Columns)
	for i := range ws {
		ws[i] *= pw.width
	}
	return ws
}

// lines splits each cell to its column width.
func (pw *pdfWriter) lines(cells []string, ws []float64) ([][]string, int) {
	out := make([][]string, len(ws))
	most := 1
	for i := range ws {
		var s string
		if i < len(cells) {
			s = pw.tr(cells[i])
		}
		var split []string
		for _, b := range pw.pdf.SplitLines([]byte(s), ws[i]-2*pdfCellPad) {
			split = append(split, string(b))
		}
		if len(split) == 0 {
			split = []string{""}
		}
		out[i] = split
		if len(split) > most {
			most = len(split)
		}
	}
	return out, most
}

func (pw *pdfWriter) row(t Table, cells []string, ws []float64, style string, fill bool) {
	pw.pdf.SetFont(pdfFont, style, 8.5)
	split, n := pw.lines(cells, ws)
	h := float64(n)*pdfLineH + 2*pdfCellPad

	x := pdfMargin
	for i, w := range ws {
		rectStyle := "D"
		if fill {
			rectStyle = "FD"
		}
		pw.pdf.Rect(x, pw.y, w, h, rectStyle)

		align := string(AlignLeft)
		if t.Columns[i].Align != "" {
			align = string(t.Columns[i].Align)
		}
		for j, line := range split[i] {
			pw.pdf.SetXY(x+pdfCellPad, pw.y+pdfCellPad+float64(j)*pdfLineH)
			pw.pdf.CellFormat(w-2*pdfCellPad, pdfLineH, line, "", 0, align, false, 0, "")
		}
		x += w
	}
	pw.y += h
}

func (pw *pdfWriter) rowHeight(cells []string, ws []float64, style string) float64 {
	pw.pdf.SetFont(pdfFont, style, 8.5)
	_, n := pw.lines(cells, ws)
	return float64(n)*pdfLineH + 2*pdfCellPad
}

func (pw *pdfWriter) header(t Table, ws []float64) {
	headers := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		headers[i] = c.Header
	}
	pw.pdf.SetFillColor(230, 238, 246)
	pw.pdf.SetDrawColor(160, 160, 160)
	pw.row(t, headers, ws, "B", true)
	pw.headers++
}

func (pw *pdfWriter) table(t Table) {
	ws := pw.widths(t)
	headers := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		headers[i] = c.Header
	}
	headH := pw.rowHeight(headers, ws, "B")

	if t.Empty() {
		pw.ensure(headH + pdfLineH + 2*pdfCellPad)
		pw.header(t, ws)
		pw.text(pdfLineH+2, "No records in this period.", "I", 8.5, "L")
		return
	}

	first := pw.rowHeight(t.Rows[0], ws, "")
	pw.ensure(headH + first)
	pw.header(t, ws)

	body := append([][]string(nil), t.Rows...)
	if len(t.Totals) > 0 {
		body = append(body, t.Totals)
	}
	for i, cells := range body {
		style := ""
		if len(t.Totals) > 0 && i == len(body)-1 {
			style = "B"
		}
		h := pw.rowHeight(cells, ws, style)
		if pw.ensure(h) {
			pw.header(t, ws)
		}
		pw.pdf.SetDrawColor(160, 160, 160)
		pw.row(t, cells, ws, style, false)
	}
}
