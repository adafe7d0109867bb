package report

import (
	"strings"

	gofpdf "github.com/go-pdf/fpdf"
)

type rgb struct{ r, g, b int }

const (
	headerSize = 8.0
	cellPad    = 1.0 // mm above and below cell text
	ptToMM     = 25.4 / 72
)

// table is a bordered grid with a filled header row. Header text is white
// and bold; body rows share one fill colour.
type table struct {
	header     []string
	widths     []float64 // mm; nil splits the usable page width evenly
	rows       [][]string
	headerFill rgb
	bodyFill   rgb
	bodySize   float64
	align      string
}

func (t table) columnWidths(pdf *gofpdf.Fpdf) []float64 {
	if t.widths != nil {
		return t.widths
	}
	if len(t.header) == 0 {
		return nil
	}
	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	w := (pageW - left - right) / float64(len(t.header))
	out := make([]float64, len(t.header))
	for i := range out {
		out[i] = w
	}
	return out
}

// draw renders the table at the current position, centered horizontally.
// Rows never split across pages; the header is repeated at the top of every
// continuation page. A row taller than a page is clipped to fit one.
func (t table) draw(pdf *gofpdf.Fpdf, tr func(string) string) {
	widths := t.columnWidths(pdf)
	if len(widths) == 0 {
		return
	}

	total := 0.0
	for _, w := range widths {
		total += w
	}
	pageW, pageH := pdf.GetPageSize()
	_, top, _, _ := pdf.GetMargins()
	x := (pageW - total) / 2

	auto, bottom := pdf.GetAutoPageBreak()
	pdf.SetAutoPageBreak(false, bottom)
	defer pdf.SetAutoPageBreak(auto, bottom)

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.2)

	header := translate(tr, t.header, len(widths))
	pdf.SetFont("Helvetica", "B", headerSize)
	headerH := t.rowHeight(pdf, widths, header, headerSize)
	drawHeader := func() {
		pdf.SetFont("Helvetica", "B", headerSize)
		pdf.SetTextColor(255, 255, 255)
		t.drawRow(pdf, x, widths, header, t.headerFill, headerSize)
	}
	drawHeader()

	maxLines := max(1, int((pageH-bottom-top-headerH-2*cellPad)/lineHeight(t.bodySize)))
	for _, row := range t.rows {
		pdf.SetFont("Helvetica", "", t.bodySize)
		cells := clip(pdf, widths, translate(tr, row, len(widths)), maxLines)
		h := t.rowHeight(pdf, widths, cells, t.bodySize)
		if pdf.GetY()+h > pageH-bottom {
			pdf.AddPage()
			drawHeader()
			pdf.SetFont("Helvetica", "", t.bodySize)
		}
		pdf.SetTextColor(0, 0, 0)
		t.drawRow(pdf, x, widths, cells, t.bodyFill, t.bodySize)
	}
	pdf.Ln(4)
}

func lineHeight(size float64) float64 {
	return size * ptToMM * 1.25
}

// translate returns the first n cells in the PDF font encoding.
func translate(tr func(string) string, cells []string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = tr(cell(cells, i))
	}
	return out
}

// clip cuts cells that wrap past maxLines with the current font, ending the
// last kept line with "...".
func clip(pdf *gofpdf.Fpdf, widths []float64, cells []string, maxLines int) []string {
	out := append([]string(nil), cells...)
	for i, w := range widths {
		if cells[i] == "" {
			continue
		}
		lines := pdf.SplitLines([]byte(cells[i]), w)
		if len(lines) <= maxLines {
			continue
		}
		parts := make([]string, maxLines)
		for j := range parts {
			parts[j] = string(lines[j])
		}
		last := parts[maxLines-1]
		room := pdf.GetStringWidth(last)
		for last != "" && pdf.GetStringWidth(last+"...") > room {
			last = last[:len(last)-1]
		}
		parts[maxLines-1] = last + "..."
		out[i] = strings.Join(parts, "\n")
	}
	return out
}

// rowHeight uses the current font to find the tallest wrapped cell.
func (t table) rowHeight(pdf *gofpdf.Fpdf, widths []float64, cells []string, size float64) float64 {
	lines := 1
	for i, w := range widths {
		if cells[i] == "" {
			continue
		}
		lines = max(lines, len(pdf.SplitLines([]byte(cells[i]), w)))
	}
	return float64(lines)*lineHeight(size) + 2*cellPad
}

func (t table) drawRow(pdf *gofpdf.Fpdf, x float64, widths []float64, cells []string, fill rgb, size float64) {
	h := t.rowHeight(pdf, widths, cells, size)
	y := pdf.GetY()

	pdf.SetFillColor(fill.r, fill.g, fill.b)
	cx := x
	for i, w := range widths {
		pdf.Rect(cx, y, w, h, "FD")
		pdf.SetXY(cx, y+cellPad)
		pdf.MultiCell(w, lineHeight(size), cells[i], "", t.align, false)
		cx += w
	}
	pdf.SetXY(x, y+h)
}
