// Package report renders the security analysis PDF from matrix snapshots.
package report

import (
	"fmt"
	"io"
	"slices"
	"time"

	"secmatrix/internal/models"

	gofpdf "github.com/go-pdf/fpdf"
)

const (
	Title = "Reporte de Análisis de Seguridad de la Información"

	pageMargin = 15.0 // mm
	inch       = 25.4 // mm
)

// Request describes one report. A nil Sections renders every source; an
// empty, non-nil Sections renders only the title block.
type Request struct {
	Sections    []models.SourceName
	Snapshots   map[models.SourceName]models.TableSnapshot
	GeneratedAt time.Time
	ProjectName string
}

type Option func(*generator)

// WithoutCompression leaves content streams uncompressed so rendered text can
// be found in the raw output.
func WithoutCompression() Option {
	return func(g *generator) { g.noCompress = true }
}

type generator struct {
	noCompress bool
}

// Filename is the download name for a report generated at t.
func Filename(t time.Time) string {
	return "reporte_seguridad_" + t.Format("20060102_150405") + ".pdf"
}

// ParseSections keeps the recognised source names from raw. Unknown names are
// dropped. A nil raw means every section.
func ParseSections(raw []string) []models.SourceName {
	if raw == nil {
		return nil
	}
	out := []models.SourceName{}
	for _, s := range raw {
		if name, ok := models.ParseSourceName(s); ok && !slices.Contains(out, name) {
			out = append(out, name)
		}
	}
	return out
}

// sections returns the sources to render, in report order.
func (r Request) sections() []models.SourceName {
	if r.Sections == nil {
		return models.SourceOrder
	}
	var out []models.SourceName
	for _, name := range models.SourceOrder {
		if slices.Contains(r.Sections, name) {
			out = append(out, name)
		}
	}
	return out
}

// Generate writes the PDF for req to w.
func Generate(w io.Writer, req Request, opts ...Option) error {
	g := &generator{}
	for _, opt := range opts {
		opt(g)
	}

	if req.GeneratedAt.IsZero() {
		req.GeneratedAt = time.Now()
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(!g.noCompress)
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.SetCreationDate(req.GeneratedAt)
	pdf.SetTitle(Title, true)
	pdf.SetCreator("secmatrix", true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	titleBlock(pdf, tr, req)

	for i, name := range req.sections() {
		if i > 0 {
			pdf.AddPage()
		}
		layout := sectionLayouts[name]
		heading(pdf, tr, layout.heading)

		snap := req.Snapshots[name]
		if len(snap.Data) == 0 {
			continue
		}
		layout.build(snap).draw(pdf, tr)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

func titleBlock(pdf *gofpdf.Fpdf, tr func(string) string, req Request) {
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.MultiCell(0, 8, tr(Title), "", "C", false)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, tr("Fecha de generación: "+req.GeneratedAt.Format("02/01/2006 15:04")), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr("Proyecto: "+req.ProjectName), "", 1, "L", false, 0, "")
	pdf.Ln(6)
}

func heading(pdf *gofpdf.Fpdf, tr func(string) string, text string) {
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, tr(text), "", 1, "L", false, 0, "")
	pdf.Ln(3)
}
