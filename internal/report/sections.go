package report

import "secmatrix/internal/models"

type sectionLayout struct {
	heading string
	build   func(models.TableSnapshot) table
}

var sectionLayouts = map[models.SourceName]sectionLayout{
	models.SourceMagerit: {heading: "1. Análisis de Riesgos (MAGERIT)", build: mageritTable},
	models.SourceAnexoA:  {heading: "2. Controles ISO 27001 (Anexo A)", build: anexoTable},
	models.SourceCOBIT:   {heading: "3. Procesos de Gobernanza TI (COBIT)", build: cobitTable},
	models.SourceNIST:    {heading: "4. Marco de Ciberseguridad (NIST)", build: nistTable},
}

var (
	grey       = rgb{128, 128, 128}
	beige      = rgb{245, 245, 220}
	blue       = rgb{52, 152, 219}
	lightBlue  = rgb{173, 216, 230}
	red        = rgb{231, 76, 60}
	lightPink  = rgb{255, 182, 193}
	green      = rgb{39, 174, 96}
	lightGreen = rgb{144, 238, 144}
)

// mageritTable shows the first six columns of every asset, sized evenly.
func mageritTable(snap models.TableSnapshot) table {
	const cols = 6
	n := min(cols, len(snap.Headers))
	rows := make([][]string, 0, len(snap.Data))
	for _, row := range snap.Data {
		rows = append(rows, firstCells(row, n))
	}
	return table{
		header:     firstCells(snap.Headers, n),
		rows:       rows,
		headerFill: grey,
		bodyFill:   beige,
		bodySize:   7,
		align:      "C",
	}
}

func anexoTable(snap models.TableSnapshot) table {
	const cols = 4
	data := snap.Data[:min(10, len(snap.Data))]
	rows := make([][]string, 0, len(data))
	for _, row := range data {
		rows = append(rows, firstCells(row, cols))
	}
	return table{
		header:     firstCells(snap.Headers, cols),
		widths:     inches(1.5, 1.5, 2, 2),
		rows:       rows,
		headerFill: blue,
		bodyFill:   lightBlue,
		bodySize:   6,
		align:      "L",
	}
}

func cobitTable(snap models.TableSnapshot) table {
	data := snap.Data[:min(8, len(snap.Data))]
	rows := make([][]string, 0, len(data))
	for _, row := range data {
		rows = append(rows, []string{
			cell(row, 0),
			elide(cell(row, 1), 100),
			elide(cell(row, 4), 80),
		})
	}
	return table{
		header:     []string{"Proceso", "Objetivo", "KPIs"},
		widths:     inches(1.5, 3, 2),
		rows:       rows,
		headerFill: red,
		bodyFill:   lightPink,
		bodySize:   6,
		align:      "L",
	}
}

func nistTable(snap models.TableSnapshot) table {
	rows := make([][]string, 0, len(snap.Data))
	for _, row := range snap.Data {
		rows = append(rows, []string{
			cell(row, 0),
			cell(row, 1),
			elide(cell(row, 2), 100),
		})
	}
	return table{
		header:     []string{"Función", "Control", "Descripción"},
		widths:     inches(1.5, 2, 3),
		rows:       rows,
		headerFill: green,
		bodyFill:   lightGreen,
		bodySize:   6,
		align:      "L",
	}
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func firstCells(row []string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = cell(row, i)
	}
	return out
}

// elide cuts s to limit characters and marks the cut with "...".
func elide(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit]) + "..."
}

func inches(v ...float64) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = x * inch
	}
	return out
}
