package models

type SourceName string

const (
	SourceMagerit SourceName = "magerit"
	SourceAnexoA  SourceName = "anexo_a"
	SourceCOBIT   SourceName = "cobit"
	SourceNIST    SourceName = "nist"
)

// SourceOrder is the fixed order used by /api/data/all and the PDF report.
var SourceOrder = []SourceName{SourceMagerit, SourceAnexoA, SourceCOBIT, SourceNIST}

// Source describes one of the CSV matrices.
type Source struct {
	Name     SourceName
	File     string // file name, relative to the data dir unless absolute
	Sentinel string // literal expected in the first cell of the header row

	// MetadataFallback is how many leading rows are exposed as metadata
	// when the sentinel is missing.
	MetadataFallback int
}

func DefaultSources() map[SourceName]Source {
	return map[SourceName]Source{
		SourceMagerit: {Name: SourceMagerit, File: "Matiz(MAGERIT).csv", Sentinel: "N° Activos", MetadataFallback: 8},
		SourceAnexoA:  {Name: SourceAnexoA, File: "Matiz(Anexo A).csv", Sentinel: "Categoría", MetadataFallback: 6},
		SourceCOBIT:   {Name: SourceCOBIT, File: "Matiz(COBIT).csv", Sentinel: "Proceso COBIT", MetadataFallback: 6},
		SourceNIST:    {Name: SourceNIST, File: "Matiz(NIST).csv", Sentinel: "Función NIST", MetadataFallback: 4},
	}
}

func ParseSourceName(s string) (SourceName, bool) {
	for _, n := range SourceOrder {
		if string(n) == s {
			return n, true
		}
	}
	return "", false
}
