package handlers

import (
	"net/http"

	"secmatrix/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type sourceSummary struct {
	Name    models.SourceName
	Title   string
	Path    string
	Rows    int
	Columns int
}

var sourcePages = map[models.SourceName]struct{ title, path, tmpl string }{
	models.SourceMagerit: {"Análisis de Riesgos MAGERIT", "/magerit", "magerit.html"},
	models.SourceAnexoA:  {"ISO 27001 Anexo A", "/anexo-a", "anexo_a.html"},
	models.SourceCOBIT:   {"COBIT 2019", "/cobit", "cobit.html"},
	models.SourceNIST:    {"NIST CSF", "/nist", "nist.html"},
}

// IndexPage is the dashboard: one card per matrix with its row count.
func (h *Handler) IndexPage(c *gin.Context) {
	summaries := make([]sourceSummary, 0, len(models.SourceOrder))
	for _, name := range models.SourceOrder {
		p := sourcePages[name]
		s := sourceSummary{Name: name, Title: p.title, Path: p.path}
		snap, err := h.matrix.Snapshot(name)
		if err != nil {
			log.Warn().Err(err).Str("source", string(name)).Msg("dashboard summary")
		} else {
			s.Rows = len(snap.Data)
			s.Columns = len(snap.Headers)
		}
		summaries = append(summaries, s)
	}

	h.render(c, http.StatusOK, "index.html", gin.H{"sources": summaries})
}

// SourcePage renders the table view of one matrix.
func (h *Handler) SourcePage(name models.SourceName) gin.HandlerFunc {
	p := sourcePages[name]
	return func(c *gin.Context) {
		snap, err := h.matrix.Snapshot(name)
		if err != nil {
			log.Error().Err(err).Str("source", string(name)).Msg("render matrix page")
			c.String(http.StatusInternalServerError, err.Error())
			return
		}

		data := gin.H{"title": p.title, "data": snap}
		if name == models.SourceMagerit {
			assets := make([]models.Asset, 0, len(snap.Data))
			for _, row := range snap.Data {
				assets = append(assets, models.AssetFromRow(row))
			}
			data["assets"] = assets
		}
		h.render(c, http.StatusOK, p.tmpl, data)
	}
}

func (h *Handler) ReportsPage(c *gin.Context) {
	sections := make([]sourceSummary, 0, len(models.SourceOrder))
	for _, name := range models.SourceOrder {
		sections = append(sections, sourceSummary{Name: name, Title: sourcePages[name].title})
	}
	h.render(c, http.StatusOK, "reports.html", gin.H{"sections": sections})
}
