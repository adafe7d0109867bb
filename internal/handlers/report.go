package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"secmatrix/internal/database"
	"secmatrix/internal/middleware"
	"secmatrix/internal/models"
	"secmatrix/internal/report"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type reportRequest struct {
	Sections []string `json:"sections"`
}

// GenerateReport streams the PDF report. Without a "sections" key every
// matrix is included; unknown section names are ignored.
func (h *Handler) GenerateReport(c *gin.Context) {
	var body reportRequest
	if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
		h.metrics.ObserveReport(0, err)
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	sections := report.ParseSections(body.Sections)
	names := sections
	if names == nil {
		names = models.SourceOrder
	}

	snaps, err := h.matrix.Select(names)
	if err != nil {
		h.metrics.ObserveReport(0, err)
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	now := h.now()
	var buf bytes.Buffer
	err = report.Generate(&buf, report.Request{
		Sections:    sections,
		Snapshots:   snaps,
		GeneratedAt: now,
		ProjectName: h.projectName,
	})
	h.metrics.ObserveReport(buf.Len(), err)
	if err != nil {
		log.Error().Err(err).Msg("generate report")
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	filename := report.Filename(now)
	h.audit.Record(c.Request.Context(), middleware.CurrentEditor(c),
		database.EntityReport, 0, database.ActionGenerate, sectionList(names))
	log.Info().Str("file", filename).Int("bytes", buf.Len()).Msg("report generated")

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

func sectionList(names []models.SourceName) string {
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = string(n)
	}
	return strings.Join(parts, ",")
}
