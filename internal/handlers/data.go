package handlers

import (
	"fmt"
	"net/http"

	"secmatrix/internal/csvstore"
	"secmatrix/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const invalidSourceMsg = "Tipo de CSV no válido"

// GetAllData returns the snapshots of all four matrices.
func (h *Handler) GetAllData(c *gin.Context) {
	all, err := h.matrix.All()
	if err != nil {
		log.Error().Err(err).Msg("read all matrices")
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	ok(c, http.StatusOK, all)
}

func (h *Handler) GetSourceData(c *gin.Context) {
	name, found := models.ParseSourceName(c.Param("source"))
	if !found {
		fail(c, http.StatusBadRequest, invalidSourceMsg)
		return
	}

	snap, err := h.matrix.Snapshot(name)
	if err != nil {
		log.Error().Err(err).Str("source", string(name)).Msg("read matrix")
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	ok(c, http.StatusOK, snap)
}

// ExportSource downloads the header and data rows of one matrix as CSV.
func (h *Handler) ExportSource(c *gin.Context) {
	name, found := models.ParseSourceName(c.Param("source"))
	if !found {
		fail(c, http.StatusBadRequest, invalidSourceMsg)
		return
	}

	snap, err := h.matrix.Snapshot(name)
	if err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	rows := make([][]string, 0, len(snap.Data)+1)
	rows = append(rows, snap.Headers)
	rows = append(rows, snap.Data...)

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.csv"`, name))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Status(http.StatusOK)
	if err := csvstore.Encode(c.Writer, rows); err != nil {
		log.Error().Err(err).Str("source", string(name)).Msg("export csv")
	}
}
