package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"secmatrix/internal/database"
	"secmatrix/internal/matrix"
	"secmatrix/internal/middleware"
	"secmatrix/internal/risk"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"
)

// CalculateRisk evaluates the risk formula without touching any file.
// Missing inputs count as zero.
func (h *Handler) CalculateRisk(c *gin.Context) {
	body, err := decodeFields(c)
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	var in [3]float64
	for i, key := range []string{"frecuencia", "impacto", "salvaguarda_pct"} {
		v, err := cast.ToFloat64E(body[key])
		if err != nil {
			fail(c, http.StatusBadRequest, fmt.Sprintf("%s: %v", key, err))
			return
		}
		in[i] = v
	}

	ok(c, http.StatusOK, risk.Compute(in[0], in[1], in[2]))
}

func (h *Handler) UpdateAsset(c *gin.Context) {
	n, err := strconv.Atoi(c.Param("row_index"))
	if err != nil || n < 0 {
		fail(c, http.StatusBadRequest, "N° de activo inválido: "+c.Param("row_index"))
		return
	}

	fields, err := decodeFields(c)
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	row, err := h.matrix.UpdateAsset(n, fields)
	h.metrics.ObserveMutation("update", err)
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	h.audit.Record(c.Request.Context(), middleware.CurrentEditor(c),
		database.EntityMagerit, uint(n), database.ActionUpdate, detailsJSON(fields))

	okMessage(c, http.StatusOK, fmt.Sprintf("Activo N° %d actualizado correctamente", n), row)
}

func (h *Handler) AddAsset(c *gin.Context) {
	fields, err := decodeFields(c)
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := matrix.ValidateNewAsset(fields); err != nil {
		h.metrics.ObserveMutation("add", err)
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	row, err := h.matrix.AppendAsset(fields)
	h.metrics.ObserveMutation("add", err)
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	id, _ := strconv.Atoi(row[0])
	h.audit.Record(c.Request.Context(), middleware.CurrentEditor(c),
		database.EntityMagerit, uint(id), database.ActionCreate, detailsJSON(fields))

	okMessage(c, http.StatusOK, "Nuevo activo agregado correctamente", row)
}

func detailsJSON(fields map[string]any) string {
	raw, err := json.Marshal(fields)
	if err != nil {
		return ""
	}
	return string(raw)
}
