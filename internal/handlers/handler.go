package handlers

import (
	"time"

	"secmatrix/internal/database"
	"secmatrix/internal/matrix"
	"secmatrix/internal/metrics"
	"secmatrix/internal/models"
)

// Deps are the collaborators shared by every handler.
type Deps struct {
	Matrix      *matrix.Service
	Audit       *database.AuditTrail
	Metrics     *metrics.Metrics
	Editor      models.Editor // zero value disables login
	ProjectName string
	Now         func() time.Time
}

type Handler struct {
	matrix      *matrix.Service
	audit       *database.AuditTrail
	metrics     *metrics.Metrics
	editor      models.Editor
	projectName string
	now         func() time.Time
}

func New(d Deps) *Handler {
	if d.Now == nil {
		d.Now = time.Now
	}
	return &Handler{
		matrix:      d.Matrix,
		audit:       d.Audit,
		metrics:     d.Metrics,
		editor:      d.Editor,
		projectName: d.ProjectName,
		now:         d.Now,
	}
}

func (h *Handler) AuthEnabled() bool {
	return h.editor.Username != "" && h.editor.PasswordHash != ""
}
