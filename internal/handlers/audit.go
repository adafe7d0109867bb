package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const auditPageSize = 200

// ListAuditLogs returns the newest audit entries; an empty list when the
// audit trail is disabled.
func (h *Handler) ListAuditLogs(c *gin.Context) {
	logs, err := h.audit.Recent(c.Request.Context(), auditPageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	ok(c, http.StatusOK, logs)
}
