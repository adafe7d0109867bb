package handlers

import (
	"secmatrix/internal/middleware"
	"secmatrix/internal/models"

	"github.com/gin-gonic/gin"
)

// render wraps c.HTML and adds the fields every page layout reads.
func (h *Handler) render(c *gin.Context, status int, tmpl string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}

	data["ProjectName"] = h.projectName
	data["AuthEnabled"] = h.AuthEnabled()
	data["CurrentEditor"] = middleware.CurrentEditor(c)
	data["CurrentUserRole"] = middleware.CurrentRole(c)
	// without login every visitor may edit
	data["CanEdit"] = !h.AuthEnabled() || middleware.CurrentRole(c) == models.RoleEditor

	c.HTML(status, tmpl, data)
}
