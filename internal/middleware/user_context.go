package middleware

import (
	"secmatrix/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Context keys read by the page renderer.
const (
	CurrentEditorKey = "CurrentEditor"
	CurrentRoleKey   = "CurrentRole"
)

// InjectEditor copies the logged-in editor from the session into the
// request context. Anonymous visitors are viewers.
func InjectEditor() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)

		role := models.RoleViewer
		if name, ok := sess.Get(SessionEditorKey).(string); ok && name != "" {
			c.Set(CurrentEditorKey, name)
			if r, ok := sess.Get(SessionRoleKey).(string); ok {
				role = models.UserRole(r)
			}
		}
		c.Set(CurrentRoleKey, role)

		c.Next()
	}
}

// CurrentEditor returns the editor name stored by InjectEditor, or "".
func CurrentEditor(c *gin.Context) string {
	return c.GetString(CurrentEditorKey)
}

// CurrentRole returns the role stored by InjectEditor, viewer when unset.
func CurrentRole(c *gin.Context) models.UserRole {
	v, _ := c.Get(CurrentRoleKey)
	if role, ok := v.(models.UserRole); ok {
		return role
	}
	return models.RoleViewer
}
