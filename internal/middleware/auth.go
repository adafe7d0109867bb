package middleware

import (
	"net/http"
	"strings"

	"secmatrix/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Session keys written by the login handler.
const (
	SessionEditorKey = "editor"
	SessionRoleKey   = "role"
)

// RequireRole lets through sessions holding one of roles. API paths get a
// JSON 401; pages are redirected to the login form. A disabled guard passes
// every request.
func RequireRole(enabled bool, roles ...models.UserRole) gin.HandlerFunc {
	roleSet := map[models.UserRole]struct{}{}
	for _, r := range roles {
		roleSet[r] = struct{}{}
	}

	return func(c *gin.Context) {
		if !enabled {
			c.Next()
			return
		}

		sess := sessions.Default(c)
		roleStr, _ := sess.Get(SessionRoleKey).(string)
		if _, ok := roleSet[models.UserRole(roleStr)]; ok {
			c.Next()
			return
		}

		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "autenticación requerida",
			})
			return
		}
		c.Redirect(http.StatusFound, "/login")
		c.Abort()
	}
}

// RequireEditor guards the MAGERIT mutation routes.
func RequireEditor(enabled bool) gin.HandlerFunc {
	return RequireRole(enabled, models.RoleEditor)
}
