package handlers

import (
	"net/http"
	"strings"

	"secmatrix/internal/middleware"
	"secmatrix/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const badCredentialsMsg = "Usuario o contraseña incorrectos"

func (h *Handler) ShowLogin(c *gin.Context) {
	if !h.AuthEnabled() {
		c.Redirect(http.StatusFound, "/")
		return
	}
	h.render(c, http.StatusOK, "login.html", gin.H{"error": ""})
}

type loginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

func (h *Handler) Login(c *gin.Context) {
	if !h.AuthEnabled() {
		c.Redirect(http.StatusFound, "/")
		return
	}

	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		h.render(c, http.StatusBadRequest, "login.html", gin.H{"error": "Datos inválidos"})
		return
	}

	form.Username = strings.TrimSpace(form.Username)
	if form.Username != h.editor.Username {
		h.render(c, http.StatusUnauthorized, "login.html", gin.H{"error": badCredentialsMsg})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(h.editor.PasswordHash), []byte(form.Password)); err != nil {
		log.Warn().Str("username", form.Username).Msg("login rejected")
		h.render(c, http.StatusUnauthorized, "login.html", gin.H{"error": badCredentialsMsg})
		return
	}

	role := h.editor.Role
	if role == "" {
		role = models.RoleEditor
	}

	sess := sessions.Default(c)
	sess.Set(middleware.SessionEditorKey, h.editor.Username)
	sess.Set(middleware.SessionRoleKey, string(role))
	_ = sess.Save()

	log.Info().Str("username", h.editor.Username).Msg("editor logged in")
	c.Redirect(http.StatusFound, "/magerit")
}

func (h *Handler) Logout(c *gin.Context) {
	sess := sessions.Default(c)
	sess.Clear()
	_ = sess.Save()
	c.Redirect(http.StatusFound, "/")
}
