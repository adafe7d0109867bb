package server

import (
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"secmatrix/internal/config"
	"secmatrix/internal/handlers"
	"secmatrix/internal/metrics"
	"secmatrix/internal/middleware"
	"secmatrix/internal/models"
	"secmatrix/web"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// riskClass maps "... (Riesgo Medio-Bajo)" to the css class "risk-medio-bajo".
func riskClass(residual string) string {
	const marker = "(Riesgo "
	idx := strings.LastIndex(residual, marker)
	if idx < 0 {
		return ""
	}
	label := strings.TrimSuffix(strings.TrimSpace(residual[idx+len(marker):]), ")")
	return "risk-" + strings.ToLower(strings.ReplaceAll(label, " ", "-"))
}

func NewRouter(cfg *config.Config, h *handlers.Handler, m *metrics.Metrics) (*gin.Engine, error) {
	r := gin.Default()
	r.Use(middleware.RequestID(), middleware.Metrics(m))

	static, err := fs.Sub(web.Static, "static")
	if err != nil {
		return nil, err
	}
	r.StaticFS("/static", http.FS(static))

	tmpl, err := template.New("").
		Funcs(template.FuncMap{"riskClass": riskClass}).
		ParseFS(web.Templates, "templates/*.html")
	if err != nil {
		return nil, err
	}
	r.SetHTMLTemplate(tmpl)

	secret := cfg.SessionSecret
	if secret == "" {
		// sessions only carry the editor login; without auth a per-process key is enough
		secret = uuid.NewString()
	}
	store := cookie.NewStore([]byte(secret))
	store.Options(sessions.Options{Path: "/", HttpOnly: true, SameSite: http.SameSiteLaxMode})
	r.Use(sessions.Sessions("secmatrix_session", store))

	r.Use(middleware.InjectEditor())

	// PAGES
	r.GET("/", h.IndexPage)
	r.GET("/magerit", h.SourcePage(models.SourceMagerit))
	r.GET("/anexo-a", h.SourcePage(models.SourceAnexoA))
	r.GET("/cobit", h.SourcePage(models.SourceCOBIT))
	r.GET("/nist", h.SourcePage(models.SourceNIST))
	r.GET("/reports", h.ReportsPage)

	// AUTH
	r.GET("/login", h.ShowLogin)
	r.POST("/login", h.Login)
	r.GET("/logout", h.Logout)

	// API
	api := r.Group("/api")
	api.GET("/data/all", h.GetAllData)
	api.GET("/data/:source", h.GetSourceData)
	api.GET("/export/:source", h.ExportSource)
	api.POST("/magerit/calculate", h.CalculateRisk)
	api.POST("/report/generate", h.GenerateReport)

	editor := api.Group("/")
	editor.Use(middleware.RequireEditor(cfg.EditorAuthEnabled()))
	editor.POST("/magerit/update/:row_index", h.UpdateAsset)
	editor.POST("/magerit/add", h.AddAsset)
	editor.GET("/audit", h.ListAuditLogs)

	// METRICS
	if m != nil {
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}

	// HEALTHCHECK
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	return r, nil
}
