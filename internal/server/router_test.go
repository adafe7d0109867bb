package server

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"secmatrix/internal/config"
	"secmatrix/internal/csvstore"
	"secmatrix/internal/database"
	"secmatrix/internal/handlers"
	"secmatrix/internal/matrix"
	"secmatrix/internal/metrics"
	"secmatrix/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const mageritCSV = "N° Activos,Tipo de Activo,Activo,Amenaza,Valor Económico,Frecuencia,Impacto,Riesgo Intrínseco,Salvaguarda,Valor Salvaguarda,Riesgo Residual\r\n" +
	"1,Hardware,Servidor GPU,Fallo eléctrico,$ 20.000.000,2,Alto: 3.5,2.0 * 3.5 = 7.0,UPS,Alto: 60%,7.0 - 4.20 = 2.8 (Riesgo Medio-Bajo)\r\n"

func newTestRouter(t *testing.T, cfg *config.Config) *gin.Engine {
	t.Helper()
	dir := t.TempDir()
	sources := models.DefaultSources()
	files := map[models.SourceName]string{
		models.SourceMagerit: mageritCSV,
		models.SourceAnexoA:  "Categoría,Control\r\nOrganizacional,A.5.1\r\n",
		models.SourceCOBIT:   "Proceso COBIT,Objetivo\r\nEDM01,Gobierno\r\n",
		models.SourceNIST:    "Función NIST,Control\r\nIdentificar,ID.AM-1\r\n",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, sources[name].File), []byte(content), 0o644))
	}

	m := metrics.New()
	h := handlers.New(handlers.Deps{
		Matrix:      matrix.New(csvstore.New(dir, sources), matrix.WithMetrics(m)),
		Audit:       database.NewAuditTrail(nil),
		Metrics:     m,
		Editor:      models.Editor{Username: cfg.EditorUsername, PasswordHash: cfg.EditorPasswordHash, Role: models.RoleEditor},
		ProjectName: "Geotermia con CNN",
	})

	r, err := NewRouter(cfg, h, m)
	require.NoError(t, err)
	return r
}

func get(r http.Handler, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestPagesRender(t *testing.T) {
	r := newTestRouter(t, &config.Config{})

	for path, want := range map[string]string{
		"/":        "Panel de Seguridad",
		"/magerit": "Servidor GPU",
		"/anexo-a": "A.5.1",
		"/cobit":   "EDM01",
		"/nist":    "ID.AM-1",
		"/reports": `value="anexo_a"`,
	} {
		rec := get(r, path)
		require.Equal(t, http.StatusOK, rec.Code, path)
		assert.Contains(t, rec.Body.String(), want, path)
		assert.Contains(t, rec.Body.String(), "Geotermia con CNN", path)
	}
}

func TestMageritPageRiskClassAndEditing(t *testing.T) {
	r := newTestRouter(t, &config.Config{})

	body := get(r, "/magerit").Body.String()
	assert.Contains(t, body, `class="risk-medio-bajo"`)
	assert.Contains(t, body, "edit-asset", "editing is open when login is disabled")
	assert.NotContains(t, body, "/login")
}

func TestHealthMetricsStatic(t *testing.T) {
	r := newTestRouter(t, &config.Config{})

	rec := get(r, "/health")
	assert.Equal(t, "ok", rec.Body.String())

	get(r, "/api/data/nist")
	rec = get(r, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `secmatrix_http_requests_total{method="GET",route="/api/data/:source",status="200"} 1`)

	rec = get(r, "/static/app.js")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestLoginDisabledRedirects(t *testing.T) {
	r := newTestRouter(t, &config.Config{})

	rec := get(r, "/login")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestEditorLoginFlow(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3creto"), bcrypt.MinCost)
	require.NoError(t, err)
	cfg := &config.Config{EditorUsername: "ana", EditorPasswordHash: string(hash), SessionSecret: "test-secret"}
	r := newTestRouter(t, cfg)

	addAsset := func(cookies ...*http.Cookie) int {
		req := httptest.NewRequest(http.MethodPost, "/api/magerit/update/1", strings.NewReader(`{"salvaguarda":"UPS doble"}`))
		req.Header.Set("Content-Type", "application/json")
		for _, c := range cookies {
			req.AddCookie(c)
		}
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec.Code
	}
	login := func(password string) *httptest.ResponseRecorder {
		form := url.Values{"username": {"ana"}, "password": {password}}
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusUnauthorized, addAsset())
	assert.Equal(t, http.StatusOK, get(r, "/login").Code)
	assert.NotContains(t, get(r, "/magerit").Body.String(), "edit-asset")

	rec := login("incorrecta")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Usuario o contraseña incorrectos")

	rec = login("s3creto")
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/magerit", rec.Header().Get("Location"))
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	assert.Equal(t, http.StatusOK, addAsset(cookies...))
	page := get(r, "/magerit", cookies...).Body.String()
	assert.Contains(t, page, "edit-asset")
	assert.Contains(t, page, "ana (editor)")
	assert.Equal(t, http.StatusOK, get(r, "/api/audit", cookies...).Code)
}

func TestRiskClass(t *testing.T) {
	assert.Equal(t, "risk-medio-bajo", riskClass("7.0 - 4.20 = 2.8 (Riesgo Medio-Bajo)"))
	assert.Equal(t, "risk-alto", riskClass("4 - 0 = 4 (Riesgo Alto)"))
	assert.Equal(t, "", riskClass("sin calcular"))
}
