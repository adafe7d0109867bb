package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"secmatrix/internal/metrics"
	"secmatrix/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newAuthRouter exposes /login-as to seed the session, a guarded API route
// and a guarded page.
func newAuthRouter(enabled bool) *gin.Engine {
	r := gin.New()
	r.Use(sessions.Sessions("secmatrix_session", cookie.NewStore([]byte("test-secret"))))
	r.Use(InjectEditor())

	r.GET("/login-as/:role", func(c *gin.Context) {
		sess := sessions.Default(c)
		sess.Set(SessionEditorKey, "ana")
		sess.Set(SessionRoleKey, c.Param("role"))
		_ = sess.Save()
		c.Status(http.StatusNoContent)
	})

	guard := RequireEditor(enabled)
	r.POST("/api/magerit/add", guard, func(c *gin.Context) {
		c.String(http.StatusOK, CurrentEditor(c))
	})
	r.GET("/magerit/edit", guard, func(c *gin.Context) {
		c.String(http.StatusOK, "page")
	})
	return r
}

func serve(r http.Handler, method, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRequireEditor_DisabledPassesEveryone(t *testing.T) {
	r := newAuthRouter(false)

	rec := serve(r, http.MethodPost, "/api/magerit/add")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestRequireEditor_AnonymousAPIGets401(t *testing.T) {
	r := newAuthRouter(true)

	rec := serve(r, http.MethodPost, "/api/magerit/add")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"autenticación requerida"}`, rec.Body.String())
}

func TestRequireEditor_AnonymousPageRedirects(t *testing.T) {
	r := newAuthRouter(true)

	rec := serve(r, http.MethodGet, "/magerit/edit")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestRequireEditor_SessionRoles(t *testing.T) {
	r := newAuthRouter(true)

	login := serve(r, http.MethodGet, "/login-as/"+string(models.RoleEditor))
	require.NotEmpty(t, login.Result().Cookies())

	rec := serve(r, http.MethodPost, "/api/magerit/add", login.Result().Cookies()...)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ana", rec.Body.String())

	viewer := serve(r, http.MethodGet, "/login-as/"+string(models.RoleViewer))
	rec = serve(r, http.MethodPost, "/api/magerit/add", viewer.Result().Cookies()...)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestInjectEditor_DefaultsToViewer(t *testing.T) {
	r := gin.New()
	r.Use(sessions.Sessions("s", cookie.NewStore([]byte("k"))), InjectEditor())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "%s|%s", CurrentEditor(c), CurrentRole(c))
	})

	rec := serve(r, http.MethodGet, "/")
	assert.Equal(t, "|viewer", rec.Body.String())
}

func TestCurrentRole_FromSession(t *testing.T) {
	r := newAuthRouter(true)
	r.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, string(CurrentRole(c)))
	})

	login := serve(r, http.MethodGet, "/login-as/"+string(models.RoleEditor))
	rec := serve(r, http.MethodGet, "/whoami", login.Result().Cookies()...)
	assert.Equal(t, "editor", rec.Body.String())

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Equal(t, models.RoleViewer, CurrentRole(c), "unset context")
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(RequestIDKey))
	})

	rec := serve(r, http.MethodGet, "/")
	id := rec.Header().Get(RequestIDHeader)
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, id, rec.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestMetrics_RecordsRouteTemplate(t *testing.T) {
	m := metrics.New()
	r := gin.New()
	r.Use(Metrics(m))
	r.GET("/api/data/:source", func(c *gin.Context) { c.Status(http.StatusOK) })

	serve(r, http.MethodGet, "/api/data/nist")
	serve(r, http.MethodGet, "/api/data/cobit")
	serve(r, http.MethodGet, "/nowhere")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/api/data/:source", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "unmatched", "404")))
}

func TestMetrics_NilIsPassThrough(t *testing.T) {
	r := gin.New()
	r.Use(Metrics(nil))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusAccepted) })

	assert.Equal(t, http.StatusAccepted, serve(r, http.MethodGet, "/").Code)
}
