package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/interfaces/http/handler"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())
	assert.Equal(t, "/api/v1", r.BasePath())
	assert.Empty(t, r.registrars)

	r = NewRouter(gin.New(), WithAPIVersion("v2"))
	assert.Equal(t, "/api/v2", r.BasePath())
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	g := NewDomainGroup("test", "/test")
	g.GET("/a", func(c *gin.Context) { c.String(http.StatusOK, "a") }).
		POST("/b", func(c *gin.Context) { c.String(http.StatusCreated, "b") }).
		PUT("/c/:id", func(c *gin.Context) { c.String(http.StatusOK, c.Param("id")) }).
		DELETE("/d/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	r.Register(g).Setup()

	assert.Equal(t, "a", serve(engine, http.MethodGet, "/api/v1/test/a").Body.String())
	assert.Equal(t, http.StatusCreated, serve(engine, http.MethodPost, "/api/v1/test/b").Code)
	assert.Equal(t, "42", serve(engine, http.MethodPut, "/api/v1/test/c/42").Body.String())
	assert.Equal(t, http.StatusNoContent, serve(engine, http.MethodDelete, "/api/v1/test/d/1").Code)
	assert.Equal(t, http.StatusNotFound, serve(engine, http.MethodGet, "/test/a").Code)
}

func TestRouterMiddleware(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)
	r.Use(func(c *gin.Context) {
		c.Header("X-Api", "1")
		c.Next()
	})

	g := NewDomainGroup("test", "/test").Use(func(c *gin.Context) {
		c.Header("X-Group", "test")
		c.Next()
	})
	g.GET("/items", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.Register(g).Setup()

	engine.GET("/outside", func(c *gin.Context) { c.String(http.StatusOK, "outside") })

	w := serve(engine, http.MethodGet, "/api/v1/test/items")
	assert.Equal(t, "1", w.Header().Get("X-Api"))
	assert.Equal(t, "test", w.Header().Get("X-Group"))

	w = serve(engine, http.MethodGet, "/outside")
	assert.Empty(t, w.Header().Get("X-Api"))
}

func TestDomainGroup(t *testing.T) {
	g := NewDomainGroup("tenants", "/tenants")
	assert.Equal(t, "tenants", g.Name())
	assert.Equal(t, "/tenants", g.Prefix())
}

func apiHandlers() Handlers {
	return Handlers{
		Auth:        handler.NewAuthHandler(nil),
		Property:    handler.NewPropertyHandler(nil),
		Tenant:      handler.NewTenantHandler(nil, nil, nil),
		Maintenance: handler.NewMaintenanceHandler(nil),
		Message:     handler.NewMessageHandler(nil),
		Dashboard:   handler.NewDashboardHandler(nil),
		System:      handler.NewSystemHandler("PropertyHub API", "1.0.0", nil),
	}
}

func TestRegisterAPI(t *testing.T) {
	engine := gin.New()
	RegisterAPI(NewRouter(engine), apiHandlers()).Setup()

	registered := make(map[string]bool)
	for _, route := range engine.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	expected := []string{
		"POST /api/v1/auth/register",
		"POST /api/v1/auth/login",
		"POST /api/v1/auth/refresh",
		"POST /api/v1/auth/logout",
		"GET /api/v1/auth/me",
		"POST /api/v1/properties",
		"GET /api/v1/properties",
		"GET /api/v1/properties/:id",
		"PUT /api/v1/properties/:id",
		"DELETE /api/v1/properties/:id",
		"POST /api/v1/properties/:id/units",
		"PUT /api/v1/properties/:id/units/:unitNumber",
		"DELETE /api/v1/properties/:id/units/:unitNumber",
		"POST /api/v1/tenants",
		"GET /api/v1/tenants",
		"GET /api/v1/tenants/:id",
		"PUT /api/v1/tenants/:id",
		"DELETE /api/v1/tenants/:id",
		"POST /api/v1/tenants/:id/move-out",
		"POST /api/v1/tenants/:id/payments",
		"GET /api/v1/tenants/:id/payments",
		"GET /api/v1/tenants/:id/lease-document",
		"POST /api/v1/maintenance-requests",
		"GET /api/v1/maintenance-requests",
		"GET /api/v1/maintenance-requests/:id",
		"PUT /api/v1/maintenance-requests/:id",
		"DELETE /api/v1/maintenance-requests/:id",
		"POST /api/v1/maintenance-requests/:id/schedule",
		"POST /api/v1/maintenance-requests/:id/start",
		"POST /api/v1/maintenance-requests/:id/resolve",
		"POST /api/v1/maintenance-requests/:id/cancel",
		"POST /api/v1/messages",
		"GET /api/v1/messages/inbox",
		"GET /api/v1/messages/sent",
		"GET /api/v1/messages/:id",
		"POST /api/v1/messages/:id/read",
		"DELETE /api/v1/messages/:id",
		"GET /api/v1/dashboard",
		"GET /api/v1/system/ping",
	}
	for _, route := range expected {
		assert.True(t, registered[route], "missing route %s", route)
	}
}

func TestRegisterAPI_Serving(t *testing.T) {
	engine := gin.New()
	RegisterAPI(NewRouter(engine), apiHandlers()).Setup()

	t.Run("public ping", func(t *testing.T) {
		w := serve(engine, http.MethodGet, "/api/v1/system/ping")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "pong")
	})

	t.Run("protected route without a user", func(t *testing.T) {
		w := serve(engine, http.MethodGet, "/api/v1/dashboard")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestPublicPaths(t *testing.T) {
	paths := PublicPaths("/api/v1")
	assert.Contains(t, paths, "/api/v1/auth/login")
	assert.Contains(t, paths, "/api/v1/auth/register")
	assert.NotContains(t, paths, "/api/v1/auth/logout")
}
