package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/infrastructure/auth"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/infrastructure/config"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/infrastructure/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestJWTService(accessTTL time.Duration) *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars",
		RefreshSecret:          "test-refresh-secret-key-32-chars",
		AccessTokenExpiration:  accessTTL,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "propertyhub-test",
		MaxRefreshCount:        10,
	})
}

func newTestTokenPair(t *testing.T, jwtService *auth.JWTService) (*auth.TokenPair, auth.GenerateTokenInput) {
	t.Helper()
	input := auth.GenerateTokenInput{
		UserID:   uuid.New(),
		Username: "landlord",
		Email:    "landlord@example.com",
	}
	pair, err := jwtService.GenerateTokenPair(input)
	require.NoError(t, err)
	return pair, input
}

func serveWithAuth(router *gin.Engine, path, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func okRouter(mw gin.HandlerFunc, paths ...string) *gin.Engine {
	router := gin.New()
	router.Use(mw)
	for _, p := range paths {
		router.GET(p, func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"user_id": GetJWTUserID(c)})
		})
	}
	return router
}

func TestJWTAuthMiddleware_ValidToken(t *testing.T) {
	jwtService := newTestJWTService(15 * time.Minute)
	pair, input := newTestTokenPair(t, jwtService)

	router := gin.New()
	router.Use(JWTAuthMiddleware(jwtService))
	router.GET("/api/v1/properties", func(c *gin.Context) {
		claims := GetJWTClaims(c)
		require.NotNil(t, claims)
		assert.Equal(t, input.UserID.String(), claims.UserID)
		assert.Equal(t, input.UserID.String(), GetJWTUserID(c))
		assert.Equal(t, "landlord", GetJWTUsername(c))
		assert.Equal(t, input.UserID.String(), logger.GetUserID(c.Request.Context()))
		assert.Equal(t, "landlord", logger.GetUsername(c.Request.Context()))
		c.Status(http.StatusOK)
	})

	rec := serveWithAuth(router, "/api/v1/properties", "Bearer "+pair.AccessToken)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestJWTAuthMiddleware_Rejections(t *testing.T) {
	jwtService := newTestJWTService(15 * time.Minute)
	pair, _ := newTestTokenPair(t, jwtService)
	router := okRouter(JWTAuthMiddleware(jwtService), "/api/v1/tenants")

	tests := []struct {
		name     string
		header   string
		wantCode string
	}{
		{"missing header", "", `"ERR_UNAUTHORIZED"`},
		{"basic scheme", "Basic dXNlcjpwYXNz", `"ERR_UNAUTHORIZED"`},
		{"empty bearer", "Bearer ", `"ERR_UNAUTHORIZED"`},
		{"garbage token", "Bearer not.a.jwt", `"ERR_TOKEN_INVALID"`},
		{"refresh token as access", "Bearer " + pair.RefreshToken, `"ERR_TOKEN_INVALID"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serveWithAuth(router, "/api/v1/tenants", tt.header)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantCode)
			assert.Contains(t, rec.Body.String(), `"success":false`)
		})
	}
}

func TestJWTAuthMiddleware_ExpiredToken(t *testing.T) {
	jwtService := newTestJWTService(-time.Minute)
	pair, _ := newTestTokenPair(t, jwtService)
	router := okRouter(JWTAuthMiddleware(jwtService), "/api/v1/tenants")

	rec := serveWithAuth(router, "/api/v1/tenants", "Bearer "+pair.AccessToken)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "ERR_TOKEN_EXPIRED")
}

func TestJWTAuthMiddleware_DefaultSkipPaths(t *testing.T) {
	jwtService := newTestJWTService(15 * time.Minute)
	paths := []string{
		"/health",
		"/api/v1/health",
		"/api/v1/auth/register",
		"/api/v1/auth/login",
		"/api/v1/auth/refresh",
		"/swagger/index.html",
	}
	router := okRouter(JWTAuthMiddleware(jwtService), paths...)

	for _, p := range paths {
		t.Run(p, func(t *testing.T) {
			rec := serveWithAuth(router, p, "")
			assert.Equal(t, http.StatusOK, rec.Code)
		})
	}

	router.GET("/api/v1/auth/me", func(c *gin.Context) { c.Status(http.StatusOK) })
	assert.Equal(t, http.StatusUnauthorized, serveWithAuth(router, "/api/v1/auth/me", "").Code)
}

type failingBlacklist struct{}

func (failingBlacklist) Revoke(context.Context, string, time.Duration) error { return nil }
func (failingBlacklist) IsRevoked(context.Context, string) (bool, error) {
	return false, errors.New("redis unavailable")
}

func TestJWTAuthMiddleware_RevokedToken(t *testing.T) {
	jwtService := newTestJWTService(15 * time.Minute)
	pair, _ := newTestTokenPair(t, jwtService)
	blacklist := auth.NewInMemoryTokenBlacklist()

	cfg := DefaultJWTConfig(jwtService)
	cfg.TokenBlacklist = blacklist
	router := okRouter(JWTAuthMiddlewareWithConfig(cfg), "/api/v1/tenants")

	assert.Equal(t, http.StatusOK, serveWithAuth(router, "/api/v1/tenants", "Bearer "+pair.AccessToken).Code)

	claims, err := jwtService.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	require.NoError(t, blacklist.Revoke(context.Background(), claims.ID, time.Minute))

	rec := serveWithAuth(router, "/api/v1/tenants", "Bearer "+pair.AccessToken)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Token has been revoked")
}

func TestJWTAuthMiddleware_BlacklistOutageFailsOpen(t *testing.T) {
	jwtService := newTestJWTService(15 * time.Minute)
	pair, _ := newTestTokenPair(t, jwtService)

	cfg := DefaultJWTConfig(jwtService)
	cfg.TokenBlacklist = failingBlacklist{}
	router := okRouter(JWTAuthMiddlewareWithConfig(cfg), "/api/v1/tenants")

	assert.Equal(t, http.StatusOK, serveWithAuth(router, "/api/v1/tenants", "Bearer "+pair.AccessToken).Code)
}

func TestJWTAuthMiddleware_CustomOnError(t *testing.T) {
	jwtService := newTestJWTService(15 * time.Minute)
	cfg := DefaultJWTConfig(jwtService)
	var seen error
	cfg.OnError = func(c *gin.Context, err error) {
		seen = err
		c.AbortWithStatus(http.StatusTeapot)
	}
	router := okRouter(JWTAuthMiddlewareWithConfig(cfg), "/api/v1/tenants")

	rec := serveWithAuth(router, "/api/v1/tenants", "")

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.ErrorIs(t, seen, auth.ErrInvalidToken)
}

func TestGetJWTHelpers_NotFound(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	assert.Nil(t, GetJWTClaims(c))
	assert.Empty(t, GetJWTUserID(c))
	assert.Empty(t, GetJWTUsername(c))
}

func TestOptionalJWTAuthMiddleware(t *testing.T) {
	jwtService := newTestJWTService(15 * time.Minute)
	pair, input := newTestTokenPair(t, jwtService)
	router := okRouter(OptionalJWTAuthMiddleware(jwtService), "/public")

	t.Run("no token", func(t *testing.T) {
		rec := serveWithAuth(router, "/public", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"user_id":""}`, rec.Body.String())
	})

	t.Run("valid token", func(t *testing.T) {
		rec := serveWithAuth(router, "/public", "Bearer "+pair.AccessToken)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"user_id":"`+input.UserID.String()+`"}`, rec.Body.String())
	})

	t.Run("invalid token", func(t *testing.T) {
		rec := serveWithAuth(router, "/public", "Bearer broken")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"user_id":""}`, rec.Body.String())
	})
}
