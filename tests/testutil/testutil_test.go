package testutil

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/infrastructure/auth"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordingHandler(t *testing.T) {
	h := NewRecordingHandler("TenantCreated")
	assert.Equal(t, []string{"TenantCreated"}, h.EventTypes())

	ownerID := uuid.New()
	require.NoError(t, h.Handle(context.Background(), NewStubEvent("TenantCreated", ownerID)))

	boom := errors.New("boom")
	h.FailWith(boom)
	assert.ErrorIs(t, h.Handle(context.Background(), NewStubEvent("TenantCreated", ownerID)), boom)

	assert.Equal(t, 2, h.Count())
	assert.Equal(t, ownerID, h.Handled()[0].OwnerID())
	assert.Equal(t, []string{"TenantCreated", "TenantCreated"}, h.Types())
	assert.True(t, WaitForCount(t, h, 2, 50*time.Millisecond))
	assert.False(t, WaitForCount(t, h, 3, 30*time.Millisecond))
}

func TestNewTestUUID(t *testing.T) {
	assert.Equal(t, NewTestUUID("a"), NewTestUUID("a"))
	assert.NotEqual(t, NewTestUUID("a"), NewTestUUID("b"))
	assert.Equal(t, NewTestUUID("test-owner"), TestOwnerID())
}

func TestAccessToken(t *testing.T) {
	svc := auth.NewJWTService(TestJWTConfig())
	userID := uuid.New()

	claims, err := svc.ValidateAccessToken(AccessToken(t, svc, userID, "landlord"))
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "landlord", claims.Username)
}

func TestAuthenticatedContext(t *testing.T) {
	userID := uuid.New()
	c, _ := AuthenticatedContext(userID)
	assert.Equal(t, userID.String(), middleware.GetJWTUserID(c))
}

func TestDoJSON(t *testing.T) {
	engine := gin.New()
	engine.POST("/echo", func(c *gin.Context) {
		var body map[string]string
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": gin.H{"code": "INVALID_INPUT", "message": err.Error()}})
			return
		}
		body["auth"] = c.GetHeader("Authorization")
		c.JSON(http.StatusOK, gin.H{"success": true, "data": body})
	})

	status, env := DoJSON(t, engine, http.MethodPost, "/echo", "tok", map[string]string{"name": "Palm Court"})
	require.Equal(t, http.StatusOK, status)
	assert.True(t, env.Success)
	assert.Empty(t, env.ErrorCode())
	data := DataAs[map[string]string](t, env)
	assert.Equal(t, "Palm Court", data["name"])
	assert.Equal(t, "Bearer tok", data["auth"])

	status, env = DoJSON(t, engine, http.MethodPost, "/echo", "", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_INPUT", env.ErrorCode())
}

func TestMockDB(t *testing.T) {
	m := NewMockDB(t)
	m.Mock.ExpectQuery("SELECT count").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	var count int64
	require.NoError(t, m.DB.Raw("SELECT count(*) FROM properties").Scan(&count).Error)
	assert.Equal(t, int64(3), count)
	m.ExpectationsWereMet(t)
}
