package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	dashboardapp "github.com/RaymondAkiiki/property-management-webapp-sub001/internal/application/dashboard"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/maintenance"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/property"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/shared"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/tenant"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDashboardHandler_Summary(t *testing.T) {
	ownerID := uuid.New()
	scoped := mock.MatchedBy(func(f shared.Filter) bool { return f.OwnerID == ownerID })

	p := newHandlerTestProperty(t, ownerID, "1A", "1B")
	tn := newHandlerTestTenant(t, ownerID, p, "1A")
	require.NoError(t, p.OccupyUnit("1A", tn.ID))
	r := newHandlerTestRequest(t, ownerID)

	properties := new(MockPropertyRepository)
	tenants := new(MockTenantRepository)
	requests := new(MockMaintenanceRepository)
	messages := new(MockMessageRepository)
	properties.On("FindAll", mock.Anything, scoped).Return([]property.Property{*p}, int64(1), nil)
	tenants.On("FindAll", mock.Anything, scoped).Return([]tenant.Tenant{*tn}, int64(1), nil)
	requests.On("FindAll", mock.Anything, scoped).Return([]maintenance.MaintenanceRequest{*r}, int64(1), nil)
	messages.On("CountUnread", mock.Anything, ownerID).Return(int64(2), nil)

	h := NewDashboardHandler(dashboardapp.NewDashboardService(properties, tenants, requests, messages, zap.NewNop()))
	router := gin.New()
	router.GET("/api/v1/dashboard", asUser(ownerID), h.Summary)

	w := sendJSON(router, http.MethodGet, "/api/v1/dashboard", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp APIResponse[dashboardapp.SummaryResponse]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Data.Properties.Total)
	assert.Equal(t, 2, resp.Data.Properties.TotalUnits)
	assert.Equal(t, 1, resp.Data.Properties.OccupiedUnits)
	assert.Equal(t, 1, resp.Data.Tenants.Active)
	assert.Equal(t, 1, resp.Data.OpenRequests)
	assert.Equal(t, int64(2), resp.Data.UnreadMessages)
}

func TestDashboardHandler_RepositoryFailure(t *testing.T) {
	ownerID := uuid.New()
	properties := new(MockPropertyRepository)
	properties.On("FindAll", mock.Anything, mock.Anything).Return([]property.Property{}, int64(0), errors.New("connection refused"))

	h := NewDashboardHandler(dashboardapp.NewDashboardService(properties, new(MockTenantRepository), new(MockMaintenanceRepository), nil, zap.NewNop()))
	router := gin.New()
	router.GET("/api/v1/dashboard", asUser(ownerID), h.Summary)

	w := sendJSON(router, http.MethodGet, "/api/v1/dashboard", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
}
