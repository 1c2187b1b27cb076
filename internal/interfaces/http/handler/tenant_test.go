package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/application/tenancy"
	tenantapp "github.com/RaymondAkiiki/property-management-webapp-sub001/internal/application/tenant"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/access"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/property"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/shared"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/tenant"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/infrastructure/cache"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type tenantFixture struct {
	properties *MockPropertyRepository
	tenants    *MockTenantRepository
}

func newTenantFixture() *tenantFixture {
	return &tenantFixture{
		properties: new(MockPropertyRepository),
		tenants:    new(MockTenantRepository),
	}
}

func (f *tenantFixture) router(callerID uuid.UUID) *gin.Engine {
	policy := access.NewOwnershipPolicy()
	scope := tenancy.NewNoOpTransactionScope(f.properties, f.tenants)
	tenancySvc := tenancy.NewTenancyService(scope, f.tenants, cache.NewInMemoryLocker(time.Second), policy, zap.NewNop())
	tenantSvc := tenantapp.NewTenantService(f.tenants, scope, policy, zap.NewNop())
	h := NewTenantHandler(tenantSvc, tenancySvc, nil)

	router := gin.New()
	api := router.Group("/api/v1", asUser(callerID))
	api.POST("/tenants", h.Create)
	api.GET("/tenants", h.List)
	api.GET("/tenants/:id", h.GetByID)
	api.PUT("/tenants/:id", h.Update)
	api.DELETE("/tenants/:id", h.Delete)
	api.POST("/tenants/:id/move-out", h.MoveOut)
	api.POST("/tenants/:id/extend-lease", h.ExtendLease)
	api.POST("/tenants/:id/payments", h.RecordPayment)
	api.GET("/tenants/:id/payments", h.ListPayments)
	api.GET("/tenants/:id/lease-document", h.LeaseDocument)
	return router
}

func newHandlerTestTenant(t *testing.T, ownerID uuid.UUID, p *property.Property, unitNumber string) *tenant.Tenant {
	t.Helper()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tn, err := tenant.NewTenant(ownerID, tenant.Contact{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
	}, tenant.LeaseDetails{
		PropertyID: p.ID,
		UnitNumber: unitNumber,
		StartDate:  start,
		EndDate:    start.AddDate(1, 0, 0),
		RentAmount: decimal.NewFromInt(1200),
	})
	require.NoError(t, err)
	tn.ClearDomainEvents()
	tn.MarkPersisted()
	return tn
}

func validCreateTenant(propertyID uuid.UUID, unit string) CreateTenantRequest {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return CreateTenantRequest{
		FirstName:  "Ada",
		LastName:   "Lovelace",
		Email:      "ada@example.com",
		PropertyID: propertyID,
		UnitNumber: unit,
		StartDate:  start,
		EndDate:    start.AddDate(1, 0, 0),
	}
}

func TestTenantHandler_Create(t *testing.T) {
	ownerID := uuid.New()

	t.Run("occupies a vacant unit", func(t *testing.T) {
		f := newTenantFixture()
		p := newHandlerTestProperty(t, ownerID, "1A")
		f.properties.On("FindByID", mock.Anything, p.ID).Return(p, nil)
		f.tenants.On("Create", mock.Anything, mock.AnythingOfType("*tenant.Tenant")).Return(nil)
		f.properties.On("OccupyUnit", mock.Anything, p.ID, "1A", mock.AnythingOfType("uuid.UUID")).Return(nil)

		w := sendJSON(f.router(ownerID), http.MethodPost, "/api/v1/tenants", validCreateTenant(p.ID, "1A"))

		require.Equal(t, http.StatusCreated, w.Code)
		var resp APIResponse[tenantapp.TenantResponse]
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "active", resp.Data.Status)
		assert.Equal(t, "1A", resp.Data.Lease.UnitNumber)
		// rent defaults to the unit rent
		assert.True(t, resp.Data.Lease.RentAmount.Equal(decimal.NewFromInt(1200)))
		f.properties.AssertExpectations(t)
		f.tenants.AssertExpectations(t)
	})

	t.Run("occupied unit is rejected", func(t *testing.T) {
		f := newTenantFixture()
		p := newHandlerTestProperty(t, ownerID, "1A")
		require.NoError(t, p.OccupyUnit("1A", uuid.New()))
		f.properties.On("FindByID", mock.Anything, p.ID).Return(p, nil)

		w := sendJSON(f.router(ownerID), http.MethodPost, "/api/v1/tenants", validCreateTenant(p.ID, "1A"))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), dto.ErrCodeConflict)
		f.tenants.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("unknown unit", func(t *testing.T) {
		f := newTenantFixture()
		p := newHandlerTestProperty(t, ownerID, "1A")
		f.properties.On("FindByID", mock.Anything, p.ID).Return(p, nil)

		w := sendJSON(f.router(ownerID), http.MethodPost, "/api/v1/tenants", validCreateTenant(p.ID, "9Z"))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("property of another owner", func(t *testing.T) {
		f := newTenantFixture()
		p := newHandlerTestProperty(t, uuid.New(), "1A")
		f.properties.On("FindByID", mock.Anything, p.ID).Return(p, nil)

		w := sendJSON(f.router(ownerID), http.MethodPost, "/api/v1/tenants", validCreateTenant(p.ID, "1A"))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("end before start fails validation", func(t *testing.T) {
		f := newTenantFixture()
		req := validCreateTenant(uuid.New(), "1A")
		req.EndDate = req.StartDate.AddDate(0, -1, 0)

		w := sendJSON(f.router(ownerID), http.MethodPost, "/api/v1/tenants", req)

		require.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	})
}

func TestTenantHandler_EndTenancy(t *testing.T) {
	ownerID := uuid.New()

	t.Run("delete releases the unit", func(t *testing.T) {
		f := newTenantFixture()
		p := newHandlerTestProperty(t, ownerID, "1A")
		tn := newHandlerTestTenant(t, ownerID, p, "1A")
		require.NoError(t, p.OccupyUnit("1A", tn.ID))
		f.tenants.On("FindByID", mock.Anything, tn.ID).Return(tn, nil)
		f.properties.On("FindByID", mock.Anything, p.ID).Return(p, nil)
		f.properties.On("ReleaseUnit", mock.Anything, p.ID, "1A", tn.ID).Return(true, nil)
		f.tenants.On("Delete", mock.Anything, tn.ID).Return(nil)

		w := sendJSON(f.router(ownerID), http.MethodDelete, "/api/v1/tenants/"+tn.ID.String(), nil)

		require.Equal(t, http.StatusOK, w.Code)
		var resp APIResponse[tenantapp.TenancyEndedResponse]
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Data.Deleted)
		assert.True(t, resp.Data.UnitReleased)
		f.tenants.AssertExpectations(t)
	})

	t.Run("delete of an orphaned lease still succeeds", func(t *testing.T) {
		f := newTenantFixture()
		p := newHandlerTestProperty(t, ownerID, "1A")
		tn := newHandlerTestTenant(t, ownerID, p, "1A")
		f.tenants.On("FindByID", mock.Anything, tn.ID).Return(tn, nil)
		f.properties.On("FindByID", mock.Anything, p.ID).Return(nil, shared.NotFound("Property not found"))
		f.tenants.On("Delete", mock.Anything, tn.ID).Return(nil)

		w := sendJSON(f.router(ownerID), http.MethodDelete, "/api/v1/tenants/"+tn.ID.String(), nil)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"unit_released":false`)
	})

	t.Run("move out keeps the record", func(t *testing.T) {
		f := newTenantFixture()
		p := newHandlerTestProperty(t, ownerID, "1A")
		tn := newHandlerTestTenant(t, ownerID, p, "1A")
		require.NoError(t, p.OccupyUnit("1A", tn.ID))
		f.tenants.On("FindByID", mock.Anything, tn.ID).Return(tn, nil)
		f.properties.On("FindByID", mock.Anything, p.ID).Return(p, nil)
		f.properties.On("ReleaseUnit", mock.Anything, p.ID, "1A", tn.ID).Return(true, nil)
		f.tenants.On("Save", mock.Anything, tn).Return(nil)

		w := sendJSON(f.router(ownerID), http.MethodPost, "/api/v1/tenants/"+tn.ID.String()+"/move-out", nil)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"moveout"`)
		assert.Contains(t, w.Body.String(), `"deleted":false`)
		f.tenants.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("another owner cannot move a tenant out", func(t *testing.T) {
		f := newTenantFixture()
		p := newHandlerTestProperty(t, ownerID, "1A")
		tn := newHandlerTestTenant(t, ownerID, p, "1A")
		f.tenants.On("FindByID", mock.Anything, tn.ID).Return(tn, nil)

		w := sendJSON(f.router(uuid.New()), http.MethodPost, "/api/v1/tenants/"+tn.ID.String()+"/move-out", nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestTenantHandler_Update(t *testing.T) {
	ownerID := uuid.New()
	p := newHandlerTestProperty(t, ownerID, "1A")

	t.Run("changes phone and status", func(t *testing.T) {
		f := newTenantFixture()
		tn := newHandlerTestTenant(t, ownerID, p, "1A")
		f.tenants.On("FindByID", mock.Anything, tn.ID).Return(tn, nil)
		f.tenants.On("Save", mock.Anything, tn).Return(nil)
		phone := "+1 555 0123"

		w := sendJSON(f.router(ownerID), http.MethodPut, "/api/v1/tenants/"+tn.ID.String(),
			UpdateTenantRequest{Phone: &phone, Status: "eviction"})

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, tenant.StatusEviction, tn.Status)
		assert.Equal(t, phone, tn.Phone)
	})

	t.Run("moveout is not accepted as a status", func(t *testing.T) {
		f := newTenantFixture()
		w := sendJSON(f.router(ownerID), http.MethodPut, "/api/v1/tenants/"+uuid.NewString(),
			UpdateTenantRequest{Status: "moveout"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestTenantHandler_Payments(t *testing.T) {
	ownerID := uuid.New()
	p := newHandlerTestProperty(t, ownerID, "1A")

	t.Run("record", func(t *testing.T) {
		f := newTenantFixture()
		tn := newHandlerTestTenant(t, ownerID, p, "1A")
		f.tenants.On("FindByID", mock.Anything, tn.ID).Return(tn, nil)
		f.tenants.On("Save", mock.Anything, tn).Return(nil)
		f.tenants.On("AddPayment", mock.Anything, tn.ID, mock.AnythingOfType("*tenant.PaymentEntry")).Return(nil)

		w := sendJSON(f.router(ownerID), http.MethodPost, "/api/v1/tenants/"+tn.ID.String()+"/payments", RecordPaymentRequest{
			Amount: decimal.NewFromInt(1200),
			PaidAt: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
			Method: "bank_transfer",
		})

		require.Equal(t, http.StatusCreated, w.Code)
		var resp APIResponse[tenantapp.PaymentResponse]
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "paid", resp.Data.Status)
		assert.Len(t, tn.Payments, 1)
		f.tenants.AssertExpectations(t)
	})

	t.Run("unknown method", func(t *testing.T) {
		f := newTenantFixture()
		w := sendJSON(f.router(ownerID), http.MethodPost, "/api/v1/tenants/"+uuid.NewString()+"/payments", RecordPaymentRequest{
			Amount: decimal.NewFromInt(10),
			Method: "barter",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("list", func(t *testing.T) {
		f := newTenantFixture()
		tn := newHandlerTestTenant(t, ownerID, p, "1A")
		_, err := tn.RecordPayment(tenant.PaymentEntry{
			Amount: decimal.NewFromInt(600),
			PaidAt: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
			Method: tenant.PaymentMethodCash,
		})
		require.NoError(t, err)
		f.tenants.On("FindByID", mock.Anything, tn.ID).Return(tn, nil)

		w := sendJSON(f.router(ownerID), http.MethodGet, "/api/v1/tenants/"+tn.ID.String()+"/payments", nil)

		require.Equal(t, http.StatusOK, w.Code)
		var resp APIResponse[[]tenantapp.PaymentResponse]
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Data, 1)
		assert.Equal(t, "cash", resp.Data[0].Method)
	})
}

func TestTenantHandler_LeaseDocumentDisabled(t *testing.T) {
	f := newTenantFixture()

	w := sendJSON(f.router(uuid.New()), http.MethodGet, "/api/v1/tenants/"+uuid.NewString()+"/lease-document", nil)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), dto.ErrCodeInvalidState)
}
