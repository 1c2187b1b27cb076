package tenant

import (
	"context"
	"testing"
	"time"

	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/application/tenancy"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/access"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/shared"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/tenant"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockTenantRepository is a mock implementation of tenant.TenantRepository
type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) FindByID(ctx context.Context, id uuid.UUID) (*tenant.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tenant.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindAll(ctx context.Context, filter shared.Filter) ([]tenant.Tenant, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]tenant.Tenant), args.Get(1).(int64), args.Error(2)
}

func (m *MockTenantRepository) FindByUnit(ctx context.Context, propertyID uuid.UUID, unitNumber string) (*tenant.Tenant, error) {
	args := m.Called(ctx, propertyID, unitNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tenant.Tenant), args.Error(1)
}

func (m *MockTenantRepository) Create(ctx context.Context, t *tenant.Tenant) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTenantRepository) Save(ctx context.Context, t *tenant.Tenant) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTenantRepository) AddPayment(ctx context.Context, tenantID uuid.UUID, entry *tenant.PaymentEntry) error {
	return m.Called(ctx, tenantID, entry).Error(0)
}

func (m *MockTenantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockTenantRepository) CountByProperty(ctx context.Context, propertyID uuid.UUID) (int64, error) {
	args := m.Called(ctx, propertyID)
	return args.Get(0).(int64), args.Error(1)
}

type publishedEvents struct {
	types []string
}

func (p *publishedEvents) Publish(_ context.Context, events ...shared.DomainEvent) error {
	for _, e := range events {
		p.types = append(p.types, e.EventType())
	}
	return nil
}

func newTestTenant(t *testing.T, ownerID uuid.UUID) *tenant.Tenant {
	t.Helper()
	ten, err := tenant.NewTenant(ownerID, tenant.Contact{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Phone:     "555-0100",
	}, tenant.LeaseDetails{
		PropertyID: uuid.New(),
		UnitNumber: "1A",
		StartDate:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		RentAmount: decimal.NewFromInt(1200),
	})
	require.NoError(t, err)
	ten.MarkPersisted()
	ten.ClearDomainEvents()
	return ten
}

func newTenantService(repo *MockTenantRepository) (*TenantService, *publishedEvents) {
	svc := NewTenantService(repo, tenancy.NewNoOpTransactionScope(nil, repo), access.NewOwnershipPolicy(), nil)
	pub := &publishedEvents{}
	svc.SetEventPublisher(pub)
	return svc, pub
}

func TestTenantService_GetByID(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	repo := new(MockTenantRepository)
	svc, _ := newTenantService(repo)
	ten := newTestTenant(t, ownerID)
	repo.On("FindByID", ctx, ten.ID).Return(ten, nil)

	t.Run("owner reads tenant", func(t *testing.T) {
		resp, err := svc.GetByID(ctx, ownerID, ten.ID)
		require.NoError(t, err)
		assert.Equal(t, "Ada Lovelace", resp.FullName)
		assert.Equal(t, "active", resp.Status)
		assert.Equal(t, "1A", resp.Lease.UnitNumber)
		assert.Empty(t, resp.Payments)
	})

	t.Run("stranger is unauthorized", func(t *testing.T) {
		_, err := svc.GetByID(ctx, uuid.New(), ten.ID)
		assert.ErrorIs(t, err, shared.ErrUnauthorized)
	})

	t.Run("missing tenant", func(t *testing.T) {
		missing := uuid.New()
		repo.On("FindByID", ctx, missing).Return(nil, tenant.ErrTenantNotFound)
		_, err := svc.GetByID(ctx, ownerID, missing)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestTenantService_ListScopesToCaller(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	propertyID := uuid.New()
	repo := new(MockTenantRepository)
	svc, _ := newTenantService(repo)
	ten := newTestTenant(t, ownerID)

	repo.On("FindAll", ctx, mock.MatchedBy(func(f shared.Filter) bool {
		return f.OwnerID == ownerID &&
			f.Filters["status"] == "active" &&
			f.Filters["property_id"] == propertyID &&
			f.Page == 2 && f.PageSize == 20
	})).Return([]tenant.Tenant{*ten}, int64(21), nil)

	items, total, err := svc.List(ctx, ownerID, TenantListFilter{Status: "active", PropertyID: propertyID.String(), Page: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 21, total)
	require.Len(t, items, 1)
	assert.Equal(t, ten.ID, items[0].ID)

	_, _, err = svc.List(ctx, ownerID, TenantListFilter{PropertyID: "nope"})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestTenantService_Update(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	t.Run("merges contact, notes and status", func(t *testing.T) {
		repo := new(MockTenantRepository)
		svc, pub := newTenantService(repo)
		ten := newTestTenant(t, ownerID)
		repo.On("FindByID", ctx, ten.ID).Return(ten, nil)
		repo.On("Save", ctx, ten).Return(nil)

		notes := "Pays early"
		resp, err := svc.Update(ctx, ownerID, ten.ID, UpdateTenantRequest{
			Email:  "ADA@Example.com",
			Notes:  &notes,
			Status: "eviction",
		})
		require.NoError(t, err)
		assert.Equal(t, "Ada", resp.FirstName)
		assert.Equal(t, "ada@example.com", resp.Email)
		assert.Equal(t, "555-0100", resp.Phone)
		assert.Equal(t, "Pays early", resp.Notes)
		assert.Equal(t, "eviction", resp.Status)
		assert.Equal(t, []string{tenant.EventTypeTenantUpdated, tenant.EventTypeTenantStatusChanged}, pub.types)
	})

	t.Run("moveout must use the move-out operation", func(t *testing.T) {
		repo := new(MockTenantRepository)
		svc, _ := newTenantService(repo)
		_, err := svc.Update(ctx, ownerID, uuid.New(), UpdateTenantRequest{Status: "moveout"})
		assert.ErrorIs(t, err, ErrMoveOutViaUpdate)
		repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("invalid status", func(t *testing.T) {
		repo := new(MockTenantRepository)
		svc, _ := newTenantService(repo)
		ten := newTestTenant(t, ownerID)
		repo.On("FindByID", ctx, ten.ID).Return(ten, nil)

		_, err := svc.Update(ctx, ownerID, ten.ID, UpdateTenantRequest{Status: "Active"})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATUS", domainErr.Code)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("version conflict propagates", func(t *testing.T) {
		repo := new(MockTenantRepository)
		svc, pub := newTenantService(repo)
		ten := newTestTenant(t, ownerID)
		repo.On("FindByID", ctx, ten.ID).Return(ten, nil)
		repo.On("Save", ctx, ten).Return(shared.ErrConcurrencyConflict)

		_, err := svc.Update(ctx, ownerID, ten.ID, UpdateTenantRequest{FirstName: "Augusta"})
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
		assert.Empty(t, pub.types)
	})
}

func TestTenantService_ExtendLease(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	repo := new(MockTenantRepository)
	svc, _ := newTenantService(repo)
	ten := newTestTenant(t, ownerID)
	repo.On("FindByID", ctx, ten.ID).Return(ten, nil)
	repo.On("Save", ctx, ten).Return(nil)

	newEnd := time.Date(2027, 6, 30, 0, 0, 0, 0, time.UTC)
	resp, err := svc.ExtendLease(ctx, ownerID, ten.ID, ExtendLeaseRequest{EndDate: newEnd, RentAmount: decimal.NewFromInt(1300)})
	require.NoError(t, err)
	assert.Equal(t, newEnd, resp.Lease.EndDate)
	assert.True(t, decimal.NewFromInt(1300).Equal(resp.Lease.RentAmount))

	_, err = svc.ExtendLease(ctx, ownerID, ten.ID, ExtendLeaseRequest{EndDate: newEnd.AddDate(0, -1, 0)})
	assert.Error(t, err)
}

func TestTenantService_RecordPayment(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	t.Run("saves tenant and payment then publishes", func(t *testing.T) {
		repo := new(MockTenantRepository)
		svc, pub := newTenantService(repo)
		ten := newTestTenant(t, ownerID)
		repo.On("FindByID", ctx, ten.ID).Return(ten, nil)
		repo.On("Save", ctx, ten).Return(nil)
		repo.On("AddPayment", ctx, ten.ID, mock.AnythingOfType("*tenant.PaymentEntry")).Return(nil)

		resp, err := svc.RecordPayment(ctx, ownerID, ten.ID, RecordPaymentRequest{
			Amount: decimal.NewFromInt(1200),
			PaidAt: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
			Method: "bank_transfer",
		})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, resp.ID)
		assert.Equal(t, "paid", resp.Status)
		assert.Equal(t, []string{tenant.EventTypeTenantPaymentRecorded}, pub.types)
		repo.AssertExpectations(t)
	})

	t.Run("invalid payment writes nothing", func(t *testing.T) {
		repo := new(MockTenantRepository)
		svc, _ := newTenantService(repo)
		ten := newTestTenant(t, ownerID)
		repo.On("FindByID", ctx, ten.ID).Return(ten, nil)

		_, err := svc.RecordPayment(ctx, ownerID, ten.ID, RecordPaymentRequest{
			Amount: decimal.NewFromInt(-5),
			PaidAt: time.Now(),
			Method: "cash",
		})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_PAYMENT", domainErr.Code)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		repo.AssertNotCalled(t, "AddPayment", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("stale tenant skips payment insert", func(t *testing.T) {
		repo := new(MockTenantRepository)
		svc, pub := newTenantService(repo)
		ten := newTestTenant(t, ownerID)
		repo.On("FindByID", ctx, ten.ID).Return(ten, nil)
		repo.On("Save", ctx, ten).Return(shared.ErrConcurrencyConflict)

		_, err := svc.RecordPayment(ctx, ownerID, ten.ID, RecordPaymentRequest{
			Amount: decimal.NewFromInt(100),
			PaidAt: time.Now(),
			Method: "cash",
		})
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
		repo.AssertNotCalled(t, "AddPayment", mock.Anything, mock.Anything, mock.Anything)
		assert.Empty(t, pub.types)
	})
}

func TestTenantService_ListPayments(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	repo := new(MockTenantRepository)
	svc, _ := newTenantService(repo)
	ten := newTestTenant(t, ownerID)
	for _, day := range []int{15, 1} {
		_, err := ten.RecordPayment(tenant.PaymentEntry{
			Amount: decimal.NewFromInt(int64(day)),
			PaidAt: time.Date(2026, 3, day, 0, 0, 0, 0, time.UTC),
			Method: tenant.PaymentMethodCash,
		})
		require.NoError(t, err)
	}
	repo.On("FindByID", ctx, ten.ID).Return(ten, nil)

	payments, err := svc.ListPayments(ctx, ownerID, ten.ID)
	require.NoError(t, err)
	require.Len(t, payments, 2)
	assert.Equal(t, 1, payments[0].PaidAt.Day())
	assert.Equal(t, 15, payments[1].PaidAt.Day())

	_, err = svc.ListPayments(ctx, uuid.New(), ten.ID)
	assert.ErrorIs(t, err, shared.ErrUnauthorized)
}

func TestCreateTenantRequest_ToTenancyInput(t *testing.T) {
	req := CreateTenantRequest{
		FirstName:        "Ada",
		EmergencyContact: EmergencyContactDTO{Name: "Charles", Relationship: "friend"},
		PropertyID:       uuid.New(),
		UnitNumber:       "1A",
		RentAmount:       decimal.NewFromInt(900),
	}
	in := req.ToTenancyInput()
	assert.Equal(t, req.PropertyID, in.PropertyID)
	assert.Equal(t, "Charles", in.EmergencyContact.Name)
	assert.True(t, in.RentAmount.Equal(decimal.NewFromInt(900)))
}
