package tenancy

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/access"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/property"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/shared"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/shared/valueobject"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/tenant"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/infrastructure/cache"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// MockPropertyRepository is a mock implementation of property.PropertyRepository
type MockPropertyRepository struct {
	mock.Mock
}

func (m *MockPropertyRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*property.Property), args.Error(1)
}

func (m *MockPropertyRepository) FindAll(ctx context.Context, filter shared.Filter) ([]property.Property, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]property.Property), args.Get(1).(int64), args.Error(2)
}

func (m *MockPropertyRepository) Create(ctx context.Context, p *property.Property) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPropertyRepository) Save(ctx context.Context, p *property.Property) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPropertyRepository) Delete(ctx context.Context, p *property.Property) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPropertyRepository) OccupyUnit(ctx context.Context, propertyID uuid.UUID, unitNumber string, tenantID uuid.UUID) error {
	return m.Called(ctx, propertyID, unitNumber, tenantID).Error(0)
}

func (m *MockPropertyRepository) ReleaseUnit(ctx context.Context, propertyID uuid.UUID, unitNumber string, tenantID uuid.UUID) (bool, error) {
	args := m.Called(ctx, propertyID, unitNumber, tenantID)
	return args.Bool(0), args.Error(1)
}

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

// recordingPublisher collects published events
type recordingPublisher struct {
	mu     sync.Mutex
	events []shared.DomainEvent
}

func (p *recordingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.EventType())
	}
	return out
}

type tenancyFixture struct {
	service    *TenancyService
	properties *MockPropertyRepository
	tenants    *MockTenantRepository
	publisher  *recordingPublisher
}

func newTenancyFixture() *tenancyFixture {
	return newTenancyFixtureWithLogger(zap.NewNop())
}

func newTenancyFixtureWithLogger(log *zap.Logger) *tenancyFixture {
	properties := new(MockPropertyRepository)
	tenants := new(MockTenantRepository)
	publisher := &recordingPublisher{}

	service := NewTenancyService(
		NewNoOpTransactionScope(properties, tenants),
		tenants,
		cache.NewInMemoryLocker(time.Second),
		access.NewOwnershipPolicy(),
		log,
	)
	service.SetEventPublisher(publisher)

	return &tenancyFixture{service: service, properties: properties, tenants: tenants, publisher: publisher}
}

func newTestProperty(t *testing.T, ownerID uuid.UUID, units ...string) *property.Property {
	t.Helper()
	specs := make([]property.UnitSpec, 0, len(units))
	for _, u := range units {
		specs = append(specs, property.UnitSpec{
			UnitNumber: u,
			Bedrooms:   2,
			Bathrooms:  decimal.NewFromInt(1),
			Rent:       decimal.NewFromInt(1200),
		})
	}
	p, err := property.NewProperty(ownerID, "Maple Court",
		valueobject.MustNewAddress("12 Maple St", "Springfield", "IL"),
		property.PropertyTypeApartment, specs...)
	require.NoError(t, err)
	p.ClearDomainEvents()
	p.MarkPersisted()
	return p
}

func newTestTenant(t *testing.T, ownerID, propertyID uuid.UUID, unit string) *tenant.Tenant {
	t.Helper()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tn, err := tenant.NewTenant(ownerID, tenant.Contact{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
	}, tenant.LeaseDetails{
		PropertyID: propertyID,
		UnitNumber: unit,
		StartDate:  start,
		EndDate:    start.AddDate(1, 0, 0),
		RentAmount: decimal.NewFromInt(1200),
	})
	require.NoError(t, err)
	tn.ClearDomainEvents()
	tn.MarkPersisted()
	return tn
}

func validInput(propertyID uuid.UUID, unit string) CreateTenancyInput {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	return CreateTenancyInput{
		FirstName:  "Grace",
		LastName:   "Hopper",
		Email:      "grace@example.com",
		PropertyID: propertyID,
		UnitNumber: unit,
		StartDate:  start,
		EndDate:    start.AddDate(1, 0, 0),
	}
}

func TestTenancyService_CreateTenancy(t *testing.T) {
	ownerID := uuid.New()

	t.Run("creates tenant and occupies vacant unit", func(t *testing.T) {
		f := newTenancyFixture()
		prop := newTestProperty(t, ownerID, "1A", "1B")

		f.properties.On("FindByID", mock.Anything, prop.ID).Return(prop, nil)
		f.tenants.On("Create", mock.Anything, mock.AnythingOfType("*tenant.Tenant")).Return(nil)
		f.properties.On("OccupyUnit", mock.Anything, prop.ID, "1A", mock.AnythingOfType("uuid.UUID")).Return(nil)

		created, err := f.service.CreateTenancy(context.Background(), ownerID, validInput(prop.ID, " 1A "))
		require.NoError(t, err)

		assert.Equal(t, ownerID, created.OwnerID)
		assert.Equal(t, tenant.StatusActive, created.Status)
		assert.Equal(t, "1A", created.Lease.UnitNumber)
		assert.True(t, decimal.NewFromInt(1200).Equal(created.Lease.RentAmount), "rent defaults to the unit rent")
		f.properties.AssertCalled(t, "OccupyUnit", mock.Anything, prop.ID, "1A", created.ID)

		assert.Equal(t, []string{
			tenant.EventTypeTenantCreated,
			property.EventTypeUnitOccupied,
			tenant.EventTypeTenancyCreated,
		}, f.publisher.types())
		assert.Empty(t, created.GetDomainEvents())
	})

	t.Run("property not found", func(t *testing.T) {
		f := newTenancyFixture()
		missing := uuid.New()
		f.properties.On("FindByID", mock.Anything, missing).Return(nil, property.ErrPropertyNotFound)

		_, err := f.service.CreateTenancy(context.Background(), ownerID, validInput(missing, "1A"))

		assert.ErrorIs(t, err, shared.ErrNotFound)
		f.tenants.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		assert.Empty(t, f.publisher.types())
	})

	t.Run("property owned by someone else", func(t *testing.T) {
		f := newTenancyFixture()
		prop := newTestProperty(t, uuid.New(), "1A")
		f.properties.On("FindByID", mock.Anything, prop.ID).Return(prop, nil)

		_, err := f.service.CreateTenancy(context.Background(), ownerID, validInput(prop.ID, "1A"))

		assert.ErrorIs(t, err, shared.ErrUnauthorized)
		f.tenants.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("unit number must match exactly", func(t *testing.T) {
		f := newTenancyFixture()
		prop := newTestProperty(t, ownerID, "1A")
		f.properties.On("FindByID", mock.Anything, prop.ID).Return(prop, nil)

		_, err := f.service.CreateTenancy(context.Background(), ownerID, validInput(prop.ID, "1a"))

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.Equal(t, property.ErrUnitNotFound, err)
		f.tenants.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("occupied unit is a conflict", func(t *testing.T) {
		f := newTenancyFixture()
		prop := newTestProperty(t, ownerID, "1A")
		require.NoError(t, prop.OccupyUnit("1A", uuid.New()))
		f.properties.On("FindByID", mock.Anything, prop.ID).Return(prop, nil)

		_, err := f.service.CreateTenancy(context.Background(), ownerID, validInput(prop.ID, "1A"))

		assert.ErrorIs(t, err, shared.ErrConflict)
		f.tenants.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("lost compare-and-swap is a conflict and publishes nothing", func(t *testing.T) {
		f := newTenancyFixture()
		prop := newTestProperty(t, ownerID, "1A")
		f.properties.On("FindByID", mock.Anything, prop.ID).Return(prop, nil)
		f.tenants.On("Create", mock.Anything, mock.Anything).Return(nil)
		f.properties.On("OccupyUnit", mock.Anything, prop.ID, "1A", mock.Anything).Return(property.ErrUnitOccupied)

		_, err := f.service.CreateTenancy(context.Background(), ownerID, validInput(prop.ID, "1A"))

		assert.ErrorIs(t, err, shared.ErrConflict)
		assert.Empty(t, f.publisher.types())
	})

	t.Run("missing unit number is invalid input", func(t *testing.T) {
		f := newTenancyFixture()

		_, err := f.service.CreateTenancy(context.Background(), ownerID, validInput(uuid.New(), "  "))

		assert.ErrorIs(t, err, shared.ErrInvalidInput)
		f.properties.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("invalid lease is rejected before any write", func(t *testing.T) {
		f := newTenancyFixture()
		prop := newTestProperty(t, ownerID, "1A")
		f.properties.On("FindByID", mock.Anything, prop.ID).Return(prop, nil)

		input := validInput(prop.ID, "1A")
		input.EndDate = input.StartDate.AddDate(0, 0, -1)

		_, err := f.service.CreateTenancy(context.Background(), ownerID, input)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "end date must be after start date")
		f.tenants.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("infrastructure failure is wrapped", func(t *testing.T) {
		f := newTenancyFixture()
		prop := newTestProperty(t, ownerID, "1A")
		dbErr := errors.New("connection reset")
		f.properties.On("FindByID", mock.Anything, prop.ID).Return(prop, nil)
		f.tenants.On("Create", mock.Anything, mock.Anything).Return(dbErr)

		_, err := f.service.CreateTenancy(context.Background(), ownerID, validInput(prop.ID, "1A"))

		assert.ErrorIs(t, err, dbErr)
		f.properties.AssertNotCalled(t, "OccupyUnit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestTenancyService_DeleteTenancy(t *testing.T) {
	ownerID := uuid.New()

	t.Run("tenant not found", func(t *testing.T) {
		f := newTenancyFixture()
		id := uuid.New()
		f.tenants.On("FindByID", mock.Anything, id).Return(nil, tenant.ErrTenantNotFound)

		_, err := f.service.DeleteTenancy(context.Background(), id, ownerID)

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("requester is not the owner", func(t *testing.T) {
		f := newTenancyFixture()
		tn := newTestTenant(t, ownerID, uuid.New(), "1A")
		f.tenants.On("FindByID", mock.Anything, tn.ID).Return(tn, nil)

		_, err := f.service.DeleteTenancy(context.Background(), tn.ID, uuid.New())

		assert.ErrorIs(t, err, shared.ErrUnauthorized)
		f.tenants.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("releases unit held by tenant and deletes", func(t *testing.T) {
		f := newTenancyFixture()
		prop := newTestProperty(t, ownerID, "1A")
		tn := newTestTenant(t, ownerID, prop.ID, "1A")
		require.NoError(t, prop.OccupyUnit("1A", tn.ID))

		f.tenants.On("FindByID", mock.Anything, tn.ID).Return(tn, nil)
		f.properties.On("FindByID", mock.Anything, prop.ID).Return(prop, nil)
		f.properties.On("ReleaseUnit", mock.Anything, prop.ID, "1A", tn.ID).Return(true, nil)
		f.tenants.On("Delete", mock.Anything, tn.ID).Return(nil)

		result, err := f.service.DeleteTenancy(context.Background(), tn.ID, ownerID)
		require.NoError(t, err)

		assert.True(t, result.UnitReleased)
		f.tenants.AssertCalled(t, "Delete", mock.Anything, tn.ID)
		assert.Equal(t, []string{tenant.EventTypeTenancyEnded}, f.publisher.types())
	})

	t.Run("missing property does not block delete", func(t *testing.T) {
		f := newTenancyFixture()
		tn := newTestTenant(t, ownerID, uuid.New(), "1A")

		f.tenants.On("FindByID", mock.Anything, tn.ID).Return(tn, nil)
		f.properties.On("FindByID", mock.Anything, tn.Lease.PropertyID).Return(nil, property.ErrPropertyNotFound)
		f.tenants.On("Delete", mock.Anything, tn.ID).Return(nil)

		result, err := f.service.DeleteTenancy(context.Background(), tn.ID, ownerID)
		require.NoError(t, err)

		assert.False(t, result.UnitReleased)
		f.properties.AssertNotCalled(t, "ReleaseUnit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unit held by another tenant is left alone", func(t *testing.T) {
		core, logs := observer.New(zapcore.WarnLevel)
		f := newTenancyFixtureWithLogger(zap.New(core))
		prop := newTestProperty(t, ownerID, "1A")
		tn := newTestTenant(t, ownerID, prop.ID, "1A")
		require.NoError(t, prop.OccupyUnit("1A", uuid.New()))

		f.tenants.On("FindByID", mock.Anything, tn.ID).Return(tn, nil)
		f.properties.On("FindByID", mock.Anything, prop.ID).Return(prop, nil)
		f.tenants.On("Delete", mock.Anything, tn.ID).Return(nil)

		result, err := f.service.DeleteTenancy(context.Background(), tn.ID, ownerID)
		require.NoError(t, err)

		assert.False(t, result.UnitReleased)
		f.properties.AssertNotCalled(t, "ReleaseUnit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		f.tenants.AssertCalled(t, "Delete", mock.Anything, tn.ID)

		warnings := logs.FilterMessage("Unit is not held by tenant, unit not released").All()
		require.Len(t, warnings, 1)
		fields := warnings[0].ContextMap()
		assert.Equal(t, tn.ID.String(), fields["tenant_id"])
		assert.Equal(t, prop.ID.String(), fields["property_id"])
		assert.Equal(t, "1A", fields["unit_number"])
	})

	t.Run("missing unit does not block delete", func(t *testing.T) {
		f := newTenancyFixture()
		prop := newTestProperty(t, ownerID, "2B")
		tn := newTestTenant(t, ownerID, prop.ID, "1A")

		f.tenants.On("FindByID", mock.Anything, tn.ID).Return(tn, nil)
		f.properties.On("FindByID", mock.Anything, prop.ID).Return(prop, nil)
		f.tenants.On("Delete", mock.Anything, tn.ID).Return(nil)

		result, err := f.service.DeleteTenancy(context.Background(), tn.ID, ownerID)
		require.NoError(t, err)
		assert.False(t, result.UnitReleased)
	})
}

func TestTenancyService_MoveOut(t *testing.T) {
	ownerID := uuid.New()

	t.Run("marks tenant moved out and releases unit", func(t *testing.T) {
		f := newTenancyFixture()
		prop := newTestProperty(t, ownerID, "1A")
		tn := newTestTenant(t, ownerID, prop.ID, "1A")
		require.NoError(t, prop.OccupyUnit("1A", tn.ID))

		f.tenants.On("FindByID", mock.Anything, tn.ID).Return(tn, nil)
		f.properties.On("FindByID", mock.Anything, prop.ID).Return(prop, nil)
		f.properties.On("ReleaseUnit", mock.Anything, prop.ID, "1A", tn.ID).Return(true, nil)
		f.tenants.On("Save", mock.Anything, tn).Return(nil)

		result, err := f.service.MoveOut(context.Background(), tn.ID, ownerID)
		require.NoError(t, err)

		assert.True(t, result.UnitReleased)
		assert.Equal(t, tenant.StatusMoveOut, result.Tenant.Status)
		f.tenants.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
		assert.Contains(t, f.publisher.types(), tenant.EventTypeTenancyEnded)
	})

	t.Run("already moved out", func(t *testing.T) {
		f := newTenancyFixture()
		tn := newTestTenant(t, ownerID, uuid.New(), "1A")
		require.NoError(t, tn.MarkMovedOut())
		f.tenants.On("FindByID", mock.Anything, tn.ID).Return(tn, nil)

		_, err := f.service.MoveOut(context.Background(), tn.ID, ownerID)

		assert.ErrorIs(t, err, shared.ErrInvalidState)
	})
}

// memoryStore is a minimal thread-safe property and tenant store whose
// OccupyUnit behaves like the conditional SQL update
type memoryStore struct {
	mu         sync.Mutex
	properties map[uuid.UUID]*property.Property
	tenants    map[uuid.UUID]*tenant.Tenant
}

type memoryProperties struct{ *memoryStore }
type memoryTenants struct{ *memoryStore }

func newMemoryStore(props ...*property.Property) *memoryStore {
	s := &memoryStore{
		properties: make(map[uuid.UUID]*property.Property),
		tenants:    make(map[uuid.UUID]*tenant.Tenant),
	}
	for _, p := range props {
		s.properties[p.ID] = p
	}
	return s
}

func (r memoryProperties) FindByID(_ context.Context, id uuid.UUID) (*property.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.properties[id]
	if !ok {
		return nil, property.ErrPropertyNotFound
	}
	clone := *p
	clone.Units = append([]property.Unit(nil), p.Units...)
	return &clone, nil
}

func (r memoryProperties) FindAll(context.Context, shared.Filter) ([]property.Property, int64, error) {
	return nil, 0, nil
}
func (r memoryProperties) Create(context.Context, *property.Property) error { return nil }
func (r memoryProperties) Save(context.Context, *property.Property) error   { return nil }
func (r memoryProperties) Delete(context.Context, *property.Property) error { return nil }

func (r memoryProperties) OccupyUnit(_ context.Context, propertyID uuid.UUID, unitNumber string, tenantID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.properties[propertyID]
	if !ok {
		return property.ErrPropertyNotFound
	}
	return p.OccupyUnit(unitNumber, tenantID)
}

func (r memoryProperties) ReleaseUnit(_ context.Context, propertyID uuid.UUID, unitNumber string, tenantID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.properties[propertyID]
	if !ok {
		return false, nil
	}
	return p.ReleaseUnit(unitNumber, tenantID), nil
}

func (r memoryTenants) FindByID(_ context.Context, id uuid.UUID) (*tenant.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tenants[id]
	if !ok {
		return nil, tenant.ErrTenantNotFound
	}
	return t, nil
}

func (r memoryTenants) FindAll(context.Context, shared.Filter) ([]tenant.Tenant, int64, error) {
	return nil, 0, nil
}
func (r memoryTenants) FindByUnit(context.Context, uuid.UUID, string) (*tenant.Tenant, error) {
	return nil, tenant.ErrTenantNotFound
}

func (r memoryTenants) Create(_ context.Context, t *tenant.Tenant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tenants[t.ID] = t
	return nil
}

func (r memoryTenants) Save(context.Context, *tenant.Tenant) error { return nil }
func (r memoryTenants) AddPayment(context.Context, uuid.UUID, *tenant.PaymentEntry) error {
	return nil
}

func (r memoryTenants) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tenants, id)
	return nil
}

func (r memoryTenants) CountByProperty(context.Context, uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.tenants)), nil
}

func TestTenancyService_ConcurrentCreateForSameUnit(t *testing.T) {
	ownerID := uuid.New()
	prop := newTestProperty(t, ownerID, "1A")
	store := newMemoryStore(prop)
	properties, tenants := memoryProperties{store}, memoryTenants{store}

	service := NewTenancyService(
		NewNoOpTransactionScope(properties, tenants),
		tenants,
		cache.NewInMemoryLocker(5*time.Second),
		access.NewOwnershipPolicy(),
		zap.NewNop(),
	)

	const workers = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	start := make(chan struct{})
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := service.CreateTenancy(context.Background(), ownerID, validInput(prop.ID, "1A"))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, shared.ErrConflict):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, workers-1, conflicts)

	count, err := tenants.CountByProperty(context.Background(), prop.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count, "exactly one tenant row exists")

	stored, err := properties.FindByID(context.Background(), prop.ID)
	require.NoError(t, err)
	unit, ok := stored.FindUnit("1A")
	require.True(t, ok)
	assert.True(t, unit.IsOccupied)
}

func TestUnitLockKey(t *testing.T) {
	id := uuid.MustParse("5f0c3c9e-3f1d-4a55-9c39-5a3b8f9b7e10")
	assert.Equal(t, "unit:5f0c3c9e-3f1d-4a55-9c39-5a3b8f9b7e10:1A", UnitLockKey(id, "1A"))
}
