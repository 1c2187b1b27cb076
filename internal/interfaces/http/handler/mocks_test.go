package handler

import (
	"context"

	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/identity"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/maintenance"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/messaging"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/property"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/shared"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/tenant"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *identity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *identity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

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

// MockMaintenanceRepository is a mock implementation of maintenance.MaintenanceRequestRepository
type MockMaintenanceRepository struct {
	mock.Mock
}

func (m *MockMaintenanceRepository) FindByID(ctx context.Context, id uuid.UUID) (*maintenance.MaintenanceRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*maintenance.MaintenanceRequest), args.Error(1)
}

func (m *MockMaintenanceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]maintenance.MaintenanceRequest, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]maintenance.MaintenanceRequest), args.Get(1).(int64), args.Error(2)
}

func (m *MockMaintenanceRepository) Create(ctx context.Context, r *maintenance.MaintenanceRequest) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockMaintenanceRepository) Save(ctx context.Context, r *maintenance.MaintenanceRequest) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockMaintenanceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockMessageRepository is a mock implementation of messaging.MessageRepository
type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) FindByID(ctx context.Context, id uuid.UUID) (*messaging.Message, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*messaging.Message), args.Error(1)
}

func (m *MockMessageRepository) FindInbox(ctx context.Context, recipientID uuid.UUID, unreadOnly bool, filter shared.Filter) ([]messaging.Message, int64, error) {
	args := m.Called(ctx, recipientID, unreadOnly, filter)
	return args.Get(0).([]messaging.Message), args.Get(1).(int64), args.Error(2)
}

func (m *MockMessageRepository) FindSent(ctx context.Context, senderID uuid.UUID, filter shared.Filter) ([]messaging.Message, int64, error) {
	args := m.Called(ctx, senderID, filter)
	return args.Get(0).([]messaging.Message), args.Get(1).(int64), args.Error(2)
}

func (m *MockMessageRepository) CountUnread(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	args := m.Called(ctx, recipientID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMessageRepository) Create(ctx context.Context, msg *messaging.Message) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *MockMessageRepository) Save(ctx context.Context, msg *messaging.Message) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *MockMessageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}
