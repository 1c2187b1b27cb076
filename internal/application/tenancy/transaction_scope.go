package tenancy

import (
	"context"

	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/property"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/tenant"
)

// TransactionScope runs tenancy writes atomically.
// If fn returns an error, every write made through repos is rolled back.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the repositories bound to one transaction.
//
// A tenancy spans two aggregates: the Tenant row and the Unit row inside the
// Property aggregate. Both must go through the repositories returned here so
// that the unit compare-and-swap and the tenant insert commit together.
type TransactionalRepositories interface {
	PropertyRepo() property.PropertyRepository
	TenantRepo() tenant.TenantRepository
}

// NoOpTransactionScope calls fn directly on the given repositories.
// Used in tests and wherever the store has no transaction support.
type NoOpTransactionScope struct {
	propertyRepo property.PropertyRepository
	tenantRepo   tenant.TenantRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope
func NewNoOpTransactionScope(propertyRepo property.PropertyRepository, tenantRepo tenant.TenantRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		propertyRepo: propertyRepo,
		tenantRepo:   tenantRepo,
	}
}

// Execute runs fn without a transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// PropertyRepo returns the property repository
func (s *NoOpTransactionScope) PropertyRepo() property.PropertyRepository {
	return s.propertyRepo
}

// TenantRepo returns the tenant repository
func (s *NoOpTransactionScope) TenantRepo() tenant.TenantRepository {
	return s.tenantRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
