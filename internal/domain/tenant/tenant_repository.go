package tenant

import (
	"context"

	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/shared"
	"github.com/google/uuid"
)

// TenantRepository defines the interface for tenant persistence
type TenantRepository interface {
	// FindByID finds a tenant with its payment history
	FindByID(ctx context.Context, id uuid.UUID) (*Tenant, error)

	// FindAll finds tenants matching the filter; filter.OwnerID scopes the query.
	// Supported filters: "status", "property_id".
	FindAll(ctx context.Context, filter shared.Filter) ([]Tenant, int64, error)

	// FindByUnit finds the tenant whose lease points at the given unit and
	// who still holds it
	FindByUnit(ctx context.Context, propertyID uuid.UUID, unitNumber string) (*Tenant, error)

	// Create inserts a new tenant
	Create(ctx context.Context, tenant *Tenant) error

	// Save updates a tenant guarded by its version
	Save(ctx context.Context, tenant *Tenant) error

	// AddPayment inserts a single payment entry for a tenant
	AddPayment(ctx context.Context, tenantID uuid.UUID, entry *PaymentEntry) error

	// Delete deletes a tenant and its payment history
	Delete(ctx context.Context, id uuid.UUID) error

	// CountByProperty counts tenants holding units in a property
	CountByProperty(ctx context.Context, propertyID uuid.UUID) (int64, error)
}
