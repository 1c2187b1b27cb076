package maintenance

import (
	"context"

	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/shared"
	"github.com/google/uuid"
)

// MaintenanceRequestRepository defines the interface for maintenance persistence
type MaintenanceRequestRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*MaintenanceRequest, error)

	// FindAll finds requests matching the filter; filter.OwnerID scopes the query.
	// Supported filters: "status", "priority", "property_id".
	FindAll(ctx context.Context, filter shared.Filter) ([]MaintenanceRequest, int64, error)

	Create(ctx context.Context, request *MaintenanceRequest) error

	// Save updates a request guarded by its version
	Save(ctx context.Context, request *MaintenanceRequest) error
	Delete(ctx context.Context, id uuid.UUID) error
}
