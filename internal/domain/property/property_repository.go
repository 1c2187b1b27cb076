package property

import (
	"context"

	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/shared"
	"github.com/google/uuid"
)

// PropertyRepository defines the interface for property persistence
type PropertyRepository interface {
	// FindByID finds a property with its units
	FindByID(ctx context.Context, id uuid.UUID) (*Property, error)

	// FindAll finds properties matching the filter; filter.OwnerID scopes the query
	FindAll(ctx context.Context, filter shared.Filter) ([]Property, int64, error)

	// Create inserts a new property with its units
	Create(ctx context.Context, property *Property) error

	// Save updates a property and replaces its unit list.
	// The update is guarded by the aggregate version.
	Save(ctx context.Context, property *Property) error

	// Delete deletes a property and its units only while the stored version
	// still equals p.PersistedVersion(); a unit occupied or released since
	// p was loaded fails the delete with a concurrency conflict
	Delete(ctx context.Context, p *Property) error

	// OccupyUnit marks a vacant unit as held by tenantID in a single
	// conditional update. It fails with ErrUnitOccupied if the unit was
	// already occupied when the update ran.
	OccupyUnit(ctx context.Context, propertyID uuid.UUID, unitNumber string, tenantID uuid.UUID) error

	// ReleaseUnit clears the unit only if it is still held by tenantID.
	// It reports whether a row changed.
	ReleaseUnit(ctx context.Context, propertyID uuid.UUID, unitNumber string, tenantID uuid.UUID) (bool, error)
}
