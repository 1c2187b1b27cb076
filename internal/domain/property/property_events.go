package property

import (
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant for Property
const AggregateTypeProperty = "Property"

// Event type constants for Property
const (
	EventTypePropertyCreated = "PropertyCreated"
	EventTypePropertyUpdated = "PropertyUpdated"
	EventTypePropertyDeleted = "PropertyDeleted"
	EventTypeUnitOccupied    = "UnitOccupied"
	EventTypeUnitReleased    = "UnitReleased"
)

// PropertyCreatedEvent is published when a new property is created
type PropertyCreatedEvent struct {
	shared.BaseDomainEvent
	PropertyID uuid.UUID `json:"property_id"`
	Name       string    `json:"name"`
	UnitCount  int       `json:"unit_count"`
}

// NewPropertyCreatedEvent creates a new PropertyCreatedEvent
func NewPropertyCreatedEvent(p *Property) *PropertyCreatedEvent {
	return &PropertyCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePropertyCreated, AggregateTypeProperty, p.ID, p.OwnerID),
		PropertyID:      p.ID,
		Name:            p.Name,
		UnitCount:       len(p.Units),
	}
}

// PropertyUpdatedEvent is published when a property or its units change
type PropertyUpdatedEvent struct {
	shared.BaseDomainEvent
	PropertyID uuid.UUID `json:"property_id"`
	Name       string    `json:"name"`
}

// NewPropertyUpdatedEvent creates a new PropertyUpdatedEvent
func NewPropertyUpdatedEvent(p *Property) *PropertyUpdatedEvent {
	return &PropertyUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePropertyUpdated, AggregateTypeProperty, p.ID, p.OwnerID),
		PropertyID:      p.ID,
		Name:            p.Name,
	}
}

// PropertyDeletedEvent is published when a property is deleted
type PropertyDeletedEvent struct {
	shared.BaseDomainEvent
	PropertyID uuid.UUID `json:"property_id"`
}

// NewPropertyDeletedEvent creates a new PropertyDeletedEvent
func NewPropertyDeletedEvent(p *Property) *PropertyDeletedEvent {
	return &PropertyDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePropertyDeleted, AggregateTypeProperty, p.ID, p.OwnerID),
		PropertyID:      p.ID,
	}
}

// UnitOccupiedEvent is published when a tenant takes a unit
type UnitOccupiedEvent struct {
	shared.BaseDomainEvent
	PropertyID uuid.UUID `json:"property_id"`
	UnitNumber string    `json:"unit_number"`
	TenantID   uuid.UUID `json:"tenant_id"`
}

// NewUnitOccupiedEvent creates a new UnitOccupiedEvent
func NewUnitOccupiedEvent(p *Property, unitNumber string, tenantID uuid.UUID) *UnitOccupiedEvent {
	return &UnitOccupiedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUnitOccupied, AggregateTypeProperty, p.ID, p.OwnerID),
		PropertyID:      p.ID,
		UnitNumber:      unitNumber,
		TenantID:        tenantID,
	}
}

// UnitReleasedEvent is published when a unit becomes vacant again
type UnitReleasedEvent struct {
	shared.BaseDomainEvent
	PropertyID uuid.UUID `json:"property_id"`
	UnitNumber string    `json:"unit_number"`
	TenantID   uuid.UUID `json:"tenant_id"`
}

// NewUnitReleasedEvent creates a new UnitReleasedEvent
func NewUnitReleasedEvent(p *Property, unitNumber string, tenantID uuid.UUID) *UnitReleasedEvent {
	return &UnitReleasedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUnitReleased, AggregateTypeProperty, p.ID, p.OwnerID),
		PropertyID:      p.ID,
		UnitNumber:      unitNumber,
		TenantID:        tenantID,
	}
}
