package maintenance

import (
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant for MaintenanceRequest
const AggregateTypeMaintenanceRequest = "MaintenanceRequest"

// Event type constants for MaintenanceRequest
const (
	EventTypeMaintenanceCreated       = "MaintenanceCreated"
	EventTypeMaintenanceStatusChanged = "MaintenanceStatusChanged"
)

// MaintenanceCreatedEvent is raised when a ticket is opened
type MaintenanceCreatedEvent struct {
	shared.BaseDomainEvent
	RequestID  uuid.UUID `json:"request_id"`
	PropertyID uuid.UUID `json:"property_id"`
	Unit       string    `json:"unit"`
	Title      string    `json:"title"`
	Priority   Priority  `json:"priority"`
}

// NewMaintenanceCreatedEvent creates a new MaintenanceCreatedEvent
func NewMaintenanceCreatedEvent(r *MaintenanceRequest) *MaintenanceCreatedEvent {
	return &MaintenanceCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeMaintenanceCreated, AggregateTypeMaintenanceRequest, r.ID, r.OwnerID),
		RequestID:       r.ID,
		PropertyID:      r.PropertyID,
		Unit:            r.Unit,
		Title:           r.Title,
		Priority:        r.Priority,
	}
}

// MaintenanceStatusChangedEvent is raised on every lifecycle transition
type MaintenanceStatusChangedEvent struct {
	shared.BaseDomainEvent
	RequestID  uuid.UUID  `json:"request_id"`
	PropertyID uuid.UUID  `json:"property_id"`
	TenantID   *uuid.UUID `json:"tenant_id,omitempty"`
	Title      string     `json:"title"`
	OldStatus  Status     `json:"old_status"`
	NewStatus  Status     `json:"new_status"`
}

// NewMaintenanceStatusChangedEvent creates a new MaintenanceStatusChangedEvent
func NewMaintenanceStatusChangedEvent(r *MaintenanceRequest, old Status) *MaintenanceStatusChangedEvent {
	return &MaintenanceStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeMaintenanceStatusChanged, AggregateTypeMaintenanceRequest, r.ID, r.OwnerID),
		RequestID:       r.ID,
		PropertyID:      r.PropertyID,
		TenantID:        r.TenantID,
		Title:           r.Title,
		OldStatus:       old,
		NewStatus:       r.Status,
	}
}
