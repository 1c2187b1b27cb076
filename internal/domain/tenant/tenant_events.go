package tenant

import (
	"time"

	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant for Tenant
const AggregateTypeTenant = "Tenant"

// Event type constants for Tenant
const (
	EventTypeTenantCreated         = "TenantCreated"
	EventTypeTenantUpdated         = "TenantUpdated"
	EventTypeTenantStatusChanged   = "TenantStatusChanged"
	EventTypeTenantPaymentRecorded = "TenantPaymentRecorded"
	EventTypeTenancyCreated        = "TenancyCreated"
	EventTypeTenancyEnded          = "TenancyEnded"
)

// TenantCreatedEvent is raised when the tenant aggregate is built
type TenantCreatedEvent struct {
	shared.BaseDomainEvent
	TenantID   uuid.UUID `json:"tenant_id"`
	PropertyID uuid.UUID `json:"property_id"`
	UnitNumber string    `json:"unit_number"`
}

// NewTenantCreatedEvent creates a new TenantCreatedEvent
func NewTenantCreatedEvent(t *Tenant) *TenantCreatedEvent {
	return &TenantCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTenantCreated, AggregateTypeTenant, t.ID, t.OwnerID),
		TenantID:        t.ID,
		PropertyID:      t.Lease.PropertyID,
		UnitNumber:      t.Lease.UnitNumber,
	}
}

// TenantUpdatedEvent is raised when contact details or lease terms change
type TenantUpdatedEvent struct {
	shared.BaseDomainEvent
	TenantID uuid.UUID `json:"tenant_id"`
}

// NewTenantUpdatedEvent creates a new TenantUpdatedEvent
func NewTenantUpdatedEvent(t *Tenant) *TenantUpdatedEvent {
	return &TenantUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTenantUpdated, AggregateTypeTenant, t.ID, t.OwnerID),
		TenantID:        t.ID,
	}
}

// TenantStatusChangedEvent is raised on a status transition
type TenantStatusChangedEvent struct {
	shared.BaseDomainEvent
	TenantID  uuid.UUID `json:"tenant_id"`
	OldStatus Status    `json:"old_status"`
	NewStatus Status    `json:"new_status"`
}

// NewTenantStatusChangedEvent creates a new TenantStatusChangedEvent
func NewTenantStatusChangedEvent(t *Tenant, old Status) *TenantStatusChangedEvent {
	return &TenantStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTenantStatusChanged, AggregateTypeTenant, t.ID, t.OwnerID),
		TenantID:        t.ID,
		OldStatus:       old,
		NewStatus:       t.Status,
	}
}

// TenantPaymentRecordedEvent is raised when a payment is appended to history
type TenantPaymentRecordedEvent struct {
	shared.BaseDomainEvent
	TenantID    uuid.UUID       `json:"tenant_id"`
	TenantName  string          `json:"tenant_name"`
	TenantEmail string          `json:"tenant_email"`
	PaymentID   uuid.UUID       `json:"payment_id"`
	Amount      decimal.Decimal `json:"amount"`
	PaidAt      time.Time       `json:"paid_at"`
	Method      PaymentMethod   `json:"method"`
	Status      PaymentStatus   `json:"status"`
	Reference   string          `json:"reference"`
}

// NewTenantPaymentRecordedEvent creates a new TenantPaymentRecordedEvent
func NewTenantPaymentRecordedEvent(t *Tenant, p PaymentEntry) *TenantPaymentRecordedEvent {
	return &TenantPaymentRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTenantPaymentRecorded, AggregateTypeTenant, t.ID, t.OwnerID),
		TenantID:        t.ID,
		TenantName:      t.FullName(),
		TenantEmail:     t.Email,
		PaymentID:       p.ID,
		Amount:          p.Amount,
		PaidAt:          p.PaidAt,
		Method:          p.Method,
		Status:          p.Status,
		Reference:       p.Reference,
	}
}

// TenancyCreatedEvent is published after a tenant and its unit were committed together
type TenancyCreatedEvent struct {
	shared.BaseDomainEvent
	TenantID     uuid.UUID       `json:"tenant_id"`
	TenantName   string          `json:"tenant_name"`
	TenantEmail  string          `json:"tenant_email"`
	PropertyID   uuid.UUID       `json:"property_id"`
	PropertyName string          `json:"property_name"`
	UnitNumber   string          `json:"unit_number"`
	StartDate    time.Time       `json:"start_date"`
	EndDate      time.Time       `json:"end_date"`
	RentAmount   decimal.Decimal `json:"rent_amount"`
}

// NewTenancyCreatedEvent creates a new TenancyCreatedEvent
func NewTenancyCreatedEvent(t *Tenant, propertyName string) *TenancyCreatedEvent {
	return &TenancyCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTenancyCreated, AggregateTypeTenant, t.ID, t.OwnerID),
		TenantID:        t.ID,
		TenantName:      t.FullName(),
		TenantEmail:     t.Email,
		PropertyID:      t.Lease.PropertyID,
		PropertyName:    propertyName,
		UnitNumber:      t.Lease.UnitNumber,
		StartDate:       t.Lease.StartDate,
		EndDate:         t.Lease.EndDate,
		RentAmount:      t.Lease.RentAmount,
	}
}

// TenancyEndedEvent is published after a tenant was removed or moved out
type TenancyEndedEvent struct {
	shared.BaseDomainEvent
	TenantID     uuid.UUID `json:"tenant_id"`
	PropertyID   uuid.UUID `json:"property_id"`
	UnitNumber   string    `json:"unit_number"`
	UnitReleased bool      `json:"unit_released"`
	Deleted      bool      `json:"deleted"`
}

// NewTenancyEndedEvent creates a new TenancyEndedEvent
func NewTenancyEndedEvent(t *Tenant, unitReleased, deleted bool) *TenancyEndedEvent {
	return &TenancyEndedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTenancyEnded, AggregateTypeTenant, t.ID, t.OwnerID),
		TenantID:        t.ID,
		PropertyID:      t.Lease.PropertyID,
		UnitNumber:      t.Lease.UnitNumber,
		UnitReleased:    unitReleased,
		Deleted:         deleted,
	}
}
