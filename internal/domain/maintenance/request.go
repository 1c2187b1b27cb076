package maintenance

import (
	"strings"
	"time"

	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/shared"
	"github.com/google/uuid"
)

// Priority of a maintenance request
type Priority string

const (
	PriorityLow       Priority = "low"
	PriorityMedium    Priority = "medium"
	PriorityHigh      Priority = "high"
	PriorityEmergency Priority = "emergency"
)

// IsValid checks if the priority is valid
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityEmergency:
		return true
	}
	return false
}

// Status is the lifecycle state of a maintenance request
type Status string

const (
	StatusOpen       Status = "open"
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
	StatusCancelled  Status = "cancelled"
)

// IsValid checks if the status is valid
func (s Status) IsValid() bool {
	switch s {
	case StatusOpen, StatusScheduled, StatusInProgress, StatusResolved, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is allowed
func (s Status) IsTerminal() bool {
	return s == StatusResolved || s == StatusCancelled
}

// MaintenanceRequest is the aggregate root for a repair ticket
type MaintenanceRequest struct {
	shared.OwnedAggregateRoot
	PropertyID      uuid.UUID
	Unit            string
	TenantID        *uuid.UUID
	Title           string
	Description     string
	Priority        Priority
	Status          Status
	AppointmentAt   *time.Time
	ResolvedAt      *time.Time
	ResolutionNotes string
}

// NewMaintenanceRequest creates a new open request
func NewMaintenanceRequest(ownerID, propertyID uuid.UUID, unit, title, description string, priority Priority) (*MaintenanceRequest, error) {
	if ownerID == uuid.Nil {
		return nil, shared.InvalidInput("Owner is required")
	}
	if propertyID == uuid.Nil {
		return nil, shared.InvalidInput("Property is required")
	}
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if len(description) > 5000 {
		return nil, shared.InvalidInput("Description cannot exceed 5000 characters")
	}
	if priority == "" {
		priority = PriorityMedium
	}
	if !priority.IsValid() {
		return nil, shared.NewDomainError("INVALID_PRIORITY", "Invalid priority")
	}

	r := &MaintenanceRequest{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		PropertyID:         propertyID,
		Unit:               strings.TrimSpace(unit),
		Title:              strings.TrimSpace(title),
		Description:        description,
		Priority:           priority,
		Status:             StatusOpen,
	}

	r.AddDomainEvent(NewMaintenanceCreatedEvent(r))

	return r, nil
}

// AssignTenant links the request to the tenant who reported it
func (r *MaintenanceRequest) AssignTenant(tenantID uuid.UUID) {
	id := tenantID
	r.TenantID = &id
	r.touch()
}

// Update changes the descriptive fields while the request is not terminal
func (r *MaintenanceRequest) Update(title, description string, priority Priority) error {
	if r.Status.IsTerminal() {
		return shared.InvalidState("Cannot edit a " + string(r.Status) + " request")
	}
	if err := validateTitle(title); err != nil {
		return err
	}
	if len(description) > 5000 {
		return shared.InvalidInput("Description cannot exceed 5000 characters")
	}
	if !priority.IsValid() {
		return shared.NewDomainError("INVALID_PRIORITY", "Invalid priority")
	}

	r.Title = strings.TrimSpace(title)
	r.Description = description
	r.Priority = priority
	r.touch()
	return nil
}

// Schedule books a contractor appointment. Only open or already scheduled
// requests can be (re)scheduled and the appointment must be in the future.
func (r *MaintenanceRequest) Schedule(at, now time.Time) error {
	if r.Status != StatusOpen && r.Status != StatusScheduled {
		return r.illegal(StatusScheduled)
	}
	if !at.After(now) {
		return shared.InvalidInput("Appointment must be in the future")
	}

	appointment := at
	r.AppointmentAt = &appointment
	return r.transition(StatusScheduled)
}

// Start marks work as in progress
func (r *MaintenanceRequest) Start() error {
	if r.Status != StatusOpen && r.Status != StatusScheduled {
		return r.illegal(StatusInProgress)
	}
	return r.transition(StatusInProgress)
}

// Resolve closes the request as fixed
func (r *MaintenanceRequest) Resolve(notes string, now time.Time) error {
	if r.Status.IsTerminal() {
		return r.illegal(StatusResolved)
	}
	if len(notes) > 5000 {
		return shared.InvalidInput("Resolution notes cannot exceed 5000 characters")
	}

	resolvedAt := now
	r.ResolvedAt = &resolvedAt
	r.ResolutionNotes = notes
	return r.transition(StatusResolved)
}

// Cancel closes the request without a fix
func (r *MaintenanceRequest) Cancel(reason string) error {
	if r.Status.IsTerminal() {
		return r.illegal(StatusCancelled)
	}
	r.ResolutionNotes = reason
	return r.transition(StatusCancelled)
}

// HasFutureAppointment reports whether an appointment is booked after now
func (r *MaintenanceRequest) HasFutureAppointment(now time.Time) bool {
	return r.AppointmentAt != nil && r.AppointmentAt.After(now)
}

func (r *MaintenanceRequest) transition(to Status) error {
	from := r.Status
	r.Status = to
	r.touch()
	r.AddDomainEvent(NewMaintenanceStatusChangedEvent(r, from))
	return nil
}

func (r *MaintenanceRequest) illegal(to Status) error {
	return shared.InvalidState("Cannot move request from " + string(r.Status) + " to " + string(to))
}

func (r *MaintenanceRequest) touch() {
	r.Touch(time.Now())
	r.IncrementVersion()
}

// Domain errors specific to maintenance
var (
	ErrRequestNotFound = shared.NotFound("Maintenance request not found")
)

func validateTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	if len(title) > 200 {
		return shared.NewDomainError("INVALID_TITLE", "Title cannot exceed 200 characters")
	}
	return nil
}
