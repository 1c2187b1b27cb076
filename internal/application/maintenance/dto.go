package maintenance

import (
	"time"

	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/maintenance"
	"github.com/google/uuid"
)

// CreateRequestRequest opens a maintenance ticket
type CreateRequestRequest struct {
	PropertyID  uuid.UUID  `json:"property_id"`
	Unit        string     `json:"unit"`
	TenantID    *uuid.UUID `json:"tenant_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
}

// UpdateRequestRequest edits the descriptive fields of a ticket
type UpdateRequestRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

// ScheduleRequest books an appointment
type ScheduleRequest struct {
	AppointmentAt time.Time `json:"appointment_at"`
}

// ResolveRequest closes a ticket as fixed
type ResolveRequest struct {
	Notes string `json:"notes"`
}

// CancelRequest closes a ticket without a fix
type CancelRequest struct {
	Reason string `json:"reason"`
}

// RequestListFilter represents filter options for the ticket list
type RequestListFilter struct {
	Search     string `form:"search"`
	Status     string `form:"status" binding:"omitempty,oneof=open scheduled in_progress resolved cancelled"`
	Priority   string `form:"priority" binding:"omitempty,oneof=low medium high emergency"`
	PropertyID string `form:"property_id" binding:"omitempty,uuid"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string `form:"order_by"`
	OrderDir   string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// RequestResponse represents a maintenance ticket in API responses
type RequestResponse struct {
	ID              uuid.UUID  `json:"id"`
	OwnerID         uuid.UUID  `json:"owner_id"`
	PropertyID      uuid.UUID  `json:"property_id"`
	Unit            string     `json:"unit,omitempty"`
	TenantID        *uuid.UUID `json:"tenant_id,omitempty"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Priority        string     `json:"priority"`
	Status          string     `json:"status"`
	AppointmentAt   *time.Time `json:"appointment_at,omitempty"`
	ResolvedAt      *time.Time `json:"resolved_at,omitempty"`
	ResolutionNotes string     `json:"resolution_notes,omitempty"`
	Version         int        `json:"version"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// ToRequestResponse converts a domain request to a response
func ToRequestResponse(r *maintenance.MaintenanceRequest) RequestResponse {
	return RequestResponse{
		ID:              r.ID,
		OwnerID:         r.OwnerID,
		PropertyID:      r.PropertyID,
		Unit:            r.Unit,
		TenantID:        r.TenantID,
		Title:           r.Title,
		Description:     r.Description,
		Priority:        string(r.Priority),
		Status:          string(r.Status),
		AppointmentAt:   r.AppointmentAt,
		ResolvedAt:      r.ResolvedAt,
		ResolutionNotes: r.ResolutionNotes,
		Version:         r.Version,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}
