package handler

import (
	"time"

	tenantapp "github.com/RaymondAkiiki/property-management-webapp-sub001/internal/application/tenant"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EmergencyContactRequest is the emergency contact in tenant requests
type EmergencyContactRequest struct {
	Name         string `json:"name" binding:"max=200" example:"Jane Doe"`
	Phone        string `json:"phone" binding:"max=50" example:"+1 555 0100"`
	Relationship string `json:"relationship" binding:"max=100" example:"sister"`
}

func (e EmergencyContactRequest) toDTO() tenantapp.EmergencyContactDTO {
	return tenantapp.EmergencyContactDTO{Name: e.Name, Phone: e.Phone, Relationship: e.Relationship}
}

// CreateTenantRequest creates a tenant and binds it to a vacant unit
type CreateTenantRequest struct {
	FirstName        string                  `json:"first_name" binding:"required,notblank,max=100" example:"John"`
	LastName         string                  `json:"last_name" binding:"required,notblank,max=100" example:"Smith"`
	Email            string                  `json:"email" binding:"required,email,max=200" example:"john@example.com"`
	Phone            string                  `json:"phone" binding:"max=50" example:"+1 555 0199"`
	EmergencyContact EmergencyContactRequest `json:"emergency_contact"`
	Notes            string                  `json:"notes" binding:"max=2000"`
	PropertyID       uuid.UUID               `json:"property_id" binding:"required" format:"uuid"`
	UnitNumber       string                  `json:"unit_number" binding:"required,notblank,max=50" example:"2B"`
	StartDate        time.Time               `json:"start_date" binding:"required" example:"2026-01-01T00:00:00Z"`
	EndDate          time.Time               `json:"end_date" binding:"required,gtfield=StartDate" example:"2026-12-31T00:00:00Z"`
	RentAmount       decimal.Decimal         `json:"rent_amount" swaggertype:"number" example:"1200"`
	SecurityDeposit  decimal.Decimal         `json:"security_deposit" swaggertype:"number" example:"1200"`
}

func (r CreateTenantRequest) toAppRequest() tenantapp.CreateTenantRequest {
	return tenantapp.CreateTenantRequest{
		FirstName:        r.FirstName,
		LastName:         r.LastName,
		Email:            r.Email,
		Phone:            r.Phone,
		EmergencyContact: r.EmergencyContact.toDTO(),
		Notes:            r.Notes,
		PropertyID:       r.PropertyID,
		UnitNumber:       r.UnitNumber,
		StartDate:        r.StartDate,
		EndDate:          r.EndDate,
		RentAmount:       r.RentAmount,
		SecurityDeposit:  r.SecurityDeposit,
	}
}

// UpdateTenantRequest changes contact details, notes or status.
// Omitted fields keep their current value.
type UpdateTenantRequest struct {
	FirstName        string                   `json:"first_name" binding:"max=100"`
	LastName         string                   `json:"last_name" binding:"max=100"`
	Email            string                   `json:"email" binding:"omitempty,email,max=200"`
	Phone            *string                  `json:"phone" binding:"omitempty,max=50"`
	EmergencyContact *EmergencyContactRequest `json:"emergency_contact"`
	Notes            *string                  `json:"notes" binding:"omitempty,max=2000"`
	Status           string                   `json:"status" binding:"omitempty,oneof=active inactive eviction" example:"active"`
}

func (r UpdateTenantRequest) toAppRequest() tenantapp.UpdateTenantRequest {
	req := tenantapp.UpdateTenantRequest{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Phone:     r.Phone,
		Notes:     r.Notes,
		Status:    r.Status,
	}
	if r.EmergencyContact != nil {
		ec := r.EmergencyContact.toDTO()
		req.EmergencyContact = &ec
	}
	return req
}

// ExtendLeaseRequest pushes out the lease end date
type ExtendLeaseRequest struct {
	EndDate    time.Time       `json:"end_date" binding:"required" example:"2027-12-31T00:00:00Z"`
	RentAmount decimal.Decimal `json:"rent_amount" swaggertype:"number" example:"1250"`
}

// RecordPaymentRequest records a rent payment
type RecordPaymentRequest struct {
	Amount    decimal.Decimal `json:"amount" swaggertype:"number" example:"1200"`
	PaidAt    time.Time       `json:"paid_at" binding:"required" example:"2026-02-01T00:00:00Z"`
	Method    string          `json:"method" binding:"required,oneof=cash check bank_transfer card mobile_money other" example:"bank_transfer"`
	Status    string          `json:"status" binding:"omitempty,oneof=paid pending late failed" example:"paid"`
	Reference string          `json:"reference" binding:"max=100" example:"TRX-20260201"`
	Notes     string          `json:"notes" binding:"max=1000"`
}

func (r RecordPaymentRequest) toAppRequest() tenantapp.RecordPaymentRequest {
	return tenantapp.RecordPaymentRequest{
		Amount:    r.Amount,
		PaidAt:    r.PaidAt,
		Method:    r.Method,
		Status:    r.Status,
		Reference: r.Reference,
		Notes:     r.Notes,
	}
}
