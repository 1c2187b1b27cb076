package tenant

import (
	"time"

	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/application/tenancy"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/tenant"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EmergencyContactDTO is the emergency contact in requests and responses
type EmergencyContactDTO struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Relationship string `json:"relationship"`
}

func (e EmergencyContactDTO) toDomain() tenant.EmergencyContact {
	return tenant.EmergencyContact{Name: e.Name, Phone: e.Phone, Relationship: e.Relationship}
}

// CreateTenantRequest creates a tenant and binds it to a vacant unit
type CreateTenantRequest struct {
	FirstName        string              `json:"first_name"`
	LastName         string              `json:"last_name"`
	Email            string              `json:"email"`
	Phone            string              `json:"phone"`
	EmergencyContact EmergencyContactDTO `json:"emergency_contact"`
	Notes            string              `json:"notes"`
	PropertyID       uuid.UUID           `json:"property_id"`
	UnitNumber       string              `json:"unit_number"`
	StartDate        time.Time           `json:"start_date"`
	EndDate          time.Time           `json:"end_date"`
	RentAmount       decimal.Decimal     `json:"rent_amount"`
	SecurityDeposit  decimal.Decimal     `json:"security_deposit"`
}

// ToTenancyInput converts the request for TenancyService.CreateTenancy
func (r CreateTenantRequest) ToTenancyInput() tenancy.CreateTenancyInput {
	return tenancy.CreateTenancyInput{
		FirstName:        r.FirstName,
		LastName:         r.LastName,
		Email:            r.Email,
		Phone:            r.Phone,
		EmergencyContact: r.EmergencyContact.toDomain(),
		Notes:            r.Notes,
		PropertyID:       r.PropertyID,
		UnitNumber:       r.UnitNumber,
		StartDate:        r.StartDate,
		EndDate:          r.EndDate,
		RentAmount:       r.RentAmount,
		SecurityDeposit:  r.SecurityDeposit,
	}
}

// UpdateTenantRequest changes contact details, notes or status. Empty
// strings and nil pointers keep the current value.
type UpdateTenantRequest struct {
	FirstName        string               `json:"first_name"`
	LastName         string               `json:"last_name"`
	Email            string               `json:"email"`
	Phone            *string              `json:"phone"`
	EmergencyContact *EmergencyContactDTO `json:"emergency_contact"`
	Notes            *string              `json:"notes"`
	Status           string               `json:"status"`
}

// ExtendLeaseRequest pushes out the lease end date
type ExtendLeaseRequest struct {
	EndDate    time.Time       `json:"end_date"`
	RentAmount decimal.Decimal `json:"rent_amount"`
}

// RecordPaymentRequest appends a payment to a tenant's history
type RecordPaymentRequest struct {
	Amount    decimal.Decimal `json:"amount"`
	PaidAt    time.Time       `json:"paid_at"`
	Method    string          `json:"method"`
	Status    string          `json:"status"`
	Reference string          `json:"reference"`
	Notes     string          `json:"notes"`
}

// TenantListFilter represents filter options for the tenant list
type TenantListFilter struct {
	Search     string `form:"search"`
	Status     string `form:"status" binding:"omitempty,oneof=active inactive eviction moveout"`
	PropertyID string `form:"property_id" binding:"omitempty,uuid"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string `form:"order_by"`
	OrderDir   string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// LeaseResponse represents lease terms in API responses
type LeaseResponse struct {
	PropertyID      uuid.UUID       `json:"property_id"`
	UnitNumber      string          `json:"unit_number"`
	StartDate       time.Time       `json:"start_date"`
	EndDate         time.Time       `json:"end_date"`
	RentAmount      decimal.Decimal `json:"rent_amount"`
	SecurityDeposit decimal.Decimal `json:"security_deposit"`
}

// PaymentResponse represents a payment entry in API responses
type PaymentResponse struct {
	ID        uuid.UUID       `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	PaidAt    time.Time       `json:"paid_at"`
	Method    string          `json:"method"`
	Status    string          `json:"status"`
	Reference string          `json:"reference,omitempty"`
	Notes     string          `json:"notes,omitempty"`
}

// TenantResponse represents a tenant in API responses
type TenantResponse struct {
	ID               uuid.UUID           `json:"id"`
	OwnerID          uuid.UUID           `json:"owner_id"`
	FirstName        string              `json:"first_name"`
	LastName         string              `json:"last_name"`
	FullName         string              `json:"full_name"`
	Email            string              `json:"email"`
	Phone            string              `json:"phone,omitempty"`
	EmergencyContact EmergencyContactDTO `json:"emergency_contact"`
	Status           string              `json:"status"`
	Lease            LeaseResponse       `json:"lease"`
	Payments         []PaymentResponse   `json:"payments"`
	TotalPaid        decimal.Decimal     `json:"total_paid"`
	Notes            string              `json:"notes,omitempty"`
	Version          int                 `json:"version"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

// TenantListItemResponse represents a tenant in list responses
type TenantListItemResponse struct {
	ID         uuid.UUID       `json:"id"`
	FullName   string          `json:"full_name"`
	Email      string          `json:"email"`
	Phone      string          `json:"phone,omitempty"`
	Status     string          `json:"status"`
	PropertyID uuid.UUID       `json:"property_id"`
	UnitNumber string          `json:"unit_number"`
	LeaseEnd   time.Time       `json:"lease_end"`
	RentAmount decimal.Decimal `json:"rent_amount"`
	CreatedAt  time.Time       `json:"created_at"`
}

// TenancyEndedResponse reports the outcome of a delete or move-out
type TenancyEndedResponse struct {
	TenantID     uuid.UUID `json:"tenant_id"`
	Status       string    `json:"status"`
	Deleted      bool      `json:"deleted"`
	UnitReleased bool      `json:"unit_released"`
}

// ToPaymentResponse converts a payment entry
func ToPaymentResponse(p *tenant.PaymentEntry) PaymentResponse {
	return PaymentResponse{
		ID:        p.ID,
		Amount:    p.Amount,
		PaidAt:    p.PaidAt,
		Method:    string(p.Method),
		Status:    string(p.Status),
		Reference: p.Reference,
		Notes:     p.Notes,
	}
}

// ToTenantResponse converts a domain Tenant to a response
func ToTenantResponse(t *tenant.Tenant) TenantResponse {
	payments := make([]PaymentResponse, 0, len(t.Payments))
	for i := range t.Payments {
		payments = append(payments, ToPaymentResponse(&t.Payments[i]))
	}
	return TenantResponse{
		ID:        t.ID,
		OwnerID:   t.OwnerID,
		FirstName: t.FirstName,
		LastName:  t.LastName,
		FullName:  t.FullName(),
		Email:     t.Email,
		Phone:     t.Phone,
		EmergencyContact: EmergencyContactDTO{
			Name:         t.EmergencyContact.Name,
			Phone:        t.EmergencyContact.Phone,
			Relationship: t.EmergencyContact.Relationship,
		},
		Status: string(t.Status),
		Lease: LeaseResponse{
			PropertyID:      t.Lease.PropertyID,
			UnitNumber:      t.Lease.UnitNumber,
			StartDate:       t.Lease.StartDate,
			EndDate:         t.Lease.EndDate,
			RentAmount:      t.Lease.RentAmount,
			SecurityDeposit: t.Lease.SecurityDeposit,
		},
		Payments:  payments,
		TotalPaid: t.TotalPaid(),
		Notes:     t.Notes,
		Version:   t.Version,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// ToTenantListItemResponse converts a domain Tenant to a list item
func ToTenantListItemResponse(t *tenant.Tenant) TenantListItemResponse {
	return TenantListItemResponse{
		ID:         t.ID,
		FullName:   t.FullName(),
		Email:      t.Email,
		Phone:      t.Phone,
		Status:     string(t.Status),
		PropertyID: t.Lease.PropertyID,
		UnitNumber: t.Lease.UnitNumber,
		LeaseEnd:   t.Lease.EndDate,
		RentAmount: t.Lease.RentAmount,
		CreatedAt:  t.CreatedAt,
	}
}

// ToTenancyEndedResponse converts the result of a delete or move-out
func ToTenancyEndedResponse(r *tenancy.EndTenancyResult, deleted bool) TenancyEndedResponse {
	return TenancyEndedResponse{
		TenantID:     r.Tenant.ID,
		Status:       string(r.Tenant.Status),
		Deleted:      deleted,
		UnitReleased: r.UnitReleased,
	}
}
