package models

import (
	"time"

	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/tenant"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TenantModel is the persistence model for the Tenant aggregate.
// The lease is stored inline as lease_* columns.
type TenantModel struct {
	OwnedAggregateModel
	FirstName                    string          `gorm:"type:varchar(100);not null"`
	LastName                     string          `gorm:"type:varchar(100);not null"`
	Email                        string          `gorm:"type:varchar(200);not null;index"`
	Phone                        string          `gorm:"type:varchar(50)"`
	EmergencyContactName         string          `gorm:"column:emergency_contact_name;type:varchar(200)"`
	EmergencyContactPhone        string          `gorm:"column:emergency_contact_phone;type:varchar(50)"`
	EmergencyContactRelationship string          `gorm:"column:emergency_contact_relationship;type:varchar(100)"`
	Status                       tenant.Status   `gorm:"type:varchar(20);not null;default:'active';index"`
	LeasePropertyID              uuid.UUID       `gorm:"column:lease_property_id;type:uuid;not null;index"`
	LeaseUnitNumber              string          `gorm:"column:lease_unit_number;type:varchar(50);not null"`
	LeaseStartDate               time.Time       `gorm:"column:lease_start_date;not null"`
	LeaseEndDate                 time.Time       `gorm:"column:lease_end_date;not null;index"`
	LeaseRentAmount              decimal.Decimal `gorm:"column:lease_rent_amount;type:decimal(12,2);not null"`
	LeaseSecurityDeposit         decimal.Decimal `gorm:"column:lease_security_deposit;type:decimal(12,2);not null;default:0"`
	Notes                        string          `gorm:"type:text"`

	Payments []TenantPaymentModel `gorm:"foreignKey:TenantID;references:ID"`
}

// TableName returns the table name for GORM
func (TenantModel) TableName() string {
	return "tenants"
}

// TenantPaymentModel is the persistence model for a PaymentEntry.
type TenantPaymentModel struct {
	ID        uuid.UUID            `gorm:"type:uuid;primary_key"`
	TenantID  uuid.UUID            `gorm:"type:uuid;not null;index"`
	Amount    decimal.Decimal      `gorm:"type:decimal(12,2);not null"`
	PaidAt    time.Time            `gorm:"not null;index"`
	Method    tenant.PaymentMethod `gorm:"type:varchar(20);not null"`
	Status    tenant.PaymentStatus `gorm:"type:varchar(20);not null;default:'paid'"`
	Reference string               `gorm:"type:varchar(100)"`
	Notes     string               `gorm:"type:text"`
	Sequence  int                  `gorm:"not null;default:0"`
	CreatedAt time.Time            `gorm:"not null"`
}

// TableName returns the table name for GORM
func (TenantPaymentModel) TableName() string {
	return "tenant_payments"
}

// ToDomain converts the persistence model to a domain Tenant.
func (m *TenantModel) ToDomain() *tenant.Tenant {
	t := &tenant.Tenant{
		OwnedAggregateRoot: m.ToDomainOwnedAggregateRoot(),
		FirstName:          m.FirstName,
		LastName:           m.LastName,
		Email:              m.Email,
		Phone:              m.Phone,
		EmergencyContact: tenant.EmergencyContact{
			Name:         m.EmergencyContactName,
			Phone:        m.EmergencyContactPhone,
			Relationship: m.EmergencyContactRelationship,
		},
		Status: m.Status,
		Lease: tenant.LeaseDetails{
			PropertyID:      m.LeasePropertyID,
			UnitNumber:      m.LeaseUnitNumber,
			StartDate:       m.LeaseStartDate,
			EndDate:         m.LeaseEndDate,
			RentAmount:      m.LeaseRentAmount,
			SecurityDeposit: m.LeaseSecurityDeposit,
		},
		Notes:    m.Notes,
		Payments: make([]tenant.PaymentEntry, 0, len(m.Payments)),
	}
	for _, p := range m.Payments {
		t.Payments = append(t.Payments, p.ToDomain())
	}
	return t
}

// FromDomain populates the persistence model from a domain Tenant.
// Payments are not copied; they are written with AddPayment.
func (m *TenantModel) FromDomain(t *tenant.Tenant) {
	m.FromDomainOwnedAggregateRoot(t.OwnedAggregateRoot)
	m.FirstName = t.FirstName
	m.LastName = t.LastName
	m.Email = t.Email
	m.Phone = t.Phone
	m.EmergencyContactName = t.EmergencyContact.Name
	m.EmergencyContactPhone = t.EmergencyContact.Phone
	m.EmergencyContactRelationship = t.EmergencyContact.Relationship
	m.Status = t.Status
	m.LeasePropertyID = t.Lease.PropertyID
	m.LeaseUnitNumber = t.Lease.UnitNumber
	m.LeaseStartDate = t.Lease.StartDate
	m.LeaseEndDate = t.Lease.EndDate
	m.LeaseRentAmount = t.Lease.RentAmount
	m.LeaseSecurityDeposit = t.Lease.SecurityDeposit
	m.Notes = t.Notes
}

// TenantModelFromDomain creates a new persistence model from a domain Tenant.
func TenantModelFromDomain(t *tenant.Tenant) *TenantModel {
	m := &TenantModel{}
	m.FromDomain(t)
	return m
}

// ToDomain converts a payment row to the domain PaymentEntry
func (p *TenantPaymentModel) ToDomain() tenant.PaymentEntry {
	return tenant.PaymentEntry{
		ID:        p.ID,
		Amount:    p.Amount,
		PaidAt:    p.PaidAt,
		Method:    p.Method,
		Status:    p.Status,
		Reference: p.Reference,
		Notes:     p.Notes,
		Sequence:  p.Sequence,
	}
}

// TenantPaymentModelFromDomain creates a payment row for tenantID
func TenantPaymentModelFromDomain(tenantID uuid.UUID, e *tenant.PaymentEntry) *TenantPaymentModel {
	return &TenantPaymentModel{
		ID:        e.ID,
		TenantID:  tenantID,
		Amount:    e.Amount,
		PaidAt:    e.PaidAt,
		Method:    e.Method,
		Status:    e.Status,
		Reference: e.Reference,
		Notes:     e.Notes,
		Sequence:  e.Sequence,
		CreatedAt: time.Now(),
	}
}
