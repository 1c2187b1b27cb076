package tenant

import (
	"net/mail"
	"sort"
	"strings"
	"time"

	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status represents where a tenant is in the tenancy lifecycle
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusEviction Status = "eviction"
	StatusMoveOut  Status = "moveout"
)

// AllStatuses lists the canonical tenant statuses in display order
var AllStatuses = []Status{StatusActive, StatusInactive, StatusEviction, StatusMoveOut}

// IsValid checks if the status is one of the canonical values
func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusEviction, StatusMoveOut:
		return true
	}
	return false
}

// EmergencyContact is the person to call if the tenant cannot be reached
type EmergencyContact struct {
	Name         string
	Phone        string
	Relationship string
}

// LeaseDetails binds a tenant to exactly one property unit
type LeaseDetails struct {
	PropertyID      uuid.UUID
	UnitNumber      string
	StartDate       time.Time
	EndDate         time.Time
	RentAmount      decimal.Decimal
	SecurityDeposit decimal.Decimal
}

// Validate checks the lease terms
func (l LeaseDetails) Validate() error {
	if l.PropertyID == uuid.Nil {
		return shared.NewDomainError("INVALID_LEASE", "Lease property is required")
	}
	if strings.TrimSpace(l.UnitNumber) == "" {
		return shared.NewDomainError("INVALID_LEASE", "Lease unit is required")
	}
	if l.StartDate.IsZero() || l.EndDate.IsZero() {
		return shared.NewDomainError("INVALID_LEASE", "Lease start and end dates are required")
	}
	if !l.EndDate.After(l.StartDate) {
		return shared.NewDomainError("INVALID_LEASE", "Lease end date must be after start date")
	}
	if !l.RentAmount.IsPositive() {
		return shared.NewDomainError("INVALID_LEASE", "Rent amount must be positive")
	}
	if l.SecurityDeposit.IsNegative() {
		return shared.NewDomainError("INVALID_LEASE", "Security deposit cannot be negative")
	}
	return nil
}

// Contact carries the editable personal details of a tenant
type Contact struct {
	FirstName        string
	LastName         string
	Email            string
	Phone            string
	EmergencyContact EmergencyContact
}

// Tenant is the aggregate root for a person renting a unit
type Tenant struct {
	shared.OwnedAggregateRoot
	FirstName        string
	LastName         string
	Email            string
	Phone            string
	EmergencyContact EmergencyContact
	Status           Status
	Lease            LeaseDetails
	Payments         []PaymentEntry
	Notes            string
}

// NewTenant creates a new active tenant with the given lease
func NewTenant(ownerID uuid.UUID, contact Contact, lease LeaseDetails) (*Tenant, error) {
	if ownerID == uuid.Nil {
		return nil, shared.InvalidInput("Owner is required")
	}
	if err := validateContact(contact); err != nil {
		return nil, err
	}
	lease.UnitNumber = strings.TrimSpace(lease.UnitNumber)
	if err := lease.Validate(); err != nil {
		return nil, err
	}

	t := &Tenant{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		Status:             StatusActive,
		Lease:              lease,
		Payments:           make([]PaymentEntry, 0),
	}
	t.applyContact(contact)

	t.AddDomainEvent(NewTenantCreatedEvent(t))

	return t, nil
}

// FullName returns "First Last"
func (t *Tenant) FullName() string {
	return strings.TrimSpace(t.FirstName + " " + t.LastName)
}

// UpdateContact replaces the tenant's personal details
func (t *Tenant) UpdateContact(contact Contact) error {
	if err := validateContact(contact); err != nil {
		return err
	}
	t.applyContact(contact)
	t.touch()
	t.AddDomainEvent(NewTenantUpdatedEvent(t))
	return nil
}

// SetNotes sets free-text notes
func (t *Tenant) SetNotes(notes string) error {
	if len(notes) > 2000 {
		return shared.InvalidInput("Notes cannot exceed 2000 characters")
	}
	t.Notes = notes
	t.touch()
	return nil
}

func (t *Tenant) applyContact(c Contact) {
	t.FirstName = strings.TrimSpace(c.FirstName)
	t.LastName = strings.TrimSpace(c.LastName)
	t.Email = strings.ToLower(strings.TrimSpace(c.Email))
	t.Phone = strings.TrimSpace(c.Phone)
	t.EmergencyContact = c.EmergencyContact
}

// ChangeStatus moves the tenant to another canonical status.
// moveout is final: a moved-out tenant holds no unit and cannot be reactivated.
func (t *Tenant) ChangeStatus(status Status) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Invalid tenant status")
	}
	if t.Status == status {
		return nil
	}
	if t.Status == StatusMoveOut {
		return shared.InvalidState("Tenant has moved out")
	}

	old := t.Status
	t.Status = status
	t.touch()
	t.AddDomainEvent(NewTenantStatusChangedEvent(t, old))
	return nil
}

// HoldsUnit reports whether the tenant's lease still claims its unit
func (t *Tenant) HoldsUnit() bool {
	return t.Status != StatusMoveOut
}

// ExtendLease pushes out the lease end date and optionally changes the rent.
// A zero newRent keeps the current rent.
func (t *Tenant) ExtendLease(newEnd time.Time, newRent decimal.Decimal) error {
	if t.Status == StatusMoveOut {
		return shared.InvalidState("Cannot extend the lease of a moved-out tenant")
	}
	if !newEnd.After(t.Lease.EndDate) {
		return shared.NewDomainError("INVALID_LEASE", "New end date must be after the current end date")
	}
	if newRent.IsNegative() {
		return shared.NewDomainError("INVALID_LEASE", "Rent amount must be positive")
	}

	t.Lease.EndDate = newEnd
	if newRent.IsPositive() {
		t.Lease.RentAmount = newRent
	}
	t.touch()
	t.AddDomainEvent(NewTenantUpdatedEvent(t))
	return nil
}

// RecordPayment appends a payment entry and keeps history ordered by PaidAt
func (t *Tenant) RecordPayment(entry PaymentEntry) (*PaymentEntry, error) {
	if err := entry.Validate(); err != nil {
		return nil, err
	}
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.Status == "" {
		entry.Status = PaymentStatusPaid
	}
	entry.Sequence = len(t.Payments) + 1

	t.Payments = append(t.Payments, entry)
	sortPayments(t.Payments)
	t.touch()

	t.AddDomainEvent(NewTenantPaymentRecordedEvent(t, entry))

	for i := range t.Payments {
		if t.Payments[i].ID == entry.ID {
			return &t.Payments[i], nil
		}
	}
	return &entry, nil
}

// TotalPaid sums the amounts of payments with status paid or late
func (t *Tenant) TotalPaid() decimal.Decimal {
	total := decimal.Zero
	for _, p := range t.Payments {
		if p.Status.CountsAsReceived() {
			total = total.Add(p.Amount)
		}
	}
	return total
}

// LeaseEndsWithin reports whether the lease ends in [now, now+window]
func (t *Tenant) LeaseEndsWithin(now time.Time, window time.Duration) bool {
	end := t.Lease.EndDate
	return !end.Before(now) && !end.After(now.Add(window))
}

// MarkMovedOut sets the terminal moveout status
func (t *Tenant) MarkMovedOut() error {
	return t.ChangeStatus(StatusMoveOut)
}

func (t *Tenant) touch() {
	t.Touch(time.Now())
	t.IncrementVersion()
}

func sortPayments(p []PaymentEntry) {
	sort.SliceStable(p, func(i, j int) bool {
		if !p[i].PaidAt.Equal(p[j].PaidAt) {
			return p[i].PaidAt.Before(p[j].PaidAt)
		}
		return p[i].Sequence < p[j].Sequence
	})
}

// Domain errors specific to tenants
var (
	ErrTenantNotFound = shared.NotFound("Tenant not found")
)

func validateContact(c Contact) error {
	if strings.TrimSpace(c.FirstName) == "" {
		return shared.NewDomainError("INVALID_NAME", "First name cannot be empty")
	}
	if strings.TrimSpace(c.LastName) == "" {
		return shared.NewDomainError("INVALID_NAME", "Last name cannot be empty")
	}
	if len(c.FirstName) > 100 || len(c.LastName) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Name cannot exceed 100 characters")
	}
	email := strings.TrimSpace(c.Email)
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	if len(c.Phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone cannot exceed 50 characters")
	}
	return nil
}
