package tenant

import (
	"time"

	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod is how a payment was made
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodCheck        PaymentMethod = "check"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodCard         PaymentMethod = "card"
	PaymentMethodMobileMoney  PaymentMethod = "mobile_money"
	PaymentMethodOther        PaymentMethod = "other"
)

// IsValid checks if the payment method is valid
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCheck, PaymentMethodBankTransfer,
		PaymentMethodCard, PaymentMethodMobileMoney, PaymentMethodOther:
		return true
	}
	return false
}

// PaymentStatus is the settlement state of a payment
type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusLate    PaymentStatus = "late"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// IsValid checks if the payment status is valid
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPaid, PaymentStatusPending, PaymentStatusLate, PaymentStatusFailed:
		return true
	}
	return false
}

// CountsAsReceived reports whether money actually arrived
func (s PaymentStatus) CountsAsReceived() bool {
	return s == PaymentStatusPaid || s == PaymentStatusLate
}

// PaymentEntry is one line of a tenant's payment history
type PaymentEntry struct {
	ID        uuid.UUID
	Amount    decimal.Decimal
	PaidAt    time.Time
	Method    PaymentMethod
	Status    PaymentStatus
	Reference string
	Notes     string
	// Sequence is the insertion order, used to break PaidAt ties
	Sequence int
}

// Validate checks a payment entry before it is recorded
func (p PaymentEntry) Validate() error {
	if !p.Amount.IsPositive() {
		return shared.NewDomainError("INVALID_PAYMENT", "Payment amount must be positive")
	}
	if p.PaidAt.IsZero() {
		return shared.NewDomainError("INVALID_PAYMENT", "Payment date is required")
	}
	if !p.Method.IsValid() {
		return shared.NewDomainError("INVALID_PAYMENT", "Invalid payment method")
	}
	if p.Status != "" && !p.Status.IsValid() {
		return shared.NewDomainError("INVALID_PAYMENT", "Invalid payment status")
	}
	if len(p.Reference) > 100 {
		return shared.NewDomainError("INVALID_PAYMENT", "Reference cannot exceed 100 characters")
	}
	return nil
}
