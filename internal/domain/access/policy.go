// Package access decides whether a caller may act on an owned record.
package access

import (
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/shared"
	"github.com/google/uuid"
)

// Owned is implemented by every aggregate that records its creator
type Owned interface {
	GetOwnerID() uuid.UUID
}

// Policy authorizes a caller against a record owner
type Policy interface {
	Authorize(callerID uuid.UUID, resource Owned) error
}

// OwnershipPolicy allows an operation iff the caller created the record
type OwnershipPolicy struct{}

// NewOwnershipPolicy creates the default ownership policy
func NewOwnershipPolicy() OwnershipPolicy {
	return OwnershipPolicy{}
}

// Authorize implements Policy
func (OwnershipPolicy) Authorize(callerID uuid.UUID, resource Owned) error {
	if resource == nil || callerID == uuid.Nil {
		return ErrNotOwner
	}
	owner := resource.GetOwnerID()
	if owner == uuid.Nil || owner != callerID {
		return ErrNotOwner
	}
	return nil
}

// ScopeToCaller forces the owner filter of a list query to the caller,
// so callers can never see another owner's rows
func ScopeToCaller(callerID uuid.UUID, filter shared.Filter) shared.Filter {
	filter.OwnerID = callerID
	return filter
}

// ErrNotOwner is returned when the caller does not own the record
var ErrNotOwner = shared.Unauthorized("You are not authorized to access this record")

var _ Policy = OwnershipPolicy{}
