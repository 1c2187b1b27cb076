package shared

import (
	"time"

	"github.com/google/uuid"
)

// Entity is anything a landlord's records are keyed by: properties, tenants,
// maintenance requests, messages and user accounts
type Entity interface {
	GetID() uuid.UUID
	GetCreatedAt() time.Time
	GetUpdatedAt() time.Time
}

// BaseEntity carries the identity and audit timestamps stored on every row
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (e *BaseEntity) GetID() uuid.UUID {
	return e.ID
}

func (e *BaseEntity) GetCreatedAt() time.Time {
	return e.CreatedAt
}

// GetUpdatedAt is the time of the last edit to the record itself. The
// dashboard reports it as recent activity.
func (e *BaseEntity) GetUpdatedAt() time.Time {
	return e.UpdatedAt
}

// Touch records an edit made at now. Timestamps never move backwards.
func (e *BaseEntity) Touch(now time.Time) {
	if now.After(e.UpdatedAt) {
		e.UpdatedAt = now
	}
}

// NewBaseEntity assigns a fresh ID with both timestamps set to now
func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}
