package models

import (
	"time"

	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/maintenance"
	"github.com/google/uuid"
)

// MaintenanceRequestModel is the persistence model for a MaintenanceRequest.
type MaintenanceRequestModel struct {
	OwnedAggregateModel
	PropertyID      uuid.UUID            `gorm:"type:uuid;not null;index"`
	Unit            string               `gorm:"type:varchar(50)"`
	TenantID        *uuid.UUID           `gorm:"type:uuid;index"`
	Title           string               `gorm:"type:varchar(200);not null"`
	Description     string               `gorm:"type:text"`
	Priority        maintenance.Priority `gorm:"type:varchar(20);not null;default:'medium'"`
	Status          maintenance.Status   `gorm:"type:varchar(20);not null;default:'open';index"`
	AppointmentAt   *time.Time           `gorm:"index"`
	ResolvedAt      *time.Time
	ResolutionNotes string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (MaintenanceRequestModel) TableName() string {
	return "maintenance_requests"
}

// ToDomain converts the persistence model to a domain MaintenanceRequest.
func (m *MaintenanceRequestModel) ToDomain() *maintenance.MaintenanceRequest {
	return &maintenance.MaintenanceRequest{
		OwnedAggregateRoot: m.ToDomainOwnedAggregateRoot(),
		PropertyID:         m.PropertyID,
		Unit:               m.Unit,
		TenantID:           m.TenantID,
		Title:              m.Title,
		Description:        m.Description,
		Priority:           m.Priority,
		Status:             m.Status,
		AppointmentAt:      m.AppointmentAt,
		ResolvedAt:         m.ResolvedAt,
		ResolutionNotes:    m.ResolutionNotes,
	}
}

// FromDomain populates the persistence model from a domain MaintenanceRequest.
func (m *MaintenanceRequestModel) FromDomain(r *maintenance.MaintenanceRequest) {
	m.FromDomainOwnedAggregateRoot(r.OwnedAggregateRoot)
	m.PropertyID = r.PropertyID
	m.Unit = r.Unit
	m.TenantID = r.TenantID
	m.Title = r.Title
	m.Description = r.Description
	m.Priority = r.Priority
	m.Status = r.Status
	m.AppointmentAt = r.AppointmentAt
	m.ResolvedAt = r.ResolvedAt
	m.ResolutionNotes = r.ResolutionNotes
}

// MaintenanceRequestModelFromDomain creates a new persistence model from a domain request.
func MaintenanceRequestModelFromDomain(r *maintenance.MaintenanceRequest) *MaintenanceRequestModel {
	m := &MaintenanceRequestModel{}
	m.FromDomain(r)
	return m
}
