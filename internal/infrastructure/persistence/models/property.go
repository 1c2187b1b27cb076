package models

import (
	"time"

	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/property"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PropertyModel is the persistence model for the Property aggregate.
type PropertyModel struct {
	OwnedAggregateModel
	Name              string                `gorm:"type:varchar(200);not null"`
	AddressStreet     string                `gorm:"column:address_street;type:varchar(200);not null"`
	AddressCity       string                `gorm:"column:address_city;type:varchar(100);not null"`
	AddressState      string                `gorm:"column:address_state;type:varchar(100)"`
	AddressPostalCode string                `gorm:"column:address_postal_code;type:varchar(20)"`
	AddressCountry    string                `gorm:"column:address_country;type:varchar(100)"`
	PropertyType      property.PropertyType `gorm:"column:property_type;type:varchar(20);not null"`
	Description       string                `gorm:"type:text"`
	Units             []PropertyUnitModel   `gorm:"foreignKey:PropertyID;references:ID"`
}

// TableName returns the table name for GORM
func (PropertyModel) TableName() string {
	return "properties"
}

// PropertyUnitModel is the persistence model for a Unit.
// (property_id, unit_number) is unique.
type PropertyUnitModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key"`
	PropertyID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_property_units_number"`
	UnitNumber      string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_property_units_number"`
	Position        int             `gorm:"not null;default:0"`
	Bedrooms        int             `gorm:"not null;default:0"`
	Bathrooms       decimal.Decimal `gorm:"type:decimal(4,1);not null;default:0"`
	Rent            decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	IsOccupied      bool            `gorm:"not null;default:false"`
	CurrentTenantID *uuid.UUID      `gorm:"type:uuid;index"`
	CreatedAt       time.Time       `gorm:"not null"`
	UpdatedAt       time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PropertyUnitModel) TableName() string {
	return "property_units"
}

// ToDomain converts the persistence model to a domain Property.
// Units are returned in their stored position order.
func (m *PropertyModel) ToDomain() *property.Property {
	p := &property.Property{
		OwnedAggregateRoot: m.ToDomainOwnedAggregateRoot(),
		Name:               m.Name,
		Address: valueobject.AddressDTO{
			Street:     m.AddressStreet,
			City:       m.AddressCity,
			State:      m.AddressState,
			PostalCode: m.AddressPostalCode,
			Country:    m.AddressCountry,
		}.Unchecked(),
		Type:        m.PropertyType,
		Description: m.Description,
		Units:       make([]property.Unit, 0, len(m.Units)),
	}
	for _, u := range m.Units {
		p.Units = append(p.Units, u.ToDomain())
	}
	return p
}

// FromDomain populates the persistence model from a domain Property.
func (m *PropertyModel) FromDomain(p *property.Property) {
	m.FromDomainOwnedAggregateRoot(p.OwnedAggregateRoot)
	m.Name = p.Name
	m.AddressStreet = p.Address.Street()
	m.AddressCity = p.Address.City()
	m.AddressState = p.Address.State()
	m.AddressPostalCode = p.Address.PostalCode()
	m.AddressCountry = p.Address.Country()
	m.PropertyType = p.Type
	m.Description = p.Description
	m.Units = make([]PropertyUnitModel, 0, len(p.Units))
	for i, u := range p.Units {
		m.Units = append(m.Units, PropertyUnitModelFromDomain(p.ID, i, u, p.UpdatedAt))
	}
}

// PropertyModelFromDomain creates a new persistence model from a domain Property.
func PropertyModelFromDomain(p *property.Property) *PropertyModel {
	m := &PropertyModel{}
	m.FromDomain(p)
	return m
}

// ToDomain converts a unit row to the domain Unit
func (u *PropertyUnitModel) ToDomain() property.Unit {
	return property.Unit{
		UnitNumber:      u.UnitNumber,
		Bedrooms:        u.Bedrooms,
		Bathrooms:       u.Bathrooms,
		Rent:            u.Rent,
		IsOccupied:      u.IsOccupied,
		CurrentTenantID: u.CurrentTenantID,
	}
}

// PropertyUnitModelFromDomain creates a unit row for position pos
func PropertyUnitModelFromDomain(propertyID uuid.UUID, pos int, u property.Unit, now time.Time) PropertyUnitModel {
	return PropertyUnitModel{
		ID:              uuid.New(),
		PropertyID:      propertyID,
		UnitNumber:      u.UnitNumber,
		Position:        pos,
		Bedrooms:        u.Bedrooms,
		Bathrooms:       u.Bathrooms,
		Rent:            u.Rent,
		IsOccupied:      u.IsOccupied,
		CurrentTenantID: u.CurrentTenantID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}
