package property

import (
	"time"

	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/property"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UnitInput describes a unit to add to a property
type UnitInput struct {
	UnitNumber string          `json:"unit_number"`
	Bedrooms   int             `json:"bedrooms"`
	Bathrooms  decimal.Decimal `json:"bathrooms"`
	Rent       decimal.Decimal `json:"rent"`
}

func (u UnitInput) spec() property.UnitSpec {
	return property.UnitSpec{
		UnitNumber: u.UnitNumber,
		Bedrooms:   u.Bedrooms,
		Bathrooms:  u.Bathrooms,
		Rent:       u.Rent,
	}
}

// CreatePropertyRequest represents a request to create a property
type CreatePropertyRequest struct {
	Name         string                 `json:"name"`
	Address      valueobject.AddressDTO `json:"address"`
	PropertyType string                 `json:"property_type"`
	Description  string                 `json:"description"`
	Units        []UnitInput            `json:"units"`
}

// UpdatePropertyRequest represents a request to update a property's descriptive fields
type UpdatePropertyRequest struct {
	Name         string                 `json:"name"`
	Address      valueobject.AddressDTO `json:"address"`
	PropertyType string                 `json:"property_type"`
	Description  string                 `json:"description"`
}

// UpdateUnitRequest represents a request to change a unit's layout or rent
type UpdateUnitRequest struct {
	Bedrooms  int             `json:"bedrooms"`
	Bathrooms decimal.Decimal `json:"bathrooms"`
	Rent      decimal.Decimal `json:"rent"`
}

// PropertyListFilter represents filter options for the property list
type PropertyListFilter struct {
	Search       string `form:"search"`
	PropertyType string `form:"property_type" binding:"omitempty,oneof=apartment house condo townhouse commercial"`
	Page         int    `form:"page" binding:"omitempty,min=1"`
	PageSize     int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy      string `form:"order_by"`
	OrderDir     string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// UnitResponse represents a unit in API responses
type UnitResponse struct {
	UnitNumber      string          `json:"unit_number"`
	Bedrooms        int             `json:"bedrooms"`
	Bathrooms       decimal.Decimal `json:"bathrooms"`
	Rent            decimal.Decimal `json:"rent"`
	IsOccupied      bool            `json:"is_occupied"`
	CurrentTenantID *uuid.UUID      `json:"current_tenant_id,omitempty"`
}

// PropertyResponse represents a property in API responses
type PropertyResponse struct {
	ID              uuid.UUID              `json:"id"`
	OwnerID         uuid.UUID              `json:"owner_id"`
	Name            string                 `json:"name"`
	Address         valueobject.AddressDTO `json:"address"`
	FullAddress     string                 `json:"full_address"`
	PropertyType    string                 `json:"property_type"`
	Description     string                 `json:"description"`
	Units           []UnitResponse         `json:"units"`
	TotalUnits      int                    `json:"total_units"`
	OccupiedUnits   int                    `json:"occupied_units"`
	IsFullyOccupied bool                   `json:"is_fully_occupied"`
	MonthlyRentRoll decimal.Decimal        `json:"monthly_rent_roll"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
	Version         int                    `json:"version"`
}

// PropertyListItemResponse represents a property list item
type PropertyListItemResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	City            string    `json:"city"`
	FullAddress     string    `json:"full_address"`
	PropertyType    string    `json:"property_type"`
	TotalUnits      int       `json:"total_units"`
	OccupiedUnits   int       `json:"occupied_units"`
	IsFullyOccupied bool      `json:"is_fully_occupied"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ToPropertyResponse converts a domain Property to PropertyResponse
func ToPropertyResponse(p *property.Property) PropertyResponse {
	units := make([]UnitResponse, 0, len(p.Units))
	for _, u := range p.Units {
		units = append(units, UnitResponse{
			UnitNumber:      u.UnitNumber,
			Bedrooms:        u.Bedrooms,
			Bathrooms:       u.Bathrooms,
			Rent:            u.Rent,
			IsOccupied:      u.IsOccupied,
			CurrentTenantID: u.CurrentTenantID,
		})
	}
	return PropertyResponse{
		ID:              p.ID,
		OwnerID:         p.OwnerID,
		Name:            p.Name,
		Address:         p.Address.ToDTO(),
		FullAddress:     p.Address.FullAddress(),
		PropertyType:    string(p.Type),
		Description:     p.Description,
		Units:           units,
		TotalUnits:      len(p.Units),
		OccupiedUnits:   p.OccupiedUnitCount(),
		IsFullyOccupied: p.IsFullyOccupied(),
		MonthlyRentRoll: p.MonthlyRentRoll(),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
		Version:         p.Version,
	}
}

// ToPropertyListItemResponse converts a domain Property to PropertyListItemResponse
func ToPropertyListItemResponse(p *property.Property) PropertyListItemResponse {
	return PropertyListItemResponse{
		ID:              p.ID,
		Name:            p.Name,
		City:            p.Address.City(),
		FullAddress:     p.Address.FullAddress(),
		PropertyType:    string(p.Type),
		TotalUnits:      len(p.Units),
		OccupiedUnits:   p.OccupiedUnitCount(),
		IsFullyOccupied: p.IsFullyOccupied(),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
