package property

import (
	"strings"
	"time"

	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/shared"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PropertyType represents the kind of building
type PropertyType string

const (
	PropertyTypeApartment  PropertyType = "apartment"
	PropertyTypeHouse      PropertyType = "house"
	PropertyTypeCondo      PropertyType = "condo"
	PropertyTypeTownhouse  PropertyType = "townhouse"
	PropertyTypeCommercial PropertyType = "commercial"
)

// IsValid checks if the property type is valid
func (t PropertyType) IsValid() bool {
	switch t {
	case PropertyTypeApartment, PropertyTypeHouse, PropertyTypeCondo, PropertyTypeTownhouse, PropertyTypeCommercial:
		return true
	}
	return false
}

// Unit is a rentable sub-division of a property.
// IsOccupied is true iff CurrentTenantID references the tenant whose lease
// points at this property and unit number.
type Unit struct {
	UnitNumber      string
	Bedrooms        int
	Bathrooms       decimal.Decimal
	Rent            decimal.Decimal
	IsOccupied      bool
	CurrentTenantID *uuid.UUID
}

// UnitSpec carries the editable attributes of a unit
type UnitSpec struct {
	UnitNumber string
	Bedrooms   int
	Bathrooms  decimal.Decimal
	Rent       decimal.Decimal
}

// Property is the aggregate root for a managed building and its units
type Property struct {
	shared.OwnedAggregateRoot
	Name        string
	Address     valueobject.Address
	Type        PropertyType
	Description string
	Units       []Unit
}

// NewProperty creates a new property owned by ownerID
func NewProperty(ownerID uuid.UUID, name string, address valueobject.Address, propertyType PropertyType, units ...UnitSpec) (*Property, error) {
	if ownerID == uuid.Nil {
		return nil, shared.InvalidInput("Owner is required")
	}
	if err := validateName(name); err != nil {
		return nil, err
	}
	if address.IsEmpty() {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Address is required")
	}
	if !propertyType.IsValid() {
		return nil, shared.NewDomainError("INVALID_PROPERTY_TYPE", "Invalid property type")
	}

	p := &Property{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		Name:               strings.TrimSpace(name),
		Address:            address,
		Type:               propertyType,
		Units:              make([]Unit, 0, len(units)),
	}

	for _, spec := range units {
		if err := p.addUnit(spec); err != nil {
			return nil, err
		}
	}

	p.AddDomainEvent(NewPropertyCreatedEvent(p))

	return p, nil
}

// Update updates the descriptive fields of the property
func (p *Property) Update(name string, address valueobject.Address, propertyType PropertyType, description string) error {
	if err := validateName(name); err != nil {
		return err
	}
	if address.IsEmpty() {
		return shared.NewDomainError("INVALID_ADDRESS", "Address is required")
	}
	if !propertyType.IsValid() {
		return shared.NewDomainError("INVALID_PROPERTY_TYPE", "Invalid property type")
	}
	if len(description) > 2000 {
		return shared.InvalidInput("Description cannot exceed 2000 characters")
	}

	p.Name = strings.TrimSpace(name)
	p.Address = address
	p.Type = propertyType
	p.Description = description
	p.touch()

	p.AddDomainEvent(NewPropertyUpdatedEvent(p))

	return nil
}

// SetDescription sets the free-text description
func (p *Property) SetDescription(description string) error {
	if len(description) > 2000 {
		return shared.InvalidInput("Description cannot exceed 2000 characters")
	}
	p.Description = description
	p.touch()
	return nil
}

// AddUnit adds a new vacant unit
func (p *Property) AddUnit(spec UnitSpec) error {
	if err := p.addUnit(spec); err != nil {
		return err
	}
	p.touch()
	p.AddDomainEvent(NewPropertyUpdatedEvent(p))
	return nil
}

func (p *Property) addUnit(spec UnitSpec) error {
	number := strings.TrimSpace(spec.UnitNumber)
	if err := validateUnitSpec(number, spec); err != nil {
		return err
	}
	if _, ok := p.FindUnit(number); ok {
		return shared.NewDomainError(shared.CodeConflict, "Unit number "+number+" already exists in this property")
	}

	p.Units = append(p.Units, Unit{
		UnitNumber: number,
		Bedrooms:   spec.Bedrooms,
		Bathrooms:  spec.Bathrooms,
		Rent:       spec.Rent,
	})
	return nil
}

// UpdateUnit changes the layout and rent of an existing unit.
// Occupancy is only changed through OccupyUnit and ReleaseUnit.
func (p *Property) UpdateUnit(unitNumber string, spec UnitSpec) error {
	idx := p.unitIndex(unitNumber)
	if idx < 0 {
		return shared.NotFound("Unit not found")
	}
	if err := validateUnitSpec(unitNumber, spec); err != nil {
		return err
	}

	p.Units[idx].Bedrooms = spec.Bedrooms
	p.Units[idx].Bathrooms = spec.Bathrooms
	p.Units[idx].Rent = spec.Rent
	p.touch()
	p.AddDomainEvent(NewPropertyUpdatedEvent(p))
	return nil
}

// RemoveUnit removes a vacant unit
func (p *Property) RemoveUnit(unitNumber string) error {
	idx := p.unitIndex(unitNumber)
	if idx < 0 {
		return shared.NotFound("Unit not found")
	}
	if p.Units[idx].IsOccupied {
		return shared.Conflict("Cannot remove an occupied unit")
	}

	p.Units = append(p.Units[:idx], p.Units[idx+1:]...)
	p.touch()
	p.AddDomainEvent(NewPropertyUpdatedEvent(p))
	return nil
}

// FindUnit returns the unit whose number exactly equals unitNumber
func (p *Property) FindUnit(unitNumber string) (*Unit, bool) {
	idx := p.unitIndex(unitNumber)
	if idx < 0 {
		return nil, false
	}
	return &p.Units[idx], true
}

func (p *Property) unitIndex(unitNumber string) int {
	for i := range p.Units {
		if p.Units[i].UnitNumber == unitNumber {
			return i
		}
	}
	return -1
}

// OccupyUnit assigns tenantID to a vacant unit
func (p *Property) OccupyUnit(unitNumber string, tenantID uuid.UUID) error {
	unit, ok := p.FindUnit(unitNumber)
	if !ok {
		return ErrUnitNotFound
	}
	if unit.IsOccupied {
		return ErrUnitOccupied
	}

	id := tenantID
	unit.IsOccupied = true
	unit.CurrentTenantID = &id
	p.touch()

	p.AddDomainEvent(NewUnitOccupiedEvent(p, unitNumber, tenantID))
	return nil
}

// ReleaseUnit vacates a unit held by tenantID.
// It reports false when the unit is missing or held by someone else.
func (p *Property) ReleaseUnit(unitNumber string, tenantID uuid.UUID) bool {
	unit, ok := p.FindUnit(unitNumber)
	if !ok || !unit.IsOccupied || unit.CurrentTenantID == nil || *unit.CurrentTenantID != tenantID {
		return false
	}

	unit.IsOccupied = false
	unit.CurrentTenantID = nil
	p.touch()

	p.AddDomainEvent(NewUnitReleasedEvent(p, unitNumber, tenantID))
	return true
}

// EnsureDeletable fails while any unit still has a live tenancy
func (p *Property) EnsureDeletable() error {
	if p.OccupiedUnitCount() > 0 {
		return shared.Conflict("Property has occupied units; end those tenancies first")
	}
	return nil
}

// OccupiedUnitCount returns how many units are occupied
func (p *Property) OccupiedUnitCount() int {
	n := 0
	for _, u := range p.Units {
		if u.IsOccupied {
			n++
		}
	}
	return n
}

// VacantUnitCount returns how many units are vacant
func (p *Property) VacantUnitCount() int {
	return len(p.Units) - p.OccupiedUnitCount()
}

// IsFullyOccupied reports whether the property has units and all are let
func (p *Property) IsFullyOccupied() bool {
	return len(p.Units) > 0 && p.OccupiedUnitCount() == len(p.Units)
}

// MonthlyRentRoll sums the rent of all occupied units
func (p *Property) MonthlyRentRoll() decimal.Decimal {
	total := decimal.Zero
	for _, u := range p.Units {
		if u.IsOccupied {
			total = total.Add(u.Rent)
		}
	}
	return total
}

func (p *Property) touch() {
	p.Touch(time.Now())
	p.IncrementVersion()
}

// Domain errors specific to properties
var (
	ErrPropertyNotFound = shared.NotFound("Property not found")
	ErrUnitNotFound     = shared.NotFound("Unit not found in property")
	ErrUnitOccupied     = shared.Conflict("Unit is already occupied")
)

func validateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Property name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Property name cannot exceed 200 characters")
	}
	return nil
}

func validateUnitSpec(number string, spec UnitSpec) error {
	if number == "" {
		return shared.NewDomainError("INVALID_UNIT", "Unit number cannot be empty")
	}
	if len(number) > 50 {
		return shared.NewDomainError("INVALID_UNIT", "Unit number cannot exceed 50 characters")
	}
	if spec.Bedrooms < 0 {
		return shared.NewDomainError("INVALID_UNIT", "Bedrooms cannot be negative")
	}
	if spec.Bathrooms.IsNegative() {
		return shared.NewDomainError("INVALID_UNIT", "Bathrooms cannot be negative")
	}
	if spec.Rent.IsNegative() {
		return shared.NewDomainError("INVALID_UNIT", "Rent cannot be negative")
	}
	return nil
}
