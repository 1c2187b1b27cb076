package valueobject

import (
	"fmt"
	"strings"
)

// Address is a value object representing a street address.
// It is immutable; the With* methods return new instances.
type Address struct {
	street     string
	city       string
	state      string
	postalCode string
	country    string
}

// AddressOption is a functional option for configuring Address
type AddressOption func(*Address)

// WithPostalCode sets the postal code for the address
func WithPostalCode(postalCode string) AddressOption {
	return func(a *Address) {
		a.postalCode = strings.TrimSpace(postalCode)
	}
}

// WithCountry sets the country for the address
func WithCountry(country string) AddressOption {
	return func(a *Address) {
		a.country = strings.TrimSpace(country)
	}
}

// NewAddress creates a new Address.
// Street and city are required; state, postal code and country are optional.
func NewAddress(street, city, state string, opts ...AddressOption) (Address, error) {
	addr := Address{
		street: strings.TrimSpace(street),
		city:   strings.TrimSpace(city),
		state:  strings.TrimSpace(state),
	}
	for _, opt := range opts {
		opt(&addr)
	}

	if err := addr.validate(); err != nil {
		return Address{}, err
	}
	return addr, nil
}

// MustNewAddress creates a new Address, panics on error
func MustNewAddress(street, city, state string, opts ...AddressOption) Address {
	addr, err := NewAddress(street, city, state, opts...)
	if err != nil {
		panic(err)
	}
	return addr
}

func (a Address) validate() error {
	if a.street == "" {
		return fmt.Errorf("street cannot be empty")
	}
	if len(a.street) > 300 {
		return fmt.Errorf("street cannot exceed 300 characters")
	}
	if a.city == "" {
		return fmt.Errorf("city cannot be empty")
	}
	if len(a.city) > 100 {
		return fmt.Errorf("city cannot exceed 100 characters")
	}
	if len(a.state) > 100 {
		return fmt.Errorf("state cannot exceed 100 characters")
	}
	if len(a.postalCode) > 20 {
		return fmt.Errorf("postal code cannot exceed 20 characters")
	}
	if len(a.country) > 100 {
		return fmt.Errorf("country cannot exceed 100 characters")
	}
	return nil
}

// Street returns the street line
func (a Address) Street() string { return a.street }

// City returns the city
func (a Address) City() string { return a.city }

// State returns the state, province or region
func (a Address) State() string { return a.state }

// PostalCode returns the postal code
func (a Address) PostalCode() string { return a.postalCode }

// Country returns the country
func (a Address) Country() string { return a.country }

// IsEmpty returns true if the address is empty
func (a Address) IsEmpty() bool {
	return a.street == "" && a.city == ""
}

// FullAddress returns the single-line formatted address
// Format: Street, City, State PostalCode, Country
func (a Address) FullAddress() string {
	if a.IsEmpty() {
		return ""
	}

	parts := []string{a.street, a.city}
	region := strings.TrimSpace(a.state + " " + a.postalCode)
	if region != "" {
		parts = append(parts, region)
	}
	if a.country != "" {
		parts = append(parts, a.country)
	}
	return strings.Join(parts, ", ")
}

// String returns a string representation of the address
func (a Address) String() string {
	return a.FullAddress()
}

// Equals returns true if both addresses are equal
func (a Address) Equals(other Address) bool {
	return a == other
}

// SameCity returns true if both addresses are in the same city and state
func (a Address) SameCity(other Address) bool {
	return strings.EqualFold(a.city, other.city) && strings.EqualFold(a.state, other.state)
}

// WithStreet returns a new Address with the updated street
func (a Address) WithStreet(street string) (Address, error) {
	return NewAddress(street, a.city, a.state, WithPostalCode(a.postalCode), WithCountry(a.country))
}

// WithCity returns a new Address with the updated city
func (a Address) WithCity(city string) (Address, error) {
	return NewAddress(a.street, city, a.state, WithPostalCode(a.postalCode), WithCountry(a.country))
}

// AddressDTO is a data transfer object for persistence and transport
type AddressDTO struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country,omitempty"`
}

// ToDTO converts Address to AddressDTO
func (a Address) ToDTO() AddressDTO {
	return AddressDTO{
		Street:     a.street,
		City:       a.city,
		State:      a.state,
		PostalCode: a.postalCode,
		Country:    a.country,
	}
}

// ToAddress converts AddressDTO back to Address
func (dto AddressDTO) ToAddress() (Address, error) {
	return NewAddress(dto.Street, dto.City, dto.State, WithPostalCode(dto.PostalCode), WithCountry(dto.Country))
}

// Unchecked rebuilds an Address from stored values without validation.
// Persistence uses it so that legacy rows never fail to load.
func (dto AddressDTO) Unchecked() Address {
	return Address{
		street:     dto.Street,
		city:       dto.City,
		state:      dto.State,
		postalCode: dto.PostalCode,
		country:    dto.Country,
	}
}
