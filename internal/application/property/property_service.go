package property

import (
	"context"

	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/access"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/property"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/shared"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/shared/valueobject"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/tenant"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PropertyService handles property and unit operations for an owner
type PropertyService struct {
	propertyRepo   property.PropertyRepository
	tenantRepo     tenant.TenantRepository
	policy         access.Policy
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewPropertyService creates a new PropertyService
func NewPropertyService(
	propertyRepo property.PropertyRepository,
	tenantRepo tenant.TenantRepository,
	policy access.Policy,
	logger *zap.Logger,
) *PropertyService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PropertyService{
		propertyRepo: propertyRepo,
		tenantRepo:   tenantRepo,
		policy:       policy,
		logger:       logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *PropertyService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a property owned by ownerID
func (s *PropertyService) Create(ctx context.Context, ownerID uuid.UUID, req CreatePropertyRequest) (*PropertyResponse, error) {
	address, err := toAddress(req.Address)
	if err != nil {
		return nil, err
	}
	specs := make([]property.UnitSpec, 0, len(req.Units))
	for _, u := range req.Units {
		specs = append(specs, u.spec())
	}

	p, err := property.NewProperty(ownerID, req.Name, address, property.PropertyType(req.PropertyType), specs...)
	if err != nil {
		return nil, err
	}
	if req.Description != "" {
		if err := p.SetDescription(req.Description); err != nil {
			return nil, err
		}
	}

	if err := s.propertyRepo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("Property created",
		zap.String("property_id", p.ID.String()),
		zap.String("owner_id", ownerID.String()),
		zap.Int("units", len(p.Units)))

	s.publishDomainEvents(ctx, p)
	response := ToPropertyResponse(p)
	return &response, nil
}

// GetByID returns a property the caller owns
func (s *PropertyService) GetByID(ctx context.Context, callerID, id uuid.UUID) (*PropertyResponse, error) {
	p, err := s.load(ctx, callerID, id)
	if err != nil {
		return nil, err
	}
	response := ToPropertyResponse(p)
	return &response, nil
}

// List lists the caller's properties
func (s *PropertyService) List(ctx context.Context, callerID uuid.UUID, filter PropertyListFilter) ([]PropertyListItemResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search
	if filter.PropertyType != "" {
		domainFilter.Filters["property_type"] = filter.PropertyType
	}

	properties, total, err := s.propertyRepo.FindAll(ctx, access.ScopeToCaller(callerID, domainFilter))
	if err != nil {
		return nil, 0, err
	}

	items := make([]PropertyListItemResponse, 0, len(properties))
	for i := range properties {
		items = append(items, ToPropertyListItemResponse(&properties[i]))
	}
	return items, total, nil
}

// Update updates a property's descriptive fields
func (s *PropertyService) Update(ctx context.Context, callerID, id uuid.UUID, req UpdatePropertyRequest) (*PropertyResponse, error) {
	p, err := s.load(ctx, callerID, id)
	if err != nil {
		return nil, err
	}
	address, err := toAddress(req.Address)
	if err != nil {
		return nil, err
	}
	if err := p.Update(req.Name, address, property.PropertyType(req.PropertyType), req.Description); err != nil {
		return nil, err
	}
	return s.save(ctx, p)
}

// Delete deletes a property that has no live tenancy
func (s *PropertyService) Delete(ctx context.Context, callerID, id uuid.UUID) error {
	p, err := s.load(ctx, callerID, id)
	if err != nil {
		return err
	}
	if err := p.EnsureDeletable(); err != nil {
		return err
	}
	if s.tenantRepo != nil {
		count, err := s.tenantRepo.CountByProperty(ctx, p.ID)
		if err != nil {
			return err
		}
		if count > 0 {
			return shared.Conflict("Property still has tenants; move them out or delete them first")
		}
	}

	if err := s.propertyRepo.Delete(ctx, p); err != nil {
		return err
	}

	s.logger.Info("Property deleted",
		zap.String("property_id", p.ID.String()),
		zap.String("owner_id", callerID.String()))

	p.AddDomainEvent(property.NewPropertyDeletedEvent(p))
	s.publishDomainEvents(ctx, p)
	return nil
}

// AddUnit adds a vacant unit to a property
func (s *PropertyService) AddUnit(ctx context.Context, callerID, id uuid.UUID, req UnitInput) (*PropertyResponse, error) {
	p, err := s.load(ctx, callerID, id)
	if err != nil {
		return nil, err
	}
	if err := p.AddUnit(req.spec()); err != nil {
		return nil, err
	}
	return s.save(ctx, p)
}

// UpdateUnit changes a unit's layout and rent
func (s *PropertyService) UpdateUnit(ctx context.Context, callerID, id uuid.UUID, unitNumber string, req UpdateUnitRequest) (*PropertyResponse, error) {
	p, err := s.load(ctx, callerID, id)
	if err != nil {
		return nil, err
	}
	err = p.UpdateUnit(unitNumber, property.UnitSpec{
		UnitNumber: unitNumber,
		Bedrooms:   req.Bedrooms,
		Bathrooms:  req.Bathrooms,
		Rent:       req.Rent,
	})
	if err != nil {
		return nil, err
	}
	return s.save(ctx, p)
}

// RemoveUnit removes a vacant unit
func (s *PropertyService) RemoveUnit(ctx context.Context, callerID, id uuid.UUID, unitNumber string) (*PropertyResponse, error) {
	p, err := s.load(ctx, callerID, id)
	if err != nil {
		return nil, err
	}
	if err := p.RemoveUnit(unitNumber); err != nil {
		return nil, err
	}
	return s.save(ctx, p)
}

func (s *PropertyService) load(ctx context.Context, callerID, id uuid.UUID) (*property.Property, error) {
	p, err := s.propertyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.policy.Authorize(callerID, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PropertyService) save(ctx context.Context, p *property.Property) (*PropertyResponse, error) {
	if err := s.propertyRepo.Save(ctx, p); err != nil {
		return nil, err
	}
	s.publishDomainEvents(ctx, p)
	response := ToPropertyResponse(p)
	return &response, nil
}

func (s *PropertyService) publishDomainEvents(ctx context.Context, p *property.Property) {
	if s.eventPublisher == nil {
		return
	}
	events := p.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	// Publish errors are logged by the event bus
	_ = s.eventPublisher.Publish(ctx, events...)
	p.ClearDomainEvents()
}

func toAddress(dto valueobject.AddressDTO) (valueobject.Address, error) {
	address, err := dto.ToAddress()
	if err != nil {
		return valueobject.Address{}, shared.NewDomainError("INVALID_ADDRESS", err.Error())
	}
	return address, nil
}
