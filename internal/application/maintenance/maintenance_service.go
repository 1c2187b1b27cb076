package maintenance

import (
	"context"
	"time"

	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/access"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/maintenance"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/property"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/shared"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/tenant"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MaintenanceService handles maintenance ticket operations
type MaintenanceService struct {
	requestRepo  maintenance.MaintenanceRequestRepository
	propertyRepo property.PropertyRepository
	tenantRepo   tenant.TenantRepository
	policy       access.Policy
	logger       *zap.Logger
	now          func() time.Time

	eventPublisher shared.EventPublisher
}

// NewMaintenanceService creates a new MaintenanceService
func NewMaintenanceService(
	requestRepo maintenance.MaintenanceRequestRepository,
	propertyRepo property.PropertyRepository,
	tenantRepo tenant.TenantRepository,
	policy access.Policy,
	logger *zap.Logger,
) *MaintenanceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MaintenanceService{
		requestRepo:  requestRepo,
		propertyRepo: propertyRepo,
		tenantRepo:   tenantRepo,
		policy:       policy,
		logger:       logger,
		now:          time.Now,
	}
}

// SetEventPublisher sets the event publisher for domain events
func (s *MaintenanceService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create opens a ticket on a property the caller owns. A unit, when given,
// must exist in the property; a tenant, when given, must belong to the caller.
func (s *MaintenanceService) Create(ctx context.Context, ownerID uuid.UUID, req CreateRequestRequest) (*RequestResponse, error) {
	prop, err := s.propertyRepo.FindByID(ctx, req.PropertyID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.Authorize(ownerID, prop); err != nil {
		return nil, err
	}
	if req.Unit != "" {
		if _, ok := prop.FindUnit(req.Unit); !ok {
			return nil, property.ErrUnitNotFound
		}
	}

	r, err := maintenance.NewMaintenanceRequest(ownerID, prop.ID, req.Unit, req.Title, req.Description, maintenance.Priority(req.Priority))
	if err != nil {
		return nil, err
	}
	if req.TenantID != nil {
		t, err := s.tenantRepo.FindByID(ctx, *req.TenantID)
		if err != nil {
			return nil, err
		}
		if err := s.policy.Authorize(ownerID, t); err != nil {
			return nil, err
		}
		r.AssignTenant(t.ID)
	}

	if err := s.requestRepo.Create(ctx, r); err != nil {
		return nil, err
	}

	s.logger.Info("Maintenance request created",
		zap.String("request_id", r.ID.String()),
		zap.String("property_id", prop.ID.String()),
		zap.String("priority", string(r.Priority)),
		zap.String("owner_id", ownerID.String()))
	s.publishDomainEvents(ctx, r)

	response := ToRequestResponse(r)
	return &response, nil
}

// GetByID returns one ticket
func (s *MaintenanceService) GetByID(ctx context.Context, callerID, id uuid.UUID) (*RequestResponse, error) {
	r, err := s.load(ctx, callerID, id)
	if err != nil {
		return nil, err
	}
	response := ToRequestResponse(r)
	return &response, nil
}

// List lists the caller's tickets
func (s *MaintenanceService) List(ctx context.Context, callerID uuid.UUID, filter RequestListFilter) ([]RequestResponse, int64, error) {
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
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.Priority != "" {
		domainFilter.Filters["priority"] = filter.Priority
	}
	if filter.PropertyID != "" {
		propertyID, err := uuid.Parse(filter.PropertyID)
		if err != nil {
			return nil, 0, shared.InvalidInput("Invalid property ID")
		}
		domainFilter.Filters["property_id"] = propertyID
	}

	requests, total, err := s.requestRepo.FindAll(ctx, access.ScopeToCaller(callerID, domainFilter))
	if err != nil {
		return nil, 0, err
	}
	items := make([]RequestResponse, 0, len(requests))
	for i := range requests {
		items = append(items, ToRequestResponse(&requests[i]))
	}
	return items, total, nil
}

// Update edits title, description and priority
func (s *MaintenanceService) Update(ctx context.Context, callerID, id uuid.UUID, req UpdateRequestRequest) (*RequestResponse, error) {
	return s.mutate(ctx, callerID, id, func(r *maintenance.MaintenanceRequest) error {
		priority := maintenance.Priority(req.Priority)
		if priority == "" {
			priority = r.Priority
		}
		return r.Update(req.Title, req.Description, priority)
	})
}

// Schedule books a contractor appointment
func (s *MaintenanceService) Schedule(ctx context.Context, callerID, id uuid.UUID, req ScheduleRequest) (*RequestResponse, error) {
	return s.mutate(ctx, callerID, id, func(r *maintenance.MaintenanceRequest) error {
		return r.Schedule(req.AppointmentAt, s.now())
	})
}

// Start marks work as in progress
func (s *MaintenanceService) Start(ctx context.Context, callerID, id uuid.UUID) (*RequestResponse, error) {
	return s.mutate(ctx, callerID, id, func(r *maintenance.MaintenanceRequest) error {
		return r.Start()
	})
}

// Resolve closes a ticket as fixed
func (s *MaintenanceService) Resolve(ctx context.Context, callerID, id uuid.UUID, req ResolveRequest) (*RequestResponse, error) {
	return s.mutate(ctx, callerID, id, func(r *maintenance.MaintenanceRequest) error {
		return r.Resolve(req.Notes, s.now())
	})
}

// Cancel closes a ticket without a fix
func (s *MaintenanceService) Cancel(ctx context.Context, callerID, id uuid.UUID, req CancelRequest) (*RequestResponse, error) {
	return s.mutate(ctx, callerID, id, func(r *maintenance.MaintenanceRequest) error {
		return r.Cancel(req.Reason)
	})
}

// Delete removes a ticket
func (s *MaintenanceService) Delete(ctx context.Context, callerID, id uuid.UUID) error {
	r, err := s.load(ctx, callerID, id)
	if err != nil {
		return err
	}
	if err := s.requestRepo.Delete(ctx, r.ID); err != nil {
		return err
	}
	s.logger.Info("Maintenance request deleted",
		zap.String("request_id", r.ID.String()),
		zap.String("owner_id", callerID.String()))
	return nil
}

func (s *MaintenanceService) mutate(ctx context.Context, callerID, id uuid.UUID, fn func(*maintenance.MaintenanceRequest) error) (*RequestResponse, error) {
	r, err := s.load(ctx, callerID, id)
	if err != nil {
		return nil, err
	}
	if err := fn(r); err != nil {
		return nil, err
	}
	if err := s.requestRepo.Save(ctx, r); err != nil {
		return nil, err
	}
	s.publishDomainEvents(ctx, r)
	response := ToRequestResponse(r)
	return &response, nil
}

func (s *MaintenanceService) load(ctx context.Context, callerID, id uuid.UUID) (*maintenance.MaintenanceRequest, error) {
	r, err := s.requestRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.policy.Authorize(callerID, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *MaintenanceService) publishDomainEvents(ctx context.Context, r *maintenance.MaintenanceRequest) {
	if s.eventPublisher == nil {
		return
	}
	events := r.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	r.ClearDomainEvents()
}
