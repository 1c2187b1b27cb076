package tenant

import (
	"context"
	"strings"

	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/application/tenancy"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/access"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/shared"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/tenant"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrMoveOutViaUpdate is returned when an update tries to set moveout directly
var ErrMoveOutViaUpdate = shared.NewDomainError("INVALID_STATUS", "Use the move-out operation to move a tenant out")

// TenantService handles tenant reads, edits and payments. Creating, deleting
// and moving out go through tenancy.TenancyService.
type TenantService struct {
	tenantRepo tenant.TenantRepository
	scope      tenancy.TransactionScope
	policy     access.Policy
	logger     *zap.Logger

	eventPublisher  shared.EventPublisher
	businessMetrics *telemetry.BusinessMetrics
}

// NewTenantService creates a new TenantService
func NewTenantService(
	tenantRepo tenant.TenantRepository,
	scope tenancy.TransactionScope,
	policy access.Policy,
	logger *zap.Logger,
) *TenantService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TenantService{
		tenantRepo: tenantRepo,
		scope:      scope,
		policy:     policy,
		logger:     logger,
	}
}

// SetEventPublisher sets the event publisher for domain events
func (s *TenantService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetBusinessMetrics sets the business metrics for payment counters
func (s *TenantService) SetBusinessMetrics(bm *telemetry.BusinessMetrics) {
	s.businessMetrics = bm
}

// GetByID returns a tenant with its payment history
func (s *TenantService) GetByID(ctx context.Context, callerID, id uuid.UUID) (*TenantResponse, error) {
	t, err := s.load(ctx, callerID, id)
	if err != nil {
		return nil, err
	}
	response := ToTenantResponse(t)
	return &response, nil
}

// List lists the caller's tenants
func (s *TenantService) List(ctx context.Context, callerID uuid.UUID, filter TenantListFilter) ([]TenantListItemResponse, int64, error) {
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
	if filter.PropertyID != "" {
		propertyID, err := uuid.Parse(filter.PropertyID)
		if err != nil {
			return nil, 0, shared.InvalidInput("Invalid property ID")
		}
		domainFilter.Filters["property_id"] = propertyID
	}

	tenants, total, err := s.tenantRepo.FindAll(ctx, access.ScopeToCaller(callerID, domainFilter))
	if err != nil {
		return nil, 0, err
	}
	items := make([]TenantListItemResponse, 0, len(tenants))
	for i := range tenants {
		items = append(items, ToTenantListItemResponse(&tenants[i]))
	}
	return items, total, nil
}

// Update edits contact details, notes and status
func (s *TenantService) Update(ctx context.Context, callerID, id uuid.UUID, req UpdateTenantRequest) (*TenantResponse, error) {
	status := tenant.Status(strings.TrimSpace(req.Status))
	if status == tenant.StatusMoveOut {
		return nil, ErrMoveOutViaUpdate
	}

	t, err := s.load(ctx, callerID, id)
	if err != nil {
		return nil, err
	}

	if contact, changed := mergeContact(t, req); changed {
		if err := t.UpdateContact(contact); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		if err := t.SetNotes(*req.Notes); err != nil {
			return nil, err
		}
	}
	if status != "" {
		if err := t.ChangeStatus(status); err != nil {
			return nil, err
		}
	}

	if err := s.tenantRepo.Save(ctx, t); err != nil {
		return nil, err
	}
	s.publishDomainEvents(ctx, t)
	response := ToTenantResponse(t)
	return &response, nil
}

// ExtendLease moves the lease end date and optionally the rent
func (s *TenantService) ExtendLease(ctx context.Context, callerID, id uuid.UUID, req ExtendLeaseRequest) (*TenantResponse, error) {
	t, err := s.load(ctx, callerID, id)
	if err != nil {
		return nil, err
	}
	if err := t.ExtendLease(req.EndDate, req.RentAmount); err != nil {
		return nil, err
	}
	if err := s.tenantRepo.Save(ctx, t); err != nil {
		return nil, err
	}
	s.publishDomainEvents(ctx, t)
	response := ToTenantResponse(t)
	return &response, nil
}

// RecordPayment appends a payment. The tenant version bump and the payment
// row commit together.
func (s *TenantService) RecordPayment(ctx context.Context, callerID, id uuid.UUID, req RecordPaymentRequest) (*PaymentResponse, error) {
	t, err := s.load(ctx, callerID, id)
	if err != nil {
		return nil, err
	}
	entry, err := t.RecordPayment(tenant.PaymentEntry{
		Amount:    req.Amount,
		PaidAt:    req.PaidAt,
		Method:    tenant.PaymentMethod(strings.TrimSpace(req.Method)),
		Status:    tenant.PaymentStatus(strings.TrimSpace(req.Status)),
		Reference: strings.TrimSpace(req.Reference),
		Notes:     req.Notes,
	})
	if err != nil {
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos tenancy.TransactionalRepositories) error {
		if err := repos.TenantRepo().Save(ctx, t); err != nil {
			return err
		}
		return repos.TenantRepo().AddPayment(ctx, t.ID, entry)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Payment recorded",
		zap.String("tenant_id", t.ID.String()),
		zap.String("payment_id", entry.ID.String()),
		zap.String("amount", entry.Amount.String()),
		zap.String("method", string(entry.Method)),
		zap.String("status", string(entry.Status)))
	if s.businessMetrics != nil {
		s.businessMetrics.RecordPayment(ctx, string(entry.Method), string(entry.Status), entry.Amount)
	}
	s.publishDomainEvents(ctx, t)

	response := ToPaymentResponse(entry)
	return &response, nil
}

// ListPayments returns a tenant's payments ordered by payment date
func (s *TenantService) ListPayments(ctx context.Context, callerID, id uuid.UUID) ([]PaymentResponse, error) {
	t, err := s.load(ctx, callerID, id)
	if err != nil {
		return nil, err
	}
	payments := make([]PaymentResponse, 0, len(t.Payments))
	for i := range t.Payments {
		payments = append(payments, ToPaymentResponse(&t.Payments[i]))
	}
	return payments, nil
}

func (s *TenantService) load(ctx context.Context, callerID, id uuid.UUID) (*tenant.Tenant, error) {
	t, err := s.tenantRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.policy.Authorize(callerID, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TenantService) publishDomainEvents(ctx context.Context, t *tenant.Tenant) {
	if s.eventPublisher == nil {
		return
	}
	events := t.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	t.ClearDomainEvents()
}

// mergeContact overlays the non-empty request fields on the current contact
func mergeContact(t *tenant.Tenant, req UpdateTenantRequest) (tenant.Contact, bool) {
	contact := tenant.Contact{
		FirstName:        t.FirstName,
		LastName:         t.LastName,
		Email:            t.Email,
		Phone:            t.Phone,
		EmergencyContact: t.EmergencyContact,
	}
	changed := false
	if v := strings.TrimSpace(req.FirstName); v != "" {
		contact.FirstName = v
		changed = true
	}
	if v := strings.TrimSpace(req.LastName); v != "" {
		contact.LastName = v
		changed = true
	}
	if v := strings.TrimSpace(req.Email); v != "" {
		contact.Email = v
		changed = true
	}
	if req.Phone != nil {
		contact.Phone = *req.Phone
		changed = true
	}
	if req.EmergencyContact != nil {
		contact.EmergencyContact = req.EmergencyContact.toDomain()
		changed = true
	}
	return contact, changed
}
