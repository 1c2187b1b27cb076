// Package tenancy keeps Tenant records and Unit occupancy consistent.
//
// Every write that binds or unbinds a tenant and a unit goes through
// TenancyService, which serializes work per unit with a shared.Locker and
// commits the tenant and unit rows in a single TransactionScope.
package tenancy

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/access"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/property"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/shared"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/tenant"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/infrastructure/logger"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// End kinds reported on TenancyEnded metrics
const (
	EndKindDelete  = "delete"
	EndKindMoveOut = "moveout"
)

// CreateTenancyInput is the tenant draft submitted by an owner
type CreateTenancyInput struct {
	FirstName        string
	LastName         string
	Email            string
	Phone            string
	EmergencyContact tenant.EmergencyContact
	Notes            string

	PropertyID      uuid.UUID
	UnitNumber      string
	StartDate       time.Time
	EndDate         time.Time
	RentAmount      decimal.Decimal // zero means "use the unit rent"
	SecurityDeposit decimal.Decimal
}

// EndTenancyResult describes how a tenancy teardown went
type EndTenancyResult struct {
	Tenant       *tenant.Tenant
	UnitReleased bool
}

// TenancyService creates and ends tenancies
type TenancyService struct {
	scope   TransactionScope
	tenants tenant.TenantRepository
	locker  shared.Locker
	policy  access.Policy
	logger  *zap.Logger

	eventPublisher  shared.EventPublisher
	businessMetrics *telemetry.BusinessMetrics
}

// NewTenancyService creates a new TenancyService.
// tenants is used for reads outside the transaction scope.
func NewTenancyService(
	scope TransactionScope,
	tenants tenant.TenantRepository,
	locker shared.Locker,
	policy access.Policy,
	logger *zap.Logger,
) *TenancyService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TenancyService{
		scope:   scope,
		tenants: tenants,
		locker:  locker,
		policy:  policy,
		logger:  logger,
	}
}

// SetEventPublisher sets the publisher used after commit
func (s *TenancyService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetBusinessMetrics sets the business metrics for tenancy counters
func (s *TenancyService) SetBusinessMetrics(bm *telemetry.BusinessMetrics) {
	s.businessMetrics = bm
}

// UnitLockKey returns the lock key serializing writes on one unit
func UnitLockKey(propertyID uuid.UUID, unitNumber string) string {
	return "unit:" + propertyID.String() + ":" + unitNumber
}

// CreateTenancy creates a tenant and occupies its unit atomically.
//
// Checks run in this order: the property must exist (NotFound), belong to
// ownerID (Unauthorized), have a unit whose number equals input.UnitNumber
// exactly (NotFound), and that unit must be vacant (Conflict). On any
// failure nothing is written.
func (s *TenancyService) CreateTenancy(ctx context.Context, ownerID uuid.UUID, input CreateTenancyInput) (_ *tenant.Tenant, err error) {
	unitNumber := strings.TrimSpace(input.UnitNumber)
	ctx, span := telemetry.StartServiceSpan(ctx, "tenancy", "create",
		telemetry.AttrPropertyID.String(input.PropertyID.String()),
		telemetry.AttrUnitNumber.String(unitNumber))
	defer func() { telemetry.EndSpan(span, err) }()

	if input.PropertyID == uuid.Nil || unitNumber == "" {
		return nil, s.rejected(ctx, shared.InvalidInput("Property and unit are required"))
	}
	ctx, log := logger.WithUnit(ctx, logger.For(ctx, s.logger), input.PropertyID, unitNumber)

	release, err := s.lockUnit(ctx, input.PropertyID, unitNumber)
	if err != nil {
		log.Warn("Unit lock not acquired", zap.Error(err))
		return nil, s.rejected(ctx, err)
	}
	defer s.releaseLock(log, release)

	var (
		created      *tenant.Tenant
		propertyName string
	)
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		prop, err := repos.PropertyRepo().FindByID(ctx, input.PropertyID)
		if err != nil {
			return err
		}
		if err := s.policy.Authorize(ownerID, prop); err != nil {
			return err
		}
		unit, ok := prop.FindUnit(unitNumber)
		if !ok {
			return property.ErrUnitNotFound
		}
		if unit.IsOccupied {
			return property.ErrUnitOccupied
		}

		rent := input.RentAmount
		if rent.IsZero() {
			rent = unit.Rent
		}
		t, err := tenant.NewTenant(ownerID, tenant.Contact{
			FirstName:        input.FirstName,
			LastName:         input.LastName,
			Email:            input.Email,
			Phone:            input.Phone,
			EmergencyContact: input.EmergencyContact,
		}, tenant.LeaseDetails{
			PropertyID:      prop.ID,
			UnitNumber:      unit.UnitNumber,
			StartDate:       input.StartDate,
			EndDate:         input.EndDate,
			RentAmount:      rent,
			SecurityDeposit: input.SecurityDeposit,
		})
		if err != nil {
			return err
		}
		if input.Notes != "" {
			if err := t.SetNotes(input.Notes); err != nil {
				return err
			}
		}

		if err := repos.TenantRepo().Create(ctx, t); err != nil {
			return fmt.Errorf("create tenant: %w", err)
		}
		// The CAS guards against writers that bypass the unit lock.
		if err := repos.PropertyRepo().OccupyUnit(ctx, prop.ID, unit.UnitNumber, t.ID); err != nil {
			return err
		}

		t.AddDomainEvent(property.NewUnitOccupiedEvent(prop, unit.UnitNumber, t.ID))
		t.AddDomainEvent(tenant.NewTenancyCreatedEvent(t, prop.Name))
		created = t
		propertyName = prop.Name
		return nil
	})
	if err != nil {
		return nil, s.rejected(ctx, err)
	}

	log.Info("Tenancy created",
		logger.TenantID(created.ID),
		logger.OwnerID(ownerID),
		zap.String("property_name", propertyName))

	if s.businessMetrics != nil {
		s.businessMetrics.RecordTenancyCreated(ctx)
	}
	s.publish(ctx, created)
	return created, nil
}

// DeleteTenancy deletes a tenant and, best effort, releases its unit.
//
// The tenant must exist (NotFound) and belong to requesterID
// (Unauthorized). A missing property or unit, or a unit now held by
// someone else, is logged and does not stop the delete.
func (s *TenancyService) DeleteTenancy(ctx context.Context, tenantID, requesterID uuid.UUID) (*EndTenancyResult, error) {
	return s.endTenancy(ctx, tenantID, requesterID, EndKindDelete)
}

// MoveOut marks a tenant as moved out and releases its unit while keeping
// the tenant record and payment history
func (s *TenancyService) MoveOut(ctx context.Context, tenantID, requesterID uuid.UUID) (*EndTenancyResult, error) {
	return s.endTenancy(ctx, tenantID, requesterID, EndKindMoveOut)
}

func (s *TenancyService) endTenancy(ctx context.Context, tenantID, requesterID uuid.UUID, kind string) (_ *EndTenancyResult, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "tenancy", kind,
		telemetry.AttrTenantID.String(tenantID.String()))
	defer func() { telemetry.EndSpan(span, err) }()

	t, err := s.tenants.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.Authorize(requesterID, t); err != nil {
		return nil, err
	}
	if kind == EndKindMoveOut && t.Status == tenant.StatusMoveOut {
		return nil, shared.InvalidState("Tenant has already moved out")
	}

	ctx, log := logger.WithUnit(ctx, logger.For(ctx, s.logger), t.Lease.PropertyID, t.Lease.UnitNumber)
	ctx, log = logger.WithTenant(ctx, log, t.ID)

	release, err := s.lockUnit(ctx, t.Lease.PropertyID, t.Lease.UnitNumber)
	if err != nil {
		return nil, err
	}
	defer s.releaseLock(log, release)

	result := &EndTenancyResult{}
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		// Re-read inside the transaction: the tenant may have changed
		// between the authorization read and acquiring the lock.
		current, err := repos.TenantRepo().FindByID(ctx, tenantID)
		if err != nil {
			return err
		}

		released, err := s.releaseUnit(ctx, repos.PropertyRepo(), current)
		if err != nil {
			return err
		}
		result.UnitReleased = released

		switch kind {
		case EndKindMoveOut:
			if err := current.MarkMovedOut(); err != nil {
				return err
			}
			if err := repos.TenantRepo().Save(ctx, current); err != nil {
				return err
			}
		default:
			if err := repos.TenantRepo().Delete(ctx, current.ID); err != nil {
				return err
			}
		}

		current.AddDomainEvent(tenant.NewTenancyEndedEvent(current, released, kind == EndKindDelete))
		result.Tenant = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("Tenancy ended",
		zap.String("kind", kind),
		zap.Bool("unit_released", result.UnitReleased),
		zap.String("requester_id", requesterID.String()))

	if s.businessMetrics != nil {
		s.businessMetrics.RecordTenancyEnded(ctx, kind, result.UnitReleased)
	}
	s.publish(ctx, result.Tenant)
	return result, nil
}

// releaseUnit vacates the tenant's unit when it still points back at the
// tenant. Orphaned leases are left alone.
func (s *TenancyService) releaseUnit(ctx context.Context, properties property.PropertyRepository, t *tenant.Tenant) (bool, error) {
	log := logger.FromContext(ctx)

	prop, err := properties.FindByID(ctx, t.Lease.PropertyID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			log.Warn("Lease property not found, unit not released")
			return false, nil
		}
		return false, err
	}
	unit, ok := prop.FindUnit(t.Lease.UnitNumber)
	if !ok {
		log.Warn("Lease unit not found, unit not released")
		return false, nil
	}
	if unit.CurrentTenantID == nil || *unit.CurrentTenantID != t.ID {
		log.Warn("Unit is not held by tenant, unit not released")
		return false, nil
	}

	return properties.ReleaseUnit(ctx, prop.ID, unit.UnitNumber, t.ID)
}

// lockUnit acquires the unit lock and records how long it took
func (s *TenancyService) lockUnit(ctx context.Context, propertyID uuid.UUID, unitNumber string) (func() error, error) {
	key := UnitLockKey(propertyID, unitNumber)
	start := time.Now()
	release, err := s.locker.Acquire(ctx, key)
	if s.businessMetrics != nil {
		s.businessMetrics.RecordLockWait(ctx, time.Since(start), err == nil)
	}
	if err != nil {
		return nil, err
	}
	telemetry.AddEvent(ctx, "unit.locked", telemetry.AttrLockKey.String(key))
	return release, nil
}

func (s *TenancyService) releaseLock(log *zap.Logger, release func() error) {
	if err := release(); err != nil {
		log.Warn("Failed to release unit lock", zap.Error(err))
	}
}

func (s *TenancyService) rejected(ctx context.Context, err error) error {
	if s.businessMetrics != nil {
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) {
			s.businessMetrics.RecordTenancyRejected(ctx, domainErr.Code)
		}
	}
	return err
}

func (s *TenancyService) publish(ctx context.Context, t *tenant.Tenant) {
	if s.eventPublisher == nil || t == nil {
		return
	}
	events := t.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		logger.FromContext(ctx).Warn("Failed to publish tenancy events",
			logger.TenantID(t.ID),
			zap.Error(err))
	}
	t.ClearDomainEvents()
}
