// Package dashboard loads the caller's scoped entity lists and aggregates
// them into the dashboard summary.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/access"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/dashboard"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/maintenance"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/messaging"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/property"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/shared"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/tenant"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// loadPageSize is the page size used when walking the caller's lists
const loadPageSize = 500

// SummaryResponse is the dashboard payload
type SummaryResponse struct {
	dashboard.Summary
	UnreadMessages int64 `json:"unread_messages"`
}

// DashboardService builds the dashboard for one owner
type DashboardService struct {
	propertyRepo property.PropertyRepository
	tenantRepo   tenant.TenantRepository
	requestRepo  maintenance.MaintenanceRequestRepository
	messageRepo  messaging.MessageRepository
	logger       *zap.Logger
	now          func() time.Time
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	propertyRepo property.PropertyRepository,
	tenantRepo tenant.TenantRepository,
	requestRepo maintenance.MaintenanceRequestRepository,
	messageRepo messaging.MessageRepository,
	logger *zap.Logger,
) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		propertyRepo: propertyRepo,
		tenantRepo:   tenantRepo,
		requestRepo:  requestRepo,
		messageRepo:  messageRepo,
		logger:       logger,
		now:          time.Now,
	}
}

// Summary aggregates the caller's properties, tenants and tickets
func (s *DashboardService) Summary(ctx context.Context, callerID uuid.UUID) (*SummaryResponse, error) {
	properties, err := loadAll(ctx, callerID, s.propertyRepo.FindAll)
	if err != nil {
		return nil, fmt.Errorf("load properties: %w", err)
	}
	tenants, err := loadAll(ctx, callerID, s.tenantRepo.FindAll)
	if err != nil {
		return nil, fmt.Errorf("load tenants: %w", err)
	}
	requests, err := loadAll(ctx, callerID, s.requestRepo.FindAll)
	if err != nil {
		return nil, fmt.Errorf("load maintenance requests: %w", err)
	}

	response := &SummaryResponse{
		Summary: dashboard.Build(s.now(), properties, tenants, requests),
	}
	if s.messageRepo != nil {
		unread, err := s.messageRepo.CountUnread(ctx, callerID)
		if err != nil {
			s.logger.Warn("Failed to count unread messages",
				zap.String("user_id", callerID.String()),
				zap.Error(err))
		}
		response.UnreadMessages = unread
	}

	s.logger.Debug("Dashboard built",
		zap.String("owner_id", callerID.String()),
		zap.Int("properties", len(properties)),
		zap.Int("tenants", len(tenants)),
		zap.Int("requests", len(requests)))
	return response, nil
}

// loadAll walks every page of an owner-scoped list
func loadAll[T any](ctx context.Context, ownerID uuid.UUID, find func(context.Context, shared.Filter) ([]T, int64, error)) ([]T, error) {
	var all []T
	filter := access.ScopeToCaller(ownerID, shared.DefaultFilter())
	filter.PageSize = loadPageSize
	for page := 1; ; page++ {
		filter.Page = page
		items, total, err := find(ctx, filter)
		if err != nil {
			return nil, err
		}
		all = append(all, items...)
		if len(items) == 0 || int64(len(all)) >= total {
			return all, nil
		}
	}
}
