package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/maintenance"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/messaging"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/property"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/shared"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/shared/valueobject"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/tenant"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pagedProperties struct {
	property.PropertyRepository
	items   []property.Property
	filters []shared.Filter
}

func (p *pagedProperties) FindAll(_ context.Context, filter shared.Filter) ([]property.Property, int64, error) {
	p.filters = append(p.filters, filter)
	start := filter.Offset()
	if start >= len(p.items) {
		return nil, int64(len(p.items)), nil
	}
	end := min(start+filter.PageSize, len(p.items))
	return p.items[start:end], int64(len(p.items)), nil
}

type listedTenants struct {
	tenant.TenantRepository
	items []tenant.Tenant
	err   error
}

func (l *listedTenants) FindAll(_ context.Context, _ shared.Filter) ([]tenant.Tenant, int64, error) {
	return l.items, int64(len(l.items)), l.err
}

type listedRequests struct {
	maintenance.MaintenanceRequestRepository
	items []maintenance.MaintenanceRequest
}

func (l *listedRequests) FindAll(_ context.Context, _ shared.Filter) ([]maintenance.MaintenanceRequest, int64, error) {
	return l.items, int64(len(l.items)), nil
}

type unreadCounter struct {
	messaging.MessageRepository
	count int64
}

func (u *unreadCounter) CountUnread(_ context.Context, _ uuid.UUID) (int64, error) {
	return u.count, nil
}

func TestDashboardService_Summary(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	now := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)

	properties := make([]property.Property, 0, loadPageSize+3)
	for i := 0; i < loadPageSize+3; i++ {
		p, err := property.NewProperty(ownerID, "Block", valueobject.MustNewAddress("1 Main St", "Austin", "TX"),
			property.PropertyTypeApartment,
			property.UnitSpec{UnitNumber: "1", Rent: decimal.NewFromInt(1000), Bathrooms: decimal.NewFromInt(1)})
		require.NoError(t, err)
		properties = append(properties, *p)
	}
	propRepo := &pagedProperties{items: properties}

	ten, err := tenant.NewTenant(ownerID, tenant.Contact{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"},
		tenant.LeaseDetails{
			PropertyID: properties[0].ID,
			UnitNumber: "1",
			StartDate:  now.AddDate(-1, 0, 0),
			EndDate:    now.AddDate(0, 0, 10),
			RentAmount: decimal.NewFromInt(1000),
		})
	require.NoError(t, err)

	req, err := maintenance.NewMaintenanceRequest(ownerID, properties[0].ID, "1", "Fix door", "", maintenance.PriorityLow)
	require.NoError(t, err)

	svc := NewDashboardService(propRepo,
		&listedTenants{items: []tenant.Tenant{*ten}},
		&listedRequests{items: []maintenance.MaintenanceRequest{*req}},
		&unreadCounter{count: 2}, nil)
	svc.now = func() time.Time { return now }

	summary, err := svc.Summary(ctx, ownerID)
	require.NoError(t, err)

	assert.Equal(t, now, summary.GeneratedAt)
	assert.Equal(t, loadPageSize+3, summary.Properties.Total)
	assert.Equal(t, loadPageSize+3, summary.Properties.Vacant)
	assert.Equal(t, 1, summary.Tenants.Active)
	assert.Equal(t, 1, summary.OpenRequests)
	assert.EqualValues(t, 2, summary.UnreadMessages)
	require.Len(t, summary.UpcomingEvents, 1)
	assert.Equal(t, ten.ID, summary.UpcomingEvents[0].SubjectID)

	require.Len(t, propRepo.filters, 2)
	for i, f := range propRepo.filters {
		assert.Equal(t, ownerID, f.OwnerID)
		assert.Equal(t, i+1, f.Page)
	}
}

func TestDashboardService_SummaryError(t *testing.T) {
	svc := NewDashboardService(&pagedProperties{},
		&listedTenants{err: errors.New("connection refused")},
		&listedRequests{}, nil, nil)

	_, err := svc.Summary(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load tenants")
}
