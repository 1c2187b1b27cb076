package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/maintenance"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRequest(t *testing.T, ownerID, propertyID uuid.UUID, title string, priority maintenance.Priority) *maintenance.MaintenanceRequest {
	t.Helper()
	r, err := maintenance.NewMaintenanceRequest(ownerID, propertyID, "A1", title, "Reported by tenant", priority)
	require.NoError(t, err)
	return r
}

func TestGormMaintenanceRequestRepository_Lifecycle(t *testing.T) {
	repo := NewGormMaintenanceRequestRepository(setupTestDB(t))
	ctx := context.Background()

	req := newTestRequest(t, uuid.New(), uuid.New(), "Leaking sink", maintenance.PriorityHigh)
	tenantID := uuid.New()
	req.AssignTenant(tenantID)
	require.NoError(t, repo.Create(ctx, req))

	found, err := repo.FindByID(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, maintenance.StatusOpen, found.Status)
	require.NotNil(t, found.TenantID)
	assert.Equal(t, tenantID, *found.TenantID)

	now := time.Now()
	require.NoError(t, found.Schedule(now.Add(48*time.Hour), now))
	require.NoError(t, repo.Save(ctx, found))

	scheduled, err := repo.FindByID(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, maintenance.StatusScheduled, scheduled.Status)
	require.NotNil(t, scheduled.AppointmentAt)
	assert.WithinDuration(t, now.Add(48*time.Hour), *scheduled.AppointmentAt, time.Second)

	require.NoError(t, scheduled.Resolve("Replaced washer", now))
	require.NoError(t, repo.Save(ctx, scheduled))

	resolved, err := repo.FindByID(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, maintenance.StatusResolved, resolved.Status)
	assert.Equal(t, "Replaced washer", resolved.ResolutionNotes)

	t.Run("stale save", func(t *testing.T) {
		assert.ErrorIs(t, repo.Save(ctx, found), shared.ErrConcurrencyConflict)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, req.ID))
		_, err := repo.FindByID(ctx, req.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, req.ID), shared.ErrNotFound)
	})
}

func TestGormMaintenanceRequestRepository_FindAll(t *testing.T) {
	repo := NewGormMaintenanceRequestRepository(setupTestDB(t))
	ctx := context.Background()
	ownerID, propertyID := uuid.New(), uuid.New()

	require.NoError(t, repo.Create(ctx, newTestRequest(t, ownerID, propertyID, "Broken window", maintenance.PriorityLow)))
	require.NoError(t, repo.Create(ctx, newTestRequest(t, ownerID, propertyID, "No hot water", maintenance.PriorityEmergency)))
	require.NoError(t, repo.Create(ctx, newTestRequest(t, ownerID, uuid.New(), "Door lock", maintenance.PriorityMedium)))
	require.NoError(t, repo.Create(ctx, newTestRequest(t, uuid.New(), propertyID, "Not mine", maintenance.PriorityLow)))

	tests := []struct {
		name    string
		filter  shared.Filter
		want    int64
		firstIs string
	}{
		{"owner scope", shared.Filter{OwnerID: ownerID, OrderBy: "title", OrderDir: "asc"}, 3, "Broken window"},
		{"by priority", shared.Filter{OwnerID: ownerID, Filters: map[string]interface{}{"priority": "emergency"}}, 1, "No hot water"},
		{"by property", shared.Filter{OwnerID: ownerID, Filters: map[string]interface{}{"property_id": propertyID.String()}}, 2, ""},
		{"search", shared.Filter{OwnerID: ownerID, Search: "LOCK"}, 1, "Door lock"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.filter.Page, tt.filter.PageSize = 1, 10
			requests, total, err := repo.FindAll(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, total)
			require.Len(t, requests, int(tt.want))
			if tt.firstIs != "" {
				assert.Equal(t, tt.firstIs, requests[0].Title)
			}
		})
	}
}
