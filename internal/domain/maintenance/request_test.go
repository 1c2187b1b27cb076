package maintenance

import (
	"testing"
	"time"

	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRequest(t *testing.T) *MaintenanceRequest {
	t.Helper()
	r, err := NewMaintenanceRequest(uuid.New(), uuid.New(), "1A", "Leaking tap", "Kitchen sink drips", PriorityHigh)
	require.NoError(t, err)
	r.ClearDomainEvents()
	return r
}

func TestNewMaintenanceRequest(t *testing.T) {
	t.Run("creates open request", func(t *testing.T) {
		r, err := NewMaintenanceRequest(uuid.New(), uuid.New(), " 1A ", " Leaking tap ", "", "")
		require.NoError(t, err)
		assert.Equal(t, StatusOpen, r.Status)
		assert.Equal(t, PriorityMedium, r.Priority)
		assert.Equal(t, "1A", r.Unit)
		assert.Equal(t, "Leaking tap", r.Title)

		events := r.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeMaintenanceCreated, events[0].EventType())
	})

	t.Run("fails with empty title", func(t *testing.T) {
		_, err := NewMaintenanceRequest(uuid.New(), uuid.New(), "1A", "", "", PriorityLow)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Title cannot be empty")
	})

	t.Run("fails with invalid priority", func(t *testing.T) {
		_, err := NewMaintenanceRequest(uuid.New(), uuid.New(), "1A", "Tap", "", Priority("urgent"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid priority")
	})

	t.Run("fails without property", func(t *testing.T) {
		_, err := NewMaintenanceRequest(uuid.New(), uuid.Nil, "1A", "Tap", "", PriorityLow)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})
}

func TestMaintenanceRequest_Lifecycle(t *testing.T) {
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

	t.Run("open to scheduled to in progress to resolved", func(t *testing.T) {
		r := newTestRequest(t)

		require.NoError(t, r.Schedule(now.Add(48*time.Hour), now))
		assert.Equal(t, StatusScheduled, r.Status)
		assert.True(t, r.HasFutureAppointment(now))

		require.NoError(t, r.Start())
		assert.Equal(t, StatusInProgress, r.Status)

		require.NoError(t, r.Resolve("Washer replaced", now.Add(72*time.Hour)))
		assert.Equal(t, StatusResolved, r.Status)
		require.NotNil(t, r.ResolvedAt)
		assert.Equal(t, "Washer replaced", r.ResolutionNotes)

		events := r.GetDomainEvents()
		require.Len(t, events, 3)
		last, ok := events[2].(*MaintenanceStatusChangedEvent)
		require.True(t, ok)
		assert.Equal(t, StatusInProgress, last.OldStatus)
		assert.Equal(t, StatusResolved, last.NewStatus)
	})

	t.Run("schedule requires future appointment", func(t *testing.T) {
		r := newTestRequest(t)
		assert.ErrorIs(t, r.Schedule(now, now), shared.ErrInvalidInput)
		assert.Equal(t, StatusOpen, r.Status)
	})

	t.Run("reschedule keeps scheduled status", func(t *testing.T) {
		r := newTestRequest(t)
		require.NoError(t, r.Schedule(now.Add(time.Hour), now))
		require.NoError(t, r.Schedule(now.Add(2*time.Hour), now))
		assert.Equal(t, now.Add(2*time.Hour), *r.AppointmentAt)
	})

	t.Run("cannot schedule work in progress", func(t *testing.T) {
		r := newTestRequest(t)
		require.NoError(t, r.Start())
		assert.ErrorIs(t, r.Schedule(now.Add(time.Hour), now), shared.ErrInvalidState)
	})

	t.Run("open can resolve directly", func(t *testing.T) {
		r := newTestRequest(t)
		require.NoError(t, r.Resolve("", now))
		assert.Equal(t, StatusResolved, r.Status)
	})

	t.Run("terminal states reject transitions", func(t *testing.T) {
		resolved := newTestRequest(t)
		require.NoError(t, resolved.Resolve("", now))

		cancelled := newTestRequest(t)
		require.NoError(t, cancelled.Cancel("duplicate"))

		for _, r := range []*MaintenanceRequest{resolved, cancelled} {
			assert.ErrorIs(t, r.Start(), shared.ErrInvalidState)
			assert.ErrorIs(t, r.Resolve("", now), shared.ErrInvalidState)
			assert.ErrorIs(t, r.Cancel(""), shared.ErrInvalidState)
			assert.ErrorIs(t, r.Schedule(now.Add(time.Hour), now), shared.ErrInvalidState)
			assert.ErrorIs(t, r.Update("x", "", PriorityLow), shared.ErrInvalidState)
		}
	})

	t.Run("past appointment is not upcoming", func(t *testing.T) {
		r := newTestRequest(t)
		require.NoError(t, r.Schedule(now.Add(time.Hour), now))
		assert.False(t, r.HasFutureAppointment(now.Add(2*time.Hour)))
	})
}
