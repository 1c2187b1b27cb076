package messaging

import (
	"testing"
	"time"

	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessage(t *testing.T) {
	sender, recipient := uuid.New(), uuid.New()

	t.Run("creates unread message", func(t *testing.T) {
		m, err := NewMessage(sender, recipient, " Rent reminder ", "Rent is due on the 1st.")
		require.NoError(t, err)
		assert.Equal(t, "Rent reminder", m.Subject)
		assert.False(t, m.IsRead())
		require.Len(t, m.GetDomainEvents(), 1)
		assert.Equal(t, EventTypeMessageSent, m.GetDomainEvents()[0].EventType())
	})

	t.Run("rejects self message", func(t *testing.T) {
		_, err := NewMessage(sender, sender, "Hi", "Body")
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("rejects empty body", func(t *testing.T) {
		_, err := NewMessage(sender, recipient, "Hi", "  ")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Body cannot be empty")
	})
}

func TestMessage_Permissions(t *testing.T) {
	sender, recipient, stranger := uuid.New(), uuid.New(), uuid.New()
	now := time.Now()

	newMsg := func(t *testing.T) *Message {
		m, err := NewMessage(sender, recipient, "Hi", "Body")
		require.NoError(t, err)
		return m
	}

	t.Run("only parties can view", func(t *testing.T) {
		m := newMsg(t)
		assert.True(t, m.CanView(sender))
		assert.True(t, m.CanView(recipient))
		assert.False(t, m.CanView(stranger))
	})

	t.Run("only recipient can mark read", func(t *testing.T) {
		m := newMsg(t)
		assert.ErrorIs(t, m.MarkRead(sender, now), shared.ErrUnauthorized)
		assert.False(t, m.IsRead())

		require.NoError(t, m.MarkRead(recipient, now))
		require.True(t, m.IsRead())

		require.NoError(t, m.MarkRead(recipient, now.Add(time.Hour)))
		assert.Equal(t, now, *m.ReadAt, "first read time is kept")
	})

	t.Run("only sender can delete", func(t *testing.T) {
		m := newMsg(t)
		assert.NoError(t, m.EnsureDeletableBy(sender))
		assert.ErrorIs(t, m.EnsureDeletableBy(recipient), shared.ErrUnauthorized)
	})
}
