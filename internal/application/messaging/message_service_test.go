package messaging

import (
	"context"
	"testing"
	"time"

	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/identity"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/messaging"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockMessageRepository is a mock implementation of messaging.MessageRepository
type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) FindByID(ctx context.Context, id uuid.UUID) (*messaging.Message, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*messaging.Message), args.Error(1)
}

func (m *MockMessageRepository) FindInbox(ctx context.Context, recipientID uuid.UUID, unreadOnly bool, filter shared.Filter) ([]messaging.Message, int64, error) {
	args := m.Called(ctx, recipientID, unreadOnly, filter)
	return args.Get(0).([]messaging.Message), args.Get(1).(int64), args.Error(2)
}

func (m *MockMessageRepository) FindSent(ctx context.Context, senderID uuid.UUID, filter shared.Filter) ([]messaging.Message, int64, error) {
	args := m.Called(ctx, senderID, filter)
	return args.Get(0).([]messaging.Message), args.Get(1).(int64), args.Error(2)
}

func (m *MockMessageRepository) CountUnread(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	args := m.Called(ctx, recipientID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMessageRepository) Create(ctx context.Context, message *messaging.Message) error {
	return m.Called(ctx, message).Error(0)
}

func (m *MockMessageRepository) Save(ctx context.Context, message *messaging.Message) error {
	return m.Called(ctx, message).Error(0)
}

func (m *MockMessageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type userLookup struct {
	identity.UserRepository
	ids map[uuid.UUID]bool
}

func (u *userLookup) FindByID(_ context.Context, id uuid.UUID) (*identity.User, error) {
	if !u.ids[id] {
		return nil, shared.ErrNotFound
	}
	return &identity.User{BaseAggregateRoot: shared.BaseAggregateRoot{BaseEntity: shared.BaseEntity{ID: id}}}, nil
}

type recordingPublisher struct {
	events []shared.DomainEvent
}

func (p *recordingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.events = append(p.events, events...)
	return nil
}

func newTestMessageService(users ...uuid.UUID) (*MessageService, *MockMessageRepository) {
	ids := make(map[uuid.UUID]bool, len(users))
	for _, id := range users {
		ids[id] = true
	}
	repo := new(MockMessageRepository)
	return NewMessageService(repo, &userLookup{ids: ids}, nil), repo
}

func storedMessage(t *testing.T, repo *MockMessageRepository, sender, recipient uuid.UUID) *messaging.Message {
	t.Helper()
	m, err := messaging.NewMessage(sender, recipient, "Rent reminder", "Rent is due on Friday.")
	require.NoError(t, err)
	m.ClearDomainEvents()
	repo.On("FindByID", mock.Anything, m.ID).Return(m, nil)
	return m
}

func TestMessageService_Send(t *testing.T) {
	ctx := context.Background()
	sender, recipient := uuid.New(), uuid.New()

	t.Run("success", func(t *testing.T) {
		svc, repo := newTestMessageService(sender, recipient)
		publisher := &recordingPublisher{}
		svc.SetEventPublisher(publisher)
		repo.On("Create", ctx, mock.AnythingOfType("*messaging.Message")).Return(nil)

		propertyID := uuid.New()
		resp, err := svc.Send(ctx, sender, SendMessageRequest{
			RecipientID: recipient,
			PropertyID:  &propertyID,
			Subject:     "  Inspection  ",
			Body:        "Inspection next Tuesday.",
		})
		require.NoError(t, err)
		assert.Equal(t, "Inspection", resp.Subject)
		assert.Equal(t, &propertyID, resp.PropertyID)
		assert.False(t, resp.Read)
		require.Len(t, publisher.events, 1)
		assert.Equal(t, messaging.EventTypeMessageSent, publisher.events[0].EventType())
	})

	t.Run("unknown recipient", func(t *testing.T) {
		svc, repo := newTestMessageService(sender)
		_, err := svc.Send(ctx, sender, SendMessageRequest{RecipientID: recipient, Subject: "Hi", Body: "Hello"})
		assert.ErrorIs(t, err, shared.ErrNotFound)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("message to self", func(t *testing.T) {
		svc, _ := newTestMessageService(sender)
		_, err := svc.Send(ctx, sender, SendMessageRequest{RecipientID: sender, Subject: "Hi", Body: "Hello"})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})
}

func TestMessageService_Get(t *testing.T) {
	ctx := context.Background()
	sender, recipient := uuid.New(), uuid.New()
	svc, repo := newTestMessageService(sender, recipient)
	m := storedMessage(t, repo, sender, recipient)

	for _, caller := range []uuid.UUID{sender, recipient} {
		resp, err := svc.Get(ctx, caller, m.ID)
		require.NoError(t, err)
		assert.Equal(t, m.ID, resp.ID)
	}

	_, err := svc.Get(ctx, uuid.New(), m.ID)
	assert.ErrorIs(t, err, shared.ErrUnauthorized)

	missing := uuid.New()
	repo.On("FindByID", mock.Anything, missing).Return(nil, messaging.ErrMessageNotFound)
	_, err = svc.Get(ctx, sender, missing)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestMessageService_MarkRead(t *testing.T) {
	ctx := context.Background()
	sender, recipient := uuid.New(), uuid.New()
	readAt := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("recipient marks once", func(t *testing.T) {
		svc, repo := newTestMessageService(sender, recipient)
		svc.now = func() time.Time { return readAt }
		m := storedMessage(t, repo, sender, recipient)
		repo.On("Save", ctx, m).Return(nil).Once()

		resp, err := svc.MarkRead(ctx, recipient, m.ID)
		require.NoError(t, err)
		assert.True(t, resp.Read)
		assert.Equal(t, readAt, *resp.ReadAt)

		svc.now = func() time.Time { return readAt.Add(time.Hour) }
		resp, err = svc.MarkRead(ctx, recipient, m.ID)
		require.NoError(t, err)
		assert.Equal(t, readAt, *resp.ReadAt)
		repo.AssertNumberOfCalls(t, "Save", 1)
	})

	t.Run("sender cannot mark read", func(t *testing.T) {
		svc, repo := newTestMessageService(sender, recipient)
		m := storedMessage(t, repo, sender, recipient)
		_, err := svc.MarkRead(ctx, sender, m.ID)
		assert.ErrorIs(t, err, shared.ErrUnauthorized)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestMessageService_Delete(t *testing.T) {
	ctx := context.Background()
	sender, recipient := uuid.New(), uuid.New()
	svc, repo := newTestMessageService(sender, recipient)
	m := storedMessage(t, repo, sender, recipient)

	assert.ErrorIs(t, svc.Delete(ctx, recipient, m.ID), shared.ErrUnauthorized)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)

	repo.On("Delete", ctx, m.ID).Return(nil)
	require.NoError(t, svc.Delete(ctx, sender, m.ID))
}

func TestMessageService_Lists(t *testing.T) {
	ctx := context.Background()
	sender, recipient := uuid.New(), uuid.New()
	svc, repo := newTestMessageService(sender, recipient)
	m, err := messaging.NewMessage(sender, recipient, "Keys", "Spare keys are at the office.")
	require.NoError(t, err)

	repo.On("FindInbox", ctx, recipient, true, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Page == 2 && f.PageSize == 5
	})).Return([]messaging.Message{*m}, int64(6), nil)
	repo.On("FindSent", ctx, sender, mock.Anything).Return([]messaging.Message{*m}, int64(1), nil)
	repo.On("CountUnread", ctx, recipient).Return(int64(3), nil)

	inbox, total, err := svc.Inbox(ctx, recipient, MessageListFilter{UnreadOnly: true, Page: 2, PageSize: 5})
	require.NoError(t, err)
	assert.EqualValues(t, 6, total)
	require.Len(t, inbox, 1)
	assert.Equal(t, "Keys", inbox[0].Subject)

	sent, total, err := svc.Sent(ctx, sender, MessageListFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Len(t, sent, 1)

	unread, err := svc.UnreadCount(ctx, recipient)
	require.NoError(t, err)
	assert.EqualValues(t, 3, unread)
}
