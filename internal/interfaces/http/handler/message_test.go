package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	messagingapp "github.com/RaymondAkiiki/property-management-webapp-sub001/internal/application/messaging"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/identity"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/messaging"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newMessageRouter(callerID uuid.UUID, messages *MockMessageRepository, users *MockUserRepository) *gin.Engine {
	h := NewMessageHandler(messagingapp.NewMessageService(messages, users, zap.NewNop()))

	router := gin.New()
	api := router.Group("/api/v1", asUser(callerID))
	api.POST("/messages", h.Send)
	api.GET("/messages/inbox", h.Inbox)
	api.GET("/messages/sent", h.Sent)
	api.GET("/messages/unread-count", h.UnreadCount)
	api.GET("/messages/:id", h.GetByID)
	api.POST("/messages/:id/read", h.MarkRead)
	api.DELETE("/messages/:id", h.Delete)
	return router
}

func newHandlerTestMessage(t *testing.T, senderID, recipientID uuid.UUID) *messaging.Message {
	t.Helper()
	m, err := messaging.NewMessage(senderID, recipientID, "Rent reminder", "Rent is due on the 1st.")
	require.NoError(t, err)
	m.ClearDomainEvents()
	m.MarkPersisted()
	return m
}

func TestMessageHandler_Send(t *testing.T) {
	senderID := uuid.New()
	recipient := &identity.User{}
	recipient.ID = uuid.New()

	t.Run("delivers to an existing user", func(t *testing.T) {
		messages := new(MockMessageRepository)
		users := new(MockUserRepository)
		users.On("FindByID", mock.Anything, recipient.ID).Return(recipient, nil)
		messages.On("Create", mock.Anything, mock.AnythingOfType("*messaging.Message")).Return(nil)

		w := sendJSON(newMessageRouter(senderID, messages, users), http.MethodPost, "/api/v1/messages", messagingapp.SendMessageRequest{
			RecipientID: recipient.ID,
			Subject:     "Rent reminder",
			Body:        "Rent is due on the 1st.",
		})

		require.Equal(t, http.StatusCreated, w.Code)
		var resp APIResponse[messagingapp.MessageResponse]
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, senderID, resp.Data.SenderID)
		assert.False(t, resp.Data.Read)
	})

	t.Run("unknown recipient", func(t *testing.T) {
		messages := new(MockMessageRepository)
		users := new(MockUserRepository)
		ghost := uuid.New()
		users.On("FindByID", mock.Anything, ghost).Return(nil, shared.NotFound("User not found"))

		w := sendJSON(newMessageRouter(senderID, messages, users), http.MethodPost, "/api/v1/messages", messagingapp.SendMessageRequest{
			RecipientID: ghost,
			Subject:     "Hello",
			Body:        "Hi",
		})

		assert.Equal(t, http.StatusNotFound, w.Code)
		messages.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("missing body", func(t *testing.T) {
		w := sendJSON(newMessageRouter(senderID, new(MockMessageRepository), new(MockUserRepository)), http.MethodPost, "/api/v1/messages",
			map[string]string{"recipient_id": recipient.ID.String(), "subject": "Hello"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestMessageHandler_Lists(t *testing.T) {
	callerID := uuid.New()
	m := newHandlerTestMessage(t, uuid.New(), callerID)
	messages := new(MockMessageRepository)
	messages.On("FindInbox", mock.Anything, callerID, true, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Page == 1 && f.PageSize == 20
	})).Return([]messaging.Message{*m}, int64(1), nil)
	messages.On("FindSent", mock.Anything, callerID, mock.Anything).Return([]messaging.Message{}, int64(0), nil)
	messages.On("CountUnread", mock.Anything, callerID).Return(int64(4), nil)
	router := newMessageRouter(callerID, messages, new(MockUserRepository))

	inbox := sendJSON(router, http.MethodGet, "/api/v1/messages/inbox?unread_only=true", nil)
	require.Equal(t, http.StatusOK, inbox.Code)
	assert.Equal(t, int64(1), decodeResponse(t, inbox).Meta.Total)

	sent := sendJSON(router, http.MethodGet, "/api/v1/messages/sent", nil)
	require.Equal(t, http.StatusOK, sent.Code)
	assert.Contains(t, sent.Body.String(), `"data":[]`)

	count := sendJSON(router, http.MethodGet, "/api/v1/messages/unread-count", nil)
	require.Equal(t, http.StatusOK, count.Code)
	var resp APIResponse[CountData]
	require.NoError(t, json.Unmarshal(count.Body.Bytes(), &resp))
	assert.Equal(t, int64(4), resp.Data.Count)
}

func TestMessageHandler_ReadAndDelete(t *testing.T) {
	senderID := uuid.New()
	recipientID := uuid.New()

	t.Run("recipient marks read once", func(t *testing.T) {
		m := newHandlerTestMessage(t, senderID, recipientID)
		messages := new(MockMessageRepository)
		messages.On("FindByID", mock.Anything, m.ID).Return(m, nil)
		messages.On("Save", mock.Anything, m).Return(nil).Once()
		router := newMessageRouter(recipientID, messages, new(MockUserRepository))

		first := sendJSON(router, http.MethodPost, "/api/v1/messages/"+m.ID.String()+"/read", nil)
		require.Equal(t, http.StatusOK, first.Code)
		readAt := *m.ReadAt

		second := sendJSON(router, http.MethodPost, "/api/v1/messages/"+m.ID.String()+"/read", nil)
		require.Equal(t, http.StatusOK, second.Code)
		assert.Equal(t, readAt, *m.ReadAt)
		messages.AssertNumberOfCalls(t, "Save", 1)
	})

	t.Run("sender cannot mark read", func(t *testing.T) {
		m := newHandlerTestMessage(t, senderID, recipientID)
		messages := new(MockMessageRepository)
		messages.On("FindByID", mock.Anything, m.ID).Return(m, nil)

		w := sendJSON(newMessageRouter(senderID, messages, nil), http.MethodPost, "/api/v1/messages/"+m.ID.String()+"/read", nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("outsider cannot view", func(t *testing.T) {
		m := newHandlerTestMessage(t, senderID, recipientID)
		messages := new(MockMessageRepository)
		messages.On("FindByID", mock.Anything, m.ID).Return(m, nil)

		w := sendJSON(newMessageRouter(uuid.New(), messages, nil), http.MethodGet, "/api/v1/messages/"+m.ID.String(), nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("only the sender deletes", func(t *testing.T) {
		m := newHandlerTestMessage(t, senderID, recipientID)
		messages := new(MockMessageRepository)
		messages.On("FindByID", mock.Anything, m.ID).Return(m, nil)
		messages.On("Delete", mock.Anything, m.ID).Return(nil)

		denied := sendJSON(newMessageRouter(recipientID, messages, nil), http.MethodDelete, "/api/v1/messages/"+m.ID.String(), nil)
		assert.Equal(t, http.StatusUnauthorized, denied.Code)

		ok := sendJSON(newMessageRouter(senderID, messages, nil), http.MethodDelete, "/api/v1/messages/"+m.ID.String(), nil)
		assert.Equal(t, http.StatusOK, ok.Code)
		messages.AssertNumberOfCalls(t, "Delete", 1)
	})
}
