package handler

import (
	"context"

	messagingapp "github.com/RaymondAkiiki/property-management-webapp-sub001/internal/application/messaging"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MessageHandler handles in-app messaging endpoints
type MessageHandler struct {
	BaseHandler
	messageService *messagingapp.MessageService
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(messageService *messagingapp.MessageService) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
	}
}

// Send godoc
// @ID           sendMessage
// @Summary      Send a message
// @Description  Send a message to another user, optionally about a property
// @Tags         messages
// @Accept       json
// @Produce      json
// @Param        request body messagingapp.SendMessageRequest true "Message"
// @Success      201 {object} APIResponse[messagingapp.MessageResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /messages [post]
func (h *MessageHandler) Send(c *gin.Context) {
	senderID, ok := h.callerID(c)
	if !ok {
		return
	}
	var req messagingapp.SendMessageRequest
	if !h.BindJSON(c, &req) {
		return
	}

	m, err := h.messageService.Send(c.Request.Context(), senderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, m)
}

// Inbox godoc
// @ID           listInbox
// @Summary      List received messages
// @Tags         messages
// @Produce      json
// @Param        unread_only query    bool  false  "Only unread messages"
// @Param        page        query    int   false  "Page number" default(1)
// @Param        page_size   query    int   false  "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]messagingapp.MessageResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /messages/inbox [get]
func (h *MessageHandler) Inbox(c *gin.Context) {
	h.list(c, h.messageService.Inbox)
}

// Sent godoc
// @ID           listSentMessages
// @Summary      List sent messages
// @Tags         messages
// @Produce      json
// @Param        page      query    int  false  "Page number" default(1)
// @Param        page_size query    int  false  "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]messagingapp.MessageResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /messages/sent [get]
func (h *MessageHandler) Sent(c *gin.Context) {
	h.list(c, h.messageService.Sent)
}

// UnreadCount godoc
// @ID           countUnreadMessages
// @Summary      Count unread messages
// @Tags         messages
// @Produce      json
// @Success      200 {object} APIResponse[CountData]
// @Failure      401 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /messages/unread-count [get]
func (h *MessageHandler) UnreadCount(c *gin.Context) {
	callerID, ok := h.callerID(c)
	if !ok {
		return
	}

	count, err := h.messageService.UnreadCount(c.Request.Context(), callerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, CountData{Count: count})
}

// GetByID godoc
// @ID           getMessageById
// @Summary      Get a message
// @Description  Retrieve a message the caller sent or received
// @Tags         messages
// @Produce      json
// @Param        id path string true "Message ID" format(uuid)
// @Success      200 {object} APIResponse[messagingapp.MessageResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /messages/{id} [get]
func (h *MessageHandler) GetByID(c *gin.Context) {
	callerID, ok := h.callerID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id", "message")
	if !ok {
		return
	}

	m, err := h.messageService.Get(c.Request.Context(), callerID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, m)
}

// MarkRead godoc
// @ID           markMessageRead
// @Summary      Mark a message as read
// @Description  Only the recipient can mark a message as read. Repeating the call keeps the first read time.
// @Tags         messages
// @Produce      json
// @Param        id path string true "Message ID" format(uuid)
// @Success      200 {object} APIResponse[messagingapp.MessageResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /messages/{id}/read [post]
func (h *MessageHandler) MarkRead(c *gin.Context) {
	callerID, ok := h.callerID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id", "message")
	if !ok {
		return
	}

	m, err := h.messageService.MarkRead(c.Request.Context(), callerID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, m)
}

// Delete godoc
// @ID           deleteMessage
// @Summary      Delete a message
// @Description  Only the sender can delete a message
// @Tags         messages
// @Produce      json
// @Param        id path string true "Message ID" format(uuid)
// @Success      200 {object} APIResponse[MessageData]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /messages/{id} [delete]
func (h *MessageHandler) Delete(c *gin.Context) {
	callerID, ok := h.callerID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id", "message")
	if !ok {
		return
	}

	if err := h.messageService.Delete(c.Request.Context(), callerID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, MessageData{Message: "Message deleted"})
}

type messageLister func(ctx context.Context, callerID uuid.UUID, filter messagingapp.MessageListFilter) ([]messagingapp.MessageResponse, int64, error)

func (h *MessageHandler) list(c *gin.Context, lister messageLister) {
	callerID, ok := h.callerID(c)
	if !ok {
		return
	}
	var filter messagingapp.MessageListFilter
	if !h.BindQuery(c, &filter) {
		return
	}

	items, total, err := lister(c.Request.Context(), callerID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, items, total, pageOrDefault(filter.Page), pageSizeOrDefault(filter.PageSize))
}
