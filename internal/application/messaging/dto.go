package messaging

import (
	"time"

	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/messaging"
	"github.com/google/uuid"
)

// SendMessageRequest represents a request to send a message
type SendMessageRequest struct {
	RecipientID uuid.UUID  `json:"recipient_id" binding:"required"`
	PropertyID  *uuid.UUID `json:"property_id"`
	Subject     string     `json:"subject" binding:"required,max=200"`
	Body        string     `json:"body" binding:"required,max=10000"`
}

// MessageListFilter represents paging options for inbox and sent lists
type MessageListFilter struct {
	UnreadOnly bool `form:"unread_only"`
	Page       int  `form:"page" binding:"omitempty,min=1"`
	PageSize   int  `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// MessageResponse represents a message in API responses
type MessageResponse struct {
	ID          uuid.UUID  `json:"id"`
	SenderID    uuid.UUID  `json:"sender_id"`
	RecipientID uuid.UUID  `json:"recipient_id"`
	PropertyID  *uuid.UUID `json:"property_id,omitempty"`
	Subject     string     `json:"subject"`
	Body        string     `json:"body"`
	Read        bool       `json:"read"`
	ReadAt      *time.Time `json:"read_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ToMessageResponse converts a domain message to a response
func ToMessageResponse(m *messaging.Message) MessageResponse {
	return MessageResponse{
		ID:          m.ID,
		SenderID:    m.SenderID,
		RecipientID: m.RecipientID,
		PropertyID:  m.PropertyID,
		Subject:     m.Subject,
		Body:        m.Body,
		Read:        m.IsRead(),
		ReadAt:      m.ReadAt,
		CreatedAt:   m.CreatedAt,
	}
}
