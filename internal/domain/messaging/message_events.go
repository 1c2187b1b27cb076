package messaging

import (
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant for Message
const AggregateTypeMessage = "Message"

// EventTypeMessageSent is raised when a message is created
const EventTypeMessageSent = "MessageSent"

// MessageSentEvent is raised when a message is created
type MessageSentEvent struct {
	shared.BaseDomainEvent
	MessageID   uuid.UUID `json:"message_id"`
	RecipientID uuid.UUID `json:"recipient_id"`
	Subject     string    `json:"subject"`
}

// NewMessageSentEvent creates a new MessageSentEvent
func NewMessageSentEvent(m *Message) *MessageSentEvent {
	return &MessageSentEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeMessageSent, AggregateTypeMessage, m.ID, m.SenderID),
		MessageID:       m.ID,
		RecipientID:     m.RecipientID,
		Subject:         m.Subject,
	}
}
