package messaging

import (
	"strings"
	"time"

	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/shared"
	"github.com/google/uuid"
)

// Message is a direct in-app message between two users
type Message struct {
	shared.BaseAggregateRoot
	SenderID    uuid.UUID
	RecipientID uuid.UUID
	PropertyID  *uuid.UUID
	Subject     string
	Body        string
	ReadAt      *time.Time
}

// NewMessage creates a new unread message
func NewMessage(senderID, recipientID uuid.UUID, subject, body string) (*Message, error) {
	if senderID == uuid.Nil || recipientID == uuid.Nil {
		return nil, shared.InvalidInput("Sender and recipient are required")
	}
	if senderID == recipientID {
		return nil, shared.InvalidInput("Cannot send a message to yourself")
	}
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return nil, shared.NewDomainError("INVALID_SUBJECT", "Subject cannot be empty")
	}
	if len(subject) > 200 {
		return nil, shared.NewDomainError("INVALID_SUBJECT", "Subject cannot exceed 200 characters")
	}
	if strings.TrimSpace(body) == "" {
		return nil, shared.NewDomainError("INVALID_BODY", "Body cannot be empty")
	}
	if len(body) > 10000 {
		return nil, shared.NewDomainError("INVALID_BODY", "Body cannot exceed 10000 characters")
	}

	m := &Message{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SenderID:          senderID,
		RecipientID:       recipientID,
		Subject:           subject,
		Body:              body,
	}
	m.AddDomainEvent(NewMessageSentEvent(m))
	return m, nil
}

// AboutProperty tags the message with a property
func (m *Message) AboutProperty(propertyID uuid.UUID) {
	id := propertyID
	m.PropertyID = &id
}

// CanView reports whether userID is a party to the message
func (m *Message) CanView(userID uuid.UUID) bool {
	return userID == m.SenderID || userID == m.RecipientID
}

// IsRead reports whether the recipient opened the message
func (m *Message) IsRead() bool {
	return m.ReadAt != nil
}

// MarkRead records that the recipient read the message. Only the
// recipient may do so; repeating the call keeps the first read time.
func (m *Message) MarkRead(userID uuid.UUID, now time.Time) error {
	if userID != m.RecipientID {
		return shared.Unauthorized("Only the recipient can mark a message as read")
	}
	if m.ReadAt != nil {
		return nil
	}
	readAt := now
	m.ReadAt = &readAt
	m.Touch(now)
	m.IncrementVersion()
	return nil
}

// EnsureDeletableBy fails unless userID sent the message
func (m *Message) EnsureDeletableBy(userID uuid.UUID) error {
	if userID != m.SenderID {
		return shared.Unauthorized("Only the sender can delete a message")
	}
	return nil
}

// Domain errors specific to messaging
var (
	ErrMessageNotFound = shared.NotFound("Message not found")
)
