package messaging

import (
	"context"

	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/shared"
	"github.com/google/uuid"
)

// MessageRepository defines the interface for message persistence
type MessageRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Message, error)

	// FindInbox lists messages received by recipientID, newest first
	FindInbox(ctx context.Context, recipientID uuid.UUID, unreadOnly bool, filter shared.Filter) ([]Message, int64, error)

	// FindSent lists messages sent by senderID, newest first
	FindSent(ctx context.Context, senderID uuid.UUID, filter shared.Filter) ([]Message, int64, error)

	// CountUnread counts unread messages for a recipient
	CountUnread(ctx context.Context, recipientID uuid.UUID) (int64, error)

	Create(ctx context.Context, message *Message) error

	// Save persists read state changes
	Save(ctx context.Context, message *Message) error
	Delete(ctx context.Context, id uuid.UUID) error
}
