package messaging

import (
	"context"
	"errors"
	"time"

	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/identity"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/messaging"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrRecipientNotFound is returned when the recipient user does not exist
var ErrRecipientNotFound = shared.NotFound("Recipient not found")

// MessageService handles in-app messages between users
type MessageService struct {
	messageRepo messaging.MessageRepository
	userRepo    identity.UserRepository
	logger      *zap.Logger
	now         func() time.Time

	eventPublisher shared.EventPublisher
}

// NewMessageService creates a new MessageService
func NewMessageService(messageRepo messaging.MessageRepository, userRepo identity.UserRepository, logger *zap.Logger) *MessageService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MessageService{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		logger:      logger,
		now:         time.Now,
	}
}

// SetEventPublisher sets the event publisher for domain events
func (s *MessageService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Send delivers a message from senderID to an existing user
func (s *MessageService) Send(ctx context.Context, senderID uuid.UUID, req SendMessageRequest) (*MessageResponse, error) {
	m, err := messaging.NewMessage(senderID, req.RecipientID, req.Subject, req.Body)
	if err != nil {
		return nil, err
	}
	if _, err := s.userRepo.FindByID(ctx, req.RecipientID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrRecipientNotFound
		}
		return nil, err
	}
	if req.PropertyID != nil {
		m.AboutProperty(*req.PropertyID)
	}

	if err := s.messageRepo.Create(ctx, m); err != nil {
		return nil, err
	}
	s.logger.Info("Message sent",
		zap.String("message_id", m.ID.String()),
		zap.String("sender_id", senderID.String()),
		zap.String("recipient_id", req.RecipientID.String()))

	if s.eventPublisher != nil {
		_ = s.eventPublisher.Publish(ctx, m.GetDomainEvents()...)
		m.ClearDomainEvents()
	}

	response := ToMessageResponse(m)
	return &response, nil
}

// Inbox lists messages received by the caller
func (s *MessageService) Inbox(ctx context.Context, callerID uuid.UUID, filter MessageListFilter) ([]MessageResponse, int64, error) {
	messages, total, err := s.messageRepo.FindInbox(ctx, callerID, filter.UnreadOnly, pageFilter(filter))
	if err != nil {
		return nil, 0, err
	}
	return toResponses(messages), total, nil
}

// Sent lists messages sent by the caller
func (s *MessageService) Sent(ctx context.Context, callerID uuid.UUID, filter MessageListFilter) ([]MessageResponse, int64, error) {
	messages, total, err := s.messageRepo.FindSent(ctx, callerID, pageFilter(filter))
	if err != nil {
		return nil, 0, err
	}
	return toResponses(messages), total, nil
}

// UnreadCount counts unread messages in the caller's inbox
func (s *MessageService) UnreadCount(ctx context.Context, callerID uuid.UUID) (int64, error) {
	return s.messageRepo.CountUnread(ctx, callerID)
}

// Get returns a message the caller sent or received
func (s *MessageService) Get(ctx context.Context, callerID, id uuid.UUID) (*MessageResponse, error) {
	m, err := s.load(ctx, callerID, id)
	if err != nil {
		return nil, err
	}
	response := ToMessageResponse(m)
	return &response, nil
}

// MarkRead marks a received message as read
func (s *MessageService) MarkRead(ctx context.Context, callerID, id uuid.UUID) (*MessageResponse, error) {
	m, err := s.load(ctx, callerID, id)
	if err != nil {
		return nil, err
	}
	wasRead := m.IsRead()
	if err := m.MarkRead(callerID, s.now()); err != nil {
		return nil, err
	}
	if !wasRead {
		if err := s.messageRepo.Save(ctx, m); err != nil {
			return nil, err
		}
	}
	response := ToMessageResponse(m)
	return &response, nil
}

// Delete removes a message the caller sent
func (s *MessageService) Delete(ctx context.Context, callerID, id uuid.UUID) error {
	m, err := s.load(ctx, callerID, id)
	if err != nil {
		return err
	}
	if err := m.EnsureDeletableBy(callerID); err != nil {
		return err
	}
	if err := s.messageRepo.Delete(ctx, m.ID); err != nil {
		return err
	}
	s.logger.Info("Message deleted",
		zap.String("message_id", m.ID.String()),
		zap.String("sender_id", callerID.String()))
	return nil
}

func (s *MessageService) load(ctx context.Context, callerID, id uuid.UUID) (*messaging.Message, error) {
	m, err := s.messageRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !m.CanView(callerID) {
		return nil, shared.Unauthorized("Not a party to this message")
	}
	return m, nil
}

func pageFilter(filter MessageListFilter) shared.Filter {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	return f
}

func toResponses(messages []messaging.Message) []MessageResponse {
	items := make([]MessageResponse, 0, len(messages))
	for i := range messages {
		items = append(items, ToMessageResponse(&messages[i]))
	}
	return items
}
