package persistence

import (
	"context"
	"errors"

	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/messaging"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/shared"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormMessageRepository implements MessageRepository using GORM
type GormMessageRepository struct {
	db *gorm.DB
}

// NewGormMessageRepository creates a new GormMessageRepository
func NewGormMessageRepository(db *gorm.DB) *GormMessageRepository {
	return &GormMessageRepository{db: db}
}

// FindByID finds a message by ID
func (r *GormMessageRepository) FindByID(ctx context.Context, id uuid.UUID) (*messaging.Message, error) {
	var model models.MessageModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, messaging.ErrMessageNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindInbox lists messages received by recipientID, newest first
func (r *GormMessageRepository) FindInbox(ctx context.Context, recipientID uuid.UUID, unreadOnly bool, filter shared.Filter) ([]messaging.Message, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.MessageModel{}).Where("recipient_id = ?", recipientID)
	if unreadOnly {
		query = query.Where("read_at IS NULL")
	}
	return r.list(query, filter)
}

// FindSent lists messages sent by senderID, newest first
func (r *GormMessageRepository) FindSent(ctx context.Context, senderID uuid.UUID, filter shared.Filter) ([]messaging.Message, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.MessageModel{}).Where("sender_id = ?", senderID)
	return r.list(query, filter)
}

func (r *GormMessageRepository) list(query *gorm.DB, filter shared.Filter) ([]messaging.Message, int64, error) {
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where(`(LOWER(subject) LIKE ? ESCAPE '\' OR LOWER(body) LIKE ? ESCAPE '\')`, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at DESC").Order("id ASC")
	if filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	var rows []models.MessageModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	messages := make([]messaging.Message, 0, len(rows))
	for i := range rows {
		messages = append(messages, *rows[i].ToDomain())
	}
	return messages, total, nil
}

// CountUnread counts unread messages for a recipient
func (r *GormMessageRepository) CountUnread(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.MessageModel{}).
		Where("recipient_id = ? AND read_at IS NULL", recipientID).
		Count(&count).Error
	return count, err
}

// Create inserts a new message
func (r *GormMessageRepository) Create(ctx context.Context, msg *messaging.Message) error {
	if err := r.db.WithContext(ctx).Create(models.MessageModelFromDomain(msg)).Error; err != nil {
		return err
	}
	msg.MarkPersisted()
	return nil
}

// Save persists read state guarded by version
func (r *GormMessageRepository) Save(ctx context.Context, msg *messaging.Message) error {
	result := r.db.WithContext(ctx).
		Model(&models.MessageModel{}).
		Where("id = ? AND version = ?", msg.ID, msg.PersistedVersion()).
		Updates(map[string]interface{}{
			"read_at":    msg.ReadAt,
			"version":    msg.Version,
			"updated_at": msg.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return lockFailure(r.db.WithContext(ctx), &models.MessageModel{}, msg.ID,
			messaging.ErrMessageNotFound, "Message was modified by another request")
	}
	msg.MarkPersisted()
	return nil
}

// Delete deletes a message
func (r *GormMessageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.MessageModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return messaging.ErrMessageNotFound
	}
	return nil
}

var _ messaging.MessageRepository = (*GormMessageRepository)(nil)
