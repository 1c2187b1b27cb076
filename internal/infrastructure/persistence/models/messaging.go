package models

import (
	"time"

	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/messaging"
	"github.com/google/uuid"
)

// MessageModel is the persistence model for a Message.
type MessageModel struct {
	AggregateModel
	SenderID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	RecipientID uuid.UUID  `gorm:"type:uuid;not null;index"`
	PropertyID  *uuid.UUID `gorm:"type:uuid"`
	Subject     string     `gorm:"type:varchar(200);not null"`
	Body        string     `gorm:"type:text;not null"`
	ReadAt      *time.Time
}

// TableName returns the table name for GORM
func (MessageModel) TableName() string {
	return "messages"
}

// ToDomain converts the persistence model to a domain Message.
func (m *MessageModel) ToDomain() *messaging.Message {
	return &messaging.Message{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		SenderID:          m.SenderID,
		RecipientID:       m.RecipientID,
		PropertyID:        m.PropertyID,
		Subject:           m.Subject,
		Body:              m.Body,
		ReadAt:            m.ReadAt,
	}
}

// FromDomain populates the persistence model from a domain Message.
func (m *MessageModel) FromDomain(msg *messaging.Message) {
	m.FromDomainAggregateRoot(msg.BaseAggregateRoot)
	m.SenderID = msg.SenderID
	m.RecipientID = msg.RecipientID
	m.PropertyID = msg.PropertyID
	m.Subject = msg.Subject
	m.Body = msg.Body
	m.ReadAt = msg.ReadAt
}

// MessageModelFromDomain creates a new persistence model from a domain Message.
func MessageModelFromDomain(msg *messaging.Message) *MessageModel {
	m := &MessageModel{}
	m.FromDomain(msg)
	return m
}
