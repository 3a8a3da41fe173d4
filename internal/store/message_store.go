package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"ehealth-portal-server/internal/chat"
	"ehealth-portal-server/internal/models"
)

// MessageStore is the GORM-backed message and attachment log.
type MessageStore struct {
	db *gorm.DB
}

// NewMessageStore creates a message store.
func NewMessageStore(db *gorm.DB) *MessageStore {
	return &MessageStore{db: db}
}

// AppendMessage inserts a message; the auto-increment id is the ordering key.
func (s *MessageStore) AppendMessage(ctx context.Context, msg *models.ChatMessage) error {
	return s.db.WithContext(ctx).Create(msg).Error
}

// AppendAttachment inserts an attachment record.
func (s *MessageStore) AppendAttachment(ctx context.Context, att *models.ChatAttachment) error {
	return s.db.WithContext(ctx).Create(att).Error
}

// MessagesFor returns a request's messages in append order.
func (s *MessageStore) MessagesFor(ctx context.Context, requestID int64) ([]models.ChatMessage, error) {
	var msgs []models.ChatMessage
	err := s.db.WithContext(ctx).
		Where("request_id = ?", requestID).
		Order("id ASC").
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

// AttachmentsFor returns a request's attachments in append order.
func (s *MessageStore) AttachmentsFor(ctx context.Context, requestID int64) ([]models.ChatAttachment, error) {
	var atts []models.ChatAttachment
	err := s.db.WithContext(ctx).
		Where("request_id = ?", requestID).
		Order("id ASC").
		Find(&atts).Error
	if err != nil {
		return nil, err
	}
	return atts, nil
}

// AttachmentByID returns one attachment record.
func (s *MessageStore) AttachmentByID(ctx context.Context, id uint) (*models.ChatAttachment, error) {
	var att models.ChatAttachment
	err := s.db.WithContext(ctx).First(&att, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, chat.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &att, nil
}
