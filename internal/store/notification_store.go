package store

import (
	"context"

	"gorm.io/gorm"

	"ehealth-portal-server/internal/chat"
	"ehealth-portal-server/internal/models"
)

// NotificationStore is the GORM-backed notification ledger.
type NotificationStore struct {
	db *gorm.DB
}

// NewNotificationStore creates a notification store.
func NewNotificationStore(db *gorm.DB) *NotificationStore {
	return &NotificationStore{db: db}
}

// Insert appends one notification row.
func (s *NotificationStore) Insert(ctx context.Context, n *models.Notification) error {
	return s.db.WithContext(ctx).Create(n).Error
}

// ListFor returns the recipient's notifications newest-first, with the
// auto-increment id breaking same-timestamp ties.
func (s *NotificationStore) ListFor(ctx context.Context, recipientEmail string) ([]models.Notification, error) {
	var ns []models.Notification
	err := s.db.WithContext(ctx).
		Where("recipient_email = ?", recipientEmail).
		Order("created_at DESC, id DESC").
		Find(&ns).Error
	if err != nil {
		return nil, err
	}
	return ns, nil
}

// MarkRead flips one notification to read.
func (s *NotificationStore) MarkRead(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Exec(
		"UPDATE notifications SET status = ? WHERE id = ?",
		models.NotificationRead, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return chat.ErrNotFound
	}
	return nil
}

// MarkReadByRequest marks all of the recipient's unread notifications for a
// request as read in a single UPDATE, so an interrupted bulk read can never
// leave a partial set. Returns the number of rows flipped; zero on a repeat
// call is a no-op, not an error.
func (s *NotificationStore) MarkReadByRequest(ctx context.Context, requestID int64, recipientEmail string) (int64, error) {
	res := s.db.WithContext(ctx).Exec(
		"UPDATE notifications SET status = ? WHERE request_id = ? AND recipient_email = ? AND status = ?",
		models.NotificationRead, requestID, recipientEmail, models.NotificationUnread)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
