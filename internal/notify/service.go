package notify

import (
	"context"
	"fmt"

	"ehealth-portal-server/internal/models"
)

// Store persists notifications. MarkReadByRequest must be a single atomic
// update so a bulk mark-read can never leave a partial set read.
type Store interface {
	Insert(ctx context.Context, n *models.Notification) error
	ListFor(ctx context.Context, recipientEmail string) ([]models.Notification, error)
	MarkRead(ctx context.Context, id uint) error
	MarkReadByRequest(ctx context.Context, requestID int64, recipientEmail string) (int64, error)
}

// Service is the notification fan-out component: it stores one notification
// per triggering event and serves the read/unread model the UI polls.
type Service struct {
	store Store
}

// NewService creates a notification service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Notify appends one unread notification for the recipient. Every call is an
// unconditional insert; callers invoke it exactly once per logical event.
func (s *Service) Notify(ctx context.Context, recipientEmail, text string, requestID int64) error {
	n := &models.Notification{
		RecipientEmail: recipientEmail,
		Message:        text,
		Status:         models.NotificationUnread,
	}
	if requestID != 0 {
		n.RequestID = &requestID
	}
	if err := s.store.Insert(ctx, n); err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

// ListFor returns the recipient's notifications newest-first.
func (s *Service) ListFor(ctx context.Context, recipientEmail string) ([]models.Notification, error) {
	return s.store.ListFor(ctx, recipientEmail)
}

// MarkRead flips a single notification to read.
func (s *Service) MarkRead(ctx context.Context, id uint) error {
	return s.store.MarkRead(ctx, id)
}

// MarkReadByRequest marks every unread notification tied to the request and
// addressed to the recipient as read, in one statement. Used when a user
// opens a chat thread. Calling it again is a no-op, not an error.
func (s *Service) MarkReadByRequest(ctx context.Context, requestID int64, recipientEmail string) (int64, error) {
	return s.store.MarkReadByRequest(ctx, requestID, recipientEmail)
}
