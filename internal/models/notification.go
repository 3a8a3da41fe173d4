package models

import (
	"time"
)

// NotificationStatus represents the read state of a notification
type NotificationStatus string

const (
	NotificationUnread NotificationStatus = "unread"
	NotificationRead   NotificationStatus = "read"
)

// Notification is a message addressed to exactly one recipient, created as a
// side effect of a chat request or message/attachment event. RequestID is a
// weak reference: the referenced request may close independently.
type Notification struct {
	ID             uint               `gorm:"primaryKey" json:"id"`
	RecipientEmail string             `gorm:"size:255;index" json:"recipientEmail"`
	Message        string             `gorm:"size:512" json:"message"`
	Status         NotificationStatus `gorm:"size:10;default:'unread'" json:"status"`
	RequestID      *int64             `gorm:"index" json:"requestId,omitempty"`
	CreatedAt      time.Time          `json:"createdAt"`
}
