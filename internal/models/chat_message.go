package models

import (
	"time"
)

// ChatMessage represents a text message inside a chat request. Insertion
// order is display order; the auto-increment id breaks same-timestamp ties.
type ChatMessage struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	RequestID  int64     `gorm:"index;not null" json:"requestId"`
	SenderName string    `gorm:"size:100" json:"senderName"`
	SenderRole Role      `gorm:"size:20" json:"senderRole"`
	Body       string    `gorm:"type:text" json:"body"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ChatAttachment represents a file shared inside a chat request. The bytes
// themselves live in the blob store; Locator is the opaque reference to them.
type ChatAttachment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	RequestID  int64     `gorm:"index;not null" json:"requestId"`
	FileName   string    `gorm:"size:255;not null" json:"fileName"`
	Locator    string    `gorm:"size:255;not null" json:"-"`
	SenderName string    `gorm:"size:100" json:"senderName"`
	SenderRole Role      `gorm:"size:20" json:"senderRole"`
	CreatedAt  time.Time `json:"createdAt"`
}

// TimelineKind tags the variants of a timeline entry
type TimelineKind string

const (
	TimelineMessage    TimelineKind = "message"
	TimelineAttachment TimelineKind = "attachment"
)

// TimelineEntry is one element of the merged chat timeline: either a message
// or an attachment, ordered chronologically.
type TimelineEntry struct {
	Kind       TimelineKind    `json:"kind"`
	Message    *ChatMessage    `json:"message,omitempty"`
	Attachment *ChatAttachment `json:"attachment,omitempty"`
}

// At returns the timestamp used to order the entry in the timeline.
func (e TimelineEntry) At() time.Time {
	if e.Kind == TimelineMessage && e.Message != nil {
		return e.Message.CreatedAt
	}
	if e.Attachment != nil {
		return e.Attachment.CreatedAt
	}
	return time.Time{}
}
