package domain

import (
	"time"

	"github.com/google/uuid"
)

// NotificationStatus is the delivery state of an outbound email.
type NotificationStatus string

const (
	NotificationPending NotificationStatus = "pending"
	NotificationSent    NotificationStatus = "sent"
	NotificationFailed  NotificationStatus = "failed"
)

// Notification is an email waiting in, or delivered from, the outbox.
// Rows are written alongside the comment that caused them and picked up
// by the notify dispatcher.
type Notification struct {
	ID        uuid.UUID
	CommentID uuid.UUID
	Recipient string
	Subject   string
	Body      string
	Status    NotificationStatus
	Attempts  int
	LastError string
	CreatedAt time.Time
	SentAt    *time.Time
}
