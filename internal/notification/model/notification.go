// Package model provides domain models for the notification module.
package model

import "time"

// Notification event types emitted by the review engine.
const (
	EventAssigned            = "assigned"
	EventDeadlineApproaching = "deadline_approaching"
	EventRevisionOverdue     = "overdue"
	EventConflictEscalated   = "conflict_escalated"
)

// Notification is one fire-and-forget signal persisted for delivery.
// Matches the notifications table schema.
type Notification struct {
	NotificationID string    `gorm:"primaryKey;column:notification_id;type:varchar(36)"        json:"notification_id"`
	RecipientID    string    `gorm:"column:recipient_id;type:varchar(255);not null;index:idx_notifications_recipient_id" json:"recipient_id"`
	EventType      string    `gorm:"column:event_type;type:varchar(64);not null"               json:"event_type"`
	Payload        string    `gorm:"column:payload;type:text"                                  json:"payload"`
	CreatedAt      time.Time `gorm:"column:created_at;type:timestamptz;not null;default:now()" json:"created_at"`
}

// TableName specifies the table name for GORM.
func (Notification) TableName() string {
	return "notifications"
}
