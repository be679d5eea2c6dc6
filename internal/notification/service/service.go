// Package service provides the fire-and-forget notification sink.
//
// The engine calls the sink synchronously but tolerates its failure: a
// notification that cannot be recorded is logged and dropped, never failing
// the core transaction that produced it.
package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/capstone_review/internal/notification/model"
)

// Notifier is the collaborator interface injected into the engine services.
type Notifier interface {
	// Notify records one event for a recipient. Never returns an error.
	Notify(ctx context.Context, recipientID, eventType string, payload map[string]interface{})
}

type notifier struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new notification sink backed by the notifications table.
func New(db *gorm.DB, logger *zap.SugaredLogger) Notifier {
	return &notifier{
		db:     db,
		logger: logger,
	}
}

// Notify records one event for a recipient.
func (n *notifier) Notify(
	ctx context.Context,
	recipientID, eventType string,
	payload map[string]interface{},
) {
	body, err := json.Marshal(payload)
	if err != nil {
		n.logger.Warnw("notification payload not serializable, dropping",
			"recipient_id", recipientID, "event_type", eventType, "error", err)
		return
	}

	row := &model.Notification{
		NotificationID: uuid.NewString(),
		RecipientID:    recipientID,
		EventType:      eventType,
		Payload:        string(body),
		CreatedAt:      time.Now(),
	}

	if err := n.db.WithContext(ctx).Create(row).Error; err != nil {
		n.logger.Warnw("failed to record notification, dropping",
			"recipient_id", recipientID, "event_type", eventType, "error", err)
	}
}

// Nop returns a sink that drops everything, for tests and wiring without
// a database.
func Nop() Notifier {
	return nopNotifier{}
}

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, string, string, map[string]interface{}) {}
