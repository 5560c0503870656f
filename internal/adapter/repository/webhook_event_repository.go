package repository

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/airrands/airrands-backend/internal/domain/model"
	"github.com/airrands/airrands-backend/internal/domain/repository"
)

// webhookEventRepository implements the WebhookEventRepository interface
type webhookEventRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewWebhookEventRepository creates a new webhook event repository
func NewWebhookEventRepository(db *gorm.DB, logger *zap.Logger) repository.WebhookEventRepository {
	return &webhookEventRepository{
		db:     db,
		logger: logger,
	}
}

// SaveEvent records one webhook delivery in the audit log
func (r *webhookEventRepository) SaveEvent(ctx context.Context, eventType, reference string, data model.JSONB) (int64, error) {
	event := &model.GatewayWebhookEvent{
		EventType: eventType,
		Reference: reference,
		Status:    model.WebhookStatusPending,
		Data:      data,
	}

	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		r.logger.Error("failed to save webhook event",
			zap.String("event_type", eventType),
			zap.String("reference", reference),
			zap.Error(err))
		return 0, fmt.Errorf("failed to save webhook event: %w", err)
	}

	return event.ID, nil
}

// MarkProcessed marks a webhook delivery as fully handled
func (r *webhookEventRepository) MarkProcessed(ctx context.Context, id int64) error {
	return r.setStatus(ctx, id, model.WebhookStatusCompleted, nil)
}

// MarkIgnored marks a delivery whose event type is not handled
func (r *webhookEventRepository) MarkIgnored(ctx context.Context, id int64) error {
	return r.setStatus(ctx, id, model.WebhookStatusIgnored, nil)
}

// MarkFailed marks a delivery whose processing errored
func (r *webhookEventRepository) MarkFailed(ctx context.Context, id int64, cause error) error {
	return r.setStatus(ctx, id, model.WebhookStatusFailed, cause)
}

func (r *webhookEventRepository) setStatus(ctx context.Context, id int64, status model.WebhookStatus, cause error) error {
	now := time.Now()
	updates := map[string]interface{}{
		"status":       status,
		"processed_at": &now,
	}
	if cause != nil {
		msg := cause.Error()
		updates["last_error"] = &msg
	}

	res := r.db.WithContext(ctx).
		Model(&model.GatewayWebhookEvent{}).
		Where("id = ?", id).
		Updates(updates)

	if res.Error != nil {
		r.logger.Error("failed to update webhook event status",
			zap.Int64("event_id", id),
			zap.String("status", string(status)),
			zap.Error(res.Error))
		return fmt.Errorf("failed to update webhook event status: %w", res.Error)
	}

	if res.RowsAffected == 0 {
		return fmt.Errorf("webhook event not found: %d", id)
	}

	return nil
}
