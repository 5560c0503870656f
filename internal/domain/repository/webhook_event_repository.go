package repository

import (
	"context"

	"github.com/airrands/airrands-backend/internal/domain/model"
)

// WebhookEventRepository is the audit log of gateway webhook deliveries.
type WebhookEventRepository interface {
	SaveEvent(ctx context.Context, eventType, reference string, data model.JSONB) (int64, error)
	MarkProcessed(ctx context.Context, id int64) error
	MarkIgnored(ctx context.Context, id int64) error
	MarkFailed(ctx context.Context, id int64, cause error) error
}
