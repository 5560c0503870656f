package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/airrands/airrands-backend/internal/domain/model"
	"github.com/airrands/airrands-backend/internal/domain/repository"
)

// notificationRepository implements the NotificationRepository interface
type notificationRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *gorm.DB, logger *zap.Logger) repository.NotificationRepository {
	return &notificationRepository{
		db:     db,
		logger: logger,
	}
}

// Create persists a notification record
func (r *notificationRepository) Create(ctx context.Context, notification *model.Notification) error {
	if err := r.db.WithContext(ctx).Create(notification).Error; err != nil {
		r.logger.Error("failed to create notification",
			zap.String("user_id", notification.UserID.String()),
			zap.String("type", string(notification.Type)),
			zap.Error(err))
		return fmt.Errorf("failed to create notification: %w", err)
	}

	return nil
}

// ListByUser retrieves a user's notifications, newest first
func (r *notificationRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Notification, error) {
	var notifications []model.Notification

	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset)

	if err := query.Find(&notifications).Error; err != nil {
		r.logger.Error("failed to list notifications",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	return notifications, nil
}

// MarkRead flips the read flag on one notification owned by the user
func (r *notificationRepository) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("read", true)

	if res.Error != nil {
		r.logger.Error("failed to mark notification read",
			zap.String("notification_id", id.String()),
			zap.Error(res.Error))
		return fmt.Errorf("failed to mark notification read: %w", res.Error)
	}

	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// MarkAllRead flips the read flag on all of the user's unread notifications
func (r *notificationRepository) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true)

	if res.Error != nil {
		r.logger.Error("failed to mark all notifications read",
			zap.String("user_id", userID.String()),
			zap.Error(res.Error))
		return 0, fmt.Errorf("failed to mark all notifications read: %w", res.Error)
	}

	return res.RowsAffected, nil
}

// CountUnread counts the user's unread notifications for badges
func (r *notificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&count).Error

	if err != nil {
		r.logger.Error("failed to count unread notifications",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	return count, nil
}
