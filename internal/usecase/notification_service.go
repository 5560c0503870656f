package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/airrands/airrands-backend/internal/domain/dto"
	"github.com/airrands/airrands-backend/internal/domain/model"
	"github.com/airrands/airrands-backend/internal/domain/provider"
	"github.com/airrands/airrands-backend/internal/domain/repository"
)

// Notifier delivers one notification to one user. Business transitions
// depend on this interface so push delivery stays decoupled from the
// transactional writes.
type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, title, body string, category model.NotificationType, data map[string]interface{}) error
}

// StreamPublisher pushes persisted notifications onto the live channel that
// client listeners subscribe to. Best-effort, like the push relay.
type StreamPublisher interface {
	Publish(ctx context.Context, channel string, message interface{}) error
}

// NotificationService is the notification dispatcher: it persists the
// in-app record (authoritative), sends the push (best-effort) and publishes
// to the live stream (best-effort), honoring per-category opt-outs.
type NotificationService struct {
	notifications repository.NotificationRepository
	users         repository.UserRepository
	push          provider.PushSender
	publisher     StreamPublisher
	logger        *zap.Logger
}

// NewNotificationService creates a new notification service. publisher may
// be nil when no live stream backend is configured.
func NewNotificationService(
	notifications repository.NotificationRepository,
	users repository.UserRepository,
	push provider.PushSender,
	publisher StreamPublisher,
	logger *zap.Logger,
) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		users:         users,
		push:          push,
		publisher:     publisher,
		logger:        logger,
	}
}

// StreamChannel names the live channel for one user's notifications.
func StreamChannel(userID uuid.UUID) string {
	return fmt.Sprintf("notifications:%s", userID)
}

// Notify delivers a notification to one user. The in-app record is always
// persisted and its write failure is the only error surfaced; the push and
// the stream publish are best-effort. A disabled category skips the push
// but still persists the record.
func (s *NotificationService) Notify(ctx context.Context, userID uuid.UUID, title, body string, category model.NotificationType, data map[string]interface{}) error {
	record := &model.Notification{
		ID:     uuid.New(),
		UserID: userID,
		Type:   category,
		Title:  title,
		Body:   body,
		Read:   false,
		Data:   model.JSONB(data),
	}

	if err := s.notifications.Create(ctx, record); err != nil {
		return fmt.Errorf("failed to persist notification: %w", err)
	}

	prefs, err := s.users.GetPreferences(ctx, userID)
	if err != nil {
		// Preference lookup failure degrades to default-allow; the record
		// already exists either way.
		s.logger.Warn("failed to load notification preferences",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		prefs = nil
	}

	if prefs.Allows(category) {
		s.sendPush(ctx, userID, title, body, data)
	} else {
		s.logger.Debug("push skipped by preference",
			zap.String("user_id", userID.String()),
			zap.String("category", string(category)))
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, StreamChannel(userID), record); err != nil {
			s.logger.Warn("failed to publish notification to stream",
				zap.String("user_id", userID.String()),
				zap.Error(err))
		}
	}

	return nil
}

// sendPush delivers via the relay; errors are logged, never propagated. A
// permanently invalid token is cleared so the relay is not hit again.
func (s *NotificationService) sendPush(ctx context.Context, userID uuid.UUID, title, body string, data map[string]interface{}) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		s.logger.Warn("failed to load user for push delivery",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return
	}
	if user == nil || user.ExpoPushToken == nil || *user.ExpoPushToken == "" {
		return
	}

	if err := s.push.Send(ctx, *user.ExpoPushToken, title, body, data); err != nil {
		if errors.Is(err, provider.ErrDeviceNotRegistered) {
			s.logger.Info("clearing dead push token",
				zap.String("user_id", userID.String()))
			if clearErr := s.users.ClearPushToken(ctx, userID); clearErr != nil {
				s.logger.Warn("failed to clear dead push token",
					zap.String("user_id", userID.String()),
					zap.Error(clearErr))
			}
			return
		}
		s.logger.Warn("push delivery failed",
			zap.String("user_id", userID.String()),
			zap.Error(err))
	}
}

// NotifyMany fans one notification out to many users. Per-recipient
// failures are logged and do not stop the fan-out.
func (s *NotificationService) NotifyMany(ctx context.Context, userIDs []uuid.UUID, title, body string, category model.NotificationType, data map[string]interface{}) {
	for _, id := range userIDs {
		if err := s.Notify(ctx, id, title, body, category, data); err != nil {
			s.logger.Warn("fan-out delivery failed",
				zap.String("user_id", id.String()),
				zap.Error(err))
		}
	}
}

// SendDirect is the admin-invoked direct notification operation.
func (s *NotificationService) SendDirect(ctx context.Context, req *dto.SendPushRequest) error {
	category := model.NotificationType(req.Type)
	if category == "" {
		category = model.NotificationTypeGeneral
	}
	return s.Notify(ctx, req.UserID, req.Title, req.Body, category, req.Data)
}

// List returns a user's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.notifications.ListByUser(ctx, userID, limit, offset)
}

// MarkRead flips the read flag on one notification owned by the caller.
func (s *NotificationService) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	return s.notifications.MarkRead(ctx, id, userID)
}

// MarkAllRead flips the read flag on all of the caller's notifications.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.notifications.MarkAllRead(ctx, userID)
}

// UnreadCount returns the caller's unread badge count.
func (s *NotificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.notifications.CountUnread(ctx, userID)
}

// UpdatePreferences replaces the caller's per-category opt-outs.
func (s *NotificationService) UpdatePreferences(ctx context.Context, userID uuid.UUID, req *dto.PreferencesRequest) error {
	prefs := &model.NotificationPreference{
		UserID:   userID,
		Orders:   req.Orders,
		Messages: req.Messages,
		Payments: req.Payments,
		Errands:  req.Errands,
		General:  req.General,
	}
	return s.users.UpsertPreferences(ctx, prefs)
}
