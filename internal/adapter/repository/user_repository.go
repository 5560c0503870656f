package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/airrands/airrands-backend/internal/domain/model"
	"github.com/airrands/airrands-backend/internal/domain/repository"
)

// userRepository implements the UserRepository interface
type userRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB, logger *zap.Logger) repository.UserRepository {
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// GetByID retrieves a user by id
func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("failed to get user",
			zap.String("user_id", id.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// SetPushToken stores the user's device push token
func (r *userRepository) SetPushToken(ctx context.Context, userID uuid.UUID, token string) error {
	res := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"expo_push_token": token,
			"updated_at":      time.Now(),
		})

	if res.Error != nil {
		r.logger.Error("failed to set push token",
			zap.String("user_id", userID.String()),
			zap.Error(res.Error))
		return fmt.Errorf("failed to set push token: %w", res.Error)
	}

	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// ClearPushToken removes the user's stored push token. Called when the
// relay reports the token as permanently invalid.
func (r *userRepository) ClearPushToken(ctx context.Context, userID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"expo_push_token": nil,
			"updated_at":      time.Now(),
		})

	if res.Error != nil {
		r.logger.Error("failed to clear push token",
			zap.String("user_id", userID.String()),
			zap.Error(res.Error))
		return fmt.Errorf("failed to clear push token: %w", res.Error)
	}

	return nil
}

// GetPreferences retrieves the user's notification preferences. A missing
// row is returned as nil, nil: the user has never opted out of anything.
func (r *userRepository) GetPreferences(ctx context.Context, userID uuid.UUID) (*model.NotificationPreference, error) {
	var prefs model.NotificationPreference

	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&prefs).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("failed to get notification preferences",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get notification preferences: %w", err)
	}

	return &prefs, nil
}

// UpsertPreferences creates or replaces the user's preferences row
func (r *userRepository) UpsertPreferences(ctx context.Context, prefs *model.NotificationPreference) error {
	prefs.UpdatedAt = time.Now()

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			UpdateAll: true,
		}).
		Create(prefs).Error

	if err != nil {
		r.logger.Error("failed to upsert notification preferences",
			zap.String("user_id", prefs.UserID.String()),
			zap.Error(err))
		return fmt.Errorf("failed to upsert notification preferences: %w", err)
	}

	return nil
}

// ListOnlineRunners returns the user rows of runners currently online
func (r *userRepository) ListOnlineRunners(ctx context.Context) ([]model.User, error) {
	var users []model.User

	err := r.db.WithContext(ctx).
		Joins("JOIN runners ON runners.user_id = users.id").
		Where("runners.online = ?", true).
		Find(&users).Error

	if err != nil {
		r.logger.Error("failed to list online runners", zap.Error(err))
		return nil, fmt.Errorf("failed to list online runners: %w", err)
	}

	return users, nil
}
