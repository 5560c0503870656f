package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/airrands/airrands-backend/internal/domain/model"
)

// UserRepository persists user profiles, push tokens and notification
// preferences.
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	SetPushToken(ctx context.Context, userID uuid.UUID, token string) error
	ClearPushToken(ctx context.Context, userID uuid.UUID) error

	// GetPreferences returns nil without error when the user has never
	// saved preferences; callers treat that as everything allowed.
	GetPreferences(ctx context.Context, userID uuid.UUID) (*model.NotificationPreference, error)
	UpsertPreferences(ctx context.Context, prefs *model.NotificationPreference) error

	// ListOnlineRunners returns the user rows of runners currently online,
	// for errand fan-out.
	ListOnlineRunners(ctx context.Context) ([]model.User, error)
}
