package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/airrands/airrands-backend/internal/domain/model"
	"github.com/airrands/airrands-backend/internal/domain/repository"
)

// chatRepository implements the ChatRepository interface
type chatRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewChatRepository creates a new chat repository
func NewChatRepository(db *gorm.DB, logger *zap.Logger) repository.ChatRepository {
	return &chatRepository{
		db:     db,
		logger: logger,
	}
}

// CreateMessage persists a chat message
func (r *chatRepository) CreateMessage(ctx context.Context, message *model.ChatMessage) error {
	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		r.logger.Error("failed to create chat message",
			zap.String("chat_id", message.ChatID),
			zap.Error(err))
		return fmt.Errorf("failed to create chat message: %w", err)
	}

	return nil
}

// EnsureParticipant adds the user to the thread if not already present
func (r *chatRepository) EnsureParticipant(ctx context.Context, chatID string, userID uuid.UUID) error {
	participant := &model.ChatParticipant{
		ChatID: chatID,
		UserID: userID,
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(participant).Error

	if err != nil {
		r.logger.Error("failed to ensure chat participant",
			zap.String("chat_id", chatID),
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return fmt.Errorf("failed to ensure chat participant: %w", err)
	}

	return nil
}

// ListParticipants returns the user ids in a chat thread
func (r *chatRepository) ListParticipants(ctx context.Context, chatID string) ([]uuid.UUID, error) {
	var participants []model.ChatParticipant

	err := r.db.WithContext(ctx).
		Where("chat_id = ?", chatID).
		Find(&participants).Error

	if err != nil {
		r.logger.Error("failed to list chat participants",
			zap.String("chat_id", chatID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to list chat participants: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(participants))
	for _, p := range participants {
		ids = append(ids, p.UserID)
	}

	return ids, nil
}
