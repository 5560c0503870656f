package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/airrands/airrands-backend/internal/domain/model"
)

// ChatRepository persists chat messages and thread membership.
type ChatRepository interface {
	CreateMessage(ctx context.Context, message *model.ChatMessage) error
	EnsureParticipant(ctx context.Context, chatID string, userID uuid.UUID) error
	ListParticipants(ctx context.Context, chatID string) ([]uuid.UUID, error)
}
