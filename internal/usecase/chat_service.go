package usecase

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/airrands/airrands-backend/internal/domain/dto"
	"github.com/airrands/airrands-backend/internal/domain/model"
	"github.com/airrands/airrands-backend/internal/domain/repository"
)

// ChatService persists chat messages and notifies the other participants.
type ChatService struct {
	chats    repository.ChatRepository
	notifier Notifier
	logger   *zap.Logger
}

// NewChatService creates a new chat service.
func NewChatService(chats repository.ChatRepository, notifier Notifier, logger *zap.Logger) *ChatService {
	return &ChatService{
		chats:    chats,
		notifier: notifier,
		logger:   logger,
	}
}

// PostMessage stores a message and notifies every other participant in the
// thread. The sender is registered as a participant on first write.
func (s *ChatService) PostMessage(ctx context.Context, chatID string, senderID uuid.UUID, senderName string, req *dto.ChatMessageRequest) (*model.ChatMessage, error) {
	message := &model.ChatMessage{
		ID:       uuid.New(),
		ChatID:   chatID,
		SenderID: senderID,
		Body:     req.Body,
	}

	if err := s.chats.CreateMessage(ctx, message); err != nil {
		return nil, err
	}

	if err := s.chats.EnsureParticipant(ctx, chatID, senderID); err != nil {
		s.logger.Warn("failed to register chat participant",
			zap.String("chat_id", chatID),
			zap.String("user_id", senderID.String()),
			zap.Error(err))
	}

	s.notifyParticipants(ctx, message, senderName)

	return message, nil
}

func (s *ChatService) notifyParticipants(ctx context.Context, message *model.ChatMessage, senderName string) {
	participants, err := s.chats.ListParticipants(ctx, message.ChatID)
	if err != nil {
		s.logger.Warn("failed to list participants for message fan-out",
			zap.String("chat_id", message.ChatID),
			zap.Error(err))
		return
	}

	title := "New message"
	if senderName != "" {
		title = senderName
	}
	data := map[string]interface{}{
		"chat_id":    message.ChatID,
		"message_id": message.ID.String(),
	}

	for _, id := range participants {
		if id == message.SenderID {
			continue
		}
		if err := s.notifier.Notify(ctx, id, title, message.Body, model.NotificationTypeMessage, data); err != nil {
			s.logger.Warn("failed to notify chat participant",
				zap.String("chat_id", message.ChatID),
				zap.String("user_id", id.String()),
				zap.Error(err))
		}
	}
}
