package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/airrands/airrands-backend/internal/domain/dto"
	"github.com/airrands/airrands-backend/internal/middleware/auth"
	"github.com/airrands/airrands-backend/internal/usecase"
)

type ChatHandler struct {
	chats  *usecase.ChatService
	logger *zap.Logger
}

func NewChatHandler(chats *usecase.ChatService, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		chats:  chats,
		logger: logger,
	}
}

// PostMessage stores a message and notifies the other participants.
func (h *ChatHandler) PostMessage(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	chatID := c.Param("chatId")
	if chatID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Chat id required"})
	}

	var req dto.ChatMessageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	message, err := h.chats.PostMessage(c.Request().Context(), chatID, user.UserID, user.Name, &req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusCreated, message)
}
