package http

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/airrands/airrands-backend/internal/domain/dto"
	"github.com/airrands/airrands-backend/internal/infrastructure/messaging"
	"github.com/airrands/airrands-backend/internal/middleware/auth"
	"github.com/airrands/airrands-backend/internal/usecase"
)

type NotificationHandler struct {
	notifications *usecase.NotificationService
	stream        messaging.Client
	logger        *zap.Logger
}

// NewNotificationHandler creates the handler. stream may be nil when no live
// stream backend is configured; the SSE endpoint then returns 503.
func NewNotificationHandler(notifications *usecase.NotificationService, stream messaging.Client, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{
		notifications: notifications,
		stream:        stream,
		logger:        logger,
	}
}

// List returns the caller's notifications, newest first.
func (h *NotificationHandler) List(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	limit, offset := pagination(c)
	notifications, err := h.notifications.List(c.Request().Context(), user.UserID, limit, offset)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, notifications)
}

// MarkRead flips the read flag on one notification owned by the caller.
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid notification id"})
	}

	if err := h.notifications.MarkRead(c.Request().Context(), id, user.UserID); err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Notification not found"})
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// MarkAllRead flips the read flag on all of the caller's notifications.
func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	updated, err := h.notifications.MarkAllRead(c.Request().Context(), user.UserID)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "updated": updated})
}

// UnreadCount returns the caller's unread badge count.
func (h *NotificationHandler) UnreadCount(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	count, err := h.notifications.UnreadCount(c.Request().Context(), user.UserID)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"count": count})
}

// UpdatePreferences replaces the caller's per-category opt-outs.
func (h *NotificationHandler) UpdatePreferences(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	var req dto.PreferencesRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}

	if err := h.notifications.UpdatePreferences(c.Request().Context(), user.UserID, &req); err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// SendPush is the admin-invoked direct notification endpoint.
func (h *NotificationHandler) SendPush(c echo.Context) error {
	var req dto.SendPushRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	if err := h.notifications.SendDirect(c.Request().Context(), &req); err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// Stream is the live notification feed, delivered as server-sent events.
// The subscription is closed when the client disconnects.
func (h *NotificationHandler) Stream(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	if h.stream == nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "Live stream not available"})
	}

	ctx := c.Request().Context()
	sub, err := h.stream.Subscribe(ctx, usecase.StreamChannel(user.UserID))
	if err != nil {
		h.logger.Error("Failed to subscribe to notification stream",
			zap.String("user_id", user.UserID.String()),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to open stream"})
	}
	defer sub.Close()

	resp := c.Response()
	resp.Header().Set(echo.HeaderContentType, "text/event-stream")
	resp.Header().Set(echo.HeaderCacheControl, "no-cache")
	resp.Header().Set(echo.HeaderConnection, "keep-alive")
	resp.WriteHeader(http.StatusOK)
	resp.Flush()

	h.logger.Info("Notification stream opened",
		zap.String("user_id", user.UserID.String()))

	for {
		select {
		case <-ctx.Done():
			h.logger.Debug("Notification stream closed",
				zap.String("user_id", user.UserID.String()))
			return nil
		case msg, ok := <-sub.C:
			if !ok {
				return nil
			}
			if _, err := fmt.Fprintf(resp, "data: %s\n\n", msg.Payload); err != nil {
				return nil
			}
			resp.Flush()
		}
	}
}
