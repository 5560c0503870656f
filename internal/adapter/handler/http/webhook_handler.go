package http

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/airrands/airrands-backend/internal/domain/dto"
	"github.com/airrands/airrands-backend/internal/domain/model"
	"github.com/airrands/airrands-backend/internal/domain/provider"
	"github.com/airrands/airrands-backend/internal/domain/repository"
	"github.com/airrands/airrands-backend/internal/usecase"
)

const signatureHeader = "x-paystack-signature"

// WebhookHandler receives Paystack webhook deliveries. Every accepted
// delivery is written to the audit log before processing; a delivery with a
// bad signature is rejected before anything is written.
type WebhookHandler struct {
	logger   *zap.Logger
	gateway  provider.GatewayClient
	events   repository.WebhookEventRepository
	payments *usecase.PaymentService
}

func NewWebhookHandler(logger *zap.Logger, gateway provider.GatewayClient, events repository.WebhookEventRepository, payments *usecase.PaymentService) *WebhookHandler {
	return &WebhookHandler{
		logger:   logger,
		gateway:  gateway,
		events:   events,
		payments: payments,
	}
}

func (h *WebhookHandler) HandleWebhook(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		h.logger.Error("Error reading request body", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Error reading request body"})
	}

	sig := c.Request().Header.Get(signatureHeader)
	if !h.gateway.VerifyWebhookSignature(body, sig) {
		h.logger.Warn("Webhook signature verification failed",
			zap.Int("body_bytes", len(body)))
		return c.JSON(http.StatusUnauthorized, echo.Map{
			"error": "Webhook signature verification failed",
		})
	}

	var event dto.GatewayEvent
	if err := json.Unmarshal(body, &event); err != nil {
		h.logger.Error("Error parsing webhook payload", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Error parsing webhook"})
	}

	h.logger.Info("Webhook event received",
		zap.String("event", event.Event),
		zap.String("reference", event.Data.Reference))

	var raw model.JSONB
	_ = json.Unmarshal(body, &raw)

	ctx := c.Request().Context()
	eventID, err := h.events.SaveEvent(ctx, event.Event, event.Data.Reference, raw)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to record webhook event"})
	}

	handled, procErr := h.payments.RecordGatewayResult(ctx, &event)
	switch {
	case procErr != nil:
		if markErr := h.events.MarkFailed(ctx, eventID, procErr); markErr != nil {
			h.logger.Error("Failed to mark webhook event failed",
				zap.Int64("event_id", eventID),
				zap.Error(markErr))
		}
		h.logger.Error("Webhook processing failed",
			zap.String("event", event.Event),
			zap.String("reference", event.Data.Reference),
			zap.Error(procErr))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Webhook processing failed"})
	case !handled:
		if markErr := h.events.MarkIgnored(ctx, eventID); markErr != nil {
			h.logger.Error("Failed to mark webhook event ignored",
				zap.Int64("event_id", eventID),
				zap.Error(markErr))
		}
	default:
		if markErr := h.events.MarkProcessed(ctx, eventID); markErr != nil {
			h.logger.Error("Failed to mark webhook event processed",
				zap.Int64("event_id", eventID),
				zap.Error(markErr))
		}
	}

	// Unhandled event types still return 200 so the gateway stops retrying.
	return c.JSON(http.StatusOK, echo.Map{"received": true})
}
