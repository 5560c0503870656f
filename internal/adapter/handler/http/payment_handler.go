package http

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/airrands/airrands-backend/internal/domain/dto"
	"github.com/airrands/airrands-backend/internal/middleware/auth"
	"github.com/airrands/airrands-backend/internal/usecase"
)

type PaymentHandler struct {
	payments *usecase.PaymentService
	logger   *zap.Logger
}

func NewPaymentHandler(payments *usecase.PaymentService, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		payments: payments,
		logger:   logger,
	}
}

// SubmitPayment creates a pending payment + order pair for the caller.
func (h *PaymentHandler) SubmitPayment(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err // RequireAuth already returns the JSON error response
	}

	var req dto.SubmitPaymentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	resp, err := h.payments.SubmitPayment(c.Request().Context(), user.UserID, user.Name, user.Email, &req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusCreated, resp)
}

// VerifyTransaction checks a reference against the gateway on demand.
func (h *PaymentHandler) VerifyTransaction(c echo.Context) error {
	reference := c.Param("reference")
	if reference == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Reference required"})
	}

	data, err := h.payments.VerifyTransaction(c.Request().Context(), reference)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, data)
}

// GetPayment retrieves one payment record.
func (h *PaymentHandler) GetPayment(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid payment id"})
	}

	payment, err := h.payments.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, payment)
}

// GetUserPayments lists the caller's payment history.
func (h *PaymentHandler) GetUserPayments(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	limit, offset := pagination(c)
	payments, err := h.payments.ListByUser(c.Request().Context(), user.UserID, limit, offset)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, payments)
}

// ListPending returns the admin review queue.
func (h *PaymentHandler) ListPending(c echo.Context) error {
	limit, offset := pagination(c)
	payments, err := h.payments.ListPending(c.Request().Context(), limit, offset)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, payments)
}

// DecidePayment applies an admin approve/reject decision to one payment.
func (h *PaymentHandler) DecidePayment(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid payment id"})
	}

	var req dto.DecisionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	payment, err := h.payments.DecidePayment(c.Request().Context(), id, req.Status, req.ReviewerNotes)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, payment)
}

// BulkDecide applies one decision to many payments.
func (h *PaymentHandler) BulkDecide(c echo.Context) error {
	var req dto.BulkDecisionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	result := h.payments.BulkDecide(c.Request().Context(), &req)
	return c.JSON(http.StatusOK, result)
}

// pagination parses limit/offset query parameters with safe defaults.
func pagination(c echo.Context) (int, int) {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
