package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/airrands/airrands-backend/internal/domain/dto"
	"github.com/airrands/airrands-backend/internal/domain/model"
	"github.com/airrands/airrands-backend/internal/middleware/auth"
	"github.com/airrands/airrands-backend/internal/usecase"
)

type OrderHandler struct {
	orders *usecase.OrderService
	logger *zap.Logger
}

func NewOrderHandler(orders *usecase.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		orders: orders,
		logger: logger,
	}
}

// Get retrieves one order.
func (h *OrderHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid order id"})
	}

	order, err := h.orders.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, order)
}

// ListMine returns the caller's order history.
func (h *OrderHandler) ListMine(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	limit, offset := pagination(c)
	orders, err := h.orders.ListByBuyer(c.Request().Context(), user.UserID, limit, offset)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, orders)
}

// UpdateStatus moves an order along the fulfilment chain.
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid order id"})
	}

	var req dto.OrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	order, err := h.orders.UpdateStatus(c.Request().Context(), id, model.OrderStatus(req.Status))
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, order)
}
