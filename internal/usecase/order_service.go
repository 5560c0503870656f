package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainErrors "github.com/airrands/airrands-backend/internal/domain/errors"
	"github.com/airrands/airrands-backend/internal/domain/model"
	"github.com/airrands/airrands-backend/internal/domain/repository"
)

// OrderService handles order reads and the manual fulfilment transitions.
// Payment-driven transitions (preparing on approval, cancelled on
// rejection) belong to PaymentService.
type OrderService struct {
	orders   repository.OrderRepository
	notifier Notifier
	logger   *zap.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(orders repository.OrderRepository, notifier Notifier, logger *zap.Logger) *OrderService {
	return &OrderService{
		orders:   orders,
		notifier: notifier,
		logger:   logger,
	}
}

// GetByID retrieves one order.
func (s *OrderService) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domainErrors.NewOrderNotFoundError(id.String())
	}
	return order, nil
}

// ListByBuyer returns the buyer's order history.
func (s *OrderService) ListByBuyer(ctx context.Context, buyerID uuid.UUID, limit, offset int) ([]model.Order, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.orders.ListByBuyer(ctx, buyerID, limit, offset)
}

// UpdateStatus moves an order along the fulfilment chain. The write is a
// compare-and-swap on the current status so concurrent updates cannot skip
// a step. The buyer is notified best-effort.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, next model.OrderStatus) (*model.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domainErrors.NewOrderNotFoundError(orderID.String())
	}

	if !order.Status.CanTransitionTo(next) {
		return nil, domainErrors.NewInvalidOrderStatusError(string(order.Status), string(next))
	}

	updated, err := s.orders.UpdateStatus(ctx, orderID, order.Status, next)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		// Lost the race: the row moved off the status we read. Re-read to
		// report the real conflict.
		current, readErr := s.orders.GetByID(ctx, orderID)
		if readErr == nil && current != nil {
			return nil, domainErrors.NewInvalidOrderStatusError(string(current.Status), string(next))
		}
		return nil, domainErrors.NewOrderNotFoundError(orderID.String())
	}

	s.logger.Info("order status updated",
		zap.String("order_id", orderID.String()),
		zap.String("from", string(order.Status)),
		zap.String("to", string(next)))

	s.notifyStatus(ctx, updated)

	return updated, nil
}

func (s *OrderService) notifyStatus(ctx context.Context, order *model.Order) {
	var body string
	switch order.Status {
	case model.OrderStatusPreparing:
		body = fmt.Sprintf("Your order for %s is being prepared.", order.ProductName)
	case model.OrderStatusReady:
		body = fmt.Sprintf("Your order for %s is ready for pickup.", order.ProductName)
	case model.OrderStatusDelivered:
		body = fmt.Sprintf("Your order for %s has been delivered.", order.ProductName)
	default:
		return
	}

	err := s.notifier.Notify(ctx, order.BuyerID, "Order update", body, model.NotificationTypeOrder, map[string]interface{}{
		"order_id": order.ID.String(),
		"status":   string(order.Status),
	})
	if err != nil {
		s.logger.Warn("failed to notify buyer of order status",
			zap.String("order_id", order.ID.String()),
			zap.Error(err))
	}
}
