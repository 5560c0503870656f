package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/airrands/airrands-backend/internal/domain/model"
	"github.com/airrands/airrands-backend/internal/domain/repository"
)

// orderRepository implements the OrderRepository interface
type orderRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *gorm.DB, logger *zap.Logger) repository.OrderRepository {
	return &orderRepository{
		db:     db,
		logger: logger,
	}
}

// GetByID retrieves an order by id
func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	var order model.Order

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&order).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("failed to get order",
			zap.String("order_id", id.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return &order, nil
}

// ListByBuyer retrieves a buyer's orders, newest first
func (r *orderRepository) ListByBuyer(ctx context.Context, buyerID uuid.UUID, limit, offset int) ([]model.Order, error) {
	var orders []model.Order

	query := r.db.WithContext(ctx).
		Where("buyer_id = ?", buyerID).
		Order("created_at DESC").
		Limit(limit).Offset(offset)

	if err := query.Find(&orders).Error; err != nil {
		r.logger.Error("failed to list buyer orders",
			zap.String("buyer_id", buyerID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to list buyer orders: %w", err)
	}

	return orders, nil
}

// UpdateStatus moves an order between statuses with a compare-and-swap on
// the current status. Returns nil without error when the row no longer
// matched (already moved or missing).
func (r *orderRepository) UpdateStatus(ctx context.Context, orderID uuid.UUID, from, to model.OrderStatus) (*model.Order, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("id = ? AND status = ?", orderID, string(from)).
		Updates(map[string]interface{}{
			"status":     string(to),
			"updated_at": time.Now(),
		})

	if res.Error != nil {
		r.logger.Error("failed to update order status",
			zap.String("order_id", orderID.String()),
			zap.String("to", string(to)),
			zap.Error(res.Error))
		return nil, fmt.Errorf("failed to update order status: %w", res.Error)
	}

	if res.RowsAffected == 0 {
		return nil, nil
	}

	var order model.Order
	if err := r.db.WithContext(ctx).Where("id = ?", orderID).First(&order).Error; err != nil {
		return nil, fmt.Errorf("failed to reload order: %w", err)
	}

	return &order, nil
}

// UpdateGatewayFields applies webhook-originated metadata to an order.
func (r *orderRepository) UpdateGatewayFields(ctx context.Context, orderID uuid.UUID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	res := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("id = ?", orderID).
		Updates(updates)

	if res.Error != nil {
		r.logger.Error("failed to update order gateway fields",
			zap.String("order_id", orderID.String()),
			zap.Error(res.Error))
		return fmt.Errorf("failed to update order gateway fields: %w", res.Error)
	}

	if res.RowsAffected == 0 {
		r.logger.Warn("order missing during gateway update",
			zap.String("order_id", orderID.String()))
	}

	return nil
}
