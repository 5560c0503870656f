package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/airrands/airrands-backend/internal/domain/model"
)

// OrderRepository persists order records.
type OrderRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	ListByBuyer(ctx context.Context, buyerID uuid.UUID, limit, offset int) ([]model.Order, error)

	// UpdateStatus moves an order from one status to another with a
	// compare-and-swap on the current status. Returns the updated order, or
	// nil without error when the row no longer matched.
	UpdateStatus(ctx context.Context, orderID uuid.UUID, from, to model.OrderStatus) (*model.Order, error)

	// UpdateGatewayFields applies webhook-originated metadata (gateway
	// reference, failed payment status) to an order.
	UpdateGatewayFields(ctx context.Context, orderID uuid.UUID, updates map[string]interface{}) error
}
