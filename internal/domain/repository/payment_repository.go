package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/airrands/airrands-backend/internal/domain/model"
)

// PaymentRepository persists payment records and their linked orders.
type PaymentRepository interface {
	// CreatePair inserts a payment and its order in a single transaction.
	// Both ids must be pre-allocated so the rows can cross-reference each
	// other atomically.
	CreatePair(ctx context.Context, payment *model.Payment, order *model.Order) error

	GetByID(ctx context.Context, id uuid.UUID) (*model.Payment, error)
	GetByReference(ctx context.Context, reference string) (*model.Payment, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Payment, error)
	ListPending(ctx context.Context, limit, offset int) ([]model.Payment, error)

	// RecordGatewayResult inserts a gateway-originated payment keyed by its
	// reference. Returns false without error when the reference was already
	// recorded, so webhook redelivery is a no-op.
	RecordGatewayResult(ctx context.Context, payment *model.Payment) (bool, error)

	// ApplyDecision atomically moves a pending payment to a terminal
	// decision and applies the given field updates to the linked order.
	// The status change is compare-and-swap on pending: a concurrent
	// decision surfaces as an already-decided error instead of a silent
	// overwrite. A missing linked order skips the order update without
	// failing the payment decision.
	ApplyDecision(ctx context.Context, paymentID uuid.UUID, decision model.PaymentStatus, notes *string, orderUpdates map[string]interface{}) (*model.Payment, *model.Order, error)
}
