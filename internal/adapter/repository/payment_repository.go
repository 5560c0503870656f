package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domainErrors "github.com/airrands/airrands-backend/internal/domain/errors"
	"github.com/airrands/airrands-backend/internal/domain/model"
	"github.com/airrands/airrands-backend/internal/domain/repository"
)

// paymentRepository implements the PaymentRepository interface
type paymentRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB, logger *zap.Logger) repository.PaymentRepository {
	return &paymentRepository{
		db:     db,
		logger: logger,
	}
}

// CreatePair inserts a payment and its linked order in one transaction.
func (r *paymentRepository) CreatePair(ctx context.Context, payment *model.Payment, order *model.Order) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(payment).Error; err != nil {
			return err
		}
		return tx.Create(order).Error
	})
	if err != nil {
		r.logger.Error("failed to create payment/order pair",
			zap.String("payment_id", payment.ID.String()),
			zap.String("order_id", order.ID.String()),
			zap.Error(err))
		return fmt.Errorf("failed to create payment/order pair: %w", err)
	}

	return nil
}

// GetByID retrieves a payment by id
func (r *paymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Payment, error) {
	var payment model.Payment

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&payment).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("failed to get payment",
			zap.String("payment_id", id.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}

	return &payment, nil
}

// GetByReference retrieves a payment by gateway reference
func (r *paymentRepository) GetByReference(ctx context.Context, reference string) (*model.Payment, error) {
	var payment model.Payment

	err := r.db.WithContext(ctx).
		Where("reference = ?", reference).
		First(&payment).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("failed to get payment by reference",
			zap.String("reference", reference),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get payment by reference: %w", err)
	}

	return &payment, nil
}

// ListByUser retrieves a user's payments, newest first
func (r *paymentRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Payment, error) {
	var payments []model.Payment

	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset)

	if err := query.Find(&payments).Error; err != nil {
		r.logger.Error("failed to list user payments",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to list user payments: %w", err)
	}

	return payments, nil
}

// ListPending retrieves payments awaiting an admin decision, oldest first
func (r *paymentRepository) ListPending(ctx context.Context, limit, offset int) ([]model.Payment, error) {
	var payments []model.Payment

	query := r.db.WithContext(ctx).
		Where("status IN ?", []string{
			string(model.PaymentStatusPending),
			string(model.PaymentStatusSuccess),
		}).
		Order("created_at ASC").
		Limit(limit).Offset(offset)

	if err := query.Find(&payments).Error; err != nil {
		r.logger.Error("failed to list pending payments", zap.Error(err))
		return nil, fmt.Errorf("failed to list pending payments: %w", err)
	}

	return payments, nil
}

// RecordGatewayResult inserts a gateway-originated payment keyed by its
// reference. The unique index on reference plus ON CONFLICT DO NOTHING
// makes webhook redelivery a no-op instead of a double credit.
func (r *paymentRepository) RecordGatewayResult(ctx context.Context, payment *model.Payment) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "reference"}},
			DoNothing: true,
		}).
		Create(payment)

	if res.Error != nil {
		r.logger.Error("failed to record gateway result",
			zap.String("reference", payment.Reference),
			zap.Error(res.Error))
		return false, fmt.Errorf("failed to record gateway result: %w", res.Error)
	}

	return res.RowsAffected > 0, nil
}

// ApplyDecision atomically moves a payment to a terminal decision and
// applies the derived field updates to the linked order. The payment update
// is compare-and-swap on non-terminal status; a second concurrent decision
// gets an already-decided error. A missing linked order skips the order
// step without failing the decision.
func (r *paymentRepository) ApplyDecision(ctx context.Context, paymentID uuid.UUID, decision model.PaymentStatus, notes *string, orderUpdates map[string]interface{}) (*model.Payment, *model.Order, error) {
	var payment model.Payment
	var order *model.Order

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		updates := map[string]interface{}{
			"status":      string(decision),
			"reviewed_at": &now,
			"updated_at":  now,
		}
		if notes != nil {
			updates["reviewer_notes"] = notes
		}

		res := tx.Model(&model.Payment{}).
			Where("id = ? AND status NOT IN ?", paymentID, []string{
				string(model.PaymentStatusApproved),
				string(model.PaymentStatusRejected),
			}).
			Updates(updates)
		if res.Error != nil {
			return fmt.Errorf("failed to update payment status: %w", res.Error)
		}

		if res.RowsAffected == 0 {
			var existing model.Payment
			if err := tx.Where("id = ?", paymentID).First(&existing).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return domainErrors.NewPaymentNotFoundError(paymentID.String())
				}
				return fmt.Errorf("failed to check payment existence: %w", err)
			}
			return domainErrors.NewPaymentAlreadyDecidedError(paymentID.String())
		}

		if err := tx.Where("id = ?", paymentID).First(&payment).Error; err != nil {
			return fmt.Errorf("failed to reload payment: %w", err)
		}

		if payment.OrderID != nil {
			orderUpdates["updated_at"] = now
			res := tx.Model(&model.Order{}).
				Where("id = ?", *payment.OrderID).
				Updates(orderUpdates)
			if res.Error != nil {
				return fmt.Errorf("failed to update linked order: %w", res.Error)
			}
			if res.RowsAffected > 0 {
				var o model.Order
				if err := tx.Where("id = ?", *payment.OrderID).First(&o).Error; err != nil {
					return fmt.Errorf("failed to reload order: %w", err)
				}
				order = &o
			} else {
				r.logger.Warn("linked order missing during payment decision",
					zap.String("payment_id", paymentID.String()),
					zap.String("order_id", payment.OrderID.String()))
			}
		}

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return &payment, order, nil
}
