package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	domainErrors "github.com/airrands/airrands-backend/internal/domain/errors"
	"github.com/airrands/airrands-backend/internal/domain/model"
	"github.com/airrands/airrands-backend/internal/domain/repository"
)

// verificationRepository implements the VerificationRepository interface
type verificationRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewVerificationRepository creates a new verification repository
func NewVerificationRepository(db *gorm.DB, logger *zap.Logger) repository.VerificationRepository {
	return &verificationRepository{
		db:     db,
		logger: logger,
	}
}

// roleProfileModel resolves the role profile table for a verification.
func roleProfileModel(role model.UserRole) interface{} {
	if role == model.RoleRunner {
		return &model.RunnerProfile{}
	}
	return &model.SellerProfile{}
}

// Create inserts the submission and mirrors pending into the user row and
// the role profile row in the same transaction.
func (r *verificationRepository) Create(ctx context.Context, verification *model.Verification) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(verification).Error; err != nil {
			return err
		}

		now := time.Now()
		mirror := map[string]interface{}{
			"verification_status": string(model.VerificationStatusPending),
			"updated_at":          now,
		}

		if err := tx.Model(&model.User{}).
			Where("id = ?", verification.UserID).
			Updates(mirror).Error; err != nil {
			return err
		}

		return tx.Model(roleProfileModel(verification.UserRole)).
			Where("user_id = ?", verification.UserID).
			Updates(mirror).Error
	})
	if err != nil {
		r.logger.Error("failed to create verification",
			zap.String("user_id", verification.UserID.String()),
			zap.Error(err))
		return fmt.Errorf("failed to create verification: %w", err)
	}

	return nil
}

// GetByID retrieves a verification by id
func (r *verificationRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Verification, error) {
	var verification model.Verification

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&verification).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("failed to get verification",
			zap.String("verification_id", id.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get verification: %w", err)
	}

	return &verification, nil
}

// ListPending retrieves verifications awaiting review, oldest first
func (r *verificationRepository) ListPending(ctx context.Context, limit, offset int) ([]model.Verification, error) {
	var verifications []model.Verification

	query := r.db.WithContext(ctx).
		Where("status = ?", string(model.VerificationStatusPending)).
		Order("submitted_at ASC").
		Limit(limit).Offset(offset)

	if err := query.Find(&verifications).Error; err != nil {
		r.logger.Error("failed to list pending verifications", zap.Error(err))
		return nil, fmt.Errorf("failed to list pending verifications: %w", err)
	}

	return verifications, nil
}

// ApplyDecision updates the verification record, the user's
// verification_status mirror and the role profile mirror in one
// transaction. All three reflect the decision or none do.
func (r *verificationRepository) ApplyDecision(ctx context.Context, id uuid.UUID, decision model.VerificationStatus, notes *string) (*model.Verification, error) {
	var verification model.Verification

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

		res := tx.Model(&model.Verification{}).
			Where("id = ? AND status = ?", id, string(model.VerificationStatusPending)).
			Updates(updates)
		if res.Error != nil {
			return fmt.Errorf("failed to update verification status: %w", res.Error)
		}

		if res.RowsAffected == 0 {
			var existing model.Verification
			if err := tx.Where("id = ?", id).First(&existing).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return domainErrors.NewVerificationNotFoundError(id.String())
				}
				return fmt.Errorf("failed to check verification existence: %w", err)
			}
			return domainErrors.NewVerificationAlreadyDecidedError(id.String())
		}

		if err := tx.Where("id = ?", id).First(&verification).Error; err != nil {
			return fmt.Errorf("failed to reload verification: %w", err)
		}

		mirror := map[string]interface{}{
			"verification_status": string(decision),
			"updated_at":          now,
		}

		userRes := tx.Model(&model.User{}).
			Where("id = ?", verification.UserID).
			Updates(mirror)
		if userRes.Error != nil {
			return fmt.Errorf("failed to mirror decision to user: %w", userRes.Error)
		}
		if userRes.RowsAffected == 0 {
			return domainErrors.NewVerificationUserMissingError(id.String(), gorm.ErrRecordNotFound)
		}

		if err := tx.Model(roleProfileModel(verification.UserRole)).
			Where("user_id = ?", verification.UserID).
			Updates(mirror).Error; err != nil {
			return fmt.Errorf("failed to mirror decision to role profile: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &verification, nil
}
