package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/airrands/airrands-backend/internal/domain/model"
	"github.com/airrands/airrands-backend/internal/domain/repository"
)

// errandRepository implements the ErrandRepository interface
type errandRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewErrandRepository creates a new errand repository
func NewErrandRepository(db *gorm.DB, logger *zap.Logger) repository.ErrandRepository {
	return &errandRepository{
		db:     db,
		logger: logger,
	}
}

// Create persists an errand posting
func (r *errandRepository) Create(ctx context.Context, errand *model.Errand) error {
	if err := r.db.WithContext(ctx).Create(errand).Error; err != nil {
		r.logger.Error("failed to create errand",
			zap.String("buyer_id", errand.BuyerID.String()),
			zap.Error(err))
		return fmt.Errorf("failed to create errand: %w", err)
	}

	return nil
}

// GetByID retrieves an errand by id
func (r *errandRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Errand, error) {
	var errand model.Errand

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&errand).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("failed to get errand",
			zap.String("errand_id", id.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get errand: %w", err)
	}

	return &errand, nil
}

// ListOpen retrieves open errands, newest first
func (r *errandRepository) ListOpen(ctx context.Context, limit, offset int) ([]model.Errand, error) {
	var errands []model.Errand

	query := r.db.WithContext(ctx).
		Where("status = ?", string(model.ErrandStatusOpen)).
		Order("created_at DESC").
		Limit(limit).Offset(offset)

	if err := query.Find(&errands).Error; err != nil {
		r.logger.Error("failed to list open errands", zap.Error(err))
		return nil, fmt.Errorf("failed to list open errands: %w", err)
	}

	return errands, nil
}
