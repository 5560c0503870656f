package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/airrands/airrands-backend/internal/domain/model"
)

// ErrandRepository persists errand postings.
type ErrandRepository interface {
	Create(ctx context.Context, errand *model.Errand) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Errand, error)
	ListOpen(ctx context.Context, limit, offset int) ([]model.Errand, error)
}
