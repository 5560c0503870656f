package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/airrands/airrands-backend/internal/domain/model"
)

// VerificationRepository persists identity verification submissions.
type VerificationRepository interface {
	// Create inserts the submission and mirrors the pending status into the
	// user row and the role profile row in the same transaction.
	Create(ctx context.Context, verification *model.Verification) error

	GetByID(ctx context.Context, id uuid.UUID) (*model.Verification, error)
	ListPending(ctx context.Context, limit, offset int) ([]model.Verification, error)

	// ApplyDecision atomically updates the verification record, the user's
	// verification_status mirror and the role profile mirror. All three
	// reflect the decision or none do. Compare-and-swap on pending.
	ApplyDecision(ctx context.Context, id uuid.UUID, decision model.VerificationStatus, notes *string) (*model.Verification, error)
}
