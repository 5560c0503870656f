package usecase

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/airrands/airrands-backend/internal/domain/dto"
	domainErrors "github.com/airrands/airrands-backend/internal/domain/errors"
	"github.com/airrands/airrands-backend/internal/domain/model"
	"github.com/airrands/airrands-backend/internal/domain/repository"
)

// VerificationService handles identity verification submissions and admin
// review decisions.
type VerificationService struct {
	verifications repository.VerificationRepository
	notifier      Notifier
	logger        *zap.Logger
}

// NewVerificationService creates a new verification service.
func NewVerificationService(verifications repository.VerificationRepository, notifier Notifier, logger *zap.Logger) *VerificationService {
	return &VerificationService{
		verifications: verifications,
		notifier:      notifier,
		logger:        logger,
	}
}

// Submit records a new identity document for review. The pending status is
// mirrored into the user row and the role profile in the same transaction.
func (s *VerificationService) Submit(ctx context.Context, userID uuid.UUID, req *dto.SubmitVerificationRequest) (*model.Verification, error) {
	verification := &model.Verification{
		ID:       uuid.New(),
		UserID:   userID,
		UserRole: model.UserRole(req.UserRole),
		ImageURL: req.ImageURL,
		Status:   model.VerificationStatusPending,
	}

	if err := s.verifications.Create(ctx, verification); err != nil {
		return nil, err
	}

	s.logger.Info("verification submitted",
		zap.String("verification_id", verification.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("user_role", req.UserRole))

	return verification, nil
}

// GetByID retrieves one verification record.
func (s *VerificationService) GetByID(ctx context.Context, id uuid.UUID) (*model.Verification, error) {
	verification, err := s.verifications.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if verification == nil {
		return nil, domainErrors.NewVerificationNotFoundError(id.String())
	}
	return verification, nil
}

// ListPending returns the admin review queue.
func (s *VerificationService) ListPending(ctx context.Context, limit, offset int) ([]model.Verification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.verifications.ListPending(ctx, limit, offset)
}

// Decide applies an admin approve/reject decision. The verification record,
// the user mirror and the role profile mirror change together; the user is
// then notified best-effort.
func (s *VerificationService) Decide(ctx context.Context, id uuid.UUID, decision string, notes *string) (*model.Verification, error) {
	status := model.VerificationStatus(decision)
	if !status.Terminal() {
		return nil, domainErrors.NewInvalidDecisionError(decision)
	}

	verification, err := s.verifications.ApplyDecision(ctx, id, status, notes)
	if err != nil {
		return nil, err
	}

	s.logger.Info("verification decision applied",
		zap.String("verification_id", id.String()),
		zap.String("decision", decision))

	var title, body string
	if status == model.VerificationStatusApproved {
		title = "Verification approved"
		body = "Your identity has been verified. Your account is now active."
	} else {
		title = "Verification rejected"
		body = "Your identity document was rejected. Please submit a new one."
	}

	if notifyErr := s.notifier.Notify(ctx, verification.UserID, title, body, model.NotificationTypeVerification, map[string]interface{}{
		"verification_id": verification.ID.String(),
		"status":          string(status),
	}); notifyErr != nil {
		s.logger.Warn("failed to notify user of verification decision",
			zap.String("verification_id", id.String()),
			zap.Error(notifyErr))
	}

	return verification, nil
}

// BulkDecide applies one decision to many verifications independently.
func (s *VerificationService) BulkDecide(ctx context.Context, req *dto.BulkDecisionRequest) *dto.BulkDecisionResult {
	notes := "Bulk processed"
	result := &dto.BulkDecisionResult{}

	for _, id := range req.IDs {
		if _, err := s.Decide(ctx, id, req.Status, &notes); err != nil {
			result.Failed++
			result.Failures = append(result.Failures, dto.BulkFailure{
				ID:    id,
				Error: err.Error(),
			})
			continue
		}
		result.Succeeded++
	}

	return result
}
