package usecase_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/airrands/airrands-backend/internal/domain/dto"
	domainErrors "github.com/airrands/airrands-backend/internal/domain/errors"
	"github.com/airrands/airrands-backend/internal/domain/model"
	"github.com/airrands/airrands-backend/internal/usecase"
)

func TestVerificationService_Submit(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	verifications := new(MockVerificationRepository)
	service := usecase.NewVerificationService(verifications, new(MockNotifier), zap.NewNop())

	verifications.On("Create", ctx, mock.MatchedBy(func(v *model.Verification) bool {
		return v.UserID == userID &&
			v.UserRole == model.RoleSeller &&
			v.Status == model.VerificationStatusPending
	})).Return(nil)

	verification, err := service.Submit(ctx, userID, &dto.SubmitVerificationRequest{
		UserRole: "seller",
		ImageURL: "https://cdn.example.com/nin.jpg",
	})

	assert.NoError(t, err)
	assert.Equal(t, model.VerificationStatusPending, verification.Status)
	verifications.AssertExpectations(t)
}

func TestVerificationService_Decide(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	userID := uuid.New()

	t.Run("approval notifies the user", func(t *testing.T) {
		verifications := new(MockVerificationRepository)
		notifier := new(MockNotifier)
		service := usecase.NewVerificationService(verifications, notifier, zap.NewNop())

		verifications.On("ApplyDecision", ctx, id, model.VerificationStatusApproved, (*string)(nil)).
			Return(&model.Verification{ID: id, UserID: userID, Status: model.VerificationStatusApproved}, nil)
		notifier.On("Notify", ctx, userID, "Verification approved", mock.Anything, model.NotificationTypeVerification, mock.Anything).
			Return(nil)

		verification, err := service.Decide(ctx, id, "approved", nil)

		assert.NoError(t, err)
		assert.Equal(t, model.VerificationStatusApproved, verification.Status)
		notifier.AssertExpectations(t)
	})

	t.Run("invalid decision value is rejected", func(t *testing.T) {
		verifications := new(MockVerificationRepository)
		service := usecase.NewVerificationService(verifications, new(MockNotifier), zap.NewNop())

		_, err := service.Decide(ctx, id, "pending", nil)

		assert.Error(t, err)
		verifications.AssertNotCalled(t, "ApplyDecision", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("already decided error passes through without notification", func(t *testing.T) {
		verifications := new(MockVerificationRepository)
		notifier := new(MockNotifier)
		service := usecase.NewVerificationService(verifications, notifier, zap.NewNop())

		verifications.On("ApplyDecision", ctx, id, model.VerificationStatusRejected, (*string)(nil)).
			Return(nil, domainErrors.NewVerificationAlreadyDecidedError(id.String()))

		_, err := service.Decide(ctx, id, "rejected", nil)

		var verificationErr *domainErrors.VerificationError
		assert.ErrorAs(t, err, &verificationErr)
		assert.Equal(t, domainErrors.ErrTypeVerificationAlreadyFinal, verificationErr.Type)
		notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestVerificationService_BulkDecide(t *testing.T) {
	ctx := context.Background()
	okID := uuid.New()
	failID := uuid.New()
	userID := uuid.New()

	verifications := new(MockVerificationRepository)
	notifier := new(MockNotifier)
	service := usecase.NewVerificationService(verifications, notifier, zap.NewNop())

	notes := "Bulk processed"
	verifications.On("ApplyDecision", ctx, okID, model.VerificationStatusRejected, &notes).
		Return(&model.Verification{ID: okID, UserID: userID, Status: model.VerificationStatusRejected}, nil)
	verifications.On("ApplyDecision", ctx, failID, model.VerificationStatusRejected, &notes).
		Return(nil, domainErrors.NewVerificationNotFoundError(failID.String()))
	notifier.On("Notify", ctx, userID, mock.Anything, mock.Anything, model.NotificationTypeVerification, mock.Anything).
		Return(nil)

	result := service.BulkDecide(ctx, &dto.BulkDecisionRequest{
		IDs:    []uuid.UUID{okID, failID},
		Status: "rejected",
	})

	assert.Equal(t, 1, result.Succeeded)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, failID, result.Failures[0].ID)
}
