package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/airrands/airrands-backend/internal/domain/dto"
	"github.com/airrands/airrands-backend/internal/domain/model"
	"github.com/airrands/airrands-backend/internal/usecase"
)

func TestErrandService_Create(t *testing.T) {
	ctx := context.Background()
	buyerID := uuid.New()
	runnerA := uuid.New()
	runnerB := uuid.New()

	req := &dto.CreateErrandRequest{
		Title:          "Pick up laundry",
		PickupAddress:  "12 Allen Ave",
		DropoffAddress: "3 Unity Rd",
		FeeKobo:        150000,
	}

	t.Run("notifies every online runner except the buyer", func(t *testing.T) {
		errands := new(MockErrandRepository)
		users := new(MockUserRepository)
		notifier := new(MockNotifier)
		service := usecase.NewErrandService(errands, users, notifier, zap.NewNop())

		errands.On("Create", ctx, mock.MatchedBy(func(e *model.Errand) bool {
			return e.BuyerID == buyerID && e.Status == model.ErrandStatusOpen && e.FeeKobo == 150000
		})).Return(nil)
		users.On("ListOnlineRunners", ctx).Return([]model.User{
			{ID: runnerA},
			{ID: buyerID}, // buyer moonlighting as a runner; never self-notified
			{ID: runnerB},
		}, nil)
		notifier.On("Notify", ctx, runnerA, mock.Anything, mock.Anything, model.NotificationTypeErrand, mock.Anything).Return(nil)
		notifier.On("Notify", ctx, runnerB, mock.Anything, mock.Anything, model.NotificationTypeErrand, mock.Anything).Return(nil)

		errand, err := service.Create(ctx, buyerID, req)

		assert.NoError(t, err)
		assert.Equal(t, model.ErrandStatusOpen, errand.Status)
		notifier.AssertExpectations(t)
		notifier.AssertNotCalled(t, "Notify", ctx, buyerID, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("runner listing failure does not fail the errand", func(t *testing.T) {
		errands := new(MockErrandRepository)
		users := new(MockUserRepository)
		notifier := new(MockNotifier)
		service := usecase.NewErrandService(errands, users, notifier, zap.NewNop())

		errands.On("Create", ctx, mock.Anything).Return(nil)
		users.On("ListOnlineRunners", ctx).Return(nil, errors.New("db down"))

		errand, err := service.Create(ctx, buyerID, req)

		assert.NoError(t, err)
		assert.NotNil(t, errand)
		notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("create failure is surfaced", func(t *testing.T) {
		errands := new(MockErrandRepository)
		users := new(MockUserRepository)
		service := usecase.NewErrandService(errands, users, new(MockNotifier), zap.NewNop())

		errands.On("Create", ctx, mock.Anything).Return(errors.New("insert failed"))

		errand, err := service.Create(ctx, buyerID, req)

		assert.Error(t, err)
		assert.Nil(t, errand)
		users.AssertNotCalled(t, "ListOnlineRunners", mock.Anything)
	})
}
