package usecase_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	domainErrors "github.com/airrands/airrands-backend/internal/domain/errors"
	"github.com/airrands/airrands-backend/internal/domain/model"
	"github.com/airrands/airrands-backend/internal/usecase"
)

func TestOrderService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	orderID := uuid.New()
	buyerID := uuid.New()

	t.Run("preparing to ready notifies buyer", func(t *testing.T) {
		orders := new(MockOrderRepository)
		notifier := new(MockNotifier)
		service := usecase.NewOrderService(orders, notifier, zap.NewNop())

		orders.On("GetByID", ctx, orderID).Return(&model.Order{
			ID:      orderID,
			BuyerID: buyerID,
			Status:  model.OrderStatusPreparing,
		}, nil)
		orders.On("UpdateStatus", ctx, orderID, model.OrderStatusPreparing, model.OrderStatusReady).
			Return(&model.Order{
				ID:      orderID,
				BuyerID: buyerID,
				Status:  model.OrderStatusReady,
			}, nil)
		notifier.On("Notify", ctx, buyerID, "Order update", mock.Anything, model.NotificationTypeOrder, mock.Anything).
			Return(nil)

		order, err := service.UpdateStatus(ctx, orderID, model.OrderStatusReady)

		assert.NoError(t, err)
		assert.Equal(t, model.OrderStatusReady, order.Status)
		notifier.AssertExpectations(t)
	})

	t.Run("skipping a step is rejected", func(t *testing.T) {
		orders := new(MockOrderRepository)
		service := usecase.NewOrderService(orders, new(MockNotifier), zap.NewNop())

		orders.On("GetByID", ctx, orderID).Return(&model.Order{
			ID:     orderID,
			Status: model.OrderStatusPending,
		}, nil)

		_, err := service.UpdateStatus(ctx, orderID, model.OrderStatusDelivered)

		var paymentErr *domainErrors.PaymentError
		assert.ErrorAs(t, err, &paymentErr)
		assert.Equal(t, domainErrors.ErrTypeInvalidOrderStatus, paymentErr.Type)
		orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("delivered is terminal", func(t *testing.T) {
		orders := new(MockOrderRepository)
		service := usecase.NewOrderService(orders, new(MockNotifier), zap.NewNop())

		orders.On("GetByID", ctx, orderID).Return(&model.Order{
			ID:     orderID,
			Status: model.OrderStatusDelivered,
		}, nil)

		_, err := service.UpdateStatus(ctx, orderID, model.OrderStatusPreparing)

		assert.Error(t, err)
	})

	t.Run("missing order", func(t *testing.T) {
		orders := new(MockOrderRepository)
		service := usecase.NewOrderService(orders, new(MockNotifier), zap.NewNop())

		orders.On("GetByID", ctx, orderID).Return(nil, nil)

		_, err := service.UpdateStatus(ctx, orderID, model.OrderStatusReady)

		var paymentErr *domainErrors.PaymentError
		assert.ErrorAs(t, err, &paymentErr)
		assert.Equal(t, domainErrors.ErrTypeOrderNotFound, paymentErr.Type)
	})

	t.Run("lost compare-and-swap reports the current status", func(t *testing.T) {
		orders := new(MockOrderRepository)
		service := usecase.NewOrderService(orders, new(MockNotifier), zap.NewNop())

		orders.On("GetByID", ctx, orderID).Return(&model.Order{
			ID:     orderID,
			Status: model.OrderStatusPreparing,
		}, nil).Once()
		orders.On("UpdateStatus", ctx, orderID, model.OrderStatusPreparing, model.OrderStatusReady).
			Return(nil, nil)
		orders.On("GetByID", ctx, orderID).Return(&model.Order{
			ID:     orderID,
			Status: model.OrderStatusCancelled,
		}, nil).Once()

		_, err := service.UpdateStatus(ctx, orderID, model.OrderStatusReady)

		var paymentErr *domainErrors.PaymentError
		assert.ErrorAs(t, err, &paymentErr)
		assert.Equal(t, domainErrors.ErrTypeInvalidOrderStatus, paymentErr.Type)
	})
}

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from    model.OrderStatus
		to      model.OrderStatus
		allowed bool
	}{
		{model.OrderStatusPending, model.OrderStatusPreparing, true},
		{model.OrderStatusPreparing, model.OrderStatusReady, true},
		{model.OrderStatusReady, model.OrderStatusDelivered, true},
		{model.OrderStatusPending, model.OrderStatusReady, false},
		{model.OrderStatusPending, model.OrderStatusDelivered, false},
		{model.OrderStatusDelivered, model.OrderStatusReady, false},
		{model.OrderStatusReady, model.OrderStatusPreparing, false},
		{model.OrderStatusCancelled, model.OrderStatusPreparing, false},
		// cancellation only happens through payment rejection
		{model.OrderStatusPending, model.OrderStatusCancelled, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}
