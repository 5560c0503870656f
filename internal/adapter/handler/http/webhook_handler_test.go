package http_test

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	handlers "github.com/airrands/airrands-backend/internal/adapter/handler/http"
	"github.com/airrands/airrands-backend/internal/domain/model"
	"github.com/airrands/airrands-backend/internal/infrastructure/provider/paystack"
	"github.com/airrands/airrands-backend/internal/usecase"
)

const webhookSecret = "sk_test_webhook"

// MockPaymentRepository is a mock implementation of PaymentRepository
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) CreatePair(ctx context.Context, payment *model.Payment, order *model.Order) error {
	args := m.Called(ctx, payment, order)
	return args.Error(0)
}

func (m *MockPaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Payment), args.Error(1)
}

func (m *MockPaymentRepository) GetByReference(ctx context.Context, reference string) (*model.Payment, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Payment, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]model.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListPending(ctx context.Context, limit, offset int) ([]model.Payment, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]model.Payment), args.Error(1)
}

func (m *MockPaymentRepository) RecordGatewayResult(ctx context.Context, payment *model.Payment) (bool, error) {
	args := m.Called(ctx, payment)
	return args.Bool(0), args.Error(1)
}

func (m *MockPaymentRepository) ApplyDecision(ctx context.Context, paymentID uuid.UUID, decision model.PaymentStatus, notes *string, orderUpdates map[string]interface{}) (*model.Payment, *model.Order, error) {
	args := m.Called(ctx, paymentID, decision, notes, orderUpdates)
	var payment *model.Payment
	var order *model.Order
	if args.Get(0) != nil {
		payment = args.Get(0).(*model.Payment)
	}
	if args.Get(1) != nil {
		order = args.Get(1).(*model.Order)
	}
	return payment, order, args.Error(2)
}

// MockOrderRepository is a mock implementation of OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByBuyer(ctx context.Context, buyerID uuid.UUID, limit, offset int) ([]model.Order, error) {
	args := m.Called(ctx, buyerID, limit, offset)
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, orderID uuid.UUID, from, to model.OrderStatus) (*model.Order, error) {
	args := m.Called(ctx, orderID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateGatewayFields(ctx context.Context, orderID uuid.UUID, updates map[string]interface{}) error {
	args := m.Called(ctx, orderID, updates)
	return args.Error(0)
}

// MockWebhookEventRepository is a mock implementation of WebhookEventRepository
type MockWebhookEventRepository struct {
	mock.Mock
}

func (m *MockWebhookEventRepository) SaveEvent(ctx context.Context, eventType, reference string, data model.JSONB) (int64, error) {
	args := m.Called(ctx, eventType, reference, data)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWebhookEventRepository) MarkProcessed(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockWebhookEventRepository) MarkIgnored(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockWebhookEventRepository) MarkFailed(ctx context.Context, id int64, cause error) error {
	args := m.Called(ctx, id, cause)
	return args.Error(0)
}

// MockNotifier is a mock implementation of the Notifier interface
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, userID uuid.UUID, title, body string, category model.NotificationType, data map[string]interface{}) error {
	args := m.Called(ctx, userID, title, body, category, data)
	return args.Error(0)
}

func sign(body []byte) string {
	mac := hmac.New(sha512.New, []byte(webhookSecret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

type webhookFixture struct {
	handler  *handlers.WebhookHandler
	payments *MockPaymentRepository
	orders   *MockOrderRepository
	events   *MockWebhookEventRepository
	notifier *MockNotifier
}

func newWebhookFixture() *webhookFixture {
	logger := zap.NewNop()
	payments := new(MockPaymentRepository)
	orders := new(MockOrderRepository)
	events := new(MockWebhookEventRepository)
	notifier := new(MockNotifier)

	gateway := paystack.NewClient(webhookSecret, "", logger)
	paymentService := usecase.NewPaymentService(payments, orders, gateway, notifier, "10", logger)

	return &webhookFixture{
		handler:  handlers.NewWebhookHandler(logger, gateway, events, paymentService),
		payments: payments,
		orders:   orders,
		events:   events,
		notifier: notifier,
	}
}

func postWebhook(f *webhookFixture, body []byte, signature string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if signature != "" {
		req.Header.Set("x-paystack-signature", signature)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_ = f.handler.HandleWebhook(c)
	return rec
}

func TestWebhookHandler_RejectsBadSignature(t *testing.T) {
	f := newWebhookFixture()
	body := []byte(`{"event":"charge.success","data":{"reference":"ref_1","amount":1000}}`)

	rec := postWebhook(f, body, "deadbeef")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	// Nothing is written before the signature check passes
	f.events.AssertNotCalled(t, "SaveEvent", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.payments.AssertNotCalled(t, "RecordGatewayResult", mock.Anything, mock.Anything)
}

func TestWebhookHandler_RejectsMissingSignature(t *testing.T) {
	f := newWebhookFixture()
	body := []byte(`{"event":"charge.success","data":{"reference":"ref_1"}}`)

	rec := postWebhook(f, body, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	f.events.AssertNotCalled(t, "SaveEvent", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestWebhookHandler_ProcessesChargeSuccess(t *testing.T) {
	f := newWebhookFixture()
	userID := uuid.New()
	body := []byte(`{"event":"charge.success","data":{"reference":"ref_ok","amount":250000,"currency":"NGN","channel":"card","metadata":{"user_id":"` + userID.String() + `"},"customer":{"email":"ada@example.com"}}}`)

	f.events.On("SaveEvent", mock.Anything, "charge.success", "ref_ok", mock.Anything).Return(int64(42), nil)
	f.payments.On("RecordGatewayResult", mock.Anything, mock.MatchedBy(func(p *model.Payment) bool {
		return p.Reference == "ref_ok" && p.Status == model.PaymentStatusSuccess
	})).Return(true, nil)
	f.notifier.On("Notify", mock.Anything, userID, mock.Anything, mock.Anything, model.NotificationTypePayment, mock.Anything).
		Return(nil)
	f.events.On("MarkProcessed", mock.Anything, int64(42)).Return(nil)

	rec := postWebhook(f, body, sign(body))

	assert.Equal(t, http.StatusOK, rec.Code)
	f.events.AssertExpectations(t)
	f.payments.AssertExpectations(t)
}

func TestWebhookHandler_UnknownEventIsIgnoredWith200(t *testing.T) {
	f := newWebhookFixture()
	body := []byte(`{"event":"transfer.success","data":{"reference":"ref_t"}}`)

	f.events.On("SaveEvent", mock.Anything, "transfer.success", "ref_t", mock.Anything).Return(int64(7), nil)
	f.events.On("MarkIgnored", mock.Anything, int64(7)).Return(nil)

	rec := postWebhook(f, body, sign(body))

	assert.Equal(t, http.StatusOK, rec.Code)
	f.events.AssertExpectations(t)
	f.payments.AssertNotCalled(t, "RecordGatewayResult", mock.Anything, mock.Anything)
}

func TestWebhookHandler_DuplicateDeliveryStillReturns200(t *testing.T) {
	f := newWebhookFixture()
	body := []byte(`{"event":"charge.success","data":{"reference":"ref_dup","amount":1000}}`)

	f.events.On("SaveEvent", mock.Anything, "charge.success", "ref_dup", mock.Anything).Return(int64(9), nil)
	f.payments.On("RecordGatewayResult", mock.Anything, mock.Anything).Return(false, nil)
	f.events.On("MarkProcessed", mock.Anything, int64(9)).Return(nil)

	rec := postWebhook(f, body, sign(body))

	assert.Equal(t, http.StatusOK, rec.Code)
	f.notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
