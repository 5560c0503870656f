package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/airrands/airrands-backend/internal/domain/dto"
	domainErrors "github.com/airrands/airrands-backend/internal/domain/errors"
	"github.com/airrands/airrands-backend/internal/domain/model"
	"github.com/airrands/airrands-backend/internal/domain/provider"
	"github.com/airrands/airrands-backend/internal/domain/repository"
)

// PaymentService owns the payment/order lifecycle: client submission,
// gateway webhook results, and admin decisions.
type PaymentService struct {
	payments   repository.PaymentRepository
	orders     repository.OrderRepository
	gateway    provider.GatewayClient
	notifier   Notifier
	feePercent decimal.Decimal
	logger     *zap.Logger
}

// defaultFeePercent applies when the configured platform fee is absent or
// unparseable.
var defaultFeePercent = decimal.NewFromInt(10)

// NewPaymentService creates a new payment service. feePercent is the
// platform fee as a percentage string, e.g. "10" or "7.5".
func NewPaymentService(
	payments repository.PaymentRepository,
	orders repository.OrderRepository,
	gateway provider.GatewayClient,
	notifier Notifier,
	feePercent string,
	logger *zap.Logger,
) *PaymentService {
	fee, err := decimal.NewFromString(feePercent)
	if err != nil || fee.IsNegative() {
		fee = defaultFeePercent
	}
	return &PaymentService{
		payments:   payments,
		orders:     orders,
		gateway:    gateway,
		notifier:   notifier,
		feePercent: fee,
		logger:     logger,
	}
}

// platformFeeKobo computes the fee snapshot for an order amount.
func (s *PaymentService) platformFeeKobo(amountKobo int64) int64 {
	return s.feePercent.
		Mul(decimal.NewFromInt(amountKobo)).
		Div(decimal.NewFromInt(100)).
		Round(0).
		IntPart()
}

// SubmitPayment creates a linked pending payment + order pair atomically.
// Both ids are allocated up front so each row can reference the other
// inside one transaction.
func (s *PaymentService) SubmitPayment(ctx context.Context, userID uuid.UUID, userName, userEmail string, req *dto.SubmitPaymentRequest) (*dto.SubmitPaymentResponse, error) {
	paymentID := uuid.New()
	orderID := uuid.New()

	currency := req.Currency
	if currency == "" {
		currency = "NGN"
	}

	payment := &model.Payment{
		ID:            paymentID,
		Reference:     req.Reference,
		AmountKobo:    req.AmountKobo,
		Currency:      currency,
		Status:        model.PaymentStatusPending,
		UserID:        userID,
		UserName:      userName,
		UserEmail:     userEmail,
		OrderID:       &orderID,
		PaymentMethod: req.PaymentMethod,
		Metadata:      model.JSONB(req.Metadata),
	}

	order := &model.Order{
		ID:              orderID,
		PaymentID:       &paymentID,
		Paid:            false,
		PaymentStatus:   model.OrderPaymentPending,
		Status:          model.OrderStatusPending,
		BuyerID:         userID,
		SellerID:        req.SellerID,
		RunnerID:        req.RunnerID,
		ProductName:     req.ProductName,
		AmountKobo:      req.AmountKobo,
		PlatformFeeKobo: s.platformFeeKobo(req.AmountKobo),
	}

	if err := s.payments.CreatePair(ctx, payment, order); err != nil {
		return nil, err
	}

	s.logger.Info("payment submitted",
		zap.String("payment_id", paymentID.String()),
		zap.String("order_id", orderID.String()),
		zap.String("reference", req.Reference),
		zap.Int64("amount_kobo", req.AmountKobo))

	return &dto.SubmitPaymentResponse{
		Success:   true,
		PaymentID: paymentID,
		OrderID:   orderID,
		Message:   "payment submitted for review",
	}, nil
}

// VerifyTransaction checks a reference against the gateway.
func (s *PaymentService) VerifyTransaction(ctx context.Context, reference string) (*provider.TransactionData, error) {
	data, err := s.gateway.VerifyTransaction(ctx, reference)
	if err != nil {
		return nil, domainErrors.NewGatewayError(reference, err)
	}
	return data, nil
}

// gatewayEventStatus maps a webhook event type to the payment status it
// records. Unhandled event types map to the zero value.
func gatewayEventStatus(event string) model.PaymentStatus {
	switch event {
	case "charge.success":
		return model.PaymentStatusSuccess
	case "charge.failed":
		return model.PaymentStatusFailed
	default:
		return ""
	}
}

// metadataUUID extracts a uuid from webhook metadata, accepting both the
// snake_case and camelCase key spellings the clients have used.
func metadataUUID(metadata map[string]interface{}, keys ...string) (uuid.UUID, bool) {
	for _, key := range keys {
		if raw, ok := metadata[key].(string); ok && raw != "" {
			if id, err := uuid.Parse(raw); err == nil {
				return id, true
			}
		}
	}
	return uuid.Nil, false
}

// RecordGatewayResult applies one webhook event. Returns false when the
// event type is not handled (the caller logs it as ignored). This path is
// informational: it records the gateway outcome and updates order metadata
// but never marks an order paid — that requires an admin decision.
func (s *PaymentService) RecordGatewayResult(ctx context.Context, event *dto.GatewayEvent) (bool, error) {
	status := gatewayEventStatus(event.Event)
	if status == "" {
		s.logger.Info("ignoring unhandled gateway event",
			zap.String("event", event.Event))
		return false, nil
	}

	userID, hasUser := metadataUUID(event.Data.Metadata, "user_id", "userId")
	orderID, hasOrder := metadataUUID(event.Data.Metadata, "order_id", "orderId")

	currency := event.Data.Currency
	if currency == "" {
		currency = "NGN"
	}

	payment := &model.Payment{
		ID:            uuid.New(),
		Reference:     event.Data.Reference,
		AmountKobo:    event.Data.Amount,
		Currency:      currency,
		Status:        status,
		UserID:        userID,
		UserEmail:     event.Data.Customer.Email,
		PaymentMethod: event.Data.Channel,
		Metadata:      model.JSONB(event.Data.Metadata),
	}
	if hasOrder {
		payment.OrderID = &orderID
	}

	created, err := s.payments.RecordGatewayResult(ctx, payment)
	if err != nil {
		return true, err
	}
	if !created {
		// Webhook redelivery: the reference is already recorded. Nothing
		// to re-credit and nothing to re-notify.
		s.logger.Info("duplicate gateway delivery ignored",
			zap.String("reference", event.Data.Reference),
			zap.String("event", event.Event))
		return true, nil
	}

	if hasOrder {
		s.updateOrderFromGateway(ctx, orderID, event.Data.Reference, status)
	}

	if hasUser {
		title, body := gatewayNotificationText(status, event.Data.Amount)
		if err := s.notifier.Notify(ctx, userID, title, body, model.NotificationTypePayment, map[string]interface{}{
			"reference": event.Data.Reference,
		}); err != nil {
			s.logger.Warn("failed to notify buyer of gateway result",
				zap.String("user_id", userID.String()),
				zap.Error(err))
		}
	}

	return true, nil
}

// updateOrderFromGateway stamps the gateway reference onto the order and,
// for failed charges, downgrades the order's payment status — but never
// touches an order whose payment already has an admin decision.
func (s *PaymentService) updateOrderFromGateway(ctx context.Context, orderID uuid.UUID, reference string, status model.PaymentStatus) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		s.logger.Warn("failed to load order for gateway update",
			zap.String("order_id", orderID.String()),
			zap.Error(err))
		return
	}
	if order == nil {
		s.logger.Warn("gateway event references unknown order",
			zap.String("order_id", orderID.String()),
			zap.String("reference", reference))
		return
	}

	updates := map[string]interface{}{
		"gateway_reference": reference,
	}
	if status == model.PaymentStatusFailed && order.PaymentStatus == model.OrderPaymentPending {
		updates["payment_status"] = string(model.OrderPaymentFailed)
	}

	if err := s.orders.UpdateGatewayFields(ctx, orderID, updates); err != nil {
		s.logger.Warn("failed to update order from gateway event",
			zap.String("order_id", orderID.String()),
			zap.Error(err))
	}
}

func gatewayNotificationText(status model.PaymentStatus, amountKobo int64) (string, string) {
	amount := decimal.NewFromInt(amountKobo).Div(decimal.NewFromInt(100)).StringFixed(2)
	if status == model.PaymentStatusSuccess {
		return "Payment received", fmt.Sprintf("Your payment of ₦%s was received and is awaiting confirmation.", amount)
	}
	return "Payment failed", fmt.Sprintf("Your payment of ₦%s could not be completed.", amount)
}

// decisionOrderUpdates derives the linked-order fields for a decision.
// Approved marks the order paid and moves it to preparing; rejected cancels
// it. These two maps are the whole order side of the state machine.
func decisionOrderUpdates(decision model.PaymentStatus) map[string]interface{} {
	if decision == model.PaymentStatusApproved {
		return map[string]interface{}{
			"paid":           true,
			"payment_status": string(model.OrderPaymentApproved),
			"status":         string(model.OrderStatusPreparing),
		}
	}
	return map[string]interface{}{
		"paid":           false,
		"payment_status": string(model.OrderPaymentRejected),
		"status":         string(model.OrderStatusCancelled),
	}
}

// DecidePayment applies an admin approve/reject decision. The payment and
// order rows change in one transaction; notifications go out afterwards and
// their failure never rolls the decision back.
func (s *PaymentService) DecidePayment(ctx context.Context, paymentID uuid.UUID, decision string, notes *string) (*model.Payment, error) {
	status := model.PaymentStatus(decision)
	if !status.Terminal() {
		return nil, domainErrors.NewInvalidDecisionError(decision)
	}

	payment, order, err := s.payments.ApplyDecision(ctx, paymentID, status, notes, decisionOrderUpdates(status))
	if err != nil {
		return nil, err
	}

	s.logger.Info("payment decision applied",
		zap.String("payment_id", paymentID.String()),
		zap.String("decision", decision))

	s.notifyDecision(ctx, payment, order, status)

	return payment, nil
}

// notifyDecision fans the decision out to the affected parties.
func (s *PaymentService) notifyDecision(ctx context.Context, payment *model.Payment, order *model.Order, decision model.PaymentStatus) {
	data := map[string]interface{}{
		"payment_id": payment.ID.String(),
		"reference":  payment.Reference,
	}
	if order != nil {
		data["order_id"] = order.ID.String()
	}

	var title, body string
	if decision == model.PaymentStatusApproved {
		title = "Payment approved"
		body = "Your payment was approved. Your order is being prepared."
	} else {
		title = "Payment rejected"
		body = "Your payment was rejected and the order has been cancelled."
	}

	if err := s.notifier.Notify(ctx, payment.UserID, title, body, model.NotificationTypePayment, data); err != nil {
		s.logger.Warn("failed to notify buyer of decision",
			zap.String("payment_id", payment.ID.String()),
			zap.Error(err))
	}

	if decision == model.PaymentStatusApproved && order != nil && order.SellerID != nil {
		if err := s.notifier.Notify(ctx, *order.SellerID, "New paid order",
			fmt.Sprintf("Order for %s has been paid. Start preparing it.", order.ProductName),
			model.NotificationTypeOrder, data); err != nil {
			s.logger.Warn("failed to notify seller of decision",
				zap.String("order_id", order.ID.String()),
				zap.Error(err))
		}
	}
}

// BulkDecide applies one decision to many payments independently. Partial
// failure is expected; the result carries per-item outcomes.
func (s *PaymentService) BulkDecide(ctx context.Context, req *dto.BulkDecisionRequest) *dto.BulkDecisionResult {
	notes := "Bulk processed"
	result := &dto.BulkDecisionResult{}

	for _, id := range req.IDs {
		if _, err := s.DecidePayment(ctx, id, req.Status, &notes); err != nil {
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

// GetByID retrieves a payment record.
func (s *PaymentService) GetByID(ctx context.Context, id uuid.UUID) (*model.Payment, error) {
	payment, err := s.payments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, domainErrors.NewPaymentNotFoundError(id.String())
	}
	return payment, nil
}

// ListByUser returns the caller's payment history.
func (s *PaymentService) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Payment, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.payments.ListByUser(ctx, userID, limit, offset)
}

// ListPending returns the admin review queue.
func (s *PaymentService) ListPending(ctx context.Context, limit, offset int) ([]model.Payment, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.payments.ListPending(ctx, limit, offset)
}
