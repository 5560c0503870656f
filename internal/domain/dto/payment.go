package dto

import (
	"github.com/google/uuid"
)

// SubmitPaymentRequest creates a linked pending payment + order pair.
type SubmitPaymentRequest struct {
	Reference     string                 `json:"reference" validate:"required"`
	AmountKobo    int64                  `json:"amount_kobo" validate:"required,gt=0"`
	Currency      string                 `json:"currency" validate:"omitempty,len=3"`
	PaymentMethod string                 `json:"payment_method" validate:"omitempty,max=50"`
	ProductName   string                 `json:"product_name" validate:"required,max=255"`
	SellerID      *uuid.UUID             `json:"seller_id"`
	RunnerID      *uuid.UUID             `json:"runner_id"`
	Metadata      map[string]interface{} `json:"metadata"`
}

// SubmitPaymentResponse returns the ids of the created pair.
type SubmitPaymentResponse struct {
	Success   bool      `json:"success"`
	PaymentID uuid.UUID `json:"payment_id"`
	OrderID   uuid.UUID `json:"order_id"`
	Message   string    `json:"message"`
}

// DecisionRequest carries an admin approve/reject decision.
type DecisionRequest struct {
	Status        string  `json:"status" validate:"required,oneof=approved rejected"`
	ReviewerNotes *string `json:"reviewer_notes" validate:"omitempty,max=500"`
}

// BulkDecisionRequest applies one decision to many records.
type BulkDecisionRequest struct {
	IDs    []uuid.UUID `json:"ids" validate:"required,min=1,dive,required"`
	Status string      `json:"status" validate:"required,oneof=approved rejected"`
}

// BulkFailure identifies one failed member of a bulk decision.
type BulkFailure struct {
	ID    uuid.UUID `json:"id"`
	Error string    `json:"error"`
}

// BulkDecisionResult reports per-item outcomes; the batch is never
// all-or-nothing.
type BulkDecisionResult struct {
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
	Failures  []BulkFailure `json:"failures,omitempty"`
}

// OrderStatusRequest moves an order along the fulfilment chain.
type OrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=preparing ready delivered"`
}

// GatewayEvent is the parsed Paystack webhook envelope.
type GatewayEvent struct {
	Event string           `json:"event"`
	Data  GatewayEventData `json:"data"`
}

// GatewayEventData is the transaction payload inside a webhook event.
type GatewayEventData struct {
	Reference string                 `json:"reference"`
	Amount    int64                  `json:"amount"`
	Currency  string                 `json:"currency"`
	Channel   string                 `json:"channel"`
	Metadata  map[string]interface{} `json:"metadata"`
	Customer  GatewayCustomer        `json:"customer"`
}

// GatewayCustomer identifies the paying customer as known to the gateway.
type GatewayCustomer struct {
	Email string `json:"email"`
	Name  string `json:"first_name"`
}
