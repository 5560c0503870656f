package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus represents the fulfilment state of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// OrderPaymentStatus mirrors the admin decision on the linked payment.
type OrderPaymentStatus string

const (
	OrderPaymentPending  OrderPaymentStatus = "pending"
	OrderPaymentApproved OrderPaymentStatus = "approved"
	OrderPaymentRejected OrderPaymentStatus = "rejected"
	OrderPaymentFailed   OrderPaymentStatus = "failed"
)

// orderTransitions lists the allowed forward transitions. Cancelled is only
// reachable through a payment rejection, never through this table.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusPreparing},
	OrderStatusPreparing: {OrderStatusReady},
	OrderStatusReady:     {OrderStatusDelivered},
}

// CanTransitionTo reports whether a manual status change is allowed.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Order represents an order paired 1:1 with its payment record.
// Invariant: Paid is true iff PaymentStatus is approved, and the order is
// cancelled iff the payment was rejected.
type Order struct {
	ID               uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	PaymentID        *uuid.UUID         `gorm:"type:uuid;index" json:"payment_id,omitempty"`
	Paid             bool               `gorm:"not null;default:false" json:"paid"`
	PaymentStatus    OrderPaymentStatus `gorm:"size:20;not null;default:'pending'" json:"paymentStatus"`
	Status           OrderStatus        `gorm:"size:20;not null;default:'pending';index" json:"status"`
	BuyerID          uuid.UUID          `gorm:"type:uuid;not null;index" json:"buyer_id"`
	SellerID         *uuid.UUID         `gorm:"type:uuid;index" json:"seller_id,omitempty"`
	RunnerID         *uuid.UUID         `gorm:"type:uuid;index" json:"runner_id,omitempty"`
	ProductName      string             `gorm:"size:255;not null" json:"product_name"`
	AmountKobo       int64              `gorm:"not null" json:"amount_kobo"`
	PlatformFeeKobo  int64              `gorm:"not null;default:0" json:"platform_fee_kobo"`
	GatewayReference *string            `gorm:"size:100" json:"gateway_reference,omitempty"`
	CreatedAt        time.Time          `gorm:"default:now()" json:"created_at"`
	UpdatedAt        time.Time          `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Order) TableName() string {
	return "orders"
}
