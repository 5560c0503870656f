package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentStatus represents the lifecycle state of a payment record.
// The gateway webhook produces success/failed; an admin decision produces
// approved/rejected, both of which are terminal.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusSuccess  PaymentStatus = "success"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusApproved PaymentStatus = "approved"
	PaymentStatusRejected PaymentStatus = "rejected"
)

// Terminal reports whether the status is a final admin decision. Terminal
// rows must never be touched by the webhook path again.
func (s PaymentStatus) Terminal() bool {
	return s == PaymentStatusApproved || s == PaymentStatusRejected
}

// Payment represents a payment record keyed by the gateway reference.
type Payment struct {
	ID            uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	Reference     string        `gorm:"uniqueIndex;not null;size:100" json:"reference"`
	AmountKobo    int64         `gorm:"not null" json:"amount_kobo"`
	Currency      string        `gorm:"size:3;not null;default:'NGN'" json:"currency"`
	Status        PaymentStatus `gorm:"size:20;not null;default:'pending';index" json:"status"`
	UserID        uuid.UUID     `gorm:"type:uuid;not null;index" json:"user_id"`
	UserName      string        `gorm:"size:255" json:"user_name"`
	UserEmail     string        `gorm:"size:255" json:"user_email"`
	OrderID       *uuid.UUID    `gorm:"type:uuid;index" json:"order_id,omitempty"`
	PaymentMethod string        `gorm:"size:50" json:"payment_method"`
	Metadata      JSONB         `gorm:"type:jsonb" json:"metadata,omitempty"`
	ReviewerNotes *string       `json:"reviewer_notes,omitempty"`
	ReviewedAt    *time.Time    `json:"reviewed_at,omitempty"`
	CreatedAt     time.Time     `gorm:"default:now()" json:"created_at"`
	UpdatedAt     time.Time     `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Payment) TableName() string {
	return "payments"
}

// AmountMajor renders the kobo amount as a naira string for client display.
func (p *Payment) AmountMajor() string {
	return decimal.NewFromInt(p.AmountKobo).Div(decimal.NewFromInt(100)).StringFixed(2)
}
