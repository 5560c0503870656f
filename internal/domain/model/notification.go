package model

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType categorizes a notification for preference gating and
// client-side channel routing.
type NotificationType string

const (
	NotificationTypePayment      NotificationType = "payment"
	NotificationTypeVerification NotificationType = "verification"
	NotificationTypeOrder        NotificationType = "order"
	NotificationTypeMessage      NotificationType = "message"
	NotificationTypeErrand       NotificationType = "errand"
	NotificationTypeGeneral      NotificationType = "general"
)

// Notification is the in-app notification record. It is the record of truth
// for badges; push delivery is best-effort on top of it. Only the Read flag
// is ever mutated after creation.
type Notification struct {
	ID        uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	Type      NotificationType `gorm:"size:20;not null" json:"type"`
	Title     string           `gorm:"size:255;not null" json:"title"`
	Body      string           `gorm:"not null" json:"body"`
	Read      bool             `gorm:"not null;default:false;index" json:"read"`
	Data      JSONB            `gorm:"type:jsonb" json:"data,omitempty"`
	CreatedAt time.Time        `gorm:"default:now()" json:"created_at"`
}

// TableName specifies the table name for GORM
func (Notification) TableName() string {
	return "notifications"
}

// NotificationPreference holds a user's per-category opt-outs. A missing row
// means everything is allowed.
type NotificationPreference struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	Orders    bool      `gorm:"not null;default:true" json:"orders"`
	Messages  bool      `gorm:"not null;default:true" json:"messages"`
	Payments  bool      `gorm:"not null;default:true" json:"payments"`
	Errands   bool      `gorm:"not null;default:true" json:"errands"`
	General   bool      `gorm:"not null;default:true" json:"general"`
	UpdatedAt time.Time `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (NotificationPreference) TableName() string {
	return "notification_preferences"
}

// Allows reports whether the given category is enabled. Verification
// outcomes ride the general channel; there is no opt-out for them beyond it.
func (p *NotificationPreference) Allows(t NotificationType) bool {
	if p == nil {
		return true
	}
	switch t {
	case NotificationTypeOrder:
		return p.Orders
	case NotificationTypeMessage:
		return p.Messages
	case NotificationTypePayment:
		return p.Payments
	case NotificationTypeErrand:
		return p.Errands
	default:
		return p.General
	}
}
