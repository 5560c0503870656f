package model

import (
	"database/sql/driver"
	"time"
)

// WebhookStatus represents the processing status of a webhook delivery.
type WebhookStatus string

const (
	WebhookStatusPending   WebhookStatus = "pending"
	WebhookStatusCompleted WebhookStatus = "completed"
	WebhookStatusFailed    WebhookStatus = "failed"
	WebhookStatusIgnored   WebhookStatus = "ignored"
)

// Scan implements sql.Scanner interface
func (w *WebhookStatus) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*w = WebhookStatus(v)
	case []byte:
		*w = WebhookStatus(v)
	default:
		*w = WebhookStatusPending
	}
	return nil
}

// Value implements driver.Valuer interface
func (w WebhookStatus) Value() (driver.Value, error) {
	return string(w), nil
}

// GatewayWebhookEvent is the audit log of Paystack webhook deliveries.
// Paystack does not assign event ids, so redeliveries of the same
// transaction show up as separate rows here; dedup happens on the payments
// table via the unique reference index.
type GatewayWebhookEvent struct {
	ID          int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	EventType   string        `gorm:"not null;size:100;index" json:"event_type"`
	Reference   string        `gorm:"size:100;index" json:"reference"`
	Status      WebhookStatus `gorm:"size:20;default:'pending';index" json:"status"`
	Data        JSONB         `gorm:"type:jsonb;not null" json:"data"`
	ProcessedAt *time.Time    `json:"processed_at,omitempty"`
	LastError   *string       `json:"last_error,omitempty"`
	CreatedAt   time.Time     `gorm:"default:now()" json:"created_at"`
}

// TableName specifies the table name for GORM
func (GatewayWebhookEvent) TableName() string {
	return "gateway_webhook_events"
}
