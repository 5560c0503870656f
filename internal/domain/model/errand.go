package model

import (
	"time"

	"github.com/google/uuid"
)

// ErrandStatus represents the lifecycle of a posted errand.
type ErrandStatus string

const (
	ErrandStatusOpen      ErrandStatus = "open"
	ErrandStatusAssigned  ErrandStatus = "assigned"
	ErrandStatusCompleted ErrandStatus = "completed"
	ErrandStatusCancelled ErrandStatus = "cancelled"
)

// Errand is a buyer-posted task offered to online runners.
type Errand struct {
	ID             uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	BuyerID        uuid.UUID    `gorm:"type:uuid;not null;index" json:"buyer_id"`
	RunnerID       *uuid.UUID   `gorm:"type:uuid;index" json:"runner_id,omitempty"`
	Title          string       `gorm:"size:255;not null" json:"title"`
	Description    string       `json:"description"`
	PickupAddress  string       `gorm:"size:255" json:"pickup_address"`
	DropoffAddress string       `gorm:"size:255" json:"dropoff_address"`
	FeeKobo        int64        `gorm:"not null" json:"fee_kobo"`
	Status         ErrandStatus `gorm:"size:20;not null;default:'open';index" json:"status"`
	CreatedAt      time.Time    `gorm:"default:now()" json:"created_at"`
	UpdatedAt      time.Time    `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Errand) TableName() string {
	return "errands"
}
