package model

import (
	"time"

	"github.com/google/uuid"
)

// User is the generic profile shared by buyers, sellers and runners.
// VerificationStatus is a read mirror of the latest verification record.
type User struct {
	ID                 uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	Name               string             `gorm:"size:255;not null" json:"name"`
	Email              string             `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Role               string             `gorm:"size:20;not null;default:'buyer'" json:"role"`
	VerificationStatus VerificationStatus `gorm:"size:20" json:"verificationStatus,omitempty"`
	ExpoPushToken      *string            `gorm:"size:255" json:"expo_push_token,omitempty"`
	CreatedAt          time.Time          `gorm:"default:now()" json:"created_at"`
	UpdatedAt          time.Time          `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}

// SellerProfile holds the seller-specific business attributes.
type SellerProfile struct {
	ID                 uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	UserID             uuid.UUID          `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	BusinessName       string             `gorm:"size:255" json:"business_name"`
	BusinessAddress    string             `gorm:"size:255" json:"business_address"`
	VerificationStatus VerificationStatus `gorm:"size:20" json:"verificationStatus,omitempty"`
	CreatedAt          time.Time          `gorm:"default:now()" json:"created_at"`
	UpdatedAt          time.Time          `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (SellerProfile) TableName() string {
	return "sellers"
}

// RunnerProfile holds the runner-specific attributes. Online drives the
// errand fan-out: only online runners are notified of new errands.
type RunnerProfile struct {
	ID                 uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	UserID             uuid.UUID          `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	VehicleType        string             `gorm:"size:50" json:"vehicle_type"`
	Online             bool               `gorm:"not null;default:false;index" json:"online"`
	VerificationStatus VerificationStatus `gorm:"size:20" json:"verificationStatus,omitempty"`
	CreatedAt          time.Time          `gorm:"default:now()" json:"created_at"`
	UpdatedAt          time.Time          `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (RunnerProfile) TableName() string {
	return "runners"
}
