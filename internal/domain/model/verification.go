package model

import (
	"time"

	"github.com/google/uuid"
)

// VerificationStatus represents the review state of an identity submission.
type VerificationStatus string

const (
	VerificationStatusPending  VerificationStatus = "pending"
	VerificationStatusApproved VerificationStatus = "approved"
	VerificationStatusRejected VerificationStatus = "rejected"
)

// Terminal reports whether the status is a final review decision.
func (s VerificationStatus) Terminal() bool {
	return s == VerificationStatusApproved || s == VerificationStatusRejected
}

// UserRole identifies which role profile a verification belongs to.
type UserRole string

const (
	RoleSeller UserRole = "seller"
	RoleRunner UserRole = "runner"
)

// Verification represents a seller/runner NIN verification submission.
// The status is mirrored into the user row and the role profile row on
// every review so clients can read it without a join.
type Verification struct {
	ID            uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID          `gorm:"type:uuid;not null;index" json:"user_id"`
	UserRole      UserRole           `gorm:"size:20;not null" json:"user_role"`
	ImageURL      string             `gorm:"not null" json:"image_url"`
	Status        VerificationStatus `gorm:"size:20;not null;default:'pending';index" json:"status"`
	SubmittedAt   time.Time          `gorm:"default:now()" json:"submitted_at"`
	ReviewedAt    *time.Time         `json:"reviewed_at,omitempty"`
	ReviewerNotes *string            `json:"reviewer_notes,omitempty"`
	CreatedAt     time.Time          `gorm:"default:now()" json:"created_at"`
	UpdatedAt     time.Time          `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Verification) TableName() string {
	return "verifications"
}
