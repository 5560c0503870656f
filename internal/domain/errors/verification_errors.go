package errors

import (
	"fmt"
)

// VerificationError represents errors related to identity verification review
type VerificationError struct {
	Type           string
	Message        string
	VerificationID string
	Cause          error
}

func (e *VerificationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (verification: %s) - %v", e.Type, e.Message, e.VerificationID, e.Cause)
	}
	return fmt.Sprintf("%s: %s (verification: %s)", e.Type, e.Message, e.VerificationID)
}

func (e *VerificationError) Unwrap() error {
	return e.Cause
}

// Verification error types
const (
	ErrTypeVerificationNotFound     = "VERIFICATION_NOT_FOUND"
	ErrTypeVerificationAlreadyFinal = "VERIFICATION_ALREADY_DECIDED"
	ErrTypeVerificationUserMissing  = "VERIFICATION_USER_MISSING"
)

// NewVerificationNotFoundError creates a new verification not found error
func NewVerificationNotFoundError(verificationID string) *VerificationError {
	return &VerificationError{
		Type:           ErrTypeVerificationNotFound,
		Message:        "verification record does not exist",
		VerificationID: verificationID,
	}
}

// NewVerificationAlreadyDecidedError creates an error for reviews of terminal records
func NewVerificationAlreadyDecidedError(verificationID string) *VerificationError {
	return &VerificationError{
		Type:           ErrTypeVerificationAlreadyFinal,
		Message:        "verification has already reached a terminal decision",
		VerificationID: verificationID,
	}
}

// NewVerificationUserMissingError creates an error for reviews whose user row is gone
func NewVerificationUserMissingError(verificationID string, cause error) *VerificationError {
	return &VerificationError{
		Type:           ErrTypeVerificationUserMissing,
		Message:        "user referenced by verification does not exist",
		VerificationID: verificationID,
		Cause:          cause,
	}
}
