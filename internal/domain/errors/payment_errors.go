package errors

import (
	"fmt"
)

// PaymentError represents errors related to payment operations
type PaymentError struct {
	Type      string
	Message   string
	PaymentID string
	Cause     error
}

func (e *PaymentError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (payment: %s) - %v", e.Type, e.Message, e.PaymentID, e.Cause)
	}
	return fmt.Sprintf("%s: %s (payment: %s)", e.Type, e.Message, e.PaymentID)
}

func (e *PaymentError) Unwrap() error {
	return e.Cause
}

// Payment error types
const (
	ErrTypePaymentNotFound      = "PAYMENT_NOT_FOUND"
	ErrTypePaymentAlreadyFinal  = "PAYMENT_ALREADY_DECIDED"
	ErrTypeDuplicateReference   = "DUPLICATE_REFERENCE"
	ErrTypeInvalidDecision      = "INVALID_DECISION"
	ErrTypeGatewayFailed        = "GATEWAY_REQUEST_FAILED"
	ErrTypeInvalidOrderStatus   = "INVALID_ORDER_STATUS"
	ErrTypeOrderNotFound        = "ORDER_NOT_FOUND"
)

// NewPaymentNotFoundError creates a new payment not found error
func NewPaymentNotFoundError(paymentID string) *PaymentError {
	return &PaymentError{
		Type:      ErrTypePaymentNotFound,
		Message:   "payment record does not exist",
		PaymentID: paymentID,
	}
}

// NewPaymentAlreadyDecidedError creates an error for decisions on terminal payments
func NewPaymentAlreadyDecidedError(paymentID string) *PaymentError {
	return &PaymentError{
		Type:      ErrTypePaymentAlreadyFinal,
		Message:   "payment has already reached a terminal decision",
		PaymentID: paymentID,
	}
}

// NewDuplicateReferenceError creates an error for duplicate gateway references
func NewDuplicateReferenceError(reference string) *PaymentError {
	return &PaymentError{
		Type:    ErrTypeDuplicateReference,
		Message: fmt.Sprintf("payment with reference %s already recorded", reference),
	}
}

// NewInvalidDecisionError creates an error for unsupported decision values
func NewInvalidDecisionError(decision string) *PaymentError {
	return &PaymentError{
		Type:    ErrTypeInvalidDecision,
		Message: fmt.Sprintf("decision must be approved or rejected, got %q", decision),
	}
}

// NewGatewayError creates an error for failed gateway calls
func NewGatewayError(reference string, cause error) *PaymentError {
	return &PaymentError{
		Type:    ErrTypeGatewayFailed,
		Message: fmt.Sprintf("gateway request failed for reference %s", reference),
		Cause:   cause,
	}
}

// NewOrderNotFoundError creates a new order not found error
func NewOrderNotFoundError(orderID string) *PaymentError {
	return &PaymentError{
		Type:    ErrTypeOrderNotFound,
		Message: fmt.Sprintf("order %s does not exist", orderID),
	}
}

// NewInvalidOrderStatusError creates an error for disallowed order transitions
func NewInvalidOrderStatusError(from, to string) *PaymentError {
	return &PaymentError{
		Type:    ErrTypeInvalidOrderStatus,
		Message: fmt.Sprintf("order cannot move from %s to %s", from, to),
	}
}
