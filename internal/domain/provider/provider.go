package provider

import (
	"context"
	"errors"
	"time"
)

// TransactionData is the gateway-side view of one transaction attempt.
// Amount is in kobo, exactly as Paystack reports it.
type TransactionData struct {
	Reference     string    `json:"reference"`
	Status        string    `json:"status"`
	Amount        int64     `json:"amount"`
	Currency      string    `json:"currency"`
	Channel       string    `json:"channel"`
	CustomerEmail string    `json:"customer_email"`
	PaidAt        time.Time `json:"paid_at"`
}

// GatewayClient verifies transactions against the payment gateway.
type GatewayClient interface {
	VerifyTransaction(ctx context.Context, reference string) (*TransactionData, error)
	VerifyWebhookSignature(body []byte, signature string) bool
}

// ErrDeviceNotRegistered is returned by a PushSender when the relay reports
// the destination token as permanently invalid. The dispatcher clears the
// stored token when it sees this.
var ErrDeviceNotRegistered = errors.New("push destination not registered")

// PushSender delivers one push notification to a device token.
type PushSender interface {
	Send(ctx context.Context, token, title, body string, data map[string]interface{}) error
}
