package paystack

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/airrands/airrands-backend/internal/domain/provider"
)

const defaultBaseURL = "https://api.paystack.co"

// Client talks to the Paystack REST API and validates webhook signatures.
type Client struct {
	secretKey string
	baseURL   string
	client    *http.Client
	logger    *zap.Logger
}

// NewClient creates a Paystack client. An empty baseURL falls back to the
// production API host.
func NewClient(secretKey, baseURL string, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		secretKey: secretKey,
		baseURL:   baseURL,
		client:    &http.Client{Timeout: 15 * time.Second},
		logger:    logger,
	}
}

// VerifyWebhookSignature recomputes the HMAC-SHA512 of the raw body with the
// secret key and compares it against the x-paystack-signature header value
// in constant time. It never errors; a malformed header is simply a
// mismatch.
func (c *Client) VerifyWebhookSignature(body []byte, signature string) bool {
	mac := hmac.New(sha512.New, []byte(c.secretKey))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// verifyResponse is the Paystack envelope for GET /transaction/verify.
type verifyResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Reference string `json:"reference"`
		Status    string `json:"status"`
		Amount    int64  `json:"amount"`
		Currency  string `json:"currency"`
		Channel   string `json:"channel"`
		PaidAt    string `json:"paid_at"`
		Customer  struct {
			Email string `json:"email"`
		} `json:"customer"`
	} `json:"data"`
}

// VerifyTransaction fetches the gateway-side state of a transaction.
// GET /transaction/verify/:reference
func (c *Client) VerifyTransaction(ctx context.Context, reference string) (*provider.TransactionData, error) {
	url := fmt.Sprintf("%s/transaction/verify/%s", c.baseURL, reference)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create verify request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.secretKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		c.logger.Error("Paystack verify request failed",
			zap.String("reference", reference),
			zap.Error(err))
		return nil, fmt.Errorf("paystack request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read paystack response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("Paystack verify returned non-200",
			zap.String("reference", reference),
			zap.Int("status_code", resp.StatusCode),
			zap.String("response", string(respBody)))
		return nil, fmt.Errorf("paystack verify failed with status %d", resp.StatusCode)
	}

	var parsed verifyResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse paystack response: %w", err)
	}
	if !parsed.Status {
		return nil, fmt.Errorf("paystack verify rejected: %s", parsed.Message)
	}

	data := &provider.TransactionData{
		Reference:     parsed.Data.Reference,
		Status:        parsed.Data.Status,
		Amount:        parsed.Data.Amount,
		Currency:      parsed.Data.Currency,
		Channel:       parsed.Data.Channel,
		CustomerEmail: parsed.Data.Customer.Email,
	}
	if parsed.Data.PaidAt != "" {
		if t, err := time.Parse(time.RFC3339, parsed.Data.PaidAt); err == nil {
			data.PaidAt = t
		}
	}

	c.logger.Debug("Paystack transaction verified",
		zap.String("reference", data.Reference),
		zap.String("status", data.Status),
		zap.Int64("amount", data.Amount))

	return data, nil
}
