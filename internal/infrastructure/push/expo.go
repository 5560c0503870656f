package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/airrands/airrands-backend/internal/domain/provider"
)

const defaultExpoURL = "https://exp.host/--/api/v2/push/send"

// ExpoClient delivers push notifications through the Expo push relay.
type ExpoClient struct {
	url         string
	accessToken string
	client      *http.Client
	logger      *zap.Logger
}

// NewExpoClient creates an Expo push client. An empty url falls back to the
// public Expo endpoint; accessToken is optional.
func NewExpoClient(url, accessToken string, logger *zap.Logger) *ExpoClient {
	if url == "" {
		url = defaultExpoURL
	}
	return &ExpoClient{
		url:         url,
		accessToken: accessToken,
		client:      &http.Client{Timeout: 10 * time.Second},
		logger:      logger,
	}
}

type expoMessage struct {
	To    string                 `json:"to"`
	Title string                 `json:"title"`
	Body  string                 `json:"body"`
	Sound string                 `json:"sound"`
	Data  map[string]interface{} `json:"data,omitempty"`
}

type expoResponse struct {
	Data []struct {
		Status  string `json:"status"`
		Message string `json:"message"`
		Details struct {
			Error string `json:"error"`
		} `json:"details"`
	} `json:"data"`
}

// Send delivers one notification to a device token. It returns
// provider.ErrDeviceNotRegistered when the relay reports the token as
// permanently invalid, so the caller can clear it.
func (c *ExpoClient) Send(ctx context.Context, token, title, body string, data map[string]interface{}) error {
	msg := expoMessage{
		To:    token,
		Title: title,
		Body:  body,
		Sound: "default",
		Data:  data,
	}

	jsonBody, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal push message: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return fmt.Errorf("failed to create push request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if c.accessToken != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.accessToken)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("push relay request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read push relay response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("Push relay returned non-200",
			zap.Int("status_code", resp.StatusCode),
			zap.String("response", string(respBody)))
		return fmt.Errorf("push relay failed with status %d", resp.StatusCode)
	}

	var parsed expoResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return fmt.Errorf("failed to parse push relay response: %w", err)
	}

	for _, ticket := range parsed.Data {
		if ticket.Status == "error" {
			if ticket.Details.Error == "DeviceNotRegistered" {
				return provider.ErrDeviceNotRegistered
			}
			return fmt.Errorf("push relay rejected message: %s", ticket.Message)
		}
	}

	return nil
}
