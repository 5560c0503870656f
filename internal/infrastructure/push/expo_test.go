package push

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/airrands/airrands-backend/internal/domain/provider"
)

func TestExpoClient_Send(t *testing.T) {
	ctx := context.Background()

	t.Run("successful delivery", func(t *testing.T) {
		var received map[string]interface{}
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			json.NewDecoder(r.Body).Decode(&received)

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"data": [{"status": "ok", "id": "ticket-1"}]}`))
		}))
		defer server.Close()

		client := NewExpoClient(server.URL, "", zap.NewNop())
		err := client.Send(ctx, "ExponentPushToken[abc]", "Payment approved", "Your order is being prepared.", map[string]interface{}{
			"order_id": "o1",
		})

		assert.NoError(t, err)
		assert.Equal(t, "ExponentPushToken[abc]", received["to"])
		assert.Equal(t, "Payment approved", received["title"])
		assert.Equal(t, "default", received["sound"])
	})

	t.Run("dead token maps to ErrDeviceNotRegistered", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"data": [{"status": "error", "message": "device gone", "details": {"error": "DeviceNotRegistered"}}]}`))
		}))
		defer server.Close()

		client := NewExpoClient(server.URL, "", zap.NewNop())
		err := client.Send(ctx, "ExponentPushToken[dead]", "t", "b", nil)

		assert.ErrorIs(t, err, provider.ErrDeviceNotRegistered)
	})

	t.Run("other ticket errors are plain errors", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"data": [{"status": "error", "message": "message too big", "details": {"error": "MessageTooBig"}}]}`))
		}))
		defer server.Close()

		client := NewExpoClient(server.URL, "", zap.NewNop())
		err := client.Send(ctx, "ExponentPushToken[abc]", "t", "b", nil)

		assert.Error(t, err)
		assert.NotErrorIs(t, err, provider.ErrDeviceNotRegistered)
	})

	t.Run("relay outage", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		client := NewExpoClient(server.URL, "", zap.NewNop())
		err := client.Send(ctx, "ExponentPushToken[abc]", "t", "b", nil)

		assert.Error(t, err)
	})

	t.Run("access token is sent when configured", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer expo-access-token", r.Header.Get("Authorization"))
			w.Write([]byte(`{"data": [{"status": "ok"}]}`))
		}))
		defer server.Close()

		client := NewExpoClient(server.URL, "expo-access-token", zap.NewNop())
		err := client.Send(ctx, "ExponentPushToken[abc]", "t", "b", nil)

		assert.NoError(t, err)
	})
}
