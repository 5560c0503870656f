package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Message is one delivery received on a subscribed channel.
type Message struct {
	Channel string
	Payload []byte
	Time    time.Time
}

// Subscription is a live channel subscription. Close must be called when the
// owning stream ends; the subscription does not clean itself up.
type Subscription struct {
	C      <-chan Message
	pubsub *redis.PubSub
}

// Close tears down the subscription and its delivery goroutine.
func (s *Subscription) Close() error {
	return s.pubsub.Close()
}

// Client is the pub/sub fan-out used for live notification streams.
type Client interface {
	Publish(ctx context.Context, channel string, message interface{}) error
	Subscribe(ctx context.Context, channel string) (*Subscription, error)
	Close() error
}

type redisClient struct {
	client *redis.Client
}

// NewRedisClient connects to redis and verifies the connection.
func NewRedisClient(addr, password string, db int) (Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &redisClient{client: client}, nil
}

// Publish serializes the message as JSON and publishes it to the channel.
func (r *redisClient) Publish(ctx context.Context, channel string, message interface{}) error {
	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	return r.client.Publish(ctx, channel, payload).Err()
}

// Subscribe opens a subscription on the channel. Deliveries stop when the
// returned Subscription is closed.
func (r *redisClient) Subscribe(ctx context.Context, channel string) (*Subscription, error) {
	pubsub := r.client.Subscribe(ctx, channel)

	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to channel %s: %w", channel, err)
	}

	messageCh := make(chan Message)
	go func() {
		defer close(messageCh)

		ch := pubsub.Channel()
		for msg := range ch {
			messageCh <- Message{
				Channel: msg.Channel,
				Payload: []byte(msg.Payload),
				Time:    time.Now(),
			}
		}
	}()

	return &Subscription{C: messageCh, pubsub: pubsub}, nil
}

// Close shuts down the underlying redis connection.
func (r *redisClient) Close() error {
	return r.client.Close()
}
