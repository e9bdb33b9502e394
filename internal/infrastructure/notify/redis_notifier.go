package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rentflow/backend/internal/application/notification"
	"github.com/rentflow/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// RedisNotifier publishes notifications to a Redis Pub/Sub channel where
// downstream delivery workers (mail, push) pick them up. Delivery stays best
// effort: the caller decides whether a failed Send matters.
type RedisNotifier struct {
	client     *redis.Client
	ownsClient bool
	channel    string
	logger     *zap.Logger
}

// envelope is the wire form of a notification on the channel
type envelope struct {
	notification.Notification
	SentAt int64 `json:"sent_at"`
}

// NewRedisNotifier creates a notifier with its own Redis connection
func NewRedisNotifier(cfg config.RedisConfig, logger *zap.Logger) (*RedisNotifier, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisNotifier{
		client:     client,
		ownsClient: true,
		channel:    cfg.Channel,
		logger:     logger,
	}, nil
}

// NewRedisNotifierWithClient creates a notifier on an existing client.
// The caller retains ownership of the client and closes it.
func NewRedisNotifierWithClient(client *redis.Client, channel string, logger *zap.Logger) *RedisNotifier {
	return &RedisNotifier{
		client:  client,
		channel: channel,
		logger:  logger,
	}
}

// Send publishes one notification to the channel
func (n *RedisNotifier) Send(ctx context.Context, msg notification.Notification) error {
	data, err := json.Marshal(envelope{
		Notification: msg,
		SentAt:       time.Now().UnixNano(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	if err := n.client.Publish(ctx, n.channel, data).Err(); err != nil {
		n.logger.Error("failed to publish notification",
			zap.String("channel", n.channel),
			zap.String("event_type", msg.EventType),
			zap.Error(err))
		return fmt.Errorf("failed to publish notification: %w", err)
	}

	n.logger.Debug("notification published",
		zap.String("channel", n.channel),
		zap.String("event_type", msg.EventType),
		zap.String("recipient_id", msg.RecipientID.String()))

	return nil
}

// Close releases the Redis connection if this notifier owns it
func (n *RedisNotifier) Close() error {
	if !n.ownsClient {
		return nil
	}
	return n.client.Close()
}

// Ensure RedisNotifier implements Notifier
var _ notification.Notifier = (*RedisNotifier)(nil)
