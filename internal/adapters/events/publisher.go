// Package events publishes supervision outcomes to other services.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"orplanning/internal/domain"
)

// Message is the envelope published on the Redis channel.
type Message struct {
	Event     string    `json:"event"`
	Payload   any       `json:"payload"`
	Timestamp time.Time `json:"timestamp"`
	NodeID    string    `json:"node_id"`
	MessageID string    `json:"message_id"`
}

// RedisConfig contains Redis connection configuration.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Channel  string
}

type redisPublisher interface {
	Publish(ctx context.Context, channel string, message any) *redis.IntCmd
}

// RedisPublisher implements domain.EventPublisher over Redis pub/sub.
type RedisPublisher struct {
	client  redisPublisher
	channel string
	nodeID  string
	logger  *slog.Logger
	now     func() time.Time
}

// DefaultChannel is used when RedisConfig.Channel is empty.
const DefaultChannel = "orplanning.supervision"

// NewRedisPublisher connects to Redis and returns a publisher. The connection is
// checked with a ping so misconfiguration surfaces at startup.
func NewRedisPublisher(ctx context.Context, cfg RedisConfig, nodeID string, logger *slog.Logger) (*RedisPublisher, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	logger.Info("redis event publisher initialized", "addr", cfg.Addr, "channel", channelOrDefault(cfg.Channel))
	return newRedisPublisher(client, cfg.Channel, nodeID, logger), nil
}

func newRedisPublisher(client redisPublisher, channel, nodeID string, logger *slog.Logger) *RedisPublisher {
	return &RedisPublisher{
		client:  client,
		channel: channelOrDefault(channel),
		nodeID:  nodeID,
		logger:  logger,
		now:     time.Now,
	}
}

func channelOrDefault(channel string) string {
	if channel == "" {
		return DefaultChannel
	}
	return channel
}

// Publish sends event with payload to the configured channel.
func (p *RedisPublisher) Publish(ctx context.Context, event string, payload any) error {
	data, err := json.Marshal(Message{
		Event:     event,
		Payload:   payload,
		Timestamp: p.now().UTC(),
		NodeID:    p.nodeID,
		MessageID: uuid.NewString(),
	})
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", event, err)
	}
	if err := p.client.Publish(ctx, p.channel, data).Err(); err != nil {
		return fmt.Errorf("publish %s event: %w", event, err)
	}
	p.logger.DebugContext(ctx, "event published", "event", event, "channel", p.channel)
	return nil
}

// Close releases the Redis connection when the publisher owns one.
func (p *RedisPublisher) Close() error {
	if c, ok := p.client.(*redis.Client); ok {
		return c.Close()
	}
	return nil
}

type noopPublisher struct{}

// NewNoopPublisher returns a publisher that drops every event.
func NewNoopPublisher() domain.EventPublisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(context.Context, string, any) error { return nil }
