package bus

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisBus publishes intake notifications to a Redis Stream
type RedisBus struct {
	client *redis.Client
	logger *log.Logger
	stream string
}

// NewRedisBus creates a new Redis bus instance
func NewRedisBus(redisURL string, logger *log.Logger) (*RedisBus, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	if logger == nil {
		logger = log.New(log.Writer(), "[RedisBus] ", log.LstdFlags)
	}

	return &RedisBus{
		client: client,
		logger: logger,
		stream: IntakeStream,
	}, nil
}

// Close closes the Redis connection
func (rb *RedisBus) Close() error {
	return rb.client.Close()
}

// PublishIntake appends a notification to the intake stream
func (rb *RedisBus) PublishIntake(ctx context.Context, msg IntakeMessage) error {
	result := rb.client.XAdd(ctx, &redis.XAddArgs{
		Stream: rb.stream,
		Values: intakeFields(msg),
	})

	if err := result.Err(); err != nil {
		return fmt.Errorf("failed to publish %s: %w", msg.Action, err)
	}

	rb.logger.Printf("Published %s for entry %s to %s stream", msg.Action, msg.EntryID, rb.stream)
	return nil
}

func intakeFields(msg IntakeMessage) map[string]interface{} {
	return map[string]interface{}{
		"message_id":  msg.MessageID,
		"action":      msg.Action,
		"entry_id":    msg.EntryID,
		"case_number": msg.CaseNumber,
		"rendered":    msg.Rendered,
		"timestamp":   msg.Timestamp,
	}
}

// GetStats returns stream length and connection pool statistics
func (rb *RedisBus) GetStats(ctx context.Context) (map[string]interface{}, error) {
	length, err := rb.client.XLen(ctx, rb.stream).Result()
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to get stream length: %w", err)
	}

	pool := rb.client.PoolStats()
	return map[string]interface{}{
		"type":        "redis",
		"status":      "connected",
		"stream":      rb.stream,
		"length":      length,
		"total_conns": pool.TotalConns,
		"idle_conns":  pool.IdleConns,
		"pool_hits":   pool.Hits,
		"pool_misses": pool.Misses,
	}, nil
}

// HealthCheck pings Redis
func (rb *RedisBus) HealthCheck(ctx context.Context) error {
	if err := rb.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis health check failed: %w", err)
	}
	return nil
}
