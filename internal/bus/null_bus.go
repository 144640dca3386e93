package bus

import (
	"context"
	"log"
	"sync/atomic"
)

// NullBus is a no-op implementation of the bus interface for when Redis is disabled
type NullBus struct {
	logger  *log.Logger
	dropped int64
}

// NewNullBus creates a new null bus instance
func NewNullBus(logger *log.Logger) *NullBus {
	if logger == nil {
		logger = log.New(log.Writer(), "[NullBus] ", log.LstdFlags)
	}

	return &NullBus{
		logger: logger,
	}
}

// Close is a no-op for null bus
func (nb *NullBus) Close() error {
	return nil
}

// PublishIntake logs the notification but doesn't actually publish it
func (nb *NullBus) PublishIntake(ctx context.Context, msg IntakeMessage) error {
	atomic.AddInt64(&nb.dropped, 1)
	nb.logger.Printf("Would publish %s for entry %s (Redis disabled)", msg.Action, msg.EntryID)
	return nil
}

// GetStats returns empty stats for null bus
func (nb *NullBus) GetStats(ctx context.Context) (map[string]interface{}, error) {
	return map[string]interface{}{
		"type":    "null",
		"status":  "disabled",
		"dropped": atomic.LoadInt64(&nb.dropped),
	}, nil
}

// HealthCheck always returns nil for null bus
func (nb *NullBus) HealthCheck(ctx context.Context) error {
	return nil
}
