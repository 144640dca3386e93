package bus

import (
	"context"
	"io"
	"log"
	"time"

	"github.com/Ashfaaq98/case-intake/internal/intake"
	"github.com/google/uuid"
)

// IntakeStream is the Redis stream intake notifications are appended to.
const IntakeStream = "intake"

// Intake actions.
const (
	ActionCaseAdded   = "case_added"
	ActionCaseRemoved = "case_removed"
)

// IntakeMessage announces a committed change to the case list
type IntakeMessage struct {
	MessageID  string `json:"message_id"`
	Action     string `json:"action"`
	EntryID    string `json:"entry_id"`
	CaseNumber string `json:"case_number"`
	Rendered   string `json:"rendered"`
	Timestamp  int64  `json:"timestamp"`
}

// NewIntakeMessage builds a message for an entry.
func NewIntakeMessage(action string, e intake.Entry) IntakeMessage {
	return IntakeMessage{
		MessageID:  uuid.New().String(),
		Action:     action,
		EntryID:    e.ID,
		CaseNumber: e.Record.CaseNumber,
		Rendered:   e.Rendered(),
		Timestamp:  time.Now().Unix(),
	}
}

// Bus defines the interface for event bus implementations
type Bus interface {
	// PublishIntake publishes a notification to the intake stream
	PublishIntake(ctx context.Context, msg IntakeMessage) error

	// GetStats returns basic statistics about the bus
	GetStats(ctx context.Context) (map[string]interface{}, error)

	// HealthCheck performs a health check on the bus connection
	HealthCheck(ctx context.Context) error

	// Close closes the bus connection
	Close() error
}

// NewBus creates a new bus instance based on the Redis URL
// If redisURL is empty or Redis is unreachable, returns a NullBus
func NewBus(redisURL string, logger *log.Logger) Bus {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	if redisURL == "" {
		return NewNullBus(logger)
	}

	redisBus, err := NewRedisBus(redisURL, logger)
	if err == nil {
		return redisBus
	}

	logger.Printf("Redis unavailable, notifications disabled: %v", err)
	return NewNullBus(logger)
}
