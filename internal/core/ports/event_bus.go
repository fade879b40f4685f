package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Audit topics published for every registry mutation.
const (
	TopicAccountCreated   = "account.created"
	TopicAccountDeposited = "account.deposited"
	TopicAccountWithdrawn = "account.withdrawn"
)

// AccountEvent is the payload carried on all audit topics.
type AccountEvent struct {
	ID            uuid.UUID
	AccountNumber string
	Amount        float64
	At            time.Time
}

// EventHandler handles a single event published on a topic.
type EventHandler func(ctx context.Context, topic string, event AccountEvent) error

// EventBus defines the interface for our in-process pub/sub system.
type EventBus interface {
	// Publish sends an event to all subscribers of a topic.
	Publish(ctx context.Context, topic string, event AccountEvent) error

	// Subscribe registers a handler for a specific topic.
	Subscribe(topic string, handler EventHandler)
}
