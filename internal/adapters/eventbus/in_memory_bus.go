package eventbus

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"minibank/internal/core/ports"
)

var _ ports.EventBus = (*inMemoryEventBus)(nil) // Ensure compliance

// inMemoryEventBus implements the ports.EventBus interface.
type inMemoryEventBus struct {
	log         zerolog.Logger
	subscribers map[string][]ports.EventHandler
	mu          sync.RWMutex
}

// NewInMemoryEventBus creates a new, empty event bus.
func NewInMemoryEventBus(baseLogger *zerolog.Logger) ports.EventBus {
	return &inMemoryEventBus{
		log:         baseLogger.With().Str("component", "in_memory_bus").Logger(),
		subscribers: make(map[string][]ports.EventHandler),
	}
}

// Publish runs every handler for the topic inline, in subscription order.
// The process is single-operator and may exit right after its last
// operation, so async dispatch could drop audit entries on the way out.
// A failing handler is logged and does not stop the others.
func (b *inMemoryEventBus) Publish(ctx context.Context, topic string, event ports.AccountEvent) error {
	b.mu.RLock()
	handlers := b.subscribers[topic]
	b.mu.RUnlock()

	if len(handlers) == 0 {
		b.log.Debug().Str("topic", topic).Msg("Published event with no subscribers")
		return nil
	}

	for _, handler := range handlers {
		if err := handler(ctx, topic, event); err != nil {
			b.log.Error().Err(err).Str("topic", topic).Msg("Event handler failed")
		}
	}
	return nil
}

// Subscribe registers a handler for a specific topic.
func (b *inMemoryEventBus) Subscribe(topic string, handler ports.EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.subscribers[topic] = append(b.subscribers[topic], handler)
	b.log.Debug().Str("topic", topic).Msg("New handler subscribed to topic")
}
