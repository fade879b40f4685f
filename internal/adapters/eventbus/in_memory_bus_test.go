package eventbus

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"minibank/internal/core/ports"
)

func TestPublish_DispatchesInlineInOrder(t *testing.T) {
	nopLogger := zerolog.Nop()
	bus := NewInMemoryEventBus(&nopLogger)

	var calls []string
	bus.Subscribe(ports.TopicAccountDeposited, func(ctx context.Context, topic string, event ports.AccountEvent) error {
		calls = append(calls, "first:"+event.AccountNumber)
		return nil
	})
	bus.Subscribe(ports.TopicAccountDeposited, func(ctx context.Context, topic string, event ports.AccountEvent) error {
		calls = append(calls, "second:"+event.AccountNumber)
		return nil
	})

	event := ports.AccountEvent{ID: uuid.New(), AccountNumber: "000001", Amount: 50}
	if err := bus.Publish(context.Background(), ports.TopicAccountDeposited, event); err != nil {
		t.Fatalf("Publish err=%v", err)
	}

	// Handlers run synchronously, so both calls are visible immediately
	// and in subscription order.
	if len(calls) != 2 || calls[0] != "first:000001" || calls[1] != "second:000001" {
		t.Fatalf("calls=%v", calls)
	}
}

func TestPublish_NoSubscribersIsFine(t *testing.T) {
	nopLogger := zerolog.Nop()
	bus := NewInMemoryEventBus(&nopLogger)

	err := bus.Publish(context.Background(), ports.TopicAccountCreated, ports.AccountEvent{ID: uuid.New()})
	if err != nil {
		t.Fatalf("Publish err=%v", err)
	}
}

func TestPublish_HandlerErrorDoesNotStopOthers(t *testing.T) {
	nopLogger := zerolog.Nop()
	bus := NewInMemoryEventBus(&nopLogger)

	var reached bool
	bus.Subscribe(ports.TopicAccountWithdrawn, func(ctx context.Context, topic string, event ports.AccountEvent) error {
		return errors.New("boom")
	})
	bus.Subscribe(ports.TopicAccountWithdrawn, func(ctx context.Context, topic string, event ports.AccountEvent) error {
		reached = true
		return nil
	})

	if err := bus.Publish(context.Background(), ports.TopicAccountWithdrawn, ports.AccountEvent{ID: uuid.New()}); err != nil {
		t.Fatalf("Publish err=%v", err)
	}
	if !reached {
		t.Fatal("second handler should run despite the first one failing")
	}
}

func TestPublish_OnlyMatchingTopic(t *testing.T) {
	nopLogger := zerolog.Nop()
	bus := NewInMemoryEventBus(&nopLogger)

	var created, deposited int
	bus.Subscribe(ports.TopicAccountCreated, func(ctx context.Context, topic string, event ports.AccountEvent) error {
		created++
		return nil
	})
	bus.Subscribe(ports.TopicAccountDeposited, func(ctx context.Context, topic string, event ports.AccountEvent) error {
		deposited++
		return nil
	})

	_ = bus.Publish(context.Background(), ports.TopicAccountDeposited, ports.AccountEvent{ID: uuid.New()})

	if created != 0 || deposited != 1 {
		t.Fatalf("created=%d deposited=%d", created, deposited)
	}
}
