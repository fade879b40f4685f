package bank

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"minibank/internal/core/domain"
	"minibank/internal/core/ports"
)

// Bank owns the account registry. It generates account numbers,
// authenticates operators and orchestrates persistence. Balance mutations
// happen on the Account handed out by Authenticate; the caller is
// responsible for calling Persist afterwards.
type Bank struct {
	store    ports.AccountStore
	hasher   ports.PasswordHasher
	bus      ports.EventBus
	log      zerolog.Logger
	accounts map[string]*domain.Account
}

// New builds a Bank and eagerly loads the registry from the store.
// A corrupt store fails here and should abort startup; a missing one
// yields an empty registry.
func New(ctx context.Context, store ports.AccountStore, hasher ports.PasswordHasher, bus ports.EventBus, baseLogger *zerolog.Logger) (*Bank, error) {
	log := baseLogger.With().Str("component", "bank").Logger()

	accounts, err := store.Load(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load account registry")
		return nil, fmt.Errorf("loading account registry: %w", err)
	}
	log.Info().Int("accounts", len(accounts)).Msg("Account registry loaded")

	return &Bank{
		store:    store,
		hasher:   hasher,
		bus:      bus,
		log:      log,
		accounts: accounts,
	}, nil
}

// CreateAccount registers a new zero-balance account and persists the
// registry before returning the generated number. Numbers are the current
// account count plus one, zero-padded to six digits; accounts are never
// deleted, so the count only grows.
func (b *Bank) CreateAccount(ctx context.Context, name, password string) (string, error) {
	digest, err := b.hasher.Hash(password)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}

	number := fmt.Sprintf("%06d", len(b.accounts)+1)
	b.accounts[number] = domain.NewAccount(number, name, digest, 0)

	if err := b.Persist(ctx); err != nil {
		delete(b.accounts, number)
		return "", err
	}

	b.log.Info().Str("account", number).Msg("Account created")
	b.Publish(ctx, ports.TopicAccountCreated, number, 0)
	return number, nil
}

// Authenticate looks up an account and checks the password through the
// hasher. Unknown numbers and wrong passwords produce the same
// ErrInvalidCredentials so account numbers cannot be enumerated. On
// success the live account is returned for the caller to operate on.
func (b *Bank) Authenticate(number, password string) (*domain.Account, error) {
	acct, ok := b.accounts[number]
	if !ok || !b.hasher.Verify(password, acct.PasswordHash) {
		b.log.Warn().Str("account", number).Msg("Authentication failed")
		return nil, domain.ErrInvalidCredentials
	}
	b.log.Info().Str("account", number).Msg("Authentication succeeded")
	return acct, nil
}

// Persist rewrites the whole registry through the store. Called after
// every mutating operation; there is no incremental save.
func (b *Bank) Persist(ctx context.Context) error {
	if err := b.store.Save(ctx, b.accounts); err != nil {
		b.log.Error().Err(err).Msg("Failed to persist account registry")
		return fmt.Errorf("saving account registry: %w", err)
	}
	return nil
}

// Size reports how many accounts the registry holds.
func (b *Bank) Size() int {
	return len(b.accounts)
}

// Publish emits an audit event. Bus failures are logged, never surfaced:
// the ledger mutation already happened and must not be reported as failed.
func (b *Bank) Publish(ctx context.Context, topic, number string, amount float64) {
	if b.bus == nil {
		return
	}
	event := ports.AccountEvent{
		ID:            uuid.New(),
		AccountNumber: number,
		Amount:        amount,
		At:            time.Now(),
	}
	if err := b.bus.Publish(ctx, topic, event); err != nil {
		b.log.Warn().Err(err).Str("topic", topic).Msg("Failed to publish audit event")
	}
}
