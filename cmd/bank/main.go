package main

import (
	"context"
	"fmt"
	"os"

	"minibank/internal/adapters/eventbus"
	"minibank/internal/adapters/filestore"
	"minibank/internal/adapters/postgres"
	"minibank/internal/adapters/security"
	"minibank/internal/cli"
	"minibank/internal/core/bank"
	"minibank/internal/core/ports"
	"minibank/internal/shared/config"
	"minibank/internal/shared/logger"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Initialize Logger
	isDevMode := cfg.AppEnv == "dev"
	baseLogger := logger.New(isDevMode)
	baseLogger.Info().
		Str("app_env", cfg.AppEnv).
		Str("store", cfg.StoreBackend).
		Str("hasher", cfg.PasswordHasher).
		Msg("Configuration loaded")

	ctx := context.Background()

	// 3. Initialize the Password Hasher
	var hasher ports.PasswordHasher
	switch cfg.PasswordHasher {
	case config.HasherBcrypt:
		hasher = security.NewBcryptHasher(&baseLogger)
	default:
		hasher = security.NewSHA256Hasher(&baseLogger)
	}

	// 4. Initialize the Account Store
	var store ports.AccountStore
	if cfg.StoreBackend == config.StorePostgres {
		db, err := postgres.NewDB(ctx, cfg.DatabaseURL, &baseLogger)
		if err != nil {
			baseLogger.Fatal().Err(err).Msg("Failed to initialize database")
		}
		defer db.Close()

		store, err = postgres.NewAccountStore(ctx, db, &baseLogger)
		if err != nil {
			baseLogger.Fatal().Err(err).Msg("Failed to initialize postgres store")
		}
	} else {
		store = filestore.New(cfg.DataFile, &baseLogger)
	}

	// 5. Initialize the Event Bus and the audit subscriber
	bus := eventbus.NewInMemoryEventBus(&baseLogger)
	auditLog := baseLogger.With().Str("component", "audit").Logger()
	audit := func(ctx context.Context, topic string, event ports.AccountEvent) error {
		auditLog.Info().
			Str("event_id", event.ID.String()).
			Str("topic", topic).
			Str("account", event.AccountNumber).
			Float64("amount", event.Amount).
			Time("at", event.At).
			Msg("Ledger event")
		return nil
	}
	for _, topic := range []string{
		ports.TopicAccountCreated,
		ports.TopicAccountDeposited,
		ports.TopicAccountWithdrawn,
	} {
		bus.Subscribe(topic, audit)
	}

	// 6. Load the Bank registry. A corrupt data file is fatal here; a
	// missing one just means an empty registry.
	b, err := bank.New(ctx, store, hasher, bus, &baseLogger)
	if err != nil {
		baseLogger.Fatal().Err(err).Msg("Failed to load bank registry")
	}

	// 7. Run the interactive shell until exit or end of input.
	shell := cli.New(b, os.Stdin, os.Stdout, &baseLogger)
	if err := shell.Run(ctx); err != nil {
		baseLogger.Fatal().Err(err).Msg("Shell terminated with error")
	}
}
