package postgres

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"minibank/internal/core/domain"
	"minibank/internal/core/ports"
)

var _ ports.AccountStore = (*accountStore)(nil) // Ensure compliance

const accountsSchema = `
CREATE TABLE IF NOT EXISTS accounts (
	account_number TEXT PRIMARY KEY,
	name           TEXT NOT NULL,
	password_hash  TEXT NOT NULL,
	balance        DOUBLE PRECISION NOT NULL DEFAULT 0,
	transactions   TEXT[] NOT NULL DEFAULT '{}'
)`

// accountStore keeps the registry in postgres under the same contract as
// the file backend: Save rewrites every account, Load returns them all.
type accountStore struct {
	db  *DB
	log zerolog.Logger
}

// NewAccountStore ensures the accounts table exists and returns the store.
func NewAccountStore(ctx context.Context, db *DB, baseLogger *zerolog.Logger) (ports.AccountStore, error) {
	log := baseLogger.With().Str("component", "postgres_store").Logger()

	if _, err := db.pool.Exec(ctx, accountsSchema); err != nil {
		log.Error().Err(err).Msg("Failed to ensure accounts table")
		return nil, fmt.Errorf("ensuring accounts table: %w", err)
	}

	return &accountStore{db: db, log: log}, nil
}

// Load reads every persisted account. An empty table is a fresh install
// and yields an empty registry.
func (s *accountStore) Load(ctx context.Context) (map[string]*domain.Account, error) {
	query := `
		SELECT account_number, name, password_hash, balance, transactions
		FROM accounts
	`

	rows, err := s.db.pool.Query(ctx, query)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to query accounts")
		return nil, fmt.Errorf("querying accounts: %w", err)
	}
	defer rows.Close()

	accounts := make(map[string]*domain.Account)
	for rows.Next() {
		var acct domain.Account
		var txs []string
		if err := rows.Scan(&acct.Number, &acct.Name, &acct.PasswordHash, &acct.Balance, &txs); err != nil {
			s.log.Error().Err(err).Msg("Failed to scan account row")
			return nil, fmt.Errorf("scanning account row: %w", err)
		}
		if len(txs) > 0 {
			acct.Transactions = txs
		}
		accounts[acct.Number] = &acct
	}
	if err := rows.Err(); err != nil {
		s.log.Error().Err(err).Msg("Error iterating account rows")
		return nil, fmt.Errorf("iterating account rows: %w", err)
	}

	s.log.Debug().Int("accounts", len(accounts)).Msg("Registry loaded from postgres")
	return accounts, nil
}

// Save replaces the whole table with the given registry in a single
// transaction, mirroring the file backend's full-overwrite semantics.
func (s *accountStore) Save(ctx context.Context, accounts map[string]*domain.Account) error {
	tx, err := s.db.pool.Begin(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to begin save transaction")
		return fmt.Errorf("beginning save transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM accounts`); err != nil {
		s.log.Error().Err(err).Msg("Failed to clear accounts table")
		return fmt.Errorf("clearing accounts table: %w", err)
	}

	insert := `
		INSERT INTO accounts (account_number, name, password_hash, balance, transactions)
		VALUES ($1, $2, $3, $4, $5)
	`
	for _, acct := range accounts {
		txs := acct.Transactions
		if txs == nil {
			txs = []string{}
		}
		if _, err := tx.Exec(ctx, insert, acct.Number, acct.Name, acct.PasswordHash, acct.Balance, txs); err != nil {
			s.log.Error().Err(err).Str("account", acct.Number).Msg("Failed to insert account")
			return fmt.Errorf("inserting account %s: %w", acct.Number, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		s.log.Error().Err(err).Msg("Failed to commit save transaction")
		return fmt.Errorf("committing save transaction: %w", err)
	}

	s.log.Debug().Int("accounts", len(accounts)).Msg("Registry saved to postgres")
	return nil
}
