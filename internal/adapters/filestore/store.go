package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"minibank/internal/core/domain"
	"minibank/internal/core/ports"
)

var _ ports.AccountStore = (*Store)(nil) // Ensure compliance

// accountRecord is the on-disk schema for a single account. The field set
// is fixed: adding a field means changing the persisted format
// deliberately, never as a side effect of touching the entity.
type accountRecord struct {
	AccountNumber string   `json:"account_number"`
	Name          string   `json:"name"`
	PasswordHash  string   `json:"password_hash"`
	Balance       float64  `json:"balance"`
	Transactions  []string `json:"transactions"`
}

// Store persists the registry as a single indented JSON document mapping
// account numbers to records. It is the default backend and stays
// byte-compatible with existing data files.
type Store struct {
	path string
	log  zerolog.Logger
}

// New creates a file-backed store for the given path.
func New(path string, baseLogger *zerolog.Logger) *Store {
	return &Store{
		path: path,
		log:  baseLogger.With().Str("component", "filestore").Logger(),
	}
}

// Load reads the whole data file. A missing file is a fresh install and
// yields an empty registry; a file that cannot be decoded yields
// ErrMalformedStore, which aborts startup.
func (s *Store) Load(ctx context.Context) (map[string]*domain.Account, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.log.Info().Str("path", s.path).Msg("Data file not found, starting with empty registry")
			return make(map[string]*domain.Account), nil
		}
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}

	var records map[string]accountRecord
	if err := json.Unmarshal(data, &records); err != nil {
		s.log.Error().Err(err).Str("path", s.path).Msg("Data file is corrupt")
		return nil, fmt.Errorf("decoding %s: %w", s.path, domain.ErrMalformedStore)
	}

	accounts := make(map[string]*domain.Account, len(records))
	for number, rec := range records {
		txs := rec.Transactions
		if len(txs) == 0 {
			// Absent and empty logs are the same thing in memory.
			txs = nil
		}
		accounts[number] = &domain.Account{
			Number:       rec.AccountNumber,
			Name:         rec.Name,
			PasswordHash: rec.PasswordHash,
			Balance:      rec.Balance,
			Transactions: txs,
		}
	}

	s.log.Debug().Int("accounts", len(accounts)).Msg("Registry loaded from data file")
	return accounts, nil
}

// Save rewrites the data file with every account. The document is written
// to a uniquely named temp file and renamed into place, so a crash
// mid-write cannot corrupt the previous registry.
func (s *Store) Save(ctx context.Context, accounts map[string]*domain.Account) error {
	records := make(map[string]accountRecord, len(accounts))
	for number, acct := range accounts {
		txs := acct.Transactions
		if txs == nil {
			// Existing data files store "[]", not null.
			txs = []string{}
		}
		records[number] = accountRecord{
			AccountNumber: acct.Number,
			Name:          acct.Name,
			PasswordHash:  acct.PasswordHash,
			Balance:       acct.Balance,
			Transactions:  txs,
		}
	}

	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return fmt.Errorf("encoding registry: %w", err)
	}

	tmp := fmt.Sprintf("%s.%s.tmp", s.path, uuid.NewString())
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing %s: %w", s.path, err)
	}

	s.log.Debug().Int("accounts", len(records)).Msg("Registry saved to data file")
	return nil
}
