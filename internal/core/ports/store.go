package ports

import (
	"context"

	"minibank/internal/core/domain"
)

// AccountStore defines persistence for the account registry. The contract
// is whole-registry: every Save rewrites every account, and there is no
// partial update or append path.
type AccountStore interface {
	// Load reads every persisted account, keyed by account number.
	// A missing store is not an error and yields an empty registry;
	// a store that exists but cannot be decoded is fatal.
	Load(ctx context.Context) (map[string]*domain.Account, error)

	// Save overwrites the store with the full registry, including every
	// password hash and the complete transaction log of each account.
	Save(ctx context.Context, accounts map[string]*domain.Account) error
}
