package security

import (
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"minibank/internal/core/ports"
)

var _ ports.PasswordHasher = (*bcryptHasher)(nil) // Ensure compliance

// bcryptHasher is the opt-in hardened scheme: salted, iterated, and
// non-deterministic. Digests are not interchangeable with the legacy
// sha256 scheme, so it only suits registries created under it.
type bcryptHasher struct {
	cost int
	log  zerolog.Logger
}

// NewBcryptHasher creates the hardened hasher at the default bcrypt cost.
func NewBcryptHasher(baseLogger *zerolog.Logger) ports.PasswordHasher {
	log := baseLogger.With().Str("component", "bcrypt_hasher").Logger()
	log.Info().Msg("Password hasher initialized (bcrypt)")
	return &bcryptHasher{cost: bcrypt.DefaultCost, log: log}
}

// Hash generates a salted bcrypt digest of the plaintext.
func (h *bcryptHasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to hash password")
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(digest), nil
}

// Verify checks the plaintext against a stored bcrypt digest.
func (h *bcryptHasher) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
