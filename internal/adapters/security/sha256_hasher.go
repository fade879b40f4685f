package security

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"github.com/rs/zerolog"

	"minibank/internal/core/ports"
)

var _ ports.PasswordHasher = (*sha256Hasher)(nil) // Ensure compliance

// sha256Hasher is the digest scheme used by existing data files: a single
// unsalted SHA-256 round, hex encoded. It is deterministic (the same
// password always produces the same digest), which is exactly what makes
// it weak; bcryptHasher is the hardened alternative for new registries.
type sha256Hasher struct {
	log zerolog.Logger
}

// NewSHA256Hasher creates the legacy compatibility hasher.
func NewSHA256Hasher(baseLogger *zerolog.Logger) ports.PasswordHasher {
	log := baseLogger.With().Str("component", "sha256_hasher").Logger()
	log.Info().Msg("Password hasher initialized (legacy sha256 digest)")
	return &sha256Hasher{log: log}
}

// Hash returns the hex-encoded SHA-256 digest of the plaintext.
func (h *sha256Hasher) Hash(plaintext string) (string, error) {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:]), nil
}

// Verify recomputes the digest and compares in constant time.
func (h *sha256Hasher) Verify(plaintext, digest string) bool {
	sum := sha256.Sum256([]byte(plaintext))
	computed := hex.EncodeToString(sum[:])
	return subtle.ConstantTimeCompare([]byte(computed), []byte(digest)) == 1
}
