package ports

// PasswordHasher defines the one-way credential transform stored in place
// of plaintext passwords. Implementations can be swapped (legacy digest,
// salted hash) without touching the business logic that uses them.
type PasswordHasher interface {
	// Hash turns a plaintext password into the digest that gets persisted.
	Hash(plaintext string) (string, error)

	// Verify reports whether the plaintext matches a stored digest.
	Verify(plaintext, digest string) bool
}
