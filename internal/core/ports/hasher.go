package ports

// PasswordHasher is the contract for one-way password hashing.
type PasswordHasher interface {
	// Hash derives an opaque hash from a plaintext password.
	Hash(plaintext string) (string, error)

	// Verify reports whether plaintext matches the stored hash. A
	// malformed stored hash is a verification failure, never a panic.
	Verify(plaintext, hash string) bool
}
