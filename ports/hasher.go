package ports

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	// Hash produces a salted one-way hash of the password
	Hash(password string) (string, error)

	// Verify checks the password against a stored hash.
	// A mismatch is (false, nil), not an error.
	Verify(password, hash string) (bool, error)
}
