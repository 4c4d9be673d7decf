// Package hasher provides password hashing adapters.
package hasher

import (
	"errors"

	"github.com/quantor-dev/cerberus/ports"
	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt cost factor. Verification at this cost takes
// tens of milliseconds, which throttles offline brute force.
const DefaultCost = 10

// BcryptHasher implements the PasswordHasher interface using bcrypt
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a bcrypt hasher with the default cost
func NewBcryptHasher() ports.PasswordHasher {
	return &BcryptHasher{cost: DefaultCost}
}

// NewBcryptHasherWithCost creates a bcrypt hasher with an explicit cost.
// Intended for tests, where the default cost is needlessly slow.
func NewBcryptHasherWithCost(cost int) ports.PasswordHasher {
	return &BcryptHasher{cost: cost}
}

// Hash produces a salted bcrypt hash of the password
func (h *BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify checks the password against a stored hash.
// A mismatch is reported as (false, nil); only an unparseable hash is an error.
func (h *BcryptHasher) Verify(password, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, err
}
