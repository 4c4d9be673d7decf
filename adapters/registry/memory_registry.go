package registry

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"github.com/quantor-dev/cerberus/ports"
)

// MemoryRegistry is an in-memory implementation of the TokenRegistry interface
type MemoryRegistry struct {
	tokens map[string]time.Time
	mu     sync.RWMutex
}

// NewMemoryRegistry creates a new in-memory registry
func NewMemoryRegistry() ports.TokenRegistry {
	return &MemoryRegistry{
		tokens: make(map[string]time.Time),
	}
}

// Register adds a token to the valid set. A zero ttl keeps the entry until
// it is revoked. Re-registering an existing token keeps a single entry.
func (r *MemoryRegistry) Register(ctx context.Context, token string, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var expiry time.Time
	if ttl > 0 {
		expiry = time.Now().Add(ttl)
	}
	r.tokens[digest(token)] = expiry

	return nil
}

// IsRegistered checks whether a token is in the valid set
func (r *MemoryRegistry) IsRegistered(ctx context.Context, token string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	expiry, exists := r.tokens[digest(token)]
	if !exists {
		return false, nil
	}

	// A zero expiry means the entry never ages out
	if !expiry.IsZero() && time.Now().After(expiry) {
		return false, nil
	}

	return true, nil
}

// Revoke removes a token from the valid set. Revoking an absent token is a no-op.
func (r *MemoryRegistry) Revoke(ctx context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.tokens, digest(token))
	return nil
}

func digest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
