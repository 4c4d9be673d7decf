package ports

import (
	"context"
	"time"
)

// TokenRegistry tracks which refresh tokens are currently valid.
// Membership is authoritative: a refresh token that verifies
// cryptographically is still untrusted unless registered here.
type TokenRegistry interface {
	// Register adds a token to the valid set. Registering the same token
	// twice is allowed and keeps a single entry. A ttl of zero keeps the
	// entry until it is revoked.
	Register(ctx context.Context, token string, ttl time.Duration) error

	// IsRegistered reports whether the token is in the valid set
	IsRegistered(ctx context.Context, token string) (bool, error)

	// Revoke removes a token from the valid set. Revoking a token that was
	// never registered is not an error.
	Revoke(ctx context.Context, token string) error
}
