// Package registry provides refresh-token registry adapters.
//
// Tokens are keyed by their SHA-256 digest so the backing store never
// holds raw credential material.
package registry

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/quantor-dev/cerberus/ports"
	"github.com/redis/go-redis/v9"
)

// RedisRegistry is a Redis implementation of the TokenRegistry interface
type RedisRegistry struct {
	client *redis.Client
	prefix string
}

// NewRedisRegistry creates a new Redis registry
func NewRedisRegistry(client *redis.Client) ports.TokenRegistry {
	return &RedisRegistry{
		client: client,
		prefix: "cerberus:refresh:",
	}
}

// Register adds a token to the valid set. A zero ttl keeps the entry until
// it is revoked.
func (r *RedisRegistry) Register(ctx context.Context, token string, ttl time.Duration) error {
	if err := r.client.Set(ctx, r.key(token), "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to register token: %w", err)
	}
	return nil
}

// IsRegistered checks whether a token is in the valid set
func (r *RedisRegistry) IsRegistered(ctx context.Context, token string) (bool, error) {
	val, err := r.client.Exists(ctx, r.key(token)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token registration: %w", err)
	}
	return val > 0, nil
}

// Revoke removes a token from the valid set. Revoking an absent token is a no-op.
func (r *RedisRegistry) Revoke(ctx context.Context, token string) error {
	if err := r.client.Del(ctx, r.key(token)).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

func (r *RedisRegistry) key(token string) string {
	sum := sha256.Sum256([]byte(token))
	return r.prefix + hex.EncodeToString(sum[:])
}
