// Package config loads service configuration from the process environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"
)

// Config holds runtime settings for the Cerberus server.
//
// Fields:
//   - ListenAddr: bind address for the HTTP endpoint.
//   - DatabaseDSN: PostgreSQL DSN for the user store; empty selects the
//     in-memory store.
//   - RedisURL: Redis URL for the refresh-token registry and event stream;
//     empty selects the in-memory registry and disables events.
//   - AccessTokenSecret / RefreshTokenSecret: independent HMAC secrets.
//   - AccessTokenTTL: access token lifetime.
//   - RefreshTokenTTL: refresh token lifetime; zero issues tokens without
//     an embedded expiry, leaving revocation to the registry alone.
type Config struct {
	ListenAddr         string
	DatabaseDSN        string
	RedisURL           string
	AccessTokenSecret  string
	RefreshTokenSecret string
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
}

// Missing secrets are a startup-fatal misconfiguration, not a per-request error.
var (
	ErrMissingAccessSecret  = errors.New("ACCESS_TOKEN_SECRET is not set")
	ErrMissingRefreshSecret = errors.New("REFRESH_TOKEN_SECRET is not set")
)

// Load builds a Config from environment variables, applying defaults for
// everything except the two required token secrets.
func Load() (*Config, error) {
	cfg := &Config{
		ListenAddr:         ":9000",
		AccessTokenTTL:     35600 * time.Second,
		RefreshTokenTTL:    0,
		AccessTokenSecret:  os.Getenv("ACCESS_TOKEN_SECRET"),
		RefreshTokenSecret: os.Getenv("REFRESH_TOKEN_SECRET"),
		DatabaseDSN:        os.Getenv("DATABASE_DSN"),
		RedisURL:           os.Getenv("REDIS_URL"),
	}

	if cfg.AccessTokenSecret == "" {
		return nil, ErrMissingAccessSecret
	}
	if cfg.RefreshTokenSecret == "" {
		return nil, ErrMissingRefreshSecret
	}

	if addr := os.Getenv("LISTEN_ADDR"); addr != "" {
		cfg.ListenAddr = addr
	}

	if err := parseDuration("ACCESS_TOKEN_TTL", &cfg.AccessTokenTTL); err != nil {
		return nil, err
	}
	if err := parseDuration("REFRESH_TOKEN_TTL", &cfg.RefreshTokenTTL); err != nil {
		return nil, err
	}

	return cfg, nil
}

func parseDuration(name string, dst *time.Duration) error {
	raw := os.Getenv(name)
	if raw == "" {
		return nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", name, err)
	}
	*dst = d
	return nil
}
