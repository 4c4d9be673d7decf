package core

import "time"

// Session represents the identity claims carried by a signed token
type Session struct {
	ID        string    // Unique token identifier (JWT ID)
	Username  string    // Identity the token was issued for
	IssuedAt  time.Time // When the token was minted
	ExpiresAt time.Time // When the token expires; zero means no embedded expiry
}

// Expires reports whether the session carries an expiry at all.
// Refresh tokens issued without a TTL rely solely on registry revocation.
func (s *Session) Expires() bool {
	return !s.ExpiresAt.IsZero()
}
