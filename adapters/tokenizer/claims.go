package tokenizer

import "github.com/golang-jwt/jwt/v5"

// AccessClaims are the claims embedded in access tokens
type AccessClaims struct {
	jwt.RegisteredClaims
}

// RefreshClaims are the claims embedded in refresh tokens.
// ExpiresAt is left unset unless a refresh TTL is configured; the token
// registry is the authority on refresh token validity either way.
type RefreshClaims struct {
	jwt.RegisteredClaims
}
