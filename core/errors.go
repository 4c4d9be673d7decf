package core

import "errors"

var (
	// Validation: user-correctable input problems
	ErrMissingCredentials = errors.New("username and password are required")
	ErrMissingToken       = errors.New("refresh token is required")

	// Authentication: wrong credentials or untrusted tokens
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnknownToken       = errors.New("refresh token is not registered")
	ErrTokenExpired       = errors.New("token has expired")
	ErrInvalidSignature   = errors.New("invalid token signature")
	ErrMalformedToken     = errors.New("malformed token")
	ErrInvalidToken       = errors.New("invalid token")

	// Conflict: duplicate identity
	ErrUserExists = errors.New("user already exists")

	// Store: underlying persistence failure, surfaced generically
	ErrStoreFailure = errors.New("store operation failed")
)
