package ports

import (
	"context"

	"github.com/quantor-dev/cerberus/core"
)

// UserRepository stores registered identities
type UserRepository interface {
	// Create persists a new user. The insert is atomic: if the username is
	// already taken it returns core.ErrUserExists and performs no write.
	Create(ctx context.Context, user *core.User) error

	// FindByUsername returns the user with the given username,
	// or core.ErrUserNotFound.
	FindByUsername(ctx context.Context, username string) (*core.User, error)

	// List returns all registered users
	List(ctx context.Context) ([]*core.User, error)
}
