package users

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/quantor-dev/cerberus/core"
	"github.com/quantor-dev/cerberus/ports"
)

// MemoryRepository is an in-memory implementation of the UserRepository
// interface, used in tests and when no database is configured.
type MemoryRepository struct {
	byUsername map[string]*core.User
	order      []string
	mu         sync.RWMutex
}

// NewMemoryRepository creates a new in-memory repository
func NewMemoryRepository() ports.UserRepository {
	return &MemoryRepository{
		byUsername: make(map[string]*core.User),
	}
}

// Create persists a new user. The check and insert happen under a single
// lock, so concurrent creation of the same username admits exactly one.
func (r *MemoryRepository) Create(ctx context.Context, user *core.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byUsername[user.Username]; exists {
		return core.ErrUserExists
	}

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	user.CreatedAt = time.Now()

	stored := *user
	r.byUsername[user.Username] = &stored
	r.order = append(r.order, user.Username)

	return nil
}

// FindByUsername returns the user with the given username
func (r *MemoryRepository) FindByUsername(ctx context.Context, username string) (*core.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, exists := r.byUsername[username]
	if !exists {
		return nil, core.ErrUserNotFound
	}

	u := *user
	return &u, nil
}

// List returns all registered users in creation order
func (r *MemoryRepository) List(ctx context.Context) ([]*core.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*core.User, 0, len(r.order))
	for _, username := range r.order {
		u := *r.byUsername[username]
		result = append(result, &u)
	}

	return result, nil
}
