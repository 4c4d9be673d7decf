package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/quantor-dev/cerberus/core"
	"github.com/quantor-dev/cerberus/internal/logging"
	"github.com/quantor-dev/cerberus/ports"
)

const (
	// DefaultAccessTTL matches the reference token lifetime of 35600 seconds
	DefaultAccessTTL = 35600 * time.Second

	// DefaultRefreshTTL of zero issues refresh tokens without an embedded
	// expiry; the registry is then the only authority on their validity.
	DefaultRefreshTTL = 0
)

// Config carries the tunable token lifetimes for the service.
// Zero values select the defaults above.
type Config struct {
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

// TokenPair bundles a short-lived access token and a revocable refresh token
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthService handles authentication business logic: registration, login,
// access-token refresh, and logout.
type AuthService struct {
	users     ports.UserRepository
	registry  ports.TokenRegistry
	tokenizer ports.Tokenizer
	hasher    ports.PasswordHasher
	events    ports.EventPublisher
	log       logging.Logger

	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewAuthService creates a new authentication service. The event publisher
// may be nil, in which case no events are published.
func NewAuthService(
	users ports.UserRepository,
	registry ports.TokenRegistry,
	tokenizer ports.Tokenizer,
	hasher ports.PasswordHasher,
	events ports.EventPublisher,
	log logging.Logger,
	cfg Config,
) *AuthService {
	if cfg.AccessTokenTTL <= 0 {
		cfg.AccessTokenTTL = DefaultAccessTTL
	}

	return &AuthService{
		users:      users,
		registry:   registry,
		tokenizer:  tokenizer,
		hasher:     hasher,
		events:     events,
		log:        log,
		accessTTL:  cfg.AccessTokenTTL,
		refreshTTL: cfg.RefreshTokenTTL,
	}
}

// Register creates a new identity. A duplicate username fails with
// core.ErrUserExists and performs no write.
func (s *AuthService) Register(ctx context.Context, username, password string) (*core.User, error) {
	if username == "" || password == "" {
		return nil, core.ErrMissingCredentials
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, s.storeFailure(ctx, "hash password", err)
	}

	user := &core.User{Username: username, PasswordHash: hash}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, core.ErrUserExists) {
			return nil, core.ErrUserExists
		}
		return nil, s.storeFailure(ctx, "create user", err)
	}

	s.log.Info(ctx, "user registered", "username", username)
	return user, nil
}

// ListUsers returns all registered identities
func (s *AuthService) ListUsers(ctx context.Context) ([]*core.User, error) {
	result, err := s.users.List(ctx)
	if err != nil {
		return nil, s.storeFailure(ctx, "list users", err)
	}
	return result, nil
}

// Login verifies the credentials and, on success, mints an access token and
// a refresh token, registering the latter.
func (s *AuthService) Login(ctx context.Context, username, password string) (*TokenPair, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, core.ErrUserNotFound) {
			return nil, core.ErrUserNotFound
		}
		return nil, s.storeFailure(ctx, "find user", err)
	}

	match, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return nil, s.storeFailure(ctx, "verify password", err)
	}
	if !match {
		return nil, core.ErrInvalidCredentials
	}

	now := time.Now()

	accessToken, err := s.tokenizer.SessionToAccessToken(&core.Session{
		ID:        uuid.New().String(),
		Username:  user.Username,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.accessTTL),
	})
	if err != nil {
		return nil, s.storeFailure(ctx, "sign access token", err)
	}

	refreshSession := &core.Session{
		ID:       uuid.New().String(),
		Username: user.Username,
		IssuedAt: now,
	}
	if s.refreshTTL > 0 {
		refreshSession.ExpiresAt = now.Add(s.refreshTTL)
	}

	refreshToken, err := s.tokenizer.SessionToRefreshToken(refreshSession)
	if err != nil {
		return nil, s.storeFailure(ctx, "sign refresh token", err)
	}

	if err := s.registry.Register(ctx, refreshToken, s.refreshTTL); err != nil {
		return nil, s.storeFailure(ctx, "register refresh token", err)
	}

	s.publish(ctx, s.eventsLogin, user.Username, refreshSession.ID)
	s.log.Info(ctx, "user logged in", "username", username)

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Refresh mints a new access token for the identity embedded in the refresh
// token. Registry membership is checked before the signature: an
// unregistered token is rejected even if it verifies. The refresh token is
// not rotated.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", core.ErrMissingToken
	}

	registered, err := s.registry.IsRegistered(ctx, refreshToken)
	if err != nil {
		return "", s.storeFailure(ctx, "check refresh token", err)
	}
	if !registered {
		return "", core.ErrUnknownToken
	}

	session, err := s.tokenizer.RefreshTokenToSession(refreshToken)
	if err != nil {
		return "", err
	}

	now := time.Now()
	accessToken, err := s.tokenizer.SessionToAccessToken(&core.Session{
		ID:        uuid.New().String(),
		Username:  session.Username,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.accessTTL),
	})
	if err != nil {
		return "", s.storeFailure(ctx, "sign access token", err)
	}

	return accessToken, nil
}

// Logout revokes the refresh token. Revoking a token that was never
// registered is still a success.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if err := s.registry.Revoke(ctx, refreshToken); err != nil {
		return s.storeFailure(ctx, "revoke refresh token", err)
	}

	// Best-effort event metadata; the token may be garbage and that is fine
	if session, err := s.tokenizer.RefreshTokenToSession(refreshToken); err == nil {
		s.publish(ctx, s.eventsLogout, session.Username, session.ID)
		s.log.Info(ctx, "user logged out", "username", session.Username)
	}

	return nil
}

// ValidateAccessToken parses and verifies an access token
func (s *AuthService) ValidateAccessToken(ctx context.Context, accessToken string) (*core.Session, error) {
	return s.tokenizer.AccessTokenToSession(accessToken)
}

func (s *AuthService) eventsLogin(ctx context.Context, username, tokenID string) error {
	return s.events.PublishLogin(ctx, username, tokenID)
}

func (s *AuthService) eventsLogout(ctx context.Context, username, tokenID string) error {
	return s.events.PublishLogout(ctx, username, tokenID)
}

// publish sends an event if a publisher is configured. Event failures are
// logged but never fail the request; the store is the source of truth.
func (s *AuthService) publish(ctx context.Context, fn func(context.Context, string, string) error, username, tokenID string) {
	if s.events == nil {
		return
	}
	if err := fn(ctx, username, tokenID); err != nil {
		s.log.Warn(ctx, "failed to publish auth event", "username", username, "error", err)
	}
}

// storeFailure logs the underlying error server-side and returns the
// generic store failure so lower-level errors never escape to callers.
func (s *AuthService) storeFailure(ctx context.Context, op string, err error) error {
	s.log.Error(ctx, "store operation failed", "op", op, "error", err)
	return core.ErrStoreFailure
}
