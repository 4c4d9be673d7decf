package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/quantor-dev/cerberus/adapters/hasher"
	"github.com/quantor-dev/cerberus/adapters/registry"
	"github.com/quantor-dev/cerberus/adapters/tokenizer"
	"github.com/quantor-dev/cerberus/adapters/users"
	"github.com/quantor-dev/cerberus/core"
	"github.com/quantor-dev/cerberus/internal/logging"
	"github.com/quantor-dev/cerberus/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type recordingPublisher struct {
	mu      sync.Mutex
	logins  []string
	logouts []string
}

func (p *recordingPublisher) PublishLogin(ctx context.Context, username, tokenID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.logins = append(p.logins, username)
	return nil
}

func (p *recordingPublisher) PublishLogout(ctx context.Context, username, tokenID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.logouts = append(p.logouts, username)
	return nil
}

func newTestService(t *testing.T, cfg Config) (*AuthService, *recordingPublisher) {
	t.Helper()

	pub := &recordingPublisher{}
	log := logging.NewRedactingLogger(
		logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)

	svc := NewAuthService(
		users.NewMemoryRepository(),
		registry.NewMemoryRegistry(),
		tokenizer.NewJWTTokenizer([]byte("access-secret"), []byte("refresh-secret")),
		hasher.NewBcryptHasherWithCost(bcrypt.MinCost),
		pub,
		log,
		cfg,
	)

	return svc, pub
}

func TestRegister_Validation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, Config{})

	_, err := svc.Register(ctx, "", "pw1")
	assert.ErrorIs(t, err, core.ErrMissingCredentials)

	_, err = svc.Register(ctx, "alice", "")
	assert.ErrorIs(t, err, core.ErrMissingCredentials)
}

func TestRegister_DuplicateDoesNotAlterHash(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, Config{})

	first, err := svc.Register(ctx, "alice", "pw1")
	require.NoError(t, err)
	assert.NotEqual(t, "pw1", first.PasswordHash)

	_, err = svc.Register(ctx, "alice", "pw2")
	assert.ErrorIs(t, err, core.ErrUserExists)

	list, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, first.PasswordHash, list[0].PasswordHash)
}

func TestLogin_Failures(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, Config{})

	_, err := svc.Login(ctx, "alice", "pw1")
	assert.ErrorIs(t, err, core.ErrUserNotFound)

	_, err = svc.Register(ctx, "alice", "pw1")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, core.ErrInvalidCredentials)
}

// Full lifecycle: register, login, refresh, logout, refresh again.
func TestTokenLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, pub := newTestService(t, Config{})

	_, err := svc.Register(ctx, "alice", "pw1")
	require.NoError(t, err)

	pair, err := svc.Login(ctx, "alice", "pw1")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	session, err := svc.ValidateAccessToken(ctx, pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", session.Username)

	newAccess, err := svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, pair.AccessToken, newAccess)

	session, err = svc.ValidateAccessToken(ctx, newAccess)
	require.NoError(t, err)
	assert.Equal(t, "alice", session.Username)

	require.NoError(t, svc.Logout(ctx, pair.RefreshToken))

	// The signature still verifies, but the registry entry is gone
	_, err = svc.Refresh(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, core.ErrUnknownToken)

	assert.Equal(t, []string{"alice"}, pub.logins)
	assert.Equal(t, []string{"alice"}, pub.logouts)
}

func TestRefresh_MissingToken(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, Config{})

	_, err := svc.Refresh(ctx, "")
	assert.ErrorIs(t, err, core.ErrMissingToken)
}

func TestRefresh_UnregisteredTokenIsUntrusted(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, Config{})

	_, err := svc.Register(ctx, "alice", "pw1")
	require.NoError(t, err)
	pair, err := svc.Login(ctx, "alice", "pw1")
	require.NoError(t, err)

	// Once revoked, the token still verifies cryptographically but is no
	// longer trusted: membership is checked before the signature.
	require.NoError(t, svc.Logout(ctx, pair.RefreshToken))

	_, err = svc.Refresh(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, core.ErrUnknownToken)
}

func TestRefresh_RegisteredGarbageFailsVerification(t *testing.T) {
	ctx := context.Background()

	reg := registry.NewMemoryRegistry()
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	svc := NewAuthService(
		users.NewMemoryRepository(),
		reg,
		tokenizer.NewJWTTokenizer([]byte("a"), []byte("r")),
		hasher.NewBcryptHasherWithCost(bcrypt.MinCost),
		nil,
		log,
		Config{},
	)

	require.NoError(t, reg.Register(ctx, "garbage", 0))

	_, err := svc.Refresh(ctx, "garbage")
	assert.ErrorIs(t, err, core.ErrMalformedToken)
}

func TestRefresh_DoesNotRotate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, Config{})

	_, err := svc.Register(ctx, "alice", "pw1")
	require.NoError(t, err)
	pair, err := svc.Login(ctx, "alice", "pw1")
	require.NoError(t, err)

	// The same refresh token keeps working across refreshes
	for i := 0; i < 3; i++ {
		_, err := svc.Refresh(ctx, pair.RefreshToken)
		require.NoError(t, err)
	}
}

func TestLogout_NeverRegisteredIsSuccess(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, Config{})

	assert.NoError(t, svc.Logout(ctx, "never-seen-before"))
}

func TestConcurrentRegistrationSameUsername(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, Config{})

	const attempts = 10
	var created, conflicts atomic.Int64

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Register(ctx, "alice", "pw1")
			switch {
			case err == nil:
				created.Add(1)
			case errors.Is(err, core.ErrUserExists):
				conflicts.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), created.Load())
	assert.Equal(t, int64(attempts-1), conflicts.Load())
}

type failingUserRepo struct{}

func (failingUserRepo) Create(ctx context.Context, user *core.User) error {
	return errors.New("connection refused")
}

func (failingUserRepo) FindByUsername(ctx context.Context, username string) (*core.User, error) {
	return nil, errors.New("connection refused")
}

func (failingUserRepo) List(ctx context.Context) ([]*core.User, error) {
	return nil, errors.New("connection refused")
}

var _ ports.UserRepository = failingUserRepo{}

func TestStoreFailuresAreSurfacedGenerically(t *testing.T) {
	ctx := context.Background()
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	svc := NewAuthService(
		failingUserRepo{},
		registry.NewMemoryRegistry(),
		tokenizer.NewJWTTokenizer([]byte("a"), []byte("r")),
		hasher.NewBcryptHasherWithCost(bcrypt.MinCost),
		nil,
		log,
		Config{},
	)

	_, err := svc.Register(ctx, "alice", "pw1")
	assert.ErrorIs(t, err, core.ErrStoreFailure)

	_, err = svc.Login(ctx, "alice", "pw1")
	assert.ErrorIs(t, err, core.ErrStoreFailure)

	_, err = svc.ListUsers(ctx)
	assert.ErrorIs(t, err, core.ErrStoreFailure)
}

func TestRefreshTTL_BoundsRefreshToken(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, Config{RefreshTokenTTL: time.Hour})

	_, err := svc.Register(ctx, "alice", "pw1")
	require.NoError(t, err)
	pair, err := svc.Login(ctx, "alice", "pw1")
	require.NoError(t, err)

	// Still valid well before the TTL elapses
	_, err = svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
}
