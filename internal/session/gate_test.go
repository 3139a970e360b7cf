package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MetinovAdik/kopuro-frontend/internal/domain"
)

// memoryTokenStore is an in-memory TokenStore for tests
type memoryTokenStore struct {
	mu    sync.Mutex
	token string
}

func (s *memoryTokenStore) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *memoryTokenStore) SaveToken(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *memoryTokenStore) ClearToken(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}

// stubUserSource returns a canned profile or error per token
type stubUserSource struct {
	users map[string]*domain.User
	err   error
	calls int
}

func (s *stubUserSource) CurrentUser(ctx context.Context, token string) (*domain.User, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	user, ok := s.users[token]
	if !ok {
		return nil, &stubAuthError{}
	}
	return user, nil
}

// stubAuthError mimics an upstream 401
type stubAuthError struct{}

func (e *stubAuthError) Error() string     { return "unauthorized" }
func (e *stubAuthError) AuthFailure() bool { return true }

func activeWorker() *domain.User {
	return &domain.User{
		ID:                 1,
		Email:              "worker@kopuro.kg",
		IsActive:           true,
		IsConfirmedByAdmin: true,
		Role:               domain.RoleWorker,
	}
}

func TestGate_LoginAdmin(t *testing.T) {
	store := &memoryTokenStore{}
	users := &stubUserSource{users: map[string]*domain.User{
		"tok-admin": {ID: 2, Email: "admin@kopuro.kg", IsActive: true, Role: domain.RoleAdmin},
	}}
	gate := NewGate(store, users)

	user, err := gate.Login(context.Background(), "tok-admin")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, user.Role)

	state := gate.State()
	assert.True(t, state.Authenticated())
	assert.Equal(t, "tok-admin", state.Token)
	assert.False(t, state.Loading)
}

func TestGate_LoginConfirmedWorker(t *testing.T) {
	store := &memoryTokenStore{}
	users := &stubUserSource{users: map[string]*domain.User{"tok": activeWorker()}}
	gate := NewGate(store, users)

	user, err := gate.Login(context.Background(), "tok")
	require.NoError(t, err)
	assert.True(t, user.CanUseWorkerArea())
	assert.True(t, gate.State().Authenticated())
}

func TestGate_LoginInactiveWorkerEndsLoggedOut(t *testing.T) {
	inactive := activeWorker()
	inactive.IsActive = false

	store := &memoryTokenStore{}
	users := &stubUserSource{users: map[string]*domain.User{"tok": inactive}}
	gate := NewGate(store, users)

	_, err := gate.Login(context.Background(), "tok")
	require.ErrorIs(t, err, ErrAccessDenied)

	// the failed login must not leave a half-open session behind
	state := gate.State()
	assert.False(t, state.Authenticated())
	assert.Empty(t, state.Token)
	assert.Nil(t, state.User)

	stored, _ := store.Token(context.Background())
	assert.Empty(t, stored)
}

func TestGate_LoginUnconfirmedWorkerEndsLoggedOut(t *testing.T) {
	unconfirmed := activeWorker()
	unconfirmed.IsConfirmedByAdmin = false

	store := &memoryTokenStore{}
	users := &stubUserSource{users: map[string]*domain.User{"tok": unconfirmed}}
	gate := NewGate(store, users)

	_, err := gate.Login(context.Background(), "tok")
	require.ErrorIs(t, err, ErrAccessDenied)
	assert.False(t, gate.State().Authenticated())
}

func TestGate_FetchUserWithoutTokenReturnsAbsence(t *testing.T) {
	store := &memoryTokenStore{}
	users := &stubUserSource{}
	gate := NewGate(store, users)

	user, err := gate.FetchUser(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, user)
	assert.Zero(t, users.calls, "no token means no backend call")

	state := gate.State()
	assert.False(t, state.Loading)
	assert.False(t, state.Authenticated())
}

func TestGate_FetchUserAuthFailureLogsOut(t *testing.T) {
	store := &memoryTokenStore{token: "stale"}
	users := &stubUserSource{users: map[string]*domain.User{}}
	gate := NewGate(store, users)

	user, err := gate.FetchUser(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, user)

	stored, _ := store.Token(context.Background())
	assert.Empty(t, stored, "auth failure must clear the persisted token")
	assert.False(t, gate.State().Authenticated())
}

func TestGate_FetchUserNetworkFailureKeepsToken(t *testing.T) {
	store := &memoryTokenStore{token: "tok"}
	users := &stubUserSource{err: errors.New("connection refused")}
	gate := NewGate(store, users)

	user, err := gate.FetchUser(context.Background(), "")
	require.NoError(t, err, "network failures are swallowed into absence")
	assert.Nil(t, user)

	state := gate.State()
	assert.Equal(t, "tok", state.Token, "token survives transient failures")
	assert.Nil(t, state.User)
	assert.False(t, state.Authenticated(), "token alone is not authenticated")
	assert.False(t, state.Loading)
}

func TestGate_StartWithPersistedToken(t *testing.T) {
	store := &memoryTokenStore{token: "tok"}
	users := &stubUserSource{users: map[string]*domain.User{"tok": activeWorker()}}
	gate := NewGate(store, users)

	require.NoError(t, gate.Start(context.Background()))

	state := gate.State()
	assert.True(t, state.Authenticated())
	assert.False(t, state.Loading)
}

func TestGate_StartWithoutTokenFinishesLoading(t *testing.T) {
	gate := NewGate(&memoryTokenStore{}, &stubUserSource{})

	assert.True(t, gate.State().Loading, "gate starts in loading state")
	require.NoError(t, gate.Start(context.Background()))

	state := gate.State()
	assert.False(t, state.Loading)
	assert.False(t, state.Authenticated())
}

func TestGate_Logout(t *testing.T) {
	store := &memoryTokenStore{}
	users := &stubUserSource{users: map[string]*domain.User{"tok": activeWorker()}}
	gate := NewGate(store, users)

	_, err := gate.Login(context.Background(), "tok")
	require.NoError(t, err)

	require.NoError(t, gate.Logout(context.Background()))

	state := gate.State()
	assert.False(t, state.Authenticated())
	assert.Empty(t, state.Token)
	assert.Nil(t, state.User)
}

func TestIsAuthFailure(t *testing.T) {
	assert.True(t, isAuthFailure(&stubAuthError{}))
	assert.False(t, isAuthFailure(errors.New("boom")))
	assert.False(t, isAuthFailure(nil))

	// wrapped errors are unwrapped
	wrapped := fmt.Errorf("request failed: %w", &stubAuthError{})
	assert.True(t, isAuthFailure(wrapped))
}
