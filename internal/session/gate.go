// Package session owns the authenticated state of a portal visitor: the
// upstream bearer token, the fetched employee profile, and the decisions
// about which area of the portal the visitor may enter.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/MetinovAdik/kopuro-frontend/internal/domain"
)

var (
	// ErrLoginFailed is returned when the token was accepted upstream but
	// the profile fetch did not produce a user.
	ErrLoginFailed = errors.New("login failed: could not fetch user profile")

	// ErrAccessDenied is returned when a worker account is not active or
	// not yet confirmed by an administrator.
	ErrAccessDenied = errors.New("account is not active or not confirmed by admin")
)

// UserSource fetches the profile behind a bearer token.
type UserSource interface {
	CurrentUser(ctx context.Context, token string) (*domain.User, error)
}

// TokenStore persists the upstream bearer token between requests.
type TokenStore interface {
	Token(ctx context.Context) (string, error)
	SaveToken(ctx context.Context, token string) error
	ClearToken(ctx context.Context) error
}

// authFailure is implemented by errors meaning the upstream rejected the
// bearer token (401/403).
type authFailure interface {
	AuthFailure() bool
}

func isAuthFailure(err error) bool {
	var af authFailure
	return errors.As(err, &af) && af.AuthFailure()
}

// Gate is the single source of truth for "who is logged in". Writes go
// through Start, Login, Logout and FetchUser only; everything else reads the
// snapshot returned by State.
type Gate struct {
	mu    sync.Mutex
	store TokenStore
	users UserSource

	token   string
	user    *domain.User
	loading bool
}

// NewGate returns a gate in the loading state; callers run Start to resolve
// any persisted token into a profile.
func NewGate(store TokenStore, users UserSource) *Gate {
	return &Gate{store: store, users: users, loading: true}
}

// Start resolves the persisted token, if any, into a user profile. With no
// persisted token it simply finishes loading with no user.
func (g *Gate) Start(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	token, err := g.store.Token(ctx)
	if err != nil {
		g.loading = false
		return err
	}
	if token == "" {
		g.token = ""
		g.user = nil
		g.loading = false
		return nil
	}

	_, err = g.fetchUserLocked(ctx, token)
	return err
}

// FetchUser resolves the active token (override, else in-memory, else
// persisted) and fetches the profile behind it. A missing token is not an
// error: state is cleared and (nil, nil) is returned. An upstream auth
// failure triggers a full logout; any other upstream failure clears only the
// profile and is swallowed into (nil, nil).
func (g *Gate) FetchUser(ctx context.Context, override string) (*domain.User, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.fetchUserLocked(ctx, override)
}

func (g *Gate) fetchUserLocked(ctx context.Context, override string) (*domain.User, error) {
	token := override
	if token == "" {
		token = g.token
	}
	if token == "" {
		stored, err := g.store.Token(ctx)
		if err != nil {
			g.loading = false
			return nil, err
		}
		token = stored
	}
	if token == "" {
		g.token = ""
		g.user = nil
		g.loading = false
		return nil, nil
	}

	g.token = token
	g.loading = true
	defer func() { g.loading = false }()

	user, err := g.users.CurrentUser(ctx, token)
	if err != nil {
		if isAuthFailure(err) {
			_ = g.logoutLocked(ctx)
			return nil, nil
		}
		// network or unknown failure: keep the token, drop the profile
		g.user = nil
		return nil, nil
	}

	g.user = user
	return user, nil
}

// Login persists the token and fetches the profile behind it. Admins and
// confirmed active workers stay logged in; any other profile is treated as a
// failed login and the gate logs itself back out.
func (g *Gate) Login(ctx context.Context, token string) (*domain.User, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.store.SaveToken(ctx, token); err != nil {
		return nil, err
	}

	user, err := g.fetchUserLocked(ctx, token)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrLoginFailed
	}

	if user.Role == domain.RoleAdmin || user.CanUseWorkerArea() {
		return user, nil
	}

	_ = g.logoutLocked(ctx)
	return nil, ErrAccessDenied
}

// Logout clears the persisted token and the in-memory state.
func (g *Gate) Logout(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.logoutLocked(ctx)
}

func (g *Gate) logoutLocked(ctx context.Context) error {
	err := g.store.ClearToken(ctx)
	g.token = ""
	g.user = nil
	return err
}

// State returns a snapshot of the gate.
func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return State{Token: g.token, User: g.user, Loading: g.loading}
}
