package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MetinovAdik/kopuro-frontend/internal/domain"
	"github.com/MetinovAdik/kopuro-frontend/internal/session"
	"github.com/MetinovAdik/kopuro-frontend/pkg/response"
)

// memorySessionRepo is an in-memory session.Repository
type memorySessionRepo struct {
	records map[string]*domain.Session
}

func newMemorySessionRepo() *memorySessionRepo {
	return &memorySessionRepo{records: make(map[string]*domain.Session)}
}

func (r *memorySessionRepo) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	record, ok := r.records[id]
	if !ok {
		return nil, nil
	}
	clone := *record
	return &clone, nil
}

func (r *memorySessionRepo) Save(ctx context.Context, s *domain.Session) error {
	clone := *s
	r.records[s.ID] = &clone
	return nil
}

func (r *memorySessionRepo) Delete(ctx context.Context, id string) error {
	delete(r.records, id)
	return nil
}

// stubUsers maps bearer tokens to profiles
type stubUsers struct {
	users map[string]*domain.User
}

func (s *stubUsers) CurrentUser(ctx context.Context, token string) (*domain.User, error) {
	if user, ok := s.users[token]; ok {
		return user, nil
	}
	return nil, &stubAuthError{}
}

type stubAuthError struct{}

func (e *stubAuthError) Error() string     { return "could not validate credentials" }
func (e *stubAuthError) AuthFailure() bool { return true }

func seedSession(t *testing.T, repo *memorySessionRepo, sid, token string) {
	t.Helper()
	now := time.Now()
	require.NoError(t, repo.Save(context.Background(), &domain.Session{
		ID:        sid,
		Token:     token,
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}))
}

func setupSessionRouter(repo *memorySessionRepo, users session.UserSource) (*gin.Engine, *CookieManager) {
	gin.SetMode(gin.TestMode)
	cookies := NewCookieManager(testSessionConfig(time.Hour))
	router := gin.New()
	router.Use(Session(cookies, repo, users, time.Hour))
	router.GET("/probe", func(c *gin.Context) {
		response.Success(c, gin.H{
			"session_id":    SessionIDFrom(c),
			"authenticated": GateFrom(c).State().Authenticated(),
		})
	})
	return router, cookies
}

func TestSessionMiddleware_NewVisitorGetsCookie(t *testing.T) {
	router, _ := setupSessionRouter(newMemorySessionRepo(), &stubUsers{})

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "kopuro_session", cookies[0].Name)
	assert.NotEmpty(t, cookies[0].Value)
}

func TestSessionMiddleware_ResolvesStoredToken(t *testing.T) {
	repo := newMemorySessionRepo()
	users := &stubUsers{users: map[string]*domain.User{
		"tok-w": {ID: 2, Email: "worker@kopuro.kg", IsActive: true, IsConfirmedByAdmin: true, Role: domain.RoleWorker},
	}}
	seedSession(t, repo, "sid-abc", "tok-w")

	router, cookies := setupSessionRouter(repo, users)

	var token string
	router.GET("/token", func(c *gin.Context) {
		token = TokenFrom(c)
		c.Status(http.StatusOK)
	})

	cookie := issueCookie(t, cookies, "sid-abc")
	req := httptest.NewRequest(http.MethodGet, "/token", nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "tok-w", token)
}

func gateFor(t *testing.T, repo *memorySessionRepo, users session.UserSource, sid string) *session.Gate {
	t.Helper()
	store := session.NewTokenStore(repo, sid, time.Hour)
	gate := session.NewGate(store, users)
	require.NoError(t, gate.Start(context.Background()))
	return gate
}

func setupAreaRouter(gate *session.Gate, area session.Area) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		InjectSession(c, "sid-test", gate)
		c.Next()
	})
	router.GET("/gated", RequireArea(area), func(c *gin.Context) {
		response.Success(c, gin.H{"ok": true})
	})
	return router
}

func serveGated(router *gin.Engine) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/gated", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRequireArea_AdminAllowed(t *testing.T) {
	repo := newMemorySessionRepo()
	users := &stubUsers{users: map[string]*domain.User{
		"tok-a": {ID: 1, IsActive: true, Role: domain.RoleAdmin},
	}}
	seedSession(t, repo, "sid-test", "tok-a")
	gate := gateFor(t, repo, users, "sid-test")

	w := serveGated(setupAreaRouter(gate, session.AreaAdmin))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireArea_WorkerRedirectedFromAdmin(t *testing.T) {
	repo := newMemorySessionRepo()
	users := &stubUsers{users: map[string]*domain.User{
		"tok-w": {ID: 2, IsActive: true, IsConfirmedByAdmin: true, Role: domain.RoleWorker},
	}}
	seedSession(t, repo, "sid-test", "tok-w")
	gate := gateFor(t, repo, users, "sid-test")

	w := serveGated(setupAreaRouter(gate, session.AreaAdmin))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), session.RouteDashboard)

	// workers keep their session after a wrong-area redirect
	assert.True(t, gate.State().Authenticated())
}

func TestRequireArea_AnonymousSentToLogin(t *testing.T) {
	repo := newMemorySessionRepo()
	gate := gateFor(t, repo, &stubUsers{}, "sid-test")

	w := serveGated(setupAreaRouter(gate, session.AreaDashboard))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), session.RouteLogin)
}

func TestRequireArea_UnconfirmedWorkerForcedOut(t *testing.T) {
	repo := newMemorySessionRepo()
	users := &stubUsers{users: map[string]*domain.User{
		"tok-n": {ID: 3, IsActive: true, Role: domain.RoleWorker},
	}}
	seedSession(t, repo, "sid-test", "tok-n")
	gate := gateFor(t, repo, users, "sid-test")
	require.True(t, gate.State().Authenticated())

	w := serveGated(setupAreaRouter(gate, session.AreaDashboard))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), session.MsgNotConfirmed)

	// the forced logout must also clear the stored token
	assert.False(t, gate.State().Authenticated())
	record, err := repo.GetByID(context.Background(), "sid-test")
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Empty(t, record.Token)
}

func TestRequireArea_EmployeeAreaAdmitsBothRoles(t *testing.T) {
	repo := newMemorySessionRepo()
	users := &stubUsers{users: map[string]*domain.User{
		"tok-a": {ID: 1, IsActive: true, Role: domain.RoleAdmin},
		"tok-w": {ID: 2, IsActive: true, IsConfirmedByAdmin: true, Role: domain.RoleWorker},
	}}

	for _, token := range []string{"tok-a", "tok-w"} {
		seedSession(t, repo, "sid-test", token)
		gate := gateFor(t, repo, users, "sid-test")

		w := serveGated(setupAreaRouter(gate, session.AreaEmployee))
		assert.Equal(t, http.StatusOK, w.Code, "token %s", token)
	}
}

func TestRequireArea_NoGate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/gated", RequireArea(session.AreaDashboard), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := serveGated(router)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
