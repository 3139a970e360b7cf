package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MetinovAdik/kopuro-frontend/internal/domain"
	"github.com/MetinovAdik/kopuro-frontend/internal/dto"
	"github.com/MetinovAdik/kopuro-frontend/internal/service"
	sess "github.com/MetinovAdik/kopuro-frontend/internal/session"
	"github.com/MetinovAdik/kopuro-frontend/pkg/response"
)

// mockAuthService scripts the auth service for handler tests
type mockAuthService struct {
	loginResult *dto.LoginResponse
	loginErr    error
	meResult    *dto.UserResponse
	meErr       error
	redirect    string
	message     string
}

func (m *mockAuthService) Login(ctx context.Context, gate *sess.Gate, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	return m.loginResult, m.loginErr
}

func (m *mockAuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	return m.meResult, m.meErr
}

func (m *mockAuthService) CurrentUser(ctx context.Context, gate *sess.Gate) (*dto.UserResponse, error) {
	return m.meResult, m.meErr
}

func (m *mockAuthService) Logout(ctx context.Context, gate *sess.Gate, currentRoute string) (string, string, error) {
	return m.redirect, m.message, nil
}

func setupAuthRouter(svc *mockAuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewAuthHandler(svc)
	router.POST("/auth/login", h.Login)
	router.POST("/auth/register", h.Register)
	router.POST("/auth/logout", h.Logout)
	router.GET("/auth/me", h.Me)
	return router
}

func TestAuthHandler_Login(t *testing.T) {
	svc := &mockAuthService{
		loginResult: &dto.LoginResponse{
			User:     &dto.UserResponse{ID: 1, Email: "admin@kopuro.kg", Role: domain.RoleAdmin},
			Redirect: sess.RouteAdmin,
		},
	}
	router := setupAuthRouter(svc)

	body, _ := json.Marshal(gin.H{"email": "admin@kopuro.kg", "password": "secret"})
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
}

func TestAuthHandler_LoginInvalidCredentials(t *testing.T) {
	svc := &mockAuthService{loginErr: service.ErrInvalidCredentials}
	router := setupAuthRouter(svc)

	body, _ := json.Marshal(gin.H{"email": "admin@kopuro.kg", "password": "wrong"})
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_LoginDeniedAccount(t *testing.T) {
	svc := &mockAuthService{loginErr: sess.ErrAccessDenied}
	router := setupAuthRouter(svc)

	body, _ := json.Marshal(gin.H{"email": "new@kopuro.kg", "password": "secret"})
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)

	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, sess.MsgNotConfirmed, resp.Error.Message)
}

func TestAuthHandler_LoginMissingBody(t *testing.T) {
	router := setupAuthRouter(&mockAuthService{})

	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_MeUnauthenticated(t *testing.T) {
	svc := &mockAuthService{meErr: service.ErrNotAuthenticated}
	router := setupAuthRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, sess.RouteLogin, data["redirect"])
}

func TestAuthHandler_LogoutWithRedirect(t *testing.T) {
	svc := &mockAuthService{redirect: sess.RouteLogin, message: sess.MsgLoggedOut}
	router := setupAuthRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout?from=/dashboard", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, sess.RouteLogin, data["redirect"])
	assert.Equal(t, sess.MsgLoggedOut, data["message"])
}
