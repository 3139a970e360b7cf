package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MetinovAdik/kopuro-frontend/internal/dto"
	"github.com/MetinovAdik/kopuro-frontend/internal/middleware"
	"github.com/MetinovAdik/kopuro-frontend/internal/service"
	"github.com/MetinovAdik/kopuro-frontend/internal/session"
	"github.com/MetinovAdik/kopuro-frontend/pkg/response"
)

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles employee login
// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	gate := middleware.GateFrom(c)
	result, err := h.authService.Login(c.Request.Context(), gate, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
		case errors.Is(err, session.ErrAccessDenied):
			response.Error(c, http.StatusForbidden, "ACCOUNT_NOT_CONFIRMED", session.MsgNotConfirmed)
		case errors.Is(err, session.ErrLoginFailed):
			response.Error(c, http.StatusUnauthorized, "LOGIN_FAILED", "Login failed, please try again")
		default:
			handleBackendError(c, gate, err)
		}
		return
	}

	response.Success(c, result)
}

// Register handles worker registration
// POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		handleBackendError(c, nil, err)
		return
	}

	response.Created(c, result)
}

// Me returns the profile behind the visitor's session
// GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	gate := middleware.GateFrom(c)
	result, err := h.authService.CurrentUser(c.Request.Context(), gate)
	if err != nil {
		if errors.Is(err, service.ErrNotAuthenticated) {
			response.Redirect(c, http.StatusUnauthorized, "NOT_AUTHENTICATED", session.RouteLogin, session.MsgLoginRequired)
			return
		}
		response.InternalError(c, err)
		return
	}

	response.Success(c, result)
}

// Logout tears the session down
// POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	gate := middleware.GateFrom(c)
	currentRoute := c.Query("from")

	redirect, message, err := h.authService.Logout(c.Request.Context(), gate, currentRoute)
	if err != nil {
		response.InternalError(c, err)
		return
	}

	if redirect == "" {
		response.Success(c, gin.H{"logged_out": true})
		return
	}
	response.Success(c, response.RedirectData{Redirect: redirect, Message: message})
}
