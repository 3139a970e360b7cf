package service

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/MetinovAdik/kopuro-frontend/internal/domain"
	"github.com/MetinovAdik/kopuro-frontend/internal/dto"
	"github.com/MetinovAdik/kopuro-frontend/internal/session"
	"github.com/MetinovAdik/kopuro-frontend/internal/upstream"
	"github.com/MetinovAdik/kopuro-frontend/pkg/telemetry"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotAuthenticated   = errors.New("not authenticated")
)

// AuthBackend is the slice of the backend client used by AuthService.
type AuthBackend interface {
	Token(ctx context.Context, email, password string) (*upstream.TokenResponse, error)
	Register(ctx context.Context, req *upstream.RegisterRequest) (*domain.User, error)
}

// AuthService drives login, registration and logout for one visitor's gate.
type AuthService interface {
	// Login exchanges credentials for a token and resolves the profile
	Login(ctx context.Context, gate *session.Gate, req *dto.LoginRequest) (*dto.LoginResponse, error)
	// Register creates a worker account awaiting admin confirmation
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	// CurrentUser resolves the profile behind the visitor's session
	CurrentUser(ctx context.Context, gate *session.Gate) (*dto.UserResponse, error)
	// Logout tears the session down and decides the post-logout redirect
	Logout(ctx context.Context, gate *session.Gate, currentRoute string) (redirect, message string, err error)
}

type authService struct {
	backend AuthBackend
}

// NewAuthService creates a new AuthService
func NewAuthService(backend AuthBackend) AuthService {
	return &authService{backend: backend}
}

func (s *authService) Login(ctx context.Context, gate *session.Gate, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.auth.login")
	defer span.End()

	span.SetAttributes(attribute.String("email", req.Email))

	tokenResp, err := s.backend.Token(ctx, req.Email, req.Password)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if ue := upstream.AsError(err); ue != nil && (ue.AuthFailure() || ue.StatusCode == 400) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	user, err := gate.Login(ctx, tokenResp.AccessToken)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	redirect := session.RouteDashboard
	if user.Role == domain.RoleAdmin {
		redirect = session.RouteAdmin
	}

	span.SetAttributes(attribute.String("role", string(user.Role)))
	span.SetStatus(codes.Ok, "")

	return &dto.LoginResponse{
		User:     dto.NewUserResponse(user),
		Redirect: redirect,
	}, nil
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.auth.register")
	defer span.End()

	user, err := s.backend.Register(ctx, &upstream.RegisterRequest{
		Email:    req.Email,
		FullName: req.FullName,
		Password: req.Password,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("registration failed: %w", err)
	}

	span.SetAttributes(attribute.Int64("user_id", user.ID))
	span.SetStatus(codes.Ok, "")
	return dto.NewUserResponse(user), nil
}

func (s *authService) CurrentUser(ctx context.Context, gate *session.Gate) (*dto.UserResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.auth.current_user")
	defer span.End()

	user, err := gate.FetchUser(ctx, "")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if user == nil {
		span.SetStatus(codes.Error, "not authenticated")
		return nil, ErrNotAuthenticated
	}

	span.SetStatus(codes.Ok, "")
	return dto.NewUserResponse(user), nil
}

// Logout clears the session. Unless the visitor is already on a public
// route, they are sent to the login page with a logged-out notice.
func (s *authService) Logout(ctx context.Context, gate *session.Gate, currentRoute string) (string, string, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.auth.logout")
	defer span.End()

	if err := gate.Logout(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", "", err
	}

	span.SetStatus(codes.Ok, "")
	if session.IsPublicRoute(currentRoute) {
		return "", "", nil
	}
	return session.RouteLogin, session.MsgLoggedOut, nil
}
