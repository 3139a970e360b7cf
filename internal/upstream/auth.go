package upstream

import (
	"context"
	"net/http"
	"net/url"

	"github.com/MetinovAdik/kopuro-frontend/internal/domain"
)

// TokenResponse is the reply from POST /auth/token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Token exchanges credentials for a bearer token. The backend expects
// form-encoded username/password.
func (c *Client) Token(ctx context.Context, email, password string) (*TokenResponse, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	var out TokenResponse
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/auth/token",
		form:   form,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// RegisterRequest is the payload for POST /auth/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	FullName string `json:"full_name,omitempty"`
	Password string `json:"password"`
}

// Register creates a worker account awaiting admin confirmation.
func (c *Client) Register(ctx context.Context, req *RegisterRequest) (*domain.User, error) {
	var out domain.User
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/auth/register",
		body:   req,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// CurrentUser fetches the profile behind a bearer token.
func (c *Client) CurrentUser(ctx context.Context, token string) (*domain.User, error) {
	var out domain.User
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/auth/users/me",
		token:  token,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
