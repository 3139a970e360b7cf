package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/MetinovAdik/kopuro-frontend/internal/domain"
)

func pagination(skip, limit int) url.Values {
	query := url.Values{}
	query.Set("skip", strconv.Itoa(skip))
	query.Set("limit", strconv.Itoa(limit))
	return query
}

// Users lists all user accounts (admin only).
func (c *Client) Users(ctx context.Context, token string, skip, limit int) ([]domain.User, error) {
	var out []domain.User
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/admin/users",
		token:  token,
		query:  pagination(skip, limit),
	}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UnconfirmedWorkers lists worker accounts awaiting confirmation (admin only).
func (c *Client) UnconfirmedWorkers(ctx context.Context, token string, skip, limit int) ([]domain.User, error) {
	var out []domain.User
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/admin/unconfirmed-workers",
		token:  token,
		query:  pagination(skip, limit),
	}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ConfirmWorker marks a worker account as confirmed and returns the updated
// profile (admin only).
func (c *Client) ConfirmWorker(ctx context.Context, token string, userID int64) (*domain.User, error) {
	var out domain.User
	err := c.do(ctx, request{
		method: http.MethodPatch,
		path:   fmt.Sprintf("/admin/confirm-worker/%d", userID),
		token:  token,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
