// Package upstream is the HTTP client for the complaint backend API. Every
// authenticated call receives its bearer token explicitly; the client keeps
// no mutable default headers.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/MetinovAdik/kopuro-frontend/pkg/config"
)

// Client talks to the complaint backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a backend client from configuration.
func NewClient(cfg *config.UpstreamConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// request describes one backend call. A nil body sends no payload; form
// takes precedence over body when set.
type request struct {
	method string
	path   string
	token  string
	query  url.Values
	body   interface{}
	form   url.Values
}

// do executes the request and decodes a 2xx JSON body into out (when out is
// non-nil). Non-2xx replies become *Error; transport failures are returned
// as-is so callers can tell them apart.
func (c *Client) do(ctx context.Context, req request, out interface{}) error {
	endpoint := c.baseURL + req.path
	if len(req.query) > 0 {
		endpoint += "?" + req.query.Encode()
	}

	var body io.Reader
	contentType := ""
	switch {
	case req.form != nil:
		body = strings.NewReader(req.form.Encode())
		contentType = "application/x-www-form-urlencoded"
	case req.body != nil:
		data, err := json.Marshal(req.body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	httpReq.Header.Set("Accept", "application/json")
	if req.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.token)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("failed to read upstream response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newError(resp.StatusCode, data)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode upstream response: %w", err)
	}
	return nil
}
