package domain

import "time"

// Theme is the portal color scheme preference stored per session.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Session is the server-side session record. The browser only ever holds the
// session id (inside a signed cookie); the upstream bearer token never leaves
// the server.
type Session struct {
	ID        string    `json:"id"`
	Token     string    `json:"token,omitempty"`
	Theme     Theme     `json:"theme,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session has passed its expiry.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
