package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/MetinovAdik/kopuro-frontend/pkg/config"
)

// CookieManager signs and verifies the browser session cookie. The cookie
// carries only a signed session id; the upstream bearer token stays in the
// server-side session store.
type CookieManager struct {
	cfg *config.SessionConfig
}

// NewCookieManager creates a cookie manager from session configuration.
func NewCookieManager(cfg *config.SessionConfig) *CookieManager {
	return &CookieManager{cfg: cfg}
}

// SessionID extracts and verifies the session id from the request cookie.
// A missing, expired or tampered cookie yields "" without error; the caller
// starts a fresh session.
func (m *CookieManager) SessionID(c *gin.Context) string {
	raw, err := c.Cookie(m.cfg.CookieName)
	if err != nil || raw == "" {
		return ""
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(m.cfg.Secret), nil
	})
	if err != nil || !token.Valid {
		return ""
	}
	return claims.Subject
}

// Issue signs a fresh cookie for the session id.
func (m *CookieManager) Issue(c *gin.Context, sessionID string) error {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   sessionID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.cfg.TTL)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(m.cfg.Secret))
	if err != nil {
		return fmt.Errorf("failed to sign session cookie: %w", err)
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cfg.CookieName, signed, int(m.cfg.TTL.Seconds()), "/", "", m.cfg.SecureCookie, true)
	return nil
}

// Clear expires the session cookie.
func (m *CookieManager) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cfg.CookieName, "", -1, "/", "", m.cfg.SecureCookie, true)
}
