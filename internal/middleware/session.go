package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MetinovAdik/kopuro-frontend/internal/session"
	"github.com/MetinovAdik/kopuro-frontend/pkg/logger"
	"github.com/MetinovAdik/kopuro-frontend/pkg/response"
)

const (
	sessionIDKey = "session_id"
	gateKey      = "session_gate"
)

// Session resolves (or creates) the visitor's session and builds their gate.
// The gate resolves any stored bearer token into a profile before handlers
// run, so every downstream gating decision sees settled state.
func Session(cookies *CookieManager, sessions session.Repository, users session.UserSource, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := cookies.SessionID(c)
		if sid == "" {
			sid = uuid.New().String()
			if err := cookies.Issue(c, sid); err != nil {
				logger.Get().Error("failed to issue session cookie", zap.Error(err))
				response.InternalError(c, err)
				c.Abort()
				return
			}
		}

		store := session.NewTokenStore(sessions, sid, ttl)
		gate := session.NewGate(store, users)
		if err := gate.Start(c.Request.Context()); err != nil {
			// session store failure, not an upstream auth problem
			logger.Get().Error("failed to start session gate", zap.Error(err))
			response.InternalError(c, err)
			c.Abort()
			return
		}

		InjectSession(c, sid, gate)
		c.Next()
	}
}

// InjectSession primes the request context with a session id and gate.
func InjectSession(c *gin.Context, sid string, gate *session.Gate) {
	c.Set(sessionIDKey, sid)
	c.Set(gateKey, gate)
}

// GateFrom returns the request's gate, or nil outside the Session middleware.
func GateFrom(c *gin.Context) *session.Gate {
	if v, ok := c.Get(gateKey); ok {
		if gate, ok := v.(*session.Gate); ok {
			return gate
		}
	}
	return nil
}

// SessionIDFrom returns the request's session id.
func SessionIDFrom(c *gin.Context) string {
	return c.GetString(sessionIDKey)
}

// TokenFrom returns the upstream bearer token of the request's session, or
// "" when not logged in.
func TokenFrom(c *gin.Context) string {
	if gate := GateFrom(c); gate != nil {
		return gate.State().Token
	}
	return ""
}

// RequireArea gates a route group on the visitor's role and account flags.
// Visitors who do not belong are answered with a redirect instruction; a
// forced logout additionally tears the session down.
func RequireArea(area session.Area) gin.HandlerFunc {
	return func(c *gin.Context) {
		gate := GateFrom(c)
		if gate == nil {
			response.Unauthorized(c, "no session")
			c.Abort()
			return
		}

		decision := session.Decide(gate.State(), area)
		switch {
		case decision.Allow:
			c.Next()
		case decision.Pending:
			response.Error(c, http.StatusServiceUnavailable, "SESSION_PENDING", "session is still initializing")
			c.Abort()
		default:
			if decision.ForceLogout {
				if err := gate.Logout(c.Request.Context()); err != nil {
					logger.Get().Warn("forced logout failed", zap.Error(err))
				}
			}
			status := http.StatusUnauthorized
			if decision.ForceLogout {
				status = http.StatusForbidden
			}
			response.Redirect(c, status, "ACCESS_DENIED", decision.Redirect, decision.Message)
			c.Abort()
		}
	}
}
