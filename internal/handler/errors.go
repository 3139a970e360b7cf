package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MetinovAdik/kopuro-frontend/internal/session"
	"github.com/MetinovAdik/kopuro-frontend/internal/upstream"
	"github.com/MetinovAdik/kopuro-frontend/pkg/logger"
	"github.com/MetinovAdik/kopuro-frontend/pkg/response"
	"go.uber.org/zap"
)

// msgUpstreamUnavailable is the generic message for network and unknown
// backend failures; details stay in the server log.
const msgUpstreamUnavailable = "Сервис временно недоступен. Попробуйте позже."

// handleBackendError converts a backend call failure into a portal reply.
// An auth failure tears the session down and sends the visitor to login;
// validation failures keep their field list; everything else degrades to a
// generic message.
func handleBackendError(c *gin.Context, gate *session.Gate, err error) {
	ue := upstream.AsError(err)
	if ue == nil {
		logger.Get().Error("upstream request failed", zap.Error(err))
		response.UpstreamError(c, msgUpstreamUnavailable)
		return
	}

	switch {
	case ue.AuthFailure():
		if gate != nil {
			if lerr := gate.Logout(c.Request.Context()); lerr != nil {
				logger.Get().Warn("logout after auth failure failed", zap.Error(lerr))
			}
		}
		response.Redirect(c, http.StatusUnauthorized, "SESSION_EXPIRED", session.RouteLogin, session.MsgLoggedOut)
	case ue.Validation():
		fields := make([]response.FieldError, 0, len(ue.Fields))
		for _, f := range ue.Fields {
			fields = append(fields, response.FieldError{Field: f.Field, Message: f.Message})
		}
		response.ValidationError(c, ue.Message, fields)
	default:
		status := ue.StatusCode
		if status < 400 || status >= 600 {
			status = http.StatusBadGateway
		}
		message := ue.Message
		if message == "" {
			message = msgUpstreamUnavailable
		}
		response.Error(c, status, "UPSTREAM_ERROR", message)
	}
}
