package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// CheckFunc pings one dependency.
type CheckFunc func(ctx context.Context) error

// HealthHandler serves liveness and readiness probes
type HealthHandler struct {
	serviceName string
	version     string
	checks      map[string]CheckFunc
}

// NewHealthHandler creates a new HealthHandler. checks maps dependency
// names to ping functions run on readiness probes.
func NewHealthHandler(serviceName, version string, checks map[string]CheckFunc) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		checks:      checks,
	}
}

// Health reports process liveness
// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready reports whether dependencies answer
// GET /ready
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	results := make(map[string]string, len(h.checks))
	healthy := true
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			results[name] = err.Error()
			healthy = false
		} else {
			results[name] = "ok"
		}
	}

	status := http.StatusOK
	overall := "ready"
	if !healthy {
		status = http.StatusServiceUnavailable
		overall = "not ready"
	}

	c.JSON(status, gin.H{
		"status":  overall,
		"service": h.serviceName,
		"checks":  results,
	})
}
