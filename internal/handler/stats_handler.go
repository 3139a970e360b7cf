package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/MetinovAdik/kopuro-frontend/internal/middleware"
	"github.com/MetinovAdik/kopuro-frontend/internal/service"
	"github.com/MetinovAdik/kopuro-frontend/pkg/response"
)

// StatsHandler handles dashboard statistics HTTP requests
type StatsHandler struct {
	statsService service.StatsService
}

// NewStatsHandler creates a new StatsHandler
func NewStatsHandler(statsService service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// Overview returns the aggregated statistics feeds
// GET /api/stats
func (h *StatsHandler) Overview(c *gin.Context) {
	result, err := h.statsService.Overview(c.Request.Context(), middleware.TokenFrom(c))
	if err != nil {
		handleBackendError(c, middleware.GateFrom(c), err)
		return
	}

	response.Success(c, result)
}
