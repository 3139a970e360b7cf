package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/MetinovAdik/kopuro-frontend/internal/domain"
	"github.com/MetinovAdik/kopuro-frontend/internal/dto"
	"github.com/MetinovAdik/kopuro-frontend/internal/middleware"
	"github.com/MetinovAdik/kopuro-frontend/internal/service"
	"github.com/MetinovAdik/kopuro-frontend/pkg/response"
)

// PreferenceHandler handles per-session display preferences
type PreferenceHandler struct {
	preferences service.PreferenceService
}

// NewPreferenceHandler creates a new PreferenceHandler
func NewPreferenceHandler(preferences service.PreferenceService) *PreferenceHandler {
	return &PreferenceHandler{preferences: preferences}
}

// Theme returns the stored theme preference
// GET /api/preferences/theme
func (h *PreferenceHandler) Theme(c *gin.Context) {
	theme, err := h.preferences.Theme(c.Request.Context(), middleware.SessionIDFrom(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}

	response.Success(c, gin.H{"theme": theme})
}

// SetTheme stores the theme preference
// PUT /api/preferences/theme
func (h *PreferenceHandler) SetTheme(c *gin.Context) {
	var req dto.ThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	err := h.preferences.SetTheme(c.Request.Context(), middleware.SessionIDFrom(c), domain.Theme(req.Theme))
	if err != nil {
		if errors.Is(err, service.ErrInvalidTheme) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}

	response.Success(c, gin.H{"theme": req.Theme})
}
