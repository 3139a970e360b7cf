package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/MetinovAdik/kopuro-frontend/internal/dto"
	"github.com/MetinovAdik/kopuro-frontend/internal/service"
	"github.com/MetinovAdik/kopuro-frontend/pkg/response"
)

// IssueHandler handles citizen complaint HTTP requests
type IssueHandler struct {
	issueService service.IssueService
}

// NewIssueHandler creates a new IssueHandler
func NewIssueHandler(issueService service.IssueService) *IssueHandler {
	return &IssueHandler{issueService: issueService}
}

// Submit accepts a new complaint
// POST /api/complaints
func (h *IssueHandler) Submit(c *gin.Context) {
	var req dto.SubmitIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.issueService.Submit(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTextRequired):
			response.BadRequest(c, "Пожалуйста, опишите вашу проблему.")
		case errors.Is(err, service.ErrContactRequired):
			response.BadRequest(c, "Пожалуйста, укажите ваш контактный Email или Telegram ID для отслеживания статуса.")
		default:
			handleBackendError(c, nil, err)
		}
		return
	}

	response.Created(c, result)
}

// Track lists a contact's complaints with rendered timelines
// GET /api/complaints?contact=...
func (h *IssueHandler) Track(c *gin.Context) {
	var req dto.TrackRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Пожалуйста, укажите контактный Email или Telegram ID.")
		return
	}

	result, err := h.issueService.Track(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrContactRequired) {
			response.BadRequest(c, "Пожалуйста, укажите контактный Email или Telegram ID.")
			return
		}
		handleBackendError(c, nil, err)
		return
	}

	response.Success(c, result)
}

// Feedback records resolution feedback on one complaint
// POST /api/complaints/:id/feedback
func (h *IssueHandler) Feedback(c *gin.Context) {
	issueID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || issueID <= 0 {
		response.BadRequest(c, "invalid complaint id")
		return
	}

	var req dto.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Отзыв не может быть пустым.")
		return
	}

	if err := h.issueService.LeaveFeedback(c.Request.Context(), issueID, &req); err != nil {
		if errors.Is(err, service.ErrFeedbackRequired) {
			response.BadRequest(c, "Отзыв не может быть пустым.")
			return
		}
		handleBackendError(c, nil, err)
		return
	}

	response.Success(c, gin.H{"submitted": true})
}
