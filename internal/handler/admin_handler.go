package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/MetinovAdik/kopuro-frontend/internal/dto"
	"github.com/MetinovAdik/kopuro-frontend/internal/middleware"
	"github.com/MetinovAdik/kopuro-frontend/internal/service"
	"github.com/MetinovAdik/kopuro-frontend/pkg/response"
)

// AdminHandler handles user administration HTTP requests
type AdminHandler struct {
	adminService service.AdminService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// Overview returns both user lists in one reply
// GET /admin/overview
func (h *AdminHandler) Overview(c *gin.Context) {
	var req dto.ListUsersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.adminService.Overview(c.Request.Context(), middleware.TokenFrom(c), &req)
	if err != nil {
		handleBackendError(c, middleware.GateFrom(c), err)
		return
	}

	response.Success(c, result)
}

// Users lists all accounts
// GET /admin/users
func (h *AdminHandler) Users(c *gin.Context) {
	var req dto.ListUsersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.adminService.Users(c.Request.Context(), middleware.TokenFrom(c), &req)
	if err != nil {
		handleBackendError(c, middleware.GateFrom(c), err)
		return
	}

	response.Success(c, result)
}

// UnconfirmedWorkers lists workers awaiting confirmation
// GET /admin/unconfirmed-workers
func (h *AdminHandler) UnconfirmedWorkers(c *gin.Context) {
	var req dto.ListUsersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.adminService.UnconfirmedWorkers(c.Request.Context(), middleware.TokenFrom(c), &req)
	if err != nil {
		handleBackendError(c, middleware.GateFrom(c), err)
		return
	}

	response.Success(c, result)
}

// ConfirmWorker confirms one worker account
// PATCH /admin/confirm-worker/:id
func (h *AdminHandler) ConfirmWorker(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || userID <= 0 {
		response.BadRequest(c, "invalid user id")
		return
	}

	result, err := h.adminService.ConfirmWorker(c.Request.Context(), middleware.TokenFrom(c), userID)
	if err != nil {
		handleBackendError(c, middleware.GateFrom(c), err)
		return
	}

	response.Success(c, result)
}
