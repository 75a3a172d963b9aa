package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hsnr-erstiwoche/erstiwoche-api/internal/domain"
	"github.com/hsnr-erstiwoche/erstiwoche-api/internal/dto"
	"github.com/hsnr-erstiwoche/erstiwoche-api/internal/repository"
	"github.com/hsnr-erstiwoche/erstiwoche-api/internal/service"
	"github.com/hsnr-erstiwoche/erstiwoche-api/pkg/response"
)

// RegistrationHandler handles registration HTTP requests
type RegistrationHandler struct {
	regService service.RegistrationService
}

// NewRegistrationHandler creates a new RegistrationHandler
func NewRegistrationHandler(regService service.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{regService: regService}
}

// Register admits a visitor to an event.
// POST /api/events/:id/register
func (h *RegistrationHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "First name, last name and email are required")
		return
	}

	reg, err := h.regService.Register(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, reg)
}

// GetUnsubscribe shows the registration behind an unsubscribe token.
// GET /api/unsubscribe/:token
func (h *RegistrationHandler) GetUnsubscribe(c *gin.Context) {
	result, err := h.regService.GetByUnsubscribeToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, result)
}

// Unsubscribe cancels the registration behind an unsubscribe token.
// POST /api/unsubscribe/:token
func (h *RegistrationHandler) Unsubscribe(c *gin.Context) {
	if err := h.regService.CancelByUnsubscribeToken(c.Request.Context(), c.Param("token")); err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, gin.H{"message": "Registration cancelled"})
}

// List returns registrations for admin views. Supports event_id,
// status, search, limit and offset query parameters.
// GET /api/admin/registrations
func (h *RegistrationHandler) List(c *gin.Context) {
	filter := repository.RegistrationFilter{
		EventID: c.Query("event_id"),
		Search:  c.Query("search"),
	}

	if status := c.Query("status"); status != "" {
		s := domain.RegistrationStatus(status)
		if !s.Valid() {
			response.BadRequest(c, "Invalid status")
			return
		}
		filter.Status = s
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			response.BadRequest(c, "Invalid limit")
			return
		}
		filter.Limit = limit
	}
	if offsetStr := c.Query("offset"); offsetStr != "" {
		offset, err := strconv.Atoi(offsetStr)
		if err != nil || offset < 0 {
			response.BadRequest(c, "Invalid offset")
			return
		}
		filter.Offset = offset
	}

	regs, err := h.regService.List(c.Request.Context(), filter)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, regs)
}

// UpdateStatus changes a registration's status from the admin side.
// PATCH /api/admin/registrations/:id/status
func (h *RegistrationHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateRegistrationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Status is required")
		return
	}

	reg, err := h.regService.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, reg)
}
