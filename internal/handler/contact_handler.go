package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hsnr-erstiwoche/erstiwoche-api/internal/dto"
	"github.com/hsnr-erstiwoche/erstiwoche-api/internal/service"
	"github.com/hsnr-erstiwoche/erstiwoche-api/pkg/response"
)

// ContactHandler handles contact form HTTP requests
type ContactHandler struct {
	contactService service.ContactService
}

// NewContactHandler creates a new ContactHandler
func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// Create stores a contact form submission.
// POST /api/contact
func (h *ContactHandler) Create(c *gin.Context) {
	var req dto.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Name, email, subject and message are required")
		return
	}

	msg, err := h.contactService.Submit(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, msg)
}

// List returns contact messages for admin views.
// GET /api/admin/contact-messages
func (h *ContactHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	msgs, err := h.contactService.List(c.Request.Context(), limit, offset)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, msgs)
}
