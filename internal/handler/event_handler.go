package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hsnr-erstiwoche/erstiwoche-api/internal/dto"
	"github.com/hsnr-erstiwoche/erstiwoche-api/internal/repository"
	"github.com/hsnr-erstiwoche/erstiwoche-api/internal/service"
	"github.com/hsnr-erstiwoche/erstiwoche-api/pkg/response"
)

// EventHandler handles event HTTP requests
type EventHandler struct {
	eventService service.EventService
	statsService service.StatsService
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(eventService service.EventService, statsService service.StatsService) *EventHandler {
	return &EventHandler{
		eventService: eventService,
		statsService: statsService,
	}
}

// List returns active events. Supports upcoming=true, date=YYYY-MM-DD,
// search and limit query parameters.
// GET /api/events
func (h *EventHandler) List(c *gin.Context) {
	filter := repository.EventFilter{
		UpcomingOnly: c.Query("upcoming") == "true",
		Search:       c.Query("search"),
	}

	if dateStr := c.Query("date"); dateStr != "" {
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			response.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
			return
		}
		filter.Date = &date
	}

	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			response.BadRequest(c, "Invalid limit")
			return
		}
		filter.Limit = limit
	}

	events, err := h.eventService.List(c.Request.Context(), filter)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, events)
}

// ListAdmin returns all events including inactive ones.
// GET /api/admin/events
func (h *EventHandler) ListAdmin(c *gin.Context) {
	events, err := h.eventService.List(c.Request.Context(), repository.EventFilter{IncludeInactive: true})
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, events)
}

// Get returns a single event with its groups and seat availability.
// GET /api/events/:id
func (h *EventHandler) Get(c *gin.Context) {
	event, err := h.eventService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, event)
}

// Create creates an event with its groups.
// POST /api/admin/events
func (h *EventHandler) Create(c *gin.Context) {
	var req dto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Title, date, start time and end time are required")
		return
	}

	event, err := h.eventService.Create(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, event)
}

// Update edits an event.
// PUT /api/admin/events/:id
func (h *EventHandler) Update(c *gin.Context) {
	var req dto.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Title, date, start time and end time are required")
		return
	}

	event, err := h.eventService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, event)
}

// Delete deactivates an event. Registrations are kept.
// DELETE /api/admin/events/:id
func (h *EventHandler) Delete(c *gin.Context) {
	if err := h.eventService.Deactivate(c.Request.Context(), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, gin.H{"message": "Event deactivated"})
}

// Stats returns the admin dashboard counters.
// GET /api/admin/stats
func (h *EventHandler) Stats(c *gin.Context) {
	stats, err := h.statsService.Get(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, stats)
}
