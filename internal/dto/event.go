package dto

import (
	"time"

	"github.com/hsnr-erstiwoche/erstiwoche-api/internal/domain"
)

// GroupInput describes one group of a new or updated event.
type GroupInput struct {
	Name     string `json:"name" binding:"required"`
	MaxSeats int    `json:"max_seats"`
}

// CreateEventRequest represents the admin request to create an event
// together with its groups.
type CreateEventRequest struct {
	Title       string       `json:"title" binding:"required"`
	Description string       `json:"description"`
	Date        string       `json:"date" binding:"required"` // YYYY-MM-DD
	StartTime   string       `json:"start_time" binding:"required"`
	EndTime     string       `json:"end_time" binding:"required"`
	Location    string       `json:"location"`
	MaxGroups   int          `json:"max_groups"`
	Groups      []GroupInput `json:"groups"`
}

// UpdateEventRequest represents the admin request to edit an event.
type UpdateEventRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Date        string `json:"date" binding:"required"`
	StartTime   string `json:"start_time" binding:"required"`
	EndTime     string `json:"end_time" binding:"required"`
	Location    string `json:"location"`
	MaxGroups   int    `json:"max_groups"`
	IsActive    *bool  `json:"is_active"`
}

// GroupResponse represents a group in API responses with derived seat
// availability.
type GroupResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	MaxSeats       int    `json:"max_seats"`
	ConfirmedCount int    `json:"confirmed_count"`
	AvailableSeats int    `json:"available_seats"`
}

// EventResponse represents an event in API responses.
type EventResponse struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Date        string          `json:"date"`
	StartTime   string          `json:"start_time"`
	EndTime     string          `json:"end_time"`
	Location    string          `json:"location,omitempty"`
	IsActive    bool            `json:"is_active"`
	MaxGroups   int             `json:"max_groups"`
	Status      string          `json:"status"`
	IsFull      bool            `json:"is_full"`
	Groups      []GroupResponse `json:"groups"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// EventFromDomain converts a domain Event to an EventResponse, deriving
// status and seat availability at the given instant.
func EventFromDomain(e *domain.Event, now time.Time) *EventResponse {
	groups := make([]GroupResponse, 0, len(e.Groups))
	for _, g := range e.Groups {
		groups = append(groups, GroupResponse{
			ID:             g.ID,
			Name:           g.Name,
			MaxSeats:       g.MaxSeats,
			ConfirmedCount: g.ConfirmedCount,
			AvailableSeats: g.AvailableSeats(),
		})
	}

	return &EventResponse{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Date:        e.Date.Format("2006-01-02"),
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		Location:    e.Location,
		IsActive:    e.IsActive,
		MaxGroups:   e.MaxGroups,
		Status:      string(e.StatusAt(now)),
		IsFull:      e.IsFull(),
		Groups:      groups,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// StatsResponse represents the admin dashboard counters.
type StatsResponse struct {
	TotalEvents            int `json:"total_events"`
	TotalRegistrations     int `json:"total_registrations"`
	UpcomingEvents         int `json:"upcoming_events"`
	PendingRegistrations   int `json:"pending_registrations"`
	ConfirmedRegistrations int `json:"confirmed_registrations"`
}
