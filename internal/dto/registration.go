package dto

import (
	"time"

	"github.com/hsnr-erstiwoche/erstiwoche-api/internal/domain"
)

// RegisterRequest represents a public registration submission.
type RegisterRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Phone     string `json:"phone"`
	GroupID   string `json:"group_id"`
}

// RegistrationResponse represents a registration in API responses. The
// unsubscribe token is only included for the registrant-facing flows.
type RegistrationResponse struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	GroupID   string    `json:"group_id,omitempty"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// RegistrationFromDomain converts a domain Registration.
func RegistrationFromDomain(r *domain.Registration) *RegistrationResponse {
	return &RegistrationResponse{
		ID:        r.ID,
		EventID:   r.EventID,
		GroupID:   r.GroupID,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Phone:     r.Phone,
		Status:    string(r.Status),
		CreatedAt: r.CreatedAt,
	}
}

// UpdateRegistrationStatusRequest represents the admin status change.
type UpdateRegistrationStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UnsubscribeResponse shows the registrant what they are cancelling.
type UnsubscribeResponse struct {
	Registration *RegistrationResponse `json:"registration"`
	Event        *EventResponse        `json:"event"`
}
