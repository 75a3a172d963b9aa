package domain

import (
	"time"
)

// RegistrationStatus is the lifecycle state of a registration. Only
// CONFIRMED registrations count against a group's seat cap.
type RegistrationStatus string

const (
	RegistrationStatusPending   RegistrationStatus = "PENDING"
	RegistrationStatusConfirmed RegistrationStatus = "CONFIRMED"
	RegistrationStatusCancelled RegistrationStatus = "CANCELLED"
	RegistrationStatusWaitlist  RegistrationStatus = "WAITLIST"
)

// Valid reports whether s is a known registration status.
func (s RegistrationStatus) Valid() bool {
	switch s {
	case RegistrationStatusPending, RegistrationStatusConfirmed,
		RegistrationStatusCancelled, RegistrationStatusWaitlist:
		return true
	}
	return false
}

// String returns the status as a string.
func (s RegistrationStatus) String() string {
	return string(s)
}

// ConsumesSeat reports whether a registration in this status occupies a
// seat in its group.
func (s RegistrationStatus) ConsumesSeat() bool {
	return s == RegistrationStatusConfirmed
}

// Registration represents a visitor's registration for an event,
// optionally bound to a specific group.
type Registration struct {
	ID               string             `json:"id"`
	EventID          string             `json:"event_id"`
	GroupID          string             `json:"group_id,omitempty"`
	FirstName        string             `json:"first_name"`
	LastName         string             `json:"last_name"`
	Email            string             `json:"email"`
	Phone            string             `json:"phone,omitempty"`
	Status           RegistrationStatus `json:"status"`
	UnsubscribeToken string             `json:"-"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}
