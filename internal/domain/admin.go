package domain

import (
	"time"
)

// Admin represents an administrator account. Email is unique
// case-insensitively; the password hash is never serialized.
type Admin struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Claims represents the verified content of an admin session token.
type Claims struct {
	AdminID string `json:"admin_id"`
}
