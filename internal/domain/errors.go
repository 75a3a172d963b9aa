package domain

import "errors"

// Domain errors
var (
	// Event errors
	ErrEventNotFound = errors.New("event not found")
	ErrEventInactive = errors.New("event is not active")
	ErrGroupNotFound = errors.New("event group not found")

	// Registration errors
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrGroupFull            = errors.New("no seats available in group")
	ErrAlreadyCancelled     = errors.New("registration already cancelled")

	// Validation errors
	ErrInvalidEventID   = errors.New("invalid event id")
	ErrInvalidGroupID   = errors.New("invalid group id")
	ErrMissingFirstName = errors.New("first name is required")
	ErrMissingLastName  = errors.New("last name is required")
	ErrInvalidEmail     = errors.New("invalid email address")
	ErrInvalidTime      = errors.New("invalid time of day, expected HH:MM")
	ErrMissingTitle     = errors.New("title is required")
	ErrInvalidStatus    = errors.New("invalid registration status")
	ErrMessageTooShort  = errors.New("message must be at least 10 characters")
	ErrMissingField     = errors.New("required field is missing")

	// Admin errors
	ErrAdminNotFound      = errors.New("admin not found")
	ErrAdminAlreadyExists = errors.New("admin with this email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrWeakPassword       = errors.New("password does not meet requirements")

	// Rate limiting
	ErrRateLimited = errors.New("too many attempts")
)

// IsNotFoundError checks if the error is a not found error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrEventNotFound) ||
		errors.Is(err, ErrGroupNotFound) ||
		errors.Is(err, ErrRegistrationNotFound) ||
		errors.Is(err, ErrAdminNotFound)
}

// IsValidationError checks if the error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidEventID) ||
		errors.Is(err, ErrInvalidGroupID) ||
		errors.Is(err, ErrMissingFirstName) ||
		errors.Is(err, ErrMissingLastName) ||
		errors.Is(err, ErrInvalidEmail) ||
		errors.Is(err, ErrInvalidTime) ||
		errors.Is(err, ErrMissingTitle) ||
		errors.Is(err, ErrInvalidStatus) ||
		errors.Is(err, ErrMessageTooShort) ||
		errors.Is(err, ErrMissingField) ||
		errors.Is(err, ErrWeakPassword)
}

// IsConflictError checks if the error is a conflict error
func IsConflictError(err error) bool {
	return errors.Is(err, ErrGroupFull) ||
		errors.Is(err, ErrAlreadyCancelled) ||
		errors.Is(err, ErrAdminAlreadyExists)
}
