package domain

import (
	"time"
)

// EmailType identifies which kind of email was sent for a registration.
type EmailType string

const (
	EmailTypeConfirmation      EmailType = "CONFIRMATION"
	EmailTypeReminderDayBefore EmailType = "REMINDER_DAY_BEFORE"
	EmailTypeReminder3Hours    EmailType = "REMINDER_3_HOURS"
	EmailTypeCancellation      EmailType = "CANCELLATION"
	EmailTypeAdminNotification EmailType = "ADMIN_NOTIFICATION"
)

// Valid reports whether t is a known email type.
func (t EmailType) Valid() bool {
	switch t {
	case EmailTypeConfirmation, EmailTypeReminderDayBefore,
		EmailTypeReminder3Hours, EmailTypeCancellation,
		EmailTypeAdminNotification:
		return true
	}
	return false
}

// EmailLog records a sent email. The reminder worker uses it to avoid
// sending the same reminder twice.
type EmailLog struct {
	ID             string    `json:"id"`
	RegistrationID string    `json:"registration_id"`
	Type           EmailType `json:"type"`
	SentAt         time.Time `json:"sent_at"`
}
