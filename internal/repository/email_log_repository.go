package repository

import (
	"context"

	"github.com/hsnr-erstiwoche/erstiwoche-api/internal/domain"
)

// EmailLogRepository records sent emails so reminders are not sent
// twice for the same registration.
type EmailLogRepository interface {
	Create(ctx context.Context, log *domain.EmailLog) error
	Exists(ctx context.Context, registrationID string, emailType domain.EmailType) (bool, error)
}
