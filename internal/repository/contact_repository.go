package repository

import (
	"context"

	"github.com/hsnr-erstiwoche/erstiwoche-api/internal/domain"
)

// ContactRepository defines contact message persistence.
type ContactRepository interface {
	Create(ctx context.Context, msg *domain.ContactMessage) error
	List(ctx context.Context, limit, offset int) ([]*domain.ContactMessage, error)
}
