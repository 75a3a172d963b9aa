package repository

import (
	"context"

	"github.com/hsnr-erstiwoche/erstiwoche-api/internal/domain"
)

// AdminRepository defines admin account persistence. Email lookups are
// case-insensitive.
type AdminRepository interface {
	Create(ctx context.Context, admin *domain.Admin) error
	GetByEmail(ctx context.Context, email string) (*domain.Admin, error)
	GetByID(ctx context.Context, id string) (*domain.Admin, error)
}
