package repository

import (
	"context"

	"github.com/hsnr-erstiwoche/erstiwoche-api/internal/domain"
)

// RegistrationFilter narrows registration listings for admin views.
type RegistrationFilter struct {
	EventID string
	Status  domain.RegistrationStatus
	// Search matches first name, last name and email, case-insensitive.
	Search string
	Limit  int
	Offset int
}

// RegistrationRepository defines registration persistence.
//
// CreateWithCapacityCheck and UpdateStatus guard the seat cap inside a
// transaction: the group row is locked, confirmed seats are recounted,
// and domain.ErrGroupFull is returned when no seat is left.
type RegistrationRepository interface {
	Create(ctx context.Context, reg *domain.Registration) error
	CreateWithCapacityCheck(ctx context.Context, reg *domain.Registration) error
	GetByID(ctx context.Context, id string) (*domain.Registration, error)
	GetByUnsubscribeToken(ctx context.Context, token string) (*domain.Registration, error)
	List(ctx context.Context, filter RegistrationFilter) ([]*domain.Registration, error)
	UpdateStatus(ctx context.Context, id string, status domain.RegistrationStatus) error
	Cancel(ctx context.Context, id string) error
	ListConfirmedByEvent(ctx context.Context, eventID string) ([]*domain.Registration, error)
	CountByStatus(ctx context.Context) (map[domain.RegistrationStatus]int, error)
}
