package repository

import (
	"context"
	"time"

	"github.com/hsnr-erstiwoche/erstiwoche-api/internal/domain"
)

// EventFilter narrows event listings.
type EventFilter struct {
	// UpcomingOnly keeps events whose date is today or later.
	UpcomingOnly bool
	// Date keeps events on exactly this calendar day.
	Date *time.Time
	// Search matches title, description and location, case-insensitive.
	Search string
	// Limit caps the number of returned events. Zero means no cap.
	Limit int
	// IncludeInactive also returns deactivated events (admin views).
	IncludeInactive bool
}

// EventRepository defines event persistence. Implementations load
// groups together with their confirmed registration counts.
type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	List(ctx context.Context, filter EventFilter) ([]*domain.Event, error)
	Update(ctx context.Context, event *domain.Event) error
	Deactivate(ctx context.Context, id string) error
	ListStartingBetween(ctx context.Context, from, to time.Time) ([]*domain.Event, error)
	Count(ctx context.Context) (total int, upcoming int, err error)
}
