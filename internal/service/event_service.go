package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/hsnr-erstiwoche/erstiwoche-api/internal/domain"
	"github.com/hsnr-erstiwoche/erstiwoche-api/internal/dto"
	"github.com/hsnr-erstiwoche/erstiwoche-api/internal/repository"
	"github.com/hsnr-erstiwoche/erstiwoche-api/pkg/telemetry"
)

const (
	defaultGroupName  = "Standard"
	defaultGroupSeats = 50
)

// EventService defines the interface for event operations
type EventService interface {
	// List retrieves events matching the filter
	List(ctx context.Context, filter repository.EventFilter) ([]*dto.EventResponse, error)
	// Get retrieves a single event by ID
	Get(ctx context.Context, id string) (*dto.EventResponse, error)
	// Create creates an event with its groups
	Create(ctx context.Context, req *dto.CreateEventRequest) (*dto.EventResponse, error)
	// Update edits an existing event
	Update(ctx context.Context, id string, req *dto.UpdateEventRequest) (*dto.EventResponse, error)
	// Deactivate hides an event from the public listing
	Deactivate(ctx context.Context, id string) error
}

// eventService implements EventService
type eventService struct {
	eventRepo repository.EventRepository
	now       func() time.Time
}

// NewEventService creates a new EventService
func NewEventService(eventRepo repository.EventRepository) EventService {
	return &eventService{
		eventRepo: eventRepo,
		now:       time.Now,
	}
}

// List retrieves events matching the filter.
func (s *eventService) List(ctx context.Context, filter repository.EventFilter) ([]*dto.EventResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.event.list")
	defer span.End()

	events, err := s.eventRepo.List(ctx, filter)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	now := s.now()
	responses := make([]*dto.EventResponse, 0, len(events))
	for _, e := range events {
		responses = append(responses, dto.EventFromDomain(e, now))
	}

	span.SetAttributes(attribute.Int("count", len(responses)))
	span.SetStatus(codes.Ok, "")
	return responses, nil
}

// Get retrieves a single event by ID.
func (s *eventService) Get(ctx context.Context, id string) (*dto.EventResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.event.get")
	defer span.End()

	span.SetAttributes(attribute.String("event_id", id))

	if id == "" {
		span.SetStatus(codes.Error, "invalid event id")
		return nil, domain.ErrInvalidEventID
	}

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetStatus(codes.Ok, "")
	return dto.EventFromDomain(event, s.now()), nil
}

// Create creates an event with its groups. Events without explicit
// groups get a single default group so seat accounting always has a
// place to attach.
func (s *eventService) Create(ctx context.Context, req *dto.CreateEventRequest) (*dto.EventResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.event.create")
	defer span.End()

	date, err := s.validateEventFields(req.Title, req.Date, req.StartTime, req.EndTime)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	now := s.now()
	event := &domain.Event{
		ID:          uuid.New().String(),
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Date:        date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Location:    strings.TrimSpace(req.Location),
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	groupInputs := req.Groups
	if len(groupInputs) == 0 {
		groupInputs = []dto.GroupInput{{Name: defaultGroupName, MaxSeats: defaultGroupSeats}}
	}
	for _, g := range groupInputs {
		seats := g.MaxSeats
		if seats <= 0 {
			seats = defaultGroupSeats
		}
		event.Groups = append(event.Groups, &domain.EventGroup{
			ID:       uuid.New().String(),
			EventID:  event.ID,
			Name:     strings.TrimSpace(g.Name),
			MaxSeats: seats,
		})
	}

	event.MaxGroups = req.MaxGroups
	if event.MaxGroups <= 0 {
		event.MaxGroups = len(event.Groups)
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.String("event_id", event.ID))
	span.SetStatus(codes.Ok, "")
	return dto.EventFromDomain(event, now), nil
}

// Update edits an existing event. Groups are not touched here so
// existing registrations keep their group assignment.
func (s *eventService) Update(ctx context.Context, id string, req *dto.UpdateEventRequest) (*dto.EventResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.event.update")
	defer span.End()

	span.SetAttributes(attribute.String("event_id", id))

	if id == "" {
		span.SetStatus(codes.Error, "invalid event id")
		return nil, domain.ErrInvalidEventID
	}

	date, err := s.validateEventFields(req.Title, req.Date, req.StartTime, req.EndTime)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	event.Title = strings.TrimSpace(req.Title)
	event.Description = strings.TrimSpace(req.Description)
	event.Date = date
	event.StartTime = req.StartTime
	event.EndTime = req.EndTime
	event.Location = strings.TrimSpace(req.Location)
	if req.MaxGroups > 0 {
		event.MaxGroups = req.MaxGroups
	}
	if req.IsActive != nil {
		event.IsActive = *req.IsActive
	}
	event.UpdatedAt = s.now()

	if err := s.eventRepo.Update(ctx, event); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetStatus(codes.Ok, "")
	return dto.EventFromDomain(event, s.now()), nil
}

// Deactivate hides an event from the public listing.
func (s *eventService) Deactivate(ctx context.Context, id string) error {
	ctx, span := telemetry.StartSpan(ctx, "service.event.deactivate")
	defer span.End()

	span.SetAttributes(attribute.String("event_id", id))

	if id == "" {
		span.SetStatus(codes.Error, "invalid event id")
		return domain.ErrInvalidEventID
	}

	if err := s.eventRepo.Deactivate(ctx, id); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// validateEventFields checks the shared create/update fields and parses
// the event date.
func (s *eventService) validateEventFields(title, dateStr, startTime, endTime string) (time.Time, error) {
	if strings.TrimSpace(title) == "" {
		return time.Time{}, domain.ErrMissingTitle
	}

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return time.Time{}, domain.ErrInvalidTime
	}

	if !domain.ValidTimeOfDay(startTime) || !domain.ValidTimeOfDay(endTime) {
		return time.Time{}, domain.ErrInvalidTime
	}
	if endTime <= startTime {
		return time.Time{}, domain.ErrInvalidTime
	}

	return date, nil
}
