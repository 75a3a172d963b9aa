package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/hsnr-erstiwoche/erstiwoche-api/internal/domain"
	"github.com/hsnr-erstiwoche/erstiwoche-api/pkg/telemetry"
)

// PostgresEventRepository implements EventRepository using PostgreSQL with pgxpool
type PostgresEventRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresEventRepository creates a new PostgresEventRepository
func NewPostgresEventRepository(pool *pgxpool.Pool) *PostgresEventRepository {
	return &PostgresEventRepository{pool: pool}
}

// Create inserts an event together with its groups in one transaction.
func (r *PostgresEventRepository) Create(ctx context.Context, event *domain.Event) error {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.event.create")
	defer span.End()

	span.SetAttributes(
		attribute.String("event_id", event.ID),
		attribute.Int("group_count", len(event.Groups)),
	)

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO events (
			id, title, description, date, start_time, end_time,
			location, is_active, max_groups, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err = tx.Exec(ctx, query,
		event.ID,
		event.Title,
		nullString(event.Description),
		event.Date,
		event.StartTime,
		event.EndTime,
		nullString(event.Location),
		event.IsActive,
		event.MaxGroups,
		event.CreatedAt,
		event.UpdatedAt,
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to create event: %w", err)
	}

	groupQuery := `
		INSERT INTO event_groups (id, event_id, name, max_seats)
		VALUES ($1, $2, $3, $4)
	`
	for _, g := range event.Groups {
		if _, err := tx.Exec(ctx, groupQuery, g.ID, event.ID, g.Name, g.MaxSeats); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return fmt.Errorf("failed to create event group: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to commit event creation: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// GetByID retrieves an event with its groups and confirmed counts.
func (r *PostgresEventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.event.get_by_id")
	defer span.End()

	span.SetAttributes(attribute.String("event_id", id))

	query := `
		SELECT
			id, title, description, date, start_time, end_time,
			location, is_active, max_groups, created_at, updated_at
		FROM events
		WHERE id = $1
	`

	event, err := scanEventRow(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			span.SetStatus(codes.Error, "not found")
			return nil, domain.ErrEventNotFound
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	if err := r.loadGroups(ctx, []*domain.Event{event}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetStatus(codes.Ok, "")
	return event, nil
}

// List retrieves events matching the filter, ordered by date and start
// time, each with its groups and confirmed counts.
func (r *PostgresEventRepository) List(ctx context.Context, filter EventFilter) ([]*domain.Event, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.event.list")
	defer span.End()

	query := `
		SELECT
			id, title, description, date, start_time, end_time,
			location, is_active, max_groups, created_at, updated_at
		FROM events
		WHERE 1=1
	`
	args := []interface{}{}
	argn := 0

	if !filter.IncludeInactive {
		query += ` AND is_active = true`
	}
	if filter.UpcomingOnly {
		argn++
		query += fmt.Sprintf(` AND date >= $%d`, argn)
		args = append(args, time.Now().Truncate(24*time.Hour))
	}
	if filter.Date != nil {
		argn++
		query += fmt.Sprintf(` AND date = $%d`, argn)
		args = append(args, *filter.Date)
	}
	if filter.Search != "" {
		argn++
		query += fmt.Sprintf(` AND (title ILIKE $%d OR description ILIKE $%d OR location ILIKE $%d)`, argn, argn, argn)
		args = append(args, "%"+filter.Search+"%")
	}

	query += ` ORDER BY date ASC, start_time ASC`

	if filter.Limit > 0 {
		argn++
		query += fmt.Sprintf(` LIMIT $%d`, argn)
		args = append(args, filter.Limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []*domain.Event
	for rows.Next() {
		event, err := scanEventRow(rows)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("error iterating events: %w", err)
	}

	if err := r.loadGroups(ctx, events); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("count", len(events)))
	span.SetStatus(codes.Ok, "")
	return events, nil
}

// Update updates an existing event.
func (r *PostgresEventRepository) Update(ctx context.Context, event *domain.Event) error {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.event.update")
	defer span.End()

	span.SetAttributes(attribute.String("event_id", event.ID))

	query := `
		UPDATE events SET
			title = $2,
			description = $3,
			date = $4,
			start_time = $5,
			end_time = $6,
			location = $7,
			is_active = $8,
			max_groups = $9,
			updated_at = $10
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		event.ID,
		event.Title,
		nullString(event.Description),
		event.Date,
		event.StartTime,
		event.EndTime,
		nullString(event.Location),
		event.IsActive,
		event.MaxGroups,
		time.Now(),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to update event: %w", err)
	}

	if result.RowsAffected() == 0 {
		span.SetStatus(codes.Error, "not found")
		return domain.ErrEventNotFound
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// Deactivate hides an event from the public listing without deleting
// its registrations.
func (r *PostgresEventRepository) Deactivate(ctx context.Context, id string) error {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.event.deactivate")
	defer span.End()

	span.SetAttributes(attribute.String("event_id", id))

	query := `
		UPDATE events SET
			is_active = false,
			updated_at = $2
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query, id, time.Now())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to deactivate event: %w", err)
	}

	if result.RowsAffected() == 0 {
		span.SetStatus(codes.Error, "not found")
		return domain.ErrEventNotFound
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// ListStartingBetween retrieves active events whose combined date and
// start time falls in [from, to). Used by the reminder worker.
func (r *PostgresEventRepository) ListStartingBetween(ctx context.Context, from, to time.Time) ([]*domain.Event, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.event.list_starting_between")
	defer span.End()

	query := `
		SELECT
			id, title, description, date, start_time, end_time,
			location, is_active, max_groups, created_at, updated_at
		FROM events
		WHERE is_active = true
			AND date + start_time::time >= $1
			AND date + start_time::time < $2
		ORDER BY date ASC, start_time ASC
	`

	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to list events by start window: %w", err)
	}
	defer rows.Close()

	var events []*domain.Event
	for rows.Next() {
		event, err := scanEventRow(rows)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("error iterating events: %w", err)
	}

	span.SetAttributes(attribute.Int("count", len(events)))
	span.SetStatus(codes.Ok, "")
	return events, nil
}

// Count returns the total number of events and how many of them are on
// today or a later date.
func (r *PostgresEventRepository) Count(ctx context.Context) (int, int, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.event.count")
	defer span.End()

	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE date >= CURRENT_DATE AND is_active = true)
		FROM events
	`

	var total, upcoming int
	if err := r.pool.QueryRow(ctx, query).Scan(&total, &upcoming); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return 0, 0, fmt.Errorf("failed to count events: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return total, upcoming, nil
}

// loadGroups attaches groups with confirmed registration counts to the
// given events in a single query.
func (r *PostgresEventRepository) loadGroups(ctx context.Context, events []*domain.Event) error {
	if len(events) == 0 {
		return nil
	}

	ids := make([]string, 0, len(events))
	byID := make(map[string]*domain.Event, len(events))
	for _, e := range events {
		ids = append(ids, e.ID)
		byID[e.ID] = e
	}

	query := `
		SELECT
			g.id, g.event_id, g.name, g.max_seats,
			COUNT(r.id) FILTER (WHERE r.status = 'CONFIRMED')
		FROM event_groups g
		LEFT JOIN registrations r ON r.group_id = g.id
		WHERE g.event_id = ANY($1)
		GROUP BY g.id, g.event_id, g.name, g.max_seats
		ORDER BY g.name ASC
	`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("failed to load event groups: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		g := &domain.EventGroup{}
		if err := rows.Scan(&g.ID, &g.EventID, &g.Name, &g.MaxSeats, &g.ConfirmedCount); err != nil {
			return fmt.Errorf("failed to scan event group: %w", err)
		}
		if e, ok := byID[g.EventID]; ok {
			e.Groups = append(e.Groups, g)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating event groups: %w", err)
	}

	return nil
}

// scanEventRow scans one event row; works for QueryRow and Query rows.
func scanEventRow(row pgx.Row) (*domain.Event, error) {
	event := &domain.Event{}
	var description, location *string

	err := row.Scan(
		&event.ID,
		&event.Title,
		&description,
		&event.Date,
		&event.StartTime,
		&event.EndTime,
		&location,
		&event.IsActive,
		&event.MaxGroups,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if description != nil {
		event.Description = *description
	}
	if location != nil {
		event.Location = *location
	}

	return event, nil
}

// nullString converts an empty string to a nil pointer.
func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Ensure PostgresEventRepository implements EventRepository
var _ EventRepository = (*PostgresEventRepository)(nil)
