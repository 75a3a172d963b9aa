package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/hsnr-erstiwoche/erstiwoche-api/internal/domain"
	"github.com/hsnr-erstiwoche/erstiwoche-api/pkg/telemetry"
)

// PostgresRegistrationRepository implements RegistrationRepository using PostgreSQL with pgxpool
type PostgresRegistrationRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRegistrationRepository creates a new PostgresRegistrationRepository
func NewPostgresRegistrationRepository(pool *pgxpool.Pool) *PostgresRegistrationRepository {
	return &PostgresRegistrationRepository{pool: pool}
}

const registrationColumns = `
	id, event_id, group_id, first_name, last_name, email, phone,
	status, unsubscribe_token, created_at, updated_at
`

const insertRegistrationQuery = `
	INSERT INTO registrations (
		id, event_id, group_id, first_name, last_name, email, phone,
		status, unsubscribe_token, created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
`

// Create inserts a registration without touching group capacity. Used
// for registrations that do not consume a seat.
func (r *PostgresRegistrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.registration.create")
	defer span.End()

	span.SetAttributes(
		attribute.String("registration_id", reg.ID),
		attribute.String("event_id", reg.EventID),
	)

	if err := r.insert(ctx, r.pool, reg); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// CreateWithCapacityCheck inserts a seat-consuming registration. The
// group row is locked for the duration of the transaction so the
// confirmed count cannot change between the check and the insert.
func (r *PostgresRegistrationRepository) CreateWithCapacityCheck(ctx context.Context, reg *domain.Registration) error {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.registration.create_with_capacity_check")
	defer span.End()

	span.SetAttributes(
		attribute.String("registration_id", reg.ID),
		attribute.String("event_id", reg.EventID),
		attribute.String("group_id", reg.GroupID),
	)

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := lockAndCheckCapacity(ctx, tx, reg.GroupID, ""); err != nil {
		if errors.Is(err, domain.ErrGroupFull) {
			span.SetStatus(codes.Error, "group full")
			return err
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	if err := r.insert(ctx, tx, reg); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to commit registration: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// execer is satisfied by both *pgxpool.Pool and pgx.Tx.
type execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

func (r *PostgresRegistrationRepository) insert(ctx context.Context, q execer, reg *domain.Registration) error {
	_, err := q.Exec(ctx, insertRegistrationQuery,
		reg.ID,
		reg.EventID,
		nullString(reg.GroupID),
		reg.FirstName,
		reg.LastName,
		reg.Email,
		nullString(reg.Phone),
		reg.Status.String(),
		reg.UnsubscribeToken,
		reg.CreatedAt,
		reg.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create registration: %w", err)
	}
	return nil
}

// GetByID retrieves a registration by its ID.
func (r *PostgresRegistrationRepository) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.registration.get_by_id")
	defer span.End()

	span.SetAttributes(attribute.String("registration_id", id))

	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE id = $1`

	reg, err := scanRegistrationRow(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			span.SetStatus(codes.Error, "not found")
			return nil, domain.ErrRegistrationNotFound
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to get registration: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return reg, nil
}

// GetByUnsubscribeToken retrieves a registration by its unsubscribe token.
func (r *PostgresRegistrationRepository) GetByUnsubscribeToken(ctx context.Context, token string) (*domain.Registration, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.registration.get_by_unsubscribe_token")
	defer span.End()

	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE unsubscribe_token = $1`

	reg, err := scanRegistrationRow(r.pool.QueryRow(ctx, query, token))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			span.SetStatus(codes.Error, "not found")
			return nil, domain.ErrRegistrationNotFound
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to get registration by token: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return reg, nil
}

// List retrieves registrations matching the filter, newest first.
func (r *PostgresRegistrationRepository) List(ctx context.Context, filter RegistrationFilter) ([]*domain.Registration, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.registration.list")
	defer span.End()

	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE 1=1`
	args := []interface{}{}
	argn := 0

	if filter.EventID != "" {
		argn++
		query += fmt.Sprintf(` AND event_id = $%d`, argn)
		args = append(args, filter.EventID)
	}
	if filter.Status != "" {
		argn++
		query += fmt.Sprintf(` AND status = $%d`, argn)
		args = append(args, filter.Status.String())
	}
	if filter.Search != "" {
		argn++
		query += fmt.Sprintf(` AND (first_name ILIKE $%d OR last_name ILIKE $%d OR email ILIKE $%d)`, argn, argn, argn)
		args = append(args, "%"+filter.Search+"%")
	}

	query += ` ORDER BY created_at DESC`

	if filter.Limit > 0 {
		argn++
		query += fmt.Sprintf(` LIMIT $%d`, argn)
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		argn++
		query += fmt.Sprintf(` OFFSET $%d`, argn)
		args = append(args, filter.Offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}
	defer rows.Close()

	var regs []*domain.Registration
	for rows.Next() {
		reg, err := scanRegistrationRow(rows)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, fmt.Errorf("failed to scan registration: %w", err)
		}
		regs = append(regs, reg)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("error iterating registrations: %w", err)
	}

	span.SetAttributes(attribute.Int("count", len(regs)))
	span.SetStatus(codes.Ok, "")
	return regs, nil
}

// UpdateStatus changes a registration's status. A transition into
// CONFIRMED re-checks the group's seat cap under a row lock.
func (r *PostgresRegistrationRepository) UpdateStatus(ctx context.Context, id string, status domain.RegistrationStatus) error {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.registration.update_status")
	defer span.End()

	span.SetAttributes(
		attribute.String("registration_id", id),
		attribute.String("status", status.String()),
	)

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var groupID *string
	var current string
	err = tx.QueryRow(ctx,
		`SELECT group_id, status FROM registrations WHERE id = $1 FOR UPDATE`, id,
	).Scan(&groupID, &current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			span.SetStatus(codes.Error, "not found")
			return domain.ErrRegistrationNotFound
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to lock registration: %w", err)
	}

	if status.ConsumesSeat() && current != domain.RegistrationStatusConfirmed.String() && groupID != nil {
		if err := lockAndCheckCapacity(ctx, tx, *groupID, id); err != nil {
			if errors.Is(err, domain.ErrGroupFull) {
				span.SetStatus(codes.Error, "group full")
				return err
			}
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return err
		}
	}

	_, err = tx.Exec(ctx,
		`UPDATE registrations SET status = $2, updated_at = $3 WHERE id = $1`,
		id, status.String(), time.Now(),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to update registration status: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to commit status update: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// Cancel sets a registration to CANCELLED. Returns
// domain.ErrAlreadyCancelled when it already is.
func (r *PostgresRegistrationRepository) Cancel(ctx context.Context, id string) error {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.registration.cancel")
	defer span.End()

	span.SetAttributes(attribute.String("registration_id", id))

	query := `
		UPDATE registrations SET
			status = $2,
			updated_at = $3
		WHERE id = $1 AND status != $2
	`

	result, err := r.pool.Exec(ctx, query, id, domain.RegistrationStatusCancelled.String(), time.Now())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to cancel registration: %w", err)
	}

	if result.RowsAffected() == 0 {
		var exists bool
		err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM registrations WHERE id = $1)`, id).Scan(&exists)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return fmt.Errorf("failed to check registration existence: %w", err)
		}
		if !exists {
			span.SetStatus(codes.Error, "not found")
			return domain.ErrRegistrationNotFound
		}
		span.SetStatus(codes.Error, "already cancelled")
		return domain.ErrAlreadyCancelled
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// ListConfirmedByEvent retrieves all CONFIRMED registrations for an event.
func (r *PostgresRegistrationRepository) ListConfirmedByEvent(ctx context.Context, eventID string) ([]*domain.Registration, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.registration.list_confirmed_by_event")
	defer span.End()

	span.SetAttributes(attribute.String("event_id", eventID))

	query := `SELECT ` + registrationColumns + `
		FROM registrations
		WHERE event_id = $1 AND status = 'CONFIRMED'
		ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, eventID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to list confirmed registrations: %w", err)
	}
	defer rows.Close()

	var regs []*domain.Registration
	for rows.Next() {
		reg, err := scanRegistrationRow(rows)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, fmt.Errorf("failed to scan registration: %w", err)
		}
		regs = append(regs, reg)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("error iterating registrations: %w", err)
	}

	span.SetAttributes(attribute.Int("count", len(regs)))
	span.SetStatus(codes.Ok, "")
	return regs, nil
}

// CountByStatus returns registration counts grouped by status.
func (r *PostgresRegistrationRepository) CountByStatus(ctx context.Context) (map[domain.RegistrationStatus]int, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.registration.count_by_status")
	defer span.End()

	rows, err := r.pool.Query(ctx, `SELECT status, COUNT(*) FROM registrations GROUP BY status`)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to count registrations: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.RegistrationStatus]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, fmt.Errorf("failed to scan registration count: %w", err)
		}
		counts[domain.RegistrationStatus(status)] = count
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("error iterating registration counts: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return counts, nil
}

// lockAndCheckCapacity locks the group row and verifies a seat is free.
// excludeID keeps the registration being re-confirmed out of its own
// count.
func lockAndCheckCapacity(ctx context.Context, tx pgx.Tx, groupID, excludeID string) error {
	var maxSeats int
	err := tx.QueryRow(ctx,
		`SELECT max_seats FROM event_groups WHERE id = $1 FOR UPDATE`, groupID,
	).Scan(&maxSeats)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrGroupNotFound
		}
		return fmt.Errorf("failed to lock event group: %w", err)
	}

	// excludeID may be empty, so the id is compared as text rather than
	// casting the parameter to uuid.
	var confirmed int
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM registrations WHERE group_id = $1 AND status = 'CONFIRMED' AND id::text <> $2`,
		groupID, excludeID,
	).Scan(&confirmed)
	if err != nil {
		return fmt.Errorf("failed to count confirmed registrations: %w", err)
	}

	if confirmed >= maxSeats {
		return domain.ErrGroupFull
	}
	return nil
}

// scanRegistrationRow scans one registration row.
func scanRegistrationRow(row pgx.Row) (*domain.Registration, error) {
	reg := &domain.Registration{}
	var groupID, phone *string
	var status string

	err := row.Scan(
		&reg.ID,
		&reg.EventID,
		&groupID,
		&reg.FirstName,
		&reg.LastName,
		&reg.Email,
		&phone,
		&status,
		&reg.UnsubscribeToken,
		&reg.CreatedAt,
		&reg.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	reg.Status = domain.RegistrationStatus(status)
	if groupID != nil {
		reg.GroupID = *groupID
	}
	if phone != nil {
		reg.Phone = *phone
	}

	return reg, nil
}

// Ensure PostgresRegistrationRepository implements RegistrationRepository
var _ RegistrationRepository = (*PostgresRegistrationRepository)(nil)
