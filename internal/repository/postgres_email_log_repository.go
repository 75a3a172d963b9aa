package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/hsnr-erstiwoche/erstiwoche-api/internal/domain"
	"github.com/hsnr-erstiwoche/erstiwoche-api/pkg/telemetry"
)

// PostgresEmailLogRepository implements EmailLogRepository using PostgreSQL with pgxpool
type PostgresEmailLogRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresEmailLogRepository creates a new PostgresEmailLogRepository
func NewPostgresEmailLogRepository(pool *pgxpool.Pool) *PostgresEmailLogRepository {
	return &PostgresEmailLogRepository{pool: pool}
}

// Create records a sent email.
func (r *PostgresEmailLogRepository) Create(ctx context.Context, log *domain.EmailLog) error {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.email_log.create")
	defer span.End()

	span.SetAttributes(
		attribute.String("registration_id", log.RegistrationID),
		attribute.String("email_type", string(log.Type)),
	)

	query := `
		INSERT INTO email_logs (id, registration_id, email_type, sent_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.pool.Exec(ctx, query, log.ID, log.RegistrationID, string(log.Type), log.SentAt)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to create email log: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// Exists reports whether an email of the given type was already sent
// for the registration.
func (r *PostgresEmailLogRepository) Exists(ctx context.Context, registrationID string, emailType domain.EmailType) (bool, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.email_log.exists")
	defer span.End()

	span.SetAttributes(
		attribute.String("registration_id", registrationID),
		attribute.String("email_type", string(emailType)),
	)

	query := `
		SELECT EXISTS(
			SELECT 1 FROM email_logs
			WHERE registration_id = $1 AND email_type = $2
		)
	`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, registrationID, string(emailType)).Scan(&exists); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return false, fmt.Errorf("failed to check email log: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return exists, nil
}

// Ensure PostgresEmailLogRepository implements EmailLogRepository
var _ EmailLogRepository = (*PostgresEmailLogRepository)(nil)
