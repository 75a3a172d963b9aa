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

// PostgresContactRepository implements ContactRepository using PostgreSQL with pgxpool
type PostgresContactRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresContactRepository creates a new PostgresContactRepository
func NewPostgresContactRepository(pool *pgxpool.Pool) *PostgresContactRepository {
	return &PostgresContactRepository{pool: pool}
}

// Create inserts a contact message.
func (r *PostgresContactRepository) Create(ctx context.Context, msg *domain.ContactMessage) error {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.contact.create")
	defer span.End()

	span.SetAttributes(attribute.String("contact_message_id", msg.ID))

	query := `
		INSERT INTO contact_messages (id, name, email, subject, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		msg.ID,
		msg.Name,
		msg.Email,
		msg.Subject,
		msg.Message,
		msg.CreatedAt,
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to create contact message: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// List retrieves contact messages, newest first.
func (r *PostgresContactRepository) List(ctx context.Context, limit, offset int) ([]*domain.ContactMessage, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.contact.list")
	defer span.End()

	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, name, email, subject, message, created_at
		FROM contact_messages
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to list contact messages: %w", err)
	}
	defer rows.Close()

	var msgs []*domain.ContactMessage
	for rows.Next() {
		msg := &domain.ContactMessage{}
		if err := rows.Scan(&msg.ID, &msg.Name, &msg.Email, &msg.Subject, &msg.Message, &msg.CreatedAt); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, fmt.Errorf("failed to scan contact message: %w", err)
		}
		msgs = append(msgs, msg)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("error iterating contact messages: %w", err)
	}

	span.SetAttributes(attribute.Int("count", len(msgs)))
	span.SetStatus(codes.Ok, "")
	return msgs, nil
}

// Ensure PostgresContactRepository implements ContactRepository
var _ ContactRepository = (*PostgresContactRepository)(nil)
