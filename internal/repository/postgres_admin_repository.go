package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/hsnr-erstiwoche/erstiwoche-api/internal/domain"
	"github.com/hsnr-erstiwoche/erstiwoche-api/pkg/telemetry"
)

// PostgresAdminRepository implements AdminRepository using PostgreSQL with pgxpool
type PostgresAdminRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresAdminRepository creates a new PostgresAdminRepository
func NewPostgresAdminRepository(pool *pgxpool.Pool) *PostgresAdminRepository {
	return &PostgresAdminRepository{pool: pool}
}

// Create inserts a new admin account. Emails are stored lowercased and
// protected by a unique index.
func (r *PostgresAdminRepository) Create(ctx context.Context, admin *domain.Admin) error {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.admin.create")
	defer span.End()

	span.SetAttributes(attribute.String("admin_id", admin.ID))

	query := `
		INSERT INTO admins (id, email, password_hash, name, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		admin.ID,
		strings.ToLower(admin.Email),
		admin.PasswordHash,
		admin.Name,
		admin.IsActive,
		admin.CreatedAt,
		admin.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			span.SetStatus(codes.Error, "already exists")
			return domain.ErrAdminAlreadyExists
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to create admin: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// GetByEmail retrieves an admin by email, case-insensitive.
func (r *PostgresAdminRepository) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.admin.get_by_email")
	defer span.End()

	query := `
		SELECT id, email, password_hash, name, is_active, created_at, updated_at
		FROM admins
		WHERE email = $1
	`

	admin := &domain.Admin{}
	err := r.pool.QueryRow(ctx, query, strings.ToLower(email)).Scan(
		&admin.ID,
		&admin.Email,
		&admin.PasswordHash,
		&admin.Name,
		&admin.IsActive,
		&admin.CreatedAt,
		&admin.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			span.SetStatus(codes.Error, "not found")
			return nil, domain.ErrAdminNotFound
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to get admin by email: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return admin, nil
}

// GetByID retrieves an admin by ID.
func (r *PostgresAdminRepository) GetByID(ctx context.Context, id string) (*domain.Admin, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.admin.get_by_id")
	defer span.End()

	span.SetAttributes(attribute.String("admin_id", id))

	query := `
		SELECT id, email, password_hash, name, is_active, created_at, updated_at
		FROM admins
		WHERE id = $1
	`

	admin := &domain.Admin{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&admin.ID,
		&admin.Email,
		&admin.PasswordHash,
		&admin.Name,
		&admin.IsActive,
		&admin.CreatedAt,
		&admin.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			span.SetStatus(codes.Error, "not found")
			return nil, domain.ErrAdminNotFound
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return admin, nil
}

// Ensure PostgresAdminRepository implements AdminRepository
var _ AdminRepository = (*PostgresAdminRepository)(nil)
