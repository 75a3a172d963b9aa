package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/crypto/bcrypt"

	"github.com/hsnr-erstiwoche/erstiwoche-api/internal/domain"
	"github.com/hsnr-erstiwoche/erstiwoche-api/internal/dto"
	"github.com/hsnr-erstiwoche/erstiwoche-api/internal/repository"
	"github.com/hsnr-erstiwoche/erstiwoche-api/pkg/telemetry"
)

// AuthServiceConfig holds configuration for AuthService
type AuthServiceConfig struct {
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int
}

// AuthService defines the interface for admin authentication operations
type AuthService interface {
	// Login authenticates an admin and returns a signed session token
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	// VerifyToken validates a session token and returns its claims
	VerifyToken(ctx context.Context, token string) (*domain.Claims, error)
	// GetAdminFromToken resolves a session token to the admin account
	GetAdminFromToken(ctx context.Context, token string) (*domain.Admin, error)
	// CreateAdmin creates a new admin account
	CreateAdmin(ctx context.Context, email, password, name string) (*domain.Admin, error)
}

// authService implements AuthService
type authService struct {
	adminRepo repository.AdminRepository
	config    *AuthServiceConfig
}

// NewAuthService creates a new AuthService
func NewAuthService(adminRepo repository.AdminRepository, config *AuthServiceConfig) AuthService {
	if config.BcryptCost == 0 {
		config.BcryptCost = bcrypt.DefaultCost
	}
	if config.TokenTTL == 0 {
		config.TokenTTL = 7 * 24 * time.Hour
	}
	return &authService{
		adminRepo: adminRepo,
		config:    config,
	}
}

// Login authenticates an admin. Lookup failures, inactive accounts and
// wrong passwords all collapse into ErrInvalidCredentials so the
// response never reveals whether the email exists.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.auth.login")
	defer span.End()

	email := strings.ToLower(strings.TrimSpace(req.Email))
	span.SetAttributes(attribute.String("email", email))

	admin, err := s.adminRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAdminNotFound) {
			span.SetStatus(codes.Error, "invalid credentials")
			return nil, domain.ErrInvalidCredentials
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if !admin.IsActive {
		span.SetStatus(codes.Error, "admin inactive")
		return nil, domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		span.SetStatus(codes.Error, "invalid credentials")
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(admin)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.String("admin_id", admin.ID))
	span.SetStatus(codes.Ok, "")

	return &dto.LoginResponse{
		Token: token,
		Admin: dto.AdminFromDomain(admin),
	}, nil
}

// VerifyToken validates a session token and returns its claims.
func (s *authService) VerifyToken(ctx context.Context, tokenString string) (*domain.Claims, error) {
	_, span := telemetry.StartSpan(ctx, "service.auth.verify_token")
	defer span.End()

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrInvalidToken
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		span.SetStatus(codes.Error, "invalid token")
		return nil, domain.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		span.SetStatus(codes.Error, "invalid claims")
		return nil, domain.ErrInvalidToken
	}

	adminID, ok := claims["admin_id"].(string)
	if !ok || adminID == "" {
		span.SetStatus(codes.Error, "invalid claims")
		return nil, domain.ErrInvalidToken
	}

	span.SetAttributes(attribute.String("admin_id", adminID))
	span.SetStatus(codes.Ok, "")
	return &domain.Claims{AdminID: adminID}, nil
}

// GetAdminFromToken resolves a session token to the admin account. An
// account that was deactivated after the token was issued is rejected.
func (s *authService) GetAdminFromToken(ctx context.Context, tokenString string) (*domain.Admin, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.auth.get_admin_from_token")
	defer span.End()

	claims, err := s.VerifyToken(ctx, tokenString)
	if err != nil {
		span.SetStatus(codes.Error, "invalid token")
		return nil, err
	}

	admin, err := s.adminRepo.GetByID(ctx, claims.AdminID)
	if err != nil {
		if errors.Is(err, domain.ErrAdminNotFound) {
			span.SetStatus(codes.Error, "admin not found")
			return nil, domain.ErrInvalidToken
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if !admin.IsActive {
		span.SetStatus(codes.Error, "admin inactive")
		return nil, domain.ErrInvalidToken
	}

	span.SetStatus(codes.Ok, "")
	return admin, nil
}

// CreateAdmin creates a new admin account after checking password
// strength.
func (s *authService) CreateAdmin(ctx context.Context, email, password, name string) (*domain.Admin, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.auth.create_admin")
	defer span.End()

	email = strings.ToLower(strings.TrimSpace(email))
	span.SetAttributes(attribute.String("email", email))

	if !dto.ValidEmail(email) {
		span.SetStatus(codes.Error, "invalid email")
		return nil, domain.ErrInvalidEmail
	}
	if ok, _ := dto.ValidatePassword(password); !ok {
		span.SetStatus(codes.Error, "weak password")
		return nil, domain.ErrWeakPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.config.BcryptCost)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	now := time.Now()
	admin := &domain.Admin{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hashed),
		Name:         name,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.adminRepo.Create(ctx, admin); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.String("admin_id", admin.ID))
	span.SetStatus(codes.Ok, "")
	return admin, nil
}

// generateToken signs a session token carrying the admin identity.
func (s *authService) generateToken(admin *domain.Admin) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      admin.ID,
		"admin_id": admin.ID,
		"email":    admin.Email,
		"exp":      time.Now().Add(s.config.TokenTTL).Unix(),
		"iat":      time.Now().Unix(),
	})
	return token.SignedString([]byte(s.config.JWTSecret))
}
