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

const minContactMessageLen = 10

// ContactService defines the interface for contact form operations
type ContactService interface {
	// Submit stores a contact form submission
	Submit(ctx context.Context, req *dto.ContactRequest) (*dto.ContactMessageResponse, error)
	// List retrieves contact messages for admin views
	List(ctx context.Context, limit, offset int) ([]*dto.ContactMessageResponse, error)
}

// contactService implements ContactService
type contactService struct {
	contactRepo repository.ContactRepository
	now         func() time.Time
}

// NewContactService creates a new ContactService
func NewContactService(contactRepo repository.ContactRepository) ContactService {
	return &contactService{
		contactRepo: contactRepo,
		now:         time.Now,
	}
}

// Submit stores a contact form submission. The message must be at least
// ten characters after trimming whitespace.
func (s *contactService) Submit(ctx context.Context, req *dto.ContactRequest) (*dto.ContactMessageResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.contact.submit")
	defer span.End()

	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	subject := strings.TrimSpace(req.Subject)
	message := strings.TrimSpace(req.Message)

	if name == "" || subject == "" {
		span.SetStatus(codes.Error, "missing field")
		return nil, domain.ErrMissingField
	}
	if !dto.ValidEmail(email) {
		span.SetStatus(codes.Error, "invalid email")
		return nil, domain.ErrInvalidEmail
	}
	if len(message) < minContactMessageLen {
		span.SetStatus(codes.Error, "message too short")
		return nil, domain.ErrMessageTooShort
	}

	msg := &domain.ContactMessage{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		Subject:   subject,
		Message:   message,
		CreatedAt: s.now(),
	}

	if err := s.contactRepo.Create(ctx, msg); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.String("contact_message_id", msg.ID))
	span.SetStatus(codes.Ok, "")
	return dto.ContactMessageFromDomain(msg), nil
}

// List retrieves contact messages for admin views.
func (s *contactService) List(ctx context.Context, limit, offset int) ([]*dto.ContactMessageResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.contact.list")
	defer span.End()

	msgs, err := s.contactRepo.List(ctx, limit, offset)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	responses := make([]*dto.ContactMessageResponse, 0, len(msgs))
	for _, m := range msgs {
		responses = append(responses, dto.ContactMessageFromDomain(m))
	}

	span.SetAttributes(attribute.Int("count", len(responses)))
	span.SetStatus(codes.Ok, "")
	return responses, nil
}
