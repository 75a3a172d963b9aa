package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/hsnr-erstiwoche/erstiwoche-api/internal/domain"
	"github.com/hsnr-erstiwoche/erstiwoche-api/internal/dto"
	"github.com/hsnr-erstiwoche/erstiwoche-api/internal/mailer"
	"github.com/hsnr-erstiwoche/erstiwoche-api/internal/repository"
	"github.com/hsnr-erstiwoche/erstiwoche-api/pkg/logger"
	"github.com/hsnr-erstiwoche/erstiwoche-api/pkg/telemetry"
)

// RegistrationServiceConfig holds configuration for RegistrationService
type RegistrationServiceConfig struct {
	// BaseURL is the public site URL used to build unsubscribe links.
	BaseURL string
	// EmailTimeout bounds each background email delivery.
	EmailTimeout time.Duration
}

// RegistrationService defines the interface for registration operations
type RegistrationService interface {
	// Register admits a visitor to an event, checking group capacity
	Register(ctx context.Context, eventID string, req *dto.RegisterRequest) (*dto.RegistrationResponse, error)
	// GetByUnsubscribeToken shows the registration behind a token
	GetByUnsubscribeToken(ctx context.Context, token string) (*dto.UnsubscribeResponse, error)
	// CancelByUnsubscribeToken cancels the registration behind a token
	CancelByUnsubscribeToken(ctx context.Context, token string) error
	// List retrieves registrations for admin views
	List(ctx context.Context, filter repository.RegistrationFilter) ([]*dto.RegistrationResponse, error)
	// UpdateStatus changes a registration's status, re-checking capacity
	UpdateStatus(ctx context.Context, id, status string) (*dto.RegistrationResponse, error)
}

// registrationService implements RegistrationService
type registrationService struct {
	regRepo      repository.RegistrationRepository
	eventRepo    repository.EventRepository
	emailLogRepo repository.EmailLogRepository
	mail         mailer.Mailer
	config       *RegistrationServiceConfig
	now          func() time.Time
}

// NewRegistrationService creates a new RegistrationService
func NewRegistrationService(
	regRepo repository.RegistrationRepository,
	eventRepo repository.EventRepository,
	emailLogRepo repository.EmailLogRepository,
	mail mailer.Mailer,
	config *RegistrationServiceConfig,
) RegistrationService {
	if config.EmailTimeout == 0 {
		config.EmailTimeout = 30 * time.Second
	}
	return &registrationService{
		regRepo:      regRepo,
		eventRepo:    eventRepo,
		emailLogRepo: emailLogRepo,
		mail:         mail,
		config:       config,
		now:          time.Now,
	}
}

// Register admits a visitor to an event. Seat-consuming registrations
// go through the capacity-checked insert so two concurrent requests can
// never overfill a group. The confirmation email is sent in the
// background; its failure does not fail the registration.
func (s *registrationService) Register(ctx context.Context, eventID string, req *dto.RegisterRequest) (*dto.RegistrationResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.registration.register")
	defer span.End()

	span.SetAttributes(attribute.String("event_id", eventID))

	if eventID == "" {
		span.SetStatus(codes.Error, "invalid event id")
		return nil, domain.ErrInvalidEventID
	}
	if err := validateRegisterRequest(req); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if !event.IsActive {
		span.SetStatus(codes.Error, "event inactive")
		return nil, domain.ErrEventInactive
	}

	var group *domain.EventGroup
	if req.GroupID != "" {
		for _, g := range event.Groups {
			if g.ID == req.GroupID {
				group = g
				break
			}
		}
		if group == nil {
			span.SetStatus(codes.Error, "group not found")
			return nil, domain.ErrGroupNotFound
		}
	}

	token, err := newUnsubscribeToken()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	now := s.now()
	reg := &domain.Registration{
		ID:               uuid.New().String(),
		EventID:          event.ID,
		FirstName:        strings.TrimSpace(req.FirstName),
		LastName:         strings.TrimSpace(req.LastName),
		Email:            strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:            strings.TrimSpace(req.Phone),
		Status:           domain.RegistrationStatusConfirmed,
		UnsubscribeToken: token,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if group != nil {
		reg.GroupID = group.ID
		err = s.regRepo.CreateWithCapacityCheck(ctx, reg)
	} else {
		err = s.regRepo.Create(ctx, reg)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	go s.sendConfirmation(reg, event, group)

	span.SetAttributes(attribute.String("registration_id", reg.ID))
	span.SetStatus(codes.Ok, "")
	return dto.RegistrationFromDomain(reg), nil
}

// GetByUnsubscribeToken shows the registration and event behind a token
// so the registrant can confirm what they are about to cancel.
func (s *registrationService) GetByUnsubscribeToken(ctx context.Context, token string) (*dto.UnsubscribeResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.registration.get_by_unsubscribe_token")
	defer span.End()

	if token == "" {
		span.SetStatus(codes.Error, "not found")
		return nil, domain.ErrRegistrationNotFound
	}

	reg, err := s.regRepo.GetByUnsubscribeToken(ctx, token)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	event, err := s.eventRepo.GetByID(ctx, reg.EventID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.String("registration_id", reg.ID))
	span.SetStatus(codes.Ok, "")
	return &dto.UnsubscribeResponse{
		Registration: dto.RegistrationFromDomain(reg),
		Event:        dto.EventFromDomain(event, s.now()),
	}, nil
}

// CancelByUnsubscribeToken cancels the registration behind a token and
// frees its seat. Cancelling twice returns ErrAlreadyCancelled.
func (s *registrationService) CancelByUnsubscribeToken(ctx context.Context, token string) error {
	ctx, span := telemetry.StartSpan(ctx, "service.registration.cancel_by_unsubscribe_token")
	defer span.End()

	if token == "" {
		span.SetStatus(codes.Error, "not found")
		return domain.ErrRegistrationNotFound
	}

	reg, err := s.regRepo.GetByUnsubscribeToken(ctx, token)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetAttributes(attribute.String("registration_id", reg.ID))

	if err := s.regRepo.Cancel(ctx, reg.ID); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	if event, err := s.eventRepo.GetByID(ctx, reg.EventID); err == nil {
		go s.sendCancellation(reg, event)
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// List retrieves registrations for admin views.
func (s *registrationService) List(ctx context.Context, filter repository.RegistrationFilter) ([]*dto.RegistrationResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.registration.list")
	defer span.End()

	regs, err := s.regRepo.List(ctx, filter)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	responses := make([]*dto.RegistrationResponse, 0, len(regs))
	for _, r := range regs {
		responses = append(responses, dto.RegistrationFromDomain(r))
	}

	span.SetAttributes(attribute.Int("count", len(responses)))
	span.SetStatus(codes.Ok, "")
	return responses, nil
}

// UpdateStatus changes a registration's status from the admin side. A
// transition into CONFIRMED re-checks the group's seat cap.
func (s *registrationService) UpdateStatus(ctx context.Context, id, status string) (*dto.RegistrationResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.registration.update_status")
	defer span.End()

	span.SetAttributes(
		attribute.String("registration_id", id),
		attribute.String("status", status),
	)

	newStatus := domain.RegistrationStatus(strings.ToUpper(strings.TrimSpace(status)))
	if !newStatus.Valid() {
		span.SetStatus(codes.Error, "invalid status")
		return nil, domain.ErrInvalidStatus
	}

	if err := s.regRepo.UpdateStatus(ctx, id, newStatus); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	reg, err := s.regRepo.GetByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetStatus(codes.Ok, "")
	return dto.RegistrationFromDomain(reg), nil
}

// sendConfirmation delivers the confirmation email in the background
// and records it in the email log.
func (s *registrationService) sendConfirmation(reg *domain.Registration, event *domain.Event, group *domain.EventGroup) {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.EmailTimeout)
	defer cancel()

	data := s.templateData(reg, event)
	if group != nil {
		data.GroupName = group.Name
	}

	msg, err := mailer.BuildConfirmation(reg.Email, data)
	if err != nil {
		logger.Get().Error("failed to build confirmation email",
			zap.String("registration_id", reg.ID), zap.Error(err))
		return
	}

	if err := s.mail.Send(ctx, msg); err != nil {
		logger.Get().Error("failed to send confirmation email",
			zap.String("registration_id", reg.ID), zap.Error(err))
		return
	}

	s.logEmail(ctx, reg.ID, domain.EmailTypeConfirmation)
}

// sendCancellation delivers the cancellation email in the background.
func (s *registrationService) sendCancellation(reg *domain.Registration, event *domain.Event) {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.EmailTimeout)
	defer cancel()

	msg, err := mailer.BuildCancellation(reg.Email, s.templateData(reg, event))
	if err != nil {
		logger.Get().Error("failed to build cancellation email",
			zap.String("registration_id", reg.ID), zap.Error(err))
		return
	}

	if err := s.mail.Send(ctx, msg); err != nil {
		logger.Get().Error("failed to send cancellation email",
			zap.String("registration_id", reg.ID), zap.Error(err))
		return
	}

	s.logEmail(ctx, reg.ID, domain.EmailTypeCancellation)
}

func (s *registrationService) logEmail(ctx context.Context, registrationID string, emailType domain.EmailType) {
	err := s.emailLogRepo.Create(ctx, &domain.EmailLog{
		ID:             uuid.New().String(),
		RegistrationID: registrationID,
		Type:           emailType,
		SentAt:         s.now(),
	})
	if err != nil {
		logger.Get().Error("failed to record email log",
			zap.String("registration_id", registrationID),
			zap.String("email_type", string(emailType)),
			zap.Error(err))
	}
}

func (s *registrationService) templateData(reg *domain.Registration, event *domain.Event) mailer.TemplateData {
	return mailer.TemplateData{
		FirstName:      reg.FirstName,
		EventTitle:     event.Title,
		EventDate:      event.Date.Format("02.01.2006"),
		EventTime:      event.StartTime,
		EventLocation:  event.Location,
		UnsubscribeURL: fmt.Sprintf("%s/unsubscribe/%s", strings.TrimRight(s.config.BaseURL, "/"), reg.UnsubscribeToken),
	}
}

// validateRegisterRequest checks the visitor-provided fields.
func validateRegisterRequest(req *dto.RegisterRequest) error {
	if strings.TrimSpace(req.FirstName) == "" {
		return domain.ErrMissingFirstName
	}
	if strings.TrimSpace(req.LastName) == "" {
		return domain.ErrMissingLastName
	}
	if !dto.ValidEmail(strings.TrimSpace(req.Email)) {
		return domain.ErrInvalidEmail
	}
	return nil
}

// newUnsubscribeToken returns a URL-safe random token.
func newUnsubscribeToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate unsubscribe token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
