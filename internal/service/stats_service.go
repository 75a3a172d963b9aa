package service

import (
	"context"

	"go.opentelemetry.io/otel/codes"

	"github.com/hsnr-erstiwoche/erstiwoche-api/internal/domain"
	"github.com/hsnr-erstiwoche/erstiwoche-api/internal/dto"
	"github.com/hsnr-erstiwoche/erstiwoche-api/internal/repository"
	"github.com/hsnr-erstiwoche/erstiwoche-api/pkg/telemetry"
)

// StatsService defines the interface for admin dashboard counters
type StatsService interface {
	// Get computes the dashboard counters
	Get(ctx context.Context) (*dto.StatsResponse, error)
}

// statsService implements StatsService
type statsService struct {
	eventRepo repository.EventRepository
	regRepo   repository.RegistrationRepository
}

// NewStatsService creates a new StatsService
func NewStatsService(eventRepo repository.EventRepository, regRepo repository.RegistrationRepository) StatsService {
	return &statsService{
		eventRepo: eventRepo,
		regRepo:   regRepo,
	}
}

// Get computes the dashboard counters.
func (s *statsService) Get(ctx context.Context) (*dto.StatsResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.stats.get")
	defer span.End()

	total, upcoming, err := s.eventRepo.Count(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	byStatus, err := s.regRepo.CountByStatus(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	totalRegs := 0
	for _, c := range byStatus {
		totalRegs += c
	}

	span.SetStatus(codes.Ok, "")
	return &dto.StatsResponse{
		TotalEvents:            total,
		TotalRegistrations:     totalRegs,
		UpcomingEvents:         upcoming,
		PendingRegistrations:   byStatus[domain.RegistrationStatusPending],
		ConfirmedRegistrations: byStatus[domain.RegistrationStatusConfirmed],
	}, nil
}
