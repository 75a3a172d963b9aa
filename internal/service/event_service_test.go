package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hsnr-erstiwoche/erstiwoche-api/internal/domain"
	"github.com/hsnr-erstiwoche/erstiwoche-api/internal/dto"
	"github.com/hsnr-erstiwoche/erstiwoche-api/internal/repository"
)

func validCreateEventRequest() *dto.CreateEventRequest {
	return &dto.CreateEventRequest{
		Title:     "Campus-Rallye",
		Date:      "2025-09-22",
		StartTime: "10:00",
		EndTime:   "12:00",
		Location:  "Gebäude A",
		Groups: []dto.GroupInput{
			{Name: "Gruppe A", MaxSeats: 20},
			{Name: "Gruppe B", MaxSeats: 20},
		},
	}
}

func TestEventService_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var stored *domain.Event
		repo := &mockEventRepo{
			CreateFunc: func(_ context.Context, event *domain.Event) error {
				stored = event
				return nil
			},
		}
		svc := NewEventService(repo)

		result, err := svc.Create(context.Background(), validCreateEventRequest())
		require.NoError(t, err)

		assert.Equal(t, "Campus-Rallye", result.Title)
		assert.True(t, result.IsActive)
		assert.Len(t, result.Groups, 2)
		require.NotNil(t, stored)
		assert.Equal(t, 2, stored.MaxGroups)
		for _, g := range stored.Groups {
			assert.NotEmpty(t, g.ID)
			assert.Equal(t, stored.ID, g.EventID)
		}
	})

	t.Run("default group when none given", func(t *testing.T) {
		var stored *domain.Event
		repo := &mockEventRepo{
			CreateFunc: func(_ context.Context, event *domain.Event) error {
				stored = event
				return nil
			},
		}
		svc := NewEventService(repo)

		req := validCreateEventRequest()
		req.Groups = nil
		_, err := svc.Create(context.Background(), req)
		require.NoError(t, err)

		require.Len(t, stored.Groups, 1)
		assert.Equal(t, "Standard", stored.Groups[0].Name)
		assert.Equal(t, 50, stored.Groups[0].MaxSeats)
	})

	t.Run("validation", func(t *testing.T) {
		svc := NewEventService(&mockEventRepo{})

		tests := []struct {
			name    string
			mutate  func(req *dto.CreateEventRequest)
			wantErr error
		}{
			{"missing title", func(r *dto.CreateEventRequest) { r.Title = " " }, domain.ErrMissingTitle},
			{"bad date", func(r *dto.CreateEventRequest) { r.Date = "22.09.2025" }, domain.ErrInvalidTime},
			{"bad start time", func(r *dto.CreateEventRequest) { r.StartTime = "10am" }, domain.ErrInvalidTime},
			{"end before start", func(r *dto.CreateEventRequest) { r.EndTime = "09:00" }, domain.ErrInvalidTime},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				req := validCreateEventRequest()
				tt.mutate(req)
				_, err := svc.Create(context.Background(), req)
				assert.ErrorIs(t, err, tt.wantErr)
			})
		}
	})
}

func TestEventService_List(t *testing.T) {
	day := time.Date(2025, 9, 22, 0, 0, 0, 0, time.UTC)
	repo := &mockEventRepo{
		ListFunc: func(_ context.Context, filter repository.EventFilter) ([]*domain.Event, error) {
			assert.True(t, filter.UpcomingOnly)
			return []*domain.Event{
				{
					ID: "event-1", Title: "Campus-Rallye", Date: day,
					StartTime: "10:00", EndTime: "12:00", IsActive: true,
					Groups: []*domain.EventGroup{
						{ID: "g1", MaxSeats: 10, ConfirmedCount: 10},
					},
				},
			}, nil
		},
	}
	svc := NewEventService(repo)

	result, err := svc.List(context.Background(), repository.EventFilter{UpcomingOnly: true})
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.True(t, result[0].IsFull)
	assert.Equal(t, 0, result[0].Groups[0].AvailableSeats)
	assert.Equal(t, "2025-09-22", result[0].Date)
}

func TestEventService_Update(t *testing.T) {
	existing := &domain.Event{
		ID:        "event-1",
		Title:     "Old Title",
		Date:      time.Date(2025, 9, 22, 0, 0, 0, 0, time.UTC),
		StartTime: "10:00",
		EndTime:   "12:00",
		IsActive:  true,
	}

	var updated *domain.Event
	repo := &mockEventRepo{
		GetByIDFunc: func(context.Context, string) (*domain.Event, error) { return existing, nil },
		UpdateFunc: func(_ context.Context, event *domain.Event) error {
			updated = event
			return nil
		},
	}
	svc := NewEventService(repo)

	inactive := false
	result, err := svc.Update(context.Background(), "event-1", &dto.UpdateEventRequest{
		Title:     "New Title",
		Date:      "2025-09-23",
		StartTime: "11:00",
		EndTime:   "13:00",
		IsActive:  &inactive,
	})
	require.NoError(t, err)

	assert.Equal(t, "New Title", result.Title)
	assert.False(t, result.IsActive)
	require.NotNil(t, updated)
	assert.Equal(t, "11:00", updated.StartTime)
}

func TestEventService_Get(t *testing.T) {
	repo := &mockEventRepo{
		GetByIDFunc: func(_ context.Context, id string) (*domain.Event, error) {
			return nil, domain.ErrEventNotFound
		},
	}
	svc := NewEventService(repo)

	_, err := svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrEventNotFound)

	_, err = svc.Get(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidEventID)
}

func TestStatsService_Get(t *testing.T) {
	eventRepo := &mockEventRepo{
		CountFunc: func(context.Context) (int, int, error) { return 12, 5, nil },
	}
	regRepo := &mockRegistrationRepo{
		CountByStatusFunc: func(context.Context) (map[domain.RegistrationStatus]int, error) {
			return map[domain.RegistrationStatus]int{
				domain.RegistrationStatusConfirmed: 80,
				domain.RegistrationStatusPending:   3,
				domain.RegistrationStatusCancelled: 7,
			}, nil
		},
	}
	svc := NewStatsService(eventRepo, regRepo)

	stats, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12, stats.TotalEvents)
	assert.Equal(t, 5, stats.UpcomingEvents)
	assert.Equal(t, 90, stats.TotalRegistrations)
	assert.Equal(t, 80, stats.ConfirmedRegistrations)
	assert.Equal(t, 3, stats.PendingRegistrations)
}
