package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/hsnr-erstiwoche/erstiwoche-api/internal/domain"
	"github.com/hsnr-erstiwoche/erstiwoche-api/internal/dto"
	"github.com/hsnr-erstiwoche/erstiwoche-api/internal/repository"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// mockAuthService implements service.AuthService with function fields
type mockAuthService struct {
	LoginFunc             func(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	VerifyTokenFunc       func(ctx context.Context, token string) (*domain.Claims, error)
	GetAdminFromTokenFunc func(ctx context.Context, token string) (*domain.Admin, error)
	CreateAdminFunc       func(ctx context.Context, email, password, name string) (*domain.Admin, error)
}

func (m *mockAuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	return m.LoginFunc(ctx, req)
}

func (m *mockAuthService) VerifyToken(ctx context.Context, token string) (*domain.Claims, error) {
	return m.VerifyTokenFunc(ctx, token)
}

func (m *mockAuthService) GetAdminFromToken(ctx context.Context, token string) (*domain.Admin, error) {
	return m.GetAdminFromTokenFunc(ctx, token)
}

func (m *mockAuthService) CreateAdmin(ctx context.Context, email, password, name string) (*domain.Admin, error) {
	return m.CreateAdminFunc(ctx, email, password, name)
}

// mockRegistrationService implements service.RegistrationService with function fields
type mockRegistrationService struct {
	RegisterFunc                 func(ctx context.Context, eventID string, req *dto.RegisterRequest) (*dto.RegistrationResponse, error)
	GetByUnsubscribeTokenFunc    func(ctx context.Context, token string) (*dto.UnsubscribeResponse, error)
	CancelByUnsubscribeTokenFunc func(ctx context.Context, token string) error
	ListFunc                     func(ctx context.Context, filter repository.RegistrationFilter) ([]*dto.RegistrationResponse, error)
	UpdateStatusFunc             func(ctx context.Context, id, status string) (*dto.RegistrationResponse, error)
}

func (m *mockRegistrationService) Register(ctx context.Context, eventID string, req *dto.RegisterRequest) (*dto.RegistrationResponse, error) {
	return m.RegisterFunc(ctx, eventID, req)
}

func (m *mockRegistrationService) GetByUnsubscribeToken(ctx context.Context, token string) (*dto.UnsubscribeResponse, error) {
	return m.GetByUnsubscribeTokenFunc(ctx, token)
}

func (m *mockRegistrationService) CancelByUnsubscribeToken(ctx context.Context, token string) error {
	return m.CancelByUnsubscribeTokenFunc(ctx, token)
}

func (m *mockRegistrationService) List(ctx context.Context, filter repository.RegistrationFilter) ([]*dto.RegistrationResponse, error) {
	return m.ListFunc(ctx, filter)
}

func (m *mockRegistrationService) UpdateStatus(ctx context.Context, id, status string) (*dto.RegistrationResponse, error) {
	return m.UpdateStatusFunc(ctx, id, status)
}

// mockEventService implements service.EventService with function fields
type mockEventService struct {
	ListFunc       func(ctx context.Context, filter repository.EventFilter) ([]*dto.EventResponse, error)
	GetFunc        func(ctx context.Context, id string) (*dto.EventResponse, error)
	CreateFunc     func(ctx context.Context, req *dto.CreateEventRequest) (*dto.EventResponse, error)
	UpdateFunc     func(ctx context.Context, id string, req *dto.UpdateEventRequest) (*dto.EventResponse, error)
	DeactivateFunc func(ctx context.Context, id string) error
}

func (m *mockEventService) List(ctx context.Context, filter repository.EventFilter) ([]*dto.EventResponse, error) {
	return m.ListFunc(ctx, filter)
}

func (m *mockEventService) Get(ctx context.Context, id string) (*dto.EventResponse, error) {
	return m.GetFunc(ctx, id)
}

func (m *mockEventService) Create(ctx context.Context, req *dto.CreateEventRequest) (*dto.EventResponse, error) {
	return m.CreateFunc(ctx, req)
}

func (m *mockEventService) Update(ctx context.Context, id string, req *dto.UpdateEventRequest) (*dto.EventResponse, error) {
	return m.UpdateFunc(ctx, id, req)
}

func (m *mockEventService) Deactivate(ctx context.Context, id string) error {
	return m.DeactivateFunc(ctx, id)
}

// mockStatsService implements service.StatsService with function fields
type mockStatsService struct {
	GetFunc func(ctx context.Context) (*dto.StatsResponse, error)
}

func (m *mockStatsService) Get(ctx context.Context) (*dto.StatsResponse, error) {
	return m.GetFunc(ctx)
}

// mockContactService implements service.ContactService with function fields
type mockContactService struct {
	SubmitFunc func(ctx context.Context, req *dto.ContactRequest) (*dto.ContactMessageResponse, error)
	ListFunc   func(ctx context.Context, limit, offset int) ([]*dto.ContactMessageResponse, error)
}

func (m *mockContactService) Submit(ctx context.Context, req *dto.ContactRequest) (*dto.ContactMessageResponse, error) {
	return m.SubmitFunc(ctx, req)
}

func (m *mockContactService) List(ctx context.Context, limit, offset int) ([]*dto.ContactMessageResponse, error) {
	return m.ListFunc(ctx, limit, offset)
}
