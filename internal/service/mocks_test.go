package service

import (
	"context"
	"time"

	"github.com/hsnr-erstiwoche/erstiwoche-api/internal/domain"
	"github.com/hsnr-erstiwoche/erstiwoche-api/internal/mailer"
	"github.com/hsnr-erstiwoche/erstiwoche-api/internal/repository"
)

// mockAdminRepo implements repository.AdminRepository with function fields
type mockAdminRepo struct {
	CreateFunc     func(ctx context.Context, admin *domain.Admin) error
	GetByEmailFunc func(ctx context.Context, email string) (*domain.Admin, error)
	GetByIDFunc    func(ctx context.Context, id string) (*domain.Admin, error)
}

func (m *mockAdminRepo) Create(ctx context.Context, admin *domain.Admin) error {
	return m.CreateFunc(ctx, admin)
}

func (m *mockAdminRepo) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	return m.GetByEmailFunc(ctx, email)
}

func (m *mockAdminRepo) GetByID(ctx context.Context, id string) (*domain.Admin, error) {
	return m.GetByIDFunc(ctx, id)
}

// mockEventRepo implements repository.EventRepository with function fields
type mockEventRepo struct {
	CreateFunc              func(ctx context.Context, event *domain.Event) error
	GetByIDFunc             func(ctx context.Context, id string) (*domain.Event, error)
	ListFunc                func(ctx context.Context, filter repository.EventFilter) ([]*domain.Event, error)
	UpdateFunc              func(ctx context.Context, event *domain.Event) error
	DeactivateFunc          func(ctx context.Context, id string) error
	ListStartingBetweenFunc func(ctx context.Context, from, to time.Time) ([]*domain.Event, error)
	CountFunc               func(ctx context.Context) (int, int, error)
}

func (m *mockEventRepo) Create(ctx context.Context, event *domain.Event) error {
	return m.CreateFunc(ctx, event)
}

func (m *mockEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockEventRepo) List(ctx context.Context, filter repository.EventFilter) ([]*domain.Event, error) {
	return m.ListFunc(ctx, filter)
}

func (m *mockEventRepo) Update(ctx context.Context, event *domain.Event) error {
	return m.UpdateFunc(ctx, event)
}

func (m *mockEventRepo) Deactivate(ctx context.Context, id string) error {
	return m.DeactivateFunc(ctx, id)
}

func (m *mockEventRepo) ListStartingBetween(ctx context.Context, from, to time.Time) ([]*domain.Event, error) {
	return m.ListStartingBetweenFunc(ctx, from, to)
}

func (m *mockEventRepo) Count(ctx context.Context) (int, int, error) {
	return m.CountFunc(ctx)
}

// mockRegistrationRepo implements repository.RegistrationRepository with function fields
type mockRegistrationRepo struct {
	CreateFunc                  func(ctx context.Context, reg *domain.Registration) error
	CreateWithCapacityCheckFunc func(ctx context.Context, reg *domain.Registration) error
	GetByIDFunc                 func(ctx context.Context, id string) (*domain.Registration, error)
	GetByUnsubscribeTokenFunc   func(ctx context.Context, token string) (*domain.Registration, error)
	ListFunc                    func(ctx context.Context, filter repository.RegistrationFilter) ([]*domain.Registration, error)
	UpdateStatusFunc            func(ctx context.Context, id string, status domain.RegistrationStatus) error
	CancelFunc                  func(ctx context.Context, id string) error
	ListConfirmedByEventFunc    func(ctx context.Context, eventID string) ([]*domain.Registration, error)
	CountByStatusFunc           func(ctx context.Context) (map[domain.RegistrationStatus]int, error)
}

func (m *mockRegistrationRepo) Create(ctx context.Context, reg *domain.Registration) error {
	return m.CreateFunc(ctx, reg)
}

func (m *mockRegistrationRepo) CreateWithCapacityCheck(ctx context.Context, reg *domain.Registration) error {
	return m.CreateWithCapacityCheckFunc(ctx, reg)
}

func (m *mockRegistrationRepo) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockRegistrationRepo) GetByUnsubscribeToken(ctx context.Context, token string) (*domain.Registration, error) {
	return m.GetByUnsubscribeTokenFunc(ctx, token)
}

func (m *mockRegistrationRepo) List(ctx context.Context, filter repository.RegistrationFilter) ([]*domain.Registration, error) {
	return m.ListFunc(ctx, filter)
}

func (m *mockRegistrationRepo) UpdateStatus(ctx context.Context, id string, status domain.RegistrationStatus) error {
	return m.UpdateStatusFunc(ctx, id, status)
}

func (m *mockRegistrationRepo) Cancel(ctx context.Context, id string) error {
	return m.CancelFunc(ctx, id)
}

func (m *mockRegistrationRepo) ListConfirmedByEvent(ctx context.Context, eventID string) ([]*domain.Registration, error) {
	return m.ListConfirmedByEventFunc(ctx, eventID)
}

func (m *mockRegistrationRepo) CountByStatus(ctx context.Context) (map[domain.RegistrationStatus]int, error) {
	return m.CountByStatusFunc(ctx)
}

// mockContactRepo implements repository.ContactRepository with function fields
type mockContactRepo struct {
	CreateFunc func(ctx context.Context, msg *domain.ContactMessage) error
	ListFunc   func(ctx context.Context, limit, offset int) ([]*domain.ContactMessage, error)
}

func (m *mockContactRepo) Create(ctx context.Context, msg *domain.ContactMessage) error {
	return m.CreateFunc(ctx, msg)
}

func (m *mockContactRepo) List(ctx context.Context, limit, offset int) ([]*domain.ContactMessage, error) {
	return m.ListFunc(ctx, limit, offset)
}

// mockEmailLogRepo implements repository.EmailLogRepository with function fields
type mockEmailLogRepo struct {
	CreateFunc func(ctx context.Context, log *domain.EmailLog) error
	ExistsFunc func(ctx context.Context, registrationID string, emailType domain.EmailType) (bool, error)
}

func (m *mockEmailLogRepo) Create(ctx context.Context, log *domain.EmailLog) error {
	if m.CreateFunc == nil {
		return nil
	}
	return m.CreateFunc(ctx, log)
}

func (m *mockEmailLogRepo) Exists(ctx context.Context, registrationID string, emailType domain.EmailType) (bool, error) {
	return m.ExistsFunc(ctx, registrationID, emailType)
}

// mockMailer records sent messages on a channel so tests can wait for
// background deliveries.
type mockMailer struct {
	sent chan *mailer.Message
}

func newMockMailer() *mockMailer {
	return &mockMailer{sent: make(chan *mailer.Message, 10)}
}

func (m *mockMailer) Send(_ context.Context, msg *mailer.Message) error {
	m.sent <- msg
	return nil
}
