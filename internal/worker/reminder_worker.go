package worker

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hsnr-erstiwoche/erstiwoche-api/internal/domain"
	"github.com/hsnr-erstiwoche/erstiwoche-api/internal/mailer"
	"github.com/hsnr-erstiwoche/erstiwoche-api/internal/repository"
	"github.com/hsnr-erstiwoche/erstiwoche-api/pkg/logger"
)

// ReminderWorkerConfig contains configuration for the reminder worker
type ReminderWorkerConfig struct {
	// CheckInterval is the interval between reminder scans
	CheckInterval time.Duration
	// BaseURL is the public site URL used to build unsubscribe links
	BaseURL string
}

// DefaultReminderWorkerConfig returns default configuration
func DefaultReminderWorkerConfig() *ReminderWorkerConfig {
	return &ReminderWorkerConfig{
		CheckInterval: 5 * time.Minute,
	}
}

// reminderWindow pairs a lead time with the email type it produces.
type reminderWindow struct {
	lead      time.Duration
	emailType domain.EmailType
	build     func(to string, data mailer.TemplateData) (*mailer.Message, error)
}

// ReminderWorker periodically scans for events starting soon and sends
// reminder emails to their confirmed registrations. The email log keeps
// every reminder to exactly one delivery per registration and type.
type ReminderWorker struct {
	eventRepo    repository.EventRepository
	regRepo      repository.RegistrationRepository
	emailLogRepo repository.EmailLogRepository
	mail         mailer.Mailer
	config       *ReminderWorkerConfig
	log          *logger.Logger
	now          func() time.Time
	stopCh       chan struct{}
	wg           sync.WaitGroup
	mu           sync.Mutex
	running      bool
}

// NewReminderWorker creates a new reminder worker
func NewReminderWorker(
	eventRepo repository.EventRepository,
	regRepo repository.RegistrationRepository,
	emailLogRepo repository.EmailLogRepository,
	mail mailer.Mailer,
	config *ReminderWorkerConfig,
) *ReminderWorker {
	if config == nil {
		config = DefaultReminderWorkerConfig()
	}
	if config.CheckInterval == 0 {
		config.CheckInterval = 5 * time.Minute
	}

	return &ReminderWorker{
		eventRepo:    eventRepo,
		regRepo:      regRepo,
		emailLogRepo: emailLogRepo,
		mail:         mail,
		config:       config,
		log:          logger.Get(),
		now:          time.Now,
		stopCh:       make(chan struct{}),
	}
}

// Start starts the reminder worker
func (w *ReminderWorker) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("reminder worker already running")
	}
	w.running = true
	w.mu.Unlock()

	w.log.Info("Starting reminder worker",
		zap.Duration("check_interval", w.config.CheckInterval))

	w.wg.Add(1)
	go w.run(ctx)

	return nil
}

// Stop stops the reminder worker
func (w *ReminderWorker) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	w.log.Info("Stopping reminder worker")
	close(w.stopCh)
	w.wg.Wait()
	w.log.Info("Reminder worker stopped")
}

func (w *ReminderWorker) run(ctx context.Context) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.config.CheckInterval)
	defer ticker.Stop()

	// Run immediately on start
	w.ProcessReminders(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.ProcessReminders(ctx)
		}
	}
}

// ProcessReminders runs one reminder scan. For each lead time, events
// starting within that window get reminders sent to every confirmed
// registration that has not received that reminder type yet.
func (w *ReminderWorker) ProcessReminders(ctx context.Context) {
	windows := []reminderWindow{
		{
			lead:      24 * time.Hour,
			emailType: domain.EmailTypeReminderDayBefore,
			build:     mailer.BuildReminderDayBefore,
		},
		{
			lead:      3 * time.Hour,
			emailType: domain.EmailTypeReminder3Hours,
			build:     mailer.BuildReminder3Hours,
		},
	}

	now := w.now()
	for _, window := range windows {
		events, err := w.eventRepo.ListStartingBetween(ctx, now, now.Add(window.lead))
		if err != nil {
			w.log.Error("failed to scan events for reminders",
				zap.String("email_type", string(window.emailType)), zap.Error(err))
			continue
		}

		for _, event := range events {
			w.remindEvent(ctx, event, window)
		}
	}
}

func (w *ReminderWorker) remindEvent(ctx context.Context, event *domain.Event, window reminderWindow) {
	regs, err := w.regRepo.ListConfirmedByEvent(ctx, event.ID)
	if err != nil {
		w.log.Error("failed to list registrations for reminder",
			zap.String("event_id", event.ID), zap.Error(err))
		return
	}

	sent := 0
	for _, reg := range regs {
		exists, err := w.emailLogRepo.Exists(ctx, reg.ID, window.emailType)
		if err != nil {
			w.log.Error("failed to check email log",
				zap.String("registration_id", reg.ID), zap.Error(err))
			continue
		}
		if exists {
			continue
		}

		msg, err := window.build(reg.Email, w.templateData(reg, event))
		if err != nil {
			w.log.Error("failed to build reminder email",
				zap.String("registration_id", reg.ID), zap.Error(err))
			continue
		}

		if err := w.mail.Send(ctx, msg); err != nil {
			w.log.Error("failed to send reminder email",
				zap.String("registration_id", reg.ID), zap.Error(err))
			continue
		}

		err = w.emailLogRepo.Create(ctx, &domain.EmailLog{
			ID:             uuid.New().String(),
			RegistrationID: reg.ID,
			Type:           window.emailType,
			SentAt:         w.now(),
		})
		if err != nil {
			w.log.Error("failed to record reminder email log",
				zap.String("registration_id", reg.ID), zap.Error(err))
		}
		sent++
	}

	if sent > 0 {
		w.log.Info("reminders sent",
			zap.String("event_id", event.ID),
			zap.String("email_type", string(window.emailType)),
			zap.Int("count", sent))
	}
}

func (w *ReminderWorker) templateData(reg *domain.Registration, event *domain.Event) mailer.TemplateData {
	data := mailer.TemplateData{
		FirstName:     reg.FirstName,
		EventTitle:    event.Title,
		EventDate:     event.Date.Format("02.01.2006"),
		EventTime:     event.StartTime,
		EventLocation: event.Location,
	}
	if w.config.BaseURL != "" {
		data.UnsubscribeURL = fmt.Sprintf("%s/unsubscribe/%s",
			strings.TrimRight(w.config.BaseURL, "/"), reg.UnsubscribeToken)
	}
	if reg.GroupID != "" {
		for _, g := range event.Groups {
			if g.ID == reg.GroupID {
				data.GroupName = g.Name
				break
			}
		}
	}
	return data
}
