// Command reminder-worker runs the reminder scan loop as a standalone
// process, for deployments that keep background work out of the API
// server.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hsnr-erstiwoche/erstiwoche-api/internal/mailer"
	"github.com/hsnr-erstiwoche/erstiwoche-api/internal/repository"
	"github.com/hsnr-erstiwoche/erstiwoche-api/internal/worker"
	"github.com/hsnr-erstiwoche/erstiwoche-api/pkg/config"
	"github.com/hsnr-erstiwoche/erstiwoche-api/pkg/database"
	"github.com/hsnr-erstiwoche/erstiwoche-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(&logger.Config{
		ServiceName: "erstiwoche-reminder-worker",
		Development: cfg.IsDevelopment(),
	}); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	appLog := logger.Get()
	ctx := context.Background()

	db, err := database.NewPostgres(ctx, &database.PostgresConfig{
		Host:           cfg.Database.Host,
		Port:           cfg.Database.Port,
		User:           cfg.Database.User,
		Password:       cfg.Database.Password,
		Database:       cfg.Database.DBName,
		SSLMode:        cfg.Database.SSLMode,
		MaxConns:       5,
		MinConns:       1,
		ConnectTimeout: 10 * time.Second,
		MaxRetries:     3,
		RetryInterval:  2 * time.Second,
	})
	if err != nil {
		appLog.Fatal(fmt.Sprintf("Database connection failed: %v", err))
	}
	defer db.Close()

	var mail mailer.Mailer
	if cfg.SMTP.Enabled {
		mail = mailer.NewSMTPMailer(mailer.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.User,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
			FromName: "Erstiwoche HSNR",
		})
	} else {
		mail = mailer.NewNopMailer()
	}

	pool := db.Pool()
	w := worker.NewReminderWorker(
		repository.NewPostgresEventRepository(pool),
		repository.NewPostgresRegistrationRepository(pool),
		repository.NewPostgresEmailLogRepository(pool),
		mail,
		&worker.ReminderWorkerConfig{
			CheckInterval: cfg.Reminder.CheckInterval,
			BaseURL:       cfg.App.BaseURL,
		},
	)

	if err := w.Start(ctx); err != nil {
		appLog.Fatal(fmt.Sprintf("Reminder worker failed to start: %v", err))
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	w.Stop()
}
