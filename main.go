package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hsnr-erstiwoche/erstiwoche-api/internal/handler"
	"github.com/hsnr-erstiwoche/erstiwoche-api/internal/mailer"
	"github.com/hsnr-erstiwoche/erstiwoche-api/internal/middleware"
	"github.com/hsnr-erstiwoche/erstiwoche-api/internal/repository"
	"github.com/hsnr-erstiwoche/erstiwoche-api/internal/service"
	"github.com/hsnr-erstiwoche/erstiwoche-api/internal/worker"
	"github.com/hsnr-erstiwoche/erstiwoche-api/pkg/config"
	"github.com/hsnr-erstiwoche/erstiwoche-api/pkg/database"
	"github.com/hsnr-erstiwoche/erstiwoche-api/pkg/logger"
	"github.com/hsnr-erstiwoche/erstiwoche-api/pkg/ratelimit"
	pkgredis "github.com/hsnr-erstiwoche/erstiwoche-api/pkg/redis"
	"github.com/hsnr-erstiwoche/erstiwoche-api/pkg/telemetry"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Init(&logger.Config{
		ServiceName: cfg.App.Name,
		Development: cfg.IsDevelopment(),
	}); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	appLog := logger.Get()
	appLog.Info("Starting Erstiwoche API...")

	ctx := context.Background()

	// Initialize tracing
	tel, err := telemetry.Init(ctx, &telemetry.Config{
		Enabled:       cfg.OTel.Enabled,
		ServiceName:   cfg.OTel.ServiceName,
		Environment:   cfg.App.Environment,
		CollectorAddr: cfg.OTel.CollectorAddr,
	})
	if err != nil {
		appLog.Fatal(fmt.Sprintf("Telemetry initialization failed: %v", err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = tel.Shutdown(shutdownCtx)
	}()

	// Initialize database connection
	db, err := database.NewPostgres(ctx, &database.PostgresConfig{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		MaxConnLifetime: cfg.Database.ConnMaxLifetime,
		MaxConnIdleTime: cfg.Database.ConnMaxIdleTime,
		ConnectTimeout:  cfg.Database.ConnectTimeout,
		MaxRetries:      3,
		RetryInterval:   2 * time.Second,
		EnableTracing:   cfg.OTel.Enabled,
	})
	if err != nil {
		appLog.Fatal(fmt.Sprintf("Database connection failed: %v", err))
	}
	defer db.Close()
	appLog.Info("Database connected")

	// The login rate limiter runs on memory by default; Redis backs it
	// when multiple instances must share the counter.
	var limiterStore ratelimit.Store
	if cfg.Redis.Enabled {
		redisClient, err := pkgredis.NewClient(ctx, &pkgredis.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			appLog.Fatal(fmt.Sprintf("Redis connection failed: %v", err))
		}
		defer redisClient.Close()
		appLog.Info("Redis connected")
		limiterStore = ratelimit.NewRedisStore(redisClient.Raw(), "")
	} else {
		memStore := ratelimit.NewMemoryStore(cfg.RateLimit.Window)
		defer memStore.Stop()
		limiterStore = memStore
	}
	loginLimiter := ratelimit.New(limiterStore, cfg.RateLimit.MaxAttempts, cfg.RateLimit.Window)

	// Initialize mailer
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

	// Initialize repositories
	pool := db.Pool()
	eventRepo := repository.NewPostgresEventRepository(pool)
	regRepo := repository.NewPostgresRegistrationRepository(pool)
	adminRepo := repository.NewPostgresAdminRepository(pool)
	contactRepo := repository.NewPostgresContactRepository(pool)
	emailLogRepo := repository.NewPostgresEmailLogRepository(pool)

	// Initialize services
	authService := service.NewAuthService(adminRepo, &service.AuthServiceConfig{
		JWTSecret: cfg.JWT.Secret,
		TokenTTL:  cfg.JWT.TokenTTL,
	})
	eventService := service.NewEventService(eventRepo)
	regService := service.NewRegistrationService(regRepo, eventRepo, emailLogRepo, mail, &service.RegistrationServiceConfig{
		BaseURL: cfg.App.BaseURL,
	})
	contactService := service.NewContactService(contactRepo)
	statsService := service.NewStatsService(eventRepo, regRepo)

	// Initialize handlers
	healthHandler := handler.NewHealthHandler(db)
	authHandler := handler.NewAuthHandler(authService, loginLimiter)
	eventHandler := handler.NewEventHandler(eventService, statsService)
	regHandler := handler.NewRegistrationHandler(regService)
	contactHandler := handler.NewContactHandler(contactService)

	// Setup router
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(telemetry.TracingMiddleware(cfg.App.Name))

	registerRoutes(router, healthHandler, authHandler, eventHandler, regHandler, contactHandler, authService)

	// Start reminder worker
	var reminderWorker *worker.ReminderWorker
	if cfg.Reminder.Enabled {
		reminderWorker = worker.NewReminderWorker(eventRepo, regRepo, emailLogRepo, mail, &worker.ReminderWorkerConfig{
			CheckInterval: cfg.Reminder.CheckInterval,
			BaseURL:       cfg.App.BaseURL,
		})
		if err := reminderWorker.Start(ctx); err != nil {
			appLog.Fatal(fmt.Sprintf("Reminder worker failed to start: %v", err))
		}
	}

	// Start HTTP server
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		appLog.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Fatal(fmt.Sprintf("HTTP server failed: %v", err))
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLog.Info("Shutting down...")

	if reminderWorker != nil {
		reminderWorker.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Error("Forced shutdown", zap.Error(err))
	}

	appLog.Info("Server stopped")
}

func registerRoutes(
	router *gin.Engine,
	healthHandler *handler.HealthHandler,
	authHandler *handler.AuthHandler,
	eventHandler *handler.EventHandler,
	regHandler *handler.RegistrationHandler,
	contactHandler *handler.ContactHandler,
	authService service.AuthService,
) {
	router.GET("/health", healthHandler.Check)

	api := router.Group("/api")
	{
		api.GET("/events", eventHandler.List)
		api.GET("/events/:id", eventHandler.Get)
		api.POST("/events/:id/register", regHandler.Register)
		api.GET("/unsubscribe/:token", regHandler.GetUnsubscribe)
		api.POST("/unsubscribe/:token", regHandler.Unsubscribe)
		api.POST("/contact", contactHandler.Create)

		admin := api.Group("/admin")
		{
			admin.POST("/login", authHandler.Login)

			authed := admin.Group("")
			authed.Use(middleware.RequireAdmin(authService))
			{
				authed.GET("/me", authHandler.Me)
				authed.GET("/stats", eventHandler.Stats)
				authed.GET("/events", eventHandler.ListAdmin)
				authed.POST("/events", eventHandler.Create)
				authed.PUT("/events/:id", eventHandler.Update)
				authed.DELETE("/events/:id", eventHandler.Delete)
				authed.GET("/registrations", regHandler.List)
				authed.PATCH("/registrations/:id/status", regHandler.UpdateStatus)
				authed.GET("/contact-messages", contactHandler.List)
			}
		}
	}
}
