// Command seed creates the initial admin account and a set of sample
// orientation week events for local development.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/hsnr-erstiwoche/erstiwoche-api/internal/domain"
	"github.com/hsnr-erstiwoche/erstiwoche-api/internal/dto"
	"github.com/hsnr-erstiwoche/erstiwoche-api/internal/repository"
	"github.com/hsnr-erstiwoche/erstiwoche-api/internal/service"
	"github.com/hsnr-erstiwoche/erstiwoche-api/pkg/config"
	"github.com/hsnr-erstiwoche/erstiwoche-api/pkg/database"
)

const (
	seedAdminEmail    = "admin@hs-niederrhein.de"
	seedAdminPassword = "Admin123!"
	seedAdminName     = "Erstiwoche Admin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

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
		log.Fatalf("Database connection failed: %v", err)
	}
	defer db.Close()

	pool := db.Pool()
	adminRepo := repository.NewPostgresAdminRepository(pool)
	eventRepo := repository.NewPostgresEventRepository(pool)

	authService := service.NewAuthService(adminRepo, &service.AuthServiceConfig{
		JWTSecret: cfg.JWT.Secret,
		TokenTTL:  cfg.JWT.TokenTTL,
	})

	if _, err := authService.CreateAdmin(ctx, seedAdminEmail, seedAdminPassword, seedAdminName); err != nil {
		if errors.Is(err, domain.ErrAdminAlreadyExists) {
			fmt.Println("Admin already exists, skipping")
		} else {
			log.Fatalf("Failed to create admin: %v", err)
		}
	} else {
		fmt.Printf("Created admin %s\n", seedAdminEmail)
	}

	eventService := service.NewEventService(eventRepo)
	monday := nextMonday(time.Now())

	events := []*dto.CreateEventRequest{
		{
			Title:       "Campus-Rallye",
			Description: "Lerne den Campus Krefeld Süd in kleinen Gruppen kennen.",
			Date:        monday.Format("2006-01-02"),
			StartTime:   "10:00",
			EndTime:     "12:00",
			Location:    "Campus Krefeld Süd, Gebäude A",
			Groups: []dto.GroupInput{
				{Name: "Gruppe A", MaxSeats: 20},
				{Name: "Gruppe B", MaxSeats: 20},
				{Name: "Gruppe C", MaxSeats: 20},
			},
		},
		{
			Title:       "Ersti-Frühstück",
			Description: "Gemeinsames Frühstück mit den Fachschaften.",
			Date:        monday.AddDate(0, 0, 1).Format("2006-01-02"),
			StartTime:   "09:00",
			EndTime:     "11:00",
			Location:    "Mensa",
		},
		{
			Title:       "Stadtführung Krefeld",
			Description: "Entdecke die Stadt mit Studierenden aus höheren Semestern.",
			Date:        monday.AddDate(0, 0, 2).Format("2006-01-02"),
			StartTime:   "14:00",
			EndTime:     "16:30",
			Location:    "Treffpunkt Hauptbahnhof",
			Groups: []dto.GroupInput{
				{Name: "Tour 1", MaxSeats: 25},
				{Name: "Tour 2", MaxSeats: 25},
			},
		},
		{
			Title:       "Kneipentour",
			Description: "Der Klassiker zum Abschluss der Erstiwoche.",
			Date:        monday.AddDate(0, 0, 4).Format("2006-01-02"),
			StartTime:   "19:00",
			EndTime:     "23:00",
			Location:    "Innenstadt",
			Groups: []dto.GroupInput{
				{Name: "Route Nord", MaxSeats: 15},
				{Name: "Route Süd", MaxSeats: 15},
			},
		},
	}

	for _, req := range events {
		event, err := eventService.Create(ctx, req)
		if err != nil {
			log.Fatalf("Failed to create event %q: %v", req.Title, err)
		}
		fmt.Printf("Created event %q on %s\n", event.Title, event.Date)
	}

	fmt.Println("Seed complete")
}

// nextMonday returns the next Monday after t, at midnight.
func nextMonday(t time.Time) time.Time {
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(time.Monday) - int(t.Weekday()) + 7) % 7
	if offset == 0 {
		offset = 7
	}
	return t.AddDate(0, 0, offset)
}
