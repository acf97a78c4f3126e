// Command seed provisions a development database: one admin account,
// three rooms with generated seat layouts and a week-start schedule of
// four movies per room.  It is idempotent enough for repeated local use
// only in the sense that rerunning adds new rows; wipe the schema first.
package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/kinoteka/cinema-booking/internal/config"
	"github.com/kinoteka/cinema-booking/internal/database"
	"github.com/kinoteka/cinema-booking/internal/model"
	"github.com/kinoteka/cinema-booking/internal/repository"
	"github.com/kinoteka/cinema-booking/internal/service"
	"github.com/kinoteka/cinema-booking/internal/utils"
)

type seedMovie struct {
	title    string
	duration time.Duration
	price    string
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	userRepo := repository.NewUserRepo(db)
	roomRepo := repository.NewRoomRepo(db)
	seatRepo := repository.NewSeatRepo(db)
	screeningRepo := repository.NewScreeningRepo(db)
	roomSvc := service.NewRoomService(roomRepo, seatRepo)

	hash, err := utils.HashPassword("admin123", cfg.BcryptCost)
	if err != nil {
		log.Fatalf("hash admin password: %v", err)
	}
	admin := &model.User{Email: "admin@cinema.pl", PasswordHash: hash, Role: "ADMIN"}
	if err := userRepo.Create(ctx, admin); err != nil {
		log.Fatalf("create admin: %v", err)
	}
	log.Printf("created admin user %s (id=%d)", admin.Email, admin.ID)

	roomSpecs := []struct {
		name        string
		rows        int
		seatsPerRow int
	}{
		{"Sala 1 - Standard", 10, 12},
		{"Sala 2 - VIP", 5, 8},
		{"Sala 3 - IMAX", 15, 20},
	}
	rooms := make([]*model.Room, 0, len(roomSpecs))
	for _, spec := range roomSpecs {
		room, err := roomSvc.CreateRoom(ctx, spec.name, spec.rows, spec.seatsPerRow)
		if err != nil {
			log.Fatalf("create room %q: %v", spec.name, err)
		}
		log.Printf("created room %q (id=%d, %d seats)", room.Name, room.ID, room.TotalSeats())
		rooms = append(rooms, room)
	}

	movies := []seedMovie{
		{"Avatar 3", 180 * time.Minute, "35.00"},
		{"Dune: Część Druga", 166 * time.Minute, "30.00"},
		{"Oppenheimer", 180 * time.Minute, "28.00"},
		{"Barbie", 114 * time.Minute, "25.00"},
	}

	// Tomorrow 14:00 UTC; each next screening starts 30 minutes after the
	// previous one ends.
	tomorrow := time.Now().UTC().AddDate(0, 0, 1)
	first := time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 14, 0, 0, 0, time.UTC)

	for _, room := range rooms {
		startsAt := first
		for _, m := range movies {
			priceCents, err := model.ParsePrice(m.price)
			if err != nil {
				log.Fatalf("parse price %q: %v", m.price, err)
			}
			sc := &model.Screening{
				RoomID:     room.ID,
				MovieTitle: m.title,
				StartsAt:   startsAt,
				EndsAt:     startsAt.Add(m.duration),
				PriceCents: priceCents,
			}
			if err := screeningRepo.Create(ctx, sc); err != nil {
				log.Fatalf("create screening %q in %q: %v", m.title, room.Name, err)
			}
			startsAt = sc.EndsAt.Add(30 * time.Minute)
		}
		log.Printf("scheduled %d screenings in %q", len(movies), room.Name)
	}

	log.Println("seed complete")
}
