package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/kinoteka/cinema-booking/internal/config"
	"github.com/kinoteka/cinema-booking/internal/database"
	"github.com/kinoteka/cinema-booking/internal/handler"
	"github.com/kinoteka/cinema-booking/internal/queue"
	"github.com/kinoteka/cinema-booking/internal/repository"
	"github.com/kinoteka/cinema-booking/internal/router"
	"github.com/kinoteka/cinema-booking/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable: rate limiting and response cache disabled")
	}

	roomRepo := repository.NewRoomRepo(db)
	seatRepo := repository.NewSeatRepo(db)
	screeningRepo := repository.NewScreeningRepo(db)
	reservationRepo := repository.NewReservationRepo(db)
	userRepo := repository.NewUserRepo(db)

	reservationSvc := service.NewReservationService(reservationRepo)
	roomSvc := service.NewRoomService(roomRepo, seatRepo)

	h := router.Handlers{
		Auth:           handler.NewAuthHandler(cfg, userRepo),
		Public:         handler.NewPublicHandler(roomRepo, screeningRepo, reservationSvc),
		Reservation:    handler.NewReservationHandler(screeningRepo, reservationSvc),
		AdminRoom:      handler.NewAdminRoomHandler(roomRepo, seatRepo, roomSvc),
		AdminScreening: handler.NewAdminScreeningHandler(roomRepo, screeningRepo),
	}

	e := echo.New()
	e.HideBanner = true
	router.Register(e, h, cfg, rdb)

	// Background consumer; reconnects on its own and never stops the server.
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("reservation consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
