package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/kinoteka/cinema-booking/internal/config"
	"github.com/kinoteka/cinema-booking/internal/handler"
	"github.com/kinoteka/cinema-booking/internal/middleware"
)

// Handlers bundles everything the router wires up.
type Handlers struct {
	Auth           *handler.AuthHandler
	Public         *handler.PublicHandler
	Reservation    *handler.ReservationHandler
	AdminRoom      *handler.AdminRoomHandler
	AdminScreening *handler.AdminScreeningHandler
}

// Register mounts all routes on the Echo instance.  Public browse GETs go
// through the Redis response cache, the booking endpoint through the rate
// limiter, and the admin group behind JWT + ADMIN role.  Both Redis
// middlewares degrade to pass-throughs when rdb is nil.
func Register(e *echo.Echo, h Handlers, cfg config.Config, rdb *redis.Client) {
	e.GET("/healthz", handler.Health)

	e.POST("/api/auth/login", h.Auth.Login)

	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	e.GET("/api/rooms", h.Public.ListRooms, cache)
	e.GET("/api/screenings", h.Public.ListScreenings, cache)
	e.GET("/api/screenings/:id", h.Public.GetScreening, cache)

	limit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	e.POST("/api/reservations", h.Reservation.Create, limit)

	admin := e.Group(
		"/api/admin",
		middleware.JWTAuth(cfg.JWTSecret),
		middleware.RequireRole("ADMIN"),
	)
	admin.GET("/rooms", h.AdminRoom.List)
	admin.POST("/rooms", h.AdminRoom.Create)
	admin.GET("/rooms/:id", h.AdminRoom.Get)
	admin.PUT("/rooms/:id", h.AdminRoom.Update)
	admin.DELETE("/rooms/:id", h.AdminRoom.Delete)
	admin.GET("/screenings", h.AdminScreening.List)
	admin.POST("/screenings", h.AdminScreening.Create)
}
