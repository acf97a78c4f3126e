package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kinoteka/cinema-booking/internal/model"
	"github.com/kinoteka/cinema-booking/internal/repository"
)

// AdminScreeningHandler schedules screenings into rooms.
type AdminScreeningHandler struct {
	Rooms      *repository.RoomRepo
	Screenings *repository.ScreeningRepo
}

func NewAdminScreeningHandler(rooms *repository.RoomRepo, screenings *repository.ScreeningRepo) *AdminScreeningHandler {
	if rooms == nil || screenings == nil {
		panic("nil dependency passed to NewAdminScreeningHandler")
	}
	return &AdminScreeningHandler{Rooms: rooms, Screenings: screenings}
}

type createScreeningReq struct {
	RoomID     uint64 `json:"roomId"`
	MovieTitle string `json:"movieTitle"`
	StartsAt   string `json:"startsAt"` // RFC3339
	EndsAt     string `json:"endsAt"`   // RFC3339
	Price      string `json:"price"`    // per-seat, 2-decimal string
}

type adminScreeningResp struct {
	ID         uint64 `json:"id"`
	RoomID     uint64 `json:"roomId"`
	MovieTitle string `json:"movieTitle"`
	StartsAt   string `json:"startsAt"`
	EndsAt     string `json:"endsAt"`
	Price      string `json:"price"`
}

// Create schedules a screening.  Overlapping screenings in the same room
// are allowed; scheduling hygiene is the operator's concern.
func (h *AdminScreeningHandler) Create(c echo.Context) error {
	var req createScreeningReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	errs := map[string]string{}
	req.MovieTitle = strings.TrimSpace(req.MovieTitle)
	if req.RoomID == 0 {
		errs["roomId"] = "roomId is required"
	}
	if req.MovieTitle == "" {
		errs["movieTitle"] = "movieTitle is required"
	}
	startsAt, err := time.Parse(time.RFC3339, req.StartsAt)
	if err != nil {
		errs["startsAt"] = "startsAt must be an RFC3339 timestamp"
	}
	endsAt, err := time.Parse(time.RFC3339, req.EndsAt)
	if err != nil {
		errs["endsAt"] = "endsAt must be an RFC3339 timestamp"
	}
	if _, ok := errs["startsAt"]; !ok {
		if _, ok := errs["endsAt"]; !ok && !startsAt.Before(endsAt) {
			errs["endsAt"] = "endsAt must be after startsAt"
		}
	}
	priceCents, err := model.ParsePrice(req.Price)
	if err != nil {
		errs["price"] = "price must be a positive amount with at most 2 decimals"
	}
	if len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"errors": errs})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	if _, err := h.Rooms.GetByID(ctx, req.RoomID); err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load room failed"})
	}

	sc := &model.Screening{
		RoomID:     req.RoomID,
		MovieTitle: req.MovieTitle,
		StartsAt:   startsAt.UTC(),
		EndsAt:     endsAt.UTC(),
		PriceCents: priceCents,
	}
	if err := h.Screenings.Create(ctx, sc); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create screening failed"})
	}
	return c.JSON(http.StatusCreated, adminScreeningResp{
		ID:         sc.ID,
		RoomID:     sc.RoomID,
		MovieTitle: sc.MovieTitle,
		StartsAt:   sc.StartsAt.Format(time.RFC3339),
		EndsAt:     sc.EndsAt.Format(time.RFC3339),
		Price:      sc.Price(),
	})
}

// List returns every screening, past ones included.
func (h *AdminScreeningHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	screenings, err := h.Screenings.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list screenings failed"})
	}
	out := make([]adminScreeningResp, 0, len(screenings))
	for i := range screenings {
		sc := &screenings[i]
		out = append(out, adminScreeningResp{
			ID:         sc.ID,
			RoomID:     sc.RoomID,
			MovieTitle: sc.MovieTitle,
			StartsAt:   sc.StartsAt.UTC().Format(time.RFC3339),
			EndsAt:     sc.EndsAt.UTC().Format(time.RFC3339),
			Price:      sc.Price(),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"screenings": out})
}
