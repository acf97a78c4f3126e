package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kinoteka/cinema-booking/internal/model"
	"github.com/kinoteka/cinema-booking/internal/repository"
	"github.com/kinoteka/cinema-booking/internal/service"
)

// AdminRoomHandler manages rooms and their generated seat layouts.
// Routes behind it require an ADMIN token.
type AdminRoomHandler struct {
	Rooms *repository.RoomRepo
	Seats *repository.SeatRepo
	Svc   *service.RoomService
}

func NewAdminRoomHandler(rooms *repository.RoomRepo, seats *repository.SeatRepo, svc *service.RoomService) *AdminRoomHandler {
	if rooms == nil || seats == nil || svc == nil {
		panic("nil dependency passed to NewAdminRoomHandler")
	}
	return &AdminRoomHandler{Rooms: rooms, Seats: seats, Svc: svc}
}

type createRoomReq struct {
	Name        string `json:"name"`
	Rows        int    `json:"rows"`
	SeatsPerRow int    `json:"seatsPerRow"`
}

type updateRoomReq struct {
	Name        *string `json:"name"`
	Rows        *int    `json:"rows"`
	SeatsPerRow *int    `json:"seatsPerRow"`
	IsActive    *bool   `json:"isActive"`
}

type adminRoomResp struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Rows        int    `json:"rows"`
	SeatsPerRow int    `json:"seatsPerRow"`
	TotalSeats  int    `json:"totalSeats"`
	IsActive    bool   `json:"isActive"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}

func toAdminRoomResp(r *model.Room) adminRoomResp {
	resp := adminRoomResp{
		ID:          r.ID,
		Name:        r.Name,
		Rows:        r.Rows,
		SeatsPerRow: r.SeatsPerRow,
		TotalSeats:  r.TotalSeats(),
		IsActive:    r.IsActive,
		CreatedAt:   r.CreatedAt.UTC().Format(time.RFC3339),
	}
	if r.UpdatedAt != nil {
		resp.UpdatedAt = r.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return resp
}

// List returns all rooms, inactive ones included.
func (h *AdminRoomHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rooms, err := h.Rooms.List(ctx, false)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list rooms failed"})
	}
	out := make([]adminRoomResp, 0, len(rooms))
	for i := range rooms {
		out = append(out, toAdminRoomResp(&rooms[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"rooms": out})
}

// Create persists a room and generates its full seat layout in one go.
func (h *AdminRoomHandler) Create(c echo.Context) error {
	var req createRoomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if errs := validateRoomDims(req.Name, req.Rows, req.SeatsPerRow); len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"errors": errs})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	room, err := h.Svc.CreateRoom(ctx, req.Name, req.Rows, req.SeatsPerRow)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create room failed"})
	}
	return c.JSON(http.StatusCreated, toAdminRoomResp(room))
}

// Get returns a room with its seat layout.
func (h *AdminRoomHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	room, err := h.Rooms.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load room failed"})
	}
	seats, err := h.Seats.GetByRoom(ctx, room.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load seats failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"room": toAdminRoomResp(room), "seats": toAdminSeats(seats)})
}

// adminSeatResp is the layout view of a seat.  Availability is a
// per-screening notion and has no meaning on a room.
type adminSeatResp struct {
	ID     uint64 `json:"id"`
	Row    string `json:"row"`
	Number int    `json:"number"`
	Label  string `json:"label"`
}

func toAdminSeats(seats []model.Seat) []adminSeatResp {
	out := make([]adminSeatResp, 0, len(seats))
	for _, st := range seats {
		out = append(out, adminSeatResp{ID: st.ID, Row: st.RowLabel, Number: st.SeatNumber, Label: st.Label()})
	}
	return out
}

// Update applies the provided fields.  Changing either dimension
// regenerates the seat layout with fresh identities; the response
// reports whether that happened so the caller knows old seat ids are
// dead.
func (h *AdminRoomHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	var req updateRoomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	errs := map[string]string{}
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		if trimmed == "" {
			errs["name"] = "name must not be empty"
		} else if len(trimmed) > 100 {
			errs["name"] = "name must be at most 100 characters"
		}
		req.Name = &trimmed
	}
	if req.Rows != nil && *req.Rows < 1 {
		errs["rows"] = "rows must be at least 1"
	}
	if req.SeatsPerRow != nil && *req.SeatsPerRow < 1 {
		errs["seatsPerRow"] = "seatsPerRow must be at least 1"
	}
	if len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"errors": errs})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	room, err := h.Rooms.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load room failed"})
	}

	regenerated, err := h.Svc.UpdateRoom(ctx, room, req.Name, req.Rows, req.SeatsPerRow, req.IsActive)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update room failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"room":             toAdminRoomResp(room),
		"seatsRegenerated": regenerated,
	})
}

// Delete removes a room; seats cascade away with it.
func (h *AdminRoomHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	room, err := h.Rooms.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load room failed"})
	}
	if err := h.Svc.DeleteRoom(ctx, room); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete room failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

func validateRoomDims(name string, rows, seatsPerRow int) map[string]string {
	errs := map[string]string{}
	if name == "" {
		errs["name"] = "name is required"
	} else if len(name) > 100 {
		errs["name"] = "name must be at most 100 characters"
	}
	if rows < 1 {
		errs["rows"] = "rows must be at least 1"
	}
	if seatsPerRow < 1 {
		errs["seatsPerRow"] = "seatsPerRow must be at least 1"
	}
	return errs
}

func parseID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}
