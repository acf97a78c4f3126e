package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kinoteka/cinema-booking/internal/model"
	"github.com/kinoteka/cinema-booking/internal/repository"
	"github.com/kinoteka/cinema-booking/internal/service"
)

// PublicHandler serves the unauthenticated browse endpoints: room and
// screening listings plus the per-seat availability view customers pick
// seats from.
type PublicHandler struct {
	Rooms        *repository.RoomRepo
	Screenings   *repository.ScreeningRepo
	Reservations *service.ReservationService
}

func NewPublicHandler(rooms *repository.RoomRepo, screenings *repository.ScreeningRepo, reservations *service.ReservationService) *PublicHandler {
	if rooms == nil || screenings == nil || reservations == nil {
		panic("nil dependency passed to NewPublicHandler")
	}
	return &PublicHandler{Rooms: rooms, Screenings: screenings, Reservations: reservations}
}

type roomResp struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Rows        int    `json:"rows"`
	SeatsPerRow int    `json:"seatsPerRow"`
	TotalSeats  int    `json:"totalSeats"`
}

// ListRooms returns active rooms.  totalSeats is derived from the
// dimensions, never stored.
func (h *PublicHandler) ListRooms(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rooms, err := h.Rooms.List(ctx, true)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list rooms failed"})
	}
	out := make([]roomResp, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, roomResp{
			ID:          r.ID,
			Name:        r.Name,
			Rows:        r.Rows,
			SeatsPerRow: r.SeatsPerRow,
			TotalSeats:  r.TotalSeats(),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"rooms": out})
}

type screeningListItem struct {
	ID             uint64 `json:"id"`
	MovieTitle     string `json:"movieTitle"`
	StartsAt       string `json:"startsAt"`
	EndsAt         string `json:"endsAt"`
	Price          string `json:"price"`
	Room           string `json:"room"`
	TotalSeats     int    `json:"totalSeats"`
	AvailableSeats int    `json:"availableSeats"`
}

// ListScreenings returns upcoming screenings with a remaining-seat count.
// The count is a consistent read of the ledger; it can go stale the
// moment it is rendered, which is why admission re-checks under the lock.
func (h *PublicHandler) ListScreenings(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	screenings, err := h.Screenings.ListUpcoming(ctx, time.Now().UTC())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list screenings failed"})
	}
	out := make([]screeningListItem, 0, len(screenings))
	for i := range screenings {
		sc := &screenings[i]
		reserved, err := h.Reservations.ReservedSeatIDs(ctx, sc)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load availability failed"})
		}
		total := 0
		roomName := ""
		if sc.Room != nil {
			total = sc.Room.TotalSeats()
			roomName = sc.Room.Name
		}
		out = append(out, screeningListItem{
			ID:             sc.ID,
			MovieTitle:     sc.MovieTitle,
			StartsAt:       sc.StartsAt.UTC().Format(time.RFC3339),
			EndsAt:         sc.EndsAt.UTC().Format(time.RFC3339),
			Price:          sc.Price(),
			Room:           roomName,
			TotalSeats:     total,
			AvailableSeats: total - len(reserved),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"screenings": out})
}

type seatAvailability struct {
	ID        uint64 `json:"id"`
	Row       string `json:"row"`
	Number    int    `json:"number"`
	Label     string `json:"label"`
	Available bool   `json:"available"`
}

type screeningDetailResp struct {
	ID             uint64             `json:"id"`
	MovieTitle     string             `json:"movieTitle"`
	StartsAt       string             `json:"startsAt"`
	EndsAt         string             `json:"endsAt"`
	Price          string             `json:"price"`
	Room           *roomResp          `json:"room"`
	Seats          []seatAvailability `json:"seats"`
	AvailableSeats int                `json:"availableSeats"`
}

// GetScreening returns one screening with the full seat map and a
// per-seat availability flag.
func (h *PublicHandler) GetScreening(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid screening id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	sc, err := h.Screenings.GetWithRoom(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrScreeningNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "screening not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load screening failed"})
	}

	reserved, err := h.Reservations.ReservedSeatIDs(ctx, sc)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load availability failed"})
	}
	taken := make(map[uint64]struct{}, len(reserved))
	for _, sid := range reserved {
		taken[sid] = struct{}{}
	}

	resp := screeningDetailResp{
		ID:         sc.ID,
		MovieTitle: sc.MovieTitle,
		StartsAt:   sc.StartsAt.UTC().Format(time.RFC3339),
		EndsAt:     sc.EndsAt.UTC().Format(time.RFC3339),
		Price:      sc.Price(),
		Seats:      []seatAvailability{},
	}
	if sc.Room != nil {
		resp.Room = &roomResp{
			ID:          sc.Room.ID,
			Name:        sc.Room.Name,
			Rows:        sc.Room.Rows,
			SeatsPerRow: sc.Room.SeatsPerRow,
			TotalSeats:  sc.Room.TotalSeats(),
		}
		resp.Seats = seatMap(sc.Room.Seats, taken)
		for _, st := range resp.Seats {
			if st.Available {
				resp.AvailableSeats++
			}
		}
	}
	return c.JSON(http.StatusOK, resp)
}

func seatMap(seats []model.Seat, taken map[uint64]struct{}) []seatAvailability {
	out := make([]seatAvailability, 0, len(seats))
	for _, st := range seats {
		_, isTaken := taken[st.ID]
		out = append(out, seatAvailability{
			ID:        st.ID,
			Row:       st.RowLabel,
			Number:    st.SeatNumber,
			Label:     st.Label(),
			Available: !isTaken,
		})
	}
	return out
}
