package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kinoteka/cinema-booking/internal/model"
	"github.com/kinoteka/cinema-booking/internal/queue"
	"github.com/kinoteka/cinema-booking/internal/repository"
	"github.com/kinoteka/cinema-booking/internal/service"
)

// ScreeningStore loads a screening together with its room and seat set,
// the shape the admission engine validates against.  Satisfied by
// repository.ScreeningRepo.
type ScreeningStore interface {
	GetWithRoom(ctx context.Context, id uint64) (*model.Screening, error)
}

// ReservationHandler exposes the public booking endpoint.
type ReservationHandler struct {
	Screenings   ScreeningStore
	Reservations *service.ReservationService
}

func NewReservationHandler(screenings ScreeningStore, reservations *service.ReservationService) *ReservationHandler {
	if screenings == nil || reservations == nil {
		panic("nil dependency passed to NewReservationHandler")
	}
	return &ReservationHandler{Screenings: screenings, Reservations: reservations}
}

type createReservationReq struct {
	ScreeningID   uint64   `json:"screeningId"`
	Seats         []uint64 `json:"seats"`
	CustomerName  string   `json:"customerName"`
	CustomerEmail string   `json:"customerEmail"`
}

type screeningSummary struct {
	ID         uint64 `json:"id"`
	MovieTitle string `json:"movieTitle"`
	StartsAt   string `json:"startsAt"`
	Room       string `json:"room,omitempty"`
}

type reservationResp struct {
	ID            uint64           `json:"id"`
	Screening     screeningSummary `json:"screening"`
	CustomerName  string           `json:"customerName"`
	CustomerEmail string           `json:"customerEmail"`
	Seats         []uint64         `json:"seats"`
	SeatCount     int              `json:"seatCount"`
	TotalPrice    string           `json:"totalPrice"`
	Status        string           `json:"status"`
	CreatedAt     string           `json:"createdAt"`
}

// validate checks the request field by field and returns a map of
// field name to message; an empty map means the request is well formed.
func (r *createReservationReq) validate() map[string]string {
	errs := map[string]string{}
	if r.ScreeningID == 0 {
		errs["screeningId"] = "screeningId is required"
	}
	if len(r.Seats) == 0 {
		errs["seats"] = "at least one seat is required"
	} else {
		for _, id := range r.Seats {
			if id == 0 {
				errs["seats"] = "seat ids must be positive"
				break
			}
		}
	}
	r.CustomerName = strings.TrimSpace(r.CustomerName)
	if r.CustomerName == "" {
		errs["customerName"] = "customerName is required"
	} else if len(r.CustomerName) < 2 || len(r.CustomerName) > 255 {
		errs["customerName"] = "customerName must be between 2 and 255 characters"
	}
	r.CustomerEmail = strings.TrimSpace(r.CustomerEmail)
	if r.CustomerEmail == "" {
		errs["customerEmail"] = "customerEmail is required"
	} else if _, err := mail.ParseAddress(r.CustomerEmail); err != nil {
		errs["customerEmail"] = "customerEmail is not a valid email address"
	}
	return errs
}

// Create books seats for a screening.  The request may repeat a seat id;
// duplicates are collapsed before admission so a double-listed seat is
// charged once.  Of two concurrent requests for overlapping seats exactly
// one receives 201; the other gets 409 naming the contested seats.
func (h *ReservationHandler) Create(c echo.Context) error {
	var req createReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if errs := req.validate(); len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"errors": errs})
	}
	seatIDs := dedupIDs(req.Seats)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	screening, err := h.Screenings.GetWithRoom(ctx, req.ScreeningID)
	if err != nil {
		if errors.Is(err, repository.ErrScreeningNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "screening not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load screening failed"})
	}
	if screening.HasStarted(time.Now().UTC()) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Cannot book for past screenings"})
	}

	res, err := h.Reservations.CreateReservation(ctx, screening, seatIDs, req.CustomerName, req.CustomerEmail)
	if err != nil {
		var notAvail *service.SeatsNotAvailableError
		if errors.As(err, &notAvail) {
			return c.JSON(http.StatusConflict, echo.Map{"error": notAvail.Message})
		}
		if errors.Is(err, repository.ErrScreeningNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "screening not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create reservation failed"})
	}

	h.publishConfirmed(screening, res)

	summary := screeningSummary{
		ID:         screening.ID,
		MovieTitle: screening.MovieTitle,
		StartsAt:   screening.StartsAt.UTC().Format(time.RFC3339),
	}
	if screening.Room != nil {
		summary.Room = screening.Room.Name
	}
	return c.JSON(http.StatusCreated, reservationResp{
		ID:            res.ID,
		Screening:     summary,
		CustomerName:  res.CustomerName,
		CustomerEmail: res.CustomerEmail,
		Seats:         res.SeatIDs,
		SeatCount:     res.SeatCount(),
		TotalPrice:    res.TotalPrice(),
		Status:        res.Status,
		CreatedAt:     res.CreatedAt.UTC().Format(time.RFC3339),
	})
}

// publishConfirmed emits the reservation.confirmed event.  Best effort:
// the reservation is already committed, so failures only get logged.
func (h *ReservationHandler) publishConfirmed(screening *model.Screening, res *model.Reservation) {
	labels := make([]string, 0, len(res.SeatIDs))
	if screening.Room != nil {
		byID := make(map[uint64]model.Seat, len(screening.Room.Seats))
		for _, st := range screening.Room.Seats {
			byID[st.ID] = st
		}
		for _, id := range res.SeatIDs {
			if st, ok := byID[id]; ok {
				labels = append(labels, st.Label())
			}
		}
	}
	ev := queue.ReservationConfirmedEvent{
		ReservationID: res.ID,
		ScreeningID:   screening.ID,
		MovieTitle:    screening.MovieTitle,
		StartsAt:      screening.StartsAt.UTC().Format(time.RFC3339),
		CustomerName:  res.CustomerName,
		CustomerEmail: res.CustomerEmail,
		SeatLabels:    labels,
		TotalPrice:    res.TotalPrice(),
		ConfirmedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	if screening.Room != nil {
		ev.RoomName = screening.Room.Name
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := queue.PublishReservationConfirmed(ctx, ev); err != nil {
		log.Printf("reservation %d: publish confirmed event failed: %v", res.ID, err)
	}
}

// dedupIDs collapses duplicate ids preserving first-seen order.
func dedupIDs(ids []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(ids))
	out := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
