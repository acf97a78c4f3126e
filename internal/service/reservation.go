// Package service implements the booking domain logic on top of the
// repository layer: the reservation admission engine, the seat
// availability resolver and the room lifecycle operations.
package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/kinoteka/cinema-booking/internal/model"
)

// SeatsNotAvailableError rejects a booking whose seats cannot be granted:
// the seat is outside the screening's room, already claimed by a
// non-cancelled reservation, or the screening has no room at all.  The
// message text is part of the API contract and is returned verbatim.
type SeatsNotAvailableError struct {
	Message string
}

func (e *SeatsNotAvailableError) Error() string { return e.Message }

// ReservationTx is the transactional view of the reservation ledger used
// during admission.  ReservedSeatIDs must read under a lock scoped to the
// screening so that concurrent admissions for the same screening are
// serialized; Insert appends the new reservation and its seats.
type ReservationTx interface {
	ReservedSeatIDs(ctx context.Context, screeningID uint64) ([]uint64, error)
	Insert(ctx context.Context, res *model.Reservation) error
}

// ReservationStore is the durable reservation ledger.  InTx runs fn
// inside one transaction: a non-nil error from fn rolls everything back,
// nil commits.  ReservedSeatIDs outside InTx is a plain consistent read
// used for display.
type ReservationStore interface {
	ReservedSeatIDs(ctx context.Context, screeningID uint64) ([]uint64, error)
	InTx(ctx context.Context, fn func(tx ReservationTx) error) error
}

// ReservationService is the admission engine.  It validates a requested
// seat set against the screening's room, checks availability under the
// ledger lock and commits the reservation atomically.
type ReservationService struct {
	store ReservationStore
}

// NewReservationService returns a ReservationService backed by the given ledger.
func NewReservationService(store ReservationStore) *ReservationService {
	if store == nil {
		panic("nil store passed to NewReservationService")
	}
	return &ReservationService{store: store}
}

// CreateReservation admits a booking for the given screening and seat set.
// The screening must be loaded with its room and the room's seat set.
// On success the reservation is durably committed with status confirmed;
// on any failure nothing is persisted.  Conflicting concurrent requests
// for overlapping seats are serialized by the ledger: exactly one wins,
// the loser receives a SeatsNotAvailableError.
func (s *ReservationService) CreateReservation(ctx context.Context, screening *model.Screening, seatIDs []uint64, customerName, customerEmail string) (*model.Reservation, error) {
	if !s.AreSeatIDsValid(seatIDs) {
		return nil, &SeatsNotAvailableError{Message: "No valid seat IDs provided"}
	}
	if err := s.ValidateSeatsBelongToRoom(screening, seatIDs); err != nil {
		return nil, err
	}
	res := model.NewReservation(screening.ID, seatIDs, customerName, customerEmail, screening.PriceCents*int64(len(seatIDs)))
	res.Confirm()
	err := s.store.InTx(ctx, func(tx ReservationTx) error {
		reserved, err := tx.ReservedSeatIDs(ctx, screening.ID)
		if err != nil {
			return err
		}
		if conflict := intersect(seatIDs, reserved); len(conflict) > 0 {
			return &SeatsNotAvailableError{
				Message: fmt.Sprintf("Seats are already reserved: %s", joinIDs(conflict)),
			}
		}
		return tx.Insert(ctx, res)
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// ValidateSeatsBelongToRoom checks that every requested seat id belongs to
// the screening's room.  A screening without a room rejects everything.
func (s *ReservationService) ValidateSeatsBelongToRoom(screening *model.Screening, seatIDs []uint64) error {
	if screening.Room == nil {
		return &SeatsNotAvailableError{Message: "Screening has no room assigned"}
	}
	roomSeats := make(map[uint64]struct{}, len(screening.Room.Seats))
	for _, st := range screening.Room.Seats {
		roomSeats[st.ID] = struct{}{}
	}
	var invalid []uint64
	for _, id := range seatIDs {
		if _, ok := roomSeats[id]; !ok {
			invalid = append(invalid, id)
		}
	}
	if len(invalid) > 0 {
		return &SeatsNotAvailableError{
			Message: fmt.Sprintf("Invalid seat IDs for this room: %s", joinIDs(invalid)),
		}
	}
	return nil
}

// ValidateSeatsAvailable checks the requested seats against the current
// ledger without locking.  The admission path performs its own
// authoritative check inside the transaction; this variant serves
// pre-flight checks and tests.
func (s *ReservationService) ValidateSeatsAvailable(ctx context.Context, screening *model.Screening, seatIDs []uint64) error {
	reserved, err := s.store.ReservedSeatIDs(ctx, screening.ID)
	if err != nil {
		return err
	}
	if conflict := intersect(seatIDs, reserved); len(conflict) > 0 {
		return &SeatsNotAvailableError{
			Message: fmt.Sprintf("Seats are already reserved: %s", joinIDs(conflict)),
		}
	}
	return nil
}

// AreSeatIDsValid reports whether the seat id set is non-empty with all
// ids positive.  Duplicate removal is the handler's job.
func (s *ReservationService) AreSeatIDsValid(seatIDs []uint64) bool {
	if len(seatIDs) == 0 {
		return false
	}
	for _, id := range seatIDs {
		if id == 0 {
			return false
		}
	}
	return true
}

// CalculateTotalPrice multiplies the screening's per-seat price by the
// seat count and renders a 2-decimal string.  Cents arithmetic keeps the
// result exact for any seat count.
func (s *ReservationService) CalculateTotalPrice(screening *model.Screening, seatCount int) string {
	return model.FormatPrice(screening.PriceCents * int64(seatCount))
}

// ReservedSeatIDs returns the deduplicated union of seat ids over all
// non-cancelled reservations of the screening.  Set semantics; order is
// not significant.
func (s *ReservationService) ReservedSeatIDs(ctx context.Context, screening *model.Screening) ([]uint64, error) {
	return s.store.ReservedSeatIDs(ctx, screening.ID)
}

// AvailableSeatIDs returns the room's seat ids minus the reserved set.
// Display only: admission redoes the check under the ledger lock.  A
// screening without a room yields an empty set.
func (s *ReservationService) AvailableSeatIDs(ctx context.Context, screening *model.Screening) ([]uint64, error) {
	if screening.Room == nil {
		return []uint64{}, nil
	}
	reserved, err := s.store.ReservedSeatIDs(ctx, screening.ID)
	if err != nil {
		return nil, err
	}
	taken := make(map[uint64]struct{}, len(reserved))
	for _, id := range reserved {
		taken[id] = struct{}{}
	}
	avail := make([]uint64, 0, len(screening.Room.Seats))
	for _, st := range screening.Room.Seats {
		if _, ok := taken[st.ID]; !ok {
			avail = append(avail, st.ID)
		}
	}
	return avail, nil
}

// intersect returns the ids present in both slices.
func intersect(a, b []uint64) []uint64 {
	set := make(map[uint64]struct{}, len(b))
	for _, id := range b {
		set[id] = struct{}{}
	}
	var out []uint64
	for _, id := range a {
		if _, ok := set[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

// joinIDs renders ids as a sorted, comma separated list for error messages.
func joinIDs(ids []uint64) string {
	sorted := make([]uint64, len(ids))
	copy(sorted, ids)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	parts := make([]string, len(sorted))
	for i, id := range sorted {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return strings.Join(parts, ", ")
}
