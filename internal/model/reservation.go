package model

import "time"

// Reservation statuses.  A reservation is created as pending, though the
// booking flow confirms in the same transaction, so callers never observe
// the pending window.  Cancelled reservations release their seats.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// Reservation records a customer's booking of one or more seats for a
// screening.  SeatIDs reference seats of the screening's room; they are
// weak references and are re-validated against the room's current seat
// set at admission time.  The invariant maintained by the admission
// engine: across all non-cancelled reservations of a screening, seat id
// sets are pairwise disjoint.
//
// Fields:
//
//	ID              – primary key identifier.
//	ScreeningID     – screening being booked.
//	CustomerName    – name given at booking time.
//	CustomerEmail   – contact email given at booking time.
//	SeatIDs         – non-empty set of booked seat identities.
//	TotalPriceCents – screening price times seat count, in cents.
//	Status          – pending, confirmed or cancelled.
//	CreatedAt       – creation timestamp.
type Reservation struct {
	ID              uint64    // reservations.id
	ScreeningID     uint64    // reservations.screening_id
	CustomerName    string    // reservations.customer_name
	CustomerEmail   string    // reservations.customer_email
	SeatIDs         []uint64  // reservation_seats rows
	TotalPriceCents int64     // reservations.total_price_cents
	Status          string    // reservations.status
	CreatedAt       time.Time // reservations.created_at
}

// NewReservation returns a pending reservation created now (UTC).
func NewReservation(screeningID uint64, seatIDs []uint64, name, email string, totalCents int64) *Reservation {
	return &Reservation{
		ScreeningID:     screeningID,
		CustomerName:    name,
		CustomerEmail:   email,
		SeatIDs:         seatIDs,
		TotalPriceCents: totalCents,
		Status:          StatusPending,
		CreatedAt:       time.Now().UTC(),
	}
}

// Confirm marks the reservation confirmed.
func (r *Reservation) Confirm() {
	r.Status = StatusConfirmed
}

// Cancel marks the reservation cancelled, releasing its seats for rebooking.
func (r *Reservation) Cancel() {
	r.Status = StatusCancelled
}

// SeatCount returns the number of seats in the reservation.
func (r *Reservation) SeatCount() int {
	return len(r.SeatIDs)
}

// TotalPrice returns the total as a 2-decimal string, e.g. "50.00".
func (r *Reservation) TotalPrice() string {
	return FormatPrice(r.TotalPriceCents)
}
