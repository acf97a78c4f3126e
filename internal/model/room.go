package model

import "time"

// Room is a cinema auditorium with a fixed rectangular seat layout.
// The layout is fully described by Rows and SeatsPerRow; the seat set
// itself is owned by the room and regenerated whenever either dimension
// changes.  Regeneration assigns fresh seat identities, so reservations
// referencing the old seats become stale on purpose.
//
// Fields:
//
//	ID          – primary key identifier.
//	Name        – display name, 1-100 characters.
//	Rows        – number of seating rows (> 0).
//	SeatsPerRow – number of seats in every row (> 0).
//	IsActive    – whether the room is open for new screenings.
//	CreatedAt   – creation timestamp.
//	UpdatedAt   – last update timestamp (nil until the first update).
type Room struct {
	ID          uint64     // rooms.id
	Name        string     // rooms.name
	Rows        int        // rooms.row_count
	SeatsPerRow int        // rooms.seats_per_row
	IsActive    bool       // rooms.is_active
	CreatedAt   time.Time  // rooms.created_at
	UpdatedAt   *time.Time // rooms.updated_at (nullable)
	Seats       []Seat     // loaded on demand, ordered by row then number
}

// TotalSeats is always derived from the dimensions, never stored.
func (r *Room) TotalSeats() int {
	return r.Rows * r.SeatsPerRow
}

// SeatIDs returns the identities of the room's current seat set in load order.
func (r *Room) SeatIDs() []uint64 {
	ids := make([]uint64, 0, len(r.Seats))
	for _, s := range r.Seats {
		ids = append(ids, s.ID)
	}
	return ids
}
