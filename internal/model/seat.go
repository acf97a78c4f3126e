package model

import (
	"strconv"
	"time"
)

// Seat is a single bookable position inside a room.  A seat belongs to
// exactly one room and is deleted together with it.  The pair
// (RoomID, RowLabel, SeatNumber) is unique.
type Seat struct {
	ID         uint64    // seats.id
	RoomID     uint64    // seats.room_id
	RowLabel   string    // seats.row_label, e.g. A, B, AA
	SeatNumber int       // seats.seat_number (1-based within the row)
	CreatedAt  time.Time // seats.created_at
}

// Label is the display name of the seat, e.g. "C7".
func (s *Seat) Label() string {
	return s.RowLabel + strconv.Itoa(s.SeatNumber)
}
