package model

import "time"

// Screening is a scheduled showing of a movie in a room.  Many screenings
// may share a room and the system deliberately allows them to overlap in
// time.  The room outlives its screenings; deleting a screening never
// touches the room.
//
// Fields:
//
//	ID         – primary key identifier.
//	RoomID     – room where the screening takes place.
//	MovieTitle – title being shown.
//	StartsAt   – when the screening begins (must precede EndsAt).
//	EndsAt     – when the screening ends.
//	PriceCents – per-seat price in cents; formatted to a 2-decimal
//	             string only at the API boundary.
type Screening struct {
	ID         uint64    // screenings.id
	RoomID     uint64    // screenings.room_id
	MovieTitle string    // screenings.movie_title
	StartsAt   time.Time // screenings.starts_at
	EndsAt     time.Time // screenings.ends_at
	PriceCents int64     // screenings.price_cents
	Room       *Room     // loaded on demand; nil when the room is missing
}

// Price returns the per-seat price as a 2-decimal string, e.g. "25.00".
func (s *Screening) Price() string {
	return FormatPrice(s.PriceCents)
}

// HasStarted reports whether the screening start time has passed at now.
func (s *Screening) HasStarted(now time.Time) bool {
	return !s.StartsAt.After(now)
}
