// Package queue defines message payloads exchanged over the message broker
// and the publisher/consumer pair moving them.
package queue

// ReservationConfirmedEvent is published when a booking is admitted and
// committed.  It carries enough for downstream consumers to log or notify
// without querying the primary database.
type ReservationConfirmedEvent struct {
	ReservationID uint64   `json:"reservation_id"`
	ScreeningID   uint64   `json:"screening_id"`
	RoomName      string   `json:"room_name"`
	MovieTitle    string   `json:"movie_title"`
	StartsAt      string   `json:"starts_at"`
	CustomerName  string   `json:"customer_name"`
	CustomerEmail string   `json:"customer_email"`
	SeatLabels    []string `json:"seats"`
	TotalPrice    string   `json:"total_price"`
	ConfirmedAt   string   `json:"confirmed_at"`
}
