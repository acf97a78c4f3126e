package service

import (
	"context"

	"github.com/kinoteka/cinema-booking/internal/model"
)

// RoomStore persists rooms.  Update must refresh the updated_at column.
type RoomStore interface {
	Create(ctx context.Context, room *model.Room) error
	Update(ctx context.Context, room *model.Room) error
	Delete(ctx context.Context, id uint64) error
}

// SeatStore persists a room's seat set.  ReplaceForRoom atomically swaps
// the entire set: all previous seats are deleted and the new ones
// inserted in one transaction.
type SeatStore interface {
	ReplaceForRoom(ctx context.Context, roomID uint64, seats []model.Seat) ([]model.Seat, error)
}

// RoomService implements the room lifecycle: creation generates the full
// seat layout immediately, and changing either dimension regenerates it.
// Regeneration is destructive: old seat identities are gone and any
// reservation referencing them becomes stale.  That gap is deliberate.
type RoomService struct {
	rooms RoomStore
	seats SeatStore
}

// NewRoomService returns a RoomService over the given stores.
func NewRoomService(rooms RoomStore, seats SeatStore) *RoomService {
	if rooms == nil || seats == nil {
		panic("nil store passed to NewRoomService")
	}
	return &RoomService{rooms: rooms, seats: seats}
}

// CreateRoom persists a new active room and generates its seat set.
func (s *RoomService) CreateRoom(ctx context.Context, name string, rows, seatsPerRow int) (*model.Room, error) {
	room := &model.Room{
		Name:        name,
		Rows:        rows,
		SeatsPerRow: seatsPerRow,
		IsActive:    true,
	}
	if err := s.rooms.Create(ctx, room); err != nil {
		return nil, err
	}
	seats, err := s.seats.ReplaceForRoom(ctx, room.ID, model.GenerateSeats(room.ID, rows, seatsPerRow))
	if err != nil {
		return nil, err
	}
	room.Seats = seats
	return room, nil
}

// UpdateRoom applies the non-nil fields to the room.  When rows or
// seatsPerRow actually change, the whole seat set is regenerated with
// fresh identities.  It reports whether regeneration happened.
func (s *RoomService) UpdateRoom(ctx context.Context, room *model.Room, name *string, rows, seatsPerRow *int, isActive *bool) (bool, error) {
	regenerate := false
	if name != nil {
		room.Name = *name
	}
	if rows != nil && *rows != room.Rows {
		room.Rows = *rows
		regenerate = true
	}
	if seatsPerRow != nil && *seatsPerRow != room.SeatsPerRow {
		room.SeatsPerRow = *seatsPerRow
		regenerate = true
	}
	if isActive != nil {
		room.IsActive = *isActive
	}
	if err := s.rooms.Update(ctx, room); err != nil {
		return false, err
	}
	if regenerate {
		seats, err := s.seats.ReplaceForRoom(ctx, room.ID, model.GenerateSeats(room.ID, room.Rows, room.SeatsPerRow))
		if err != nil {
			return false, err
		}
		room.Seats = seats
	}
	return regenerate, nil
}

// DeleteRoom removes the room; its seats go with it via the cascade.
func (s *RoomService) DeleteRoom(ctx context.Context, room *model.Room) error {
	return s.rooms.Delete(ctx, room.ID)
}

// ActivateRoom opens the room for new screenings.
func (s *RoomService) ActivateRoom(ctx context.Context, room *model.Room) error {
	room.IsActive = true
	return s.rooms.Update(ctx, room)
}

// DeactivateRoom hides the room from the public listing.
func (s *RoomService) DeactivateRoom(ctx context.Context, room *model.Room) error {
	room.IsActive = false
	return s.rooms.Update(ctx, room)
}
