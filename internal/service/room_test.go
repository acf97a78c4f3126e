package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinoteka/cinema-booking/internal/model"
)

type fakeRoomStore struct {
	nextID  uint64
	rooms   map[uint64]*model.Room
	deleted []uint64
}

func newFakeRoomStore() *fakeRoomStore {
	return &fakeRoomStore{nextID: 1, rooms: map[uint64]*model.Room{}}
}

func (f *fakeRoomStore) Create(_ context.Context, room *model.Room) error {
	room.ID = f.nextID
	f.nextID++
	room.CreatedAt = time.Now().UTC()
	cp := *room
	f.rooms[room.ID] = &cp
	return nil
}

func (f *fakeRoomStore) Update(_ context.Context, room *model.Room) error {
	now := time.Now().UTC()
	room.UpdatedAt = &now
	cp := *room
	f.rooms[room.ID] = &cp
	return nil
}

func (f *fakeRoomStore) Delete(_ context.Context, id uint64) error {
	delete(f.rooms, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeSeatStore struct {
	nextID   uint64
	byRoom   map[uint64][]model.Seat
	replaces int
}

func newFakeSeatStore() *fakeSeatStore {
	return &fakeSeatStore{nextID: 1, byRoom: map[uint64][]model.Seat{}}
}

func (f *fakeSeatStore) ReplaceForRoom(_ context.Context, roomID uint64, seats []model.Seat) ([]model.Seat, error) {
	f.replaces++
	for i := range seats {
		seats[i].ID = f.nextID
		f.nextID++
		seats[i].RoomID = roomID
	}
	f.byRoom[roomID] = seats
	return seats, nil
}

func TestCreateRoomGeneratesLayout(t *testing.T) {
	rooms := newFakeRoomStore()
	seats := newFakeSeatStore()
	svc := NewRoomService(rooms, seats)

	room, err := svc.CreateRoom(context.Background(), "Sala 1", 5, 10)
	require.NoError(t, err)

	assert.True(t, room.IsActive)
	assert.Equal(t, 50, room.TotalSeats())
	require.Len(t, room.Seats, 50)
	assert.Equal(t, "A1", room.Seats[0].Label())
	assert.Equal(t, "E10", room.Seats[49].Label())
	assert.Equal(t, 1, seats.replaces)
}

func TestUpdateRoomNameOnlyKeepsSeats(t *testing.T) {
	rooms := newFakeRoomStore()
	seats := newFakeSeatStore()
	svc := NewRoomService(rooms, seats)

	room, err := svc.CreateRoom(context.Background(), "Sala 1", 5, 10)
	require.NoError(t, err)
	before := seats.replaces

	name := "Sala 1 - Standard"
	regenerated, err := svc.UpdateRoom(context.Background(), room, &name, nil, nil, nil)
	require.NoError(t, err)

	assert.False(t, regenerated)
	assert.Equal(t, "Sala 1 - Standard", room.Name)
	assert.Equal(t, before, seats.replaces)
}

func TestUpdateRoomDimensionChangeRegenerates(t *testing.T) {
	rooms := newFakeRoomStore()
	seats := newFakeSeatStore()
	svc := NewRoomService(rooms, seats)

	room, err := svc.CreateRoom(context.Background(), "Sala 2", 5, 8)
	require.NoError(t, err)
	oldFirstSeat := room.Seats[0].ID

	newRows := 6
	regenerated, err := svc.UpdateRoom(context.Background(), room, nil, &newRows, nil, nil)
	require.NoError(t, err)

	assert.True(t, regenerated)
	require.Len(t, room.Seats, 48)
	// Regeneration is destructive: no old identity survives.
	assert.NotEqual(t, oldFirstSeat, room.Seats[0].ID)
}

func TestUpdateRoomSameDimensionsNoRegeneration(t *testing.T) {
	rooms := newFakeRoomStore()
	seats := newFakeSeatStore()
	svc := NewRoomService(rooms, seats)

	room, err := svc.CreateRoom(context.Background(), "Sala 3", 5, 8)
	require.NoError(t, err)

	sameRows, samePerRow := 5, 8
	regenerated, err := svc.UpdateRoom(context.Background(), room, nil, &sameRows, &samePerRow, nil)
	require.NoError(t, err)
	assert.False(t, regenerated)
}

func TestActivateDeactivateRoom(t *testing.T) {
	rooms := newFakeRoomStore()
	seats := newFakeSeatStore()
	svc := NewRoomService(rooms, seats)

	room, err := svc.CreateRoom(context.Background(), "Sala 4", 2, 2)
	require.NoError(t, err)

	require.NoError(t, svc.DeactivateRoom(context.Background(), room))
	assert.False(t, room.IsActive)

	require.NoError(t, svc.ActivateRoom(context.Background(), room))
	assert.True(t, room.IsActive)
}

func TestDeleteRoom(t *testing.T) {
	rooms := newFakeRoomStore()
	seats := newFakeSeatStore()
	svc := NewRoomService(rooms, seats)

	room, err := svc.CreateRoom(context.Background(), "Sala 5", 2, 2)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteRoom(context.Background(), room))
	assert.Equal(t, []uint64{room.ID}, rooms.deleted)
}
