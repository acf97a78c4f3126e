package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinoteka/cinema-booking/internal/model"
)

// fakeLedger is an in-memory ReservationStore.  A single mutex plays the
// role of the screening-row lock: InTx holds it for the whole admission,
// so concurrent admissions serialize exactly like they do against MySQL.
type fakeLedger struct {
	mu           sync.Mutex
	nextID       uint64
	reservations []*model.Reservation
}

func newFakeLedger() *fakeLedger { return &fakeLedger{nextID: 1} }

func (f *fakeLedger) reservedLocked(screeningID uint64) []uint64 {
	seen := map[uint64]struct{}{}
	out := []uint64{}
	for _, r := range f.reservations {
		if r.ScreeningID != screeningID || r.Status == model.StatusCancelled {
			continue
		}
		for _, id := range r.SeatIDs {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}

func (f *fakeLedger) ReservedSeatIDs(_ context.Context, screeningID uint64) ([]uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reservedLocked(screeningID), nil
}

func (f *fakeLedger) InTx(_ context.Context, fn func(tx ReservationTx) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	tx := &fakeLedgerTx{ledger: f}
	if err := fn(tx); err != nil {
		return err
	}
	for _, r := range tx.staged {
		r.ID = f.nextID
		f.nextID++
		f.reservations = append(f.reservations, r)
	}
	return nil
}

type fakeLedgerTx struct {
	ledger *fakeLedger
	staged []*model.Reservation
}

func (t *fakeLedgerTx) ReservedSeatIDs(_ context.Context, screeningID uint64) ([]uint64, error) {
	return t.ledger.reservedLocked(screeningID), nil
}

func (t *fakeLedgerTx) Insert(_ context.Context, res *model.Reservation) error {
	t.staged = append(t.staged, res)
	return nil
}

func testScreening() *model.Screening {
	room := &model.Room{ID: 1, Name: "Sala 1", Rows: 2, SeatsPerRow: 3, IsActive: true}
	seats := model.GenerateSeats(room.ID, room.Rows, room.SeatsPerRow)
	for i := range seats {
		seats[i].ID = uint64(i + 1) // ids 1..6
	}
	room.Seats = seats
	return &model.Screening{
		ID:         10,
		RoomID:     room.ID,
		MovieTitle: "Oppenheimer",
		PriceCents: 2500,
		Room:       room,
	}
}

func TestCreateReservationConfirmsAndPrices(t *testing.T) {
	svc := NewReservationService(newFakeLedger())
	sc := testScreening()

	res, err := svc.CreateReservation(context.Background(), sc, []uint64{1, 2, 3}, "Jan", "jan@example.com")
	require.NoError(t, err)

	assert.Equal(t, model.StatusConfirmed, res.Status)
	assert.Equal(t, 3, res.SeatCount())
	assert.Equal(t, "75.00", res.TotalPrice())
	assert.NotZero(t, res.ID)
}

func TestCreateReservationRejectsEmptyAndZeroSeats(t *testing.T) {
	svc := NewReservationService(newFakeLedger())
	sc := testScreening()

	_, err := svc.CreateReservation(context.Background(), sc, nil, "Jan", "jan@example.com")
	var notAvail *SeatsNotAvailableError
	require.ErrorAs(t, err, &notAvail)

	_, err = svc.CreateReservation(context.Background(), sc, []uint64{1, 0}, "Jan", "jan@example.com")
	require.ErrorAs(t, err, &notAvail)
}

func TestCreateReservationRejectsForeignSeats(t *testing.T) {
	svc := NewReservationService(newFakeLedger())
	sc := testScreening()

	_, err := svc.CreateReservation(context.Background(), sc, []uint64{1, 100, 99}, "Jan", "jan@example.com")
	var notAvail *SeatsNotAvailableError
	require.ErrorAs(t, err, &notAvail)
	assert.Equal(t, "Invalid seat IDs for this room: 99, 100", notAvail.Message)
}

func TestCreateReservationRejectsRoomlessScreening(t *testing.T) {
	svc := NewReservationService(newFakeLedger())
	sc := testScreening()
	sc.Room = nil

	_, err := svc.CreateReservation(context.Background(), sc, []uint64{1}, "Jan", "jan@example.com")
	var notAvail *SeatsNotAvailableError
	require.ErrorAs(t, err, &notAvail)
	assert.Equal(t, "Screening has no room assigned", notAvail.Message)
}

func TestCreateReservationConflictNamesSeats(t *testing.T) {
	ledger := newFakeLedger()
	svc := NewReservationService(ledger)
	sc := testScreening()

	_, err := svc.CreateReservation(context.Background(), sc, []uint64{2, 3}, "First", "first@example.com")
	require.NoError(t, err)

	_, err = svc.CreateReservation(context.Background(), sc, []uint64{3, 2, 4}, "Second", "second@example.com")
	var notAvail *SeatsNotAvailableError
	require.ErrorAs(t, err, &notAvail)
	assert.Equal(t, "Seats are already reserved: 2, 3", notAvail.Message)

	// The losing request must not have persisted anything.
	reserved, err := ledger.ReservedSeatIDs(context.Background(), sc.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint64{2, 3}, reserved)
}

func TestCancelledSeatsAreRebookable(t *testing.T) {
	ledger := newFakeLedger()
	svc := NewReservationService(ledger)
	sc := testScreening()

	res, err := svc.CreateReservation(context.Background(), sc, []uint64{5}, "First", "first@example.com")
	require.NoError(t, err)
	res.Cancel()

	_, err = svc.CreateReservation(context.Background(), sc, []uint64{5}, "Second", "second@example.com")
	require.NoError(t, err)
}

func TestAvailableSeatIDs(t *testing.T) {
	ledger := newFakeLedger()
	svc := NewReservationService(ledger)
	sc := testScreening()

	avail, err := svc.AvailableSeatIDs(context.Background(), sc)
	require.NoError(t, err)
	assert.Len(t, avail, 6)

	_, err = svc.CreateReservation(context.Background(), sc, []uint64{1, 6}, "Jan", "jan@example.com")
	require.NoError(t, err)

	avail, err = svc.AvailableSeatIDs(context.Background(), sc)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint64{2, 3, 4, 5}, avail)

	sc.Room = nil
	avail, err = svc.AvailableSeatIDs(context.Background(), sc)
	require.NoError(t, err)
	assert.Empty(t, avail)
}

func TestValidateSeatsAvailable(t *testing.T) {
	ledger := newFakeLedger()
	svc := NewReservationService(ledger)
	sc := testScreening()

	require.NoError(t, svc.ValidateSeatsAvailable(context.Background(), sc, []uint64{1, 2}))

	_, err := svc.CreateReservation(context.Background(), sc, []uint64{2, 3}, "Jan", "jan@example.com")
	require.NoError(t, err)

	err = svc.ValidateSeatsAvailable(context.Background(), sc, []uint64{1, 2, 3})
	var notAvail *SeatsNotAvailableError
	require.ErrorAs(t, err, &notAvail)
	assert.Equal(t, "Seats are already reserved: 2, 3", notAvail.Message)
}

func TestCalculateTotalPrice(t *testing.T) {
	svc := NewReservationService(newFakeLedger())
	sc := testScreening()

	assert.Equal(t, "25.00", svc.CalculateTotalPrice(sc, 1))
	assert.Equal(t, "75.00", svc.CalculateTotalPrice(sc, 3))

	sc.PriceCents = 1999
	assert.Equal(t, "39.98", svc.CalculateTotalPrice(sc, 2))
}

// Two concurrent requests for overlapping seats: exactly one commits,
// regardless of scheduling.
func TestConcurrentOverlappingAdmissions(t *testing.T) {
	for i := 0; i < 100; i++ {
		ledger := newFakeLedger()
		svc := NewReservationService(ledger)
		sc := testScreening()

		var wg sync.WaitGroup
		errs := make([]error, 2)
		for g := 0; g < 2; g++ {
			wg.Add(1)
			go func(g int) {
				defer wg.Done()
				seats := []uint64{1, 2}
				if g == 1 {
					seats = []uint64{2, 3}
				}
				_, errs[g] = svc.CreateReservation(context.Background(), sc, seats, "Racer", "racer@example.com")
			}(g)
		}
		wg.Wait()

		var failures int
		for _, err := range errs {
			if err != nil {
				var notAvail *SeatsNotAvailableError
				require.ErrorAs(t, err, &notAvail)
				failures++
			}
		}
		require.Equal(t, 1, failures, "exactly one of two overlapping requests must lose")

		reserved, err := ledger.ReservedSeatIDs(context.Background(), sc.ID)
		require.NoError(t, err)
		require.Len(t, reserved, 2)
	}
}

// Full booking scenario: browse, book, collide, rebook elsewhere.
func TestBookingScenario(t *testing.T) {
	ledger := newFakeLedger()
	svc := NewReservationService(ledger)
	sc := testScreening()

	first, err := svc.CreateReservation(context.Background(), sc, []uint64{1, 2, 3}, "Anna", "anna@example.com")
	require.NoError(t, err)
	assert.Equal(t, "75.00", first.TotalPrice())

	_, err = svc.CreateReservation(context.Background(), sc, []uint64{3, 4}, "Piotr", "piotr@example.com")
	var notAvail *SeatsNotAvailableError
	require.ErrorAs(t, err, &notAvail)
	assert.Equal(t, "Seats are already reserved: 3", notAvail.Message)

	second, err := svc.CreateReservation(context.Background(), sc, []uint64{4, 5}, "Piotr", "piotr@example.com")
	require.NoError(t, err)
	assert.Equal(t, "50.00", second.TotalPrice())

	avail, err := svc.AvailableSeatIDs(context.Background(), sc)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint64{6}, avail)
}
