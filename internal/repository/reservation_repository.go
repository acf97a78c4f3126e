package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/kinoteka/cinema-booking/internal/model"
	"github.com/kinoteka/cinema-booking/internal/service"
)

// ErrReservationNotFound is returned when a reservation lookup yields no rows.
var ErrReservationNotFound = errors.New("reservation not found")

// ReservationRepo is the durable reservation ledger.  Reservations group
// one or more seats for a screening; the booked seats live in the
// reservation_seats table.  It implements service.ReservationStore: plain
// reads for display and a transactional path for admission.  All
// timestamps are stored in UTC.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

const reservedSeatsQuery = `SELECT DISTINCT rs.seat_id
	FROM reservation_seats rs
	JOIN reservations r ON r.id = rs.reservation_id
	WHERE r.screening_id = ? AND r.status <> 'cancelled'`

// ReservedSeatIDs returns the deduplicated seat ids claimed by
// non-cancelled reservations of the screening.  Consistent read, no lock;
// the admission path uses the transactional variant instead.
func (r *ReservationRepo) ReservedSeatIDs(ctx context.Context, screeningID uint64) ([]uint64, error) {
	return scanSeatIDs(r.db.QueryContext(ctx, reservedSeatsQuery, screeningID))
}

// InTx runs fn within a single transaction.  A non-nil error from fn
// rolls back everything, including any insert fn performed; nil commits.
// Admissions for the same screening are serialized by the screening-row
// lock taken in reservationTx.ReservedSeatIDs, so of two concurrent
// conflicting bookings exactly one commits.
func (r *ReservationRepo) InTx(ctx context.Context, fn func(tx service.ReservationTx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := fn(&reservationTx{tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// GetByID loads a reservation with its seat ids.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (*model.Reservation, error) {
	const q = `SELECT id, screening_id, customer_name, customer_email, total_price_cents, status, created_at
	           FROM reservations WHERE id = ?`
	var res model.Reservation
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&res.ID, &res.ScreeningID, &res.CustomerName, &res.CustomerEmail,
		&res.TotalPriceCents, &res.Status, &res.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	const seatQ = `SELECT seat_id FROM reservation_seats WHERE reservation_id = ? ORDER BY seat_id`
	seatIDs, err := scanSeatIDs(r.db.QueryContext(ctx, seatQ, id))
	if err != nil {
		return nil, err
	}
	res.SeatIDs = seatIDs
	return &res, nil
}

// reservationTx is the transactional ledger view handed to the admission
// engine.  It wraps an open *sql.Tx; commit and rollback belong to InTx.
type reservationTx struct {
	tx *sql.Tx
}

// ReservedSeatIDs reads the claimed seat ids under a lock scoped to the
// screening.  The parent screening row is locked FOR UPDATE first:
// locking only the reservation rows would not serialize the first two
// bookings of an empty screening, since there would be nothing to lock.
// Admissions for other screenings are unaffected.
func (t *reservationTx) ReservedSeatIDs(ctx context.Context, screeningID uint64) ([]uint64, error) {
	var locked uint64
	err := t.tx.QueryRowContext(ctx,
		`SELECT id FROM screenings WHERE id = ? FOR UPDATE`, screeningID,
	).Scan(&locked)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrScreeningNotFound
		}
		return nil, err
	}
	return scanSeatIDs(t.tx.QueryContext(ctx, reservedSeatsQuery, screeningID))
}

// Insert appends the reservation and its seats.  The generated id is
// written back to the record; created_at comes from the model so the
// caller's timestamp stays authoritative.
func (t *reservationTx) Insert(ctx context.Context, res *model.Reservation) error {
	const q = `INSERT INTO reservations (screening_id, customer_name, customer_email, total_price_cents, status, created_at)
	           VALUES (?, ?, ?, ?, ?, ?)`
	result, err := t.tx.ExecContext(ctx, q,
		res.ScreeningID, res.CustomerName, res.CustomerEmail,
		res.TotalPriceCents, res.Status, res.CreatedAt.UTC().Format(dbTimeLayout),
	)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	if len(res.SeatIDs) == 0 {
		return nil
	}
	query := `INSERT INTO reservation_seats (reservation_id, screening_id, seat_id) VALUES `
	args := make([]interface{}, 0, len(res.SeatIDs)*3)
	for i, sid := range res.SeatIDs {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?)"
		args = append(args, res.ID, res.ScreeningID, sid)
	}
	_, err = t.tx.ExecContext(ctx, query, args...)
	return err
}

// scanSeatIDs collects a single-column seat id result set.
func scanSeatIDs(rows *sql.Rows, err error) ([]uint64, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ids := make([]uint64, 0)
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}
