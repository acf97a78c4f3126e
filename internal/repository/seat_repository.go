package repository // repository defines data access for seats

import (
	"context"
	"database/sql"
	"errors"

	"github.com/kinoteka/cinema-booking/internal/model"
)

// ErrSeatNotFound is returned when a seat lookup yields no rows.
var ErrSeatNotFound = errors.New("seat not found")

// SeatRepo provides methods to work with seats in the database.
type SeatRepo struct {
	db *sql.DB
}

// NewSeatRepo constructs a SeatRepo with the given DB handle.
func NewSeatRepo(db *sql.DB) *SeatRepo {
	return &SeatRepo{db: db}
}

// GetByRoom retrieves all seats of a room ordered by row_label then seat_number.
func (r *SeatRepo) GetByRoom(ctx context.Context, roomID uint64) ([]model.Seat, error) {
	const q = `SELECT id, room_id, row_label, seat_number, created_at
	           FROM seats
	           WHERE room_id = ?
	           ORDER BY row_label, seat_number`
	rows, err := r.db.QueryContext(ctx, q, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Seat
	for rows.Next() {
		var s model.Seat
		if err := rows.Scan(&s.ID, &s.RoomID, &s.RowLabel, &s.SeatNumber, &s.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID retrieves a seat by its id.
func (r *SeatRepo) GetByID(ctx context.Context, id uint64) (*model.Seat, error) {
	const q = `SELECT id, room_id, row_label, seat_number, created_at
	           FROM seats WHERE id = ?`
	var s model.Seat
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&s.ID, &s.RoomID, &s.RowLabel, &s.SeatNumber, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSeatNotFound
		}
		return nil, err
	}
	return &s, nil
}

// ReplaceForRoom atomically swaps the room's seat set: every existing
// seat row is deleted and the provided seats are inserted in one bulk
// statement inside a single transaction.  Old seat identities do not
// survive; callers rely on that when regenerating a layout.  The
// returned seats carry their freshly assigned ids.
func (r *SeatRepo) ReplaceForRoom(ctx context.Context, roomID uint64, seats []model.Seat) ([]model.Seat, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if _, err := tx.ExecContext(ctx, `DELETE FROM seats WHERE room_id = ?`, roomID); err != nil {
		return nil, err
	}
	if len(seats) > 0 {
		query := `INSERT INTO seats (room_id, row_label, seat_number) VALUES `
		args := make([]interface{}, 0, len(seats)*3)
		for i, s := range seats {
			if i > 0 {
				query += ","
			}
			query += "(?, ?, ?)"
			args = append(args, roomID, s.RowLabel, s.SeatNumber)
		}
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return nil, err
		}
		// MySQL assigns consecutive ids for a multi-row insert; the first
		// LastInsertId anchors the range.
		first, err := res.LastInsertId()
		if err != nil {
			return nil, err
		}
		for i := range seats {
			seats[i].ID = uint64(first) + uint64(i)
			seats[i].RoomID = roomID
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return seats, nil
}
