package repository // repository defines data access for rooms

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/kinoteka/cinema-booking/internal/model"
)

// ErrRoomNotFound is returned when a room lookup yields no rows.
var ErrRoomNotFound = errors.New("room not found")

// RoomRepo provides methods to work with rooms in the database.
type RoomRepo struct {
	db *sql.DB
}

// NewRoomRepo constructs a RoomRepo with the given DB handle.
func NewRoomRepo(db *sql.DB) *RoomRepo {
	return &RoomRepo{db: db}
}

// DB exposes the underlying handle for callers that need to open
// transactions spanning multiple repositories.
func (r *RoomRepo) DB() *sql.DB { return r.db }

// Create inserts a room. On success the ID and CreatedAt are populated.
func (r *RoomRepo) Create(ctx context.Context, room *model.Room) error {
	const q = `INSERT INTO rooms (name, row_count, seats_per_row, is_active)
	           VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, room.Name, room.Rows, room.SeatsPerRow, room.IsActive)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	room.ID = uint64(id)
	// Query back the row to populate the DB-side creation timestamp.
	const sel = `SELECT created_at FROM rooms WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, room.ID).Scan(&room.CreatedAt)
}

// GetByID retrieves a room by its id without loading seats.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (*model.Room, error) {
	const q = `SELECT id, name, row_count, seats_per_row, is_active, created_at, updated_at
	           FROM rooms WHERE id = ?`
	var room model.Room
	var updated sql.NullTime
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&room.ID, &room.Name, &room.Rows, &room.SeatsPerRow, &room.IsActive, &room.CreatedAt, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	if updated.Valid {
		t := updated.Time
		room.UpdatedAt = &t
	}
	return &room, nil
}

// List returns all rooms ordered by id.  When activeOnly is set, inactive
// rooms are filtered out.
func (r *RoomRepo) List(ctx context.Context, activeOnly bool) ([]model.Room, error) {
	q := `SELECT id, name, row_count, seats_per_row, is_active, created_at, updated_at
	      FROM rooms`
	if activeOnly {
		q += ` WHERE is_active = 1`
	}
	q += ` ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]model.Room, 0)
	for rows.Next() {
		var room model.Room
		var updated sql.NullTime
		if err := rows.Scan(&room.ID, &room.Name, &room.Rows, &room.SeatsPerRow,
			&room.IsActive, &room.CreatedAt, &updated); err != nil {
			return nil, err
		}
		if updated.Valid {
			t := updated.Time
			room.UpdatedAt = &t
		}
		result = append(result, room)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update persists name, dimensions and active flag.  The updated_at
// refresh is an explicit part of this statement, not a trigger, and the
// new value is written back to the model.
func (r *RoomRepo) Update(ctx context.Context, room *model.Room) error {
	const q = `UPDATE rooms
	           SET name = ?, row_count = ?, seats_per_row = ?, is_active = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, room.Name, room.Rows, room.SeatsPerRow, room.IsActive, room.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// RowsAffected is 0 both for a missing row and for a no-op update;
		// distinguish by re-reading.
		if _, err := r.GetByID(ctx, room.ID); err != nil {
			return err
		}
	}
	now := time.Now().UTC()
	room.UpdatedAt = &now
	return nil
}

// Delete removes a room; seats cascade via the FK.
func (r *RoomRepo) Delete(ctx context.Context, id uint64) error {
	const q = `DELETE FROM rooms WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRoomNotFound
	}
	return nil
}
