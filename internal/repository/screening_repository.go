package repository // repository defines data access for screenings

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/kinoteka/cinema-booking/internal/model"
)

// ErrScreeningNotFound is returned when a screening lookup yields no rows.
var ErrScreeningNotFound = errors.New("screening not found")

// ScreeningRepo provides methods to work with screenings in the database.
type ScreeningRepo struct {
	db    *sql.DB
	seats *SeatRepo
}

// NewScreeningRepo constructs a ScreeningRepo with the given DB handle.
func NewScreeningRepo(db *sql.DB) *ScreeningRepo {
	return &ScreeningRepo{db: db, seats: NewSeatRepo(db)}
}

// Create inserts a screening. On success the ID is populated.
func (r *ScreeningRepo) Create(ctx context.Context, s *model.Screening) error {
	const q = `INSERT INTO screenings (room_id, movie_title, starts_at, ends_at, price_cents)
	           VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, s.RoomID, s.MovieTitle,
		s.StartsAt.UTC().Format(dbTimeLayout), s.EndsAt.UTC().Format(dbTimeLayout), s.PriceCents)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

// GetByID retrieves a screening without loading its room.
func (r *ScreeningRepo) GetByID(ctx context.Context, id uint64) (*model.Screening, error) {
	const q = `SELECT id, room_id, movie_title, starts_at, ends_at, price_cents
	           FROM screenings WHERE id = ?`
	var s model.Screening
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&s.ID, &s.RoomID, &s.MovieTitle, &s.StartsAt, &s.EndsAt, &s.PriceCents)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrScreeningNotFound
		}
		return nil, err
	}
	return &s, nil
}

// GetWithRoom retrieves a screening together with its room and the room's
// current seat set.  This is the shape the admission engine consumes: the
// room-membership check validates the requested seat ids against exactly
// this seat set.
func (r *ScreeningRepo) GetWithRoom(ctx context.Context, id uint64) (*model.Screening, error) {
	const q = `SELECT sc.id, sc.room_id, sc.movie_title, sc.starts_at, sc.ends_at, sc.price_cents,
	                  rm.id, rm.name, rm.row_count, rm.seats_per_row, rm.is_active, rm.created_at, rm.updated_at
	           FROM screenings sc
	           JOIN rooms rm ON rm.id = sc.room_id
	           WHERE sc.id = ?`
	var s model.Screening
	var room model.Room
	var updated sql.NullTime
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&s.ID, &s.RoomID, &s.MovieTitle, &s.StartsAt, &s.EndsAt, &s.PriceCents,
		&room.ID, &room.Name, &room.Rows, &room.SeatsPerRow, &room.IsActive, &room.CreatedAt, &updated,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// The join drops screenings whose room row is gone; report those
			// as a screening without a room rather than not found.
			return r.getOrphaned(ctx, id)
		}
		return nil, err
	}
	if updated.Valid {
		t := updated.Time
		room.UpdatedAt = &t
	}
	seats, err := r.seats.GetByRoom(ctx, room.ID)
	if err != nil {
		return nil, err
	}
	room.Seats = seats
	s.Room = &room
	return &s, nil
}

// getOrphaned loads a screening whose room no longer exists.  Room stays
// nil so the admission engine rejects with "Screening has no room assigned".
func (r *ScreeningRepo) getOrphaned(ctx context.Context, id uint64) (*model.Screening, error) {
	s, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// ListUpcoming returns screenings starting after now, ordered by start
// time, each with its room (without seats) attached.
func (r *ScreeningRepo) ListUpcoming(ctx context.Context, now time.Time) ([]model.Screening, error) {
	const q = `SELECT sc.id, sc.room_id, sc.movie_title, sc.starts_at, sc.ends_at, sc.price_cents,
	                  rm.id, rm.name, rm.row_count, rm.seats_per_row, rm.is_active, rm.created_at, rm.updated_at
	           FROM screenings sc
	           JOIN rooms rm ON rm.id = sc.room_id
	           WHERE sc.starts_at > ?
	           ORDER BY sc.starts_at`
	rows, err := r.db.QueryContext(ctx, q, now.UTC().Format(dbTimeLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]model.Screening, 0)
	for rows.Next() {
		var s model.Screening
		var room model.Room
		var updated sql.NullTime
		if err := rows.Scan(
			&s.ID, &s.RoomID, &s.MovieTitle, &s.StartsAt, &s.EndsAt, &s.PriceCents,
			&room.ID, &room.Name, &room.Rows, &room.SeatsPerRow, &room.IsActive, &room.CreatedAt, &updated,
		); err != nil {
			return nil, err
		}
		if updated.Valid {
			t := updated.Time
			room.UpdatedAt = &t
		}
		s.Room = &room
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// List returns all screenings ordered by start time, rooms attached.
func (r *ScreeningRepo) List(ctx context.Context) ([]model.Screening, error) {
	return r.ListUpcoming(ctx, time.Unix(0, 0))
}

// dbTimeLayout is the DATETIME format MySQL expects for bind parameters.
const dbTimeLayout = "2006-01-02 15:04:05"
