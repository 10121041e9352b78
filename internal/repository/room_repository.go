package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/room-reservation/internal/model"
)

// RoomRepo provides CRUD operations for conference rooms.  Rooms carry
// no availability flag; the ListFree query derives a room's
// availability for a date and interval from its live reservations.
type RoomRepo struct {
	db *sql.DB
}

// NewRoomRepo returns a new RoomRepo bound to the given database.
func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

// DB exposes the underlying handle so handlers can begin transactions
// that span rooms, reservations and notifications.
func (r *RoomRepo) DB() *sql.DB { return r.db }

// ErrRoomNotFound is returned when a room id matches no row.
var ErrRoomNotFound = errors.New("room not found")

// Create inserts a room and populates the generated ID and timestamps
// on the provided model.
func (r *RoomRepo) Create(ctx context.Context, room *model.Room) error {
	const q = `INSERT INTO rooms (name, capacity, location, description) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, room.Name, room.Capacity, room.Location, room.Description)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	room.ID = uint64(id)
	const sel = `SELECT created_at, updated_at FROM rooms WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, room.ID).Scan(&room.CreatedAt, &room.UpdatedAt)
}

// Update rewrites a room's editable fields.  ErrRoomNotFound is
// returned when the id matches no row.
func (r *RoomRepo) Update(ctx context.Context, room *model.Room) error {
	const q = `UPDATE rooms SET name=?, capacity=?, location=?, description=? WHERE id=?`
	res, err := r.db.ExecContext(ctx, q, room.Name, room.Capacity, room.Location, room.Description, room.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		if _, err := r.GetByID(ctx, room.ID); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a room.  Reservations referencing the room are removed
// by the FK cascade; their notifications are cleaned up by the caller.
func (r *RoomRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM rooms WHERE id=?`, id)
	if err != nil {
		return err
	}
	return checkDeleted(res)
}

// DeleteTx is Delete inside an existing transaction, used when the
// caller cascades notification cleanup in the same unit of work.
func (r *RoomRepo) DeleteTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	res, err := tx.ExecContext(ctx, `DELETE FROM rooms WHERE id=?`, id)
	if err != nil {
		return err
	}
	return checkDeleted(res)
}

func checkDeleted(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrRoomNotFound
	}
	return nil
}

// ExistsTx verifies the room still exists, locking its row for the
// duration of the transaction.  Booking paths call it after BeginTx so
// a concurrently deleted room surfaces as ErrRoomNotFound instead of a
// foreign-key failure on insert.
func (r *RoomRepo) ExistsTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	var got uint64
	err := tx.QueryRowContext(ctx, `SELECT id FROM rooms WHERE id=? FOR UPDATE`, id).Scan(&got)
	if err == sql.ErrNoRows {
		return ErrRoomNotFound
	}
	return err
}

// GetByID fetches a single room.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (model.Room, error) {
	const q = `SELECT id, name, capacity, location, description, created_at, updated_at FROM rooms WHERE id=? LIMIT 1`
	var room model.Room
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&room.ID, &room.Name, &room.Capacity, &room.Location, &room.Description,
		&room.CreatedAt, &room.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return model.Room{}, ErrRoomNotFound
	}
	return room, err
}

// List returns all rooms ordered by name.
func (r *RoomRepo) List(ctx context.Context) ([]model.Room, error) {
	const q = `SELECT id, name, capacity, location, description, created_at, updated_at FROM rooms ORDER BY name`
	return r.scanRooms(ctx, q)
}

// ListFree returns the rooms that have no reservation overlapping the
// half-open [start, end) interval on the given date.  This is the
// derived replacement for a stored availability flag: the predicate
// r.start_time < end AND r.end_time > start mirrors the conflict check
// used when booking, so a room listed here is bookable at that moment.
func (r *RoomRepo) ListFree(ctx context.Context, date time.Time, start, end string) ([]model.Room, error) {
	const q = `SELECT ro.id, ro.name, ro.capacity, ro.location, ro.description, ro.created_at, ro.updated_at
	           FROM rooms ro
	           WHERE NOT EXISTS (
	               SELECT 1 FROM reservations re
	               WHERE re.room_id = ro.id
	                 AND re.date = ?
	                 AND re.start_time < ?
	                 AND re.end_time > ?
	           )
	           ORDER BY ro.name`
	return r.scanRooms(ctx, q, date.Format("2006-01-02"), end, start)
}

func (r *RoomRepo) scanRooms(ctx context.Context, query string, args ...interface{}) ([]model.Room, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	rooms := make([]model.Room, 0)
	for rows.Next() {
		var room model.Room
		if err := rows.Scan(
			&room.ID, &room.Name, &room.Capacity, &room.Location, &room.Description,
			&room.CreatedAt, &room.UpdatedAt,
		); err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}
