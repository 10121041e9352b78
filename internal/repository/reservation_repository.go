package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/room-reservation/internal/model"
	"github.com/iliyamo/room-reservation/internal/schedule"
)

// ReservationRepo provides persistence for reservations.  Booking,
// rescheduling and cancellation all run inside a caller-owned
// transaction so the conflict check and the write commit atomically;
// ConflictExistsTx locks the room's rows for the date, which serializes
// two concurrent bookings of the same window and lets the loser see the
// winner's row.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// DB exposes the underlying handle for handlers that begin transactions.
func (r *ReservationRepo) DB() *sql.DB { return r.db }

// ErrReservationNotFound is returned when a reservation id matches no row.
var ErrReservationNotFound = errors.New("reservation not found")

// ConflictExistsTx reports whether any live reservation for the room on
// the date overlaps the candidate interval.  excludeID, when non-zero,
// names a reservation to ignore so an edit never conflicts with itself.
// The rows are read FOR UPDATE: within the surrounding transaction no
// concurrent booking for the same room and date can slip past the check.
func (r *ReservationRepo) ConflictExistsTx(ctx context.Context, tx *sql.Tx, roomID uint64, date time.Time, candidate schedule.Interval, excludeID uint64) (bool, error) {
	const q = `SELECT id, start_time, end_time FROM reservations
	           WHERE room_id = ? AND date = ? FOR UPDATE`
	rows, err := tx.QueryContext(ctx, q, roomID, date.Format("2006-01-02"))
	if err != nil {
		return false, err
	}
	defer rows.Close()
	existing := make([]schedule.Interval, 0, 4)
	for rows.Next() {
		var (
			id         uint64
			start, end string
		)
		if err := rows.Scan(&id, &start, &end); err != nil {
			return false, err
		}
		if excludeID != 0 && id == excludeID {
			continue
		}
		iv, err := intervalFromStored(start, end)
		if err != nil {
			return false, err
		}
		existing = append(existing, iv)
	}
	if err := rows.Err(); err != nil {
		return false, err
	}
	return schedule.ConflictsAny(candidate, existing), nil
}

// EnsureFreeTx is ConflictExistsTx expressed as a guard: it returns
// ErrConflict when the candidate interval overlaps a live reservation.
func (r *ReservationRepo) EnsureFreeTx(ctx context.Context, tx *sql.Tx, roomID uint64, date time.Time, candidate schedule.Interval, excludeID uint64) error {
	conflict, err := r.ConflictExistsTx(ctx, tx, roomID, date, candidate, excludeID)
	if err != nil {
		return err
	}
	if conflict {
		return ErrConflict
	}
	return nil
}

func intervalFromStored(start, end string) (schedule.Interval, error) {
	s, err := schedule.ParseClock(start)
	if err != nil {
		return schedule.Interval{}, err
	}
	e, err := schedule.ParseClock(end)
	if err != nil {
		return schedule.Interval{}, err
	}
	return schedule.Interval{Start: s, End: e}, nil
}

// CreateTx inserts a reservation within an existing transaction and
// populates the generated ID and CreatedAt on the provided record.  The
// caller must have run ConflictExistsTx in the same transaction first.
func (r *ReservationRepo) CreateTx(ctx context.Context, tx *sql.Tx, res *model.Reservation) error {
	const q = `INSERT INTO reservations (room_id, user_id, date, start_time, end_time) VALUES (?, ?, ?, ?, ?)`
	result, err := tx.ExecContext(ctx, q,
		res.RoomID, res.UserID, res.Date.Format("2006-01-02"), res.StartTime, res.EndTime)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	const sel = `SELECT created_at FROM reservations WHERE id = ?`
	return tx.QueryRowContext(ctx, sel, res.ID).Scan(&res.CreatedAt)
}

// GetTx loads a reservation by id within a transaction, locking the row
// so edit and cancel decisions are made against current state.
func (r *ReservationRepo) GetTx(ctx context.Context, tx *sql.Tx, id uint64) (model.Reservation, error) {
	const q = `SELECT id, room_id, user_id, date, start_time, end_time, created_at
	           FROM reservations WHERE id = ? FOR UPDATE`
	var res model.Reservation
	err := tx.QueryRowContext(ctx, q, id).Scan(
		&res.ID, &res.RoomID, &res.UserID, &res.Date, &res.StartTime, &res.EndTime, &res.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return model.Reservation{}, ErrReservationNotFound
	}
	return res, err
}

// GetOwnedTx loads a reservation like GetTx and additionally enforces
// ownership: a row held by another user yields ErrForbidden.
func (r *ReservationRepo) GetOwnedTx(ctx context.Context, tx *sql.Tx, id, ownerID uint64) (model.Reservation, error) {
	res, err := r.GetTx(ctx, tx, id)
	if err != nil {
		return model.Reservation{}, err
	}
	if res.UserID != ownerID {
		return model.Reservation{}, ErrForbidden
	}
	return res, nil
}

// UpdateSlotTx moves a reservation to a new date and interval in place.
// Room and owner never change on edit.
func (r *ReservationRepo) UpdateSlotTx(ctx context.Context, tx *sql.Tx, id uint64, date time.Time, startTime, endTime string) error {
	const q = `UPDATE reservations SET date=?, start_time=?, end_time=? WHERE id=?`
	_, err := tx.ExecContext(ctx, q, date.Format("2006-01-02"), startTime, endTime, id)
	return err
}

// DeleteTx removes a reservation.  Its notifications must be deleted
// first by the caller in the same transaction.
func (r *ReservationRepo) DeleteTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	res, err := tx.ExecContext(ctx, `DELETE FROM reservations WHERE id=?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrReservationNotFound
	}
	return nil
}

// ReservationDetail is a reservation joined with its room and holder,
// as returned to clients.  Times are trimmed to "HH:MM".
type ReservationDetail struct {
	ID        uint64 `json:"id"`
	RoomID    uint64 `json:"room_id"`
	RoomName  string `json:"room_name"`
	UserID    uint64 `json:"user_id"`
	Username  string `json:"username"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	CreatedAt string `json:"created_at"`
}

const detailSelect = `SELECT re.id, re.room_id, ro.name, re.user_id, u.username,
	       re.date, re.start_time, re.end_time, re.created_at
	FROM reservations re
	JOIN rooms ro ON ro.id = re.room_id
	JOIN users u ON u.id = re.user_id`

// GetDetailByID returns a single reservation with room and user info.
// Ownership is not checked here; callers decide whether the requesting
// principal may see the row.
func (r *ReservationRepo) GetDetailByID(ctx context.Context, id uint64) (ReservationDetail, error) {
	row := r.db.QueryRowContext(ctx, detailSelect+` WHERE re.id = ?`, id)
	det, err := scanDetail(row)
	if err == sql.ErrNoRows {
		return ReservationDetail{}, ErrReservationNotFound
	}
	return det, err
}

// ListByUser returns all reservations held by a user, newest slot first.
func (r *ReservationRepo) ListByUser(ctx context.Context, userID uint64) ([]ReservationDetail, error) {
	const order = ` WHERE re.user_id = ? ORDER BY re.date DESC, re.start_time DESC`
	return r.listDetails(ctx, detailSelect+order, userID)
}

// ListAll returns every reservation, newest slot first.  Staff only.
func (r *ReservationRepo) ListAll(ctx context.Context) ([]ReservationDetail, error) {
	const order = ` ORDER BY re.date DESC, re.start_time DESC`
	return r.listDetails(ctx, detailSelect+order)
}

func (r *ReservationRepo) listDetails(ctx context.Context, query string, args ...interface{}) ([]ReservationDetail, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]ReservationDetail, 0)
	for rows.Next() {
		det, err := scanDetail(rows)
		if err != nil {
			return nil, err
		}
		details = append(details, det)
	}
	return details, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDetail(row rowScanner) (ReservationDetail, error) {
	var (
		det       ReservationDetail
		date      time.Time
		createdAt time.Time
	)
	if err := row.Scan(
		&det.ID, &det.RoomID, &det.RoomName, &det.UserID, &det.Username,
		&date, &det.StartTime, &det.EndTime, &createdAt,
	); err != nil {
		return ReservationDetail{}, err
	}
	det.Date = date.Format("2006-01-02")
	det.StartTime = trimClock(det.StartTime)
	det.EndTime = trimClock(det.EndTime)
	det.CreatedAt = createdAt.UTC().Format(time.RFC3339)
	return det, nil
}

// trimClock shortens "HH:MM:SS" to "HH:MM" for responses.
func trimClock(s string) string {
	if len(s) == 8 && s[5:] == ":00" {
		return s[:5]
	}
	return s
}
