package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/room-reservation/internal/model"
)

// NotificationRepo provides persistence for user notifications.  A
// notification is written in the same transaction as its reservation,
// and DeleteByReservationTx runs before the reservation's own delete so
// the cascade stays an explicit application step.
type NotificationRepo struct {
	db *sql.DB
}

// NewNotificationRepo returns a new NotificationRepo bound to the given database.
func NewNotificationRepo(db *sql.DB) *NotificationRepo { return &NotificationRepo{db: db} }

// CreateTx inserts a notification within an existing transaction.
func (r *NotificationRepo) CreateTx(ctx context.Context, tx *sql.Tx, userID, reservationID uint64, message string) error {
	const q = `INSERT INTO notifications (user_id, reservation_id, message) VALUES (?, ?, ?)`
	_, err := tx.ExecContext(ctx, q, userID, reservationID, message)
	return err
}

// DeleteByReservationTx removes every notification referencing the
// reservation.  Called on cancellation before the reservation row is
// deleted.
func (r *NotificationRepo) DeleteByReservationTx(ctx context.Context, tx *sql.Tx, reservationID uint64) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM notifications WHERE reservation_id = ?`, reservationID)
	return err
}

// DeleteByRoomTx removes every notification referencing any reservation
// of the room.  Called before a room delete so the FK cascade on
// reservations leaves no dangling notifications behind.
func (r *NotificationRepo) DeleteByRoomTx(ctx context.Context, tx *sql.Tx, roomID uint64) error {
	const q = `DELETE FROM notifications
	           WHERE reservation_id IN (SELECT id FROM reservations WHERE room_id = ?)`
	_, err := tx.ExecContext(ctx, q, roomID)
	return err
}

// ListByUser returns a user's notifications, newest first.
func (r *NotificationRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Notification, error) {
	const q = `SELECT id, user_id, reservation_id, message, is_read, created_at
	           FROM notifications WHERE user_id = ? ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]model.Notification, 0)
	for rows.Next() {
		var (
			n     model.Notification
			resID sql.NullInt64
		)
		if err := rows.Scan(&n.ID, &n.UserID, &resID, &n.Message, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, err
		}
		if resID.Valid {
			rid := uint64(resID.Int64)
			n.ReservationID = &rid
		}
		items = append(items, n)
	}
	return items, rows.Err()
}

// MarkRead flags a notification as read.  The update is scoped to the
// owning user, so a foreign id behaves like a missing one and returns
// sql.ErrNoRows.
func (r *NotificationRepo) MarkRead(ctx context.Context, id, userID uint64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// distinguish "already read" from "not yours / missing"
		var exists bool
		err := r.db.QueryRowContext(ctx,
			`SELECT TRUE FROM notifications WHERE id = ? AND user_id = ? LIMIT 1`, id, userID).Scan(&exists)
		if err != nil {
			return err
		}
	}
	return nil
}
