package handler

import (
	"database/sql"
	"net/http"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/room-reservation/internal/repository"
)

// flowHandler builds a ReservationHandler over a mocked database so the
// SQL a lifecycle operation issues can be asserted statement by
// statement, in order.
func flowHandler(t *testing.T) (*ReservationHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewReservationHandler(
		repository.NewRoomRepo(db),
		repository.NewReservationRepo(db),
		repository.NewNotificationRepo(db),
	), mock
}

func reservationRow(id, roomID, userID uint64) *sqlmock.Rows {
	return sqlmock.NewRows(
		[]string{"id", "room_id", "user_id", "date", "start_time", "end_time", "created_at"},
	).AddRow(id, roomID, userID, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), "09:00:00", "10:00:00", time.Now())
}

// Cancelling must delete the notifications referencing the reservation
// before the reservation itself, inside one transaction.
func TestCancelRemovesReservationAndNotifications(t *testing.T) {
	h, mock := flowHandler(t)
	const owner = uint64(9)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id, room_id, user_id, date, start_time, end_time, created_at FROM reservations").
		WithArgs(uint64(5)).
		WillReturnRows(reservationRow(5, 3, owner))
	mock.ExpectExec("DELETE FROM notifications WHERE reservation_id").
		WithArgs(uint64(5)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM reservations").
		WithArgs(uint64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	c, rec := newTestContext(t, http.MethodDelete, "/v1/reservations/5", "", owner)
	c.SetParamNames("id")
	c.SetParamValues("5")
	assert.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A cancelled reservation's id must resolve to 404 on lookup.
func TestCancelledReservationLookupNotFound(t *testing.T) {
	h, mock := flowHandler(t)

	mock.ExpectQuery("FROM reservations re").
		WithArgs(uint64(5)).
		WillReturnError(sql.ErrNoRows)

	c, rec := newTestContext(t, http.MethodGet, "/v1/reservations/5", "", uint64(9))
	c.SetParamNames("id")
	c.SetParamValues("5")
	assert.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "reservation not found")
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Cancelling another member's reservation rolls back with 403 without
// touching notifications or the reservation row.
func TestCancelForeignReservationForbidden(t *testing.T) {
	h, mock := flowHandler(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id, room_id, user_id, date, start_time, end_time, created_at FROM reservations").
		WithArgs(uint64(5)).
		WillReturnRows(reservationRow(5, 3, 9))
	mock.ExpectRollback()

	c, rec := newTestContext(t, http.MethodDelete, "/v1/reservations/5", "", uint64(2))
	c.SetParamNames("id")
	c.SetParamValues("5")
	assert.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A room deleted between the pre-flight lookup and the booking
// transaction surfaces as 404, not as an insert failure.
func TestCreateReturnsNotFoundWhenRoomVanishes(t *testing.T) {
	h, mock := flowHandler(t)

	roomCols := []string{"id", "name", "capacity", "location", "description", "created_at", "updated_at"}
	mock.ExpectQuery("FROM rooms WHERE id").
		WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows(roomCols).
			AddRow(3, "Board Room", 8, nil, nil, time.Now(), time.Now()))
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM rooms").
		WithArgs(uint64(3)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	c, rec := newTestContext(t, http.MethodPost, "/v1/reservations",
		`{"room_id":3,"date":"2024-06-01","start_time":"09:00","end_time":"10:00"}`, uint64(9))
	assert.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "room not found")
	assert.NoError(t, mock.ExpectationsWereMet())
}
