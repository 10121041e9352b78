package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/room-reservation/internal/model"
	"github.com/iliyamo/room-reservation/internal/queue"
	"github.com/iliyamo/room-reservation/internal/repository"
	"github.com/iliyamo/room-reservation/internal/schedule"
	queue_publisher "github.com/iliyamo/room-reservation/internal/service"
)

// ReservationHandler implements the self-service reservation lifecycle:
// create, edit, cancel and list, always scoped to the authenticated
// member's own rows.  Every mutation runs its conflict check and its
// writes inside one transaction so validation and commit appear atomic:
// two concurrent bookings of the same window serialize on the room's
// locked rows and the second request sees the first one's reservation.
type ReservationHandler struct {
	Rooms         *repository.RoomRepo
	Reservations  *repository.ReservationRepo
	Notifications *repository.NotificationRepo
}

// NewReservationHandler constructs a ReservationHandler.  All
// dependencies must be non-nil.
func NewReservationHandler(rooms *repository.RoomRepo, reservations *repository.ReservationRepo, notifications *repository.NotificationRepo) *ReservationHandler {
	if rooms == nil || reservations == nil || notifications == nil {
		panic("nil repository passed to NewReservationHandler")
	}
	return &ReservationHandler{Rooms: rooms, Reservations: reservations, Notifications: notifications}
}

type createReservationReq struct {
	RoomID uint64 `json:"room_id"`
	slotRequest
}

// bookedMessage renders the notification text for a fresh booking.
func bookedMessage(roomName string, date time.Time, start, end string) string {
	return fmt.Sprintf("%s on %s from %s to %s has been reserved.",
		roomName, date.Format("2006-01-02"), start, end)
}

// Create handles POST /v1/reservations.  On success it persists the
// reservation and a notification for the booking user in one
// transaction, then publishes a booked event (best effort).  A slot
// that overlaps an existing reservation for the room and date yields
// 409; one that merely abuts never does.
func (h *ReservationHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.RoomID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "room_id is required"})
	}
	date, iv, err := parseSlot(req.slotRequest)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx := c.Request().Context()
	room, err := h.Rooms.GetByID(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load room"})
	}

	res, status, errMap := h.book(ctx, room, userID, date, iv, false)
	if errMap != nil {
		return c.JSON(status, errMap)
	}

	start, end := clockRange(iv)
	return c.JSON(http.StatusCreated, echo.Map{
		"id":         res.ID,
		"room_id":    room.ID,
		"room_name":  room.Name,
		"user_id":    userID,
		"date":       date.Format("2006-01-02"),
		"start_time": start,
		"end_time":   end,
		"created_at": res.CreatedAt.UTC().Format(time.RFC3339),
	})
}

// book runs the shared validate-and-commit sequence used by both the
// self-service and staff booking paths: lock the room's reservations
// for the date, test the interval against each of them, insert the
// reservation plus its notification, commit, publish.  It returns the
// created reservation, or an HTTP status and error body.
func (h *ReservationHandler) book(ctx context.Context, room model.Room, userID uint64, date time.Time, iv schedule.Interval, byStaff bool) (*model.Reservation, int, echo.Map) {
	tx, err := h.Reservations.DB().BeginTx(ctx, nil)
	if err != nil {
		return nil, http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"}
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// The pre-transaction room lookup only shaped the response; the row
	// must still exist now that we hold the transaction.
	if err := h.Rooms.ExistsTx(ctx, tx, room.ID); err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return nil, http.StatusNotFound, echo.Map{"error": "room not found"}
		}
		return nil, http.StatusInternalServerError, echo.Map{"error": "failed to load room"}
	}

	if err := h.Reservations.EnsureFreeTx(ctx, tx, room.ID, date, iv, 0); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, http.StatusConflict, echo.Map{"error": "room is already reserved at the selected time"}
		}
		return nil, http.StatusInternalServerError, echo.Map{"error": "failed to check availability"}
	}

	start, end := clockRange(iv)
	res := &model.Reservation{
		RoomID:    room.ID,
		UserID:    userID,
		Date:      date,
		StartTime: schedule.FormatClock(iv.Start),
		EndTime:   schedule.FormatClock(iv.End),
	}
	if err := h.Reservations.CreateTx(ctx, tx, res); err != nil {
		return nil, http.StatusInternalServerError, echo.Map{"error": "failed to create reservation"}
	}
	msg := bookedMessage(room.Name, date, start, end)
	if err := h.Notifications.CreateTx(ctx, tx, userID, res.ID, msg); err != nil {
		return nil, http.StatusInternalServerError, echo.Map{"error": "failed to create notification"}
	}
	if err := tx.Commit(); err != nil {
		return nil, http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"}
	}
	committed = true

	// Best effort: a dead broker must not fail the booking.
	_ = queue_publisher.PublishReservationEvent(ctx, queue.ReservationEvent{
		Kind:          queue.KindBooked,
		ReservationID: res.ID,
		RoomID:        room.ID,
		RoomName:      room.Name,
		UserID:        userID,
		Date:          date.Format("2006-01-02"),
		StartTime:     start,
		EndTime:       end,
		ByStaff:       byStaff,
		OccurredAt:    time.Now().UTC().Format(time.RFC3339),
	})
	return res, 0, nil
}

// ListMine handles GET /v1/my-reservations.
func (h *ReservationHandler) ListMine(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	details, err := h.Reservations.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservations"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": details})
}

// Get handles GET /v1/reservations/:id.  Members only see their own
// rows: a reservation held by someone else yields 403, a missing id 404.
func (h *ReservationHandler) Get(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	resID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || resID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	det, err := h.Reservations.GetDetailByID(c.Request().Context(), resID)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch reservation"})
	}
	if det.UserID != userID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": det})
}

// Update handles PUT /v1/reservations/:id.  Only the owning member may
// reschedule, the conflict check excludes the reservation itself (so
// re-submitting the unchanged slot succeeds), and room and notification
// are left untouched.
func (h *ReservationHandler) Update(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	resID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || resID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	var req slotRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	date, iv, err := parseSlot(req)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx := c.Request().Context()
	tx, err := h.Reservations.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	existing, err := h.Reservations.GetOwnedTx(ctx, tx, resID, userID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrReservationNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservation"})
	}

	if err := h.Reservations.EnsureFreeTx(ctx, tx, existing.RoomID, date, iv, resID); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "room is already reserved at the selected time"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to check availability"})
	}
	if err := h.Reservations.UpdateSlotTx(ctx, tx, resID, date, schedule.FormatClock(iv.Start), schedule.FormatClock(iv.End)); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update reservation"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	start, end := clockRange(iv)
	return c.JSON(http.StatusOK, echo.Map{
		"id":         resID,
		"room_id":    existing.RoomID,
		"user_id":    userID,
		"date":       date.Format("2006-01-02"),
		"start_time": start,
		"end_time":   end,
	})
}

// Delete handles DELETE /v1/reservations/:id.  Only the owning member
// may cancel through this path.  Notifications referencing the
// reservation are deleted first, then the reservation, in one
// transaction; afterwards the id resolves to 404.
func (h *ReservationHandler) Delete(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	resID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || resID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}

	ctx := c.Request().Context()
	status, errMap := h.cancel(ctx, resID, &userID)
	if errMap != nil {
		return c.JSON(status, errMap)
	}
	return c.NoContent(http.StatusNoContent)
}

// cancel deletes a reservation and its notifications in one
// transaction.  When ownerID is non-nil the reservation must belong to
// that user; staff cancellation passes nil and skips the check.
func (h *ReservationHandler) cancel(ctx context.Context, resID uint64, ownerID *uint64) (int, echo.Map) {
	tx, err := h.Reservations.DB().BeginTx(ctx, nil)
	if err != nil {
		return http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"}
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var existing model.Reservation
	if ownerID != nil {
		existing, err = h.Reservations.GetOwnedTx(ctx, tx, resID, *ownerID)
	} else {
		existing, err = h.Reservations.GetTx(ctx, tx, resID)
	}
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrReservationNotFound):
			return http.StatusNotFound, echo.Map{"error": "reservation not found"}
		case errors.Is(err, repository.ErrForbidden):
			return http.StatusForbidden, echo.Map{"error": "forbidden"}
		}
		return http.StatusInternalServerError, echo.Map{"error": "failed to load reservation"}
	}

	// Cascade is an explicit lifecycle step: notifications first, then
	// the reservation itself.
	if err := h.Notifications.DeleteByReservationTx(ctx, tx, resID); err != nil {
		return http.StatusInternalServerError, echo.Map{"error": "failed to delete notifications"}
	}
	if err := h.Reservations.DeleteTx(ctx, tx, resID); err != nil {
		return http.StatusInternalServerError, echo.Map{"error": "failed to delete reservation"}
	}
	if err := tx.Commit(); err != nil {
		return http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"}
	}
	committed = true

	_ = queue_publisher.PublishReservationEvent(ctx, queue.ReservationEvent{
		Kind:          queue.KindCancelled,
		ReservationID: existing.ID,
		RoomID:        existing.RoomID,
		UserID:        existing.UserID,
		Date:          existing.Date.Format("2006-01-02"),
		StartTime:     trimStored(existing.StartTime),
		EndTime:       trimStored(existing.EndTime),
		ByStaff:       ownerID == nil,
		OccurredAt:    time.Now().UTC().Format(time.RFC3339),
	})
	return 0, nil
}

// trimStored shortens a stored "HH:MM:SS" time to "HH:MM".
func trimStored(s string) string {
	if len(s) >= 5 {
		return s[:5]
	}
	return s
}
