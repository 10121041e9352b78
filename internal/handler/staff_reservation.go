package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/room-reservation/internal/model"
	"github.com/iliyamo/room-reservation/internal/repository"
)

// ListReservations handles GET /v1/reservations for staff: every
// reservation in the system, with room and member names joined in.
func (h *StaffHandler) ListReservations(c echo.Context) error {
	details, err := h.Reservations.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservations"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": details})
}

type staffReservationReq struct {
	UserID uint64 `json:"user_id"`
	RoomID uint64 `json:"room_id"`
	slotRequest
}

// CreateReservation handles POST /v1/staff/reservations: a booking made
// on behalf of a member.  The target must be an existing member account;
// the notification goes to the member, not the acting staff user.  The
// conflict rule is the same interval intersection as self-service
// booking.
func (h *StaffHandler) CreateReservation(c echo.Context) error {
	var req staffReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.UserID == 0 || req.RoomID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_id and room_id are required"})
	}
	date, iv, err := parseSlot(req.slotRequest)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx := c.Request().Context()
	target, err := h.Users.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load user"})
	}
	if target.Role != model.RoleMember {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}

	room, err := h.Rooms.GetByID(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load room"})
	}

	res, status, errMap := h.res.book(ctx, room, target.ID, date, iv, true)
	if errMap != nil {
		return c.JSON(status, errMap)
	}

	start, end := clockRange(iv)
	return c.JSON(http.StatusCreated, echo.Map{
		"id":         res.ID,
		"room_id":    room.ID,
		"room_name":  room.Name,
		"user_id":    target.ID,
		"username":   target.Username,
		"date":       date.Format("2006-01-02"),
		"start_time": start,
		"end_time":   end,
		"created_at": res.CreatedAt.UTC().Format(time.RFC3339),
	})
}

// CancelReservation handles DELETE /v1/staff/reservations/:id.  Staff
// may cancel any member's reservation; there is no ownership check.
func (h *StaffHandler) CancelReservation(c echo.Context) error {
	resID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || resID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	status, errMap := h.res.cancel(c.Request().Context(), resID, nil)
	if errMap != nil {
		return c.JSON(status, errMap)
	}
	return c.NoContent(http.StatusNoContent)
}
