package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/room-reservation/internal/model"
	"github.com/iliyamo/room-reservation/internal/repository"
)

type roomReq struct {
	Name        string `json:"name"`
	Capacity    int64  `json:"capacity"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

func (r roomReq) validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name is required")
	}
	if r.Capacity <= 0 {
		return errors.New("capacity must be a positive number")
	}
	return nil
}

// toModel builds the Room row; empty optional fields become NULL.
func (r roomReq) toModel(id uint64) model.Room {
	room := model.Room{
		ID:       id,
		Name:     strings.TrimSpace(r.Name),
		Capacity: uint32(r.Capacity),
	}
	if loc := strings.TrimSpace(r.Location); loc != "" {
		room.Location = &loc
	}
	if desc := strings.TrimSpace(r.Description); desc != "" {
		room.Description = &desc
	}
	return room
}

// CreateRoom handles POST /v1/rooms.
func (h *StaffHandler) CreateRoom(c echo.Context) error {
	var req roomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := req.validate(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	room := req.toModel(0)
	if err := h.Rooms.Create(c.Request().Context(), &room); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create room"})
	}
	return c.JSON(http.StatusCreated, toRoomResp(room))
}

// UpdateRoom handles PUT /v1/rooms/:id.  The body carries the full
// replacement state.
func (h *StaffHandler) UpdateRoom(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	var req roomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := req.validate(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	room := req.toModel(id)
	if err := h.Rooms.Update(c.Request().Context(), &room); err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update room"})
	}
	return c.JSON(http.StatusOK, toRoomResp(room))
}

// DeleteRoom handles DELETE /v1/rooms/:id.  Notifications tied to
// the room's reservations are deleted in the same transaction; the
// reservations themselves fall to the FK cascade when the room row goes.
func (h *StaffHandler) DeleteRoom(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}

	ctx := c.Request().Context()
	tx, err := h.Rooms.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := h.Notifications.DeleteByRoomTx(ctx, tx, id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete notifications"})
	}
	if err := h.Rooms.DeleteTx(ctx, tx, id); err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete room"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true
	return c.NoContent(http.StatusNoContent)
}
