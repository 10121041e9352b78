package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/room-reservation/internal/model"
	"github.com/iliyamo/room-reservation/internal/repository"
	"github.com/iliyamo/room-reservation/internal/schedule"
)

// RoomHandler serves the read-only room endpoints available to every
// authenticated user.  Staff mutation endpoints live on StaffHandler.
type RoomHandler struct {
	Rooms *repository.RoomRepo
}

func NewRoomHandler(rooms *repository.RoomRepo) *RoomHandler {
	if rooms == nil {
		panic("nil repository passed to NewRoomHandler")
	}
	return &RoomHandler{Rooms: rooms}
}

// roomResp is the JSON shape of a room.
type roomResp struct {
	ID          uint64  `json:"id"`
	Name        string  `json:"name"`
	Capacity    uint32  `json:"capacity"`
	Location    *string `json:"location,omitempty"`
	Description *string `json:"description,omitempty"`
}

func toRoomResp(r model.Room) roomResp {
	return roomResp{
		ID:          r.ID,
		Name:        r.Name,
		Capacity:    r.Capacity,
		Location:    r.Location,
		Description: r.Description,
	}
}

// List handles GET /v1/rooms and returns every room.
func (h *RoomHandler) List(c echo.Context) error {
	rooms, err := h.Rooms.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load rooms"})
	}
	items := make([]roomResp, 0, len(rooms))
	for _, r := range rooms {
		items = append(items, toRoomResp(r))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Get handles GET /v1/rooms/:id.
func (h *RoomHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	room, err := h.Rooms.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load room"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": toRoomResp(room)})
}

// ListAvailable handles GET /v1/rooms/available?date=&start=&end=.  It
// answers "which rooms are free for this slot" by querying live
// reservations; there is no stored availability flag to drift out of
// sync.  All three query parameters are required.
func (h *RoomHandler) ListAvailable(c echo.Context) error {
	dateStr := c.QueryParam("date")
	startStr := c.QueryParam("start")
	endStr := c.QueryParam("end")
	if dateStr == "" || startStr == "" || endStr == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date, start and end are required"})
	}
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, want YYYY-MM-DD"})
	}
	iv, err := schedule.NewInterval(startStr, endStr)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	rooms, err := h.Rooms.ListFree(c.Request().Context(), date,
		schedule.FormatClock(iv.Start), schedule.FormatClock(iv.End))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load rooms"})
	}
	items := make([]roomResp, 0, len(rooms))
	for _, r := range rooms {
		items = append(items, toRoomResp(r))
	}
	start, end := clockRange(iv)
	return c.JSON(http.StatusOK, echo.Map{
		"date":  date.Format("2006-01-02"),
		"start": start,
		"end":   end,
		"items": items,
	})
}
