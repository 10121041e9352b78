package handler

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/room-reservation/internal/schedule"
)

// getUserID extracts the authenticated user id from echo.Context.  The
// JWT middleware stores the raw "sub" claim, whose dynamic type depends
// on how the JSON library decoded it.
func getUserID(c echo.Context) (uint64, error) {
	switch t := c.Get("user_id").(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// slotRequest is the date/interval portion shared by the booking and
// rescheduling request bodies.
type slotRequest struct {
	Date      string `json:"date"`       // "YYYY-MM-DD"
	StartTime string `json:"start_time"` // "HH:MM" (seconds tolerated)
	EndTime   string `json:"end_time"`   // "HH:MM", strictly after start
}

// parseSlot validates a requested slot: a well-formed calendar date and
// a well-ordered half-open interval.  The returned error text is safe
// to surface to clients.
func parseSlot(req slotRequest) (time.Time, schedule.Interval, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return time.Time{}, schedule.Interval{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", req.Date)
	}
	iv, err := schedule.NewInterval(req.StartTime, req.EndTime)
	if err != nil {
		return time.Time{}, schedule.Interval{}, err
	}
	return date, iv, nil
}

// clockRange renders an interval as the "HH:MM"/"HH:MM" pair used in
// notification messages and responses.
func clockRange(iv schedule.Interval) (string, string) {
	start := schedule.FormatClock(iv.Start)
	end := schedule.FormatClock(iv.End)
	return start[:5], end[:5]
}
