package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/room-reservation/internal/schedule"
)

func TestParseSlot(t *testing.T) {
	date, iv, err := parseSlot(slotRequest{Date: "2024-01-01", StartTime: "09:00", EndTime: "10:00"})
	assert.NoError(t, err)
	assert.Equal(t, "2024-01-01", date.Format("2006-01-02"))
	assert.Equal(t, schedule.Interval{Start: 540, End: 600}, iv)
}

func TestParseSlotRejectsBadDate(t *testing.T) {
	_, _, err := parseSlot(slotRequest{Date: "01/01/2024", StartTime: "09:00", EndTime: "10:00"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid date")
}

func TestParseSlotRejectsInvertedInterval(t *testing.T) {
	_, _, err := parseSlot(slotRequest{Date: "2024-01-01", StartTime: "10:00", EndTime: "09:00"})
	assert.ErrorIs(t, err, schedule.ErrInvalidInterval)

	_, _, err = parseSlot(slotRequest{Date: "2024-01-01", StartTime: "10:00", EndTime: "10:00"})
	assert.ErrorIs(t, err, schedule.ErrInvalidInterval)
}

func TestParseSlotRejectsBadClock(t *testing.T) {
	_, _, err := parseSlot(slotRequest{Date: "2024-01-01", StartTime: "9 am", EndTime: "10:00"})
	assert.ErrorIs(t, err, schedule.ErrInvalidClock)
}

func TestClockRange(t *testing.T) {
	start, end := clockRange(schedule.Interval{Start: 540, End: 630})
	assert.Equal(t, "09:00", start)
	assert.Equal(t, "10:30", end)
}
