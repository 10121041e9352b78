// Package schedule implements the booking-time arithmetic for rooms.  An
// Interval is a half-open [start, end) wall-clock range within a single
// day, expressed in minutes since midnight.  Two reservations for the same
// room and date conflict when their intervals overlap; slots that merely
// touch (one ends exactly when the other starts) do not conflict, so
// back-to-back bookings are always allowed.
package schedule

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidClock is returned when a wall-clock string cannot be parsed.
var ErrInvalidClock = errors.New("invalid clock value")

// ErrInvalidInterval is returned when an interval does not satisfy
// start < end.  Zero-length and inverted intervals are both rejected.
var ErrInvalidInterval = errors.New("start time must be before end time")

// Interval is a half-open [Start, End) range in minutes since midnight.
type Interval struct {
	Start int // inclusive, minutes since midnight
	End   int // exclusive, minutes since midnight
}

// ParseClock converts "HH:MM" or "HH:MM:SS" into minutes since midnight.
// Seconds are accepted for symmetry with MySQL TIME columns but must be
// zero; reservations are granular to the minute.
func ParseClock(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	if len(parts) == 3 {
		sec, err := strconv.Atoi(parts[2])
		if err != nil || sec != 0 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
		}
	}
	return h*60 + m, nil
}

// FormatClock renders minutes since midnight as "HH:MM:SS" for storage in
// a TIME column.
func FormatClock(m int) string {
	return fmt.Sprintf("%02d:%02d:00", m/60, m%60)
}

// NewInterval parses a start/end clock pair and enforces start < end.
func NewInterval(start, end string) (Interval, error) {
	s, err := ParseClock(start)
	if err != nil {
		return Interval{}, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return Interval{}, err
	}
	iv := Interval{Start: s, End: e}
	if err := iv.Validate(); err != nil {
		return Interval{}, err
	}
	return iv, nil
}

// Validate reports whether the interval is well formed (start < end).
func (iv Interval) Validate() error {
	if iv.Start >= iv.End {
		return ErrInvalidInterval
	}
	return nil
}

// Overlaps reports whether two half-open intervals share any instant.
// The test is strict: iv.Start < other.End && iv.End > other.Start, so
// adjacent intervals (iv.End == other.Start) never overlap.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start < other.End && iv.End > other.Start
}

// ConflictsAny reports whether the candidate interval overlaps any of the
// existing intervals.  It is the single conflict predicate used by every
// booking path, self-service and staff alike.
func ConflictsAny(candidate Interval, existing []Interval) bool {
	for _, iv := range existing {
		if candidate.Overlaps(iv) {
			return true
		}
	}
	return false
}
