package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func mustInterval(t *testing.T, start, end string) Interval {
	t.Helper()
	iv, err := NewInterval(start, end)
	if err != nil {
		t.Fatalf("NewInterval(%s, %s): %v", start, end, err)
	}
	return iv
}

func TestParseClock(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"09:00", 540, false},
		{"09:30", 570, false},
		{"00:00", 0, false},
		{"23:59", 1439, false},
		{"10:00:00", 600, false},
		{" 08:15 ", 495, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"12:00:30", 0, true},
		{"noon", 0, true},
		{"", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseClock(tc.in)
		if tc.wantErr {
			assert.ErrorIs(t, err, ErrInvalidClock, "input %q", tc.in)
			continue
		}
		assert.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "09:00:00", FormatClock(540))
	assert.Equal(t, "23:59:00", FormatClock(1439))
	assert.Equal(t, "00:05:00", FormatClock(5))
}

func TestNewIntervalRejectsBadOrdering(t *testing.T) {
	_, err := NewInterval("10:00", "09:00")
	assert.ErrorIs(t, err, ErrInvalidInterval)

	// zero-length slots are invalid too
	_, err = NewInterval("10:00", "10:00")
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestOverlaps(t *testing.T) {
	base := mustInterval(t, "09:00", "10:00")

	cases := []struct {
		name  string
		other Interval
		want  bool
	}{
		{"identical interval", mustInterval(t, "09:00", "10:00"), true},
		{"fully inside", mustInterval(t, "09:15", "09:45"), true},
		{"fully containing", mustInterval(t, "08:00", "11:00"), true},
		{"partial overlap at start", mustInterval(t, "08:30", "09:30"), true},
		{"partial overlap at end", mustInterval(t, "09:30", "10:30"), true},
		{"abuts before", mustInterval(t, "08:00", "09:00"), false},
		{"abuts after", mustInterval(t, "10:00", "11:00"), false},
		{"disjoint earlier", mustInterval(t, "06:00", "07:00"), false},
		{"disjoint later", mustInterval(t, "12:00", "13:00"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, base.Overlaps(tc.other))
			// overlap is symmetric
			assert.Equal(t, tc.want, tc.other.Overlaps(base))
		})
	}
}

// TestBookingScenario walks the canonical day: book 09:00-10:00, reject
// 09:30-10:30, accept 10:00-11:00 and 08:00-09:00, and end with three
// non-overlapping reservations.
func TestBookingScenario(t *testing.T) {
	var committed []Interval

	book := func(start, end string) bool {
		iv := mustInterval(t, start, end)
		if ConflictsAny(iv, committed) {
			return false
		}
		committed = append(committed, iv)
		return true
	}

	assert.True(t, book("09:00", "10:00"))
	assert.False(t, book("09:30", "10:30"))
	assert.True(t, book("10:00", "11:00"))
	assert.True(t, book("08:00", "09:00"))

	assert.Len(t, committed, 3)
	for i, a := range committed {
		for j, b := range committed {
			if i == j {
				continue
			}
			assert.False(t, a.Overlaps(b), "reservations %d and %d overlap", i, j)
		}
	}
}

// Editing a reservation to its own unchanged slot must not self-conflict:
// the caller excludes its own interval from the existing set.
func TestSelfExclusionOnEdit(t *testing.T) {
	own := mustInterval(t, "09:00", "10:00")
	others := []Interval{mustInterval(t, "10:00", "11:00")}

	assert.False(t, ConflictsAny(own, others))
	assert.True(t, ConflictsAny(own, append(others, own)))
}
