// Package queue defines message payloads exchanged over the message broker.
package queue

// Event kinds carried in ReservationEvent.Kind.
const (
	KindBooked    = "BOOKED"
	KindCancelled = "CANCELLED"
)

// ReservationEvent is published when a reservation is committed or
// cancelled.  It carries enough information for downstream consumers to
// log or notify without querying the primary database.
type ReservationEvent struct {
	Kind          string `json:"kind"`
	ReservationID uint64 `json:"reservation_id"`
	RoomID        uint64 `json:"room_id"`
	RoomName      string `json:"room_name"`
	UserID        uint64 `json:"user_id"`
	Date          string `json:"date"`       // "YYYY-MM-DD"
	StartTime     string `json:"start_time"` // "HH:MM"
	EndTime       string `json:"end_time"`   // "HH:MM"
	ByStaff       bool   `json:"by_staff"`   // true when a staff action, not self-service
	OccurredAt    string `json:"occurred_at"`
}
