package model

import "time"

// Reservation records a booking of one room by one user for a single
// time slot on a calendar date.  Start and end times are wall-clock
// values within that date under half-open [start, end) semantics: a
// reservation ending at 10:00 does not collide with one starting at
// 10:00.  The invariant maintained by every booking path is that no two
// reservations for the same room and date overlap.
//
// Fields:
//  ID        – primary key identifier.
//  RoomID    – room being reserved.
//  UserID    – user who holds the reservation.
//  Date      – calendar date of the slot (DATE column, midnight UTC).
//  StartTime – slot start, "HH:MM:SS" as stored in the TIME column.
//  EndTime   – slot end, "HH:MM:SS", strictly after StartTime.
//  CreatedAt – creation timestamp.
type Reservation struct {
	ID        uint64    // reservations.id
	RoomID    uint64    // reservations.room_id
	UserID    uint64    // reservations.user_id
	Date      time.Time // reservations.date
	StartTime string    // reservations.start_time
	EndTime   string    // reservations.end_time
	CreatedAt time.Time // reservations.created_at
}
