package model

import "time"

// Room represents a bookable conference room as stored in the `rooms`
// table.  There is deliberately no stored availability flag: whether a
// room is free for a given date and interval is derived from its live
// reservations at read time, so the answer can never drift out of sync
// with the bookings themselves.
//
// Fields:
//  ID          – primary key identifier.
//  Name        – display name of the room.
//  Capacity    – number of people the room holds (positive).
//  Location    – optional floor/building hint.
//  Description – optional free-text description.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Room struct {
	ID          uint64    // rooms.id
	Name        string    // rooms.name
	Capacity    uint32    // rooms.capacity
	Location    *string   // rooms.location (nullable)
	Description *string   // rooms.description (nullable)
	CreatedAt   time.Time // rooms.created_at
	UpdatedAt   time.Time // rooms.updated_at
}
