package model

import "time"

// Notification is a message shown to a user about one of their
// bookings.  A notification is written in the same transaction that
// creates its reservation and deleted by the application when the
// reservation is cancelled; the cleanup is an explicit lifecycle step
// rather than a storage-engine cascade so the dependency stays visible
// in the code.
//
// Fields:
//  ID            – primary key identifier.
//  UserID        – recipient of the notification.
//  ReservationID – reservation the message refers to (nil once unlinked).
//  Message       – free-text body.
//  IsRead        – whether the recipient has marked it read.
//  CreatedAt     – creation timestamp.
type Notification struct {
	ID            uint64    // notifications.id
	UserID        uint64    // notifications.user_id
	ReservationID *uint64   // notifications.reservation_id (nullable)
	Message       string    // notifications.message
	IsRead        bool      // notifications.is_read
	CreatedAt     time.Time // notifications.created_at
}
