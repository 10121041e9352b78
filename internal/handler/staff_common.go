package handler

import (
	"github.com/iliyamo/room-reservation/internal/config"
	"github.com/iliyamo/room-reservation/internal/repository"
)

// StaffHandler groups the staff-only management endpoints: room
// administration, member account management and booking on behalf of
// members.  Routes using it sit behind the STAFF role check, so the
// handlers themselves never re-examine the caller's role.
type StaffHandler struct {
	Cfg           config.Config
	Users         *repository.UserRepo
	Tokens        *repository.TokenRepo
	Rooms         *repository.RoomRepo
	Reservations  *repository.ReservationRepo
	Notifications *repository.NotificationRepo

	// res reuses the shared booking and cancellation sequences.
	res *ReservationHandler
}

// NewStaffHandler constructs a StaffHandler.  All dependencies must be
// non-nil.
func NewStaffHandler(cfg config.Config, users *repository.UserRepo, tokens *repository.TokenRepo, rooms *repository.RoomRepo, reservations *repository.ReservationRepo, notifications *repository.NotificationRepo) *StaffHandler {
	if users == nil {
		panic("nil dependency passed to NewStaffHandler")
	}
	return &StaffHandler{
		Cfg:           cfg,
		Users:         users,
		Tokens:        tokens,
		Rooms:         rooms,
		Reservations:  reservations,
		Notifications: notifications,
		res:           NewReservationHandler(rooms, reservations, notifications),
	}
}
