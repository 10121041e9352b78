package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/room-reservation/internal/handler"
	"github.com/iliyamo/room-reservation/internal/middleware"
)

// RegisterStaff registers STAFF-scoped management endpoints.
// All routes require a valid JWT and the STAFF role.
func RegisterStaff(e *echo.Echo, s *handler.StaffHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("STAFF"),
	)

	// ---- Rooms ----
	// Reads on /v1/rooms are registered by the browse router for both
	// roles; only the mutations are staff-scoped.
	g.POST("/rooms", s.CreateRoom)
	g.PUT("/rooms/:id", s.UpdateRoom)
	g.DELETE("/rooms/:id", s.DeleteRoom)

	// ---- Member accounts ----
	g.GET("/users", s.ListUsers)
	g.POST("/users", s.CreateUser)
	g.PUT("/users/:id", s.UpdateUser)
	g.DELETE("/users/:id", s.DeleteUser)

	// ---- Reservations ----
	// The full list lives at /v1/reservations; the member router only
	// claims POST /v1/reservations and the /v1/reservations/:id routes.
	// Booking for a member and cancelling any reservation sit under
	// /v1/staff so they cannot shadow the member paths.
	g.GET("/reservations", s.ListReservations)
	g.POST("/staff/reservations", s.CreateReservation)
	g.DELETE("/staff/reservations/:id", s.CancelReservation)
}
