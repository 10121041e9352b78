package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/room-reservation/internal/handler"
	"github.com/iliyamo/room-reservation/internal/middleware"
)

// RegisterBrowse registers the read-only room endpoints under /v1.
// Both roles may browse rooms and check availability.  The optional
// cache middleware (nil to disable) short-circuits repeated reads.
func RegisterBrowse(e *echo.Echo, h *handler.RoomHandler, jwtSecret string, cache echo.MiddlewareFunc) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("MEMBER", "STAFF"),
	)
	if cache != nil {
		g.Use(cache)
	}
	g.GET("/rooms", h.List)
	// /rooms/available must be registered before /rooms/:id would
	// swallow it; echo resolves static segments first, so order here is
	// only for the reader.
	g.GET("/rooms/available", h.ListAvailable)
	g.GET("/rooms/:id", h.Get)
}

// RegisterMember registers the member-scoped reservation and
// notification endpoints under /v1.  All routes require a valid JWT and
// the MEMBER role; staff act through their own endpoints instead.
func RegisterMember(e *echo.Echo, r *handler.ReservationHandler, n *handler.NotificationHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("MEMBER"),
	)

	g.POST("/reservations", r.Create)
	g.GET("/my-reservations", r.ListMine)
	g.GET("/reservations/:id", r.Get)
	g.PUT("/reservations/:id", r.Update)
	g.DELETE("/reservations/:id", r.Delete)

	g.GET("/notifications", n.List)
	g.PATCH("/notifications/:id/read", n.MarkRead)
}
