// Package repository implements the data access layer over MySQL.  This
// file defines error values reused across repositories.  These sentinel
// values let handlers distinguish failure scenarios without inspecting
// driver errors: ErrForbidden means the caller does not own the row it
// is trying to touch, ErrConflict means a booking would violate the
// no-overlap invariant for its room and date.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own.  Handlers translate this into HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when a reservation cannot be created or moved
// because another live reservation for the same room and date overlaps
// the requested interval.  Handlers translate this into HTTP 409.
var ErrConflict = errors.New("conflict")
