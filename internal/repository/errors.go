// Package repository defines error types that are reused across the
// data access layer.  These sentinel values allow higher layers such
// as services and handlers to distinguish between failure scenarios
// without inspecting driver errors themselves.
package repository

import "errors"

// ErrSeatTaken is returned when inserting a booking violates the
// unique key on (seat, bus_type).  The database is the single arbiter
// of that race: whichever of two concurrent inserts commits second
// receives this error.  Services translate it into the "seat just
// taken, refresh" conflict shown to the passenger.
var ErrSeatTaken = errors.New("seat already booked")

// ErrTripNotFound is returned when an update targets a trip id that
// does not exist.  Deletes deliberately do not return it: deleting an
// absent id is a success so double-cancel races stay quiet.
var ErrTripNotFound = errors.New("trip not found")
