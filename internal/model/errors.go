// Package model defines the domain entities of the reservation core
// together with the sentinel errors every layer classifies failures
// with.  Handlers translate these into HTTP responses; nothing below
// the handler layer swallows or retries them.
package model

import "errors"

// ErrInvalidRouteOrder is returned when the pickup stop does not come
// strictly before the drop stop on the same path.  Callers must fix the
// request; the core never swaps or negates stop order on their behalf.
var ErrInvalidRouteOrder = errors.New("pickup stop must precede drop stop")

// ErrInvalidStops is returned when a referenced pickup or drop stop
// does not exist on the trip's path.
var ErrInvalidStops = errors.New("invalid pickup or drop stop")

// ErrEmptyPassengerList is returned when a reservation names no
// passengers.
var ErrEmptyPassengerList = errors.New("passenger list is empty")

// ErrSeatPriceMissing is returned when a requested seat is unknown or
// carries no price, so no fare can be computed for it.
var ErrSeatPriceMissing = errors.New("seat price missing")

// ErrSeatConflict is returned when at least one requested seat is
// already held by a confirmed booking on the same trip.  It is an
// expected outcome under contention, cheap to produce, and distinct
// from a system error.  Callers should re-query availability before
// retrying.
var ErrSeatConflict = errors.New("one or more seats already booked")

// ErrBookingNotFound is returned when no booking exists for the given
// identifier.
var ErrBookingNotFound = errors.New("booking not found")

// ErrForbidden is returned when the requesting passenger does not own
// the booking being acted on.
var ErrForbidden = errors.New("forbidden")

// ErrAlreadyCancelled is returned when cancelling a booking that is
// already cancelled.  The rejection is deliberate so the caller knows
// nothing changed.
var ErrAlreadyCancelled = errors.New("booking already cancelled")

// ErrTripAlreadyStarted is returned when the cancellation window has
// closed because the trip's departure time has passed.
var ErrTripAlreadyStarted = errors.New("trip already started")

// ErrTripNotFound is returned when a trip id does not resolve to a
// scheduled trip.
var ErrTripNotFound = errors.New("trip not found")
