package model

import "time"

// Booking status values.  The only legal transition is
// Confirmed -> Cancelled; a cancelled booking never comes back.
const (
	BookingStatusConfirmed = "CONFIRMED"
	BookingStatusCancelled = "CANCELLED"
)

// Booking records a passenger's purchase of one or more seats on a
// trip.  Rows are created exactly once by the booking transactor and
// afterwards only the status may change (to CANCELLED); bookings are
// never deleted.
//
// Fields:
//  ID           – primary key identifier.
//  BookingRef   – opaque UUID handed to clients and downstream systems.
//  TripID       – trip being travelled.
//  PassengerID  – authenticated account that paid for the booking.
//  PickupStopID – stop where the journey begins.
//  DropStopID   – stop where the journey ends.
//  AmountPaid   – total charged, whole currency units.
//  Status       – CONFIRMED or CANCELLED.
//  CreatedAt    – creation timestamp (UTC).
//  UpdatedAt    – last status change (UTC).
type Booking struct {
	ID           uint64    // bookings.id
	BookingRef   string    // bookings.booking_ref
	TripID       uint64    // bookings.trip_id
	PassengerID  uint64    // bookings.passenger_id
	PickupStopID uint64    // bookings.pickup_stop_id
	DropStopID   uint64    // bookings.drop_stop_id
	AmountPaid   int64     // bookings.amount_paid
	Status       string    // bookings.status
	CreatedAt    time.Time // bookings.created_at
	UpdatedAt    time.Time // bookings.updated_at
}

// BookedSeat assigns one seat of a booking to a named traveller.  One
// row exists per passenger in a booking; rows are written atomically
// with their parent booking and never mutated on their own.
//
// Fields:
//  ID             – primary key identifier.
//  BookingID      – parent booking.
//  SeatID         – seat claimed on the trip.
//  PassengerName  – traveller occupying the seat.
//  PassengerAge   – traveller age.
//  PassengerGender – traveller gender as supplied by the booker.
//  SeatNumber     – denormalised seat label for tickets and events.
type BookedSeat struct {
	ID              uint64 // booked_seats.id
	BookingID       uint64 // booked_seats.booking_id
	SeatID          uint64 // booked_seats.seat_id
	PassengerName   string // booked_seats.passenger_name
	PassengerAge    uint8  // booked_seats.passenger_age
	PassengerGender string // booked_seats.passenger_gender
	SeatNumber      string // booked_seats.seat_number
}
