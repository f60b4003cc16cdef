package model

// Seat describes a physical seat on a bus.  Seat master data is static
// once a bus is in service, which is what makes the trip layout safe to
// cache; only booking state changes afterwards and that is never read
// from seat records.
//
// Fields:
//  ID         – primary key identifier.
//  BusID      – bus to which this seat belongs.
//  SeatNumber – label printed on the seat ("L5", "U12", ...).
//  SeatClass  – class of seat (SEATER, SLEEPER, SEMI_SLEEPER).
//  BasePrice  – seat contribution to the fare in whole currency units.
type Seat struct {
	ID         uint64 // seats.id
	BusID      uint64 // seats.bus_id
	SeatNumber string // seats.seat_number
	SeatClass  string // seats.seat_class
	BasePrice  int64  // seats.base_price
}
