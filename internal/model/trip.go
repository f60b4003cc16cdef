package model

import "time"

// Trip represents a scheduled departure of a bus along a path.  Trips
// are created by an external scheduling collaborator; this service
// only reads them.
//
// Fields:
//  ID            – primary key identifier.
//  BusID         – bus operating the trip.
//  PathID        – path (ordered stop ledger) the trip follows.
//  DepartureTime – when the bus leaves the first stop (UTC).
//  ArrivalTime   – when the bus reaches the last stop (UTC).
//  Status        – current state (SCHEDULED, DEPARTED, COMPLETED, CANCELLED).
type Trip struct {
	ID            uint64    // trips.id
	BusID         uint64    // trips.bus_id
	PathID        uint64    // trips.path_id
	DepartureTime time.Time // trips.departure_time
	ArrivalTime   time.Time // trips.arrival_time
	Status        string    // trips.status
}
