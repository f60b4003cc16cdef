package repository

import (
	"context"

	"github.com/Preethinthran/TravelPoint-sub000/internal/model"
)

// Geometry bundles the three read-only repositories into the single
// geometry capability that the layout cache and the booking transactor
// consume.  Keeping it separate from BookingRepo makes the split
// explicit: geometry is cacheable, availability never is.
type Geometry struct {
	Trips *TripRepo
	Seats *SeatRepo
	Stops *StopRepo
}

// NewGeometry returns a Geometry over the given repositories.
func NewGeometry(trips *TripRepo, seats *SeatRepo, stops *StopRepo) *Geometry {
	return &Geometry{Trips: trips, Seats: seats, Stops: stops}
}

func (g *Geometry) TripByID(ctx context.Context, tripID uint64) (*model.Trip, error) {
	return g.Trips.TripByID(ctx, tripID)
}

func (g *Geometry) SeatsByBus(ctx context.Context, busID uint64) ([]model.Seat, error) {
	return g.Seats.SeatsByBus(ctx, busID)
}

func (g *Geometry) StopsByPath(ctx context.Context, pathID uint64) ([]model.Stop, error) {
	return g.Stops.StopsByPath(ctx, pathID)
}

func (g *Geometry) StopByID(ctx context.Context, stopID uint64) (*model.Stop, error) {
	return g.Stops.StopByID(ctx, stopID)
}

func (g *Geometry) SeatsByIDs(ctx context.Context, busID uint64, seatIDs []uint64) (map[uint64]model.Seat, error) {
	return g.Seats.SeatsByIDs(ctx, busID, seatIDs)
}
