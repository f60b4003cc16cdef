// Package booking holds the transactional heart of the service: the
// reservation transactor and the cancellation engine.  Both depend on
// narrow interfaces so the money-path logic can be tested without a
// database; the repository layer provides the real implementations.
package booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/Preethinthran/TravelPoint-sub000/internal/model"
)

// Passenger is one traveller in a reservation request, already bound
// to the seat they picked.
type Passenger struct {
	SeatID uint64
	Name   string
	Age    uint8
	Gender string
}

// Receipt is returned to the caller after a successful reservation.
type Receipt struct {
	BookingID   uint64
	BookingRef  string
	TotalAmount int64
	PickupStop  string
	DropStop    string
	SeatNumbers []string
}

// Geometry is the authoritative read side the transactor validates
// against.  Quotes that decide money never go through the layout
// cache.
type Geometry interface {
	TripByID(ctx context.Context, tripID uint64) (*model.Trip, error)
	StopByID(ctx context.Context, stopID uint64) (*model.Stop, error)
	SeatsByIDs(ctx context.Context, busID uint64, seatIDs []uint64) (map[uint64]model.Seat, error)
}

// Store is the atomic check-and-reserve capability.  Implementations
// must make the conflict check and the insert indivisible per trip and
// return model.ErrSeatConflict when any requested seat is already
// confirmed.
type Store interface {
	Reserve(ctx context.Context, b *model.Booking, seats []model.BookedSeat) error
}

// Quoter prices one seat for one journey.
type Quoter interface {
	Quote(trip *model.Trip, pickup, drop *model.Stop, seat *model.Seat) (int64, error)
}

// Transactor orchestrates a reservation: validate the journey, price
// every passenger, then hand the whole batch to the store as a single
// atomic unit.  It performs no retries; a seat conflict is surfaced
// to the caller, who must re-check availability before trying again.
type Transactor struct {
	geo    Geometry
	store  Store
	fares  Quoter
	newRef func() string // overridden in tests for determinism
}

// NewTransactor wires a Transactor from its collaborators.
func NewTransactor(geo Geometry, store Store, fares Quoter) *Transactor {
	return &Transactor{
		geo:    geo,
		store:  store,
		fares:  fares,
		newRef: func() string { return uuid.NewString() },
	}
}

// Reserve books the given seats on a trip for passengerID.  The total
// charged is the sum of per-passenger quotes: the route fare is charged
// once per seat, not once per booking.  Every failure is one of the
// typed errors in the model package and leaves no partial state.
func (t *Transactor) Reserve(ctx context.Context, tripID, passengerID, pickupStopID, dropStopID uint64, passengers []Passenger) (*Receipt, error) {
	if len(passengers) == 0 {
		return nil, model.ErrEmptyPassengerList
	}

	trip, err := t.geo.TripByID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	pickup, err := t.geo.StopByID(ctx, pickupStopID)
	if err != nil {
		return nil, err
	}
	drop, err := t.geo.StopByID(ctx, dropStopID)
	if err != nil {
		return nil, err
	}
	if pickup.PathID != trip.PathID || drop.PathID != trip.PathID {
		return nil, model.ErrInvalidStops
	}
	if !pickup.Boards() || !drop.Drops() {
		return nil, model.ErrInvalidStops
	}
	if pickup.OrderIndex >= drop.OrderIndex {
		return nil, model.ErrInvalidRouteOrder
	}

	seatIDs := make([]uint64, 0, len(passengers))
	seen := make(map[uint64]struct{}, len(passengers))
	for _, p := range passengers {
		if _, dup := seen[p.SeatID]; dup {
			// the same seat twice in one request can never succeed
			return nil, model.ErrSeatConflict
		}
		seen[p.SeatID] = struct{}{}
		seatIDs = append(seatIDs, p.SeatID)
	}

	seats, err := t.geo.SeatsByIDs(ctx, trip.BusID, seatIDs)
	if err != nil {
		return nil, err
	}

	var total int64
	assignments := make([]model.BookedSeat, 0, len(passengers))
	seatNumbers := make([]string, 0, len(passengers))
	for _, p := range passengers {
		seat, ok := seats[p.SeatID]
		if !ok {
			return nil, model.ErrSeatPriceMissing
		}
		price, err := t.fares.Quote(trip, pickup, drop, &seat)
		if err != nil {
			return nil, err
		}
		total += price
		assignments = append(assignments, model.BookedSeat{
			SeatID:          seat.ID,
			PassengerName:   p.Name,
			PassengerAge:    p.Age,
			PassengerGender: p.Gender,
			SeatNumber:      seat.SeatNumber,
		})
		seatNumbers = append(seatNumbers, seat.SeatNumber)
	}

	b := &model.Booking{
		BookingRef:   t.newRef(),
		TripID:       trip.ID,
		PassengerID:  passengerID,
		PickupStopID: pickup.ID,
		DropStopID:   drop.ID,
		AmountPaid:   total,
	}
	if err := t.store.Reserve(ctx, b, assignments); err != nil {
		return nil, err
	}

	return &Receipt{
		BookingID:   b.ID,
		BookingRef:  b.BookingRef,
		TotalAmount: total,
		PickupStop:  pickup.Name,
		DropStop:    drop.Name,
		SeatNumbers: seatNumbers,
	}, nil
}
