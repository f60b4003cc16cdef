package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Preethinthran/TravelPoint-sub000/internal/fare"
	"github.com/Preethinthran/TravelPoint-sub000/internal/model"
)

// mockGeometry implements Geometry with overridable functions.
type mockGeometry struct {
	TripByIDFunc   func(ctx context.Context, tripID uint64) (*model.Trip, error)
	StopByIDFunc   func(ctx context.Context, stopID uint64) (*model.Stop, error)
	SeatsByIDsFunc func(ctx context.Context, busID uint64, seatIDs []uint64) (map[uint64]model.Seat, error)
}

func (m *mockGeometry) TripByID(ctx context.Context, tripID uint64) (*model.Trip, error) {
	if m.TripByIDFunc != nil {
		return m.TripByIDFunc(ctx, tripID)
	}
	return nil, model.ErrTripNotFound
}

func (m *mockGeometry) StopByID(ctx context.Context, stopID uint64) (*model.Stop, error) {
	if m.StopByIDFunc != nil {
		return m.StopByIDFunc(ctx, stopID)
	}
	return nil, model.ErrInvalidStops
}

func (m *mockGeometry) SeatsByIDs(ctx context.Context, busID uint64, seatIDs []uint64) (map[uint64]model.Seat, error) {
	if m.SeatsByIDsFunc != nil {
		return m.SeatsByIDsFunc(ctx, busID, seatIDs)
	}
	return map[uint64]model.Seat{}, nil
}

// mockStore implements Store with an overridable function.
type mockStore struct {
	ReserveFunc func(ctx context.Context, b *model.Booking, seats []model.BookedSeat) error
}

func (m *mockStore) Reserve(ctx context.Context, b *model.Booking, seats []model.BookedSeat) error {
	if m.ReserveFunc != nil {
		return m.ReserveFunc(ctx, b, seats)
	}
	b.ID = 1
	b.Status = model.BookingStatusConfirmed
	return nil
}

type fixedDemand struct{ n int }

func (f fixedDemand) Count(_, _ string) int { return f.n }

// Fixture: trip 9 on bus 4 along path 7, departing a Wednesday; stops
// priced so the route fare is 200; seats priced 500.  With neutral
// demand every seat quotes to 700.
const (
	tripID   = 9
	busID    = 4
	pathID   = 7
	pickupID = 1
	dropID   = 5
)

func fixtureGeometry() *mockGeometry {
	trip := &model.Trip{
		ID: tripID, BusID: busID, PathID: pathID,
		DepartureTime: time.Date(2026, 3, 11, 22, 30, 0, 0, time.UTC),
		Status:        "SCHEDULED",
	}
	stops := map[uint64]*model.Stop{
		pickupID: {ID: pickupID, PathID: pathID, Name: "Satara", OrderIndex: 1, BasePrice: 100, Role: model.StopRoleBoth},
		dropID:   {ID: dropID, PathID: pathID, Name: "Kolhapur", OrderIndex: 5, BasePrice: 300, Role: model.StopRoleBoth},
	}
	seats := map[uint64]model.Seat{
		21: {ID: 21, BusID: busID, SeatNumber: "L1", SeatClass: "SLEEPER", BasePrice: 500},
		22: {ID: 22, BusID: busID, SeatNumber: "L2", SeatClass: "SLEEPER", BasePrice: 500},
	}
	return &mockGeometry{
		TripByIDFunc: func(_ context.Context, id uint64) (*model.Trip, error) {
			if id != tripID {
				return nil, model.ErrTripNotFound
			}
			return trip, nil
		},
		StopByIDFunc: func(_ context.Context, id uint64) (*model.Stop, error) {
			s, ok := stops[id]
			if !ok {
				return nil, model.ErrInvalidStops
			}
			return s, nil
		},
		SeatsByIDsFunc: func(_ context.Context, bus uint64, ids []uint64) (map[uint64]model.Seat, error) {
			out := make(map[uint64]model.Seat)
			for _, id := range ids {
				if s, ok := seats[id]; ok && s.BusID == bus {
					out[id] = s
				}
			}
			return out, nil
		},
	}
}

func newTransactor(store Store) *Transactor {
	t := NewTransactor(fixtureGeometry(), store, fare.NewCalculator(fixedDemand{n: 3}, nil))
	t.newRef = func() string { return "ref-test" }
	return t
}

func TestReserveCleanBooking(t *testing.T) {
	var captured *model.Booking
	store := &mockStore{ReserveFunc: func(_ context.Context, b *model.Booking, seats []model.BookedSeat) error {
		b.ID = 42
		captured = b
		require.Len(t, seats, 1)
		assert.Equal(t, uint64(21), seats[0].SeatID)
		assert.Equal(t, "L1", seats[0].SeatNumber)
		return nil
	}}

	rcpt, err := newTransactor(store).Reserve(context.Background(), tripID, 77, pickupID, dropID,
		[]Passenger{{SeatID: 21, Name: "Asha", Age: 31, Gender: "F"}})
	require.NoError(t, err)
	assert.Equal(t, uint64(42), rcpt.BookingID)
	assert.Equal(t, "ref-test", rcpt.BookingRef)
	assert.Equal(t, int64(700), rcpt.TotalAmount, "route 200 + seat 500, neutral multipliers")
	assert.Equal(t, []string{"L1"}, rcpt.SeatNumbers)
	require.NotNil(t, captured)
	assert.Equal(t, int64(700), captured.AmountPaid)
	assert.Equal(t, uint64(77), captured.PassengerID)
}

func TestReserveChargesRouteFarePerPassenger(t *testing.T) {
	rcpt, err := newTransactor(&mockStore{}).Reserve(context.Background(), tripID, 77, pickupID, dropID,
		[]Passenger{
			{SeatID: 21, Name: "Asha", Age: 31, Gender: "F"},
			{SeatID: 22, Name: "Ravi", Age: 33, Gender: "M"},
		})
	require.NoError(t, err)
	assert.Equal(t, int64(1400), rcpt.TotalAmount, "700 per seat, route fare charged once per seat")
}

func TestReserveEmptyPassengerList(t *testing.T) {
	_, err := newTransactor(&mockStore{}).Reserve(context.Background(), tripID, 77, pickupID, dropID, nil)
	assert.ErrorIs(t, err, model.ErrEmptyPassengerList)
}

func TestReserveUnknownTrip(t *testing.T) {
	_, err := newTransactor(&mockStore{}).Reserve(context.Background(), 404, 77, pickupID, dropID,
		[]Passenger{{SeatID: 21, Name: "Asha"}})
	assert.ErrorIs(t, err, model.ErrTripNotFound)
}

func TestReserveUnknownStops(t *testing.T) {
	_, err := newTransactor(&mockStore{}).Reserve(context.Background(), tripID, 77, 999, dropID,
		[]Passenger{{SeatID: 21, Name: "Asha"}})
	assert.ErrorIs(t, err, model.ErrInvalidStops)

	_, err = newTransactor(&mockStore{}).Reserve(context.Background(), tripID, 77, pickupID, 999,
		[]Passenger{{SeatID: 21, Name: "Asha"}})
	assert.ErrorIs(t, err, model.ErrInvalidStops)
}

func TestReserveRejectsReversedStops(t *testing.T) {
	_, err := newTransactor(&mockStore{}).Reserve(context.Background(), tripID, 77, dropID, pickupID,
		[]Passenger{{SeatID: 21, Name: "Asha"}})
	assert.ErrorIs(t, err, model.ErrInvalidRouteOrder)
}

func TestReserveSeatPriceMissing(t *testing.T) {
	_, err := newTransactor(&mockStore{}).Reserve(context.Background(), tripID, 77, pickupID, dropID,
		[]Passenger{{SeatID: 21, Name: "Asha"}, {SeatID: 9999, Name: "Ravi"}})
	assert.ErrorIs(t, err, model.ErrSeatPriceMissing)
}

func TestReserveDuplicateSeatInRequest(t *testing.T) {
	_, err := newTransactor(&mockStore{}).Reserve(context.Background(), tripID, 77, pickupID, dropID,
		[]Passenger{{SeatID: 21, Name: "Asha"}, {SeatID: 21, Name: "Ravi"}})
	assert.ErrorIs(t, err, model.ErrSeatConflict)
}

func TestReserveSurfacesStoreConflict(t *testing.T) {
	store := &mockStore{ReserveFunc: func(_ context.Context, _ *model.Booking, _ []model.BookedSeat) error {
		return model.ErrSeatConflict
	}}
	_, err := newTransactor(store).Reserve(context.Background(), tripID, 77, pickupID, dropID,
		[]Passenger{{SeatID: 21, Name: "Asha"}})
	assert.ErrorIs(t, err, model.ErrSeatConflict)
}

// memoryStore reserves seats against an in-memory ledger with the same
// atomicity contract as the SQL store: the conflict check and the
// write happen under one lock.
type memoryStore struct {
	mu     sync.Mutex
	nextID uint64
	taken  map[uint64]map[uint64]bool // trip -> seat -> confirmed
}

func newMemoryStore() *memoryStore {
	return &memoryStore{taken: make(map[uint64]map[uint64]bool)}
}

func (s *memoryStore) Reserve(_ context.Context, b *model.Booking, seats []model.BookedSeat) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	trip := s.taken[b.TripID]
	if trip == nil {
		trip = make(map[uint64]bool)
		s.taken[b.TripID] = trip
	}
	for _, seat := range seats {
		if trip[seat.SeatID] {
			return model.ErrSeatConflict
		}
	}
	for _, seat := range seats {
		trip[seat.SeatID] = true
	}
	s.nextID++
	b.ID = s.nextID
	b.Status = model.BookingStatusConfirmed
	return nil
}

func TestReserveConcurrentSameSeatExactlyOneWinner(t *testing.T) {
	store := newMemoryStore()

	const attempts = 16
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tr := NewTransactor(fixtureGeometry(), store, fare.NewCalculator(fixedDemand{n: 3}, nil))
			_, errs[i] = tr.Reserve(context.Background(), tripID, uint64(100+i), pickupID, dropID,
				[]Passenger{{SeatID: 21, Name: "Racer", Age: 30, Gender: "M"}})
		}(i)
	}
	wg.Wait()

	wins, conflicts := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case assert.ErrorIs(t, err, model.ErrSeatConflict):
			conflicts++
		}
	}
	assert.Equal(t, 1, wins, "exactly one reservation wins the seat")
	assert.Equal(t, attempts-1, conflicts)
}
