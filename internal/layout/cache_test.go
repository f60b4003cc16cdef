package layout

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Preethinthran/TravelPoint-sub000/internal/model"
)

// countingSource serves fixed geometry and counts loads per method.
type countingSource struct {
	trips     map[uint64]*model.Trip
	tripCalls int
	seatCalls int
	stopCalls int
}

func (s *countingSource) TripByID(_ context.Context, tripID uint64) (*model.Trip, error) {
	s.tripCalls++
	t, ok := s.trips[tripID]
	if !ok {
		return nil, model.ErrTripNotFound
	}
	return t, nil
}

func (s *countingSource) SeatsByBus(_ context.Context, busID uint64) ([]model.Seat, error) {
	s.seatCalls++
	return []model.Seat{{ID: 1, BusID: busID, SeatNumber: "L1", SeatClass: "SEATER", BasePrice: 300}}, nil
}

func (s *countingSource) StopsByPath(_ context.Context, pathID uint64) ([]model.Stop, error) {
	s.stopCalls++
	return []model.Stop{
		{ID: 1, PathID: pathID, Name: "Pune", OrderIndex: 1, BasePrice: 0, Role: model.StopRoleBoarding},
		{ID: 2, PathID: pathID, Name: "Satara", OrderIndex: 2, BasePrice: 150, Role: model.StopRoleBoth},
	}, nil
}

func newSource() *countingSource {
	return &countingSource{trips: map[uint64]*model.Trip{
		9: {ID: 9, BusID: 4, PathID: 7, DepartureTime: time.Date(2026, 3, 11, 22, 0, 0, 0, time.UTC), Status: "SCHEDULED"},
	}}
}

func TestLayoutLoadsOnceWithinTTL(t *testing.T) {
	src := newSource()
	c := NewCache(src, time.Hour)

	first, err := c.Layout(context.Background(), 9)
	require.NoError(t, err)
	require.NotNil(t, first.Trip)
	assert.Len(t, first.Seats, 1)
	assert.Len(t, first.Stops, 2)

	second, err := c.Layout(context.Background(), 9)
	require.NoError(t, err)
	assert.Same(t, first, second, "second read must be served from cache")
	assert.Equal(t, 1, src.tripCalls)
	assert.Equal(t, 1, src.seatCalls)
	assert.Equal(t, 1, src.stopCalls)
}

func TestLayoutReloadsAfterExpiry(t *testing.T) {
	src := newSource()
	c := NewCache(src, time.Hour)
	clock := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return clock }

	_, err := c.Layout(context.Background(), 9)
	require.NoError(t, err)

	clock = clock.Add(61 * time.Minute)
	_, err = c.Layout(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, 2, src.tripCalls, "expired entry reloads from source")
}

func TestLayoutDoesNotCacheMissingTrip(t *testing.T) {
	src := newSource()
	c := NewCache(src, time.Hour)

	for i := 0; i < 3; i++ {
		_, err := c.Layout(context.Background(), 404)
		assert.ErrorIs(t, err, model.ErrTripNotFound)
	}
	assert.Equal(t, 3, src.tripCalls, "negative results are never cached")
	assert.Equal(t, 0, c.Len())
}
