// Package layout caches the static geometry of a trip: the trip record
// itself, the seat map of its bus, and the ordered stops of its path.
// Geometry is safe to serve stale because seat master data and stop
// ledgers do not change once a bus is selling; seat availability is a
// different capability entirely and is always read live, never from
// here.
package layout

import (
	"context"
	"sync"
	"time"

	"github.com/Preethinthran/TravelPoint-sub000/internal/model"
)

// Layout bundles everything the seat-selection flow needs that is not
// booking state.
type Layout struct {
	Trip  *model.Trip
	Seats []model.Seat
	Stops []model.Stop
}

// Source loads geometry from the authoritative store.  The repository
// layer implements it; tests substitute counting fakes.
type Source interface {
	TripByID(ctx context.Context, tripID uint64) (*model.Trip, error)
	SeatsByBus(ctx context.Context, busID uint64) ([]model.Seat, error)
	StopsByPath(ctx context.Context, pathID uint64) ([]model.Stop, error)
}

type entry struct {
	layout    *Layout
	expiresAt time.Time
}

// Cache is a time-bounded, read-through cache keyed by trip id.
// Entries live for a fixed TTL and are evicted lazily on access; there
// is no invalidation on booking changes because bookings never alter
// geometry.  Negative lookups (missing trips) are never cached.
type Cache struct {
	src Source
	ttl time.Duration

	mu      sync.RWMutex
	entries map[uint64]entry
	now     func() time.Time // overridden in tests
}

// NewCache wraps src with a cache whose entries live for ttl.  A
// non-positive ttl falls back to one hour.
func NewCache(src Source, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Cache{
		src:     src,
		ttl:     ttl,
		entries: make(map[uint64]entry),
		now:     time.Now,
	}
}

// Layout returns the geometry for a trip, serving from cache when a
// live entry exists.  On a miss it loads the trip first, then the seat
// map and stop ledger concurrently, and caches the result only when
// the trip was actually found.  Two concurrent misses may both load;
// the second write simply replaces the first, which is harmless for
// immutable geometry.
func (c *Cache) Layout(ctx context.Context, tripID uint64) (*Layout, error) {
	c.mu.RLock()
	e, ok := c.entries[tripID]
	c.mu.RUnlock()
	if ok && c.now().Before(e.expiresAt) {
		return e.layout, nil
	}

	trip, err := c.src.TripByID(ctx, tripID)
	if err != nil {
		if ok {
			// stale entry for a trip that now fails to load; drop it
			c.mu.Lock()
			delete(c.entries, tripID)
			c.mu.Unlock()
		}
		return nil, err
	}

	var (
		wg       sync.WaitGroup
		seats    []model.Seat
		stops    []model.Stop
		seatsErr error
		stopsErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		seats, seatsErr = c.src.SeatsByBus(ctx, trip.BusID)
	}()
	go func() {
		defer wg.Done()
		stops, stopsErr = c.src.StopsByPath(ctx, trip.PathID)
	}()
	wg.Wait()
	if seatsErr != nil {
		return nil, seatsErr
	}
	if stopsErr != nil {
		return nil, stopsErr
	}

	l := &Layout{Trip: trip, Seats: seats, Stops: stops}
	c.mu.Lock()
	c.entries[tripID] = entry{layout: l, expiresAt: c.now().Add(c.ttl)}
	c.mu.Unlock()
	return l, nil
}

// Len reports the number of cached entries, expired or not.  Used by
// tests and debug endpoints.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
