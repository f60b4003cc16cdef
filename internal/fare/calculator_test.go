package fare

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Preethinthran/TravelPoint-sub000/internal/model"
)

// fixedDemand pins the search count for every route.
type fixedDemand struct{ n int }

func (f fixedDemand) Count(_, _ string) int { return f.n }

const pathID = 7

// weekdayTrip departs on a Wednesday, away from any calendar boost.
func weekdayTrip() *model.Trip {
	return &model.Trip{
		ID:            1,
		BusID:         3,
		PathID:        pathID,
		DepartureTime: time.Date(2026, 3, 11, 22, 30, 0, 0, time.UTC),
		Status:        "SCHEDULED",
	}
}

func stop(order uint32, base int64, name string) *model.Stop {
	return &model.Stop{ID: uint64(order), PathID: pathID, Name: name, OrderIndex: order, BasePrice: base, Role: model.StopRoleBoth}
}

func seat(base int64) *model.Seat {
	return &model.Seat{ID: 11, BusID: 3, SeatNumber: "L5", SeatClass: "SLEEPER", BasePrice: base}
}

func TestQuoteCleanBooking(t *testing.T) {
	// route fare 200 + seat 500, all multipliers neutral (demand 3..5)
	calc := NewCalculator(fixedDemand{n: 3}, nil)
	price, err := calc.Quote(weekdayTrip(), stop(1, 100, "Satara"), stop(5, 300, "Kolhapur"), seat(500))
	require.NoError(t, err)
	assert.Equal(t, int64(700), price)
}

func TestQuoteRouteFareIsAbsolute(t *testing.T) {
	// descending price encoding along the path still yields fare 200
	calc := NewCalculator(fixedDemand{n: 3}, nil)
	price, err := calc.Quote(weekdayTrip(), stop(1, 300, "Satara"), stop(5, 100, "Kolhapur"), seat(500))
	require.NoError(t, err)
	assert.Equal(t, int64(700), price)
}

func TestQuoteDemandSurge(t *testing.T) {
	base, err := NewCalculator(fixedDemand{n: 3}, nil).
		Quote(weekdayTrip(), stop(1, 100, "Satara"), stop(5, 300, "Kolhapur"), seat(500))
	require.NoError(t, err)

	surged, err := NewCalculator(fixedDemand{n: 11}, nil).
		Quote(weekdayTrip(), stop(1, 100, "Satara"), stop(5, 300, "Kolhapur"), seat(500))
	require.NoError(t, err)

	assert.Equal(t, int64(875), surged, "11 searches price exactly 1.25x of 700")
	assert.Equal(t, base*125/100, surged)
}

func TestQuoteDemandMonotonicity(t *testing.T) {
	quoteAt := func(n int) int64 {
		p, err := NewCalculator(fixedDemand{n: n}, nil).
			Quote(weekdayTrip(), stop(1, 100, "Satara"), stop(5, 300, "Kolhapur"), seat(500))
		require.NoError(t, err)
		return p
	}
	p11, p3, p1 := quoteAt(11), quoteAt(3), quoteAt(1)
	assert.GreaterOrEqual(t, p11, p3)
	assert.GreaterOrEqual(t, p3, p1)
}

func TestQuoteRoundsOnceAtTheEnd(t *testing.T) {
	// base 99 (route 49 + seat 50), demand 0.90, tier 1.05:
	// 99*0.90*1.05 = 93.555 -> 94. Rounding per factor would give
	// round(89.1)=89, round(89*1.05)=93; the single-rounding pipeline
	// must produce 94.
	calc := NewCalculator(fixedDemand{n: 1}, []string{"mumbai"})
	price, err := calc.Quote(weekdayTrip(), stop(1, 1, "Mumbai Central"), stop(5, 50, "Satara"), seat(50))
	require.NoError(t, err)
	assert.Equal(t, int64(94), price)
}

func TestQuoteWeekendMultiplier(t *testing.T) {
	trip := weekdayTrip()
	trip.DepartureTime = time.Date(2026, 3, 13, 22, 30, 0, 0, time.UTC) // Friday
	calc := NewCalculator(fixedDemand{n: 3}, nil)
	price, err := calc.Quote(trip, stop(1, 100, "Satara"), stop(5, 300, "Kolhapur"), seat(500))
	require.NoError(t, err)
	assert.Equal(t, int64(805), price) // 700 * 1.15
}

func TestQuoteNewYearMultiplier(t *testing.T) {
	trip := weekdayTrip()
	trip.DepartureTime = time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC) // Thursday
	calc := NewCalculator(fixedDemand{n: 3}, nil)
	price, err := calc.Quote(trip, stop(1, 100, "Satara"), stop(5, 300, "Kolhapur"), seat(500))
	require.NoError(t, err)
	assert.Equal(t, int64(840), price) // 700 * 1.20
}

func TestQuoteWeekendAndNewYearStack(t *testing.T) {
	trip := weekdayTrip()
	trip.DepartureTime = time.Date(2027, 1, 1, 8, 0, 0, 0, time.UTC) // Friday, Jan 1
	calc := NewCalculator(fixedDemand{n: 3}, nil)
	price, err := calc.Quote(trip, stop(1, 100, "Satara"), stop(5, 300, "Kolhapur"), seat(500))
	require.NoError(t, err)
	assert.Equal(t, int64(966), price) // 700 * 1.15 * 1.20
}

func TestQuoteTierCityMatchIsCaseInsensitive(t *testing.T) {
	calc := NewCalculator(fixedDemand{n: 3}, []string{"Mumbai"})
	price, err := calc.Quote(weekdayTrip(), stop(1, 100, "MUMBAI Central"), stop(5, 300, "Kolhapur"), seat(500))
	require.NoError(t, err)
	assert.Equal(t, int64(735), price) // 700 * 1.05
}

func TestQuoteRejectsBadStopOrder(t *testing.T) {
	calc := NewCalculator(fixedDemand{n: 3}, nil)

	_, err := calc.Quote(weekdayTrip(), stop(5, 300, "Kolhapur"), stop(1, 100, "Satara"), seat(500))
	assert.ErrorIs(t, err, model.ErrInvalidRouteOrder)

	// equal order index is also invalid, never silently accepted
	_, err = calc.Quote(weekdayTrip(), stop(3, 200, "Pune"), stop(3, 200, "Pune"), seat(500))
	assert.ErrorIs(t, err, model.ErrInvalidRouteOrder)
}

func TestQuoteRejectsStopsFromAnotherPath(t *testing.T) {
	calc := NewCalculator(fixedDemand{n: 3}, nil)
	foreign := stop(1, 100, "Satara")
	foreign.PathID = pathID + 1
	_, err := calc.Quote(weekdayTrip(), foreign, stop(5, 300, "Kolhapur"), seat(500))
	assert.ErrorIs(t, err, model.ErrInvalidStops)
}
