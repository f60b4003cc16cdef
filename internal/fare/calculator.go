// Package fare computes the final price of a seat on a trip.  The
// price composes a route fare read from the stop ledger, the seat's
// base price, and three independent multipliers: live search demand,
// calendar (weekend / New Year), and a tier-1 city premium.  The
// multipliers are scalar, so ordering cannot change the result, but
// they are applied in a fixed order anyway so that audit logs always
// read the same way.
package fare

import (
	"math"
	"strings"
	"time"

	"github.com/Preethinthran/TravelPoint-sub000/internal/model"
)

// Demand multiplier tiers keyed by recent search volume for the
// origin–destination pair.
const (
	demandSurgeHigh = 1.25 // more than 10 searches in the window
	demandSurgeMid  = 1.10 // 6 to 10 searches
	demandDiscount  = 0.90 // 2 or fewer searches: nudge cold routes
)

const (
	weekendMultiplier = 1.15 // Friday, Saturday, Sunday departures
	newYearMultiplier = 1.20 // departures on Jan 1, stacks with weekend
	tierOneMultiplier = 1.05 // either endpoint in a configured tier-1 city
)

// DemandReader is the read-only view of the demand tracker the
// calculator needs.  It is an interface so quotes stay pure and tests
// can pin the count.
type DemandReader interface {
	Count(from, to string) int
}

// Calculator prices seats.  It holds no mutable state of its own; the
// only live input is the demand reader.
type Calculator struct {
	demand DemandReader
	tier1  []string // lowercased city substrings
}

// NewCalculator builds a Calculator using the given demand source and
// tier-1 city substrings.  City matching is case-insensitive.
func NewCalculator(demand DemandReader, tier1Cities []string) *Calculator {
	lowered := make([]string, 0, len(tier1Cities))
	for _, c := range tier1Cities {
		c = strings.ToLower(strings.TrimSpace(c))
		if c != "" {
			lowered = append(lowered, c)
		}
	}
	return &Calculator{demand: demand, tier1: lowered}
}

// Quote returns the price of one seat for a journey from pickup to
// drop on the given trip, in whole currency units.
//
// The route fare is the absolute difference of the two stops' base
// prices, which tolerates paths encoded with either ascending or
// descending prices.  Rounding happens exactly once, after all
// multipliers, so intermediate factors never accumulate rounding
// error.
func (c *Calculator) Quote(trip *model.Trip, pickup, drop *model.Stop, seat *model.Seat) (int64, error) {
	if pickup == nil || drop == nil || seat == nil {
		return 0, model.ErrInvalidStops
	}
	if pickup.PathID != trip.PathID || drop.PathID != trip.PathID {
		return 0, model.ErrInvalidStops
	}
	if pickup.OrderIndex >= drop.OrderIndex {
		return 0, model.ErrInvalidRouteOrder
	}

	routeFare := drop.BasePrice - pickup.BasePrice
	if routeFare < 0 {
		routeFare = -routeFare
	}
	base := float64(routeFare + seat.BasePrice)

	d := c.demandMultiplier(pickup.Name, drop.Name)
	cal := calendarMultiplier(trip.DepartureTime)
	tier := c.tierMultiplier(pickup.Name, drop.Name)

	return int64(math.Round(base * d * cal * tier)), nil
}

// demandMultiplier maps recent search volume onto a surge factor.
func (c *Calculator) demandMultiplier(from, to string) float64 {
	n := c.demand.Count(from, to)
	switch {
	case n > 10:
		return demandSurgeHigh
	case n > 5:
		return demandSurgeMid
	case n <= 2:
		return demandDiscount
	default:
		return 1.0
	}
}

// calendarMultiplier prices the departure date.  Weekend and New Year
// are evaluated independently and stack when both apply.
func calendarMultiplier(departure time.Time) float64 {
	m := 1.0
	switch departure.Weekday() {
	case time.Friday, time.Saturday, time.Sunday:
		m *= weekendMultiplier
	}
	if departure.Month() == time.January && departure.Day() == 1 {
		m *= newYearMultiplier
	}
	return m
}

// tierMultiplier applies the flat premium when either endpoint name
// contains a configured tier-1 city substring.
func (c *Calculator) tierMultiplier(from, to string) float64 {
	lf, lt := strings.ToLower(from), strings.ToLower(to)
	for _, city := range c.tier1 {
		if strings.Contains(lf, city) || strings.Contains(lt, city) {
			return tierOneMultiplier
		}
	}
	return 1.0
}
