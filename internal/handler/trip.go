package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Preethinthran/TravelPoint-sub000/internal/fare"
	"github.com/Preethinthran/TravelPoint-sub000/internal/layout"
	"github.com/Preethinthran/TravelPoint-sub000/internal/model"
	"github.com/Preethinthran/TravelPoint-sub000/internal/repository"
)

// TripHandler serves route geometry and per-trip seat maps.  Geometry
// comes from the layout cache; seat occupancy is always read live from
// the booking store so a cached layout can never show a stale seat as
// free.
type TripHandler struct {
	Layouts  *layout.Cache
	Bookings *repository.BookingRepo
	Stops    *repository.StopRepo
	Fares    *fare.Calculator
}

func NewTripHandler(layouts *layout.Cache, bookings *repository.BookingRepo, stops *repository.StopRepo, fares *fare.Calculator) *TripHandler {
	if layouts == nil || bookings == nil || stops == nil || fares == nil {
		panic("nil dependency passed to NewTripHandler")
	}
	return &TripHandler{Layouts: layouts, Bookings: bookings, Stops: stops, Fares: fares}
}

// PathStops handles GET /v1/paths/:id/stops.  The response is static
// route master data and sits behind the Redis response cache.
func (h *TripHandler) PathStops(c echo.Context) error {
	pid, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid path id"})
	}
	stops, err := h.Stops.StopsByPath(c.Request().Context(), pid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if len(stops) == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "path not found"})
	}

	out := make([]echo.Map, 0, len(stops))
	for _, s := range stops {
		out = append(out, echo.Map{
			"stop_id":     s.ID,
			"name":        s.Name,
			"order_index": s.OrderIndex,
			"boarding":    s.Boards(),
			"dropping":    s.Drops(),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"path_id": pid, "stops": out})
}

// seatView is a single seat in the layout response.  Price is present
// only when the request named a pickup and drop stop.
type seatView struct {
	SeatID     uint64 `json:"seat_id"`
	SeatNumber string `json:"seat_number"`
	SeatClass  string `json:"seat_class"`
	Status     string `json:"status"`
	Price      *int64 `json:"price,omitempty"`
}

// Layout handles GET /v1/trips/:id/layout.  With pickup_stop_id and
// drop_stop_id query parameters each free seat also carries a fare
// quote for that leg.
func (h *TripHandler) Layout(c echo.Context) error {
	tripID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid trip id"})
	}
	ctx := c.Request().Context()

	lay, err := h.Layouts.Layout(ctx, tripID)
	if err != nil {
		return domainError(c, err)
	}
	booked, err := h.Bookings.BookedSeatIDs(ctx, tripID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	// Quotes are optional; both stops must be named to get them.
	pickup, drop, quoted, err := quoteLeg(c, lay)
	if err != nil {
		return domainError(c, err)
	}

	seats := make([]seatView, 0, len(lay.Seats))
	for i := range lay.Seats {
		s := &lay.Seats[i]
		view := seatView{
			SeatID:     s.ID,
			SeatNumber: s.SeatNumber,
			SeatClass:  s.SeatClass,
			Status:     "AVAILABLE",
		}
		if _, taken := booked[s.ID]; taken {
			view.Status = "BOOKED"
		} else if quoted {
			price, qerr := h.Fares.Quote(lay.Trip, pickup, drop, s)
			if qerr != nil {
				return domainError(c, qerr)
			}
			view.Price = &price
		}
		seats = append(seats, view)
	}

	boarding := make([]echo.Map, 0, len(lay.Stops))
	dropping := make([]echo.Map, 0, len(lay.Stops))
	for _, s := range lay.Stops {
		entry := echo.Map{"stop_id": s.ID, "name": s.Name, "order_index": s.OrderIndex}
		if s.Boards() {
			boarding = append(boarding, entry)
		}
		if s.Drops() {
			dropping = append(dropping, entry)
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"trip": echo.Map{
			"trip_id":        lay.Trip.ID,
			"bus_id":         lay.Trip.BusID,
			"path_id":        lay.Trip.PathID,
			"departure_time": lay.Trip.DepartureTime,
			"arrival_time":   lay.Trip.ArrivalTime,
			"status":         lay.Trip.Status,
		},
		"boarding_points": boarding,
		"dropping_points": dropping,
		"seats":           seats,
	})
}

// quoteLeg resolves the optional pickup/drop query parameters against
// the stops already loaded in the layout.
func quoteLeg(c echo.Context, lay *layout.Layout) (pickup, drop *model.Stop, ok bool, err error) {
	pq, dq := c.QueryParam("pickup_stop_id"), c.QueryParam("drop_stop_id")
	if pq == "" && dq == "" {
		return nil, nil, false, nil
	}
	pid, perr := strconv.ParseUint(pq, 10, 64)
	did, derr := strconv.ParseUint(dq, 10, 64)
	if perr != nil || derr != nil {
		return nil, nil, false, model.ErrInvalidStops
	}
	for i := range lay.Stops {
		switch lay.Stops[i].ID {
		case pid:
			pickup = &lay.Stops[i]
		case did:
			drop = &lay.Stops[i]
		}
	}
	if pickup == nil || drop == nil {
		return nil, nil, false, model.ErrInvalidStops
	}
	return pickup, drop, true, nil
}
