package handler // HTTP handlers for the reservation API

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Preethinthran/TravelPoint-sub000/internal/model"
)

// getUserID extracts the authenticated passenger id placed in context
// by the JWT middleware.
func getUserID(c echo.Context) (uint64, error) {
	if v, ok := c.Get("user_id").(uint64); ok && v > 0 {
		return v, nil
	}
	return 0, errors.New("missing user_id in context")
}

// pathID parses a positive numeric path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || n == 0 {
		return 0, errors.New("invalid " + name)
	}
	return n, nil
}

// domainError translates domain sentinels into HTTP responses.  Any
// error outside the taxonomy is reported as a 500 without leaking the
// underlying cause.
func domainError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, model.ErrInvalidRouteOrder):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "drop stop must come after pickup stop"})
	case errors.Is(err, model.ErrInvalidStops):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "pickup or drop stop not valid for this trip"})
	case errors.Is(err, model.ErrEmptyPassengerList):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "at least one passenger is required"})
	case errors.Is(err, model.ErrSeatPriceMissing):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown seat in passenger list"})
	case errors.Is(err, model.ErrSeatConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "one or more seats already booked"})
	case errors.Is(err, model.ErrAlreadyCancelled):
		return c.JSON(http.StatusConflict, echo.Map{"error": "booking already cancelled"})
	case errors.Is(err, model.ErrTripAlreadyStarted):
		return c.JSON(http.StatusConflict, echo.Map{"error": "trip already departed"})
	case errors.Is(err, model.ErrBookingNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	case errors.Is(err, model.ErrTripNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "trip not found"})
	case errors.Is(err, model.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "booking belongs to another passenger"})
	default:
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}
