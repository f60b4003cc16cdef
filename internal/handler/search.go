package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Preethinthran/TravelPoint-sub000/internal/demand"
	"github.com/Preethinthran/TravelPoint-sub000/internal/repository"
)

// SearchHandler serves trip discovery.  Every search call also feeds
// the demand tracker; the pricing engine reads the same tracker when
// quoting fares, so popular routes surge within the hour.
type SearchHandler struct {
	Trips  *repository.TripRepo
	Demand *demand.Tracker
}

func NewSearchHandler(trips *repository.TripRepo, tracker *demand.Tracker) *SearchHandler {
	if trips == nil || tracker == nil {
		panic("nil dependency passed to NewSearchHandler")
	}
	return &SearchHandler{Trips: trips, Demand: tracker}
}

type searchPayload struct {
	From string `json:"from" validate:"required,max=100"`
	To   string `json:"to" validate:"required,max=100"`
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
}

// Search handles POST /v1/search.  The demand signal is recorded even
// when no trips match: interest in a route is interest regardless of
// supply.
func (h *SearchHandler) Search(c echo.Context) error {
	var body searchPayload
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "from, to and date (YYYY-MM-DD) are required"})
	}

	day, err := time.ParseInLocation("2006-01-02", body.Date, time.UTC)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}

	h.Demand.RecordSearch(body.From, body.To)

	trips, err := h.Trips.Search(c.Request().Context(), body.From, body.To, day)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if trips == nil {
		trips = []repository.TripSummary{}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"from":  body.From,
		"to":    body.To,
		"date":  body.Date,
		"trips": trips,
	})
}
