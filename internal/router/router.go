package router // wires HTTP routes, middleware and request validation

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/Preethinthran/TravelPoint-sub000/internal/config"
	"github.com/Preethinthran/TravelPoint-sub000/internal/handler"
	"github.com/Preethinthran/TravelPoint-sub000/internal/middleware"
)

// payloadValidator adapts validator/v10 to Echo's Validator interface
// so handlers can call c.Validate on bound request bodies.
type payloadValidator struct {
	v *validator.Validate
}

func (pv *payloadValidator) Validate(i interface{}) error {
	return pv.v.Struct(i)
}

// Deps carries everything route registration needs.
type Deps struct {
	Search    *handler.SearchHandler
	Trips     *handler.TripHandler
	Bookings  *handler.BookingHandler
	JWTSecret string
	Redis     *redis.Client
	Cache     config.ResponseCacheConfig
	RateLimit config.RateLimitConfig
}

// Register installs the request validator and the full route table on
// the given Echo instance.
func Register(e *echo.Echo, d Deps) {
	e.Validator = &payloadValidator{v: validator.New()}

	e.GET("/healthz", handler.Health)

	// Discovery endpoints are open.  Stop listings are static route
	// master data and sit behind the response cache; layouts carry
	// live seat status and never do.
	e.GET("/v1/paths/:id/stops", d.Trips.PathStops, middleware.NewResponseCache(d.Cache, d.Redis))
	e.GET("/v1/trips/:id/layout", d.Trips.Layout)
	e.POST("/v1/search", d.Search.Search)

	// Booking lifecycle requires an authenticated passenger.
	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(d.JWTSecret))
	auth.Use(middleware.RequireRole("PASSENGER"))
	auth.POST("/trips/:id/reserve", d.Bookings.Reserve, middleware.NewFixedWindow(d.RateLimit, d.Redis))
	auth.GET("/my-bookings", d.Bookings.MyBookings)
	auth.DELETE("/bookings/:id", d.Bookings.Cancel)
}
