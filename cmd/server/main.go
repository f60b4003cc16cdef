package main // service entry point

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Preethinthran/TravelPoint-sub000/internal/booking"
	"github.com/Preethinthran/TravelPoint-sub000/internal/config"
	"github.com/Preethinthran/TravelPoint-sub000/internal/database"
	"github.com/Preethinthran/TravelPoint-sub000/internal/demand"
	"github.com/Preethinthran/TravelPoint-sub000/internal/fare"
	"github.com/Preethinthran/TravelPoint-sub000/internal/handler"
	"github.com/Preethinthran/TravelPoint-sub000/internal/layout"
	"github.com/Preethinthran/TravelPoint-sub000/internal/queue"
	"github.com/Preethinthran/TravelPoint-sub000/internal/repository"
	"github.com/Preethinthran/TravelPoint-sub000/internal/router"
)

func main() {
	// .env is optional; real deployments set variables directly.
	_ = godotenv.Load()

	cfg := config.Load()
	fareCfg := config.LoadFareConfig()
	cacheCfg := config.LoadResponseCacheConfig()
	rateCfg := config.LoadRateLimitConfig()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional; with no client the cache and limiter become
	// pass-through middleware.
	rdb := config.NewRedisClient()

	stopRepo := repository.NewStopRepo(db)
	seatRepo := repository.NewSeatRepo(db)
	tripRepo := repository.NewTripRepo(db)
	bookingRepo := repository.NewBookingRepo(db)
	geometry := repository.NewGeometry(tripRepo, seatRepo, stopRepo)

	tracker := demand.NewTracker(fareCfg.DemandWindow)
	calculator := fare.NewCalculator(tracker, fareCfg.Tier1Cities)
	layouts := layout.NewCache(geometry, fareCfg.LayoutTTL)

	transactor := booking.NewTransactor(geometry, bookingRepo, calculator)
	canceller := booking.NewCancellationEngine(bookingRepo)

	// Ticket audit consumer; retries with backoff while the broker is
	// unreachable.
	go func() {
		if err := queue.StartTicketConsumer(); err != nil {
			log.Printf("ticket consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	router.Register(e, router.Deps{
		Search:    handler.NewSearchHandler(tripRepo, tracker),
		Trips:     handler.NewTripHandler(layouts, bookingRepo, stopRepo, calculator),
		Bookings:  handler.NewBookingHandler(transactor, canceller, bookingRepo),
		JWTSecret: cfg.JWTSecret,
		Redis:     rdb,
		Cache:     cacheCfg,
		RateLimit: rateCfg,
	})

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
