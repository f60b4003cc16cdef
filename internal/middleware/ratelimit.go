package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/Preethinthran/TravelPoint-sub000/internal/config"
)

// NewFixedWindow builds a Redis-backed fixed-window rate limiter keyed
// by caller and route.  The first request in a window creates the
// counter with the window TTL; once the counter passes the limit the
// caller gets 429 until the window rolls over.  With Redis down or the
// limiter disabled, requests pass through untouched.
func NewFixedWindow(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}

	window := cfg.Window
	if window <= 0 {
		window = time.Minute
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			key := cfg.Prefix + ":" + callerKey(c) + ":" + c.Path()

			n, err := rdb.Incr(ctx, key).Result()
			if err != nil {
				// Redis outage must not take bookings down with it.
				return next(c)
			}
			if n == 1 {
				_ = rdb.Expire(ctx, key, window).Err()
			}

			remaining := int64(cfg.Limit) - n
			if remaining < 0 {
				remaining = 0
			}
			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(cfg.Limit))
			h.Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

			if n > int64(cfg.Limit) {
				ttl, terr := rdb.TTL(ctx, key).Result()
				if terr == nil && ttl > 0 {
					h.Set("Retry-After", strconv.Itoa(int(ttl.Seconds()+1)))
				}
				return c.JSON(http.StatusTooManyRequests, echo.Map{"error": "rate limit exceeded"})
			}
			return next(c)
		}
	}
}
