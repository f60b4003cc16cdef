package middleware

// identity.go holds helpers shared across middleware files.

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// callerKey identifies the requester for rate-limit and cache
// bucketing: the authenticated passenger id when JWTAuth has run, the
// client IP otherwise.
func callerKey(c echo.Context) string {
	if v, ok := c.Get("user_id").(uint64); ok && v > 0 {
		return "u:" + strconv.FormatUint(v, 10)
	}
	return "ip:" + c.RealIP()
}
