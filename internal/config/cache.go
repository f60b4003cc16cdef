package config

import (
	"os"
	"strconv"
	"time"
)

// ResponseCacheConfig controls the Redis response cache that fronts the
// read-only geometry endpoints.  The cache is deliberately scoped to an
// explicit route allowlist: anything that reflects live seat
// availability must never pass through it.
type ResponseCacheConfig struct {
	Enabled bool
	TTL     time.Duration
	Prefix  string
}

// LoadResponseCacheConfig reads environment variables to build a
// ResponseCacheConfig.  Defaults are used when variables are not set.
func LoadResponseCacheConfig() ResponseCacheConfig {
	return ResponseCacheConfig{
		Enabled: getenv("CACHE_ENABLED", "true") == "true",
		TTL:     parseDur(getenv("CACHE_TTL", "60s")),
		Prefix:  getenv("CACHE_PREFIX", "tp:cache"),
	}
}

// Helper functions shared with fare.go and ratelimit.go.
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoi(s string) int {
	i, _ := strconv.Atoi(s)
	return i
}

func parseDur(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return time.Second
	}
	return d
}
