package config

import (
	"strings"
	"time"
)

// FareConfig carries the pricing knobs that are policy rather than
// code: the tier-1 city list that attracts a flat premium, the sliding
// window over which search demand stays hot, and the lifetime of cached
// trip layouts.
type FareConfig struct {
	Tier1Cities  []string      // city substrings that trigger the tier premium
	DemandWindow time.Duration // sliding expiry for demand counters
	LayoutTTL    time.Duration // lifetime of cached trip geometry
}

// LoadFareConfig reads fare policy from the environment.  Defaults keep
// the service usable with no configuration at all: a small tier-1 list
// and one-hour windows for both demand and layout caching.
func LoadFareConfig() FareConfig {
	return FareConfig{
		Tier1Cities:  splitCities(getenv("FARE_TIER1_CITIES", "mumbai,delhi,bangalore,chennai,kolkata,hyderabad")),
		DemandWindow: parseDur(getenv("DEMAND_WINDOW", "1h")),
		LayoutTTL:    parseDur(getenv("LAYOUT_CACHE_TTL", "1h")),
	}
}

func splitCities(s string) []string {
	out := make([]string, 0, 8)
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
