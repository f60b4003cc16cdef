// Package demand tracks recent search volume per origin–destination
// pair.  The counters feed the surge component of the fare calculator
// and nothing else: they are ephemeral, never persisted, and a cold
// start simply resets every route to baseline pricing.
package demand

import (
	"strings"
	"sync"
	"time"
)

// keySep joins the two normalized endpoints of a route key.  A pipe
// does not occur in city names, so keys cannot collide across pairs.
const keySep = "|"

type counter struct {
	count     int
	expiresAt time.Time
}

// Tracker counts searches per route with a sliding expiry: every
// recorded search pushes the expiry out by the full window, so steady
// traffic keeps a route hot while an idle route decays to zero.  It is
// safe for concurrent use and runs no background goroutine; expiry is
// checked lazily on access.
type Tracker struct {
	mu     sync.Mutex
	window time.Duration
	routes map[string]*counter
	now    func() time.Time // overridden in tests
}

// NewTracker returns a Tracker with the given sliding window.  A
// non-positive window falls back to one hour.
func NewTracker(window time.Duration) *Tracker {
	if window <= 0 {
		window = time.Hour
	}
	return &Tracker{
		window: window,
		routes: make(map[string]*counter),
		now:    time.Now,
	}
}

// RecordSearch increments the counter for the route from → to and
// refreshes its expiry.  Endpoints are trimmed and lowercased so that
// " Pune " and "pune" count as the same city.
func (t *Tracker) RecordSearch(from, to string) {
	key := routeKey(from, to)
	now := t.now()
	t.mu.Lock()
	defer t.mu.Unlock()
	c, ok := t.routes[key]
	if !ok || !now.Before(c.expiresAt) {
		c = &counter{}
		t.routes[key] = c
	}
	c.count++
	c.expiresAt = now.Add(t.window)
}

// Count returns the live search count for the route from → to, or 0
// for an unseen or expired route.  Expired entries are removed on the
// way out.
func (t *Tracker) Count(from, to string) int {
	key := routeKey(from, to)
	now := t.now()
	t.mu.Lock()
	defer t.mu.Unlock()
	c, ok := t.routes[key]
	if !ok {
		return 0
	}
	if !now.Before(c.expiresAt) {
		delete(t.routes, key)
		return 0
	}
	return c.count
}

// Len reports how many route counters are currently held, including
// entries that have expired but not yet been swept.  It exists for
// observability endpoints and tests.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.routes)
}

func routeKey(from, to string) string {
	return normalize(from) + keySep + normalize(to)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
