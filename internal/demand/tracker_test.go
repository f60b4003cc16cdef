package demand

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCountUnseenRouteIsZero(t *testing.T) {
	tr := NewTracker(time.Hour)
	assert.Equal(t, 0, tr.Count("pune", "goa"))
}

func TestRecordSearchIncrements(t *testing.T) {
	tr := NewTracker(time.Hour)
	for i := 0; i < 4; i++ {
		tr.RecordSearch("Pune", "Goa")
	}
	assert.Equal(t, 4, tr.Count("pune", "goa"))
}

func TestKeyNormalization(t *testing.T) {
	tr := NewTracker(time.Hour)
	tr.RecordSearch("  Mumbai ", "DELHI")
	tr.RecordSearch("mumbai", " delhi")
	assert.Equal(t, 2, tr.Count("MUMBAI", "Delhi "))
	// distinct direction is a distinct route
	assert.Equal(t, 0, tr.Count("delhi", "mumbai"))
}

func TestExpiryAfterWindow(t *testing.T) {
	tr := NewTracker(time.Hour)
	clock := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	tr.now = func() time.Time { return clock }

	tr.RecordSearch("pune", "goa")
	clock = clock.Add(59 * time.Minute)
	assert.Equal(t, 1, tr.Count("pune", "goa"))

	clock = clock.Add(2 * time.Minute)
	assert.Equal(t, 0, tr.Count("pune", "goa"))
	assert.Equal(t, 0, tr.Len(), "expired entry is swept on read")
}

func TestRefreshOnWriteKeepsRouteHot(t *testing.T) {
	tr := NewTracker(time.Hour)
	clock := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	tr.now = func() time.Time { return clock }

	tr.RecordSearch("pune", "goa")
	// keep searching every 45 minutes; each write refreshes the window
	for i := 0; i < 3; i++ {
		clock = clock.Add(45 * time.Minute)
		tr.RecordSearch("pune", "goa")
	}
	assert.Equal(t, 4, tr.Count("pune", "goa"))

	// a write after full expiry starts a fresh counter
	clock = clock.Add(2 * time.Hour)
	tr.RecordSearch("pune", "goa")
	assert.Equal(t, 1, tr.Count("pune", "goa"))
}

func TestConcurrentRecording(t *testing.T) {
	tr := NewTracker(time.Hour)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				tr.RecordSearch("pune", "goa")
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1000, tr.Count("pune", "goa"))
}
