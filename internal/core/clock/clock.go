// Package clock provides an injectable time source.
//
// The scan pipeline carries two independent timing heuristics (the 500 ms
// re-scan suppression window and the 300 ms toast debounce) that must be
// testable with controlled time instead of wall-clock sleeps.
package clock

import (
	"sync"
	"time"
)

// Clock is the time source consumed by components with timing heuristics.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// System returns the wall-clock backed Clock used in production.
func System() Clock {
	return systemClock{}
}

// Manual is a Clock whose time only moves when told to.
//
// Thread-safety: all methods are safe for concurrent use.
type Manual struct {
	mu  sync.Mutex
	now time.Time
}

// NewManual creates a Manual clock starting at the given instant.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the current manual time.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance moves the clock forward by d.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}

// Set jumps the clock to t.
func (m *Manual) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = t
}
