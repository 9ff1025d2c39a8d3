// Package timevaltest provides test doubles for the timeval package.
package timevaltest

import (
	"sync"

	"github.com/aelexs/timeval/pkg/timeval"
)

// FakeClock is a deterministic, advanceable clock for tests.
// Use Advance/Set to control time progression instead of creating new
// clock instances. Rewind steps the wall clock back the way an NTP
// correction would; the monotonic reading never moves backward.
type FakeClock struct {
	mu   sync.Mutex
	wall timeval.Timestamp
	mono timeval.Monotonic
}

// NewFakeClock creates a FakeClock with the wall clock at t and the
// monotonic clock at its origin.
func NewFakeClock(t timeval.Timestamp) *FakeClock {
	return &FakeClock{wall: t}
}

// Now returns the fake wall clock.
func (c *FakeClock) Now() timeval.Timestamp {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.wall
}

// NowMonotonic returns the fake monotonic clock.
func (c *FakeClock) NowMonotonic() timeval.Monotonic {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mono
}

// Advance moves both clocks forward by d. It panics on overflow, which
// only a broken test can cause.
func (c *FakeClock) Advance(d timeval.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	wall, err := c.wall.Add(d)
	if err != nil {
		panic(err)
	}
	mono, err := c.mono.Add(d)
	if err != nil {
		panic(err)
	}
	c.wall, c.mono = wall, mono
}

// Rewind moves only the wall clock back by d, stopping at the epoch.
func (c *FakeClock) Rewind(d timeval.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.wall = c.wall.SaturatingSub(d)
}

// Set changes the wall clock to t.
func (c *FakeClock) Set(t timeval.Timestamp) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.wall = t
}

// SetMonotonic changes the monotonic clock to m. Tests use it to start from
// a non-zero reading; moving it backward breaks the Clock contract.
func (c *FakeClock) SetMonotonic(m timeval.Monotonic) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mono = m
}

// Ensure FakeClock implements timeval.Clock at compile time.
var _ timeval.Clock = (*FakeClock)(nil)
