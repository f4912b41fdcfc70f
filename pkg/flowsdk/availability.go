package flowsdk

import (
	"context"
	"sync"
	"time"
)

// AvailabilityState is the settled (or in-flight) result of a username
// availability lookup.
type AvailabilityState int

const (
	AvailabilityIdle AvailabilityState = iota
	AvailabilityChecking
	AvailabilityAvailable
	AvailabilityTaken
)

func (s AvailabilityState) String() string {
	switch s {
	case AvailabilityIdle:
		return "idle"
	case AvailabilityChecking:
		return "checking"
	case AvailabilityAvailable:
		return "available"
	case AvailabilityTaken:
		return "taken"
	}
	return "unknown"
}

// LookupFunc answers whether a normalized username is available.
// Client.CheckUsername satisfies it.
type LookupFunc func(ctx context.Context, username string) (bool, error)

const availabilityDebounce = 500 * time.Millisecond

// AvailabilityChecker drives the debounced username availability
// sub-protocol. Each input schedules a lookup after a debounce window; newer
// input cancels the pending one. A generation counter guarantees a stale
// lookup can never overwrite the state for newer input.
type AvailabilityChecker struct {
	Lookup   LookupFunc
	Debounce time.Duration

	// OnChange, when set, is called with the new state after every settle.
	OnChange func(username string, state AvailabilityState)

	mu         sync.Mutex
	generation int
	username   string
	state      AvailabilityState
	timer      *time.Timer
}

// NewAvailabilityChecker creates a checker around the given lookup.
func NewAvailabilityChecker(lookup LookupFunc) *AvailabilityChecker {
	return &AvailabilityChecker{
		Lookup:   lookup,
		Debounce: availabilityDebounce,
	}
}

// Input feeds the current raw username. Inputs under the minimum normalized
// length settle to idle immediately; anything longer moves to checking and
// schedules a debounced lookup.
func (c *AvailabilityChecker) Input(ctx context.Context, username string) {
	normalized := NormalizeUsername(username)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
	gen := c.generation
	c.username = normalized

	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}

	if len(normalized) < minUsernameLength {
		c.setStateLocked(normalized, AvailabilityIdle)
		return
	}

	c.setStateLocked(normalized, AvailabilityChecking)
	c.timer = time.AfterFunc(c.Debounce, func() {
		c.lookup(ctx, gen, normalized)
	})
}

func (c *AvailabilityChecker) lookup(ctx context.Context, gen int, username string) {
	available, err := c.Lookup(ctx, username)

	c.mu.Lock()
	defer c.mu.Unlock()

	// Newer input arrived while this lookup was in flight.
	if gen != c.generation {
		return
	}

	switch {
	case err != nil:
		// Lookup failures settle back to idle: submission stays blocked but
		// the name is not falsely reported as taken.
		c.setStateLocked(username, AvailabilityIdle)
	case available:
		c.setStateLocked(username, AvailabilityAvailable)
	default:
		c.setStateLocked(username, AvailabilityTaken)
	}
}

func (c *AvailabilityChecker) setStateLocked(username string, state AvailabilityState) {
	c.state = state
	if c.OnChange != nil {
		c.OnChange(username, state)
	}
}

// State returns the current state and the normalized username it refers to.
func (c *AvailabilityChecker) State() (AvailabilityState, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state, c.username
}

// Close cancels any pending lookup. Safe to call multiple times.
func (c *AvailabilityChecker) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}
