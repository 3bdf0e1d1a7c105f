// Package idgen provides injectable identifier and clock capabilities so
// that finalize and the edit operations stay deterministic under test.
package idgen

import (
	"time"

	"github.com/google/uuid"
)

// Generator produces opaque identifiers for journeys, stages, and
// touchpoints.
type Generator interface {
	NewID() string
}

// Clock supplies the current time for finalize timestamps.
type Clock interface {
	Now() time.Time
}

// UUID is the production Generator backed by random UUIDs.
type UUID struct{}

// NewID returns a random UUID string.
func (UUID) NewID() string {
	return uuid.NewString()
}

// SystemClock is the production Clock backed by time.Now.
type SystemClock struct{}

// Now returns the current wall-clock time.
func (SystemClock) Now() time.Time {
	return time.Now()
}
