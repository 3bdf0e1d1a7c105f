// Package testutil provides shared test helpers: a temporary journey
// database and deterministic id/clock capabilities.
package testutil

import (
	"fmt"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/starford/raido/internal/journeydb"
)

// TestDB creates a temporary SQLite journey database that is
// automatically cleaned up.
func TestDB(t *testing.T) *journeydb.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "raido-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := journeydb.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// SeqGen is a deterministic id generator producing "id-1", "id-2", ...
type SeqGen struct {
	n atomic.Int64
}

// NewID returns the next sequential identifier.
func (g *SeqGen) NewID() string {
	return fmt.Sprintf("id-%d", g.n.Add(1))
}

// FixedClock always reports the same instant.
type FixedClock struct {
	T time.Time
}

// Now returns the fixed instant.
func (c FixedClock) Now() time.Time {
	return c.T
}
