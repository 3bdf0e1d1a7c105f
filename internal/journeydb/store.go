package journeydb

import (
	"context"

	"github.com/starford/raido/internal/models"
)

// Store defines the journey persistence operations. Consumers should
// depend on this interface rather than the concrete *DB type to
// facilitate testing with mocks.
type Store interface {
	CreateJourney(ctx context.Context, j *models.Journey) error
	GetJourney(ctx context.Context, id string) (*models.Journey, error)
	ListJourneys(ctx context.Context, limit, offset int) ([]JourneyListItem, int, error)
	Close() error
}

// Verify *DB satisfies Store at compile time.
var _ Store = (*DB)(nil)
