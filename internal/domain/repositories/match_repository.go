package repositories

import (
	"context"
	"time"

	"motes-generator.backend/internal/domain/entities"
)

// MatchRepository defines match data operations
type MatchRepository interface {
	EnsureSchema(ctx context.Context) error
	Create(ctx context.Context, match *entities.Match) error
	GetByID(ctx context.Context, id int64) (*entities.Match, error)
	ListPairs(ctx context.Context) ([]entities.ProfilePair, error)
	UpdateStatus(ctx context.Context, id int64, status entities.MatchStatus) error
	// ExpirePending moves every pending match that expired before now to Expired and returns the affected ids
	ExpirePending(ctx context.Context, now time.Time) ([]int64, error)
}
