package repositories

import (
	"context"

	"motes-generator.backend/internal/domain/entities"
)

// ProfileRepository defines profile data operations
type ProfileRepository interface {
	// EnsureSchema creates the profiles table and adds missing consent/pause/ban/activity columns
	EnsureSchema(ctx context.Context) error
	Create(ctx context.Context, profile *entities.Profile) error
	GetByIDs(ctx context.Context, ids []int64) ([]*entities.Profile, error)
	ListEligible(ctx context.Context, limit int) ([]*entities.Profile, error)
	List(ctx context.Context, limit, offset int) ([]*entities.ProfileSummary, int64, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
