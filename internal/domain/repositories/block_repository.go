package repositories

import (
	"context"

	"motes-generator.backend/internal/domain/entities"
)

// BlockRepository defines block relation operations
type BlockRepository interface {
	EnsureSchema(ctx context.Context) error
	Exists(ctx context.Context, blockerID, blockedID int64) (bool, error)
	Create(ctx context.Context, block *entities.Block) error
	ListPairs(ctx context.Context) ([]entities.ProfilePair, error)
}
