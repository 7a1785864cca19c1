package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"motes-generator.backend/internal/domain/entities"
	domainerrors "motes-generator.backend/internal/domain/errors"
	"motes-generator.backend/internal/infrastructure/models"
)

// BlockRepository implements block relation operations
type BlockRepository struct {
	db *gorm.DB
}

// NewBlockRepository creates a new block repository
func NewBlockRepository(db *gorm.DB) *BlockRepository {
	return &BlockRepository{db: db}
}

// EnsureSchema creates the blocks table and its unique (blocker, blocked) index
func (r *BlockRepository) EnsureSchema(ctx context.Context) error {
	if err := ensureTable(ctx, r.db, &models.Block{}, nil, []string{"ux_blocks_pair"}); err != nil {
		return fmt.Errorf("blocks: %w", err)
	}
	return nil
}

// Exists reports whether blocker already blocked blocked
func (r *BlockRepository) Exists(ctx context.Context, blockerID, blockedID int64) (bool, error) {
	var count int64
	if err := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Block{}).
		Where("blocker_profile_id = ? AND blocked_profile_id = ?", blockerID, blockedID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts a block. Inserting an existing pair fails with ErrAlreadyExists.
func (r *BlockRepository) Create(ctx context.Context, block *entities.Block) error {
	m := &models.Block{
		BlockerProfileID: block.BlockerProfileID,
		BlockedProfileID: block.BlockedProfileID,
		CreatedAt:        block.CreatedAt,
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}

	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	block.ID = m.ID
	block.CreatedAt = m.CreatedAt
	return nil
}

// ListPairs returns every (blocker, blocked) pair
func (r *BlockRepository) ListPairs(ctx context.Context) ([]entities.ProfilePair, error) {
	var ms []models.Block
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Select("blocker_profile_id", "blocked_profile_id").
		Find(&ms).Error; err != nil {
		return nil, err
	}

	pairs := make([]entities.ProfilePair, 0, len(ms))
	for _, m := range ms {
		pairs = append(pairs, entities.ProfilePair{A: m.BlockerProfileID, B: m.BlockedProfileID})
	}
	return pairs, nil
}
