package usecases

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"motes-generator.backend/internal/domain/entities"
	domainerrors "motes-generator.backend/internal/domain/errors"
	"motes-generator.backend/internal/domain/repositories"
	"motes-generator.backend/pkg/logger"
)

// BlockUsecase records directional blocks between profiles
type BlockUsecase struct {
	blockRepo repositories.BlockRepository
}

// NewBlockUsecase creates a new block usecase
func NewBlockUsecase(blockRepo repositories.BlockRepository) *BlockUsecase {
	return &BlockUsecase{blockRepo: blockRepo}
}

// BlockPair stores a block from blockerID to blockedID. Repeating an existing
// block succeeds without writing.
func (u *BlockUsecase) BlockPair(ctx context.Context, blockerID, blockedID int64) error {
	if blockerID <= 0 || blockedID <= 0 {
		return domainerrors.BadRequest("POST JSON: { blockerId: 14, blockedId: 15 }")
	}
	if blockerID == blockedID {
		return domainerrors.BadRequest("blockerId and blockedId cannot be same")
	}

	if err := u.blockRepo.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}

	exists, err := u.blockRepo.Exists(ctx, blockerID, blockedID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	err = u.blockRepo.Create(ctx, &entities.Block{BlockerProfileID: blockerID, BlockedProfileID: blockedID})
	if err != nil && !errors.Is(err, domainerrors.ErrAlreadyExists) {
		return err
	}

	logger.Info(ctx, "Profile blocked", zap.Int64("blocker_id", blockerID), zap.Int64("blocked_id", blockedID))
	return nil
}
