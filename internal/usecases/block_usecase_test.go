package usecases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"motes-generator.backend/internal/domain/entities"
	domainerrors "motes-generator.backend/internal/domain/errors"
	"motes-generator.backend/internal/usecases"
)

func TestBlockPair_Validation(t *testing.T) {
	repo := new(MockBlockRepository)
	uc := usecases.NewBlockUsecase(repo)

	tests := []struct {
		name    string
		blocker int64
		blocked int64
		msg     string
	}{
		{"missing blocker", 0, 15, "POST JSON: { blockerId: 14, blockedId: 15 }"},
		{"negative blocked", 14, -1, "POST JSON: { blockerId: 14, blockedId: 15 }"},
		{"self block", 7, 7, "blockerId and blockedId cannot be same"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := uc.BlockPair(context.Background(), tt.blocker, tt.blocked)
			require.ErrorIs(t, err, domainerrors.ErrInvalidInput)
			assert.Equal(t, tt.msg, domainerrors.AsAppError(err).Message)
		})
	}
	repo.AssertNotCalled(t, "EnsureSchema", mock.Anything)
}

func TestBlockPair_CreatesOnce(t *testing.T) {
	repo := new(MockBlockRepository)
	repo.On("EnsureSchema", mock.Anything).Return(nil)
	repo.On("Exists", mock.Anything, int64(14), int64(15)).Return(false, nil).Once()
	repo.On("Create", mock.Anything, &entities.Block{BlockerProfileID: 14, BlockedProfileID: 15}).Return(nil).Once()
	repo.On("Exists", mock.Anything, int64(14), int64(15)).Return(true, nil).Once()

	uc := usecases.NewBlockUsecase(repo)
	require.NoError(t, uc.BlockPair(context.Background(), 14, 15))
	require.NoError(t, uc.BlockPair(context.Background(), 14, 15))

	repo.AssertNumberOfCalls(t, "Create", 1)
}

func TestBlockPair_ToleratesConcurrentInsert(t *testing.T) {
	repo := new(MockBlockRepository)
	repo.On("EnsureSchema", mock.Anything).Return(nil)
	repo.On("Exists", mock.Anything, int64(1), int64(2)).Return(false, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(domainerrors.ErrAlreadyExists)

	require.NoError(t, usecases.NewBlockUsecase(repo).BlockPair(context.Background(), 1, 2))
}

func TestBlockPair_StorageError(t *testing.T) {
	repo := new(MockBlockRepository)
	repo.On("EnsureSchema", mock.Anything).Return(nil)
	repo.On("Exists", mock.Anything, int64(1), int64(2)).Return(false, errors.New("db down"))

	err := usecases.NewBlockUsecase(repo).BlockPair(context.Background(), 1, 2)
	require.EqualError(t, err, "db down")
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
