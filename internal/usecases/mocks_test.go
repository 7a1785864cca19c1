package usecases_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"motes-generator.backend/internal/domain/entities"
	"motes-generator.backend/internal/infrastructure/notification"
)

// Mock UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Do(ctx context.Context, f func(context.Context) error) error {
	m.Called(ctx, f)
	return f(ctx)
}

// Mock ProfileRepository
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) EnsureSchema(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockProfileRepository) Create(ctx context.Context, profile *entities.Profile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *MockProfileRepository) GetByIDs(ctx context.Context, ids []int64) ([]*entities.Profile, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Profile), args.Error(1)
}

func (m *MockProfileRepository) ListEligible(ctx context.Context, limit int) ([]*entities.Profile, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Profile), args.Error(1)
}

func (m *MockProfileRepository) List(ctx context.Context, limit, offset int) ([]*entities.ProfileSummary, int64, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.ProfileSummary), args.Get(1).(int64), args.Error(2)
}

func (m *MockProfileRepository) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// Mock MatchRepository
type MockMatchRepository struct {
	mock.Mock
}

func (m *MockMatchRepository) EnsureSchema(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockMatchRepository) Create(ctx context.Context, match *entities.Match) error {
	return m.Called(ctx, match).Error(0)
}

func (m *MockMatchRepository) GetByID(ctx context.Context, id int64) (*entities.Match, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Match), args.Error(1)
}

func (m *MockMatchRepository) ListPairs(ctx context.Context) ([]entities.ProfilePair, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.ProfilePair), args.Error(1)
}

func (m *MockMatchRepository) UpdateStatus(ctx context.Context, id int64, status entities.MatchStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockMatchRepository) ExpirePending(ctx context.Context, now time.Time) ([]int64, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

// Mock BlockRepository
type MockBlockRepository struct {
	mock.Mock
}

func (m *MockBlockRepository) EnsureSchema(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockBlockRepository) Exists(ctx context.Context, blockerID, blockedID int64) (bool, error) {
	args := m.Called(ctx, blockerID, blockedID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBlockRepository) Create(ctx context.Context, block *entities.Block) error {
	return m.Called(ctx, block).Error(0)
}

func (m *MockBlockRepository) ListPairs(ctx context.Context) ([]entities.ProfilePair, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.ProfilePair), args.Error(1)
}

// Mock MatchOptInRepository
type MockMatchOptInRepository struct {
	mock.Mock
}

func (m *MockMatchOptInRepository) EnsureSchema(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockMatchOptInRepository) Create(ctx context.Context, optIn *entities.MatchOptIn) error {
	return m.Called(ctx, optIn).Error(0)
}

func (m *MockMatchOptInRepository) GetByToken(ctx context.Context, token string) (*entities.MatchOptIn, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.MatchOptIn), args.Error(1)
}

func (m *MockMatchOptInRepository) RecordAnswer(ctx context.Context, token string, answer entities.OptInAnswer, answeredAt time.Time) error {
	return m.Called(ctx, token, answer, answeredAt).Error(0)
}

func (m *MockMatchOptInRepository) ListByMatch(ctx context.Context, matchID int64) ([]*entities.MatchOptIn, error) {
	args := m.Called(ctx, matchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.MatchOptIn), args.Error(1)
}

// Mock Locker
type MockLocker struct {
	mock.Mock
	released int
}

func (m *MockLocker) Acquire(ctx context.Context, name string, ttl time.Duration) (func(context.Context), error) {
	args := m.Called(ctx, name, ttl)
	if err := args.Error(0); err != nil {
		return nil, err
	}
	return func(context.Context) { m.released++ }, nil
}

// Mock MatchNotifier
type MockMatchNotifier struct {
	mock.Mock
}

func (m *MockMatchNotifier) NotifyMatch(ctx context.Context, notice notification.MatchNotice) error {
	return m.Called(ctx, notice).Error(0)
}

// Mock EmailSender
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) CheckConfig() error {
	return m.Called().Error(0)
}

func (m *MockEmailSender) Send(ctx context.Context, email notification.Email) (*notification.SendResult, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notification.SendResult), args.Error(1)
}
