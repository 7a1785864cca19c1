package usecases

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"motes-generator.backend/internal/domain/entities"
	domainerrors "motes-generator.backend/internal/domain/errors"
	"motes-generator.backend/internal/domain/repositories"
	"motes-generator.backend/internal/infrastructure/metrics"
	"motes-generator.backend/internal/infrastructure/notification"
	"motes-generator.backend/pkg/crypto"
	"motes-generator.backend/pkg/logger"
	"motes-generator.backend/pkg/redis"
)

const generationLockName = "matchNow"

// GeneratorConfig tunes a generation run
type GeneratorConfig struct {
	CandidateLimit int
	MatchTTL       time.Duration
	LockTTL        time.Duration
	Notify         bool
}

// MatchGeneratorUsecase picks and persists one new match per run
type MatchGeneratorUsecase struct {
	profileRepo repositories.ProfileRepository
	matchRepo   repositories.MatchRepository
	blockRepo   repositories.BlockRepository
	optInRepo   repositories.MatchOptInRepository
	uow         repositories.UnitOfWork
	locker      Locker
	notifier    MatchNotifier
	metrics     *metrics.Metrics
	cfg         GeneratorConfig

	now      func() time.Time
	pick     func(n int) int
	newToken func() (string, error)
}

// NewMatchGeneratorUsecase creates a new match generator. locker, notifier
// and m may be nil.
func NewMatchGeneratorUsecase(
	profileRepo repositories.ProfileRepository,
	matchRepo repositories.MatchRepository,
	blockRepo repositories.BlockRepository,
	optInRepo repositories.MatchOptInRepository,
	uow repositories.UnitOfWork,
	locker Locker,
	notifier MatchNotifier,
	m *metrics.Metrics,
	cfg GeneratorConfig,
) *MatchGeneratorUsecase {
	if cfg.CandidateLimit <= 0 {
		cfg.CandidateLimit = 500
	}
	if cfg.MatchTTL <= 0 {
		cfg.MatchTTL = 48 * time.Hour
	}
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = 30 * time.Second
	}
	return &MatchGeneratorUsecase{
		profileRepo: profileRepo,
		matchRepo:   matchRepo,
		blockRepo:   blockRepo,
		optInRepo:   optInRepo,
		uow:         uow,
		locker:      locker,
		notifier:    notifier,
		metrics:     m,
		cfg:         cfg,
		now:         time.Now,
		pick:        rand.Intn,
		newToken:    crypto.GenerateOptInToken,
	}
}

// SetRandomSource makes candidate selection deterministic
func (u *MatchGeneratorUsecase) SetRandomSource(src rand.Source) {
	r := rand.New(src)
	u.pick = r.Intn
}

// SetClock overrides the time source
func (u *MatchGeneratorUsecase) SetClock(now func() time.Time) {
	u.now = now
}

// Generate runs one generation pass. A run that finds no pair is not an
// error; the result carries the reason instead.
func (u *MatchGeneratorUsecase) Generate(ctx context.Context) (*entities.GenerationResult, error) {
	if u.locker != nil {
		release, err := u.locker.Acquire(ctx, generationLockName, u.cfg.LockTTL)
		switch {
		case errors.Is(err, redis.ErrLockHeld):
			u.metrics.MatchGeneration(metrics.OutcomeConflict)
			return nil, domainerrors.Conflict("match generation already in progress")
		case err != nil:
			// unique pair key still guards against duplicates
			logger.Warn(ctx, "Match generation lock unavailable, continuing without it", zap.Error(err))
		default:
			defer release(context.WithoutCancel(ctx))
		}
	}

	result, err := u.generate(ctx)
	if err != nil {
		if errors.Is(err, domainerrors.ErrConflict) {
			u.metrics.MatchGeneration(metrics.OutcomeConflict)
		} else {
			u.metrics.MatchGeneration(metrics.OutcomeError)
		}
		return nil, err
	}
	return result, nil
}

func (u *MatchGeneratorUsecase) generate(ctx context.Context) (*entities.GenerationResult, error) {
	if err := u.ensureSchema(ctx); err != nil {
		return nil, err
	}

	profiles, err := u.profileRepo.ListEligible(ctx, u.cfg.CandidateLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load eligible profiles: %w", err)
	}
	if len(profiles) < 2 {
		u.metrics.MatchGeneration(metrics.OutcomeNotEnough)
		return &entities.GenerationResult{Reason: entities.ReasonNotEnoughProfiles}, nil
	}

	blockPairs, err := u.blockRepo.ListPairs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load blocks: %w", err)
	}
	matchPairs, err := u.matchRepo.ListPairs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load previous matches: %w", err)
	}

	candidates := CompatiblePairs(profiles, NewPairIndex(blockPairs), NewPairIndex(matchPairs))
	if len(candidates) == 0 {
		u.metrics.MatchGeneration(metrics.OutcomeNoPair)
		logger.Info(ctx, "No eligible pair found", zap.Int("profiles", len(profiles)))
		return &entities.GenerationResult{Reason: entities.ReasonNoEligiblePair}, nil
	}

	chosen := candidates[u.pick(len(candidates))]
	a, b := chosen[0], chosen[1]

	now := u.now().UTC()
	match := &entities.Match{
		ProfileAID: a.ID,
		ProfileBID: b.ID,
		City:       a.City,
		SearchType: a.SearchType,
		Status:     entities.MatchStatusPending,
		CreatedAt:  now,
		ExpiresAt:  now.Add(u.cfg.MatchTTL),
	}
	tokens := make(map[int64]string, 2)

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.matchRepo.Create(txCtx, match); err != nil {
			return err
		}
		for _, p := range []*entities.Profile{a, b} {
			token, err := u.newToken()
			if err != nil {
				return err
			}
			if err := u.optInRepo.Create(txCtx, &entities.MatchOptIn{
				MatchID:   match.ID,
				ProfileID: p.ID,
				Token:     token,
				CreatedAt: now,
			}); err != nil {
				return fmt.Errorf("failed to create opt-in: %w", err)
			}
			tokens[p.ID] = token
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return nil, domainerrors.Conflict("pair already matched")
		}
		return nil, err
	}

	u.metrics.MatchGeneration(metrics.OutcomeCreated)
	logger.Info(ctx, "Match created",
		zap.Int64("match_id", match.ID),
		zap.Int64("profile_a_id", a.ID),
		zap.Int64("profile_b_id", b.ID),
		zap.Int("candidates", len(candidates)),
	)

	u.notify(ctx, match, a, b, tokens)

	return &entities.GenerationResult{
		Match: &entities.MatchSummary{
			MatchID:    match.ID,
			City:       match.City,
			SearchType: match.SearchType,
			A:          entities.MatchParticipant{ID: a.ID, FirstName: a.FirstName()},
			B:          entities.MatchParticipant{ID: b.ID, FirstName: b.FirstName()},
		},
	}, nil
}

func (u *MatchGeneratorUsecase) ensureSchema(ctx context.Context) error {
	for _, ensure := range []func(context.Context) error{
		u.profileRepo.EnsureSchema,
		u.matchRepo.EnsureSchema,
		u.blockRepo.EnsureSchema,
		u.optInRepo.EnsureSchema,
	} {
		if err := ensure(ctx); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}

func (u *MatchGeneratorUsecase) notify(ctx context.Context, match *entities.Match, a, b *entities.Profile, tokens map[int64]string) {
	if !u.cfg.Notify || u.notifier == nil {
		return
	}
	err := u.notifier.NotifyMatch(ctx, notification.MatchNotice{
		MatchID:    match.ID,
		City:       match.City,
		SearchType: match.SearchType,
		Parties: []notification.MatchParty{
			{Email: a.Email, FirstName: a.FirstName(), PartnerName: b.FirstName(), Token: tokens[a.ID]},
			{Email: b.Email, FirstName: b.FirstName(), PartnerName: a.FirstName(), Token: tokens[b.ID]},
		},
	})
	u.metrics.Email(metrics.EmailKindMatchCreated, err)
	if err != nil {
		logger.Warn(ctx, "Match notification failed", zap.Int64("match_id", match.ID), zap.Error(err))
	}
}
