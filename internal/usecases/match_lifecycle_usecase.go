package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"motes-generator.backend/internal/domain/entities"
	domainerrors "motes-generator.backend/internal/domain/errors"
	"motes-generator.backend/internal/domain/repositories"
	"motes-generator.backend/internal/infrastructure/metrics"
	"motes-generator.backend/pkg/logger"
)

// MinTokenLength is the shortest token accepted by Respond
const MinTokenLength = 10

// MatchLifecycleUsecase expires stale matches and records opt-in answers
type MatchLifecycleUsecase struct {
	matchRepo repositories.MatchRepository
	optInRepo repositories.MatchOptInRepository
	uow       repositories.UnitOfWork
	metrics   *metrics.Metrics
	now       func() time.Time
}

// NewMatchLifecycleUsecase creates a new lifecycle usecase
func NewMatchLifecycleUsecase(
	matchRepo repositories.MatchRepository,
	optInRepo repositories.MatchOptInRepository,
	uow repositories.UnitOfWork,
	m *metrics.Metrics,
) *MatchLifecycleUsecase {
	return &MatchLifecycleUsecase{
		matchRepo: matchRepo,
		optInRepo: optInRepo,
		uow:       uow,
		metrics:   m,
		now:       time.Now,
	}
}

// SetClock overrides the time source
func (u *MatchLifecycleUsecase) SetClock(now func() time.Time) {
	u.now = now
}

// ExpireMatches moves every pending match past its expiry to Expired
func (u *MatchLifecycleUsecase) ExpireMatches(ctx context.Context) (*entities.ExpiryResult, error) {
	if err := u.matchRepo.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}

	ids, err := u.matchRepo.ExpirePending(ctx, u.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to expire matches: %w", err)
	}
	if ids == nil {
		ids = []int64{}
	}

	u.metrics.MatchesExpired(len(ids))
	if len(ids) > 0 {
		logger.Info(ctx, "Expired pending matches", zap.Int("count", len(ids)), zap.Int64s("match_ids", ids))
	}
	return &entities.ExpiryResult{ExpiredCount: len(ids), ExpiredMatchIDs: ids}, nil
}

// Respond records answer for token and re-evaluates the owning match
func (u *MatchLifecycleUsecase) Respond(ctx context.Context, token, answer string) (*entities.OptInResult, error) {
	if len(token) < MinTokenLength {
		return nil, domainerrors.BadRequest("Missing/invalid token")
	}
	normalized := entities.OptInAnswer(strings.ToLower(answer))
	if normalized != entities.OptInAnswerYes && normalized != entities.OptInAnswerNo {
		return nil, domainerrors.BadRequest("answer must be yes or no")
	}

	if err := u.optInRepo.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}

	optIn, err := u.optInRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("Token not found")
		}
		return nil, err
	}

	result := &entities.OptInResult{MatchID: optIn.MatchID}
	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.optInRepo.RecordAnswer(txCtx, token, normalized, u.now().UTC()); err != nil {
			return err
		}

		all, err := u.optInRepo.ListByMatch(txCtx, optIn.MatchID)
		if err != nil {
			return err
		}

		match, err := u.matchRepo.GetByID(txCtx, optIn.MatchID)
		if err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				return domainerrors.NotFound("Match not found")
			}
			return err
		}

		// Expired and Cancelled are terminal; the answer is kept for the record only
		if match.Status == entities.MatchStatusExpired || match.Status == entities.MatchStatusCancelled {
			result.Status = match.Status
			return nil
		}

		result.Status = DecideMatchStatus(all)
		if result.Status == match.Status {
			return nil
		}
		return u.matchRepo.UpdateStatus(txCtx, match.ID, result.Status)
	})
	if err != nil {
		return nil, err
	}

	u.metrics.OptInAnswer(string(normalized), string(result.Status))
	logger.Info(ctx, "Opt-in answer recorded",
		zap.Int64("match_id", result.MatchID),
		zap.Int64("profile_id", optIn.ProfileID),
		zap.String("answer", string(normalized)),
		zap.String("status", string(result.Status)),
	)
	return result, nil
}

// DecideMatchStatus derives the match status from its opt-in rows. Any "no"
// cancels; two or more "yes" confirm; anything else stays pending.
func DecideMatchStatus(optIns []*entities.MatchOptIn) entities.MatchStatus {
	yes := 0
	for _, o := range optIns {
		if !o.Answer.Valid {
			continue
		}
		switch entities.OptInAnswer(strings.ToLower(o.Answer.String)) {
		case entities.OptInAnswerNo:
			return entities.MatchStatusCancelled
		case entities.OptInAnswerYes:
			yes++
		}
	}
	if yes >= 2 {
		return entities.MatchStatusConfirmed
	}
	return entities.MatchStatusPending
}
