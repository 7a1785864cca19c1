package usecases

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"motes-generator.backend/internal/domain/entities"
	domainerrors "motes-generator.backend/internal/domain/errors"
	"motes-generator.backend/internal/domain/repositories"
	"motes-generator.backend/pkg/logger"
	"motes-generator.backend/pkg/utils"
)

// ProfileUsecase handles profile intake and administration
type ProfileUsecase struct {
	profileRepo repositories.ProfileRepository
	now         func() time.Time
}

// NewProfileUsecase creates a new profile usecase
func NewProfileUsecase(profileRepo repositories.ProfileRepository) *ProfileUsecase {
	return &ProfileUsecase{profileRepo: profileRepo, now: time.Now}
}

// Submit validates consent and stores a new profile, returning its id
func (u *ProfileUsecase) Submit(ctx context.Context, input *entities.SubmitProfileInput) (int64, error) {
	if input == nil || !input.ConsentGDPR {
		return 0, domainerrors.BadRequest("Missing GDPR consent. ConsentGDPR must be true.")
	}

	searchType := strings.TrimSpace(input.SearchType)
	if searchType == "" {
		searchType = entities.DefaultSearchType
	}

	if err := u.profileRepo.EnsureSchema(ctx); err != nil {
		return 0, fmt.Errorf("failed to ensure schema: %w", err)
	}

	now := u.now().UTC()
	profile := &entities.Profile{
		FullName:    input.FullName,
		Email:       input.Email,
		Phone:       input.Phone,
		Gender:      input.Gender,
		Preference:  input.Preference,
		City:        input.City,
		FBLink:      input.FBLink,
		SearchType:  searchType,
		ConsentGDPR: true,
		CreatedAt:   now,
	}
	profile.LastActiveAt.SetValid(now)

	if err := u.profileRepo.Create(ctx, profile); err != nil {
		return 0, err
	}

	logger.Info(ctx, "Profile submitted", zap.Int64("profile_id", profile.ID), zap.String("search_type", searchType))
	return profile.ID, nil
}

// List returns one page of profile summaries, newest first
func (u *ProfileUsecase) List(ctx context.Context, pagination utils.PaginationParams) ([]*entities.ProfileSummary, utils.PaginationMeta, error) {
	if err := u.profileRepo.EnsureSchema(ctx); err != nil {
		return nil, utils.PaginationMeta{}, fmt.Errorf("failed to ensure schema: %w", err)
	}

	profiles, total, err := u.profileRepo.List(ctx, pagination.Limit, pagination.CalculateOffset())
	if err != nil {
		return nil, utils.PaginationMeta{}, err
	}
	return profiles, utils.CalculateMeta(total, pagination.Page, pagination.Limit), nil
}

// Delete removes a profile and reports whether a row was deleted
func (u *ProfileUsecase) Delete(ctx context.Context, id int64) (bool, error) {
	if id <= 0 {
		return false, domainerrors.BadRequest("id must be a positive integer")
	}

	deleted, err := u.profileRepo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	logger.Info(ctx, "Profile delete", zap.Int64("profile_id", id), zap.Bool("deleted", deleted))
	return deleted, nil
}
