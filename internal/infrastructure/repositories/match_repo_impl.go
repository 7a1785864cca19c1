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

// MatchRepository implements match data operations
type MatchRepository struct {
	db *gorm.DB
}

// NewMatchRepository creates a new match repository
func NewMatchRepository(db *gorm.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

// EnsureSchema creates the matches table, or adds the pair key column and its
// unique index to a table created before pairs were keyed.
func (r *MatchRepository) EnsureSchema(ctx context.Context) error {
	if err := ensureTable(ctx, r.db, &models.Match{}, []string{"PairKey"}, []string{"ux_matches_pair"}); err != nil {
		return fmt.Errorf("matches: %w", err)
	}
	return nil
}

// Create inserts a match. A second match for the same unordered pair fails
// with ErrAlreadyExists.
func (r *MatchRepository) Create(ctx context.Context, match *entities.Match) error {
	expiresAt := match.ExpiresAt
	pairKey := entities.PairKey(match.ProfileAID, match.ProfileBID)
	m := &models.Match{
		ProfileAID: match.ProfileAID,
		ProfileBID: match.ProfileBID,
		PairKey:    &pairKey,
		City:       match.City,
		SearchType: match.SearchType,
		Status:     string(match.Status),
		CreatedAt:  match.CreatedAt,
		ExpiresAt:  &expiresAt,
	}

	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("pair %s: %w", pairKey, domainerrors.ErrAlreadyExists)
		}
		return err
	}
	match.ID = m.ID
	return nil
}

// GetByID gets a match by id
func (r *MatchRepository) GetByID(ctx context.Context, id int64) (*entities.Match, error) {
	var m models.Match
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// ListPairs returns the profile pair of every match regardless of status
func (r *MatchRepository) ListPairs(ctx context.Context) ([]entities.ProfilePair, error) {
	var rows []struct {
		ProfileAID int64
		ProfileBID int64
	}
	if err := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Match{}).
		Select("profile_a_id", "profile_b_id").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	pairs := make([]entities.ProfilePair, 0, len(rows))
	for _, row := range rows {
		pairs = append(pairs, entities.ProfilePair{A: row.ProfileAID, B: row.ProfileBID})
	}
	return pairs, nil
}

// UpdateStatus sets the status of a match
func (r *MatchRepository) UpdateStatus(ctx context.Context, id int64, status entities.MatchStatus) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Match{}).
		Where("id = ?", id).
		Update("status", string(status))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ExpirePending marks pending matches whose expiry passed as Expired. The
// select and update share one transaction; the update re-checks the status so
// a match answered in between is left alone.
func (r *MatchRepository) ExpirePending(ctx context.Context, now time.Time) ([]int64, error) {
	ids := []int64{}
	err := GetDB(ctx, r.db).WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var candidates []int64
		if err := tx.Model(&models.Match{}).
			Where("status = ? AND expires_at IS NOT NULL AND expires_at < ?", string(entities.MatchStatusPending), now).
			Order("id ASC").
			Pluck("id", &candidates).Error; err != nil {
			return err
		}
		if len(candidates) == 0 {
			return nil
		}

		if err := tx.Model(&models.Match{}).
			Where("id IN ? AND status = ?", candidates, string(entities.MatchStatusPending)).
			Update("status", string(entities.MatchStatusExpired)).Error; err != nil {
			return err
		}
		ids = candidates
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *MatchRepository) toEntity(m *models.Match) *entities.Match {
	match := &entities.Match{
		ID:         m.ID,
		ProfileAID: m.ProfileAID,
		ProfileBID: m.ProfileBID,
		City:       m.City,
		SearchType: m.SearchType,
		Status:     entities.MatchStatus(m.Status),
		CreatedAt:  m.CreatedAt,
	}
	if m.ExpiresAt != nil {
		match.ExpiresAt = *m.ExpiresAt
	}
	return match
}
