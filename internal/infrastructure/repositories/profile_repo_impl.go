package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"motes-generator.backend/internal/domain/entities"
	"motes-generator.backend/internal/infrastructure/models"
)

// ProfileRepository implements profile data operations
type ProfileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// EnsureSchema creates the profiles table or adds the consent, pause, ban and
// activity columns to a table that predates them. Safe to run on every request.
func (r *ProfileRepository) EnsureSchema(ctx context.Context) error {
	if err := ensureTable(ctx, r.db, &models.Profile{},
		[]string{"ConsentGDPR", "LastActiveAt", "IsPaused", "IsBanned", "SearchType"},
		nil,
	); err != nil {
		return fmt.Errorf("profiles: %w", err)
	}
	return nil
}

// Create inserts a profile and writes the generated id back to the entity
func (r *ProfileRepository) Create(ctx context.Context, profile *entities.Profile) error {
	m := &models.Profile{
		FullName:    profile.FullName,
		Email:       profile.Email,
		Phone:       profile.Phone,
		Gender:      profile.Gender,
		Preference:  profile.Preference,
		City:        profile.City,
		FBLink:      profile.FBLink,
		SearchType:  profile.SearchType,
		ConsentGDPR: profile.ConsentGDPR,
		IsPaused:    profile.IsPaused,
		IsBanned:    profile.IsBanned,
		CreatedAt:   profile.CreatedAt,
	}
	if profile.LastActiveAt.Valid {
		t := profile.LastActiveAt.Time
		m.LastActiveAt = &t
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}

	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	profile.ID = m.ID
	profile.CreatedAt = m.CreatedAt
	return nil
}

// GetByIDs loads the given profiles; unknown ids are skipped
func (r *ProfileRepository) GetByIDs(ctx context.Context, ids []int64) ([]*entities.Profile, error) {
	if len(ids) == 0 {
		return []*entities.Profile{}, nil
	}
	var ms []models.Profile
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id IN ?", ids).Find(&ms).Error; err != nil {
		return nil, err
	}
	return r.toEntities(ms), nil
}

// ListEligible returns up to limit profiles that consented and are neither
// paused nor banned, in random order.
func (r *ProfileRepository) ListEligible(ctx context.Context, limit int) ([]*entities.Profile, error) {
	var ms []models.Profile
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Where("consent_gdpr = ? AND is_paused = ? AND is_banned = ?", true, false, false).
		Order("RANDOM()").
		Limit(limit).
		Find(&ms).Error; err != nil {
		return nil, err
	}
	return r.toEntities(ms), nil
}

// List returns the admin view of profiles, newest first. A limit of 0 returns all rows.
func (r *ProfileRepository) List(ctx context.Context, limit, offset int) ([]*entities.ProfileSummary, int64, error) {
	db := GetDB(ctx, r.db)

	var total int64
	if err := db.WithContext(ctx).Model(&models.Profile{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := db.WithContext(ctx).Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	var ms []models.Profile
	if err := query.Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	items := make([]*entities.ProfileSummary, 0, len(ms))
	for _, m := range ms {
		items = append(items, &entities.ProfileSummary{
			ID:         m.ID,
			FullName:   m.FullName,
			City:       m.City,
			SearchType: m.SearchType,
		})
	}
	return items, total, nil
}

// Delete removes a profile and reports whether a row was deleted
func (r *ProfileRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result := GetDB(ctx, r.db).WithContext(ctx).Delete(&models.Profile{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *ProfileRepository) toEntities(ms []models.Profile) []*entities.Profile {
	profiles := make([]*entities.Profile, 0, len(ms))
	for i := range ms {
		profiles = append(profiles, r.toEntity(&ms[i]))
	}
	return profiles
}

func (r *ProfileRepository) toEntity(m *models.Profile) *entities.Profile {
	return &entities.Profile{
		ID:           m.ID,
		FullName:     m.FullName,
		Email:        m.Email,
		Phone:        m.Phone,
		Gender:       m.Gender,
		Preference:   m.Preference,
		City:         m.City,
		FBLink:       m.FBLink,
		SearchType:   m.SearchType,
		ConsentGDPR:  m.ConsentGDPR,
		IsPaused:     m.IsPaused,
		IsBanned:     m.IsBanned,
		LastActiveAt: null.TimeFromPtr(m.LastActiveAt),
		CreatedAt:    m.CreatedAt,
	}
}
