package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"motes-generator.backend/internal/domain/entities"
	domainerrors "motes-generator.backend/internal/domain/errors"
	"motes-generator.backend/internal/infrastructure/models"
)

// MatchOptInRepository implements opt-in token operations
type MatchOptInRepository struct {
	db *gorm.DB
}

// NewMatchOptInRepository creates a new opt-in repository
func NewMatchOptInRepository(db *gorm.DB) *MatchOptInRepository {
	return &MatchOptInRepository{db: db}
}

// EnsureSchema creates the opt-in table and its token index
func (r *MatchOptInRepository) EnsureSchema(ctx context.Context) error {
	if err := ensureTable(ctx, r.db, &models.MatchOptIn{}, nil, []string{"ix_match_opt_in_token"}); err != nil {
		return fmt.Errorf("match_opt_in: %w", err)
	}
	return nil
}

// Create inserts an unanswered opt-in row
func (r *MatchOptInRepository) Create(ctx context.Context, optIn *entities.MatchOptIn) error {
	m := &models.MatchOptIn{
		MatchID:   optIn.MatchID,
		ProfileID: optIn.ProfileID,
		Token:     optIn.Token,
		Answer:    optIn.Answer.Ptr(),
		CreatedAt: optIn.CreatedAt,
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	optIn.ID = m.ID
	optIn.CreatedAt = m.CreatedAt
	return nil
}

// GetByToken gets the opt-in row identified by token
func (r *MatchOptInRepository) GetByToken(ctx context.Context, token string) (*entities.MatchOptIn, error) {
	var m models.MatchOptIn
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("token = ?", token).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// RecordAnswer overwrites the answer for token and stamps the answer time
func (r *MatchOptInRepository) RecordAnswer(ctx context.Context, token string, answer entities.OptInAnswer, answeredAt time.Time) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.MatchOptIn{}).
		Where("token = ?", token).
		Updates(map[string]interface{}{
			"answer":      string(answer),
			"answered_at": answeredAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ListByMatch returns every opt-in row for a match
func (r *MatchOptInRepository) ListByMatch(ctx context.Context, matchID int64) ([]*entities.MatchOptIn, error) {
	var ms []models.MatchOptIn
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Where("match_id = ?", matchID).
		Order("id ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}

	optIns := make([]*entities.MatchOptIn, 0, len(ms))
	for i := range ms {
		optIns = append(optIns, r.toEntity(&ms[i]))
	}
	return optIns, nil
}

func (r *MatchOptInRepository) toEntity(m *models.MatchOptIn) *entities.MatchOptIn {
	return &entities.MatchOptIn{
		ID:         m.ID,
		MatchID:    m.MatchID,
		ProfileID:  m.ProfileID,
		Token:      m.Token,
		Answer:     null.StringFromPtr(m.Answer),
		AnsweredAt: null.TimeFromPtr(m.AnsweredAt),
		CreatedAt:  m.CreatedAt,
	}
}
