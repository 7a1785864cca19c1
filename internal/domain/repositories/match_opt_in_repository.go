package repositories

import (
	"context"
	"time"

	"motes-generator.backend/internal/domain/entities"
)

// MatchOptInRepository defines opt-in token operations
type MatchOptInRepository interface {
	EnsureSchema(ctx context.Context) error
	Create(ctx context.Context, optIn *entities.MatchOptIn) error
	GetByToken(ctx context.Context, token string) (*entities.MatchOptIn, error)
	RecordAnswer(ctx context.Context, token string, answer entities.OptInAnswer, answeredAt time.Time) error
	ListByMatch(ctx context.Context, matchID int64) ([]*entities.MatchOptIn, error)
}
