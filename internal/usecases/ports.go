package usecases

import (
	"context"
	"time"

	"motes-generator.backend/internal/infrastructure/notification"
)

// Locker serializes work across server instances
type Locker interface {
	Acquire(ctx context.Context, name string, ttl time.Duration) (func(context.Context), error)
}

// MatchNotifier tells both parties about a new match
type MatchNotifier interface {
	NotifyMatch(ctx context.Context, notice notification.MatchNotice) error
}

// EmailSender delivers a single email
type EmailSender interface {
	CheckConfig() error
	Send(ctx context.Context, email notification.Email) (*notification.SendResult, error)
}
