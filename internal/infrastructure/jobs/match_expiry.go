package jobs

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"motes-generator.backend/internal/domain/entities"
	"motes-generator.backend/pkg/logger"
)

// DefaultExpiryInterval is used when no interval is configured
const DefaultExpiryInterval = 5 * time.Minute

// MatchExpirer moves stale pending matches to Expired
type MatchExpirer interface {
	ExpireMatches(ctx context.Context) (*entities.ExpiryResult, error)
}

// MatchExpiryJob periodically expires pending matches past their deadline
type MatchExpiryJob struct {
	expirer  MatchExpirer
	interval time.Duration
	stop     chan struct{}
	stopOnce sync.Once
}

func NewMatchExpiryJob(expirer MatchExpirer, interval time.Duration) *MatchExpiryJob {
	if interval <= 0 {
		interval = DefaultExpiryInterval
	}
	return &MatchExpiryJob{
		expirer:  expirer,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

// Start blocks until ctx is cancelled or Stop is called
func (j *MatchExpiryJob) Start(ctx context.Context) {
	ctx = context.WithValue(ctx, logger.TriggerKey, "expiry-job")
	logger.Info(ctx, "Starting match expiry job", zap.Duration("interval", j.interval))

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Match expiry job stopped (context cancelled)")
			return
		case <-j.stop:
			logger.Info(ctx, "Match expiry job stopped")
			return
		case <-ticker.C:
			j.processExpiredMatches(ctx)
		}
	}
}

func (j *MatchExpiryJob) Stop() {
	j.stopOnce.Do(func() { close(j.stop) })
}

func (j *MatchExpiryJob) processExpiredMatches(ctx context.Context) {
	res, err := j.expirer.ExpireMatches(ctx)
	if err != nil {
		logger.Error(ctx, "Error expiring matches", zap.Error(err))
		return
	}
	if res.ExpiredCount == 0 {
		return
	}
	logger.Info(ctx, "Expired matches", zap.Int("count", res.ExpiredCount))
}
