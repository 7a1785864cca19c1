package main

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"motes-generator.backend/internal/config"
	"motes-generator.backend/internal/domain/entities"
	"motes-generator.backend/internal/infrastructure/datasources/postgres"
	"motes-generator.backend/internal/infrastructure/notification"
	"motes-generator.backend/internal/infrastructure/repositories"
	"motes-generator.backend/internal/usecases"
	"motes-generator.backend/pkg/logger"
	"motes-generator.backend/pkg/redis"
)

// Triggers accepted in the EventBridge detail-type
const (
	TriggerExpireMatches = "expireMatches"
	TriggerMatchNow      = "matchNow"
	// scheduledEvent is the detail-type of a plain EventBridge schedule
	scheduledEvent = "Scheduled Event"
)

var (
	loadCfg     = config.Load
	initLog     = logger.Init
	initRedis   = redis.Init
	openDB      = postgres.NewConnection
	closeDB     = postgres.Close
	startLambda = func(handler interface{}) { lambda.Start(handler) }
)

// Result is returned to the scheduler as the invocation payload
type Result struct {
	Trigger    string                     `json:"trigger"`
	Expiry     *entities.ExpiryResult     `json:"expiry,omitempty"`
	Generation *entities.GenerationResult `json:"generation,omitempty"`
}

type scheduler struct {
	cfg *config.Config
}

func main() {
	cfg := loadCfg()
	initLog(cfg.Server.Env)

	if err := initRedis(cfg.Redis.URL, cfg.Redis.PASSWORD); err != nil {
		logger.Warn(context.Background(), "Redis unavailable, match generation runs without lock", zap.Error(err))
	}

	log.Printf("Scheduler ready (env=%s)", cfg.Server.Env)
	startLambda((&scheduler{cfg: cfg}).Handle)
}

// Handle runs one scheduled trigger. The database is opened and closed per
// invocation.
func (s *scheduler) Handle(ctx context.Context, event events.CloudWatchEvent) (*Result, error) {
	trigger := event.DetailType
	if trigger == "" || trigger == scheduledEvent {
		trigger = TriggerExpireMatches
	}
	ctx = context.WithValue(ctx, logger.TriggerKey, trigger)

	if trigger != TriggerExpireMatches && trigger != TriggerMatchNow {
		return nil, fmt.Errorf("unknown trigger %q", trigger)
	}

	db, err := openDB(s.cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := closeDB(db); err != nil {
			logger.Warn(ctx, "Failed to close database", zap.Error(err))
		}
	}()

	result := &Result{Trigger: trigger}
	switch trigger {
	case TriggerMatchNow:
		result.Generation, err = s.generator(db).Generate(ctx)
	default:
		result.Expiry, err = s.lifecycle(db).ExpireMatches(ctx)
	}
	if err != nil {
		logger.Error(ctx, "Scheduled run failed", zap.Error(err))
		return nil, err
	}

	logger.Info(ctx, "Scheduled run finished", zap.String("event_id", event.ID))
	return result, nil
}

func (s *scheduler) lifecycle(db *gorm.DB) *usecases.MatchLifecycleUsecase {
	return usecases.NewMatchLifecycleUsecase(
		repositories.NewMatchRepository(db),
		repositories.NewMatchOptInRepository(db),
		repositories.NewUnitOfWork(db),
		nil,
	)
}

func (s *scheduler) generator(db *gorm.DB) *usecases.MatchGeneratorUsecase {
	resend := notification.NewResendClient(s.cfg.Mail, nil)
	return usecases.NewMatchGeneratorUsecase(
		repositories.NewProfileRepository(db),
		repositories.NewMatchRepository(db),
		repositories.NewBlockRepository(db),
		repositories.NewMatchOptInRepository(db),
		repositories.NewUnitOfWork(db),
		redis.NewLocker("lock:"),
		notification.NewMatchNotifier(resend, s.cfg.Matching.PublicBaseURL, s.cfg.Mail.OverrideTo),
		nil,
		usecases.GeneratorConfig{
			CandidateLimit: s.cfg.Matching.CandidateLimit,
			MatchTTL:       s.cfg.Matching.MatchTTL,
			LockTTL:        s.cfg.Matching.LockTTL,
			Notify:         s.cfg.Matching.NotifyMatches,
		},
	)
}
