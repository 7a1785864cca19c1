package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"motes-generator.backend/internal/config"
	"motes-generator.backend/internal/infrastructure/datasources/postgres"
	"motes-generator.backend/internal/infrastructure/jobs"
	"motes-generator.backend/internal/infrastructure/metrics"
	"motes-generator.backend/internal/infrastructure/notification"
	"motes-generator.backend/internal/infrastructure/repositories"
	"motes-generator.backend/internal/interfaces/http/handlers"
	"motes-generator.backend/internal/interfaces/http/middleware"
	"motes-generator.backend/internal/usecases"
	"motes-generator.backend/pkg/logger"
	"motes-generator.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = postgres.NewConnection
	closeDB    = postgres.Close
	runServer  = func(h http.Handler, port string) error {
		srv := &http.Server{
			Addr:              ":" + port,
			Handler:           h,
			ReadHeaderTimeout: 10 * time.Second,
		}
		return srv.ListenAndServe()
	}
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	ctx := context.Background()
	logger.Info(ctx, "Logger initialized", zap.String("env", cfg.Server.Env))

	// Redis only backs the generation lock and idempotency cache; both
	// degrade to pass-through when it is missing.
	if err := initRedis(cfg.Redis.URL, cfg.Redis.PASSWORD); err != nil {
		logger.Warn(ctx, "Redis unavailable, continuing without lock and idempotency cache", zap.Error(err))
	} else {
		logger.Info(ctx, "Redis initialized")
	}

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := closeDB(db); err != nil {
			logger.Warn(ctx, "Failed to close database", zap.Error(err))
		}
	}()
	logger.Info(ctx, "Connected to database")

	m := metrics.New()
	deps, lifecycle, err := buildRouteDeps(cfg, db, m)
	if err != nil {
		return err
	}

	jobCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	expiryJob := jobs.NewMatchExpiryJob(lifecycle, cfg.Matching.ExpiryInterval)
	go expiryJob.Start(jobCtx)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware(m))

	registerHealthRoute(r, deps)
	registerAppRoutes(r, deps)

	for _, route := range r.Routes() {
		logger.Debug(ctx, "Route registered", zap.String("method", route.Method), zap.String("path", route.Path))
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info(ctx, "Shutting down server")
		expiryJob.Stop()
		cancel()
	}()

	logger.Info(ctx, "MotesGenerator backend starting", zap.String("port", cfg.Server.Port))
	if err := runServer(applyCORSMiddleware(r, cfg.Server.CORSAllowedOrigins), cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// buildRouteDeps wires repositories, usecases and handlers over db
func buildRouteDeps(cfg *config.Config, db *gorm.DB, m *metrics.Metrics) (routeDeps, *usecases.MatchLifecycleUsecase, error) {
	profileRepo := repositories.NewProfileRepository(db)
	matchRepo := repositories.NewMatchRepository(db)
	blockRepo := repositories.NewBlockRepository(db)
	optInRepo := repositories.NewMatchOptInRepository(db)
	uow := repositories.NewUnitOfWork(db)

	resend := notification.NewResendClient(cfg.Mail, nil)
	notifier := notification.NewMatchNotifier(resend, cfg.Matching.PublicBaseURL, cfg.Mail.OverrideTo)

	generator := usecases.NewMatchGeneratorUsecase(
		profileRepo, matchRepo, blockRepo, optInRepo, uow,
		redis.NewLocker("lock:"), notifier, m,
		usecases.GeneratorConfig{
			CandidateLimit: cfg.Matching.CandidateLimit,
			MatchTTL:       cfg.Matching.MatchTTL,
			LockTTL:        cfg.Matching.LockTTL,
			Notify:         cfg.Matching.NotifyMatches,
		},
	)
	lifecycle := usecases.NewMatchLifecycleUsecase(matchRepo, optInRepo, uow, m)

	sqlDB, err := db.DB()
	if err != nil {
		return routeDeps{}, nil, fmt.Errorf("failed to get generic database object: %w", err)
	}

	return routeDeps{
		profileHandler: handlers.NewProfileHandler(usecases.NewProfileUsecase(profileRepo)),
		matchHandler:   handlers.NewMatchHandler(generator, lifecycle),
		blockHandler:   handlers.NewBlockHandler(usecases.NewBlockUsecase(blockRepo)),
		emailHandler:   handlers.NewEmailHandler(usecases.NewEmailUsecase(resend, cfg.Mail.OverrideTo, m)),
		healthHandler:  handlers.NewHealthHandler(sqlDB),
		metricsHandler: m.Handler(),
	}, lifecycle, nil
}
