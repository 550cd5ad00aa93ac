package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kishansingy/ielts-backend-sub000/internal/cache"
	"github.com/kishansingy/ielts-backend-sub000/internal/config"
	"github.com/kishansingy/ielts-backend-sub000/internal/evaluation"
	"github.com/kishansingy/ielts-backend-sub000/internal/events"
	"github.com/kishansingy/ielts-backend-sub000/internal/handlers"
	"github.com/kishansingy/ielts-backend-sub000/internal/middleware"
	"github.com/kishansingy/ielts-backend-sub000/internal/repositories/postgres"
	"github.com/kishansingy/ielts-backend-sub000/internal/services"
	"github.com/kishansingy/ielts-backend-sub000/internal/utils"
	"github.com/kishansingy/ielts-backend-sub000/internal/validator"
	"github.com/kishansingy/ielts-backend-sub000/pkg"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := utils.NewLogger(cfg.Environment)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		return err
	}

	var scoreCache cache.CacheService
	redisClient, err := pkg.NewRedisClient(cfg)
	if err != nil {
		logger.Warn("Redis unavailable, serving scores without cache", "error", err)
	} else {
		defer redisClient.Close()
		scoreCache = cache.NewRedisCache(redisClient, logger)
	}

	publisher, err := cfg.Events.CreateEventPublisher(logger)
	if err != nil {
		logger.Error("Failed to create event publisher, falling back to mock", "error", err)
		publisher = events.NewMockEventPublisher(logger)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error("Failed to close event publisher", "error", err)
		}
	}()
	if local, ok := publisher.(*events.GoChannelEventPublisher); ok {
		msgs, err := local.Subscribe(ctx)
		if err != nil {
			return fmt.Errorf("failed to subscribe to scoring events: %w", err)
		}
		go events.LogScoredEvents(ctx, msgs, logger)
	}

	referenceService := services.NewReferenceService(logger)
	tables, err := loadReferenceTables(ctx, cfg.ReferenceTablesPath, referenceService)
	if err != nil {
		return err
	}

	evaluator := evaluation.NewEvaluator(
		evaluation.WithReferenceTables(tables),
		evaluation.WithWorkers(cfg.EvaluationWorkers),
		evaluation.WithLogger(logger),
	)

	gradingService := services.NewGradingService(services.GradingDeps{
		Evaluator:  evaluator,
		Repository: postgres.NewScorePostgreSQL(db),
		Cache:      scoreCache,
		Publisher:  publisher,
		Validator:  validator.New(),
		Logger:     logger,
		CacheTTL:   cfg.CacheTTL,
	})
	reportService := services.NewReportService(gradingService, logger)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	appLogger := utils.NewSlogLogger(logger)
	router := gin.New()
	router.Use(gin.Recovery(), utils.LoggerMiddleware(appLogger))

	var guards []gin.HandlerFunc
	if cfg.Auth.Enabled() {
		guards = append(guards, middleware.Auth(middleware.NewCasdoorTokenParser(cfg.Auth), appLogger))
	} else {
		logger.Warn("Casdoor is not configured, API routes are unauthenticated")
	}

	handlers.NewHandlerManager(gradingService, referenceService, reportService, tables, appLogger).
		SetupRoutes(router, guards...)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Evaluation service listening", "addr", srv.Addr, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// loadReferenceTables reads the configured workbook, or returns the built-in tables when none is set.
func loadReferenceTables(ctx context.Context, path string, svc services.ReferenceService) (*evaluation.ReferenceTables, error) {
	if path == "" {
		return evaluation.DefaultReferenceTables(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open reference tables: %w", err)
	}
	defer f.Close()

	tables, _, err := svc.Import(ctx, f)
	if err != nil {
		return nil, err
	}
	return tables, nil
}
