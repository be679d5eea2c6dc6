// Package main provides the entry point for the review engine HTTP server.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	assignmentRouter "github.com/festy23/capstone_review/internal/assignment/router"
	assignmentService "github.com/festy23/capstone_review/internal/assignment/service"
	"github.com/festy23/capstone_review/internal/config"
	consensusRouter "github.com/festy23/capstone_review/internal/consensus/router"
	consensusService "github.com/festy23/capstone_review/internal/consensus/service"
	"github.com/festy23/capstone_review/internal/database/database"
	"github.com/festy23/capstone_review/internal/database/migrate"
	"github.com/festy23/capstone_review/internal/health"
	matchingRouter "github.com/festy23/capstone_review/internal/matching/router"
	matchingService "github.com/festy23/capstone_review/internal/matching/service"
	"github.com/festy23/capstone_review/internal/middleware"
	reviewRouter "github.com/festy23/capstone_review/internal/review/router"
	reviewService "github.com/festy23/capstone_review/internal/review/service"
	reviewerRouter "github.com/festy23/capstone_review/internal/reviewer/router"
	reviewerService "github.com/festy23/capstone_review/internal/reviewer/service"
	"github.com/festy23/capstone_review/internal/suggest"
	workloadRouter "github.com/festy23/capstone_review/internal/workload/router"
	workloadService "github.com/festy23/capstone_review/internal/workload/service"
	"github.com/festy23/capstone_review/pkg/logger"

	assignmentRepository "github.com/festy23/capstone_review/internal/assignment/repository"
	consensusRepository "github.com/festy23/capstone_review/internal/consensus/repository"
	notificationService "github.com/festy23/capstone_review/internal/notification/service"
	reviewRepository "github.com/festy23/capstone_review/internal/review/repository"
	reviewerRepository "github.com/festy23/capstone_review/internal/reviewer/repository"
	submissionRepository "github.com/festy23/capstone_review/internal/submission/repository"
	workloadRepository "github.com/festy23/capstone_review/internal/workload/repository"
)

func main() {
	cfg := config.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	zapLogger, err := logger.NewWithConfig(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		_ = zapLogger.Sync()
	}()

	db, err := database.New()
	if err != nil {
		zapLogger.Fatalw("failed to connect to database", "error", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			zapLogger.Errorw("failed to close database", "error", err)
		}
	}()

	if err := migrate.Migrate(db); err != nil {
		zapLogger.Fatalw("failed to run migrations", "error", err)
	}

	// Repositories.
	reviewerRepo := reviewerRepository.New(db)
	submissionRepo := submissionRepository.New(db)
	workloadRepo := workloadRepository.New(db, zapLogger)
	assignmentRepo := assignmentRepository.New(db)
	reviewRepo := reviewRepository.New(db)
	decisionRepo := consensusRepository.New(db)

	notifier := notificationService.New(db, zapLogger)

	var provider suggest.Provider
	if cfg.Engine.SuggestEnabled {
		provider = suggest.NewClient(
			config.GetEnv("SUGGEST_API_KEY", ""),
			cfg.Engine.SuggestModel,
			cfg.Engine.SuggestMaxInFlight,
			cfg.Engine.SuggestMaxAttempts,
			zapLogger,
		)
		zapLogger.Infow("suggestion provider enabled", "model", cfg.Engine.SuggestModel)
	}

	// Services.
	performanceSvc := reviewerService.New(reviewerRepo, cfg.Engine, zapLogger)
	workloadSvc := workloadService.New(workloadRepo, zapLogger)
	matchingSvc := matchingService.New(
		submissionRepo, reviewerRepo, performanceSvc, workloadRepo, provider, cfg.Engine, zapLogger)
	assignmentSvc := assignmentService.New(
		assignmentRepo, reviewerRepo, submissionRepo, matchingSvc, notifier, cfg.Engine, zapLogger)
	consensusSvc := consensusService.New(
		submissionRepo, reviewRepo, decisionRepo, notifier, cfg.Engine, zapLogger)
	reviewSvc := reviewService.New(
		reviewRepo, submissionRepo, reviewerRepo, assignmentSvc, consensusSvc, zapLogger)

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(middleware.Logger(zapLogger))
	r.Use(middleware.Recovery(zapLogger))

	healthHandler := health.New(db, zapLogger)
	r.GET("/health", healthHandler.Check)

	reviewerRouter.RegisterRoutes(r, performanceSvc, zapLogger)
	workloadRouter.RegisterRoutes(r, workloadSvc, zapLogger)
	matchingRouter.RegisterRoutes(r, matchingSvc, zapLogger)
	assignmentRouter.RegisterRoutes(r, assignmentSvc, zapLogger)
	reviewRouter.RegisterRoutes(r, reviewSvc, zapLogger)
	consensusRouter.RegisterRoutes(r, consensusSvc, zapLogger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sweeper := consensusService.NewSweeper(consensusSvc, cfg.Engine.SweepInterval, zapLogger)
	go sweeper.Run(ctx)

	srv := &http.Server{
		Addr:         cfg.Server.GetAddress(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		zapLogger.Infow("server starting", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	zapLogger.Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Errorw("graceful shutdown failed", "error", err)
	}
}
