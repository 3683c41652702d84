// @title PartSync API
// @version 1.0
// @description Reconciles CAD part models against their drawings and serves property suggestions for review.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "partsync/docs"
	"partsync/internal/config"
	"partsync/internal/handler"
	"partsync/internal/logging"
	"partsync/internal/middleware"
	noopnotify "partsync/internal/notify/noop"
	sesnotify "partsync/internal/notify/ses"
	"partsync/internal/port"
	"partsync/internal/property"
	"partsync/internal/reconcile"
	"partsync/internal/repository/postgres"
	"partsync/internal/router"
	"partsync/internal/service"
	s3storage "partsync/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.New(&cfg.Log, "partsync-server")
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	runRepo := postgres.NewRunRepo(db)
	decisionRepo := postgres.NewDecisionRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	notifier, err := newNotifier(&cfg.Email, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize notifier: %w", err)
	}

	// Engine and mapper tables are built once and shared read-only.
	reconciler := service.NewReconciler(
		reconcile.NewEngine(reconcile.TablesFromConfig(&cfg.Reconcile)),
		property.NewMapper(property.DefaultsFromConfig(&cfg.Routing)),
	)

	// Initialize services
	reconcileSvc := service.NewReconcileService(reconciler, runRepo, notifier, logger)
	reviewSvc := service.NewReviewService(runRepo, decisionRepo, logger)
	exportSvc := service.NewExportService(runRepo, decisionRepo, s3Client, &cfg.S3, logger)

	// Setup router
	r := router.Setup(
		middleware.NewTokenVerifier(&cfg.JWT),
		cfg.CORS.AllowedOrigins,
		logger,
		router.Handlers{
			Health:    handler.NewHealthHandler(db),
			Reconcile: handler.NewReconcileHandler(reconcileSvc),
			Review:    handler.NewReviewHandler(reviewSvc),
			Export:    handler.NewExportHandler(exportSvc),
		},
	)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			zap.String("addr", cfg.Server.Port),
			zap.String("environment", cfg.Server.Environment),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
		logger.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

func newNotifier(cfg *config.EmailConfig, logger *zap.Logger) (port.ConflictNotifier, error) {
	switch cfg.Provider {
	case "ses":
		return sesnotify.NewSESNotifier(cfg)
	default:
		logger.Info("conflict alerts are logged only", zap.String("provider", cfg.Provider))
		return noopnotify.NewNoopNotifier(cfg.ReviewURL, logger), nil
	}
}
