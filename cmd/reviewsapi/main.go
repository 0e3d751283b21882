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
	"github.com/joho/godotenv"

	"reviewstats/internal/cache"
	"reviewstats/internal/config"
	"reviewstats/internal/handlers"
	"reviewstats/internal/models"
	"reviewstats/internal/reports"
	"reviewstats/internal/repositories"
)

func main() {
	// Load .env file for local development
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx)
	stop()
	if err != nil {
		slog.Error("reviewsapi failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	// Initialize database
	db, err := models.NewDatabase(ctx, cfg.MongodbURL, cfg.Database, models.DatabaseOptions{
		MaxPoolSize:    cfg.MaxPoolSize,
		ConnectTimeout: cfg.ConnectTimeout,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close(context.Background())

	// Initialize repository, with the report cache in front when configured
	repo := repositories.NewMongoReviewRepository(db, cfg.Collections())
	checks := map[string]handlers.HealthChecker{"mongodb": db}

	if cfg.CacheEnabled() {
		valkeyCache, err := cache.NewValkeyCache(cfg.ValkeyURL, cfg.Database)
		if err != nil {
			slog.Warn("Report cache unavailable, continuing without it", "error", err)
		} else {
			reportCache := cache.NewMultiLevelCache(valkeyCache, 64, time.Minute)
			defer reportCache.Close()
			repo = repositories.NewCachedReviewRepository(repo, reportCache, cfg.ReportCacheTTL)
			checks["valkey"] = reportCache
		}
	}

	service := reports.NewService(repo, reports.Options{
		TopN:       cfg.TopN,
		MinReviews: cfg.MinReviews,
	})

	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", handlers.NewHealthHandler(checks).Health)
	handlers.NewReportHandler(service).RegisterRoutes(router)
	router.GET("/api/v1/admin/db-stats", handlers.NewAdminHandler(db, cfg.Database, cfg.Collections()).GetDatabaseStats)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("Starting review reports API", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
