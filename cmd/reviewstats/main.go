package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"reviewstats/internal/cache"
	"reviewstats/internal/config"
	"reviewstats/internal/console"
	"reviewstats/internal/models"
	"reviewstats/internal/reports"
	"reviewstats/internal/repositories"
)

func main() {
	// Load .env file for local development
	_ = godotenv.Load()

	if err := run(context.Background()); err != nil {
		slog.Error("reviewstats failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Logs go to stderr so stdout carries only report text
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	db, err := models.NewDatabase(ctx, cfg.MongodbURL, cfg.Database, models.DatabaseOptions{
		MaxPoolSize:    cfg.MaxPoolSize,
		ConnectTimeout: cfg.ConnectTimeout,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close(context.Background())

	repo := repositories.NewMongoReviewRepository(db, cfg.Collections())

	if cfg.CacheEnabled() {
		reportCache, err := cache.NewValkeyCache(cfg.ValkeyURL, cfg.Database)
		if err != nil {
			// Reports still work straight from MongoDB
			slog.Warn("Report cache unavailable, continuing without it", "error", err)
		} else {
			defer reportCache.Close()
			repo = repositories.NewCachedReviewRepository(repo, reportCache, cfg.ReportCacheTTL)
		}
	}

	service := reports.NewService(repo, reports.Options{
		TopN:       cfg.TopN,
		MinReviews: cfg.MinReviews,
	})

	return console.NewMenu(service, os.Stdin, os.Stdout).Run(ctx)
}
