package repositories

import (
	"context"

	"reviewstats/internal/models"
)

// ReviewRepository defines the read-only queries the reports are built from
type ReviewRepository interface {
	// Aggregations
	ArtistAverages(ctx context.Context) ([]models.ArtistScore, error)
	GenreYearAverages(ctx context.Context) ([]models.GenreYearScore, error)
	GenreAverages(ctx context.Context) ([]models.GenreScore, error)

	// ScoreCounts returns the review total and the per-score groups whose
	// percentages were computed against that same total
	ScoreCounts(ctx context.Context) (int64, []models.ScoreCount, error)

	// Lookups
	Genres(ctx context.Context) ([]string, error)
	SearchContent(ctx context.Context, pattern string) ([]models.Content, error)
	FindReviewByID(ctx context.Context, id interface{}) (*models.Review, error)
}
