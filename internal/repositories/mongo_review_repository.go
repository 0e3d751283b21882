package repositories

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"reviewstats/internal/config"
	"reviewstats/internal/models"
)

// mongoReviewRepository implements ReviewRepository using MongoDB
type mongoReviewRepository struct {
	reviews          *mongo.Collection
	genres           *mongo.Collection
	content          *mongo.Collection
	genresCollection string
}

// NewMongoReviewRepository creates a new MongoDB-backed review repository
func NewMongoReviewRepository(db *models.Database, collections config.Collections) ReviewRepository {
	return &mongoReviewRepository{
		reviews:          db.DB.Collection(collections.Reviews),
		genres:           db.DB.Collection(collections.Genres),
		content:          db.DB.Collection(collections.Content),
		genresCollection: collections.Genres,
	}
}

// ArtistAverages groups every review by artist
func (r *mongoReviewRepository) ArtistAverages(ctx context.Context) ([]models.ArtistScore, error) {
	var groups []models.ArtistScore
	if err := r.aggregate(ctx, r.reviews, ArtistAveragesPipeline(), &groups); err != nil {
		return nil, fmt.Errorf("failed to aggregate artist averages: %w", err)
	}
	return groups, nil
}

// GenreYearAverages joins reviews to genres and groups by genre and year
func (r *mongoReviewRepository) GenreYearAverages(ctx context.Context) ([]models.GenreYearScore, error) {
	var groups []models.GenreYearScore
	if err := r.aggregate(ctx, r.reviews, GenreYearAveragesPipeline(r.genresCollection), &groups); err != nil {
		return nil, fmt.Errorf("failed to aggregate genre/year averages: %w", err)
	}
	return groups, nil
}

// GenreAverages joins reviews to genres and groups by genre
func (r *mongoReviewRepository) GenreAverages(ctx context.Context) ([]models.GenreScore, error) {
	var groups []models.GenreScore
	if err := r.aggregate(ctx, r.reviews, GenreAveragesPipeline(r.genresCollection), &groups); err != nil {
		return nil, fmt.Errorf("failed to aggregate genre averages: %w", err)
	}
	return groups, nil
}

// ScoreCounts counts the reviews, then groups them by exact score using that count
func (r *mongoReviewRepository) ScoreCounts(ctx context.Context) (int64, []models.ScoreCount, error) {
	total, err := r.reviews.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, nil, fmt.Errorf("failed to count reviews: %w", err)
	}

	// Nothing to divide by
	if total == 0 {
		return 0, []models.ScoreCount{}, nil
	}

	var groups []models.ScoreCount
	if err := r.aggregate(ctx, r.reviews, ScoreCountsPipeline(total), &groups); err != nil {
		return 0, nil, fmt.Errorf("failed to aggregate score counts: %w", err)
	}
	return total, groups, nil
}

// Genres returns the distinct genre labels, sorted
func (r *mongoReviewRepository) Genres(ctx context.Context) ([]string, error) {
	values, err := r.genres.Distinct(ctx, "genre", bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list genres: %w", err)
	}

	genres := make([]string, 0, len(values))
	for _, v := range values {
		genre, ok := v.(string)
		if !ok {
			slog.Debug("Skipping non-string genre", "value", v)
			continue
		}
		genres = append(genres, genre)
	}
	sort.Strings(genres)

	return genres, nil
}

// SearchContent finds every review body matching pattern
func (r *mongoReviewRepository) SearchContent(ctx context.Context, pattern string) ([]models.Content, error) {
	cursor, err := r.content.Find(ctx, ContentSearchFilter(pattern))
	if err != nil {
		return nil, fmt.Errorf("failed to search review content: %w", err)
	}
	defer cursor.Close(ctx)

	hits := []models.Content{}
	if err := cursor.All(ctx, &hits); err != nil {
		return nil, fmt.Errorf("failed to decode review content: %w", err)
	}
	return hits, nil
}

// FindReviewByID returns the review with the given identifier, or nil when none exists
func (r *mongoReviewRepository) FindReviewByID(ctx context.Context, id interface{}) (*models.Review, error) {
	var review models.Review
	err := r.reviews.FindOne(ctx, bson.M{"_id": id}).Decode(&review)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find review by ID: %w", err)
	}
	return &review, nil
}

// aggregate runs pipeline and materializes every result before returning
func (r *mongoReviewRepository) aggregate(ctx context.Context, coll *mongo.Collection, pipeline []bson.M, results interface{}) error {
	cursor, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	return cursor.All(ctx, results)
}
