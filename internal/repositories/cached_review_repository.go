package repositories

import (
	"context"
	"log/slog"
	"time"

	"github.com/goccy/go-json"

	"reviewstats/internal/cache"
	"reviewstats/internal/models"
)

// cachedReviewRepository wraps a ReviewRepository and caches aggregate results.
// Search and lookups by ID pass straight through: identifiers keep their BSON
// type only when they come directly from the driver.
type cachedReviewRepository struct {
	repository ReviewRepository
	cache      cache.Cache
	ttl        time.Duration
}

// NewCachedReviewRepository creates a new cached review repository
func NewCachedReviewRepository(repository ReviewRepository, cache cache.Cache, ttl time.Duration) ReviewRepository {
	return &cachedReviewRepository{
		repository: repository,
		cache:      cache,
		ttl:        ttl,
	}
}

// Cache keys
const (
	artistAveragesKey    = "report:artist-averages"
	genreYearAveragesKey = "report:genre-year-averages"
	genreAveragesKey     = "report:genre-averages"
	scoreCountsKey       = "report:score-counts"
	genresKey            = "report:genres"
)

// scoreCountsEntry keeps the total and its groups together so a cached
// distribution is always internally consistent
type scoreCountsEntry struct {
	Total  int64               `json:"total"`
	Groups []models.ScoreCount `json:"groups"`
}

// ArtistAverages checks cache first, then repository
func (r *cachedReviewRepository) ArtistAverages(ctx context.Context) ([]models.ArtistScore, error) {
	var groups []models.ArtistScore
	if r.getFromCache(ctx, artistAveragesKey, &groups) {
		return groups, nil
	}

	groups, err := r.repository.ArtistAverages(ctx)
	if err != nil {
		return nil, err
	}

	r.cacheResult(ctx, artistAveragesKey, groups)
	return groups, nil
}

// GenreYearAverages checks cache first, then repository
func (r *cachedReviewRepository) GenreYearAverages(ctx context.Context) ([]models.GenreYearScore, error) {
	var groups []models.GenreYearScore
	if r.getFromCache(ctx, genreYearAveragesKey, &groups) {
		return groups, nil
	}

	groups, err := r.repository.GenreYearAverages(ctx)
	if err != nil {
		return nil, err
	}

	r.cacheResult(ctx, genreYearAveragesKey, groups)
	return groups, nil
}

// GenreAverages checks cache first, then repository
func (r *cachedReviewRepository) GenreAverages(ctx context.Context) ([]models.GenreScore, error) {
	var groups []models.GenreScore
	if r.getFromCache(ctx, genreAveragesKey, &groups) {
		return groups, nil
	}

	groups, err := r.repository.GenreAverages(ctx)
	if err != nil {
		return nil, err
	}

	r.cacheResult(ctx, genreAveragesKey, groups)
	return groups, nil
}

// ScoreCounts caches the total together with the groups derived from it
func (r *cachedReviewRepository) ScoreCounts(ctx context.Context) (int64, []models.ScoreCount, error) {
	var entry scoreCountsEntry
	if r.getFromCache(ctx, scoreCountsKey, &entry) {
		return entry.Total, entry.Groups, nil
	}

	total, groups, err := r.repository.ScoreCounts(ctx)
	if err != nil {
		return 0, nil, err
	}

	r.cacheResult(ctx, scoreCountsKey, scoreCountsEntry{Total: total, Groups: groups})
	return total, groups, nil
}

// Genres checks cache first, then repository
func (r *cachedReviewRepository) Genres(ctx context.Context) ([]string, error) {
	var genres []string
	if r.getFromCache(ctx, genresKey, &genres) {
		return genres, nil
	}

	genres, err := r.repository.Genres(ctx)
	if err != nil {
		return nil, err
	}

	r.cacheResult(ctx, genresKey, genres)
	return genres, nil
}

// SearchContent - not cached, results depend on a free-form pattern
func (r *cachedReviewRepository) SearchContent(ctx context.Context, pattern string) ([]models.Content, error) {
	return r.repository.SearchContent(ctx, pattern)
}

// FindReviewByID - not cached
func (r *cachedReviewRepository) FindReviewByID(ctx context.Context, id interface{}) (*models.Review, error) {
	return r.repository.FindReviewByID(ctx, id)
}

// getFromCache decodes a cached payload into dest and reports whether it was a hit.
// Cache failures are logged and treated as misses.
func (r *cachedReviewRepository) getFromCache(ctx context.Context, key string, dest interface{}) bool {
	data, err := r.cache.Get(ctx, key)
	if err != nil {
		slog.Warn("Report cache read failed", "key", key, "error", err)
		return false
	}
	if data == nil {
		slog.Debug("Report cache miss", "key", key)
		return false
	}

	if err := json.Unmarshal(data, dest); err != nil {
		slog.Warn("Discarding undecodable cache entry", "key", key, "error", err)
		if err := r.cache.Delete(ctx, key); err != nil {
			slog.Warn("Failed to delete cache entry", "key", key, "error", err)
		}
		return false
	}

	slog.Debug("Report cache hit", "key", key)
	return true
}

// cacheResult stores value, logging rather than failing on error
func (r *cachedReviewRepository) cacheResult(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		slog.Warn("Failed to encode report for cache", "key", key, "error", err)
		return
	}

	if err := r.cache.Set(ctx, key, data, r.ttl); err != nil {
		slog.Warn("Report cache write failed", "key", key, "error", err)
	}
}
