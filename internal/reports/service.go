package reports

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"reviewstats/internal/models"
	"reviewstats/internal/repositories"
)

var (
	// ErrReviewNotFound is returned when a search hit has no matching review
	ErrReviewNotFound = errors.New("review not found")

	// ErrIndexOutOfRange is returned for a selection outside the listed choices
	ErrIndexOutOfRange = errors.New("selection out of range")
)

// Options controls report sizes
type Options struct {
	TopN       int
	MinReviews int
}

// DefaultOptions returns the sizes used when nothing is configured
func DefaultOptions() Options {
	return Options{TopN: 10, MinReviews: 3}
}

// TopArtistsReport holds both artist rankings built from one grouping
type TopArtistsReport struct {
	All        []models.ArtistScore `json:"all"`
	Qualified  []models.ArtistScore `json:"qualified"`
	MinReviews int                  `json:"min_reviews"`
}

// DistributionReport is the bucketed score distribution
type DistributionReport struct {
	Total   int64                `json:"total"`
	Buckets []models.ScoreBucket `json:"buckets"`
}

// Service builds reports from repository results. It holds no state between
// calls and is safe for concurrent use.
type Service struct {
	repository repositories.ReviewRepository
	opts       Options
}

// NewService creates a report service
func NewService(repository repositories.ReviewRepository, opts Options) *Service {
	defaults := DefaultOptions()
	if opts.TopN <= 0 {
		opts.TopN = defaults.TopN
	}
	if opts.MinReviews <= 0 {
		opts.MinReviews = defaults.MinReviews
	}
	return &Service{
		repository: repository,
		opts:       opts,
	}
}

// Options returns the effective report sizes
func (s *Service) Options() Options {
	return s.opts
}

// TopArtists ranks artists by average score, overall and among artists with
// at least MinReviews reviews. Short result sets yield shorter rankings.
func (s *Service) TopArtists(ctx context.Context) (*TopArtistsReport, error) {
	groups, err := s.repository.ArtistAverages(ctx)
	if err != nil {
		return nil, err
	}

	SortByAverageDesc(groups)
	qualified := FilterMinReviews(groups, s.opts.MinReviews)

	slog.Debug("Ranked artists", "groups", len(groups), "qualified", len(qualified))

	return &TopArtistsReport{
		All:        TopN(groups, s.opts.TopN),
		Qualified:  TopN(qualified, s.opts.TopN),
		MinReviews: s.opts.MinReviews,
	}, nil
}

// Genres lists the genre labels available for trend reports
func (s *Service) Genres(ctx context.Context) ([]string, error) {
	return s.repository.Genres(ctx)
}

// GenreTrend returns one genre's average score per publication year, oldest first
func (s *Service) GenreTrend(ctx context.Context, genre string) ([]models.GenreYearScore, error) {
	groups, err := s.repository.GenreYearAverages(ctx)
	if err != nil {
		return nil, err
	}
	return FilterGenreYears(groups, genre), nil
}

// GenreAverages returns every genre ordered by average score, highest first
func (s *Service) GenreAverages(ctx context.Context) ([]models.GenreScore, error) {
	groups, err := s.repository.GenreAverages(ctx)
	if err != nil {
		return nil, err
	}
	SortGenresByAverageDesc(groups)
	return groups, nil
}

// ScoreDistribution buckets every review score into ten fixed ranges
func (s *Service) ScoreDistribution(ctx context.Context) (*DistributionReport, error) {
	total, groups, err := s.repository.ScoreCounts(ctx)
	if err != nil {
		return nil, err
	}

	return &DistributionReport{
		Total:   total,
		Buckets: BucketScores(groups),
	}, nil
}

// Search returns the review bodies matching term
func (s *Service) Search(ctx context.Context, term string) ([]models.Content, error) {
	return s.repository.SearchContent(ctx, term)
}

// SelectHit returns hits[index] or ErrIndexOutOfRange
func SelectHit(hits []models.Content, index int) (models.Content, error) {
	if index < 0 || index >= len(hits) {
		return models.Content{}, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, index, len(hits))
	}
	return hits[index], nil
}

// ReviewDetail joins a search hit with its review and cleans the body
func (s *Service) ReviewDetail(ctx context.Context, hit models.Content) (*models.ReviewDetail, error) {
	review, err := s.repository.FindReviewByID(ctx, hit.ID)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, fmt.Errorf("%w: %v", ErrReviewNotFound, hit.ID)
	}

	return &models.ReviewDetail{
		Artist:  review.Artist,
		Title:   review.Title,
		Score:   review.Score,
		Content: CleanContent(hit.Content),
	}, nil
}
