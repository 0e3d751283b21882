package testutil

import (
	"context"
	"time"

	"reviewstats/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockReviewRepository is a mock implementation of ReviewRepository for testing
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) ArtistAverages(ctx context.Context) ([]models.ArtistScore, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ArtistScore), args.Error(1)
}

func (m *MockReviewRepository) GenreYearAverages(ctx context.Context) ([]models.GenreYearScore, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.GenreYearScore), args.Error(1)
}

func (m *MockReviewRepository) GenreAverages(ctx context.Context) ([]models.GenreScore, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.GenreScore), args.Error(1)
}

func (m *MockReviewRepository) ScoreCounts(ctx context.Context) (int64, []models.ScoreCount, error) {
	args := m.Called(ctx)
	if args.Get(1) == nil {
		return args.Get(0).(int64), nil, args.Error(2)
	}
	return args.Get(0).(int64), args.Get(1).([]models.ScoreCount), args.Error(2)
}

func (m *MockReviewRepository) Genres(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockReviewRepository) SearchContent(ctx context.Context, pattern string) ([]models.Content, error) {
	args := m.Called(ctx, pattern)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Content), args.Error(1)
}

func (m *MockReviewRepository) FindReviewByID(ctx context.Context, id interface{}) (*models.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

// MockCache is a mock implementation of cache.Cache for testing
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) Close() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockCache) Health(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// ExpectArtistAverages sets up expectation for ArtistAverages
func ExpectArtistAverages(mockRepo *MockReviewRepository, groups []models.ArtistScore, err error) {
	mockRepo.On("ArtistAverages", mock.Anything).Return(groups, err)
}

// ExpectScoreCounts sets up expectation for ScoreCounts
func ExpectScoreCounts(mockRepo *MockReviewRepository, total int64, groups []models.ScoreCount, err error) {
	mockRepo.On("ScoreCounts", mock.Anything).Return(total, groups, err)
}

// ExpectGenres sets up expectation for Genres
func ExpectGenres(mockRepo *MockReviewRepository, genres []string, err error) {
	mockRepo.On("Genres", mock.Anything).Return(genres, err)
}
