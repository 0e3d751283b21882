//go:build integration

package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/bson"

	"reviewstats/internal/config"
	"reviewstats/internal/models"
)

// startMongo runs a throwaway mongo:7 container and returns a connected Database
func startMongo(t *testing.T) *models.Database {
	t.Helper()
	ctx := context.Background()

	var container testcontainers.Container
	var containerErr error
	func() {
		defer func() {
			if r := recover(); r != nil {
				containerErr = fmt.Errorf("docker not available: %v", r)
			}
		}()
		req := testcontainers.ContainerRequest{
			Image:        "mongo:7",
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor:   wait.ForLog("Waiting for connections"),
			Tmpfs:        map[string]string{"/data/db": "rw"},
		}
		container, containerErr = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: req,
			Started:          true,
		})
	}()
	if containerErr != nil {
		t.Skipf("Docker not available, skipping MongoDB test: %v", containerErr)
	}
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "27017")
	require.NoError(t, err)

	uri := fmt.Sprintf("mongodb://%s:%s", host, port.Port())
	db, err := models.NewDatabase(ctx, uri, "pitchfork_test", models.DatabaseOptions{ConnectTimeout: 30 * time.Second})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(context.Background()) })

	return db
}

func seedReviews(t *testing.T, db *models.Database) {
	t.Helper()
	ctx := context.Background()

	reviews := []interface{}{
		bson.M{"_id": int32(1), "artist": "A", "title": "First", "score": 8.0, "pub_year": "2001"},
		bson.M{"_id": int32(2), "artist": "A", "title": "Second", "score": 6.0, "pub_year": "2003"},
		bson.M{"_id": int32(3), "artist": "B", "title": "Third", "score": 9.0, "pub_year": "2001"},
		bson.M{"_id": int32(4), "artist": "C", "title": "Fourth", "score": 9.0},
	}
	genres := []interface{}{
		bson.M{"_id": int32(1), "genre": "rock"},
		bson.M{"_id": int32(2), "genre": "rock"},
		bson.M{"_id": int32(3), "genre": ""},
		// review 4 has no genre document; a stray title must not override the review's
		bson.M{"_id": int32(99), "genre": "jazz", "title": "Orphan"},
	}
	content := []interface{}{
		bson.M{"_id": int32(1), "content": `Loud\n    guitars.`},
		bson.M{"_id": int32(3), "content": "Quiet guitars and \\\"strings\\\"."},
		bson.M{"_id": int32(4), "content": "Drum machines."},
	}

	_, err := db.DB.Collection("reviews").InsertMany(ctx, reviews)
	require.NoError(t, err)
	_, err = db.DB.Collection("genres").InsertMany(ctx, genres)
	require.NoError(t, err)
	_, err = db.DB.Collection("content").InsertMany(ctx, content)
	require.NoError(t, err)
}

func TestMongoReviewRepository_Integration(t *testing.T) {
	db := startMongo(t)
	seedReviews(t, db)

	ctx := context.Background()
	repo := NewMongoReviewRepository(db, config.Collections{Reviews: "reviews", Genres: "genres", Content: "content"})

	t.Run("artist averages", func(t *testing.T) {
		groups, err := repo.ArtistAverages(ctx)
		require.NoError(t, err)

		byArtist := map[string]models.ArtistScore{}
		for _, g := range groups {
			byArtist[g.Artist] = g
		}
		require.Len(t, byArtist, 3)
		assert.Equal(t, 7.0, byArtist["A"].Average())
		assert.Equal(t, 2, byArtist["A"].NumReviews)
		assert.Equal(t, 9.0, byArtist["B"].Average())
		assert.Equal(t, 1, byArtist["B"].NumReviews)
	})

	t.Run("genre year averages", func(t *testing.T) {
		groups, err := repo.GenreYearAverages(ctx)
		require.NoError(t, err)

		counts := map[string]int{}
		for _, g := range groups {
			counts[g.Key.Genre+"/"+g.YearSortKey()] = g.NumReviews
		}
		assert.Equal(t, map[string]int{
			"rock/2001": 1,
			"rock/2003": 1,
			"/2001":     1,
			"/1000":     1,
		}, counts)
	})

	t.Run("genre averages", func(t *testing.T) {
		groups, err := repo.GenreAverages(ctx)
		require.NoError(t, err)

		byGenre := map[string]models.GenreScore{}
		for _, g := range groups {
			byGenre[g.Genre] = g
		}
		require.Len(t, byGenre, 2)
		assert.Equal(t, 7.0, byGenre["rock"].Average())
		assert.Equal(t, 9.0, byGenre[""].Average())
		assert.Equal(t, 2, byGenre[""].NumReviews)
	})

	t.Run("score counts", func(t *testing.T) {
		total, groups, err := repo.ScoreCounts(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(4), total)

		byScore := map[float64]models.ScoreCount{}
		for _, g := range groups {
			byScore[g.Score] = g
		}
		assert.Equal(t, 2, byScore[9.0].Count)
		assert.InDelta(t, 50.0, byScore[9.0].Percentage, 1e-9)
		assert.InDelta(t, 25.0, byScore[8.0].Percentage, 1e-9)
	})

	t.Run("genres", func(t *testing.T) {
		genres, err := repo.Genres(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"", "jazz", "rock"}, genres)
	})

	t.Run("search and lookup", func(t *testing.T) {
		hits, err := repo.SearchContent(ctx, "guitars")
		require.NoError(t, err)
		require.Len(t, hits, 2)

		review, err := repo.FindReviewByID(ctx, hits[0].ID)
		require.NoError(t, err)
		require.NotNil(t, review)
		assert.Contains(t, []string{"First", "Third"}, review.Title)

		none, err := repo.SearchContent(ctx, "bagpipes")
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("missing review", func(t *testing.T) {
		review, err := repo.FindReviewByID(ctx, int32(404))
		require.NoError(t, err)
		assert.Nil(t, review)
	})
}
