package testutil

import (
	"fmt"

	"reviewstats/internal/models"
)

// Float returns a pointer to v, for optional average fields
func Float(v float64) *float64 {
	return &v
}

// YearOf returns a pointer to a publication year
func YearOf(year string) *models.Year {
	y := models.Year(year)
	return &y
}

// Artist builds an artist group
func Artist(name string, avg float64, numReviews int) models.ArtistScore {
	return models.ArtistScore{Artist: name, AvgScore: Float(avg), NumReviews: numReviews}
}

// GenreYear builds a (genre, year) group; an empty year leaves it unset
func GenreYear(genre, year string, avg float64, numReviews int) models.GenreYearScore {
	g := models.GenreYearScore{
		Key:        models.GenreYearKey{Genre: genre},
		AvgScore:   Float(avg),
		NumReviews: numReviews,
	}
	if year != "" {
		g.Key.Year = YearOf(year)
	}
	return g
}

// Genre builds a genre group
func Genre(name string, avg float64, numReviews int) models.GenreScore {
	return models.GenreScore{Genre: name, AvgScore: Float(avg), NumReviews: numReviews}
}

// ScoreCounts groups raw scores the way the score distribution aggregation does,
// in first-seen order
func ScoreCounts(scores ...float64) []models.ScoreCount {
	var groups []models.ScoreCount
	index := make(map[float64]int)
	for _, s := range scores {
		i, ok := index[s]
		if !ok {
			i = len(groups)
			index[s] = i
			groups = append(groups, models.ScoreCount{Score: s})
		}
		groups[i].Count++
	}
	for i := range groups {
		groups[i].Percentage = float64(groups[i].Count) / float64(len(scores)) * 100
	}
	return groups
}

// ManyArtists builds n artists with descending averages starting at 10.0
func ManyArtists(n, numReviews int) []models.ArtistScore {
	groups := make([]models.ArtistScore, n)
	for i := range groups {
		groups[i] = Artist(fmt.Sprintf("Artist %02d", i+1), 10.0-float64(i)*0.1, numReviews)
	}
	return groups
}

// SampleContent is a raw review body as stored, with literal escape sequences
const SampleContent = `First paragraph.\n    Second \"quoted\" paragraph.`

// SampleReview returns the review SampleContent belongs to
func SampleReview() *models.Review {
	return &models.Review{
		ID:     int32(22703),
		Artist: "Massive Attack",
		Title:  "Mezzanine",
		Score:  models.ReviewScore{Value: 9.3},
	}
}
