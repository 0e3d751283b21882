package reports

import (
	"sort"

	"reviewstats/internal/models"
)

// SortByAverageDesc orders artist groups by mean score, highest first.
// The sort is stable; a missing average counts as 0.0.
func SortByAverageDesc(groups []models.ArtistScore) {
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Average() > groups[j].Average()
	})
}

// SortGenresByAverageDesc orders genre groups by mean score, highest first
func SortGenresByAverageDesc(groups []models.GenreScore) {
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Average() > groups[j].Average()
	})
}

// FilterMinReviews keeps the groups with at least minReviews reviews, preserving order
func FilterMinReviews(groups []models.ArtistScore, minReviews int) []models.ArtistScore {
	filtered := make([]models.ArtistScore, 0, len(groups))
	for _, g := range groups {
		if g.NumReviews >= minReviews {
			filtered = append(filtered, g)
		}
	}
	return filtered
}

// TopN returns at most n leading groups
func TopN(groups []models.ArtistScore, n int) []models.ArtistScore {
	if n < 0 {
		n = 0
	}
	if len(groups) < n {
		n = len(groups)
	}
	return groups[:n]
}
