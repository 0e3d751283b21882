package reports

import (
	"sort"

	"reviewstats/internal/models"
)

// FilterGenreYears returns the groups for genre ordered by ascending year.
// Groups without a year sort as "1000", ahead of every real year.
func FilterGenreYears(groups []models.GenreYearScore, genre string) []models.GenreYearScore {
	filtered := make([]models.GenreYearScore, 0)
	for _, g := range groups {
		if g.Key.Genre == genre {
			filtered = append(filtered, g)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].YearSortKey() < filtered[j].YearSortKey()
	})
	return filtered
}

// GenreByLabel resolves a user-facing label back to the stored genre.
// "undefined" selects the empty genre.
func GenreByLabel(label string) string {
	if label == models.UndefinedGenre {
		return ""
	}
	return label
}
