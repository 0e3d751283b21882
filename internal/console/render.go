package console

import (
	"fmt"
	"io"
	"strings"

	"reviewstats/internal/models"
	"reviewstats/internal/reports"
)

// heading prints a blank line, the title and an underline of equal width
func heading(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n%s\n", title, strings.Repeat("-", len(title)))
}

// RenderMenu prints the query menu
func RenderMenu(w io.Writer) {
	heading(w, "Please choose from the queries below:")
	for _, item := range menuItems {
		fmt.Fprintf(w, "%d) %s\n", item.choice, item.label)
	}
}

// RenderTopArtists prints both artist rankings
func RenderTopArtists(w io.Writer, report *reports.TopArtistsReport) {
	heading(w, "Top-rated Artists by Average Score:")
	renderArtists(w, report.All)

	heading(w, fmt.Sprintf("Top-rated Artists by Average Score (%d or more reviews):", report.MinReviews))
	renderArtists(w, report.Qualified)
}

func renderArtists(w io.Writer, groups []models.ArtistScore) {
	for i, g := range groups {
		fmt.Fprintf(w, "%d) %s :: Average Score: %s, Number of Reviews: %d\n",
			i+1, g.Artist, reports.FormatRounded(g.Average(), 1), g.NumReviews)
	}
}

// RenderGenreMenu lists genres for selection, numbered from 1
func RenderGenreMenu(w io.Writer, genres []string) {
	heading(w, "Please select a genre to see scores for:")
	for i, genre := range genres {
		fmt.Fprintf(w, "%d) %s\n", i+1, models.GenreLabel(genre))
	}
}

// RenderGenreTrend prints one genre's averages per year
func RenderGenreTrend(w io.Writer, groups []models.GenreYearScore) {
	heading(w, "Average scores by review year:")
	for _, g := range groups {
		fmt.Fprintf(w, "Year: %s, Average Score: %s, Number of Reviews: %d\n",
			g.YearSortKey(), reports.FormatRounded(g.Average(), 1), g.NumReviews)
	}
}

// RenderGenreAverages prints every genre's average
func RenderGenreAverages(w io.Writer, groups []models.GenreScore) {
	heading(w, "Average scores by genre:")
	for _, g := range groups {
		fmt.Fprintf(w, "Genre: %s, Average Score: %s, Number of Reviews: %d\n",
			models.GenreLabel(g.Genre), reports.FormatRounded(g.Average(), 1), g.NumReviews)
	}
}

// RenderDistribution prints the ten score buckets
func RenderDistribution(w io.Writer, report *reports.DistributionReport) {
	heading(w, "Distribution of scores among all reviews:")
	for _, b := range report.Buckets {
		fmt.Fprintf(w, "Score Range: %s, Number Given: %d, Percentage: %s%%\n",
			b.Label, b.Count, reports.FormatRounded(b.Percentage, 3))
	}
}

// RenderSearchSummary reports how many reviews matched term
func RenderSearchSummary(w io.Writer, found int, term string) {
	fmt.Fprintf(w, "\n%d reviews were found that use the term '%s'\n", found, term)
	if found > 0 {
		fmt.Fprintf(w, "Please enter a number between 0 and %d to read that review\n", found)
	}
}

// RenderReview prints a review header followed by its body
func RenderReview(w io.Writer, detail *models.ReviewDetail) {
	fmt.Fprintf(w, "\nArtist: %s | Album: %s | Score: %s\n\n", detail.Artist, detail.Title, reports.FormatScore(detail.Score))
	fmt.Fprintln(w, detail.Content)
}
