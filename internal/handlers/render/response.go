package render

import (
	"reviewstats/internal/models"
	"reviewstats/internal/reports"
)

// previewLength caps the cleaned excerpt returned with each search hit
const previewLength = 160

// ArtistRow is one ranked artist
type ArtistRow struct {
	Rank         int     `json:"rank"`
	Artist       string  `json:"artist"`
	AverageScore float64 `json:"average_score"`
	DisplayScore string  `json:"display_score"`
	NumReviews   int     `json:"num_reviews"`
}

// TopArtistsResponse carries both artist rankings
type TopArtistsResponse struct {
	All        []ArtistRow `json:"all"`
	Qualified  []ArtistRow `json:"qualified"`
	MinReviews int         `json:"min_reviews"`
}

// GenresResponse lists selectable genre labels
type GenresResponse struct {
	Genres []string `json:"genres"`
}

// YearRow is one year of a genre trend
type YearRow struct {
	Year         string  `json:"year"`
	AverageScore float64 `json:"average_score"`
	DisplayScore string  `json:"display_score"`
	NumReviews   int     `json:"num_reviews"`
}

// GenreTrendResponse is one genre's averages by year
type GenreTrendResponse struct {
	Genre string    `json:"genre"`
	Years []YearRow `json:"years"`
}

// GenreRow is one genre's average
type GenreRow struct {
	Genre        string  `json:"genre"`
	AverageScore float64 `json:"average_score"`
	DisplayScore string  `json:"display_score"`
	NumReviews   int     `json:"num_reviews"`
}

// GenreAveragesResponse lists every genre, best first
type GenreAveragesResponse struct {
	Genres []GenreRow `json:"genres"`
}

// BucketRow is one score range
type BucketRow struct {
	Range             string  `json:"range"`
	Count             int     `json:"count"`
	Percentage        float64 `json:"percentage"`
	DisplayPercentage string  `json:"display_percentage"`
}

// DistributionResponse is the bucketed score distribution
type DistributionResponse struct {
	Total   int64       `json:"total"`
	Buckets []BucketRow `json:"buckets"`
}

// SearchHit is one matching review body
type SearchHit struct {
	Index   int         `json:"index"`
	ID      interface{} `json:"id"`
	Preview string      `json:"preview"`
}

// SearchResponse lists the reviews matching a term
type SearchResponse struct {
	Term  string      `json:"term"`
	Count int         `json:"count"`
	Hits  []SearchHit `json:"hits"`
}

// ReviewResponse is a selected review with its cleaned body
type ReviewResponse struct {
	Term    string `json:"term"`
	Index   int    `json:"index"`
	Artist  string `json:"artist"`
	Album   string `json:"album"`
	Score   string `json:"score"`
	Content string `json:"content"`
}

// TopArtists converts a ranking report
func TopArtists(report *reports.TopArtistsReport) TopArtistsResponse {
	return TopArtistsResponse{
		All:        artistRows(report.All),
		Qualified:  artistRows(report.Qualified),
		MinReviews: report.MinReviews,
	}
}

func artistRows(groups []models.ArtistScore) []ArtistRow {
	rows := make([]ArtistRow, len(groups))
	for i, g := range groups {
		rows[i] = ArtistRow{
			Rank:         i + 1,
			Artist:       g.Artist,
			AverageScore: g.Average(),
			DisplayScore: reports.FormatRounded(g.Average(), 1),
			NumReviews:   g.NumReviews,
		}
	}
	return rows
}

// Genres converts stored genres to their labels
func Genres(genres []string) GenresResponse {
	labels := make([]string, len(genres))
	for i, genre := range genres {
		labels[i] = models.GenreLabel(genre)
	}
	return GenresResponse{Genres: labels}
}

// GenreTrend converts one genre's yearly groups
func GenreTrend(genre string, groups []models.GenreYearScore) GenreTrendResponse {
	years := make([]YearRow, len(groups))
	for i, g := range groups {
		years[i] = YearRow{
			Year:         g.YearSortKey(),
			AverageScore: g.Average(),
			DisplayScore: reports.FormatRounded(g.Average(), 1),
			NumReviews:   g.NumReviews,
		}
	}
	return GenreTrendResponse{Genre: models.GenreLabel(genre), Years: years}
}

// GenreAverages converts genre groups
func GenreAverages(groups []models.GenreScore) GenreAveragesResponse {
	rows := make([]GenreRow, len(groups))
	for i, g := range groups {
		rows[i] = GenreRow{
			Genre:        models.GenreLabel(g.Genre),
			AverageScore: g.Average(),
			DisplayScore: reports.FormatRounded(g.Average(), 1),
			NumReviews:   g.NumReviews,
		}
	}
	return GenreAveragesResponse{Genres: rows}
}

// Distribution converts the bucketed distribution
func Distribution(report *reports.DistributionReport) DistributionResponse {
	rows := make([]BucketRow, len(report.Buckets))
	for i, b := range report.Buckets {
		rows[i] = BucketRow{
			Range:             b.Label,
			Count:             b.Count,
			Percentage:        b.Percentage,
			DisplayPercentage: reports.FormatRounded(b.Percentage, 3),
		}
	}
	return DistributionResponse{Total: report.Total, Buckets: rows}
}

// Search converts search hits, numbering them from 0
func Search(term string, hits []models.Content) SearchResponse {
	rows := make([]SearchHit, len(hits))
	for i, hit := range hits {
		rows[i] = SearchHit{
			Index:   i,
			ID:      hit.ID,
			Preview: preview(reports.CleanContent(hit.Content)),
		}
	}
	return SearchResponse{Term: term, Count: len(hits), Hits: rows}
}

// Review converts a selected review
func Review(term string, index int, detail *models.ReviewDetail) ReviewResponse {
	return ReviewResponse{
		Term:    term,
		Index:   index,
		Artist:  detail.Artist,
		Album:   detail.Title,
		Score:   reports.FormatScore(detail.Score),
		Content: detail.Content,
	}
}

// preview truncates on a rune boundary
func preview(content string) string {
	runes := []rune(content)
	if len(runes) <= previewLength {
		return content
	}
	return string(runes[:previewLength]) + "..."
}
