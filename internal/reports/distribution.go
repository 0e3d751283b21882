package reports

import "reviewstats/internal/models"

// bucketUppers are the inclusive upper bounds of every bucket but the last
var bucketUppers = [...]float64{0.9, 1.9, 2.9, 3.9, 4.9, 5.9, 6.9, 7.9, 8.9}

// BucketLabels names the ten score ranges in print order
var BucketLabels = [...]string{
	"0.0 - 0.9",
	"1.0 - 1.9",
	"2.0 - 2.9",
	"3.0 - 3.9",
	"4.0 - 4.9",
	"5.0 - 5.9",
	"6.0 - 6.9",
	"7.0 - 7.9",
	"8.0 - 8.9",
	"9.0 - 10.0",
}

// BucketIndex maps a score to exactly one of the ten ranges
func BucketIndex(score float64) int {
	for i, upper := range bucketUppers {
		if score <= upper {
			return i
		}
	}
	return len(bucketUppers)
}

// BucketScores sums per-score counts and percentages into the ten fixed
// ranges. Every range is present, including empty ones.
func BucketScores(groups []models.ScoreCount) []models.ScoreBucket {
	buckets := make([]models.ScoreBucket, len(BucketLabels))
	for i, label := range BucketLabels {
		buckets[i].Label = label
	}

	for _, g := range groups {
		b := &buckets[BucketIndex(g.Score)]
		b.Count += g.Count
		b.Percentage += g.Percentage
	}
	return buckets
}
