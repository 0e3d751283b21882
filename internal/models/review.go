package models

import (
	"fmt"
	"strconv"

	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/x/bsonx/bsoncore"
)

// UndefinedGenre is how an empty genre label is shown to users
const UndefinedGenre = "undefined"

// MissingYearSortKey is the sort position given to groups without a publication year
const MissingYearSortKey = "1000"

// Review is a document from the reviews collection
type Review struct {
	ID      interface{} `bson:"_id" json:"id"`
	Artist  string      `bson:"artist" json:"artist"`
	Title   string      `bson:"title" json:"title"`
	Score   ReviewScore `bson:"score" json:"score"`
	PubYear *Year       `bson:"pub_year,omitempty" json:"pub_year,omitempty"`
}

// Content is a document from the content collection; its _id matches a review
type Content struct {
	ID      interface{} `bson:"_id" json:"id"`
	Content string      `bson:"content" json:"content"`
}

// Year is a publication year in its textual form. Datasets store it either
// as a string or as a number, so both decode into the same representation.
type Year string

// UnmarshalBSONValue accepts string, int32, int64 and double values
func (y *Year) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	v := bsoncore.Value{Type: t, Data: data}
	switch t {
	case bsontype.String:
		*y = Year(v.StringValue())
	case bsontype.Int32:
		*y = Year(strconv.FormatInt(int64(v.Int32()), 10))
	case bsontype.Int64:
		*y = Year(strconv.FormatInt(v.Int64(), 10))
	case bsontype.Double:
		*y = Year(strconv.FormatFloat(v.Double(), 'f', -1, 64))
	case bsontype.Null, bsontype.Undefined:
		*y = ""
	default:
		return fmt.Errorf("cannot decode %s into a year", t)
	}
	return nil
}

// ReviewScore is a review's score as stored. Integer tracks whether the
// document held an integral BSON type, which prints without decimals.
type ReviewScore struct {
	Value   float64
	Integer bool
}

// UnmarshalBSONValue accepts double, int32 and int64 values
func (s *ReviewScore) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	v := bsoncore.Value{Type: t, Data: data}
	switch t {
	case bsontype.Double:
		*s = ReviewScore{Value: v.Double()}
	case bsontype.Int32:
		*s = ReviewScore{Value: float64(v.Int32()), Integer: true}
	case bsontype.Int64:
		*s = ReviewScore{Value: float64(v.Int64()), Integer: true}
	case bsontype.Null, bsontype.Undefined:
		*s = ReviewScore{}
	default:
		return fmt.Errorf("cannot decode %s into a score", t)
	}
	return nil
}

// MarshalJSON writes the score as a plain number
func (s ReviewScore) MarshalJSON() ([]byte, error) {
	if s.Integer {
		return []byte(strconv.FormatInt(int64(s.Value), 10)), nil
	}
	return []byte(strconv.FormatFloat(s.Value, 'f', -1, 64)), nil
}

// ArtistScore is one artist group from the top artists aggregation
type ArtistScore struct {
	Artist     string   `bson:"_id" json:"artist"`
	AvgScore   *float64 `bson:"avgScore" json:"avg_score"`
	NumReviews int      `bson:"numReviews" json:"num_reviews"`
}

// Average returns the mean score, or 0 when the group has none
func (a ArtistScore) Average() float64 {
	return valueOrZero(a.AvgScore)
}

// GenreYearKey is the compound group key of the genre trends aggregation
type GenreYearKey struct {
	Genre string `bson:"genre" json:"genre"`
	Year  *Year  `bson:"year,omitempty" json:"year,omitempty"`
}

// GenreYearScore is one (genre, year) group
type GenreYearScore struct {
	Key        GenreYearKey `bson:"_id" json:"key"`
	AvgScore   *float64     `bson:"avgScore" json:"avg_score"`
	NumReviews int          `bson:"numReviews" json:"num_reviews"`
}

// Average returns the mean score, or 0 when the group has none
func (g GenreYearScore) Average() float64 {
	return valueOrZero(g.AvgScore)
}

// YearSortKey returns the year used for ordering
func (g GenreYearScore) YearSortKey() string {
	if g.Key.Year == nil {
		return MissingYearSortKey
	}
	return string(*g.Key.Year)
}

// GenreScore is one genre group from the average score by genre aggregation
type GenreScore struct {
	Genre      string   `bson:"_id" json:"genre"`
	AvgScore   *float64 `bson:"avgScore" json:"avg_score"`
	NumReviews int      `bson:"numReviews" json:"num_reviews"`
}

// Average returns the mean score, or 0 when the group has none
func (g GenreScore) Average() float64 {
	return valueOrZero(g.AvgScore)
}

// ScoreCount is the number of reviews that gave one exact score, with its share of all reviews
type ScoreCount struct {
	Score      float64 `bson:"_id" json:"score"`
	Count      int     `bson:"count" json:"count"`
	Percentage float64 `bson:"percentage" json:"percentage"`
}

// ScoreBucket accumulates score groups falling into one fixed range
type ScoreBucket struct {
	Label      string  `json:"label"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// ReviewDetail is a review joined with its cleaned body, ready for display
type ReviewDetail struct {
	Artist  string      `json:"artist"`
	Title   string      `json:"title"`
	Score   ReviewScore `json:"score"`
	Content string      `json:"content"`
}

// GenreLabel renders an empty genre as "undefined"
func GenreLabel(genre string) string {
	if genre == "" {
		return UndefinedGenre
	}
	return genre
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0.0
	}
	return *v
}
