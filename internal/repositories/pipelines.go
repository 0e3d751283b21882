package repositories

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// groupStage averages score and counts reviews per key
func groupStage(key interface{}) bson.M {
	return bson.M{
		"$group": bson.M{
			"_id":        key,
			"avgScore":   bson.M{"$avg": "$score"},
			"numReviews": bson.M{"$sum": 1},
		},
	}
}

// genreJoinStages attaches each review's genre. The first genre document is
// merged under the review so the review's own fields win on conflict.
func genreJoinStages(genresCollection string) []bson.M {
	return []bson.M{
		{
			"$lookup": bson.M{
				"from":         genresCollection,
				"localField":   "_id",
				"foreignField": "_id",
				"as":           "albumGenre",
			},
		},
		{
			"$replaceRoot": bson.M{
				"newRoot": bson.M{
					"$mergeObjects": []interface{}{
						bson.M{"$arrayElemAt": []interface{}{"$albumGenre", 0}},
						"$$ROOT",
					},
				},
			},
		},
		{
			"$project": bson.M{"albumGenre": 0},
		},
	}
}

// genreKey treats reviews without a genre document as the undefined genre
func genreKey() bson.M {
	return bson.M{"$ifNull": []interface{}{"$genre", ""}}
}

// ArtistAveragesPipeline groups all reviews by artist
func ArtistAveragesPipeline() []bson.M {
	return []bson.M{groupStage("$artist")}
}

// GenreYearAveragesPipeline groups joined reviews by genre and publication year
func GenreYearAveragesPipeline(genresCollection string) []bson.M {
	pipeline := genreJoinStages(genresCollection)
	return append(pipeline, groupStage(bson.M{"genre": genreKey(), "year": "$pub_year"}))
}

// GenreAveragesPipeline groups joined reviews by genre only
func GenreAveragesPipeline(genresCollection string) []bson.M {
	pipeline := genreJoinStages(genresCollection)
	return append(pipeline, groupStage(genreKey()))
}

// ScoreCountsPipeline counts reviews per exact score and expresses each count
// as a percentage of total. total must be positive.
func ScoreCountsPipeline(total int64) []bson.M {
	return []bson.M{
		{
			"$group": bson.M{
				"_id":   "$score",
				"count": bson.M{"$sum": 1},
			},
		},
		{
			"$project": bson.M{
				"count": 1,
				"percentage": bson.M{
					"$multiply": []interface{}{
						bson.M{"$divide": []interface{}{"$count", bson.M{"$literal": total}}},
						100,
					},
				},
			},
		},
	}
}

// ContentSearchFilter matches review bodies against an unanchored pattern
func ContentSearchFilter(pattern string) bson.M {
	return bson.M{"content": primitive.Regex{Pattern: pattern}}
}
