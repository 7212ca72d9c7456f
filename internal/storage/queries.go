// ABOUTME: MongoDB query builders for vector and keyword search
// ABOUTME: Pure functions so the exact pipeline and filter shapes are testable
package storage

import (
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BuildVectorSearchPipeline asks Atlas for limit*candidateFactor candidates and
// keeps the best limit, projected to SearchFields plus the similarity score.
func BuildVectorSearchPipeline(vector []float32, index string, limit, candidateFactor int) mongo.Pipeline {
	project := bson.D{}
	for _, f := range SearchFields {
		project = append(project, bson.E{Key: f, Value: 1})
	}
	project = append(project, bson.E{Key: "score", Value: bson.D{{Key: "$meta", Value: "vectorSearchScore"}}})

	return mongo.Pipeline{
		{{Key: "$vectorSearch", Value: bson.D{
			{Key: "index", Value: index},
			{Key: "path", Value: EmbeddingField},
			{Key: "queryVector", Value: vector},
			{Key: "numCandidates", Value: limit * candidateFactor},
			{Key: "limit", Value: limit},
		}}},
		{{Key: "$project", Value: project}},
	}
}

// BuildKeywordFilter matches a document when any whitespace token of query
// appears, case-insensitively, in any of fields. ok is false when query has no tokens.
func BuildKeywordFilter(query string, fields []string) (filter bson.M, ok bool) {
	tokens := strings.Fields(query)
	if len(tokens) == 0 || len(fields) == 0 {
		return nil, false
	}

	clauses := make(bson.A, 0, len(tokens)*len(fields))
	for _, token := range tokens {
		pattern := regexp.QuoteMeta(token)
		for _, field := range fields {
			clauses = append(clauses, bson.M{field: bson.M{"$regex": pattern, "$options": "i"}})
		}
	}
	return bson.M{"$or": clauses}, true
}

// searchProjection is the find() projection equivalent of the $project stage.
// SlugIndexModel is the unique index that backs slug conflict detection.
// Documents without a string slug are left out of it.
func SlugIndexModel() mongo.IndexModel {
	return mongo.IndexModel{
		Keys: bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().
			SetName("slug_unique").
			SetUnique(true).
			SetPartialFilterExpression(bson.M{"slug": bson.M{"$type": "string"}}),
	}
}

func searchProjection() bson.M {
	p := bson.M{}
	for _, f := range SearchFields {
		p[f] = 1
	}
	return p
}
