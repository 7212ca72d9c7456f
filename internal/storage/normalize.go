// ABOUTME: Converts decoded BSON values into plain Go values
// ABOUTME: ObjectIDs become hex strings so documents serialize cleanly as JSON
package storage

import (
	"time"

	"github.com/harper/portfolio-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func normalizeDocument(raw bson.M) models.Document {
	out := make(models.Document, len(raw))
	for k, v := range raw {
		out[k] = normalizeValue(v)
	}
	return out
}

func normalizeValue(v any) any {
	switch x := v.(type) {
	case bson.M:
		return map[string]any(normalizeDocument(x))
	case bson.D:
		m := make(map[string]any, len(x))
		for _, e := range x {
			m[e.Key] = normalizeValue(e.Value)
		}
		return m
	case bson.A:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = normalizeValue(item)
		}
		return out
	case primitive.ObjectID:
		return x.Hex()
	case primitive.DateTime:
		return x.Time().UTC().Format(time.RFC3339)
	case primitive.Decimal128:
		return x.String()
	case primitive.Null, primitive.Undefined:
		return nil
	default:
		return v
	}
}

func normalizeAll(raws []bson.M) []models.Document {
	docs := make([]models.Document, 0, len(raws))
	for _, raw := range raws {
		docs = append(docs, normalizeDocument(raw))
	}
	return docs
}
