// ABOUTME: Storage contract for the projects and certificates collections
// ABOUTME: Implemented by MongoStore in production and MemoryStore for tests and local dev
package storage

import (
	"context"
	"errors"

	"github.com/harper/portfolio-backend/internal/models"
)

// Collection names in the portfolio database.
const (
	CollectionProjects     = "projects"
	CollectionCertificates = "certificates"
)

// EmbeddingField holds each document's precomputed vector.
const EmbeddingField = "embedding"

var (
	// ErrNotFound is returned when no document has the requested slug.
	ErrNotFound = errors.New("document not found")
	// ErrDuplicateSlug is returned when a write would give two documents the same slug.
	ErrDuplicateSlug = errors.New("slug already exists")
)

// SearchFields is the allow-list every search result is projected to.
var SearchFields = []string{
	"_id", "title", "name", "date", "issue_date", "description", "technologies",
	"githubUrl", "demoUrl", "ReportUrl", "issuer", "link",
}

// Store is everything the HTTP layer, chat pipeline, and CLI need from the database.
// Reads never include the embedding field.
type Store interface {
	List(ctx context.Context, collection string) ([]models.Document, error)
	GetBySlug(ctx context.Context, collection, slug string) (models.Document, error)
	Insert(ctx context.Context, collection string, doc models.Document) (string, error)
	UpdateBySlug(ctx context.Context, collection, slug string, fields models.Document) error
	DeleteBySlug(ctx context.Context, collection, slug string) error
	Count(ctx context.Context, collection string) (int64, error)

	SetEmbedding(ctx context.Context, collection, slug string, vector []float32) error
	ListMissingEmbedding(ctx context.Context, collection string) ([]models.Document, error)

	VectorSearch(ctx context.Context, collection string, vector []float32, index string, limit int) ([]models.Document, error)
	KeywordSearch(ctx context.Context, collection, query string, fields []string, limit int) ([]models.Document, error)

	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// projectSearchFields keeps only the allow-listed fields plus the score.
func projectSearchFields(doc models.Document, score *float64) models.Document {
	out := models.Document{}
	for _, f := range SearchFields {
		if v, ok := doc[f]; ok {
			out[f] = v
		}
	}
	if score != nil {
		out["score"] = *score
	}
	return out.Clone()
}
