// ABOUTME: Computes and stores document embeddings so vector search has something to find
// ABOUTME: Used after admin writes and by the embed CLI command for backfills
package rag

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harper/portfolio-backend/internal/llm"
	"github.com/harper/portfolio-backend/internal/models"
	"github.com/harper/portfolio-backend/internal/storage"
)

// IndexStore is the storage surface the indexer needs.
type IndexStore interface {
	List(ctx context.Context, collection string) ([]models.Document, error)
	GetBySlug(ctx context.Context, collection, slug string) (models.Document, error)
	SetEmbedding(ctx context.Context, collection, slug string, vector []float32) error
	ListMissingEmbedding(ctx context.Context, collection string) ([]models.Document, error)
}

type Indexer struct {
	embedder llm.Embedder
	store    IndexStore
	timeout  time.Duration
}

func NewIndexer(embedder llm.Embedder, store IndexStore, timeout time.Duration) *Indexer {
	return &Indexer{embedder: embedder, store: store, timeout: timeout}
}

// EmbeddingText is the text a document is embedded from.
func EmbeddingText(collection string, doc models.Document) string {
	var paths []string
	switch collection {
	case storage.CollectionProjects:
		paths = []string{"title", "description.title", "description.overview", "description.problem", "description.solution", "description.impact"}
	case storage.CollectionCertificates:
		paths = []string{"name", "issuer", "issue_date"}
	default:
		paths = []string{"title", "name"}
	}

	var parts []string
	for _, p := range paths {
		if v, ok := doc.String(p); ok {
			parts = append(parts, v)
		}
	}
	if techs := doc.Strings("technologies"); len(techs) > 0 {
		parts = append(parts, "Technologies: "+strings.Join(techs, ", "))
	}
	return strings.Join(parts, "\n")
}

// IndexBySlug embeds one document and stores the vector.
func (ix *Indexer) IndexBySlug(ctx context.Context, collection, slug string) error {
	doc, err := ix.store.GetBySlug(ctx, collection, slug)
	if err != nil {
		return fmt.Errorf("failed to load %s/%s for indexing: %w", collection, slug, err)
	}
	return ix.index(ctx, collection, slug, doc)
}

// Backfill embeds documents lacking a vector, or every document when force is set.
// It keeps going past individual failures and reports them together.
func (ix *Indexer) Backfill(ctx context.Context, collection string, force bool) (int, error) {
	var docs []models.Document
	var err error
	if force {
		docs, err = ix.store.List(ctx, collection)
	} else {
		docs, err = ix.store.ListMissingEmbedding(ctx, collection)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to list %s: %w", collection, err)
	}

	indexed := 0
	var errs []error
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		slug, ok := doc.String("slug")
		if !ok {
			log.Warn("skipping document without slug", "collection", collection, "id", doc["_id"])
			continue
		}
		if err := ix.index(ctx, collection, slug, doc); err != nil {
			errs = append(errs, err)
			continue
		}
		indexed++
		log.Debug("indexed document", "collection", collection, "slug", slug)
	}
	return indexed, errors.Join(errs...)
}

func (ix *Indexer) index(ctx context.Context, collection, slug string, doc models.Document) error {
	text := EmbeddingText(collection, doc)
	if text == "" {
		return fmt.Errorf("%s/%s has no text to embed", collection, slug)
	}

	embedCtx := ctx
	if ix.timeout > 0 {
		var cancel context.CancelFunc
		embedCtx, cancel = context.WithTimeout(ctx, ix.timeout)
		defer cancel()
	}
	vector, err := ix.embedder.Embed(embedCtx, text)
	if err != nil {
		return fmt.Errorf("failed to embed %s/%s: %w", collection, slug, err)
	}
	if err := ix.store.SetEmbedding(ctx, collection, slug, vector); err != nil {
		return fmt.Errorf("failed to store embedding for %s/%s: %w", collection, slug, err)
	}
	return nil
}
