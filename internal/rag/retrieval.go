// ABOUTME: Retrieval layer with vector search first and keyword search as fallback
// ABOUTME: Every search is reduced to a tagged Outcome so the fallback rule is a plain decision table
package rag

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harper/portfolio-backend/internal/models"
	"github.com/harper/portfolio-backend/internal/storage"
)

// Searcher is the part of the store the chat pipeline reads from.
type Searcher interface {
	VectorSearch(ctx context.Context, collection string, vector []float32, index string, limit int) ([]models.Document, error)
	KeywordSearch(ctx context.Context, collection, query string, fields []string, limit int) ([]models.Document, error)
}

// Source describes how to search one content collection.
type Source struct {
	Collection    string
	Index         string
	KeywordFields []string
}

var (
	ProjectsSource = Source{
		Collection:    storage.CollectionProjects,
		Index:         "projects_index",
		KeywordFields: []string{"title", "description.overview"},
	}
	CertificatesSource = Source{
		Collection:    storage.CollectionCertificates,
		Index:         "certificates_index",
		KeywordFields: []string{"name", "issuer"},
	}
)

// OutcomeKind tags the result of one search.
type OutcomeKind int

const (
	OutcomeOK OutcomeKind = iota
	OutcomeEmpty
	OutcomeErr
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeOK:
		return "ok"
	case OutcomeEmpty:
		return "empty"
	default:
		return "error"
	}
}

// Outcome is Ok(docs), Empty, or Err.
type Outcome struct {
	Kind OutcomeKind
	Docs []models.Document
	Err  error
}

func outcomeOf(docs []models.Document, err error) Outcome {
	switch {
	case err != nil:
		return Outcome{Kind: OutcomeErr, Err: err}
	case len(docs) == 0:
		return Outcome{Kind: OutcomeEmpty}
	default:
		return Outcome{Kind: OutcomeOK, Docs: docs}
	}
}

// Resolve applies the fallback rule:
//
//	vector Ok          -> vector docs
//	vector Empty|Err   -> keyword search
//	keyword Ok         -> keyword docs
//	keyword Empty|Err  -> no docs
//
// keyword is only called when the vector outcome is not Ok.
func Resolve(vector Outcome, keyword func() Outcome) []models.Document {
	if vector.Kind == OutcomeOK {
		return vector.Docs
	}
	if kw := keyword(); kw.Kind == OutcomeOK {
		return kw.Docs
	}
	return nil
}

// Retriever runs bounded searches against a Searcher.
type Retriever struct {
	searcher Searcher
	limit    int
	timeout  time.Duration
}

func NewRetriever(searcher Searcher, limit int, timeout time.Duration) *Retriever {
	if limit < 1 {
		limit = 3
	}
	return &Retriever{searcher: searcher, limit: limit, timeout: timeout}
}

// Vector runs similarity search over src.
func (r *Retriever) Vector(ctx context.Context, src Source, vector []float32) Outcome {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	return outcomeOf(r.searcher.VectorSearch(ctx, src.Collection, vector, src.Index, r.limit))
}

// Keyword runs the token/field regex search over src.
func (r *Retriever) Keyword(ctx context.Context, src Source, query string) Outcome {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	return outcomeOf(r.searcher.KeywordSearch(ctx, src.Collection, query, src.KeywordFields, r.limit))
}

// Retrieve never fails: a double miss degrades to no documents.
func (r *Retriever) Retrieve(ctx context.Context, src Source, vector []float32, query string) []models.Document {
	vo := r.Vector(ctx, src, vector)
	if vo.Kind != OutcomeOK {
		log.Debug("vector search fell back to keywords", "collection", src.Collection, "outcome", vo.Kind, "err", vo.Err)
	}

	return Resolve(vo, func() Outcome {
		ko := r.Keyword(ctx, src, query)
		if ko.Kind == OutcomeErr {
			log.Warn("keyword search failed", "collection", src.Collection, "err", ko.Err)
		}
		return ko
	})
}

func (r *Retriever) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}
