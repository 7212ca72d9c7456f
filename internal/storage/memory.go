// ABOUTME: In-memory Store with the same search semantics as MongoStore
// ABOUTME: Backs handler tests and STORAGE_BACKEND=memory for local development
package storage

import (
	"context"
	"regexp"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/harper/portfolio-backend/internal/models"
)

// MemoryStore keeps documents per collection in insertion order.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string][]models.Document
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string][]models.Document)}
}

// Seed inserts documents as-is, embeddings included.
func (s *MemoryStore) Seed(collection string, docs ...models.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, doc := range docs {
		d := doc.Clone()
		if _, ok := d["_id"]; !ok {
			d["_id"] = uuid.NewString()
		}
		s.collections[collection] = append(s.collections[collection], d)
	}
}

func (s *MemoryStore) List(ctx context.Context, collection string) ([]models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Document, 0, len(s.collections[collection]))
	for _, doc := range s.collections[collection] {
		out = append(out, doc.Without(EmbeddingField))
	}
	return out, nil
}

func (s *MemoryStore) GetBySlug(ctx context.Context, collection, slug string) (models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(collection, slug)
	if i < 0 {
		return nil, ErrNotFound
	}
	return s.collections[collection][i].Without(EmbeddingField), nil
}

func (s *MemoryStore) Insert(ctx context.Context, collection string, doc models.Document) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if slug, ok := doc.String("slug"); ok && s.indexOf(collection, slug) >= 0 {
		return "", ErrDuplicateSlug
	}
	d := doc.Clone()
	id := uuid.NewString()
	d["_id"] = id
	s.collections[collection] = append(s.collections[collection], d)
	return id, nil
}

func (s *MemoryStore) UpdateBySlug(ctx context.Context, collection, slug string, fields models.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(collection, slug)
	if i < 0 {
		return ErrNotFound
	}
	if next, ok := fields.String("slug"); ok && next != slug && s.indexOf(collection, next) >= 0 {
		return ErrDuplicateSlug
	}
	doc := s.collections[collection][i]
	for k, v := range fields.Clone() {
		doc[k] = v
	}
	return nil
}

func (s *MemoryStore) DeleteBySlug(ctx context.Context, collection, slug string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(collection, slug)
	if i < 0 {
		return ErrNotFound
	}
	docs := s.collections[collection]
	s.collections[collection] = append(docs[:i:i], docs[i+1:]...)
	return nil
}

func (s *MemoryStore) Count(ctx context.Context, collection string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.collections[collection])), nil
}

func (s *MemoryStore) SetEmbedding(ctx context.Context, collection, slug string, vector []float32) error {
	return s.UpdateBySlug(ctx, collection, slug, models.Document{EmbeddingField: vector})
}

func (s *MemoryStore) ListMissingEmbedding(ctx context.Context, collection string) ([]models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Document
	for _, doc := range s.collections[collection] {
		if _, ok := doc.Vector(EmbeddingField); !ok {
			out = append(out, doc.Without(EmbeddingField))
		}
	}
	return out, nil
}

// VectorSearch ranks by cosine similarity. The index name is ignored.
func (s *MemoryStore) VectorSearch(ctx context.Context, collection string, vector []float32, index string, limit int) ([]models.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Document
	for _, r := range rankBySimilarity(s.collections[collection], vector, limit) {
		score := r.score
		out = append(out, projectSearchFields(r.doc, &score))
	}
	return out, nil
}

// KeywordSearch mirrors the Mongo $or of case-insensitive regexes, in insertion order.
func (s *MemoryStore) KeywordSearch(ctx context.Context, collection, query string, fields []string, limit int) ([]models.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tokens := strings.Fields(query)
	if len(tokens) == 0 || len(fields) == 0 {
		return nil, nil
	}
	patterns := make([]*regexp.Regexp, len(tokens))
	for i, token := range tokens {
		patterns[i] = regexp.MustCompile("(?i)" + regexp.QuoteMeta(token))
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Document
	for _, doc := range s.collections[collection] {
		if len(out) >= limit {
			break
		}
		if matchesAny(doc, fields, patterns) {
			out = append(out, projectSearchFields(doc, nil))
		}
	}
	return out, nil
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}

func (s *MemoryStore) indexOf(collection, slug string) int {
	for i, doc := range s.collections[collection] {
		if v, ok := doc.String("slug"); ok && v == slug {
			return i
		}
	}
	return -1
}

// matchesAny treats array fields like Mongo does: any element may match.
func matchesAny(doc models.Document, fields []string, patterns []*regexp.Regexp) bool {
	for _, field := range fields {
		values := doc.Strings(field)
		if v, ok := doc.String(field); ok {
			values = append(values, v)
		}
		for _, v := range values {
			for _, p := range patterns {
				if p.MatchString(v) {
					return true
				}
			}
		}
	}
	return false
}
