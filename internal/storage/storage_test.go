// ABOUTME: Tests for MemoryStore CRUD and search semantics
// ABOUTME: Search behavior mirrors what MongoStore asks of Atlas
package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/harper/portfolio-backend/internal/models"
)

func newSeededStore() *MemoryStore {
	s := NewMemoryStore()
	s.Seed(CollectionCertificates,
		models.Document{"slug": "deep-learning", "name": "Deep Learning Specialization", "issuer": "Coursera"},
		models.Document{"slug": "ai-certificate", "name": "AI Certificate", "issuer": "Example Academy"},
		models.Document{"slug": "cloud", "name": "Cloud Practitioner", "issuer": "AWS"},
	)
	s.Seed(CollectionProjects,
		models.Document{
			"slug": "chatbot", "title": "Chatbot",
			"description":  map[string]any{"overview": "A retrieval augmented assistant"},
			"technologies": []any{"Go", "MongoDB"},
			"embedding":    []any{1.0, 0.0, 0.0},
		},
		models.Document{
			"slug": "dashboard", "title": "Sales Dashboard",
			"embedding": []float32{0.0, 1.0, 0.0},
			"features":  []any{"charts"},
		},
		models.Document{"slug": "notes", "title": "Notes App"},
	)
	return s
}

func TestMemoryStore_KeywordSearch_AnyTokenAnyField(t *testing.T) {
	s := newSeededStore()

	docs, err := s.KeywordSearch(context.Background(), CollectionCertificates, "ai certificate", []string{"name", "issuer"}, 3)
	if err != nil {
		t.Fatalf("KeywordSearch: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected 1 match, got %d: %v", len(docs), docs)
	}
	if name, _ := docs[0].String("name"); name != "AI Certificate" {
		t.Errorf("name = %s, want AI Certificate", name)
	}
}

func TestMemoryStore_KeywordSearch_InsertionOrderAndLimit(t *testing.T) {
	s := newSeededStore()

	// "a" appears in every certificate; results come back in insertion order
	docs, err := s.KeywordSearch(context.Background(), CollectionCertificates, "a", []string{"name", "issuer"}, 2)
	if err != nil {
		t.Fatalf("KeywordSearch: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 docs, got %d", len(docs))
	}
	first, _ := docs[0].String("name")
	second, _ := docs[1].String("name")
	if first != "Deep Learning Specialization" || second != "AI Certificate" {
		t.Errorf("order = [%s, %s]", first, second)
	}
}

func TestMemoryStore_KeywordSearch_NestedFieldAndRegexMeta(t *testing.T) {
	s := newSeededStore()

	docs, _ := s.KeywordSearch(context.Background(), CollectionProjects, "RETRIEVAL", []string{"title", "description.overview"}, 3)
	if len(docs) != 1 {
		t.Fatalf("expected nested overview match, got %d", len(docs))
	}

	docs, _ = s.KeywordSearch(context.Background(), CollectionProjects, ".*", []string{"title"}, 3)
	if len(docs) != 0 {
		t.Errorf("regex metacharacters must be literal, got %d matches", len(docs))
	}
}

func TestMemoryStore_KeywordSearch_NoTokens(t *testing.T) {
	s := newSeededStore()
	docs, err := s.KeywordSearch(context.Background(), CollectionProjects, "   ", []string{"title"}, 3)
	if err != nil || len(docs) != 0 {
		t.Errorf("blank query = %v, %v; want empty", docs, err)
	}
}

func TestMemoryStore_VectorSearch(t *testing.T) {
	s := newSeededStore()

	docs, err := s.VectorSearch(context.Background(), CollectionProjects, []float32{0.9, 0.1, 0}, "projects_index", 3)
	if err != nil {
		t.Fatalf("VectorSearch: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 docs with embeddings, got %d", len(docs))
	}
	if title, _ := docs[0].String("title"); title != "Chatbot" {
		t.Errorf("top result = %s, want Chatbot", title)
	}
	s0, _ := docs[0].Float("score")
	s1, _ := docs[1].Float("score")
	if s0 <= s1 {
		t.Errorf("scores not descending: %v, %v", s0, s1)
	}
	if _, ok := docs[0]["embedding"]; ok {
		t.Error("embedding must be projected out")
	}
	if _, ok := docs[1]["features"]; ok {
		t.Error("fields outside the allow-list must be projected out")
	}
	if _, ok := docs[0]["_id"]; !ok {
		t.Error("_id should be kept")
	}
}

func TestMemoryStore_VectorSearch_Limit(t *testing.T) {
	s := newSeededStore()
	docs, _ := s.VectorSearch(context.Background(), CollectionProjects, []float32{0, 1, 0}, "projects_index", 1)
	if len(docs) != 1 {
		t.Fatalf("expected 1 doc, got %d", len(docs))
	}
	if title, _ := docs[0].String("title"); title != "Sales Dashboard" {
		t.Errorf("top result = %s", title)
	}
}

func TestMemoryStore_CRUD(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	id, err := s.Insert(ctx, CollectionProjects, models.Document{"slug": "p1", "title": "One"})
	if err != nil || id == "" {
		t.Fatalf("Insert = %q, %v", id, err)
	}

	doc, err := s.GetBySlug(ctx, CollectionProjects, "p1")
	if err != nil {
		t.Fatalf("GetBySlug: %v", err)
	}
	if doc["_id"] != id {
		t.Errorf("_id = %v, want %s", doc["_id"], id)
	}

	// Mutating the returned copy must not touch the store
	doc["title"] = "Mutated"
	again, _ := s.GetBySlug(ctx, CollectionProjects, "p1")
	if title, _ := again.String("title"); title != "One" {
		t.Errorf("store was mutated through a read: %s", title)
	}

	if err := s.UpdateBySlug(ctx, CollectionProjects, "p1", models.Document{"title": "Uno", "slug": "p-uno"}); err != nil {
		t.Fatalf("UpdateBySlug: %v", err)
	}
	if _, err := s.GetBySlug(ctx, CollectionProjects, "p1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("old slug should be gone, got %v", err)
	}
	// Identical update still succeeds
	if err := s.UpdateBySlug(ctx, CollectionProjects, "p-uno", models.Document{"title": "Uno"}); err != nil {
		t.Errorf("idempotent update: %v", err)
	}

	if n, _ := s.Count(ctx, CollectionProjects); n != 1 {
		t.Errorf("Count = %d, want 1", n)
	}

	if err := s.DeleteBySlug(ctx, CollectionProjects, "p-uno"); err != nil {
		t.Fatalf("DeleteBySlug: %v", err)
	}
	if err := s.DeleteBySlug(ctx, CollectionProjects, "p-uno"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete = %v, want ErrNotFound", err)
	}
	if err := s.UpdateBySlug(ctx, CollectionProjects, "missing", models.Document{}); !errors.Is(err, ErrNotFound) {
		t.Errorf("update missing = %v, want ErrNotFound", err)
	}
}

func TestMemoryStore_DuplicateSlug(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	for _, slug := range []string{"taken", "other"} {
		if _, err := s.Insert(ctx, CollectionProjects, models.Document{"slug": slug}); err != nil {
			t.Fatal(err)
		}
	}

	if _, err := s.Insert(ctx, CollectionProjects, models.Document{"slug": "taken"}); !errors.Is(err, ErrDuplicateSlug) {
		t.Errorf("duplicate insert = %v, want ErrDuplicateSlug", err)
	}
	if _, err := s.Insert(ctx, CollectionCertificates, models.Document{"slug": "taken"}); err != nil {
		t.Errorf("slugs are per collection, got %v", err)
	}
	if err := s.UpdateBySlug(ctx, CollectionProjects, "other", models.Document{"slug": "taken"}); !errors.Is(err, ErrDuplicateSlug) {
		t.Errorf("rename onto existing slug = %v, want ErrDuplicateSlug", err)
	}
	if err := s.UpdateBySlug(ctx, CollectionProjects, "taken", models.Document{"slug": "taken", "title": "Same"}); err != nil {
		t.Errorf("keeping the same slug = %v", err)
	}
	if n, _ := s.Count(ctx, CollectionProjects); n != 2 {
		t.Errorf("Count = %d, want 2", n)
	}
}

func TestMemoryStore_Embeddings(t *testing.T) {
	ctx := context.Background()
	s := newSeededStore()

	missing, _ := s.ListMissingEmbedding(ctx, CollectionProjects)
	if len(missing) != 1 {
		t.Fatalf("missing = %d, want 1", len(missing))
	}
	if err := s.SetEmbedding(ctx, CollectionProjects, "notes", []float32{0, 0, 1}); err != nil {
		t.Fatalf("SetEmbedding: %v", err)
	}
	missing, _ = s.ListMissingEmbedding(ctx, CollectionProjects)
	if len(missing) != 0 {
		t.Errorf("missing after SetEmbedding = %d", len(missing))
	}

	list, _ := s.List(ctx, CollectionProjects)
	for _, d := range list {
		if _, ok := d[EmbeddingField]; ok {
			t.Error("List must not expose embeddings")
		}
	}
}

func TestLoadSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	content := `projects:
  - slug: chatbot
    title: Chatbot
    description:
      overview: Talks
    technologies: [Go]
    embedding: [0.1, 0.2]
certificates:
  - slug: go
    name: Go Expert
    issuer: Gophers
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	s := NewMemoryStore()
	if err := s.LoadSeed(path); err != nil {
		t.Fatalf("LoadSeed: %v", err)
	}

	doc, err := s.GetBySlug(context.Background(), CollectionProjects, "chatbot")
	if err != nil {
		t.Fatalf("GetBySlug: %v", err)
	}
	if v, _ := doc.String("description.overview"); v != "Talks" {
		t.Errorf("overview = %q", v)
	}
	if n, _ := s.Count(context.Background(), CollectionCertificates); n != 1 {
		t.Errorf("certificates = %d", n)
	}
	missing, _ := s.ListMissingEmbedding(context.Background(), CollectionProjects)
	if len(missing) != 0 {
		t.Error("seeded embedding should be recognized")
	}
}

func TestLoadSeedFile_Missing(t *testing.T) {
	if _, err := LoadSeedFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing seed file")
	}
}
