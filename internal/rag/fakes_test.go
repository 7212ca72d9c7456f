// ABOUTME: Scripted embedder, completer, and searcher shared by rag tests
// ABOUTME: Each fake records its calls so tests can assert which stages ran
package rag

import (
	"context"
	"errors"
	"sync"

	"github.com/harper/portfolio-backend/internal/models"
)

type fakeEmbedder struct {
	vector []float32
	err    error

	mu     sync.Mutex
	inputs []string
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	f.mu.Lock()
	f.inputs = append(f.inputs, text)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.vector, nil
}

type fakeCompleter struct {
	reply string
	err   error

	mu      sync.Mutex
	prompts []string
}

func (f *fakeCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeCompleter) lastPrompt() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.prompts) == 0 {
		return ""
	}
	return f.prompts[len(f.prompts)-1]
}

type searchResult struct {
	docs []models.Document
	err  error
}

// fakeSearcher returns scripted results keyed by collection.
type fakeSearcher struct {
	vector  map[string]searchResult
	keyword map[string]searchResult

	mu           sync.Mutex
	vectorCalls  []string
	keywordCalls []string
	sawDeadline  bool
}

func (f *fakeSearcher) VectorSearch(ctx context.Context, collection string, vector []float32, index string, limit int) ([]models.Document, error) {
	f.mu.Lock()
	f.vectorCalls = append(f.vectorCalls, collection)
	if _, ok := ctx.Deadline(); ok {
		f.sawDeadline = true
	}
	f.mu.Unlock()
	r := f.vector[collection]
	return r.docs, r.err
}

func (f *fakeSearcher) KeywordSearch(ctx context.Context, collection, query string, fields []string, limit int) ([]models.Document, error) {
	f.mu.Lock()
	f.keywordCalls = append(f.keywordCalls, collection)
	f.mu.Unlock()
	r := f.keyword[collection]
	return r.docs, r.err
}

func (f *fakeSearcher) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.vectorCalls) + len(f.keywordCalls)
}

var errSearch = errors.New("search unavailable")
