// ABOUTME: Gemini embedContent client over plain REST
// ABOUTME: One POST per query; any transport, status, or body problem is ErrEmbedding
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultGeminiBaseURL        = "https://generativelanguage.googleapis.com"
	DefaultGeminiEmbeddingModel = "text-embedding-004"
)

// GeminiEmbedderConfig configures the REST embedding client.
type GeminiEmbedderConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// GeminiEmbedder calls models/<model>:embedContent.
type GeminiEmbedder struct {
	httpClient *http.Client
	endpoint   string
	model      string
	apiKey     string
}

type embedRequest struct {
	Model   string       `json:"model"`
	Content embedContent `json:"content"`
}

type embedContent struct {
	Parts []embedPart `json:"parts"`
}

type embedPart struct {
	Text string `json:"text"`
}

type embedResponse struct {
	Embedding struct {
		Values []float32 `json:"values"`
	} `json:"embedding"`
}

func NewGeminiEmbedder(cfg GeminiEmbedderConfig) (*GeminiEmbedder, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultGeminiBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultGeminiEmbeddingModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	model := strings.TrimPrefix(cfg.Model, "models/")

	return &GeminiEmbedder{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		endpoint:   fmt.Sprintf("%s/v1beta/models/%s:embedContent", strings.TrimRight(cfg.BaseURL, "/"), model),
		model:      "models/" + model,
		apiKey:     cfg.APIKey,
	}, nil
}

// Embed returns the embedding for text. Empty text is sent as-is; the provider decides.
func (e *GeminiEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	body, err := json.Marshal(embedRequest{
		Model:   e.model,
		Content: embedContent{Parts: []embedPart{{Text: text}}},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode request: %w", ErrEmbedding, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to build request: %w", ErrEmbedding, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", e.apiKey)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEmbedding, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("%w: %w", ErrEmbedding, &StatusError{Code: resp.StatusCode, Body: string(snippet)})
	}

	var result embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %w", ErrEmbedding, err)
	}
	if len(result.Embedding.Values) == 0 {
		return nil, fmt.Errorf("%w: response contained no embedding values", ErrEmbedding)
	}

	return result.Embedding.Values, nil
}
