// ABOUTME: Tests for the genai-backed completion client
// ABOUTME: Points the SDK at an httptest server speaking the generateContent contract
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"google.golang.org/genai"
)

func newTestCompleter(t *testing.T, handler http.HandlerFunc) *GeminiCompleter {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := NewGeminiCompleter(context.Background(), GeminiCompleterConfig{APIKey: "test-key", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("NewGeminiCompleter: %v", err)
	}
	return c
}

func TestGeminiCompleter_Complete(t *testing.T) {
	c := newTestCompleter(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1beta/models/gemini-2.5-flash:generateContent" {
			t.Errorf("path = %s", r.URL.Path)
		}
		var body struct {
			Contents []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(body.Contents) != 1 || body.Contents[0].Parts[0].Text != "hello there" {
			t.Errorf("contents = %+v", body.Contents)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"Hi!"},{"text":"ignored"}]}}]}`))
	})

	reply, err := c.Complete(context.Background(), "hello there")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if reply != "Hi!" {
		t.Errorf("reply = %q, want Hi!", reply)
	}
}

func TestGeminiCompleter_NoCandidates(t *testing.T) {
	c := newTestCompleter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[]}`))
	})

	reply, err := c.Complete(context.Background(), "q")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if reply != NoResponseText {
		t.Errorf("reply = %q, want sentinel", reply)
	}
}

func TestGeminiCompleter_ServerError(t *testing.T) {
	c := newTestCompleter(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error":{"code":503,"message":"overloaded","status":"UNAVAILABLE"}}`))
	})

	_, err := c.Complete(context.Background(), "q")
	if !errors.Is(err, ErrCompletion) {
		t.Fatalf("err = %v, want ErrCompletion", err)
	}
	if !IsTransient(err) {
		t.Error("503 should be transient")
	}
}

func TestFirstPartText(t *testing.T) {
	tests := []struct {
		name string
		resp *genai.GenerateContentResponse
		want string
	}{
		{"nil response", nil, NoResponseText},
		{"no candidates", &genai.GenerateContentResponse{}, NoResponseText},
		{"nil content", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}, NoResponseText},
		{"no parts", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{Content: &genai.Content{}}}}, NoResponseText},
		{"empty text", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: []*genai.Part{{}}}}}}, NoResponseText},
		{"text", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: []*genai.Part{{Text: "ok"}}}}}}, "ok"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := firstPartText(tt.resp); got != tt.want {
				t.Errorf("firstPartText = %q, want %q", got, tt.want)
			}
		})
	}
}
