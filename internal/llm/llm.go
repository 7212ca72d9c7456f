// ABOUTME: Provider-neutral contracts for embedding and chat completion
// ABOUTME: Defines stage errors and classifies which failures are worth retrying
package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
	"google.golang.org/genai"
)

// NoResponseText is returned when the provider answers without any text.
const NoResponseText = "No response generated"

var (
	// ErrEmbedding wraps every embedding failure: transport, status, or malformed body.
	ErrEmbedding = errors.New("embedding failed")
	// ErrCompletion wraps every completion failure.
	ErrCompletion = errors.New("completion failed")
)

// Embedder turns text into a vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Completer sends one prompt and returns the reply text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// StatusError is a non-2xx response from a REST provider.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.Code, e.Body)
}

// IsTransient reports whether err may succeed on a second attempt:
// rate limits, server errors, network failures, and attempt timeouts.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var gerr genai.APIError
	if errors.As(err, &gerr) {
		return retryableStatus(gerr.Code)
	}
	var oerr *openai.APIError
	if errors.As(err, &oerr) {
		return retryableStatus(oerr.HTTPStatusCode)
	}
	var rerr *openai.RequestError
	if errors.As(err, &rerr) {
		return retryableStatus(rerr.HTTPStatusCode)
	}
	var serr *StatusError
	if errors.As(err, &serr) {
		return retryableStatus(serr.Code)
	}
	var nerr net.Error
	return errors.As(err, &nerr)
}

func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}
