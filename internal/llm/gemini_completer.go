// ABOUTME: Gemini generateContent client built on the google genai SDK
// ABOUTME: Extracts the first candidate's first part, or the no-response sentinel
package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

const DefaultGeminiChatModel = "gemini-2.5-flash"

// GeminiCompleterConfig configures the completion client.
type GeminiCompleterConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

type GeminiCompleter struct {
	client *genai.Client
	model  string
}

func NewGeminiCompleter(ctx context.Context, cfg GeminiCompleterConfig) (*GeminiCompleter, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultGeminiChatModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: cfg.BaseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiCompleter{client: client, model: cfg.Model}, nil
}

// Complete sends prompt as a single user message.
func (c *GeminiCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrCompletion, err)
	}
	return firstPartText(resp), nil
}

func firstPartText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return NoResponseText
	}
	content := resp.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 || content.Parts[0] == nil {
		return NoResponseText
	}
	if text := content.Parts[0].Text; text != "" {
		return text
	}
	return NoResponseText
}
