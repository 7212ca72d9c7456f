// ABOUTME: Chat request and response bodies for /api/v1/chat
// ABOUTME: History is accepted for client compatibility but not used server-side
package models

import "strings"

// ChatMessage is one prior turn sent by the client.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest carries the user's message in "messages".
type ChatRequest struct {
	Messages    string        `json:"messages"`
	Message     string        `json:"message,omitempty"`
	ChatHistory []ChatMessage `json:"chat_history,omitempty"`
}

// Text returns the user's message, accepting "message" as an alias.
func (r ChatRequest) Text() string {
	if strings.TrimSpace(r.Messages) != "" {
		return r.Messages
	}
	return r.Message
}

type ChatResponse struct {
	Content string `json:"content"`
}
