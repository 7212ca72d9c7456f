// ABOUTME: Chat endpoint backed by the RAG orchestrator
// ABOUTME: Only a completion failure reaches the client as an error
package server

import (
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/harper/portfolio-backend/internal/models"
)

const logPreviewRunes = 50

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	message := req.Text()
	if strings.TrimSpace(message) == "" {
		writeError(w, r, badRequest("message must not be empty"))
		return
	}

	log.Info("chat request", "preview", preview(message), "history", len(req.ChatHistory), "request_id", RequestID(r.Context()))

	reply, err := s.opts.Chat.HandleChat(r.Context(), message)
	if err != nil {
		log.Error("chat failed", "err", err, "request_id", RequestID(r.Context()))
		writeError(w, r, internalError("Failed to generate response"))
		return
	}
	writeJSON(w, http.StatusOK, models.ChatResponse{Content: reply})
}

func preview(s string) string {
	runes := []rune(s)
	if len(runes) <= logPreviewRunes {
		return s
	}
	return string(runes[:logPreviewRunes]) + "..."
}
