// ABOUTME: Service info, health, and admin collection statistics
// ABOUTME: Health reports 503 when the database does not answer a ping
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/harper/portfolio-backend/internal/storage"
)

const serviceName = "portfolio-backend"

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":    "Portfolio Backend API",
		"version": s.opts.Version,
		"status":  "operational",
		"endpoints": map[string]string{
			"health":       "/health",
			"auth":         "/auth/login",
			"projects":     "/api/v1/projects",
			"certificates": "/api/v1/certificates",
			"chat":         "/api/v1/chat",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status, db, code := "healthy", "connected", http.StatusOK
	if err := s.opts.Store.Ping(ctx); err != nil {
		status, db, code = "unhealthy", "disconnected", http.StatusServiceUnavailable
	}

	writeJSON(w, code, map[string]string{
		"status":    status,
		"service":   serviceName,
		"version":   s.opts.Version,
		"database":  db,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

type collectionStats struct {
	Name          string `json:"name"`
	DocumentCount int64  `json:"document_count"`
}

type statsResponse struct {
	Database    string            `json:"database"`
	Collections []collectionStats `json:"collections"`
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	resp := statsResponse{Database: s.opts.DatabaseName}
	for _, name := range []string{storage.CollectionProjects, storage.CollectionCertificates} {
		n, err := s.opts.Store.Count(r.Context(), name)
		if err != nil {
			writeError(w, r, err)
			return
		}
		resp.Collections = append(resp.Collections, collectionStats{Name: name, DocumentCount: n})
	}
	writeJSON(w, http.StatusOK, resp)
}
