// ABOUTME: HTTP server for the portfolio API: routing, middleware chain, and lifecycle
// ABOUTME: Routes use ServeMux method patterns; Start shuts down gracefully when ctx ends
package server

import (
	"context"
	"errors"
	"net/http"
	"net/netip"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harper/portfolio-backend/internal/auth"
	"github.com/harper/portfolio-backend/internal/storage"
)

// ChatService answers a chat message.
type ChatService interface {
	HandleChat(ctx context.Context, message string) (string, error)
}

// Indexer refreshes a document's embedding after a write.
type Indexer interface {
	IndexBySlug(ctx context.Context, collection, slug string) error
}

// Options wires the server's collaborators. Indexer and Limiter are optional.
// TrustedProxies lists the peers whose X-Forwarded-For is honored for rate limiting.
type Options struct {
	Store          storage.Store
	Auth           *auth.Authenticator
	Chat           ChatService
	Indexer        Indexer
	Limiter        RateLimiter
	Version        string
	DatabaseName   string
	CORSOrigins    []string
	TrustedProxies []netip.Prefix
}

type Server struct {
	opts    Options
	handler http.Handler
}

func New(opts Options) *Server {
	if opts.Version == "" {
		opts.Version = "dev"
	}
	s := &Server{opts: opts}
	s.handler = s.routes()
	return s
}

// Handler returns the fully wrapped handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	admin := s.opts.Auth.RequireAdmin(authFailure)
	limited := rateLimitMiddleware(s.opts.Limiter, s.opts.TrustedProxies)

	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("POST /auth/login", s.handleLogin)
	mux.HandleFunc("GET /auth/verify", s.handleVerify)

	mux.HandleFunc("GET /api/v1/projects", s.handleListProjects)
	mux.HandleFunc("GET /api/v1/projects/{slug}", s.handleGetProject)
	mux.Handle("POST /api/v1/projects", admin(http.HandlerFunc(s.handleCreateProject)))
	mux.Handle("PUT /api/v1/projects/{slug}", admin(http.HandlerFunc(s.handleUpdateProject)))
	mux.Handle("DELETE /api/v1/projects/{slug}", admin(http.HandlerFunc(s.handleDeleteProject)))

	mux.HandleFunc("GET /api/v1/certificates", s.handleListCertificates)
	mux.HandleFunc("GET /api/v1/certificates/{slug}", s.handleGetCertificate)
	mux.Handle("POST /api/v1/certificates", admin(http.HandlerFunc(s.handleCreateCertificate)))
	mux.Handle("PUT /api/v1/certificates/{slug}", admin(http.HandlerFunc(s.handleUpdateCertificate)))
	mux.Handle("DELETE /api/v1/certificates/{slug}", admin(http.HandlerFunc(s.handleDeleteCertificate)))

	mux.Handle("GET /api/v1/stats", admin(http.HandlerFunc(s.handleStats)))
	mux.Handle("POST /api/v1/chat", limited(http.HandlerFunc(s.handleChat)))

	var h http.Handler = mux
	h = corsMiddleware(s.opts.CORSOrigins)(h)
	h = recoverMiddleware(h)
	h = loggingMiddleware(h)
	h = requestIDMiddleware(h)
	return h
}

func authFailure(w http.ResponseWriter, r *http.Request, status int, err error) {
	writeError(w, r, &APIError{Status: status, Message: err.Error()})
}

// Start serves on addr until ctx is cancelled, then drains in-flight requests.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// Chat completions can take a while with retries.
		WriteTimeout: 120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("portfolio server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
