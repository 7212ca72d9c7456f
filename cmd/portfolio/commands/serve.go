// ABOUTME: Serve command runs the HTTP API until interrupted
// ABOUTME: Wires storage, auth, the RAG pipeline, persona reload, and the Redis rate limiter
package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harper/portfolio-backend/internal/auth"
	"github.com/harper/portfolio-backend/internal/config"
	"github.com/harper/portfolio-backend/internal/rag"
	"github.com/harper/portfolio-backend/internal/server"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

var serveAddr string

// NewServeCmd creates the serve command
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the HTTP API server.

Serves the projects and certificates API, admin login, and the
RAG chat endpoint. Shuts down gracefully on SIGINT or SIGTERM.

Requires ADMIN_EMAIL, ADMIN_PASSWORD, an LLM credential, and
MONGODB_URI unless STORAGE_BACKEND=memory.

Examples:
  portfolio serve
  portfolio serve --addr :9000
  STORAGE_BACKEND=memory MEMORY_SEED_FILE=seed.yaml portfolio serve`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	cmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides ADDR/PORT)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.RequireServe(); err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Addr = serveAddr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, dbName, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore(store)

	authenticator, err := auth.NewAuthenticator(auth.Config{
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
		Secret:   cfg.JWTSecret,
		Expiry:   cfg.JWTExpiry,
	})
	if err != nil {
		return err
	}

	embedder, completer, err := newProvider(ctx, cfg)
	if err != nil {
		return err
	}

	persona := config.NewPersonaStore(cfg.Persona)
	if cfg.PersonaFile != "" {
		go func() {
			if err := persona.Watch(ctx, cfg.PersonaFile, config.PersonaFromEnv()); err != nil {
				log.Warn("persona hot reload disabled", "err", err)
			}
		}()
	}

	limiter, closeLimiter := newRateLimiter(ctx, cfg)
	defer closeLimiter()

	srv := server.New(server.Options{
		Store:          store,
		Auth:           authenticator,
		Chat:           newOrchestrator(cfg, embedder, completer, store, persona),
		Indexer:        rag.NewIndexer(embedder, store, cfg.EmbeddingTimeout),
		Limiter:        limiter,
		Version:        versionInfo.Version,
		DatabaseName:   dbName,
		CORSOrigins:    cfg.CORSOrigins,
		TrustedProxies: cfg.TrustedProxies,
	})

	if err := srv.Start(ctx, cfg.Addr); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	log.Info("shutdown complete")
	return nil
}

// newRateLimiter returns nil when REDIS_ADDR is unset.
func newRateLimiter(ctx context.Context, cfg *config.Config) (server.RateLimiter, func()) {
	if cfg.RedisAddr == "" {
		return nil, func() {}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warn("redis unreachable, chat rate limiting will fail open", "addr", cfg.RedisAddr, "err", err)
	} else {
		log.Info("chat rate limiting enabled", "limit_per_minute", cfg.ChatRateLimit)
	}

	limiter := server.NewRedisLimiter(client, cfg.ChatRateLimit, time.Minute)
	return limiter, func() { _ = client.Close() }
}
