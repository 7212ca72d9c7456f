// ABOUTME: Builds the runtime pieces shared by serve, ask, embed, and mcp
// ABOUTME: Config and logging first, then storage, then the LLM provider and RAG pipeline
package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/harper/portfolio-backend/internal/config"
	"github.com/harper/portfolio-backend/internal/llm"
	"github.com/harper/portfolio-backend/internal/logging"
	"github.com/harper/portfolio-backend/internal/rag"
	"github.com/harper/portfolio-backend/internal/storage"
	"github.com/joho/godotenv"
	"github.com/sashabaranov/go-openai"
)

// loadConfig reads .env and the environment and installs the default logger.
// Logs go to stderr so stdout stays clean for command output and MCP stdio.
func loadConfig() (*config.Config, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	level := cfg.LogLevel
	switch {
	case verbose:
		level = "debug"
	case quiet:
		level = "error"
	}
	if _, err := logging.Setup(os.Stderr, level, cfg.LogFormat); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openStore returns the configured store and the database name to report.
func openStore(ctx context.Context, cfg *config.Config) (storage.Store, string, error) {
	if err := cfg.RequireStorage(); err != nil {
		return nil, "", err
	}

	if cfg.StorageBackend == config.BackendMemory {
		store := storage.NewMemoryStore()
		if cfg.MemorySeedFile != "" {
			if err := store.LoadSeed(cfg.MemorySeedFile); err != nil {
				return nil, "", err
			}
			log.Info("loaded memory seed", "file", cfg.MemorySeedFile)
		}
		return store, "memory", nil
	}

	store, err := storage.NewMongoStore(ctx, storage.MongoConfig{
		URI:             cfg.MongoURI,
		Database:        cfg.MongoDatabase,
		CandidateFactor: cfg.CandidateFactor,
	})
	if err != nil {
		return nil, "", err
	}
	log.Info("connected to MongoDB", "database", store.DatabaseName())
	return store, store.DatabaseName(), nil
}

// newProvider builds the embedder and the retrying completer for the selected provider.
func newProvider(ctx context.Context, cfg *config.Config) (llm.Embedder, llm.Completer, error) {
	if err := cfg.RequireLLM(); err != nil {
		return nil, nil, err
	}

	var embedder llm.Embedder
	var completer llm.Completer
	switch cfg.LLMProvider {
	case config.ProviderOpenAI:
		client, err := llm.NewOpenAIClient(llm.OpenAIConfig{
			APIKey:         cfg.OpenAIKey,
			BaseURL:        cfg.OpenAIBaseURL,
			ChatModel:      cfg.OpenAIChatModel,
			EmbeddingModel: openai.EmbeddingModel(cfg.OpenAIEmbeddingModel),
		})
		if err != nil {
			return nil, nil, err
		}
		embedder, completer = client, client
	default:
		e, err := llm.NewGeminiEmbedder(llm.GeminiEmbedderConfig{
			APIKey:  cfg.GoogleAPIKey,
			BaseURL: cfg.GeminiBaseURL,
			Model:   cfg.GeminiEmbeddingModel,
			Timeout: cfg.EmbeddingTimeout,
		})
		if err != nil {
			return nil, nil, err
		}
		c, err := llm.NewGeminiCompleter(ctx, llm.GeminiCompleterConfig{
			APIKey:  cfg.GoogleAPIKey,
			BaseURL: cfg.GeminiBaseURL,
			Model:   cfg.GeminiChatModel,
		})
		if err != nil {
			return nil, nil, err
		}
		embedder, completer = e, c
	}

	completer = llm.NewRetryingCompleter(completer, llm.RetryConfig{
		AttemptTimeout: cfg.CompletionTimeout,
		MaxRetries:     cfg.CompletionMaxRetries,
		RetryDelay:     cfg.RetryDelay,
	})
	log.Debug("LLM provider ready", "provider", cfg.LLMProvider)
	return embedder, completer, nil
}

func newOrchestrator(cfg *config.Config, embedder llm.Embedder, completer llm.Completer, searcher rag.Searcher, persona rag.PersonaSource) *rag.Orchestrator {
	return rag.NewOrchestrator(embedder, completer, searcher, persona, rag.Config{
		TopK:              cfg.TopK,
		EmbeddingTimeout:  cfg.EmbeddingTimeout,
		SearchTimeout:     cfg.SearchTimeout,
		ParallelRetrieval: cfg.ParallelRetrieval,
	})
}

func closeStore(store storage.Store) {
	if err := store.Close(context.Background()); err != nil {
		log.Warn("error closing storage", "err", err)
	}
}
