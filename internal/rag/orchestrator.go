// ABOUTME: Chat orchestrator: embed, retrieve both collections, format, prompt, complete
// ABOUTME: An embedding failure degrades to plain chat; a completion failure is returned to the caller
package rag

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harper/portfolio-backend/internal/config"
	"github.com/harper/portfolio-backend/internal/llm"
	"github.com/harper/portfolio-backend/internal/models"
	"golang.org/x/sync/errgroup"
)

// PersonaSource supplies the current persona for each request.
type PersonaSource interface {
	Persona() config.Persona
}

// StaticPersona is a PersonaSource that never changes.
type StaticPersona config.Persona

func (p StaticPersona) Persona() config.Persona {
	return config.Persona(p)
}

// Config tunes retrieval and stage timeouts.
type Config struct {
	TopK              int
	EmbeddingTimeout  time.Duration
	SearchTimeout     time.Duration
	ParallelRetrieval bool
}

type Orchestrator struct {
	embedder  llm.Embedder
	completer llm.Completer
	retriever *Retriever
	persona   PersonaSource
	cfg       Config
}

func NewOrchestrator(embedder llm.Embedder, completer llm.Completer, searcher Searcher, persona PersonaSource, cfg Config) *Orchestrator {
	return &Orchestrator{
		embedder:  embedder,
		completer: completer,
		retriever: NewRetriever(searcher, cfg.TopK, cfg.SearchTimeout),
		persona:   persona,
		cfg:       cfg,
	}
}

// HandleChat answers message. Only completion failures are returned.
func (o *Orchestrator) HandleChat(ctx context.Context, message string) (string, error) {
	prompt, err := o.PreparePrompt(ctx, message)
	if err != nil {
		log.Warn("embedding failed, answering without portfolio context", "err", err)
		return o.DirectFallback(ctx, message)
	}

	reply, err := o.completer.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	return reply, nil
}

// DirectFallback sends the raw message with no context.
func (o *Orchestrator) DirectFallback(ctx context.Context, message string) (string, error) {
	reply, err := o.completer.Complete(ctx, message)
	if err != nil {
		return "", fmt.Errorf("direct completion failed: %w", err)
	}
	return reply, nil
}

// PreparePrompt runs every stage before completion. It fails only when embedding fails.
func (o *Orchestrator) PreparePrompt(ctx context.Context, message string) (string, error) {
	vector, err := o.embed(ctx, message)
	if err != nil {
		return "", err
	}

	projects, certificates := o.retrieveAll(ctx, vector, message)
	log.Debug("retrieved context", "projects", len(projects), "certificates", len(certificates))

	system := BuildPrompt(o.persona.Persona(), FormatProjects(projects), FormatCertificates(certificates))
	return FullPrompt(system, message), nil
}

func (o *Orchestrator) embed(ctx context.Context, message string) ([]float32, error) {
	if o.cfg.EmbeddingTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.cfg.EmbeddingTimeout)
		defer cancel()
	}
	return o.embedder.Embed(ctx, message)
}

// retrieveAll searches both collections; each branch degrades on its own.
func (o *Orchestrator) retrieveAll(ctx context.Context, vector []float32, message string) (projects, certificates []models.Document) {
	if !o.cfg.ParallelRetrieval {
		projects = o.retriever.Retrieve(ctx, ProjectsSource, vector, message)
		certificates = o.retriever.Retrieve(ctx, CertificatesSource, vector, message)
		return projects, certificates
	}

	var g errgroup.Group
	g.Go(func() error {
		projects = o.retriever.Retrieve(ctx, ProjectsSource, vector, message)
		return nil
	})
	g.Go(func() error {
		certificates = o.retriever.Retrieve(ctx, CertificatesSource, vector, message)
		return nil
	})
	_ = g.Wait()
	return projects, certificates
}
