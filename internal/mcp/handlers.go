// ABOUTME: MCP tool handler implementations for the portfolio server
// ABOUTME: Tool failures are returned as error results, never as protocol errors
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/harper/portfolio-backend/internal/models"
	"github.com/harper/portfolio-backend/internal/rag"
	"github.com/harper/portfolio-backend/internal/storage"
	"github.com/mark3labs/mcp-go/mcp"
)

const (
	defaultSearchLimit = 5
	maxSearchLimit     = 20
)

// Catalog is the read side of the store the tools need.
type Catalog interface {
	List(ctx context.Context, collection string) ([]models.Document, error)
	GetBySlug(ctx context.Context, collection, slug string) (models.Document, error)
	KeywordSearch(ctx context.Context, collection, query string, fields []string, limit int) ([]models.Document, error)
}

// ChatService answers a question with the RAG pipeline.
type ChatService interface {
	HandleChat(ctx context.Context, message string) (string, error)
}

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	catalog Catalog
	chat    ChatService
}

func NewHandlers(catalog Catalog, chat ChatService) *Handlers {
	return &Handlers{catalog: catalog, chat: chat}
}

// AskPortfolio handles the ask_portfolio tool
func (h *Handlers) AskPortfolio(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := request.RequireString("question")
	if err != nil || strings.TrimSpace(question) == "" {
		return mcp.NewToolResultError("question argument is required and must be a non-empty string"), nil
	}
	if h.chat == nil {
		return mcp.NewToolResultError("chat is not configured (missing LLM credentials)"), nil
	}

	answer, err := h.chat.HandleChat(ctx, question)
	if err != nil {
		log.Error("ask_portfolio failed", "err", err)
		return mcp.NewToolResultError(fmt.Sprintf("failed to answer: %v", err)), nil
	}
	return mcp.NewToolResultText(answer), nil
}

// ListProjects handles the list_projects tool
func (h *Handlers) ListProjects(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	docs, err := h.catalog.List(ctx, storage.CollectionProjects)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list projects: %v", err)), nil
	}

	projects := make([]map[string]interface{}, 0, len(docs))
	for _, doc := range docs {
		projects = append(projects, projectSummary(doc))
	}
	return jsonResult(map[string]interface{}{"projects": projects, "count": len(projects)})
}

// ListCertificates handles the list_certificates tool
func (h *Handlers) ListCertificates(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	docs, err := h.catalog.List(ctx, storage.CollectionCertificates)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list certificates: %v", err)), nil
	}

	certs := make([]map[string]interface{}, 0, len(docs))
	for _, doc := range docs {
		certs = append(certs, certificateSummary(doc))
	}
	return jsonResult(map[string]interface{}{"certificates": certs, "count": len(certs)})
}

// GetProject handles the get_project tool
func (h *Handlers) GetProject(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	slug, err := request.RequireString("slug")
	if err != nil {
		return mcp.NewToolResultError("slug argument is required and must be a string"), nil
	}

	doc, err := h.catalog.GetBySlug(ctx, storage.CollectionProjects, slug)
	if errors.Is(err, storage.ErrNotFound) {
		return mcp.NewToolResultError(fmt.Sprintf("project '%s' not found", slug)), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get project: %v", err)), nil
	}
	return jsonResult(doc)
}

// SearchPortfolio handles the search_portfolio tool
func (h *Handlers) SearchPortfolio(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}
	limit := request.GetInt("limit", defaultSearchLimit)
	if limit < 1 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	projects, err := h.catalog.KeywordSearch(ctx, rag.ProjectsSource.Collection, query, rag.ProjectsSource.KeywordFields, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("project search failed: %v", err)), nil
	}
	certs, err := h.catalog.KeywordSearch(ctx, rag.CertificatesSource.Collection, query, rag.CertificatesSource.KeywordFields, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("certificate search failed: %v", err)), nil
	}

	projectHits := make([]map[string]interface{}, 0, len(projects))
	for _, doc := range projects {
		projectHits = append(projectHits, projectSummary(doc))
	}
	certHits := make([]map[string]interface{}, 0, len(certs))
	for _, doc := range certs {
		certHits = append(certHits, certificateSummary(doc))
	}

	return jsonResult(map[string]interface{}{
		"query":        query,
		"projects":     projectHits,
		"certificates": certHits,
	})
}

func projectSummary(doc models.Document) map[string]interface{} {
	out := map[string]interface{}{}
	for _, key := range []string{"slug", "title", "date", "githubUrl", "demoUrl"} {
		if v, ok := doc.String(key); ok {
			out[key] = v
		}
	}
	if overview, ok := doc.String("description.overview"); ok {
		out["overview"] = overview
	}
	if techs := doc.Strings("technologies"); len(techs) > 0 {
		out["technologies"] = techs
	}
	return out
}

func certificateSummary(doc models.Document) map[string]interface{} {
	out := map[string]interface{}{}
	for _, key := range []string{"slug", "name", "issuer", "issue_date", "link"} {
		if v, ok := doc.String(key); ok {
			out[key] = v
		}
	}
	return out
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	responseJSON, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}
