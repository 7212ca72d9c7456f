// ABOUTME: MCP tool definitions and registration for the portfolio server
// ABOUTME: Exposes chat, listing, lookup, and keyword search over the portfolio
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers all portfolio tools with the server
func RegisterTools(server *mcpserver.MCPServer, catalog Catalog, chat ChatService) *Handlers {
	handlers := NewHandlers(catalog, chat)

	// 1. ask_portfolio - full RAG answer, same pipeline as /api/v1/chat
	server.AddTool(mcp.Tool{
		Name:        "ask_portfolio",
		Description: "Ask the portfolio assistant a question. Answers in the owner's voice using their projects and certifications as context.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"question": map[string]interface{}{
					"type":        "string",
					"description": "Question to ask about the portfolio owner's work",
				},
			},
			Required: []string{"question"},
		},
	}, handlers.AskPortfolio)

	// 2. list_projects
	server.AddTool(mcp.Tool{
		Name:        "list_projects",
		Description: "List every project with its slug, title, date, and technologies.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.ListProjects)

	// 3. list_certificates
	server.AddTool(mcp.Tool{
		Name:        "list_certificates",
		Description: "List every certificate with its slug, name, issuer, and issue date.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.ListCertificates)

	// 4. get_project
	server.AddTool(mcp.Tool{
		Name:        "get_project",
		Description: "Get the full record for one project by slug.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"slug": map[string]interface{}{
					"type":        "string",
					"description": "Project slug, e.g. 'portfolio-chatbot'",
				},
			},
			Required: []string{"slug"},
		},
	}, handlers.GetProject)

	// 5. search_portfolio - keyword search over both collections, no LLM involved
	server.AddTool(mcp.Tool{
		Name:        "search_portfolio",
		Description: "Case-insensitive keyword search over project titles and overviews and certificate names and issuers.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Words to search for",
				},
				"limit": map[string]interface{}{
					"type":        "number",
					"description": "Maximum results per collection (default: 5, max: 20)",
					"default":     defaultSearchLimit,
				},
			},
			Required: []string{"query"},
		},
	}, handlers.SearchPortfolio)

	return handlers
}
