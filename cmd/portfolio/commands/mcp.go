// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Lets LLM agents query the portfolio over stdio
package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/harper/portfolio-backend/internal/mcp"
	"github.com/harper/portfolio-backend/internal/rag"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs the portfolio as an MCP (Model Context Protocol) server over
stdio. Listing, lookup, and keyword search work with storage alone;
ask_portfolio also needs LLM credentials.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by an MCP client)
  portfolio mcp

  # Configure in an MCP client config file:
  # {
  #   "mcpServers": {
  #     "portfolio": {
  #       "command": "portfolio",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

// runMCP starts the MCP server
func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, _, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore(store)

	var chat mcp.ChatService
	if embedder, completer, err := newProvider(ctx, cfg); err != nil {
		log.Warn("ask_portfolio disabled", "err", err)
	} else {
		chat = newOrchestrator(cfg, embedder, completer, store, rag.StaticPersona(cfg.Persona))
	}

	server := mcpserver.NewMCPServer(
		"Portfolio",
		versionInfo.Version,
		mcpserver.WithToolCapabilities(false),
	)
	mcp.RegisterTools(server, store, chat)

	log.Info("portfolio MCP server starting on stdio")

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}
	return nil
}
