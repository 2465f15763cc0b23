package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/motomatch/internal/mcp"
	"github.com/vijay-prabhu/motomatch/internal/service"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server (stdio transport)",
	Long: `Start the MCP (Model Context Protocol) server using stdio transport.

This lets AI assistants match customer requests against your catalog.
Logs go to stderr; stdout carries the protocol.

Add to Claude Desktop config (~/Library/Application Support/Claude/claude_desktop_config.json):

{
  "mcpServers": {
    "motomatch": {
      "command": "/path/to/motomatch",
      "args": ["mcp"]
    }
  }
}`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Check if MCP is enabled
	if !cfg.MCP.Enabled {
		return fmt.Errorf("MCP server is disabled in config")
	}

	db, err := openCatalog(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	resolver := service.New(db, cfg.Matcher, service.WithLogger(logger))
	server := mcp.New(db, resolver, version, logger)

	// Handle interrupt
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx); err != nil && err != context.Canceled {
		return err
	}
	return nil
}
