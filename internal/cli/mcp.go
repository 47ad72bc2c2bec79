package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/codescope/internal/analyzer"
	"github.com/mvp-joe/codescope/internal/mcp"
)

// mcpCmd starts the MCP server.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for code analysis",
	Long: `Start the Model Context Protocol (MCP) server that lets LLM-powered
coding assistants extract functions, classes, and comments from source
text and request file summaries.

The server communicates via stdio (standard MCP transport).

Example:
  codescope mcp`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	server := mcp.NewServer(analyzer.New())
	return server.Serve(context.Background())
}
