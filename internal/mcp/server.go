// Package mcp exposes the analyzer operations as Model Context Protocol
// tools over stdio, so agent tooling can ask structural questions about
// code without a compiler toolchain.
package mcp

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"

	"github.com/mvp-joe/codescope/internal/analyzer"
)

// Server manages the MCP server lifecycle.
type Server struct {
	analyzer *analyzer.Analyzer
	mcp      *server.MCPServer
}

// NewServer creates the server and registers the four analysis tools.
func NewServer(a *analyzer.Analyzer) *Server {
	if a == nil {
		a = analyzer.New()
	}

	mcpServer := server.NewMCPServer(
		"codescope",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	AddExtractFunctionsTool(mcpServer, a)
	AddExtractClassesTool(mcpServer, a)
	AddExtractCommentsTool(mcpServer, a)
	AddSummarizeCodeTool(mcpServer, a)

	return &Server{analyzer: a, mcp: mcpServer}
}

// Serve starts the MCP server on stdio and blocks until shutdown.
func (s *Server) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting MCP server on stdio...")
		if err := server.ServeStdio(s.mcp); err != nil {
			errCh <- fmt.Errorf("MCP server error: %w", err)
		}
	}()

	select {
	case <-sigCh:
		log.Printf("Received shutdown signal, stopping gracefully...")
		return nil
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
